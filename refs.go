package blend

import "fmt"

// RefScanOptions bounds a reference scan (§4.10).
type RefScanOptions struct {
	MaxDepth      int
	MaxArrayElems int
	PointerSize   int
	Endian        Endianness
}

// DefaultRefScanOptions returns the §5 resource ceilings sized for an
// opened file's header.
func DefaultRefScanOptions(hdr Header) RefScanOptions {
	return RefScanOptions{MaxDepth: 16, MaxArrayElems: 4096, PointerSize: hdr.PointerSize, Endian: hdr.Endian}
}

// RefTarget is the resolved metadata of a reference's destination, when
// the stored pointer resolves to a concrete struct instance.
type RefTarget struct {
	Canonical uint64
	Code      string
	SDNANr    int
	TypeName  string
	IDName    string
}

// RefRecord is one pointer-typed field found while scanning an owner
// instance: its field path, its raw stored pointer, and (if resolvable)
// its target.
type RefRecord struct {
	Field    string
	Ptr      uint64
	Resolved *RefTarget
}

// ScanRefsFromPtr enumerates every pointer-typed field reachable from
// the struct instance at root, in declaration order, recursing into
// nested non-pointer struct fields (not arrays of them) up to
// opts.MaxDepth. ids may be nil; when present it is used to annotate
// resolved targets with their ID name.
func ScanRefsFromPtr(dna *Dna, idx *PointerIndex, ids *IdIndex, root uint64, opts RefScanOptions) ([]RefRecord, error) {
	tr, ok := idx.ResolveTyped(dna, root)
	if !ok {
		return nil, errf(KindPointer, "refs.scan", -1, "root pointer 0x%x is unresolved", root)
	}
	if tr.ElementIndex == nil {
		return nil, errf(KindPointer, "refs.scan", -1, "root pointer 0x%x resolves into unoccupied array tail", root)
	}
	start := *tr.ElementIndex * tr.StructSize
	if start+tr.StructSize > len(tr.Entry.Block.Payload) {
		return nil, errf(KindDecode, "refs.scan", -1, "payload too small for resolved root element")
	}
	raw := tr.Entry.Block.Payload[start : start+tr.StructSize]

	var out []RefRecord
	err := scanStructRefs(dna, idx, ids, int(tr.Entry.Block.Head.SDNANr), raw, "", opts, 0, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanStructRefs(dna *Dna, idx *PointerIndex, ids *IdIndex, sdnaNr int, payload []byte, prefix string, opts RefScanOptions, depth int, out *[]RefRecord) error {
	if sdnaNr < 0 || sdnaNr >= len(dna.Structs) {
		return errf(KindDecode, "refs.scan_struct", -1, "missing SDNA entry for sdna_nr %d", sdnaNr)
	}
	s := dna.Structs[sdnaNr]
	c := NewCursor(payload)

	for _, f := range s.Fields {
		rawName := dna.Names[f.NameIdx]
		decl := parseFieldDecl(rawName)
		count := decl.InlineArrayCount
		if count > opts.MaxArrayElems {
			return errf(KindDecode, "refs.scan_struct", int64(c.Pos()), "field %s array count %d exceeds max_array_elems %d", decl.Ident, count, opts.MaxArrayElems)
		}
		if count == 0 {
			continue
		}

		isPtr := decl.PtrDepth > 0 || decl.IsFuncPtr
		if isPtr {
			for i := 0; i < count; i++ {
				p, err := c.ReadPtr(opts.PointerSize, opts.Endian)
				if err != nil {
					return wrap(KindDecode, "refs.scan_struct.ptr", err)
				}
				field := prefix + decl.Ident
				if count > 1 {
					field = fmt.Sprintf("%s[%d]", field, i)
				}
				rec := RefRecord{Field: field, Ptr: p}
				if p != 0 {
					if rt, ok := resolveRefTarget(dna, idx, ids, p); ok {
						rec.Resolved = rt
					}
				}
				*out = append(*out, rec)
			}
			continue
		}

		if nestedIdx, ok := dna.StructIdxForType(f.TypeIdx); ok {
			elemSize, err := dna.TypeSize(f.TypeIdx)
			if err != nil {
				return wrap(KindDecode, "refs.scan_struct.nested", err)
			}
			if count == 1 && depth < opts.MaxDepth {
				raw, err := c.ReadExact(elemSize)
				if err != nil {
					return wrap(KindDecode, "refs.scan_struct.nested", err)
				}
				if err := scanStructRefs(dna, idx, ids, nestedIdx, raw, prefix+decl.Ident+".", opts, depth+1, out); err != nil {
					return err
				}
				continue
			}
			if _, err := c.ReadExact(elemSize * count); err != nil {
				return wrap(KindDecode, "refs.scan_struct.skip", err)
			}
			continue
		}

		elemSize, err := dna.TypeSize(f.TypeIdx)
		if err != nil {
			return wrap(KindDecode, "refs.scan_struct.skip", err)
		}
		if _, err := c.ReadExact(elemSize * count); err != nil {
			return wrap(KindDecode, "refs.scan_struct.skip", err)
		}
	}
	return nil
}

func resolveRefTarget(dna *Dna, idx *PointerIndex, ids *IdIndex, p uint64) (*RefTarget, bool) {
	tr, ok := idx.ResolveTyped(dna, p)
	if !ok {
		return nil, false
	}
	canonical, ok := tr.Canonical()
	if !ok {
		return nil, false
	}
	sdnaNr := int(tr.Entry.Block.Head.SDNANr)
	typeName := ""
	if sdnaNr >= 0 && sdnaNr < len(dna.Structs) {
		typeName = dna.Types[dna.Structs[sdnaNr].TypeIdx]
	}
	idName := ""
	if ids != nil {
		if rec, ok := ids.ByCanonicalPtr[canonical]; ok {
			idName = rec.IDName
		}
	}
	return &RefTarget{
		Canonical: canonical,
		Code:      tr.Entry.Block.Head.CodeString(),
		SDNANr:    sdnaNr,
		TypeName:  typeName,
		IDName:    idName,
	}, true
}
