package blend

import "sort"

// IdRecord is one decoded ID-rooted block: a scene, object, mesh,
// material or any other data-block that begins with an embedded ID
// sub-struct (§4.11).
type IdRecord struct {
	OldPtr    uint64
	Canonical uint64
	Code      string
	SDNANr    int
	TypeName  string
	IDName    string
	Next      uint64
	Prev      uint64
	Lib       uint64

	// OverrideLibrary and LibraryWeakReference are additional pointer
	// signals used by the link-provenance classifier (§4.16); they are
	// zero when the running Blender version's ID struct predates them.
	OverrideLibrary      uint64
	LibraryWeakReference uint64
}

// IdIndex is the whole-file catalogue of ID-rooted blocks, keyed both by
// canonical pointer and by id_name. A duplicate id_name keeps only the
// first record encountered in old-pointer order.
type IdIndex struct {
	Records        []IdRecord
	ByCanonicalPtr map[uint64]*IdRecord
	ByIDName       map[string]*IdRecord
}

// isIDRootedStruct reports whether the SDNA struct at si begins with a
// field of type "ID" declared as the plain (non-pointer, non-array)
// identifier "id" — the marker Blender uses for every data-block type.
func isIDRootedStruct(dna *Dna, si int) bool {
	if si < 0 || si >= len(dna.Structs) {
		return false
	}
	s := dna.Structs[si]
	if len(s.Fields) == 0 {
		return false
	}
	first := s.Fields[0]
	if first.TypeIdx < 0 || first.TypeIdx >= len(dna.Types) {
		return false
	}
	if dna.Types[first.TypeIdx] != "ID" {
		return false
	}
	if first.NameIdx < 0 || first.NameIdx >= len(dna.Names) {
		return false
	}
	decl := parseFieldDecl(dna.Names[first.NameIdx])
	return decl.Ident == "id" && decl.PtrDepth == 0 && decl.InlineArrayCount == 1
}

// ScanIDBlocks decodes the leading ID sub-struct of every block whose
// SDNA struct is ID-rooted, in strict layout with padding included, and
// returns one IdRecord per such block sorted by old pointer. A file with
// no "ID" type defined at all yields no records.
func ScanIDBlocks(dna *Dna, idx *PointerIndex, blocks []Block) ([]IdRecord, error) {
	idStructIdx, ok := dna.FindStructIdxByTypeName("ID")
	if !ok {
		return nil, nil
	}
	idSize, err := dna.TypeSize(dna.Structs[idStructIdx].TypeIdx)
	if err != nil {
		return nil, wrap(KindSDNA, "id.scan_id_blocks", err)
	}

	idOpts := DecodeOptions{
		IncludePadding:           true,
		DecodeCharArraysAsString: true,
		StrictLayout:             true,
		MaxDepth:                 1,
		MaxArrayElems:            4096,
	}

	var records []IdRecord
	for _, b := range blocks {
		sdnaNr := int(b.Head.SDNANr)
		if !isIDRootedStruct(dna, sdnaNr) {
			continue
		}
		if len(b.Payload) < idSize {
			return nil, errf(KindDecode, "id.scan_id_blocks", b.FileOffset, "block %s payload %d bytes too small for ID struct of size %d", b.Head.CodeString(), len(b.Payload), idSize)
		}

		sv, err := decodeStruct(dna, idStructIdx, b.Payload[:idSize], idOpts, 1)
		if err != nil {
			return nil, err
		}

		rec := IdRecord{
			OldPtr:    b.Head.Old,
			Canonical: b.Head.Old,
			Code:      b.Head.CodeString(),
			SDNANr:    sdnaNr,
			TypeName:  dna.Types[dna.Structs[sdnaNr].TypeIdx],
		}
		if v, ok := sv.Field("name"); ok && v.Kind == ValString {
			rec.IDName = v.Str
		}
		if v, ok := sv.Field("next"); ok && v.Kind == ValPtr {
			rec.Next = v.PtrVal
		}
		if v, ok := sv.Field("prev"); ok && v.Kind == ValPtr {
			rec.Prev = v.PtrVal
		}
		if v, ok := sv.Field("lib"); ok && v.Kind == ValPtr {
			rec.Lib = v.PtrVal
		}
		if v, ok := sv.Field("override_library"); ok && v.Kind == ValPtr {
			rec.OverrideLibrary = v.PtrVal
		}
		if v, ok := sv.Field("library_weak_reference"); ok && v.Kind == ValPtr {
			rec.LibraryWeakReference = v.PtrVal
		}

		if tr, ok := idx.ResolveTyped(dna, b.Head.Old); ok {
			if canon, ok := tr.Canonical(); ok {
				rec.Canonical = canon
			}
		}

		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].OldPtr < records[j].OldPtr })
	return records, nil
}

// BuildIDIndex builds the canonical-pointer and id_name lookup tables
// over a set of scanned records. First record wins on id_name
// collisions, matching the scan's old-pointer ordering.
func BuildIDIndex(records []IdRecord) *IdIndex {
	idx := &IdIndex{
		Records:        records,
		ByCanonicalPtr: make(map[uint64]*IdRecord, len(records)),
		ByIDName:       make(map[string]*IdRecord, len(records)),
	}
	for i := range records {
		r := &records[i]
		if _, exists := idx.ByCanonicalPtr[r.Canonical]; !exists {
			idx.ByCanonicalPtr[r.Canonical] = r
		}
		if r.IDName == "" {
			continue
		}
		if _, exists := idx.ByIDName[r.IDName]; !exists {
			idx.ByIDName[r.IDName] = r
		}
	}
	return idx
}
