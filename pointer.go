package blend

import "sort"

// StorageRegime selects how "old" values in block headers are resolved
// to byte ranges (§3 PointerIndex).
type StorageRegime int

const (
	RegimeAddressRanges StorageRegime = iota
	RegimeStableIds
)

// PtrEntry is one sorted span of the pointer index: the old-pointer
// range [StartOld, EndOld) owned by one block.
type PtrEntry struct {
	StartOld uint64
	EndOld   uint64
	Block    Block
}

// PointerIndex maps stored "old" pointers to the block (and, with
// ResolveTyped, element) they address.
type PointerIndex struct {
	entries []PtrEntry
	regime  StorageRegime
}

// Regime reports which storage interpretation this index was built
// with.
func (idx *PointerIndex) Regime() StorageRegime { return idx.regime }

// buildPointerIndex builds a sorted PointerIndex from a file's blocks.
// Blocks with a zero old-pointer or empty payload never own addressable
// memory and are excluded.
//
// Regime detection resolves §9 Open Question 1: a modern-format header
// always uses stable, small, densely packed ids, so it is authoritative
// on its own. For a legacy header we fall back to an overlap probe: real
// process addresses can never overlap, so if treating old-pointers as
// [start, start+len) address ranges would make any two blocks overlap,
// the values can't be addresses — they must be stable ids instead.
func buildPointerIndex(blocks []Block, hdr Header) *PointerIndex {
	entries := make([]PtrEntry, 0, len(blocks))
	for _, b := range blocks {
		if b.Head.Old == 0 || len(b.Payload) == 0 {
			continue
		}
		entries = append(entries, PtrEntry{
			StartOld: b.Head.Old,
			EndOld:   b.Head.Old + uint64(len(b.Payload)),
			Block:    b,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StartOld < entries[j].StartOld })

	regime := detectStorageRegime(entries, hdr)
	if regime == RegimeStableIds {
		for i := range entries {
			entries[i].EndOld = entries[i].StartOld + 1
		}
	}
	return &PointerIndex{entries: entries, regime: regime}
}

func detectStorageRegime(entries []PtrEntry, hdr Header) StorageRegime {
	if hdr.Format == FormatModern {
		return RegimeStableIds
	}
	for i := 0; i+1 < len(entries); i++ {
		if entries[i].EndOld > entries[i+1].StartOld {
			return RegimeStableIds
		}
	}
	return RegimeAddressRanges
}

// Resolve finds the entry owning pointer p, returning the byte offset
// of p within that entry's block payload. p == 0 never resolves.
func (idx *PointerIndex) Resolve(p uint64) (*PtrEntry, uint64, bool) {
	if p == 0 || len(idx.entries) == 0 {
		return nil, 0, false
	}
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].StartOld > p }) - 1
	if i < 0 {
		return nil, 0, false
	}
	e := &idx.entries[i]
	if p < e.EndOld {
		return e, p - e.StartOld, true
	}
	return nil, 0, false
}

// TypedResolvedPtr augments a raw resolution with struct-sized element
// arithmetic (§3).
type TypedResolvedPtr struct {
	Entry         *PtrEntry
	ByteOffset    uint64
	StructSize    int
	ElementIndex  *int
	ElementOffset uint64
}

// Canonical computes the canonical pointer for a typed resolution: the
// block's StartOld plus element_index*struct_size. Only defined when
// ElementIndex is known.
func (tr *TypedResolvedPtr) Canonical() (uint64, bool) {
	if tr.ElementIndex == nil {
		return 0, false
	}
	return tr.Entry.StartOld + uint64(*tr.ElementIndex)*uint64(tr.StructSize), true
}

// ResolveTyped resolves p and computes its element index within the
// owning block's array of struct instances, using SDNA to find the
// struct's byte size. ElementIndex is nil when p lands in the
// unoccupied tail of an array block.
func (idx *PointerIndex) ResolveTyped(dna *Dna, p uint64) (*TypedResolvedPtr, bool) {
	e, byteOffset, ok := idx.Resolve(p)
	if !ok {
		return nil, false
	}
	sdnaNr := int(e.Block.Head.SDNANr)
	if sdnaNr < 0 || sdnaNr >= len(dna.Structs) {
		return &TypedResolvedPtr{Entry: e, ByteOffset: byteOffset}, true
	}
	s := dna.Structs[sdnaNr]
	structSize, err := dna.TypeSize(s.TypeIdx)
	if err != nil || structSize <= 0 {
		return &TypedResolvedPtr{Entry: e, ByteOffset: byteOffset, StructSize: structSize}, true
	}

	tr := &TypedResolvedPtr{Entry: e, ByteOffset: byteOffset, StructSize: structSize}
	if int64(byteOffset) < int64(structSize)*e.Block.Head.Nr {
		k := int(byteOffset) / structSize
		tr.ElementIndex = &k
		tr.ElementOffset = byteOffset - uint64(k*structSize)
	}
	return tr, true
}

// CanonicalPtr is a convenience wrapper resolving p straight to its
// canonical pointer.
func CanonicalPtr(idx *PointerIndex, dna *Dna, p uint64) (uint64, bool) {
	tr, ok := idx.ResolveTyped(dna, p)
	if !ok {
		return 0, false
	}
	return tr.Canonical()
}

// DecodePtrInstance resolves ptr to a concrete struct instance and
// decodes it, returning the instance's canonical pointer alongside its
// decoded fields.
func DecodePtrInstance(dna *Dna, idx *PointerIndex, ptr uint64, opts DecodeOptions) (uint64, StructValue, error) {
	tr, ok := idx.ResolveTyped(dna, ptr)
	if !ok {
		return 0, StructValue{}, errf(KindPointer, "pointer.decode_ptr_instance", -1, "pointer 0x%x is unresolved", ptr)
	}
	canonical, ok := tr.Canonical()
	if !ok {
		return 0, StructValue{}, errf(KindPointer, "pointer.decode_ptr_instance", -1, "pointer 0x%x resolves into unoccupied array tail", ptr)
	}
	start := *tr.ElementIndex * tr.StructSize
	if start+tr.StructSize > len(tr.Entry.Block.Payload) {
		return 0, StructValue{}, errf(KindDecode, "pointer.decode_ptr_instance", -1, "payload too small for resolved element")
	}
	raw := tr.Entry.Block.Payload[start : start+tr.StructSize]
	sv, err := decodeStruct(dna, int(tr.Entry.Block.Head.SDNANr), raw, opts, 1)
	if err != nil {
		return 0, StructValue{}, err
	}
	return canonical, sv, nil
}
