package blend

// WalkOptions configures a linked-chain walk (§4.15).
type WalkOptions struct {
	NextField       string
	MaxSteps        int
	OnNullPtr       ChaseMode
	OnUnresolvedPtr ChaseMode
	OnCycle         ChaseMode
	OnMissingField  ChaseMode
	RefOpts         RefScanOptions
}

// DefaultWalkOptions returns the §5 max_steps ceiling with Stop
// semantics for every predicate, following "next".
func DefaultWalkOptions(refOpts RefScanOptions) WalkOptions {
	return WalkOptions{NextField: "next", MaxSteps: 256, RefOpts: refOpts}
}

// WalkItem is one node visited while walking a linked chain.
type WalkItem struct {
	Index     int
	Canonical uint64
	Code      string
	SDNANr    int
	TypeName  string
	IDName    string
}

// WalkStop records why a walk ended without reaching an error.
type WalkStop struct {
	Step   int
	Reason StopReason
}

// WalkResult is the outcome of WalkPtrChain: the ordered items visited,
// plus an optional terminal stop.
type WalkResult struct {
	Items []WalkItem
	Stop  *WalkStop
}

// WalkPtrChain follows opts.NextField (e.g. "next", "id.next") from
// start, emitting one WalkItem per node until a stop condition or
// max_steps is reached. Each stop condition (null, unresolved, cycle,
// missing field) is a Stop or Error per opts' chase-policy modes.
func WalkPtrChain(dna *Dna, idx *PointerIndex, ids *IdIndex, start uint64, opts WalkOptions) (WalkResult, error) {
	canonical, ok := CanonicalPtr(idx, dna, start)
	if !ok {
		return WalkResult{}, errf(KindPointer, "walk.ptr_chain", -1, "start pointer 0x%x is unresolved", start)
	}

	visited := map[uint64]bool{}
	var items []WalkItem
	step := 0
	cur := canonical

	for {
		item := makeWalkItem(dna, idx, ids, cur, step)
		items = append(items, item)
		visited[cur] = true

		if step+1 >= opts.MaxSteps {
			return WalkResult{Items: items, Stop: &WalkStop{Step: step, Reason: StopMaxSteps}}, nil
		}

		refs, err := ScanRefsFromPtr(dna, idx, ids, cur, opts.RefOpts)
		if err != nil {
			return WalkResult{}, err
		}
		r, found := findWalkField(refs, opts.NextField)
		if !found {
			if opts.OnMissingField == ModeError {
				return WalkResult{}, errf(KindWalk, "walk.ptr_chain", -1, "field %q not found at step %d", opts.NextField, step)
			}
			return WalkResult{Items: items, Stop: &WalkStop{Step: step, Reason: StopMissingField}}, nil
		}

		if r.Ptr == 0 {
			if opts.OnNullPtr == ModeError {
				return WalkResult{}, errf(KindWalk, "walk.ptr_chain", -1, "null pointer at step %d", step)
			}
			return WalkResult{Items: items, Stop: &WalkStop{Step: step, Reason: StopNullPtr}}, nil
		}
		if r.Resolved == nil {
			if opts.OnUnresolvedPtr == ModeError {
				return WalkResult{}, errf(KindWalk, "walk.ptr_chain", -1, "unresolved pointer at step %d", step)
			}
			return WalkResult{Items: items, Stop: &WalkStop{Step: step, Reason: StopUnresolvedPtr}}, nil
		}
		if visited[r.Resolved.Canonical] {
			if opts.OnCycle == ModeError {
				return WalkResult{}, errf(KindWalk, "walk.ptr_chain", -1, "cycle detected at step %d", step)
			}
			return WalkResult{Items: items, Stop: &WalkStop{Step: step, Reason: StopCycle}}, nil
		}

		cur = r.Resolved.Canonical
		step++
	}
}

func findWalkField(refs []RefRecord, name string) (RefRecord, bool) {
	for _, r := range refs {
		if r.Field == name {
			return r, true
		}
	}
	return RefRecord{}, false
}

func makeWalkItem(dna *Dna, idx *PointerIndex, ids *IdIndex, canonical uint64, step int) WalkItem {
	item := WalkItem{Index: step, Canonical: canonical}
	if tr, ok := idx.ResolveTyped(dna, canonical); ok {
		item.Code = tr.Entry.Block.Head.CodeString()
		item.SDNANr = int(tr.Entry.Block.Head.SDNANr)
		if item.SDNANr >= 0 && item.SDNANr < len(dna.Structs) {
			item.TypeName = dna.Types[dna.Structs[item.SDNANr].TypeIdx]
		}
	}
	if ids != nil {
		if rec, ok := ids.ByCanonicalPtr[canonical]; ok {
			item.IDName = rec.IDName
		}
	}
	return item
}
