package blend

// ChaseMode selects whether a predicate failure during a chase becomes
// a structured stop or a hard error (§4.9).
type ChaseMode int

const (
	ModeStop ChaseMode = iota
	ModeError
)

// ChasePolicy bounds and configures a pointer chase.
type ChasePolicy struct {
	MaxHops           int
	MaxVisited        int
	ArrayDefaultIndex *int
	OnNullPtr         ChaseMode
	OnUnresolvedPtr   ChaseMode
	OnCycle           ChaseMode
}

// DefaultChasePolicy returns the §5 resource ceilings with Stop
// semantics for every predicate.
func DefaultChasePolicy() ChasePolicy {
	return ChasePolicy{MaxHops: 64, MaxVisited: 10000}
}

// StopReason discriminates why a chase or walk halted without error.
type StopReason int

const (
	StopNullPtr StopReason = iota
	StopUnresolvedPtr
	StopCycle
	StopMissingField
	StopTypeMismatch
	StopMaxSteps
)

func (r StopReason) String() string {
	switch r {
	case StopNullPtr:
		return "null_ptr"
	case StopUnresolvedPtr:
		return "unresolved_ptr"
	case StopCycle:
		return "cycle"
	case StopMissingField:
		return "missing_field"
	case StopTypeMismatch:
		return "type_mismatch"
	case StopMaxSteps:
		return "max_steps"
	default:
		return "unknown"
	}
}

// ChaseStop is a structured halt (as opposed to an error) produced by a
// Stop-mode predicate or an unconditional structural mismatch.
type ChaseStop struct {
	Reason StopReason
	Detail string
	Kind   ValueKind
}

// ChaseMeta records one pointer dereference performed during a chase.
type ChaseMeta struct {
	Ptr           uint64
	Canonical     uint64
	Code          string
	SDNANr        int
	ElementIndex  *int
	ElementOffset uint64
	StructSize    int
	BlockOld      uint64
}

// ChaseResult is the outcome of ChaseFromPtr: either a final Value, or a
// Stop, always with the hop trace taken to get there.
type ChaseResult struct {
	Value Value
	Hops  []ChaseMeta
	Stop  *ChaseStop
}

// chaser carries the per-call mutable state of one chase: hop count,
// cycle-visited set, and a decode memoization cache keyed by canonical
// pointer. None of it outlives a single ChaseFromPtr call.
type chaser struct {
	dna     *Dna
	idx     *PointerIndex
	opts    DecodeOptions
	policy  ChasePolicy
	hops    []ChaseMeta
	visited map[uint64]bool
	cache   map[uint64]StructValue
}

// dereference resolves and decodes the struct instance at ptr, applying
// the chase policy's null/unresolved/cycle predicates and memoizing the
// decoded value by canonical pointer.
func (ch *chaser) dereference(ptr uint64) (StructValue, uint64, *ChaseStop, error) {
	if ptr == 0 {
		if ch.policy.OnNullPtr == ModeError {
			return StructValue{}, 0, nil, errf(KindPointer, "chase.dereference", -1, "null pointer encountered")
		}
		return StructValue{}, 0, &ChaseStop{Reason: StopNullPtr}, nil
	}

	tr, ok := ch.idx.ResolveTyped(ch.dna, ptr)
	var canonical uint64
	if ok {
		canonical, ok = tr.Canonical()
	}
	if !ok {
		if ch.policy.OnUnresolvedPtr == ModeError {
			return StructValue{}, 0, nil, errf(KindPointer, "chase.dereference", -1, "pointer 0x%x is unresolved", ptr)
		}
		return StructValue{}, 0, &ChaseStop{Reason: StopUnresolvedPtr}, nil
	}

	if len(ch.hops)+1 > ch.policy.MaxHops {
		return StructValue{}, 0, nil, errf(KindPointer, "chase.dereference", -1, "max_hops %d exceeded", ch.policy.MaxHops)
	}
	if ch.visited[canonical] {
		if ch.policy.OnCycle == ModeError {
			return StructValue{}, 0, nil, errf(KindPointer, "chase.dereference", -1, "cycle detected at canonical 0x%x", canonical)
		}
		return StructValue{}, 0, &ChaseStop{Reason: StopCycle}, nil
	}
	ch.visited[canonical] = true
	if len(ch.visited) > ch.policy.MaxVisited {
		return StructValue{}, 0, nil, errf(KindPointer, "chase.dereference", -1, "max_visited %d exceeded", ch.policy.MaxVisited)
	}

	sv, cached := ch.cache[canonical]
	if !cached {
		start := *tr.ElementIndex * tr.StructSize
		if start+tr.StructSize > len(tr.Entry.Block.Payload) {
			return StructValue{}, 0, nil, errf(KindDecode, "chase.dereference", -1, "payload too small for resolved element")
		}
		raw := tr.Entry.Block.Payload[start : start+tr.StructSize]
		decoded, err := decodeStruct(ch.dna, int(tr.Entry.Block.Head.SDNANr), raw, ch.opts, 1)
		if err != nil {
			return StructValue{}, 0, nil, err
		}
		sv = decoded
		ch.cache[canonical] = sv
	}

	ch.hops = append(ch.hops, ChaseMeta{
		Ptr:           ptr,
		Canonical:     canonical,
		Code:          tr.Entry.Block.Head.CodeString(),
		SDNANr:        int(tr.Entry.Block.Head.SDNANr),
		ElementIndex:  tr.ElementIndex,
		ElementOffset: tr.ElementOffset,
		StructSize:    tr.StructSize,
		BlockOld:      tr.Entry.StartOld,
	})
	return sv, canonical, nil, nil
}

// applyStep applies one path step to cur, transparently dereferencing
// pointers and (when configured) indexing into arrays until the step
// can be evaluated or a stop/error condition is reached.
func (ch *chaser) applyStep(cur Value, step PathStep) (Value, *ChaseStop, error) {
	for {
		switch step.Kind {
		case StepField:
			switch cur.Kind {
			case ValStruct:
				v, ok := cur.Field(step.Name)
				if !ok {
					return Value{}, &ChaseStop{Reason: StopMissingField, Detail: step.Name}, nil
				}
				return v, nil, nil
			case ValArray:
				if ch.policy.ArrayDefaultIndex != nil {
					idx := *ch.policy.ArrayDefaultIndex
					if idx >= 0 && idx < len(cur.Array) {
						cur = cur.Array[idx]
						continue
					}
				}
				return Value{}, &ChaseStop{Reason: StopTypeMismatch, Kind: cur.Kind, Detail: "field on array without default index"}, nil
			case ValPtr:
				sv, _, stop, err := ch.dereference(cur.PtrVal)
				if err != nil || stop != nil {
					return Value{}, stop, err
				}
				cur = structValue(sv)
				continue
			default:
				return Value{}, &ChaseStop{Reason: StopTypeMismatch, Kind: cur.Kind}, nil
			}
		case StepIndex:
			switch cur.Kind {
			case ValArray:
				v, ok := cur.Index(step.Index)
				if !ok {
					return Value{}, &ChaseStop{Reason: StopTypeMismatch, Kind: cur.Kind, Detail: "index out of bounds"}, nil
				}
				return v, nil, nil
			case ValPtr:
				sv, _, stop, err := ch.dereference(cur.PtrVal)
				if err != nil || stop != nil {
					return Value{}, stop, err
				}
				cur = structValue(sv)
				continue
			default:
				return Value{}, &ChaseStop{Reason: StopTypeMismatch, Kind: cur.Kind}, nil
			}
		}
	}
}

// ChaseFromPtr walks path starting from root, following pointers and
// indexing arrays/structs as directed by the parsed steps, then
// dereferences any trailing pointer until a non-pointer value or a stop
// condition is reached.
func ChaseFromPtr(dna *Dna, idx *PointerIndex, root uint64, path string, opts DecodeOptions, policy ChasePolicy) (ChaseResult, error) {
	steps, err := parsePath(path)
	if err != nil {
		return ChaseResult{}, err
	}

	ch := &chaser{
		dna:     dna,
		idx:     idx,
		opts:    opts,
		policy:  policy,
		visited: make(map[uint64]bool),
		cache:   make(map[uint64]StructValue),
	}

	sv, _, stop, err := ch.dereference(root)
	if err != nil {
		return ChaseResult{}, err
	}
	if stop != nil {
		return ChaseResult{Hops: ch.hops, Stop: stop}, nil
	}
	cur := structValue(sv)

	for _, step := range steps {
		next, stop, err := ch.applyStep(cur, step)
		if err != nil {
			return ChaseResult{Hops: ch.hops}, err
		}
		if stop != nil {
			return ChaseResult{Hops: ch.hops, Stop: stop}, nil
		}
		cur = next
	}

	for cur.Kind == ValPtr {
		sv, _, stop, err := ch.dereference(cur.PtrVal)
		if err != nil {
			return ChaseResult{Hops: ch.hops}, err
		}
		if stop != nil {
			return ChaseResult{Hops: ch.hops, Stop: stop}, nil
		}
		cur = structValue(sv)
	}

	return ChaseResult{Value: cur, Hops: ch.hops}, nil
}
