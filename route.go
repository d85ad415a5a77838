package blend

import "sort"

// RouteOptions bounds a shortest-route search (§4.13).
type RouteOptions struct {
	MaxDepth int
	MaxNodes int
	MaxEdges int
	RefOpts  RefScanOptions
}

// DefaultRouteOptions returns the §5 resource ceilings.
func DefaultRouteOptions(refOpts RefScanOptions) RouteOptions {
	return RouteOptions{MaxDepth: 16, MaxNodes: 4096, MaxEdges: 4096, RefOpts: refOpts}
}

// RouteStep is one hop of a discovered route: the field followed to
// reach the next canonical pointer.
type RouteStep struct {
	From  uint64
	To    uint64
	Field string
}

// RouteResult is the outcome of a shortest-route search: either a path
// (possibly zero-length, when from == to) or no path at all, plus
// whichever budget cut the search short.
type RouteResult struct {
	Path       []RouteStep
	Found      bool
	Visited    int
	Truncation Truncation
}

type routeParent struct {
	from  uint64
	field string
}

// FindRouteBetweenPtrs runs a breadth-first search from canonical(from)
// to canonical(to), expanding each node with the reference scanner and
// tie-breaking multiple out-edges of one node by (target_canonical,
// field) so the discovered path is deterministic.
func FindRouteBetweenPtrs(dna *Dna, idx *PointerIndex, from, to uint64, opts RouteOptions) (RouteResult, error) {
	fromCanon, ok := CanonicalPtr(idx, dna, from)
	if !ok {
		return RouteResult{}, errf(KindPointer, "route.find", -1, "from pointer 0x%x is unresolved", from)
	}
	toCanon, ok := CanonicalPtr(idx, dna, to)
	if !ok {
		return RouteResult{}, errf(KindPointer, "route.find", -1, "to pointer 0x%x is unresolved", to)
	}

	if fromCanon == toCanon {
		return RouteResult{Path: nil, Found: true, Visited: 1}, nil
	}

	parents := map[uint64]routeParent{fromCanon: {}}
	visited := map[uint64]bool{fromCanon: true}
	queue := []bfsQueueItem{{ptr: fromCanon, depth: 0}}
	trunc := TruncNone
	edgeBudget := 0

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.depth >= opts.MaxDepth {
			if trunc == TruncNone {
				trunc = TruncMaxDepth
			}
			continue
		}

		refs, err := ScanRefsFromPtr(dna, idx, nil, item.ptr, opts.RefOpts)
		if err != nil {
			return RouteResult{}, err
		}

		type candidate struct {
			target uint64
			field  string
		}
		var cands []candidate
		for _, r := range refs {
			if r.Resolved == nil {
				continue
			}
			cands = append(cands, candidate{target: r.Resolved.Canonical, field: r.Field})
		}
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].target != cands[j].target {
				return cands[i].target < cands[j].target
			}
			return cands[i].field < cands[j].field
		})

		for _, c := range cands {
			edgeBudget++
			if edgeBudget > opts.MaxEdges {
				trunc = TruncMaxEdges
				break
			}
			if visited[c.target] {
				continue
			}
			if len(visited) >= opts.MaxNodes {
				trunc = TruncMaxNodes
				break
			}
			visited[c.target] = true
			parents[c.target] = routeParent{from: item.ptr, field: c.field}

			if c.target == toCanon {
				return RouteResult{Path: reconstructRoute(parents, fromCanon, toCanon), Found: true, Visited: len(visited)}, nil
			}
			queue = append(queue, bfsQueueItem{ptr: c.target, depth: item.depth + 1})
		}
	}

	return RouteResult{Found: false, Visited: len(visited), Truncation: trunc}, nil
}

func reconstructRoute(parents map[uint64]routeParent, from, to uint64) []RouteStep {
	var steps []RouteStep
	cur := to
	for cur != from {
		p := parents[cur]
		steps = append(steps, RouteStep{From: p.from, To: cur, Field: p.field})
		cur = p.from
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
