package blend

import "sort"

// Truncation names which resource budget stopped a traversal short of
// exhausting its search space.
type Truncation int

const (
	TruncNone Truncation = iota
	TruncMaxNodes
	TruncMaxEdges
	TruncMaxDepth
)

func (t Truncation) String() string {
	switch t {
	case TruncMaxNodes:
		return "max_nodes"
	case TruncMaxEdges:
		return "max_edges"
	case TruncMaxDepth:
		return "max_depth"
	default:
		return "none"
	}
}

// GraphOptions bounds a BFS graph extraction (§4.12).
type GraphOptions struct {
	MaxNodes int
	MaxEdges int
	MaxDepth int
	IDOnly   bool
	RefOpts  RefScanOptions
}

// DefaultGraphOptions returns the §5 resource ceilings.
func DefaultGraphOptions(refOpts RefScanOptions) GraphOptions {
	return GraphOptions{MaxNodes: 4096, MaxEdges: 4096, MaxDepth: 16, RefOpts: refOpts}
}

// GraphNode is one node of an extracted graph: a resolved struct
// instance identified by its canonical pointer.
type GraphNode struct {
	Canonical uint64
	Code      string
	SDNANr    int
	TypeName  string
	IDName    string
	IsIDRoot  bool
}

// GraphEdge is one (from, to, field) triple found by the reference
// scanner while expanding a node.
type GraphEdge struct {
	From  uint64
	To    uint64
	Field string
}

// GraphResult is the outcome of a BFS graph extraction.
type GraphResult struct {
	Nodes      []GraphNode
	Edges      []GraphEdge
	Truncation Truncation
}

type bfsQueueItem struct {
	ptr   uint64
	depth int
}

// edgeKey is the dedup key for an edge: Go structs with comparable
// fields are valid map keys on their own, so no hashing is needed.
type edgeKey struct {
	from  uint64
	to    uint64
	field string
}

// BuildGraphFromPtr runs a breadth-first traversal of the reference
// graph reachable from root, up to opts.MaxDepth, dedupdeuping nodes by
// canonical pointer and edges by (from, to, field). Nodes and edges are
// returned in the deterministic sort order required by §4.12.
func BuildGraphFromPtr(dna *Dna, idx *PointerIndex, ids *IdIndex, root uint64, opts GraphOptions) (GraphResult, error) {
	rootCanon, ok := CanonicalPtr(idx, dna, root)
	if !ok {
		return GraphResult{}, errf(KindPointer, "graph.build_from_ptr", -1, "root pointer 0x%x is unresolved", root)
	}

	nodes := make(map[uint64]GraphNode)
	edgeSeen := make(map[edgeKey]struct{})
	var edges []GraphEdge
	trunc := TruncNone

	nodes[rootCanon] = makeGraphNode(dna, idx, ids, rootCanon)

	queue := []bfsQueueItem{{ptr: rootCanon, depth: 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.depth >= opts.MaxDepth {
			if trunc == TruncNone {
				trunc = TruncMaxDepth
			}
			continue
		}

		refs, err := ScanRefsFromPtr(dna, idx, ids, item.ptr, opts.RefOpts)
		if err != nil {
			return GraphResult{}, err
		}

		for _, r := range refs {
			if r.Resolved == nil {
				continue
			}
			target := r.Resolved.Canonical
			key := edgeKey{from: item.ptr, to: target, field: r.Field}
			if _, ok := edgeSeen[key]; ok {
				continue
			}
			if len(edges) >= opts.MaxEdges {
				trunc = TruncMaxEdges
				continue
			}
			edgeSeen[key] = struct{}{}
			edges = append(edges, GraphEdge{From: item.ptr, To: target, Field: r.Field})

			if _, seen := nodes[target]; !seen {
				if len(nodes) >= opts.MaxNodes {
					trunc = TruncMaxNodes
					continue
				}
				nodes[target] = makeGraphNode(dna, idx, ids, target)
				queue = append(queue, bfsQueueItem{ptr: target, depth: item.depth + 1})
			}
		}
	}

	nodeList := make([]GraphNode, 0, len(nodes))
	for _, n := range nodes {
		nodeList = append(nodeList, n)
	}
	sort.Slice(nodeList, func(i, j int) bool { return nodeList[i].Canonical < nodeList[j].Canonical })
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Field < edges[j].Field
	})

	if opts.IDOnly {
		nodeList, edges = filterIDOnly(nodeList, edges, rootCanon)
	}

	return GraphResult{Nodes: nodeList, Edges: edges, Truncation: trunc}, nil
}

// filterIDOnly keeps only ID-rooted nodes (plus the root) and drops any
// edge touching a pruned node.
func filterIDOnly(nodes []GraphNode, edges []GraphEdge, root uint64) ([]GraphNode, []GraphEdge) {
	keep := make(map[uint64]bool, len(nodes))
	var kept []GraphNode
	for _, n := range nodes {
		if n.IsIDRoot || n.Canonical == root {
			keep[n.Canonical] = true
			kept = append(kept, n)
		}
	}
	var keptEdges []GraphEdge
	for _, e := range edges {
		if keep[e.From] && keep[e.To] {
			keptEdges = append(keptEdges, e)
		}
	}
	return kept, keptEdges
}

func makeGraphNode(dna *Dna, idx *PointerIndex, ids *IdIndex, canonical uint64) GraphNode {
	n := GraphNode{Canonical: canonical}
	tr, ok := idx.ResolveTyped(dna, canonical)
	if ok {
		n.Code = tr.Entry.Block.Head.CodeString()
		n.SDNANr = int(tr.Entry.Block.Head.SDNANr)
		if n.SDNANr >= 0 && n.SDNANr < len(dna.Structs) {
			n.TypeName = dna.Types[dna.Structs[n.SDNANr].TypeIdx]
		}
	}
	if ids != nil {
		if rec, ok := ids.ByCanonicalPtr[canonical]; ok {
			n.IDName = rec.IDName
			n.IsIDRoot = true
		}
	}
	return n
}

// BuildIDGraph scans every ID record's references and keeps only the
// edges whose target is itself ID-rooted, with nodes pre-populated from
// the ID index. prefixFilter and typeFilter, when non-empty, restrict
// which owner id_names / type_names are scanned.
func BuildIDGraph(dna *Dna, idx *PointerIndex, ids *IdIndex, opts GraphOptions, prefixFilter, typeFilter string) (GraphResult, error) {
	nodes := make(map[uint64]GraphNode, len(ids.Records))
	for _, rec := range ids.Records {
		nodes[rec.Canonical] = GraphNode{
			Canonical: rec.Canonical,
			Code:      rec.Code,
			SDNANr:    rec.SDNANr,
			TypeName:  rec.TypeName,
			IDName:    rec.IDName,
			IsIDRoot:  true,
		}
	}

	edgeSeen := make(map[edgeKey]struct{})
	var edges []GraphEdge
	trunc := TruncNone

	for _, rec := range ids.Records {
		if prefixFilter != "" && !hasPrefix(rec.IDName, prefixFilter) {
			continue
		}
		if typeFilter != "" && rec.TypeName != typeFilter {
			continue
		}
		refs, err := ScanRefsFromPtr(dna, idx, ids, rec.Canonical, opts.RefOpts)
		if err != nil {
			return GraphResult{}, err
		}
		for _, r := range refs {
			if r.Resolved == nil {
				continue
			}
			if _, isIDRooted := ids.ByCanonicalPtr[r.Resolved.Canonical]; !isIDRooted {
				continue
			}
			key := edgeKey{from: rec.Canonical, to: r.Resolved.Canonical, field: r.Field}
			if _, ok := edgeSeen[key]; ok {
				continue
			}
			if len(edges) >= opts.MaxEdges {
				trunc = TruncMaxEdges
				continue
			}
			edgeSeen[key] = struct{}{}
			edges = append(edges, GraphEdge{From: rec.Canonical, To: r.Resolved.Canonical, Field: r.Field})
		}
	}

	nodeList := make([]GraphNode, 0, len(nodes))
	for _, n := range nodes {
		nodeList = append(nodeList, n)
	}
	sort.Slice(nodeList, func(i, j int) bool { return nodeList[i].Canonical < nodeList[j].Canonical })
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Field < edges[j].Field
	})

	return GraphResult{Nodes: nodeList, Edges: edges, Truncation: trunc}, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
