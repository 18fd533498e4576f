package kg

// Node is a single vertex in a knowledge graph. IDs are semantic slugs
// unique within one graph ("case-<id>", "law-0", ...); cross-graph
// collisions are fine because graphs are independent documents.
type Node struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Group       string  `json:"group"`
	Description string  `json:"description,omitempty"`
	Size        float64 `json:"size"`
	// Centrality is only populated on graphs that came back from the
	// enrichment step; the store never computes it.
	Centrality float64 `json:"centrality,omitempty"`
}

// Edge is a directed connection between two node IDs of the same graph.
type Edge struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Label      string  `json:"label,omitempty"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Graph is a node/edge set as persisted and exchanged over the API.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

const (
	DefaultNodeSize   = 10
	DefaultEdgeWeight = 1
)

// NodeIDs returns the set of node IDs in g.
func (g Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// DropDanglingEdges returns a copy of g without edges whose source or
// target does not reference a node of g. Dangling edges are tolerated
// rather than treated as an error so that an ill-formed update or LLM
// response can never crash a consumer.
func (g Graph) DropDanglingEdges() Graph {
	ids := g.NodeIDs()
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			continue
		}
		if _, ok := ids[e.Target]; !ok {
			continue
		}
		edges = append(edges, e)
	}
	out := g
	out.Edges = edges
	return out
}

// Normalize applies schema defaults to nodes and edges that were supplied
// without a size or weight.
func (g Graph) Normalize() Graph {
	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	for i := range nodes {
		if nodes[i].Size == 0 {
			nodes[i].Size = DefaultNodeSize
		}
	}
	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)
	for i := range edges {
		if edges[i].Weight == 0 {
			edges[i].Weight = DefaultEdgeWeight
		}
	}
	return Graph{Nodes: nodes, Edges: edges}
}

// FilterByGroup keeps only nodes whose group matches and only edges with
// both endpoints surviving the filter. The "all" group is the identity
// filter.
func (g Graph) FilterByGroup(group string) Graph {
	if group == FilterAll {
		return g
	}

	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Group == group {
			nodes = append(nodes, n)
		}
	}
	return Graph{Nodes: nodes, Edges: g.Edges}.DropDanglingEdges()
}

// FilterAll is the identity filter value.
const FilterAll = "all"
