package kg

import "fmt"

// RelevantLaw is one statute reference produced by case analysis.
type RelevantLaw struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Relevance   float64 `json:"relevance"`
}

// CaseRecord carries the subset of a case document the graph builder needs.
type CaseRecord struct {
	ID           string
	Title        string
	Description  string
	CaseType     string
	RelevantLaws []RelevantLaw
	Tags         []string
}

// BuildFromCase projects a case record into a node/edge set: a root case
// node, one case-type node, one node per relevant law with edge weight
// relevance*2, and one node per distinct tag. A case without analysis
// results simply yields no law or tag nodes.
func BuildFromCase(c CaseRecord) Graph {
	caseID := "case-" + c.ID

	nodes := []Node{
		{
			ID:          caseID,
			Label:       c.Title,
			Group:       "case",
			Description: c.Description,
			Size:        15,
		},
		{
			ID:          "type-" + c.CaseType,
			Label:       c.CaseType,
			Group:       "caseType",
			Description: "Case type: " + c.CaseType,
			Size:        10,
		},
	}

	edges := []Edge{
		{
			Source: caseID,
			Target: "type-" + c.CaseType,
			Label:  "has type",
			Weight: 1,
		},
	}

	for i, law := range c.RelevantLaws {
		id := fmt.Sprintf("law-%d", i)
		nodes = append(nodes, Node{
			ID:          id,
			Label:       law.Name,
			Group:       "law",
			Description: law.Description,
			Size:        10,
		})
		edges = append(edges, Edge{
			Source: caseID,
			Target: id,
			Label:  "references",
			Weight: law.Relevance * 2,
		})
	}

	seen := make(map[string]struct{}, len(c.Tags))
	for _, tag := range c.Tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}

		id := "tag-" + tag
		nodes = append(nodes, Node{
			ID:          id,
			Label:       tag,
			Group:       "tag",
			Description: "Tag: " + tag,
			Size:        8,
		})
		edges = append(edges, Edge{
			Source: caseID,
			Target: id,
			Label:  "tagged as",
			Weight: 1,
		})
	}

	return Graph{Nodes: nodes, Edges: edges}
}
