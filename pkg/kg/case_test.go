package kg

import "testing"

func TestBuildFromCaseNodeCounts(t *testing.T) {
	tests := []struct {
		name      string
		record    CaseRecord
		wantNodes int
		wantEdges int
	}{
		{
			name: "no analysis results",
			record: CaseRecord{
				ID:          "abc123",
				Title:       "State vs. Kumar",
				Description: "A fraud case",
				CaseType:    "Criminal",
			},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "laws and tags",
			record: CaseRecord{
				ID:          "abc123",
				Title:       "State vs. Kumar",
				Description: "A fraud case",
				CaseType:    "Criminal",
				RelevantLaws: []RelevantLaw{
					{Name: "Section 420 IPC", Description: "Cheating", Relevance: 0.85},
					{Name: "Article 21", Description: "Personal liberty", Relevance: 0.72},
				},
				Tags: []string{"Criminal", "Fraud", "Property"},
			},
			wantNodes: 2 + 2 + 3,
			wantEdges: 1 + 2 + 3,
		},
		{
			name: "duplicate tags collapse",
			record: CaseRecord{
				ID:       "xyz",
				Title:    "T",
				CaseType: "Civil",
				Tags:     []string{"Fraud", "Fraud", "Property"},
			},
			wantNodes: 2 + 2,
			wantEdges: 1 + 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildFromCase(tt.record)
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("got %d nodes, want %d", len(g.Nodes), tt.wantNodes)
			}
			if len(g.Edges) != tt.wantEdges {
				t.Errorf("got %d edges, want %d", len(g.Edges), tt.wantEdges)
			}

			ids := g.NodeIDs()
			for _, e := range g.Edges {
				if _, ok := ids[e.Source]; !ok {
					t.Errorf("edge source %q missing from nodes", e.Source)
				}
				if _, ok := ids[e.Target]; !ok {
					t.Errorf("edge target %q missing from nodes", e.Target)
				}
			}
		})
	}
}

func TestBuildFromCaseStructure(t *testing.T) {
	g := BuildFromCase(CaseRecord{
		ID:          "42",
		Title:       "Acme vs. Bolt",
		Description: "Contract dispute over delivery terms",
		CaseType:    "Corporate",
		RelevantLaws: []RelevantLaw{
			{Name: "Section 73", Description: "Compensation for breach", Relevance: 0.9},
		},
		Tags: []string{"Contract"},
	})

	root := g.Nodes[0]
	if root.ID != "case-42" || root.Group != "case" || root.Size != 15 {
		t.Errorf("unexpected root node %+v", root)
	}
	if root.Description != "Contract dispute over delivery terms" {
		t.Errorf("root description = %q", root.Description)
	}

	typeNode := g.Nodes[1]
	if typeNode.ID != "type-Corporate" || typeNode.Group != "caseType" {
		t.Errorf("unexpected type node %+v", typeNode)
	}

	var lawEdge *Edge
	for i := range g.Edges {
		if g.Edges[i].Target == "law-0" {
			lawEdge = &g.Edges[i]
		}
	}
	if lawEdge == nil {
		t.Fatal("no edge to law-0")
	}
	if lawEdge.Label != "references" {
		t.Errorf("law edge label = %q, want references", lawEdge.Label)
	}
	if lawEdge.Weight != 1.8 {
		t.Errorf("law edge weight = %v, want relevance*2 = 1.8", lawEdge.Weight)
	}

	var tagEdge *Edge
	for i := range g.Edges {
		if g.Edges[i].Target == "tag-Contract" {
			tagEdge = &g.Edges[i]
		}
	}
	if tagEdge == nil {
		t.Fatal("no edge to tag-Contract")
	}
	if tagEdge.Label != "tagged as" || tagEdge.Weight != 1 {
		t.Errorf("unexpected tag edge %+v", tagEdge)
	}
}
