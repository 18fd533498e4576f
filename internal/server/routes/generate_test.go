package routes

import (
	"encoding/json"
	"testing"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/pkg/kg"
)

func TestGraphCategory(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{"empty defaults to legal concept", "", kg.CategoryLegalConcept},
		{"template name is not a stored category", "Criminal Law", kg.CategoryLegalConcept},
		{"valid enum value kept", kg.CategoryCaseAnalysis, kg.CategoryCaseAnalysis},
		{"custom kept", kg.CategoryCustom, kg.CategoryCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := graphCategory(tt.requested); got != tt.want {
				t.Errorf("graphCategory(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestGraphFromCase(t *testing.T) {
	analysis, err := json.Marshal(map[string]any{
		"relevantLaws": []map[string]any{
			{"name": "Indian Contract Act", "description": "Governs contracts", "relevance": 0.9},
		},
	})
	if err != nil {
		t.Fatalf("marshal analysis: %v", err)
	}

	record := db.Case{
		ID:              "abc123",
		Title:           "Breach of Supply Agreement",
		Description:     "Supplier failed to deliver",
		CaseType:        "Civil",
		Status:          db.CaseStatusAnalyzed,
		AnalysisResults: analysis,
		Tags:            []string{"contract"},
	}

	g := graphFromCase(record)

	// case node + type node + one law + one tag
	if len(g.Nodes) != 4 {
		t.Fatalf("graphFromCase() got %d nodes, want 4", len(g.Nodes))
	}
	if g.Nodes[0].ID != "case-abc123" {
		t.Errorf("root node id = %q, want case-abc123", g.Nodes[0].ID)
	}

	// Malformed analysis just yields a sparser graph, never an error.
	record.AnalysisResults = json.RawMessage(`not json`)
	sparse := graphFromCase(record)
	if len(sparse.Nodes) != 3 {
		t.Errorf("graphFromCase() with bad analysis got %d nodes, want 3", len(sparse.Nodes))
	}
}
