package kg

import "testing"

func TestBuildGenericTotality(t *testing.T) {
	categories := []string{
		"Criminal Law",
		"Constitutional Law",
		"Contract Law",
		"",
		"Maritime Law",
		"not a category at all",
	}

	for _, category := range categories {
		t.Run("category "+category, func(t *testing.T) {
			g := BuildGeneric(category)

			if len(g.Nodes) == 0 {
				t.Fatalf("BuildGeneric(%q) returned no nodes", category)
			}
			if len(g.Edges) == 0 {
				t.Fatalf("BuildGeneric(%q) returned no edges", category)
			}

			ids := g.NodeIDs()
			for _, e := range g.Edges {
				if _, ok := ids[e.Source]; !ok {
					t.Errorf("edge source %q not among nodes", e.Source)
				}
				if _, ok := ids[e.Target]; !ok {
					t.Errorf("edge target %q not among nodes", e.Target)
				}
			}
		})
	}
}

func TestBuildGenericUnknownFallsThroughToDefault(t *testing.T) {
	def := BuildGeneric("anything else")
	if def.Nodes[0].ID != "legal-system" {
		t.Errorf("default template root = %q, want legal-system", def.Nodes[0].ID)
	}
	if len(def.Nodes) != 6 {
		t.Errorf("default template has %d nodes, want 6", len(def.Nodes))
	}
	if len(def.Edges) != 9 {
		t.Errorf("default template has %d edges, want 9", len(def.Edges))
	}
}

func TestBuildGenericContractLaw(t *testing.T) {
	g := BuildGeneric("Contract Law")

	wantIDs := []string{"contract-law", "offer", "acceptance", "consideration", "breach"}
	if len(g.Nodes) != len(wantIDs) {
		t.Fatalf("Contract Law has %d nodes, want %d", len(g.Nodes), len(wantIDs))
	}
	for i, id := range wantIDs {
		if g.Nodes[i].ID != id {
			t.Errorf("node[%d].ID = %q, want %q", i, g.Nodes[i].ID, id)
		}
	}

	if len(g.Edges) != 5 {
		t.Fatalf("Contract Law has %d edges, want 5", len(g.Edges))
	}

	found := false
	for _, e := range g.Edges {
		if e.Source == "offer" && e.Target == "acceptance" && e.Label == "followed by" {
			found = true
		}
	}
	if !found {
		t.Error("missing edge offer -> acceptance with label \"followed by\"")
	}
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Legal Concept", true},
		{"Case Analysis", true},
		{"Statute Relationship", true},
		{"Custom", true},
		{"Criminal Law", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidCategory(tt.category); got != tt.want {
			t.Errorf("IsValidCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
