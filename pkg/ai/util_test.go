package ai

import (
	"errors"
	"testing"
)

func TestUnmarshalFlexible_GraphVariants(t *testing.T) {
	type node struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	type graph struct {
		Nodes []node `json:"nodes"`
	}

	tests := []struct {
		name  string
		input string
		want  graph
	}{
		{
			name:  "valid json",
			input: `{"nodes":[{"id":"n1","label":"Mens Rea"}]}`,
			want:  graph{Nodes: []node{{ID: "n1", Label: "Mens Rea"}}},
		},
		{
			name:  "unquoted keys and single quotes",
			input: `{nodes: [{id: 'n1', label: 'Mens Rea'}]}`,
			want:  graph{Nodes: []node{{ID: "n1", Label: "Mens Rea"}}},
		},
		{
			name:  "trailing comma",
			input: `{"nodes":[{"id":"n1","label":"Mens Rea"},]}`,
			want:  graph{Nodes: []node{{ID: "n1", Label: "Mens Rea"}}},
		},
		{
			name:  "truncated output",
			input: `{"nodes":[{"id":"n1","label":"Mens Rea"`,
			want:  graph{Nodes: []node{{ID: "n1", Label: "Mens Rea"}}},
		},
		{
			name:  "fenced in markdown",
			input: "```json\n{\"nodes\":[{\"id\":\"n1\",\"label\":\"Mens Rea\"}]}\n```",
			want:  graph{Nodes: []node{{ID: "n1", Label: "Mens Rea"}}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got graph
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if len(got.Nodes) != len(tc.want.Nodes) {
				t.Fatalf("UnmarshalFlexible() got %d nodes, want %d", len(got.Nodes), len(tc.want.Nodes))
			}
			for i := range got.Nodes {
				if got.Nodes[i] != tc.want.Nodes[i] {
					t.Fatalf("UnmarshalFlexible() nodes[%d] = %+v, want %+v", i, got.Nodes[i], tc.want.Nodes[i])
				}
			}
		})
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type graph struct {
		Nodes []string `json:"nodes"`
	}

	var got graph
	err := UnmarshalFlexible("the graph could not be generated", &got)
	if err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("UnmarshalFlexible() error = %v, want ErrMalformedOutput", err)
	}
}
