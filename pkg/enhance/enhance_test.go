package enhance

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/legalmind/backend/pkg/ai"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/kg"
)

type mockChatClient struct {
	response string
	err      error
}

func (m *mockChatClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return m.response, m.err
}

func (m *mockChatClient) GenerateChat(ctx context.Context, messages []ai.ChatMessage, opts ...ai.GenerateOption) (string, error) {
	return m.response, m.err
}

func (m *mockChatClient) GenerateChatWithFormat(ctx context.Context, name, description string, messages []ai.ChatMessage, out any, opts ...ai.GenerateOption) error {
	if m.err != nil {
		return m.err
	}
	return ai.UnmarshalFlexible(m.response, out)
}

func (m *mockChatClient) ResetMetrics()               {}
func (m *mockChatClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func baseGraph() kg.Graph {
	return kg.Graph{
		Nodes: []kg.Node{
			{ID: "contract", Label: "Contract", Group: "Legal Concept", Size: 10},
			{ID: "offer", Label: "Offer", Group: "Legal Concept", Size: 10},
		},
		Edges: []kg.Edge{
			{Source: "contract", Target: "offer", Label: "requires", Weight: 1},
		},
	}
}

func TestEnhance_MergesSuggestedNodesAndEdges(t *testing.T) {
	client := &mockChatClient{
		response: `{
			"nodes": [
				{"id": "consideration", "label": "Consideration", "group": "Legal Concept", "description": "Value exchanged between parties"}
			],
			"edges": [
				{"source": "contract", "target": "consideration", "label": "requires"}
			]
		}`,
	}

	got, err := NewEnhancer(client).Enhance(context.Background(), baseGraph(), "")
	if err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}

	if len(got.Nodes) != 3 {
		t.Fatalf("Enhance() got %d nodes, want 3", len(got.Nodes))
	}
	if len(got.Edges) != 2 {
		t.Fatalf("Enhance() got %d edges, want 2", len(got.Edges))
	}

	added := got.Nodes[2]
	if added.ID != "consideration" || added.Size != kg.DefaultNodeSize {
		t.Errorf("added node = %+v, want id consideration with default size", added)
	}
	if got.Edges[1].Weight != kg.DefaultEdgeWeight {
		t.Errorf("added edge weight = %v, want default", got.Edges[1].Weight)
	}
}

func TestEnhance_SkipsDuplicateNodeIDs(t *testing.T) {
	client := &mockChatClient{
		response: `{
			"nodes": [
				{"id": "contract", "label": "Shadow Contract", "group": "Legal Concept"},
				{"id": "  ", "label": "Blank", "group": "Legal Concept"}
			],
			"edges": []
		}`,
	}

	got, err := NewEnhancer(client).Enhance(context.Background(), baseGraph(), "")
	if err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}

	if len(got.Nodes) != 2 {
		t.Fatalf("Enhance() got %d nodes, want 2 (duplicate and blank skipped)", len(got.Nodes))
	}
	if got.Nodes[0].Label != "Contract" {
		t.Errorf("existing node label = %q, want original label kept", got.Nodes[0].Label)
	}
}

func TestEnhance_DropsDanglingSuggestedEdges(t *testing.T) {
	client := &mockChatClient{
		response: `{
			"nodes": [],
			"edges": [
				{"source": "contract", "target": "ghost", "label": "haunts"},
				{"source": "contract", "target": "offer", "label": "also requires"}
			]
		}`,
	}

	got, err := NewEnhancer(client).Enhance(context.Background(), baseGraph(), "")
	if err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}

	if len(got.Edges) != 2 {
		t.Fatalf("Enhance() got %d edges, want 2 (dangling edge dropped)", len(got.Edges))
	}
	for _, e := range got.Edges {
		if e.Target == "ghost" {
			t.Errorf("dangling edge survived: %+v", e)
		}
	}
}

func TestEnhance_UpstreamFailureLeavesInputUntouched(t *testing.T) {
	client := &mockChatClient{err: errors.New("model unavailable")}

	base := baseGraph()
	want := baseGraph()

	_, err := NewEnhancer(client).Enhance(context.Background(), base, "")
	if err == nil {
		t.Fatal("Enhance() expected error")
	}

	appErr, ok := apperr.As(err)
	if !ok || appErr.Type != apperr.TypeUpstream {
		t.Errorf("Enhance() error = %v, want upstream app error", err)
	}
	if !reflect.DeepEqual(base, want) {
		t.Errorf("input graph was mutated: %+v", base)
	}
}

func TestEnhance_UnusableOutputIsNotAnUpstreamFailure(t *testing.T) {
	// A model that answers in prose fails differently from one that is
	// unreachable: callers see TypeEnrichment for the former and
	// TypeUpstream for the latter.
	proseClient := &mockChatClient{response: `I cannot help with that request.`}
	downClient := &mockChatClient{err: errors.New("connection refused")}

	_, proseErr := NewEnhancer(proseClient).Enhance(context.Background(), baseGraph(), "")
	if proseErr == nil {
		t.Fatal("Enhance() with prose output expected error")
	}
	proseApp, ok := apperr.As(proseErr)
	if !ok || proseApp.Type != apperr.TypeEnrichment {
		t.Errorf("prose output error type = %v, want %v", proseErr, apperr.TypeEnrichment)
	}

	_, downErr := NewEnhancer(downClient).Enhance(context.Background(), baseGraph(), "")
	downApp, ok := apperr.As(downErr)
	if !ok || downApp.Type != apperr.TypeUpstream {
		t.Errorf("transport error type = %v, want %v", downErr, apperr.TypeUpstream)
	}

	if proseApp != nil && downApp != nil && proseApp.Type == downApp.Type {
		t.Error("unusable output and transport failure must not share an error type")
	}
}

func TestEnhance_MalformedModelOutputIsRepaired(t *testing.T) {
	client := &mockChatClient{
		response: `{nodes: [{id: 'estoppel', label: 'Promissory Estoppel', group: 'Legal Concept'}], edges: [],}`,
	}

	got, err := NewEnhancer(client).Enhance(context.Background(), baseGraph(), "")
	if err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Fatalf("Enhance() got %d nodes, want 3", len(got.Nodes))
	}
}
