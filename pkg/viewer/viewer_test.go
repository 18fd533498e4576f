package viewer

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/legalmind/backend/pkg/kg"
)

func readySession(t *testing.T, g kg.Graph) *Session {
	t.Helper()

	s := NewSession()
	if err := s.BeginUpload(); err != nil {
		t.Fatalf("BeginUpload() error = %v", err)
	}
	if err := s.BeginGenerate(); err != nil {
		t.Fatalf("BeginGenerate() error = %v", err)
	}
	if err := s.GraphGenerated("Contract Dispute", g); err != nil {
		t.Fatalf("GraphGenerated() error = %v", err)
	}
	return s
}

func sampleGraph() kg.Graph {
	return kg.Graph{
		Nodes: []kg.Node{
			{ID: "court", Label: "High Court", Group: "COURT", Size: 12},
			{ID: "statute", Label: "Contract Act", Group: "STATUTE", Size: 10},
			{ID: "judge", Label: "Justice Rao", Group: "JUDGE", Size: 10},
		},
		Edges: []kg.Edge{
			{Source: "court", Target: "statute", Label: "applies", Weight: 1},
			{Source: "judge", Target: "court", Label: "presides at", Weight: 1},
		},
	}
}

func TestSession_UploadFlowStates(t *testing.T) {
	s := NewSession()
	if s.State() != StateIdle {
		t.Fatalf("new session state = %q, want idle", s.State())
	}

	if err := s.BeginGenerate(); err == nil {
		t.Error("BeginGenerate() from idle should fail")
	}

	if err := s.BeginUpload(); err != nil {
		t.Fatalf("BeginUpload() error = %v", err)
	}
	if err := s.UploadFailed(); err != nil {
		t.Fatalf("UploadFailed() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state after upload failure = %q, want idle", s.State())
	}

	s = readySession(t, sampleGraph())
	if s.State() != StateReady {
		t.Errorf("state after generation = %q, want ready", s.State())
	}
}

func TestSession_EnrichmentFailureKeepsGraph(t *testing.T) {
	s := readySession(t, sampleGraph())
	before := s.Graph()

	if err := s.BeginEnrichment(); err != nil {
		t.Fatalf("BeginEnrichment() error = %v", err)
	}
	if err := s.EnrichmentFailed("model returned garbage"); err != nil {
		t.Fatalf("EnrichmentFailed() error = %v", err)
	}

	if s.State() != StateReady {
		t.Errorf("state = %q, want ready", s.State())
	}
	if s.EnrichmentOutcome() != StateEnrichmentFailed {
		t.Errorf("outcome = %q, want enrichment_failed", s.EnrichmentOutcome())
	}
	if s.Warning() == "" {
		t.Error("warning should be surfaced after failed enrichment")
	}
	if !reflect.DeepEqual(s.Graph(), before) {
		t.Error("failed enrichment must not change the loaded graph")
	}
}

func TestSession_EnrichmentSuccessSwapsGraph(t *testing.T) {
	s := readySession(t, sampleGraph())

	enriched := sampleGraph()
	enriched.Nodes = append(enriched.Nodes, kg.Node{
		ID: "precedent", Label: "Carlill v Carbolic", Group: "PRECEDENT", Size: 10,
	})

	if err := s.BeginEnrichment(); err != nil {
		t.Fatalf("BeginEnrichment() error = %v", err)
	}
	if err := s.EnrichmentSucceeded(enriched); err != nil {
		t.Fatalf("EnrichmentSucceeded() error = %v", err)
	}

	if len(s.Graph().Nodes) != 4 {
		t.Errorf("graph has %d nodes after enrichment, want 4", len(s.Graph().Nodes))
	}
	if s.EnrichmentOutcome() != StateEnriched {
		t.Errorf("outcome = %q, want enriched", s.EnrichmentOutcome())
	}
}

func TestSession_ZoomAlwaysClamped(t *testing.T) {
	s := NewSession()

	for range 50 {
		s.ZoomIn()
	}
	if s.Zoom() != MaxZoom {
		t.Errorf("zoom after repeated increments = %v, want %v", s.Zoom(), MaxZoom)
	}

	for range 100 {
		s.ZoomOut()
	}
	if s.Zoom() != MinZoom {
		t.Errorf("zoom after repeated decrements = %v, want %v", s.Zoom(), MinZoom)
	}

	s.SetZoom(9.5)
	if s.Zoom() != MaxZoom {
		t.Errorf("zoom after oversized slider value = %v, want %v", s.Zoom(), MaxZoom)
	}
	s.SetZoom(-1)
	if s.Zoom() != MinZoom {
		t.Errorf("zoom after negative slider value = %v, want %v", s.Zoom(), MinZoom)
	}
	s.SetZoom(1.3)
	if s.Zoom() != 1.3 {
		t.Errorf("zoom = %v, want 1.3", s.Zoom())
	}
}

func TestSession_ResetViewRestoresCameraAndSelection(t *testing.T) {
	s := readySession(t, sampleGraph())

	s.SetZoom(1.8)
	s.Pan(40, -25)
	if err := s.SelectNode("court"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}

	s.ResetView()

	if s.Zoom() != 1.0 {
		t.Errorf("zoom after reset = %v, want 1.0", s.Zoom())
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("selection should be cleared on reset")
	}
}

func TestSession_SelectionToggle(t *testing.T) {
	s := readySession(t, sampleGraph())

	if err := s.SelectNode("statute"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	n, ok := s.SelectedNode()
	if !ok || n.Label != "Contract Act" {
		t.Fatalf("SelectedNode() = %+v, %v; want Contract Act", n, ok)
	}

	// re-click clears
	if err := s.SelectNode("statute"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("re-clicking the selected node should clear selection")
	}

	// click on empty canvas clears
	if err := s.SelectNode("court"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if err := s.SelectNode(""); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("clicking empty canvas should clear selection")
	}
}

func TestSession_FilterRecomputesVisibleSet(t *testing.T) {
	s := readySession(t, sampleGraph())

	if err := s.SelectNode("judge"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	if err := s.SetFilter("COURT"); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}

	visible := s.Visible()
	if len(visible.Nodes) != 1 || visible.Nodes[0].ID != "court" {
		t.Errorf("visible nodes = %+v, want only court", visible.Nodes)
	}
	if len(visible.Edges) != 0 {
		t.Errorf("visible edges = %+v, want none (endpoints filtered out)", visible.Edges)
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("selection of a filtered-out node should be cleared")
	}

	if err := s.SetFilter(kg.FilterAll); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	if len(s.Visible().Nodes) != 3 || len(s.Visible().Edges) != 2 {
		t.Errorf("identity filter should restore full graph, got %d nodes %d edges",
			len(s.Visible().Nodes), len(s.Visible().Edges))
	}
}

func TestSession_ExportRoundTrip(t *testing.T) {
	s := readySession(t, sampleGraph())

	name, data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if name != "Contract Dispute.json" {
		t.Errorf("export name = %q, want title-based name", name)
	}

	var got kg.Graph
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal exported graph: %v", err)
	}
	if !reflect.DeepEqual(got, s.Graph()) {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, s.Graph())
	}
}

func TestSession_ExportFallbackName(t *testing.T) {
	s := NewSession()
	if err := s.BeginUpload(); err != nil {
		t.Fatalf("BeginUpload() error = %v", err)
	}
	if err := s.BeginGenerate(); err != nil {
		t.Fatalf("BeginGenerate() error = %v", err)
	}
	if err := s.GraphGenerated("", sampleGraph()); err != nil {
		t.Fatalf("GraphGenerated() error = %v", err)
	}

	name, _, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if name != "knowledge-graph.json" {
		t.Errorf("export name = %q, want knowledge-graph.json", name)
	}
}

func TestSession_ExportBlockedOutsideReady(t *testing.T) {
	s := NewSession()
	if _, _, err := s.Export(); err == nil {
		t.Error("Export() from idle should fail")
	}
}

func TestSession_SelectedDetail(t *testing.T) {
	s := readySession(t, sampleGraph())

	if _, ok := s.SelectedDetail(); ok {
		t.Fatal("SelectedDetail() before selection should report ok=false")
	}

	if err := s.SelectNode("court"); err != nil {
		t.Fatalf("SelectNode() error = %v", err)
	}
	detail, ok := s.SelectedDetail()
	if !ok {
		t.Fatal("SelectedDetail() after selection should report ok=true")
	}
	if detail.Label != "High Court" {
		t.Errorf("Label = %q, want %q", detail.Label, "High Court")
	}
	if detail.Type != "COURT" {
		t.Errorf("Type = %q, want COURT", detail.Type)
	}
	if detail.Color != kg.ColorFor("COURT") {
		t.Errorf("Color = %q, want %q", detail.Color, kg.ColorFor("COURT"))
	}
}

func TestVal(t *testing.T) {
	tests := []struct {
		name string
		node kg.Node
		want float64
	}{
		{"size only", kg.Node{Size: 10}, 10},
		{"with centrality", kg.Node{Size: 10, Centrality: 0.5}, 15},
		{"zero centrality is identity", kg.Node{Size: 12, Centrality: 0}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Val(tt.node); got != tt.want {
				t.Errorf("Val() = %v, want %v", got, tt.want)
			}
		})
	}
}
