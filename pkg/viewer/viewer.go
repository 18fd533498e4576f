// Package viewer models the interactive graph view as a headless session:
// the upload-to-render state machine, camera state, type filtering, node
// selection, and JSON export. API consumers drive it from their own UI.
package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/legalmind/backend/pkg/kg"
)

// State is a phase of the upload-to-render flow.
type State string

const (
	StateIdle              State = "idle"
	StateUploading         State = "uploading"
	StateGraphGenerating   State = "graph_generating"
	StateEnrichmentPending State = "enrichment_pending"
	StateEnriched          State = "enriched"
	StateEnrichmentFailed  State = "enrichment_failed"
	StateReady             State = "ready"
)

const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1

	defaultExportName = "knowledge-graph"
)

// Session holds the state of one graph view. It is not safe for concurrent
// use; each client connection gets its own session.
type Session struct {
	state State

	title string
	graph kg.Graph

	filter   string
	filtered kg.Graph

	zoom     float64
	panX     float64
	panY     float64
	selected string

	// warning carries the non-fatal message of a failed enrichment so the
	// UI can surface it once the session is ready.
	warning    string
	enrichment State
}

// NewSession returns an idle session with the camera at its defaults.
func NewSession() *Session {
	return &Session{
		state:  StateIdle,
		filter: kg.FilterAll,
		zoom:   1.0,
	}
}

func (s *Session) State() State    { return s.state }
func (s *Session) Title() string   { return s.title }
func (s *Session) Zoom() float64   { return s.zoom }
func (s *Session) Filter() string  { return s.filter }
func (s *Session) Warning() string { return s.warning }

// Graph returns the currently loaded graph, post-enrichment when an
// enrichment succeeded.
func (s *Session) Graph() kg.Graph { return s.graph }

// Visible returns the node/edge set after the type filter, which is what
// a renderer should draw.
func (s *Session) Visible() kg.Graph { return s.filtered }

func (s *Session) transitionErr(op string) error {
	return fmt.Errorf("%s not allowed in state %q", op, s.state)
}

// BeginUpload starts a new document upload. Any previously loaded graph is
// discarded.
func (s *Session) BeginUpload() error {
	if s.state != StateIdle && s.state != StateReady {
		return s.transitionErr("upload")
	}
	*s = *NewSession()
	s.state = StateUploading
	return nil
}

// UploadFailed records a transport failure during upload and returns the
// session to idle.
func (s *Session) UploadFailed() error {
	if s.state != StateUploading {
		return s.transitionErr("upload failure")
	}
	s.state = StateIdle
	return nil
}

// BeginGenerate moves the session into graph generation once the upload
// has been accepted.
func (s *Session) BeginGenerate() error {
	if s.state != StateUploading {
		return s.transitionErr("generate")
	}
	s.state = StateGraphGenerating
	return nil
}

// GenerateFailed records a failed generation call and returns to idle.
func (s *Session) GenerateFailed() error {
	if s.state != StateGraphGenerating {
		return s.transitionErr("generation failure")
	}
	s.state = StateIdle
	return nil
}

// GraphGenerated loads the freshly built graph. The session becomes ready
// immediately; callers that want enrichment call BeginEnrichment next.
func (s *Session) GraphGenerated(title string, g kg.Graph) error {
	if s.state != StateGraphGenerating {
		return s.transitionErr("graph load")
	}
	s.title = title
	s.setGraph(g)
	s.state = StateReady
	return nil
}

// BeginEnrichment marks the optional enrichment call as in flight.
func (s *Session) BeginEnrichment() error {
	if s.state != StateReady {
		return s.transitionErr("enrichment")
	}
	s.state = StateEnrichmentPending
	return nil
}

// EnrichmentSucceeded swaps in the enriched graph and readies the session.
func (s *Session) EnrichmentSucceeded(g kg.Graph) error {
	if s.state != StateEnrichmentPending {
		return s.transitionErr("enrichment result")
	}
	s.setGraph(g)
	s.enrichment = StateEnriched
	s.state = StateReady
	return nil
}

// EnrichmentFailed keeps the pre-enrichment graph and readies the session
// with a warning. Enrichment is never on the critical path.
func (s *Session) EnrichmentFailed(warning string) error {
	if s.state != StateEnrichmentPending {
		return s.transitionErr("enrichment result")
	}
	s.warning = warning
	s.enrichment = StateEnrichmentFailed
	s.state = StateReady
	return nil
}

// EnrichmentOutcome reports how the optional enrichment step ended:
// StateEnriched, StateEnrichmentFailed, or "" when it never ran.
func (s *Session) EnrichmentOutcome() State { return s.enrichment }

func (s *Session) setGraph(g kg.Graph) {
	s.graph = g.DropDanglingEdges().Normalize()
	s.refilter()
}

// SetFilter changes the type filter and recomputes the visible set
// immediately.
func (s *Session) SetFilter(group string) error {
	if s.state != StateReady {
		return s.transitionErr("filter")
	}
	s.filter = group
	s.refilter()
	return nil
}

func (s *Session) refilter() {
	s.filtered = s.graph.FilterByGroup(s.filter)

	// A filtered-out node cannot stay selected.
	if s.selected != "" {
		if _, ok := s.filtered.NodeIDs()[s.selected]; !ok {
			s.selected = ""
		}
	}
}

// ZoomIn increments the zoom by one step, clamped to MaxZoom.
func (s *Session) ZoomIn() {
	s.SetZoom(s.zoom + ZoomStep)
}

// ZoomOut decrements the zoom by one step, clamped to MinZoom.
func (s *Session) ZoomOut() {
	s.SetZoom(s.zoom - ZoomStep)
}

// SetZoom sets an absolute zoom level, clamped to [MinZoom, MaxZoom].
func (s *Session) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	s.zoom = z
}

// Pan shifts the camera by the given deltas.
func (s *Session) Pan(dx, dy float64) {
	s.panX += dx
	s.panY += dy
}

// ResetView recenters the camera, restores zoom to 1.0 and clears the node
// selection. The filter is kept.
func (s *Session) ResetView() {
	s.zoom = 1.0
	s.panX = 0
	s.panY = 0
	s.selected = ""
}

// SelectNode toggles the selection of a visible node: selecting an already
// selected node clears the selection, as does an unknown id (a click on
// empty canvas).
func (s *Session) SelectNode(id string) error {
	if s.state != StateReady {
		return s.transitionErr("selection")
	}

	if id == "" || id == s.selected {
		s.selected = ""
		return nil
	}
	if _, ok := s.filtered.NodeIDs()[id]; !ok {
		s.selected = ""
		return nil
	}
	s.selected = id
	return nil
}

// SelectedNode returns the selected node's details for the inspector
// panel, or ok=false when nothing is selected.
func (s *Session) SelectedNode() (kg.Node, bool) {
	if s.selected == "" {
		return kg.Node{}, false
	}
	for _, n := range s.filtered.Nodes {
		if n.ID == s.selected {
			return n, true
		}
	}
	return kg.Node{}, false
}

// NodeDetail is what the inspector panel shows for a selected node.
type NodeDetail struct {
	Label       string
	Type        string
	Color       string
	Description string
	Centrality  float64
}

// SelectedDetail resolves the selected node into its display fields, or
// ok=false when nothing is selected.
func (s *Session) SelectedDetail() (NodeDetail, bool) {
	n, ok := s.SelectedNode()
	if !ok {
		return NodeDetail{}, false
	}
	return NodeDetail{
		Label:       n.Label,
		Type:        kg.NormalizeEntityType(n.Group),
		Color:       kg.ColorFor(n.Group),
		Description: n.Description,
		Centrality:  n.Centrality,
	}, true
}

// Val is the visual weight a renderer should use for a node: the stored
// size, scaled up by centrality when enrichment supplied one. The stored
// size itself is never rewritten.
func Val(n kg.Node) float64 {
	v := n.Size
	if n.Centrality > 0 {
		v *= 1 + n.Centrality
	}
	return v
}

// Export serializes the currently loaded graph (not the filtered view) to
// JSON, named after the graph's title.
func (s *Session) Export() (string, []byte, error) {
	if s.state != StateReady {
		return "", nil, s.transitionErr("export")
	}

	name := s.title
	if name == "" {
		name = defaultExportName
	}

	data, err := json.MarshalIndent(s.graph, "", "  ")
	if err != nil {
		return "", nil, err
	}
	return name + ".json", data, nil
}
