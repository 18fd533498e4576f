package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/legalmind/backend/pkg/ai"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/kg"

	"github.com/pkoukk/tiktoken-go"
)

const enhancePrompt = `
# Task Context
You are a legal knowledge engineer. You will be given an existing legal knowledge graph as JSON, and optionally excerpts of a source document. Your task is to enrich the graph with additional legal concepts and relationships.

# Background Data
- Current graph (nodes and edges): %s
- Document excerpt (may be empty): %s

# Detailed Task Description & Rules
- Suggest NEW nodes and edges only; never repeat nodes that already exist in the graph.
- Every node needs a unique id, a human-readable label, a group (its entity type, e.g. "Legal Concept", "Statute", "Precedent"), and a one-sentence description.
- Every edge connects two node ids (existing or newly suggested) with a short relationship label such as "interpreted by" or "codified in".
- Edges must never reference a node id that is neither in the current graph nor in your suggested nodes.
- Prefer depth over breadth: a few well-grounded additions beat many speculative ones.

# Output Formatting
Return a JSON object with this structure:
{
  "nodes": [ { "id": string, "label": string, "group": string, "description": string } ],
  "edges": [ { "source": string, "target": string, "label": string } ]
}
Output must be valid JSON only (no commentary, no extra text).
`

const (
	defaultTemperature  = 0.3
	defaultMaxTokens    = 2000
	defaultDocTokenCap  = 6000
	enhanceSchemaName   = "graph_enrichment"
	enhanceSchemaDetail = "Additional nodes and edges for a legal knowledge graph"
)

type enrichment struct {
	Nodes []kg.Node `json:"nodes"`
	Edges []kg.Edge `json:"edges"`
}

// Enhancer enriches legal knowledge graphs with AI-suggested nodes and
// edges. It never mutates the input graph; callers decide whether to keep
// the enriched result.
type Enhancer struct {
	client      ai.ChatClient
	docTokenCap int
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithDocTokenCap overrides the token budget for document excerpts that are
// embedded into the enrichment prompt.
func WithDocTokenCap(limit int) Option {
	return func(e *Enhancer) {
		if limit > 0 {
			e.docTokenCap = limit
		}
	}
}

// NewEnhancer creates an Enhancer backed by the given chat client.
func NewEnhancer(client ai.ChatClient, opts ...Option) *Enhancer {
	e := &Enhancer{
		client:      client,
		docTokenCap: defaultDocTokenCap,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Enhance asks the model for additional nodes and edges for base and
// returns a new merged graph. The input graph is never modified, so a
// failed enrichment leaves the caller's graph exactly as it was.
//
// Suggested nodes whose ids collide with existing ones are skipped, and
// suggested edges that reference unknown ids are dropped.
func (e *Enhancer) Enhance(
	ctx context.Context,
	base kg.Graph,
	document string,
) (kg.Graph, error) {
	graphJSON, err := json.Marshal(base)
	if err != nil {
		return kg.Graph{}, apperr.Internal(fmt.Errorf("encode graph for enrichment: %w", err))
	}

	excerpt, err := truncateToTokens(document, e.docTokenCap)
	if err != nil {
		return kg.Graph{}, apperr.Internal(fmt.Errorf("tokenize document excerpt: %w", err))
	}

	prompt := fmt.Sprintf(enhancePrompt, graphJSON, excerpt)

	var suggestion enrichment
	err = e.client.GenerateChatWithFormat(
		ctx,
		enhanceSchemaName,
		enhanceSchemaDetail,
		[]ai.ChatMessage{{Role: "user", Message: prompt}},
		&suggestion,
		ai.WithTemperature(defaultTemperature),
		ai.WithMaxTokens(defaultMaxTokens),
	)
	if err != nil {
		if errors.Is(err, ai.ErrMalformedOutput) {
			return kg.Graph{}, apperr.Enrichment("graph enrichment returned unusable output", err)
		}
		return kg.Graph{}, apperr.Upstream("graph enrichment failed", err)
	}

	return merge(base, suggestion), nil
}

func merge(base kg.Graph, suggestion enrichment) kg.Graph {
	out := kg.Graph{
		Nodes: make([]kg.Node, 0, len(base.Nodes)+len(suggestion.Nodes)),
		Edges: make([]kg.Edge, 0, len(base.Edges)+len(suggestion.Edges)),
	}
	out.Nodes = append(out.Nodes, base.Nodes...)
	out.Edges = append(out.Edges, base.Edges...)

	known := base.NodeIDs()
	for _, n := range suggestion.Nodes {
		id := strings.TrimSpace(n.ID)
		if id == "" {
			continue
		}
		if _, exists := known[id]; exists {
			continue
		}
		n.ID = id
		known[id] = struct{}{}
		out.Nodes = append(out.Nodes, n)
	}

	out.Edges = append(out.Edges, suggestion.Edges...)
	return out.DropDanglingEdges().Normalize()
}

func truncateToTokens(text string, limit int) (string, error) {
	if text == "" || limit <= 0 {
		return "", nil
	}

	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", err
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= limit {
		return text, nil
	}
	return enc.Decode(tokens[:limit]), nil
}
