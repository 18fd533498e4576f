package routes

import (
	"encoding/json"
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/enhance"
	"github.com/legalmind/backend/pkg/kg"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// EnhanceGraphHandler runs AI enrichment over a stored graph and returns
// the merged result without persisting it. Enrichment is best-effort: if
// the model call fails the stored graph comes back unchanged with a
// warning instead of an error, and the persisted document is never
// touched either way.
func EnhanceGraphHandler(c echo.Context) error {
	type enhanceGraphParams struct {
		ID string `param:"id" validate:"required"`
	}

	type enhanceGraphResponse struct {
		Success  bool     `json:"success"`
		Enhanced bool     `json:"enhanced"`
		Warning  string   `json:"warning,omitempty"`
		Data     kg.Graph `json:"data"`
	}

	params := new(enhanceGraphParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	stored, err := q.GetGraphByID(ctx, params.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Graph", params.ID)
		}
		return apperr.Internal(err)
	}

	user := c.(*middleware.AppContext).User
	if err := CanViewGraph(user, stored); err != nil {
		return err
	}

	var graph kg.Graph
	if err := json.Unmarshal(stored.Nodes, &graph.Nodes); err != nil {
		return apperr.Internal(err)
	}
	if err := json.Unmarshal(stored.Edges, &graph.Edges); err != nil {
		return apperr.Internal(err)
	}

	// When the graph came from a case, the attached document gives the
	// model context. Document problems degrade to enrichment without it.
	var document string
	if stored.CaseID != nil {
		record, err := q.GetCaseByID(ctx, *stored.CaseID)
		if err == nil && record.DocumentKey != "" {
			text, err := app.Docs.Text(ctx, record.DocumentKey, record.DocumentName)
			if err != nil {
				logger.Warn("document unavailable for enrichment",
					"graph_id", stored.ID,
					"case_id", record.ID,
					"error", err,
				)
			} else {
				document = text
			}
		}
	}

	enriched, err := enhance.NewEnhancer(app.AiClient).Enhance(ctx, graph, document)
	if err != nil {
		logger.Warn("graph enrichment failed", "graph_id", stored.ID, "error", err)
		warning := "AI enhancement unavailable, graph returned unchanged"
		if appErr, ok := apperr.As(err); ok && appErr.Type == apperr.TypeEnrichment {
			warning = "AI enhancement produced unusable output, graph returned unchanged"
		}
		return c.JSON(http.StatusOK, enhanceGraphResponse{
			Success:  true,
			Enhanced: false,
			Warning:  warning,
			Data:     graph,
		})
	}

	logger.Info("graph enriched",
		"graph_id", stored.ID,
		"nodes_added", len(enriched.Nodes)-len(graph.Nodes),
		"edges_added", len(enriched.Edges)-len(graph.Edges),
	)

	return c.JSON(http.StatusOK, enhanceGraphResponse{
		Success:  true,
		Enhanced: true,
		Data:     enriched,
	})
}
