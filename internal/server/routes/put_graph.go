package routes

import (
	"encoding/json"
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/kg"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// UpdateGraphHandler updates a graph's metadata, visibility or structure.
// Omitted fields keep their stored value; nodes and edges are replaced as
// a whole when present and are normalized before persisting.
func UpdateGraphHandler(c echo.Context) error {
	type updateGraphParams struct {
		ID string `param:"id" validate:"required"`
	}

	type updateGraphBody struct {
		Title       *string   `json:"title" validate:"omitempty,max=200"`
		Description *string   `json:"description" validate:"omitempty,max=2000"`
		IsPublic    *bool     `json:"isPublic"`
		Nodes       []kg.Node `json:"nodes"`
		Edges       []kg.Edge `json:"edges"`
	}

	type updateGraphResponse struct {
		Success bool              `json:"success"`
		Data    db.KnowledgeGraph `json:"data"`
	}

	params := new(updateGraphParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
	}

	data := new(updateGraphBody)
	if err := c.Bind(data); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return apperr.Validation("Invalid request body")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	graph, err := q.GetGraphByID(ctx, params.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Graph", params.ID)
		}
		return apperr.Internal(err)
	}

	user := c.(*middleware.AppContext).User
	if err := CanModifyGraph(user, graph); err != nil {
		return err
	}

	update := db.UpdateGraphParams{
		ID:          graph.ID,
		Title:       data.Title,
		Description: data.Description,
		IsPublic:    data.IsPublic,
	}

	// A structure update replaces both arrays together so edges can never
	// reference nodes that were removed in the same request.
	if data.Nodes != nil || data.Edges != nil {
		next := kg.Graph{Nodes: data.Nodes, Edges: data.Edges}
		if data.Nodes == nil {
			if err := json.Unmarshal(graph.Nodes, &next.Nodes); err != nil {
				return apperr.Internal(err)
			}
		}
		if data.Edges == nil {
			if err := json.Unmarshal(graph.Edges, &next.Edges); err != nil {
				return apperr.Internal(err)
			}
		}
		next = next.DropDanglingEdges().Normalize()

		if update.Nodes, err = json.Marshal(next.Nodes); err != nil {
			return apperr.Internal(err)
		}
		if update.Edges, err = json.Marshal(next.Edges); err != nil {
			return apperr.Internal(err)
		}
	}

	updated, err := q.UpdateGraph(ctx, update)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Graph", params.ID)
		}
		return apperr.Internal(err)
	}

	logger.Info("graph updated", "graph_id", updated.ID)

	return c.JSON(http.StatusOK, updateGraphResponse{
		Success: true,
		Data:    updated,
	})
}
