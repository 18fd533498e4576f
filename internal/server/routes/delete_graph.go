package routes

import (
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// DeleteGraphHandler removes a graph. Creator or admin only.
func DeleteGraphHandler(c echo.Context) error {
	type deleteGraphParams struct {
		ID string `param:"id" validate:"required"`
	}

	type deleteGraphResponse struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}

	params := new(deleteGraphParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
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

	if err := q.DeleteGraph(ctx, graph.ID); err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Graph", params.ID)
		}
		return apperr.Internal(err)
	}

	logger.Info("graph deleted", "graph_id", graph.ID, "user_id", user.UserID)

	return c.JSON(http.StatusOK, deleteGraphResponse{
		Success: true,
		Data:    map[string]any{},
	})
}
