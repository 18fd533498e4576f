package routes

import (
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetGraphHandler fetches a single graph. Existence is checked before
// visibility so a bad id is a 404 even for anonymous requesters.
func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getGraphResponse struct {
		Success bool              `json:"success"`
		Data    db.KnowledgeGraph `json:"data"`
	}

	params := new(getGraphParams)
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
	if err := CanViewGraph(user, graph); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getGraphResponse{
		Success: true,
		Data:    graph,
	})
}
