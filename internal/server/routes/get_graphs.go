package routes

import (
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/common"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetGraphsHandler lists public graphs, newest first, with optional
// category filtering. No auth required.
func GetGraphsHandler(c echo.Context) error {
	type getGraphsQuery struct {
		Page     int    `query:"page"`
		Limit    int    `query:"limit"`
		Category string `query:"category"`
	}

	type getGraphsResponse struct {
		Success    bool                `json:"success"`
		Count      int                 `json:"count"`
		Pagination common.Pagination   `json:"pagination"`
		Data       []db.KnowledgeGraph `json:"data"`
	}

	query := new(getGraphsQuery)
	if err := c.Bind(query); err != nil {
		return apperr.Validation("Invalid query parameters")
	}

	page, limit := common.Normalize(query.Page, query.Limit)

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	total, err := q.CountPublicGraphs(ctx, query.Category)
	if err != nil {
		return apperr.Internal(err)
	}

	graphs, err := q.ListPublicGraphs(ctx, db.ListGraphsParams{
		Category: query.Category,
		Limit:    limit,
		Offset:   common.Offset(page, limit),
	})
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(http.StatusOK, getGraphsResponse{
		Success:    true,
		Count:      len(graphs),
		Pagination: common.Paginate(page, limit, total),
		Data:       graphs,
	})
}
