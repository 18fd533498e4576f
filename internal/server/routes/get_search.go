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

// SearchHandler searches public graphs by title and description.
// Case-insensitive substring matching; no auth required, so private graphs
// never appear in results.
func SearchHandler(c echo.Context) error {
	type searchQuery struct {
		Q        string `query:"q" validate:"required,min=1,max=200"`
		Category string `query:"category"`
		Page     int    `query:"page"`
		Limit    int    `query:"limit"`
	}

	type searchResponse struct {
		Success    bool                `json:"success"`
		Count      int                 `json:"count"`
		Pagination common.Pagination   `json:"pagination"`
		Data       []db.KnowledgeGraph `json:"data"`
	}

	query := new(searchQuery)
	if err := c.Bind(query); err != nil {
		return apperr.Validation("Invalid query parameters")
	}
	if err := c.Validate(query); err != nil {
		return apperr.Validation("Search query is required")
	}

	page, limit := common.Normalize(query.Page, query.Limit)

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	params := db.SearchGraphsParams{
		Query:    query.Q,
		Category: query.Category,
		Limit:    limit,
		Offset:   common.Offset(page, limit),
	}

	total, err := q.CountSearchGraphs(ctx, params)
	if err != nil {
		return apperr.Internal(err)
	}

	graphs, err := q.SearchGraphs(ctx, params)
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Success:    true,
		Count:      len(graphs),
		Pagination: common.Paginate(page, limit, total),
		Data:       graphs,
	})
}
