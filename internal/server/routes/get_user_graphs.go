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

// GetUserGraphsHandler lists the requester's own graphs, public and
// private alike.
func GetUserGraphsHandler(c echo.Context) error {
	type getUserGraphsQuery struct {
		Page     int    `query:"page"`
		Limit    int    `query:"limit"`
		Category string `query:"category"`
	}

	type getUserGraphsResponse struct {
		Success    bool                `json:"success"`
		Count      int                 `json:"count"`
		Pagination common.Pagination   `json:"pagination"`
		Data       []db.KnowledgeGraph `json:"data"`
	}

	query := new(getUserGraphsQuery)
	if err := c.Bind(query); err != nil {
		return apperr.Validation("Invalid query parameters")
	}

	page, limit := common.Normalize(query.Page, query.Limit)

	user := c.(*middleware.AppContext).User
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	total, err := q.CountUserGraphs(ctx, user.UserID, query.Category)
	if err != nil {
		return apperr.Internal(err)
	}

	graphs, err := q.ListUserGraphs(ctx, db.ListUserGraphsParams{
		CreatorID: user.UserID,
		Category:  query.Category,
		Limit:     limit,
		Offset:    common.Offset(page, limit),
	})
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(http.StatusOK, getUserGraphsResponse{
		Success:    true,
		Count:      len(graphs),
		Pagination: common.Paginate(page, limit, total),
		Data:       graphs,
	})
}
