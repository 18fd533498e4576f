package routes

import (
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/internal/storage"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/common"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetCasesHandler lists the requester's cases, optionally filtered by
// status or by a free-text query over title, description and tags.
func GetCasesHandler(c echo.Context) error {
	type getCasesQuery struct {
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
		Status string `query:"status" validate:"omitempty,oneof=pending processing analyzed failed"`
		Q      string `query:"q" validate:"omitempty,max=200"`
	}

	type getCasesResponse struct {
		Success    bool              `json:"success"`
		Count      int               `json:"count"`
		Pagination common.Pagination `json:"pagination"`
		Data       []db.Case         `json:"data"`
	}

	query := new(getCasesQuery)
	if err := c.Bind(query); err != nil {
		return apperr.Validation("Invalid query parameters")
	}
	if err := c.Validate(query); err != nil {
		return apperr.Validation("Invalid query parameters")
	}

	page, limit := common.Normalize(query.Page, query.Limit)

	user := c.(*middleware.AppContext).User
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	var total int
	var cases []db.Case
	var err error

	if query.Q != "" {
		params := db.SearchCasesParams{
			Query:     query.Q,
			CreatorID: user.UserID,
			Limit:     limit,
			Offset:    common.Offset(page, limit),
		}
		if total, err = q.CountSearchCases(ctx, params); err != nil {
			return apperr.Internal(err)
		}
		if cases, err = q.SearchCases(ctx, params); err != nil {
			return apperr.Internal(err)
		}
	} else {
		if total, err = q.CountUserCases(ctx, user.UserID, query.Status); err != nil {
			return apperr.Internal(err)
		}
		cases, err = q.ListUserCases(ctx, db.ListCasesParams{
			CreatorID: user.UserID,
			Status:    query.Status,
			Limit:     limit,
			Offset:    common.Offset(page, limit),
		})
		if err != nil {
			return apperr.Internal(err)
		}
	}

	return c.JSON(http.StatusOK, getCasesResponse{
		Success:    true,
		Count:      len(cases),
		Pagination: common.Paginate(page, limit, total),
		Data:       cases,
	})
}

// GetCaseHandler fetches one case with its analysis results, if any.
func GetCaseHandler(c echo.Context) error {
	type getCaseParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getCaseResponse struct {
		Success bool    `json:"success"`
		Data    db.Case `json:"data"`
	}

	params := new(getCaseParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	record, err := q.GetCaseByID(ctx, params.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Case", params.ID)
		}
		return apperr.Internal(err)
	}

	user := c.(*middleware.AppContext).User
	if err := CanAccessCase(user, record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getCaseResponse{
		Success: true,
		Data:    record,
	})
}

// GetCaseStatusHandler returns just the processing state of a case, for
// cheap client polling while analysis runs.
func GetCaseStatusHandler(c echo.Context) error {
	type getCaseStatusParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getCaseStatusResponse struct {
		Success bool   `json:"success"`
		Status  string `json:"status"`
	}

	params := new(getCaseStatusParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	record, err := q.GetCaseByID(ctx, params.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Case", params.ID)
		}
		return apperr.Internal(err)
	}

	user := c.(*middleware.AppContext).User
	if err := CanAccessCase(user, record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getCaseStatusResponse{
		Success: true,
		Status:  record.Status,
	})
}

// GetCaseDocumentHandler returns a short-lived download link for the
// case's attached document.
func GetCaseDocumentHandler(c echo.Context) error {
	type getCaseDocumentParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getCaseDocumentResponse struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Name    string `json:"name"`
	}

	params := new(getCaseDocumentParams)
	if err := c.Bind(params); err != nil {
		return apperr.Validation("Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return apperr.Validation("Invalid request params")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	record, err := q.GetCaseByID(ctx, params.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("Case", params.ID)
		}
		return apperr.Internal(err)
	}

	user := c.(*middleware.AppContext).User
	if err := CanAccessCase(user, record); err != nil {
		return err
	}

	if record.DocumentKey == "" {
		return apperr.NotFound("Document", params.ID)
	}

	url, err := storage.GenerateDownloadLink(ctx, app.S3, record.DocumentKey)
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(http.StatusOK, getCaseDocumentResponse{
		Success: true,
		URL:     url,
		Name:    record.DocumentName,
	})
}
