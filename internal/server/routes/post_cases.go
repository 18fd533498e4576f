package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/queue"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/internal/storage"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateCaseHandler accepts a multipart case upload, stores the attached
// document and queues the case for analysis. The response returns
// immediately with the case in pending state.
func CreateCaseHandler(c echo.Context) error {
	type createCaseBody struct {
		Title       string `form:"title" validate:"required,max=200"`
		Description string `form:"description" validate:"required,max=5000"`
		CaseType    string `form:"caseType" validate:"required,max=100"`
	}

	type createCaseResponse struct {
		Success bool    `json:"success"`
		Data    db.Case `json:"data"`
	}

	data := new(createCaseBody)
	if err := c.Bind(data); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return apperr.Validation("Invalid request body")
	}

	user := c.(*middleware.AppContext).User
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	id, err := gonanoid.New()
	if err != nil {
		return apperr.Internal(err)
	}

	params := db.CreateCaseParams{
		ID:          id,
		Title:       data.Title,
		Description: data.Description,
		CaseType:    data.CaseType,
		CreatorID:   user.UserID,
	}

	// The document is optional. A case without one is analyzed from its
	// description alone.
	if file, err := c.FormFile("document"); err == nil {
		src, err := file.Open()
		if err != nil {
			return apperr.Internal(err)
		}
		defer src.Close()

		fileID, err := gonanoid.New()
		if err != nil {
			return apperr.Internal(err)
		}

		key, err := storage.PutFile(
			ctx,
			app.S3,
			fmt.Sprintf("cases/%s/documents", id),
			file.Filename,
			fileID,
			src,
		)
		if err != nil {
			logger.Error("case document upload failed", "case_id", id, "error", err)
			return apperr.Internal(err)
		}
		params.DocumentKey = key
		params.DocumentName = file.Filename
	}

	q := db.New(app.DBConn)
	created, err := q.CreateCase(ctx, params)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := publishAnalyze(app, created.ID); err != nil {
		return apperr.Internal(err)
	}

	logger.Info("case created", "case_id", created.ID, "user_id", user.UserID)

	return c.JSON(http.StatusCreated, createCaseResponse{
		Success: true,
		Data:    created,
	})
}

// AnalyzeCaseHandler re-queues an existing case for analysis, moving it
// to processing first so pollers see the restart.
func AnalyzeCaseHandler(c echo.Context) error {
	type analyzeCaseParams struct {
		ID string `param:"id" validate:"required"`
	}

	type analyzeCaseResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			CaseID string `json:"caseId"`
			Status string `json:"status"`
		} `json:"data"`
	}

	params := new(analyzeCaseParams)
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

	if err := q.SetCaseStatus(ctx, db.SetCaseStatusParams{
		ID:     record.ID,
		Status: db.CaseStatusProcessing,
	}); err != nil {
		return apperr.Internal(err)
	}

	if err := publishAnalyze(app, record.ID); err != nil {
		return apperr.Internal(err)
	}

	logger.Info("case re-queued for analysis", "case_id", record.ID)

	resp := analyzeCaseResponse{
		Success: true,
		Message: "Case queued for analysis",
	}
	resp.Data.CaseID = record.ID
	resp.Data.Status = db.CaseStatusProcessing

	return c.JSON(http.StatusAccepted, resp)
}

func publishAnalyze(app *middleware.App, caseID string) error {
	msg, err := json.Marshal(queue.AnalyzeCaseMsg{
		Message: "analyze_case",
		CaseID:  caseID,
	})
	if err != nil {
		return err
	}
	return queue.PublishFIFO(app.Queue, queue.AnalyzeQueue, msg)
}
