package routes

import (
	"fmt"
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/ai"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

const assistantSystemPrompt = `You are a legal research assistant. Answer questions about
legal concepts, statutes and case law clearly and concisely. When a question touches on
Indian law, cite the relevant act or section. If you are not sure, say so instead of guessing.
You provide general legal information, not legal advice.`

// ChatHandler forwards a conversation turn to the configured model and
// returns the assistant's reply. When a caseId is given the case's title,
// description and analysis summary are added as context.
func ChatHandler(c echo.Context) error {
	type chatMessage struct {
		Role    string `json:"role" validate:"required,oneof=user assistant"`
		Message string `json:"message" validate:"required"`
	}

	type chatBody struct {
		Message string        `json:"message" validate:"required,max=8000"`
		CaseID  string        `json:"caseId" validate:"omitempty"`
		History []chatMessage `json:"history" validate:"omitempty,dive"`
	}

	type chatResponse struct {
		Success bool `json:"success"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}

	data := new(chatBody)
	if err := c.Bind(data); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return apperr.Validation("Invalid request body")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	user := c.(*middleware.AppContext).User

	systemPrompts := []string{assistantSystemPrompt}
	if data.CaseID != "" {
		record, err := db.New(app.DBConn).GetCaseByID(ctx, data.CaseID)
		if err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("Case", data.CaseID)
			}
			return apperr.Internal(err)
		}
		if err := CanAccessCase(user, record); err != nil {
			return err
		}

		caseContext := fmt.Sprintf("The user is asking about the following case.\nTitle: %s\nType: %s\nDescription: %s",
			record.Title, record.CaseType, record.Description)
		if len(record.AnalysisResults) > 0 {
			caseContext += "\nAnalysis: " + string(record.AnalysisResults)
		}
		systemPrompts = append(systemPrompts, caseContext)
	}

	messages := make([]ai.ChatMessage, 0, len(data.History)+1)
	for _, m := range data.History {
		messages = append(messages, ai.ChatMessage{Role: m.Role, Message: m.Message})
	}
	messages = append(messages, ai.ChatMessage{Role: "user", Message: data.Message})

	reply, err := app.AiClient.GenerateChat(ctx, messages, ai.WithSystemPrompts(systemPrompts...))
	if err != nil {
		logger.Error("chat completion failed", "error", err)
		return apperr.Upstream("Assistant is currently unavailable", err)
	}

	resp := chatResponse{Success: true}
	resp.Data.Message = reply

	return c.JSON(http.StatusOK, resp)
}
