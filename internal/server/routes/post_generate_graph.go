package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
	"github.com/legalmind/backend/pkg/kg"
	"github.com/legalmind/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateGraphHandler builds a knowledge graph from either a legal
// category template or an analyzed case and persists it for the requester.
func GenerateGraphHandler(c echo.Context) error {
	type generateGraphBody struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"omitempty,max=2000"`
		Category    string `json:"category" validate:"omitempty,max=100"`
		CaseID      string `json:"caseId" validate:"omitempty"`
		IsPublic    *bool  `json:"isPublic"`
	}

	type generateGraphResponse struct {
		Success bool              `json:"success"`
		Data    db.KnowledgeGraph `json:"data"`
	}

	data := new(generateGraphBody)
	if err := c.Bind(data); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return apperr.Validation("Please provide a title for the knowledge graph")
	}

	user := c.(*middleware.AppContext).User
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	// Visibility defaults to public unless the client says otherwise.
	isPublic := true
	if data.IsPublic != nil {
		isPublic = *data.IsPublic
	}

	var graph kg.Graph
	params := db.CreateGraphParams{
		Title:       data.Title,
		Description: data.Description,
		CreatorID:   user.UserID,
		IsPublic:    isPublic,
	}
	if params.Description == "" {
		params.Description = fmt.Sprintf("Knowledge graph for %s", data.Title)
	}

	params.Category = graphCategory(data.Category)

	if data.CaseID != "" {
		record, err := q.GetCaseByID(ctx, data.CaseID)
		if err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("Case", data.CaseID)
			}
			return apperr.Internal(err)
		}
		if err := CanAccessCase(user, record); err != nil {
			return err
		}
		if record.Status != db.CaseStatusAnalyzed {
			return apperr.Validation("Case has not been analyzed yet")
		}

		graph = graphFromCase(record)
		params.CaseID = &record.ID
	} else {
		// The category doubles as the template selector; unknown values
		// fall through to the generic legal-system template.
		graph = kg.BuildGeneric(data.Category)
	}

	graph = graph.Normalize()
	nodes, err := json.Marshal(graph.Nodes)
	if err != nil {
		return apperr.Internal(err)
	}
	edges, err := json.Marshal(graph.Edges)
	if err != nil {
		return apperr.Internal(err)
	}
	params.Nodes = nodes
	params.Edges = edges

	params.ID, err = gonanoid.New()
	if err != nil {
		return apperr.Internal(err)
	}

	created, err := q.CreateGraph(ctx, params)
	if err != nil {
		return apperr.Internal(err)
	}

	logger.Info("graph generated",
		"graph_id", created.ID,
		"category", created.Category,
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
	)

	return c.JSON(http.StatusCreated, generateGraphResponse{
		Success: true,
		Data:    created,
	})
}

// graphCategory maps the requested category onto the persisted enum,
// defaulting to "Legal Concept" whenever the request carries none or a
// value outside the enum (such as a template name like "Criminal Law").
func graphCategory(requested string) string {
	if kg.IsValidCategory(requested) {
		return requested
	}
	return kg.CategoryLegalConcept
}

// graphFromCase projects an analyzed case row into the builder's record
// shape. Missing or malformed analysis results just yield a sparser graph.
func graphFromCase(record db.Case) kg.Graph {
	caseRecord := kg.CaseRecord{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		CaseType:    record.CaseType,
		Tags:        record.Tags,
	}

	if len(record.AnalysisResults) > 0 {
		var results struct {
			RelevantLaws []kg.RelevantLaw `json:"relevantLaws"`
		}
		if err := json.Unmarshal(record.AnalysisResults, &results); err == nil {
			caseRecord.RelevantLaws = results.RelevantLaws
		}
	}

	return kg.BuildFromCase(caseRecord)
}
