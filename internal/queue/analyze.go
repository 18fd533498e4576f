package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/storage"
	"github.com/legalmind/backend/internal/util"
	"github.com/legalmind/backend/pkg/analysis"
	"github.com/legalmind/backend/pkg/loader"
	"github.com/legalmind/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxDocChars caps how much extracted document text feeds the analyzer.
const maxDocChars = 50_000

// AnalyzeCaseMsg is the payload published to the analyze queue when a case
// is created or re-analyzed.
type AnalyzeCaseMsg struct {
	Message string `json:"message"`
	CaseID  string `json:"case_id"`
}

// ProcessAnalyze runs the analysis pipeline for one queued case: mark it
// processing, pull the attached document's text, analyze, and persist the
// results. A failure marks the case failed before the error is returned so
// clients polling the status see it.
func ProcessAnalyze(
	ctx context.Context,
	s3Client *s3.Client,
	conn *pgxpool.Pool,
	body string,
) error {
	var data AnalyzeCaseMsg
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return fmt.Errorf("unmarshal analyze message: %w", err)
	}
	if data.CaseID == "" {
		return fmt.Errorf("analyze message without case_id")
	}

	q := db.New(conn)

	legalCase, err := q.GetCaseByID(ctx, data.CaseID)
	if err != nil {
		if db.IsNotFound(err) {
			// Deleted before the worker got to it; nothing to retry.
			logger.Warn("[Analyze] Case no longer exists", "case_id", data.CaseID)
			return nil
		}
		return fmt.Errorf("load case %s: %w", data.CaseID, err)
	}

	err = q.SetCaseStatus(ctx, db.SetCaseStatusParams{
		ID:     legalCase.ID,
		Status: db.CaseStatusProcessing,
	})
	if err != nil {
		return fmt.Errorf("mark case processing: %w", err)
	}

	docText := ""
	if legalCase.DocumentKey != "" {
		docs := loader.New(func(ctx context.Context, key string) ([]byte, error) {
			return storage.GetFile(ctx, s3Client, key)
		})
		docText, err = docs.Text(ctx, legalCase.DocumentKey, legalCase.DocumentName)
		if err != nil {
			// Analysis still works from title/description alone.
			logger.Warn("[Analyze] Failed to extract document text",
				"case_id", legalCase.ID, "err", err)
			docText = ""
		}
		docText = clampDocText(docText)
	}

	description := legalCase.Description
	if docText != "" {
		description = description + "\n" + docText
	}

	result := analysis.Analyze(legalCase.Title, description, legalCase.CaseType)
	logger.Debug("[Analyze] Analysis output", "case_id", legalCase.ID,
		"results", util.ConvertStructToJson(result))

	resultJSON, err := json.Marshal(result)
	if err != nil {
		markFailed(ctx, q, legalCase.ID)
		return fmt.Errorf("marshal analysis results: %w", err)
	}

	_, err = q.SetCaseAnalysis(ctx, db.SetCaseAnalysisParams{
		ID:              legalCase.ID,
		AnalysisResults: resultJSON,
		Tags:            result.Tags,
	})
	if err != nil {
		markFailed(ctx, q, legalCase.ID)
		return fmt.Errorf("store analysis results: %w", err)
	}

	logger.Info("[Analyze] Case analyzed",
		"case_id", legalCase.ID,
		"laws", len(result.RelevantLaws),
		"tags", len(result.Tags),
	)
	return nil
}

// clampDocText caps the document text at maxDocChars bytes and strips the
// byte sequences Postgres text rejects. Truncation happens first so that a
// cut through a multi-byte rune is cleaned up by the sanitizer.
func clampDocText(text string) string {
	text = text[:util.Min(len(text), maxDocChars)]
	return util.SanitizePostgresText(text)
}

func markFailed(ctx context.Context, q *db.Queries, caseID string) {
	err := q.SetCaseStatus(ctx, db.SetCaseStatusParams{
		ID:     caseID,
		Status: db.CaseStatusFailed,
	})
	if err != nil {
		logger.Error("[Analyze] Failed to mark case failed", "case_id", caseID, "err", err)
	}
}
