package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

const caseColumns = `id, title, description, case_type, status, document_key, document_name, creator_id, analysis_results, tags, created_at, updated_at`

func scanCase(row pgx.Row) (Case, error) {
	var c Case
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.CaseType,
		&c.Status,
		&c.DocumentKey,
		&c.DocumentName,
		&c.CreatorID,
		&c.AnalysisResults,
		&c.Tags,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

type CreateCaseParams struct {
	ID           string
	Title        string
	Description  string
	CaseType     string
	DocumentKey  string
	DocumentName string
	CreatorID    string
}

func (q *Queries) CreateCase(ctx context.Context, params CreateCaseParams) (Case, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO cases (id, title, description, case_type, status, document_key, document_name, creator_id, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '{}')
		RETURNING `+caseColumns,
		params.ID,
		params.Title,
		params.Description,
		params.CaseType,
		CaseStatusPending,
		params.DocumentKey,
		params.DocumentName,
		params.CreatorID,
	)
	return scanCase(row)
}

func (q *Queries) GetCaseByID(ctx context.Context, id string) (Case, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+caseColumns+`
		FROM cases
		WHERE id = $1`,
		id,
	)
	return scanCase(row)
}

type SetCaseStatusParams struct {
	ID     string
	Status string
}

func (q *Queries) SetCaseStatus(ctx context.Context, params SetCaseStatusParams) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE cases
		SET status = $2, updated_at = NOW()
		WHERE id = $1`,
		params.ID,
		params.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type SetCaseAnalysisParams struct {
	ID              string
	AnalysisResults json.RawMessage
	Tags            []string
}

// SetCaseAnalysis stores the analysis output and marks the case analyzed
// in one write.
func (q *Queries) SetCaseAnalysis(ctx context.Context, params SetCaseAnalysisParams) (Case, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE cases
		SET status = $2, analysis_results = $3, tags = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+caseColumns,
		params.ID,
		CaseStatusAnalyzed,
		params.AnalysisResults,
		params.Tags,
	)
	return scanCase(row)
}

type ListCasesParams struct {
	CreatorID string
	Status    string
	Limit     int
	Offset    int
}

func (q *Queries) CountUserCases(ctx context.Context, creatorID string, status string) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM cases
		WHERE creator_id = $1
		  AND ($2 = '' OR status = $2)`,
		creatorID,
		status,
	).Scan(&count)
	return count, err
}

func (q *Queries) ListUserCases(ctx context.Context, params ListCasesParams) ([]Case, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+caseColumns+`
		FROM cases
		WHERE creator_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		params.CreatorID,
		params.Status,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCases(rows)
}

type SearchCasesParams struct {
	Query     string
	CreatorID string
	Limit     int
	Offset    int
}

// CountSearchCases counts cases matching the query among the requester's
// own cases. Term matching is case-insensitive over title, description and
// tags.
func (q *Queries) CountSearchCases(ctx context.Context, params SearchCasesParams) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM cases
		WHERE creator_id = $2
		  AND (title ILIKE '%' || $1 || '%'
		    OR description ILIKE '%' || $1 || '%'
		    OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%' || $1 || '%'))`,
		params.Query,
		params.CreatorID,
	).Scan(&count)
	return count, err
}

func (q *Queries) SearchCases(ctx context.Context, params SearchCasesParams) ([]Case, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+caseColumns+`
		FROM cases
		WHERE creator_id = $2
		  AND (title ILIKE '%' || $1 || '%'
		    OR description ILIKE '%' || $1 || '%'
		    OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%' || $1 || '%'))
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		params.Query,
		params.CreatorID,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCases(rows)
}

func (q *Queries) DeleteCase(ctx context.Context, id string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectCases(rows pgx.Rows) ([]Case, error) {
	cases := make([]Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
