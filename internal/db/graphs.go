package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = pgx.ErrNoRows

const graphColumns = `id, title, description, category, case_id, creator_id, is_public, nodes, edges, created_at, updated_at`

func scanGraph(row pgx.Row) (KnowledgeGraph, error) {
	var g KnowledgeGraph
	err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Category,
		&g.CaseID,
		&g.CreatorID,
		&g.IsPublic,
		&g.Nodes,
		&g.Edges,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

type CreateGraphParams struct {
	ID          string
	Title       string
	Description string
	Category    string
	CaseID      *string
	CreatorID   string
	IsPublic    bool
	Nodes       json.RawMessage
	Edges       json.RawMessage
}

func (q *Queries) CreateGraph(ctx context.Context, params CreateGraphParams) (KnowledgeGraph, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO knowledge_graphs (id, title, description, category, case_id, creator_id, is_public, nodes, edges)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+graphColumns,
		params.ID,
		params.Title,
		params.Description,
		params.Category,
		params.CaseID,
		params.CreatorID,
		params.IsPublic,
		params.Nodes,
		params.Edges,
	)
	return scanGraph(row)
}

func (q *Queries) GetGraphByID(ctx context.Context, id string) (KnowledgeGraph, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+graphColumns+`
		FROM knowledge_graphs
		WHERE id = $1`,
		id,
	)
	return scanGraph(row)
}

type ListGraphsParams struct {
	Category string
	Limit    int
	Offset   int
}

func (q *Queries) CountPublicGraphs(ctx context.Context, category string) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM knowledge_graphs
		WHERE is_public = TRUE
		  AND ($1 = '' OR category = $1)`,
		category,
	).Scan(&count)
	return count, err
}

func (q *Queries) ListPublicGraphs(ctx context.Context, params ListGraphsParams) ([]KnowledgeGraph, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+graphColumns+`
		FROM knowledge_graphs
		WHERE is_public = TRUE
		  AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		params.Category,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGraphs(rows)
}

type ListUserGraphsParams struct {
	CreatorID string
	Category  string
	Limit     int
	Offset    int
}

func (q *Queries) CountUserGraphs(ctx context.Context, creatorID string, category string) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM knowledge_graphs
		WHERE creator_id = $1
		  AND ($2 = '' OR category = $2)`,
		creatorID,
		category,
	).Scan(&count)
	return count, err
}

func (q *Queries) ListUserGraphs(ctx context.Context, params ListUserGraphsParams) ([]KnowledgeGraph, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+graphColumns+`
		FROM knowledge_graphs
		WHERE creator_id = $1
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		params.CreatorID,
		params.Category,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGraphs(rows)
}

func collectGraphs(rows pgx.Rows) ([]KnowledgeGraph, error) {
	graphs := make([]KnowledgeGraph, 0)
	for rows.Next() {
		g, err := scanGraph(rows)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, rows.Err()
}

// UpdateGraphParams carries the updatable fields. Nil pointers leave the
// column unchanged; Nodes and Edges replace the whole array when set.
type UpdateGraphParams struct {
	ID          string
	Title       *string
	Description *string
	IsPublic    *bool
	Nodes       json.RawMessage
	Edges       json.RawMessage
}

func (q *Queries) UpdateGraph(ctx context.Context, params UpdateGraphParams) (KnowledgeGraph, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE knowledge_graphs
		SET title       = COALESCE($2, title),
		    description = COALESCE($3, description),
		    is_public   = COALESCE($4, is_public),
		    nodes       = COALESCE($5, nodes),
		    edges       = COALESCE($6, edges),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING `+graphColumns,
		params.ID,
		params.Title,
		params.Description,
		params.IsPublic,
		params.Nodes,
		params.Edges,
	)
	return scanGraph(row)
}

type SearchGraphsParams struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

// CountSearchGraphs counts public graphs matching the query. Matching is
// case-insensitive over title and description.
func (q *Queries) CountSearchGraphs(ctx context.Context, params SearchGraphsParams) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM knowledge_graphs
		WHERE is_public = TRUE
		  AND ($2 = '' OR category = $2)
		  AND (title ILIKE '%' || $1 || '%'
		    OR description ILIKE '%' || $1 || '%')`,
		params.Query,
		params.Category,
	).Scan(&count)
	return count, err
}

func (q *Queries) SearchGraphs(ctx context.Context, params SearchGraphsParams) ([]KnowledgeGraph, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+graphColumns+`
		FROM knowledge_graphs
		WHERE is_public = TRUE
		  AND ($2 = '' OR category = $2)
		  AND (title ILIKE '%' || $1 || '%'
		    OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		params.Query,
		params.Category,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGraphs(rows)
}

func (q *Queries) DeleteGraph(ctx context.Context, id string) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM knowledge_graphs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is the row-missing case.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound)
}
