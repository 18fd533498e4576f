package db

import (
	"encoding/json"
	"time"
)

// Case states as stored in cases.status.
const (
	CaseStatusPending    = "pending"
	CaseStatusProcessing = "processing"
	CaseStatusAnalyzed   = "analyzed"
	CaseStatusFailed     = "failed"
)

// KnowledgeGraph is a persisted graph document. Nodes and Edges are stored
// as JSONB and replaced wholesale on update.
type KnowledgeGraph struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CaseID      *string         `json:"caseId,omitempty"`
	CreatorID   string          `json:"creator"`
	IsPublic    bool            `json:"isPublic"`
	Nodes       json.RawMessage `json:"nodes"`
	Edges       json.RawMessage `json:"edges"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Case is an uploaded legal case and the state of its analysis.
type Case struct {
	ID              string          `json:"_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CaseType        string          `json:"caseType"`
	Status          string          `json:"status"`
	DocumentKey     string          `json:"documentKey,omitempty"`
	DocumentName    string          `json:"documentName,omitempty"`
	CreatorID       string          `json:"creator"`
	AnalysisResults json.RawMessage `json:"analysisResults,omitempty"`
	Tags            []string        `json:"tags"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
