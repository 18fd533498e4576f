// Package analysis simulates the NLP case-analysis pipeline. Results are
// deterministic functions of the case text so repeated runs agree; no
// external model is involved.
package analysis

import (
	"fmt"
	"strings"

	"github.com/legalmind/backend/pkg/kg"
)

// Result is the outcome of analyzing one case.
type Result struct {
	Summary            string           `json:"summary"`
	RelevantLaws       []kg.RelevantLaw `json:"relevantLaws"`
	SimilarCases       []SimilarCase    `json:"similarCases"`
	JudgmentPrediction Prediction       `json:"judgmentPrediction"`
	Tags               []string         `json:"tags"`
}

// SimilarCase references a case judged textually similar.
type SimilarCase struct {
	CaseID     string  `json:"caseId"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// Prediction is a simulated judgment outcome with a confidence score.
type Prediction struct {
	Outcome    string  `json:"outcome"`
	Confidence float64 `json:"confidence"`
}

// lawCatalog maps a trigger keyword to the statute suggested for it.
var lawCatalog = []struct {
	keyword string
	law     kg.RelevantLaw
	tag     string
}{
	{"fraud", kg.RelevantLaw{Name: "Section 420 IPC", Description: "Cheating and dishonestly inducing delivery of property", Relevance: 0.85}, "Fraud"},
	{"cheat", kg.RelevantLaw{Name: "Section 420 IPC", Description: "Cheating and dishonestly inducing delivery of property", Relevance: 0.85}, "Fraud"},
	{"liberty", kg.RelevantLaw{Name: "Article 21", Description: "Protection of life and personal liberty", Relevance: 0.72}, "Rights"},
	{"detention", kg.RelevantLaw{Name: "Article 21", Description: "Protection of life and personal liberty", Relevance: 0.72}, "Rights"},
	{"contract", kg.RelevantLaw{Name: "Section 73 Contract Act", Description: "Compensation for loss caused by breach of contract", Relevance: 0.8}, "Contract"},
	{"breach", kg.RelevantLaw{Name: "Section 73 Contract Act", Description: "Compensation for loss caused by breach of contract", Relevance: 0.8}, "Contract"},
	{"property", kg.RelevantLaw{Name: "Transfer of Property Act", Description: "Regulates the transfer of property between living persons", Relevance: 0.68}, "Property"},
	{"defamation", kg.RelevantLaw{Name: "Section 499 IPC", Description: "Defamation by words, signs or visible representations", Relevance: 0.75}, "Defamation"},
	{"negligence", kg.RelevantLaw{Name: "Law of Torts", Description: "Civil liability for negligent acts causing damage", Relevance: 0.7}, "Negligence"},
}

// defaultLaws mirrors the canned results the analysis produced before
// keyword matching existed; they keep a case without any trigger words from
// coming back empty.
var defaultLaws = []kg.RelevantLaw{
	{Name: "Section 420 IPC", Description: "Cheating and dishonestly inducing delivery of property", Relevance: 0.85},
	{Name: "Article 21", Description: "Protection of life and personal liberty", Relevance: 0.72},
}

// Analyze produces simulated results for a case. The summary quotes the
// first 100 characters of the description, matching the upstream format.
func Analyze(title, description, caseType string) Result {
	text := strings.ToLower(title + " " + description)

	var laws []kg.RelevantLaw
	var tags []string
	seenLaws := make(map[string]struct{})
	seenTags := make(map[string]struct{})

	for _, entry := range lawCatalog {
		if !strings.Contains(text, entry.keyword) {
			continue
		}
		if _, ok := seenLaws[entry.law.Name]; !ok {
			seenLaws[entry.law.Name] = struct{}{}
			laws = append(laws, entry.law)
		}
		if _, ok := seenTags[entry.tag]; !ok {
			seenTags[entry.tag] = struct{}{}
			tags = append(tags, entry.tag)
		}
	}

	if len(laws) == 0 {
		laws = defaultLaws
	}
	if caseType != "" {
		if _, ok := seenTags[caseType]; !ok {
			tags = append([]string{caseType}, tags...)
		}
	}

	excerpt := description
	if len(excerpt) > 100 {
		excerpt = excerpt[:100]
	}

	return Result{
		Summary: fmt.Sprintf(
			"This is an automated summary of the case %q. The case involves %s...",
			title, excerpt,
		),
		RelevantLaws: laws,
		SimilarCases: []SimilarCase{
			{CaseID: "60a1b2c3d4e5f6g7h8i9j0k1", Title: "Smith vs. State", Similarity: 0.78},
		},
		JudgmentPrediction: prediction(text),
		Tags:               tags,
	}
}

func prediction(text string) Prediction {
	// More trigger keywords means a stronger simulated signal. The score is
	// capped so the output always reads as a guess, never a certainty.
	hits := 0
	for _, entry := range lawCatalog {
		if strings.Contains(text, entry.keyword) {
			hits++
		}
	}

	confidence := 0.65 + float64(hits)*0.03
	if confidence > 0.9 {
		confidence = 0.9
	}

	outcome := "Favorable"
	if hits == 0 {
		outcome = "Uncertain"
		confidence = 0.5
	}

	return Prediction{Outcome: outcome, Confidence: confidence}
}
