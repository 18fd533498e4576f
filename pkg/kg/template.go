package kg

// Graph categories as persisted on a knowledge graph document.
const (
	CategoryLegalConcept        = "Legal Concept"
	CategoryCaseAnalysis        = "Case Analysis"
	CategoryStatuteRelationship = "Statute Relationship"
	CategoryCustom              = "Custom"
)

// Categories lists the valid category values.
var Categories = []string{
	CategoryLegalConcept,
	CategoryCaseAnalysis,
	CategoryStatuteRelationship,
	CategoryCustom,
}

// IsValidCategory reports whether category is one of the persisted enum values.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// templates maps a legal category to its hand-authored concept graph.
// Unknown categories fall through to defaultTemplate; that fallthrough is
// deliberate policy, not an error.
var templates = map[string]Graph{
	"Criminal Law": {
		Nodes: []Node{
			{ID: "criminal-law", Label: "Criminal Law", Group: "main", Description: "Body of law that defines criminal offenses and their punishments", Size: 15},
			{ID: "mens-rea", Label: "Mens Rea", Group: "concept", Description: "The mental element of a crime; guilty mind", Size: 10},
			{ID: "actus-reus", Label: "Actus Reus", Group: "concept", Description: "The physical element of a crime; guilty act", Size: 10},
			{ID: "punishment", Label: "Punishment", Group: "concept", Description: "Legal penalties imposed for criminal behavior", Size: 10},
			{ID: "ipc", Label: "Indian Penal Code", Group: "statute", Description: "The main criminal code of India", Size: 12},
		},
		Edges: []Edge{
			{Source: "criminal-law", Target: "mens-rea", Label: "requires", Weight: 2},
			{Source: "criminal-law", Target: "actus-reus", Label: "requires", Weight: 2},
			{Source: "criminal-law", Target: "punishment", Label: "imposes", Weight: 1.5},
			{Source: "criminal-law", Target: "ipc", Label: "codified in", Weight: 1},
			{Source: "mens-rea", Target: "actus-reus", Label: "combined with", Weight: 1},
		},
	},
	"Constitutional Law": {
		Nodes: []Node{
			{ID: "constitutional-law", Label: "Constitutional Law", Group: "main", Description: "Body of law defining the relationship of different entities within a state", Size: 15},
			{ID: "fundamental-rights", Label: "Fundamental Rights", Group: "concept", Description: "Basic rights guaranteed to all citizens", Size: 12},
			{ID: "directive-principles", Label: "Directive Principles", Group: "concept", Description: "Guidelines for the government to frame laws", Size: 10},
			{ID: "separation-powers", Label: "Separation of Powers", Group: "concept", Description: "Division of government responsibilities", Size: 10},
			{ID: "judicial-review", Label: "Judicial Review", Group: "concept", Description: "Power of courts to examine legislative and executive acts", Size: 10},
		},
		Edges: []Edge{
			{Source: "constitutional-law", Target: "fundamental-rights", Label: "guarantees", Weight: 2},
			{Source: "constitutional-law", Target: "directive-principles", Label: "includes", Weight: 1.5},
			{Source: "constitutional-law", Target: "separation-powers", Label: "establishes", Weight: 1.5},
			{Source: "constitutional-law", Target: "judicial-review", Label: "provides for", Weight: 1.5},
			{Source: "fundamental-rights", Target: "judicial-review", Label: "enforced through", Weight: 1},
		},
	},
	"Contract Law": {
		Nodes: []Node{
			{ID: "contract-law", Label: "Contract Law", Group: "main", Description: "Body of law that governs making and enforcing agreements", Size: 15},
			{ID: "offer", Label: "Offer", Group: "concept", Description: "A promise that is dependent on a requested act, forbearance, or return promise", Size: 10},
			{ID: "acceptance", Label: "Acceptance", Group: "concept", Description: "Agreement to the terms of an offer", Size: 10},
			{ID: "consideration", Label: "Consideration", Group: "concept", Description: "Something of value exchanged for a promise", Size: 10},
			{ID: "breach", Label: "Breach of Contract", Group: "concept", Description: "Violation of a contractual obligation", Size: 10},
		},
		Edges: []Edge{
			{Source: "contract-law", Target: "offer", Label: "requires", Weight: 2},
			{Source: "contract-law", Target: "acceptance", Label: "requires", Weight: 2},
			{Source: "contract-law", Target: "consideration", Label: "requires", Weight: 2},
			{Source: "contract-law", Target: "breach", Label: "addresses", Weight: 1.5},
			{Source: "offer", Target: "acceptance", Label: "followed by", Weight: 1},
		},
	},
}

// defaultTemplate is the general legal system overview used whenever no
// category-specific template exists.
var defaultTemplate = Graph{
	Nodes: []Node{
		{ID: "legal-system", Label: "Legal System", Group: "main", Description: "Framework of laws, institutions, and processes", Size: 15},
		{ID: "criminal-law", Label: "Criminal Law", Group: "branch", Description: "Body of law that defines criminal offenses", Size: 12},
		{ID: "civil-law", Label: "Civil Law", Group: "branch", Description: "Body of law dealing with private rights", Size: 12},
		{ID: "constitutional-law", Label: "Constitutional Law", Group: "branch", Description: "Body of law defining state relationships", Size: 12},
		{ID: "judiciary", Label: "Judiciary", Group: "institution", Description: "System of courts that interprets and applies the law", Size: 10},
		{ID: "legislature", Label: "Legislature", Group: "institution", Description: "Body responsible for making laws", Size: 10},
	},
	Edges: []Edge{
		{Source: "legal-system", Target: "criminal-law", Label: "includes", Weight: 1.5},
		{Source: "legal-system", Target: "civil-law", Label: "includes", Weight: 1.5},
		{Source: "legal-system", Target: "constitutional-law", Label: "includes", Weight: 1.5},
		{Source: "legal-system", Target: "judiciary", Label: "operates through", Weight: 1},
		{Source: "legal-system", Target: "legislature", Label: "operates through", Weight: 1},
		{Source: "judiciary", Target: "criminal-law", Label: "applies", Weight: 0.5},
		{Source: "judiciary", Target: "civil-law", Label: "applies", Weight: 0.5},
		{Source: "legislature", Target: "criminal-law", Label: "creates", Weight: 0.5},
		{Source: "legislature", Target: "civil-law", Label: "creates", Weight: 0.5},
	},
}

// BuildGeneric returns the hand-authored concept graph for the given legal
// category. It is total: any category without a template yields the general
// legal system overview.
func BuildGeneric(category string) Graph {
	if tpl, ok := templates[category]; ok {
		return tpl
	}
	return defaultTemplate
}
