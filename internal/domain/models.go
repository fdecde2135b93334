package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// MinContractLength is the minimum trimmed length, in characters, of analyzable contract text.
	MinContractLength = 100
	// MaxEngineInputLength is the number of leading characters sent to the reasoning engine.
	MaxEngineInputLength = 4000
)

// StructuredResult is the key-based analysis returned by the reasoning engine.
type StructuredResult map[string]interface{}

// Document is a transient uploaded document.
type Document struct {
	Data     []byte
	Kind     MediaKind
	FileName string
}

// AnalysisRequest is the immutable input handed to the reasoning engine.
type AnalysisRequest struct {
	Text           string
	Mode           AnalysisMode
	Truncated      bool
	OriginalLength int
}

// AnalysisOutcome wraps a StructuredResult with the facts of how it was produced.
type AnalysisOutcome struct {
	ID             uuid.UUID        `json:"id"`
	Mode           AnalysisMode     `json:"analysis_type"`
	RequestedMode  AnalysisMode     `json:"requested_type"`
	Result         StructuredResult `json:"result"`
	Truncated      bool             `json:"truncated"`
	Fallback       bool             `json:"fallback"`
	Cached         bool             `json:"cached"`
	InputLength    int              `json:"input_length"`
	AnalyzedLength int              `json:"analyzed_length"`
	ModelUsed      string           `json:"model_used,omitempty"`
	ShapeWarnings  []string         `json:"shape_warnings,omitempty"`
}

// BatchItem is one contract in a bulk request.
type BatchItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// BatchItemResult is the per-item record of a bulk analysis.
type BatchItemResult struct {
	Title   string           `json:"title"`
	Index   int              `json:"index"`
	Success bool             `json:"success"`
	Result  StructuredResult `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ContractAnalysis is a stored analysis.
type ContractAnalysis struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Source       AnalysisSource  `db:"source" json:"source"`
	AnalysisType AnalysisMode    `db:"analysis_type" json:"analysis_type"`
	FileName     string          `db:"file_name" json:"file_name,omitempty"`
	ObjectKey    string          `db:"object_key" json:"object_key,omitempty"`
	InputLength  int             `db:"input_length" json:"input_length"`
	Truncated    bool            `db:"truncated" json:"truncated"`
	Fallback     bool            `db:"fallback" json:"fallback"`
	RiskScore    int             `db:"risk_score" json:"risk_score"`
	Result       json.RawMessage `db:"result" json:"result"`
	ModelUsed    string          `db:"model_used" json:"model_used"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// ContractTemplate describes a contract archetype offered by the templates endpoint.
type ContractTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ContractTemplates is the static archetype catalog.
var ContractTemplates = []ContractTemplate{
	{ID: "employment", Name: "Employment Contract", Description: "Standard employment agreement template"},
	{ID: "nda", Name: "Non-Disclosure Agreement", Description: "Confidentiality agreement template"},
	{ID: "service", Name: "Service Agreement", Description: "Professional services contract template"},
	{ID: "lease", Name: "Lease Agreement", Description: "Property lease contract template"},
	{ID: "purchase", Name: "Purchase Agreement", Description: "Asset purchase contract template"},
}
