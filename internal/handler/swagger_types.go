package handler

import (
	"github.com/google/uuid"

	"legalynx/internal/domain"
)

// Request and response bodies of the analysis endpoints. They double as swag definitions.

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	ContractText string `json:"contract_text" example:"This Non-Disclosure Agreement is entered into by..."`
	AnalysisType *string `json:"analysis_type" example:"full" enums:"full,risks,clauses,compliance"`
	Title        string `json:"title" example:"Mutual NDA with Acme"`
}

// AnalysisMetadata describes how a result was produced.
type AnalysisMetadata struct {
	ID             uuid.UUID           `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	RequestedType  domain.AnalysisMode `json:"requested_type" example:"full"`
	ResolvedType   domain.AnalysisMode `json:"resolved_type" example:"full"`
	Truncated      bool                `json:"truncated" example:"false"`
	Fallback       bool                `json:"fallback" example:"false"`
	Cached         bool                `json:"cached" example:"false"`
	InputLength    int                 `json:"input_length" example:"2480"`
	AnalyzedLength int                 `json:"analyzed_length" example:"2480"`
	ModelUsed      string              `json:"model_used,omitempty" example:"gpt-4"`
	ShapeWarnings  []string            `json:"shape_warnings,omitempty"`
}

// AnalyzeResponse is returned by POST /analyze.
type AnalyzeResponse struct {
	Success      bool                    `json:"success" example:"true"`
	AnalysisType domain.AnalysisMode     `json:"analysis_type" example:"full"`
	Result       domain.StructuredResult `json:"result" swaggertype:"object"`
	Metadata     AnalysisMetadata        `json:"metadata"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Success             bool                    `json:"success" example:"true"`
	Filename            string                  `json:"filename" example:"nda.pdf"`
	ExtractedTextLength int                     `json:"extracted_text_length" example:"5120"`
	Result              domain.StructuredResult `json:"result" swaggertype:"object"`
	Metadata            AnalysisMetadata        `json:"metadata"`
}

// BulkAnalyzeRequest is the body of POST /bulk-analyze and POST /bulk-analyze/export.
type BulkAnalyzeRequest struct {
	Contracts []domain.BatchItem `json:"contracts"`
}

// BulkAnalyzeResponse is returned by POST /bulk-analyze.
type BulkAnalyzeResponse struct {
	Success        bool                     `json:"success" example:"true"`
	TotalContracts int                      `json:"total_contracts" example:"2"`
	Results        []domain.BatchItemResult `json:"results"`
}

// SemanticSearchRequest is the body of POST /semantic-search.
type SemanticSearchRequest struct {
	Query     string             `json:"query" example:"termination for convenience"`
	Contracts []domain.BatchItem `json:"contracts"`
}

// SemanticSearchResponse is returned by POST /semantic-search.
type SemanticSearchResponse struct {
	Query   string        `json:"query" example:"termination for convenience"`
	Message string        `json:"message"`
	Results []interface{} `json:"results"`
}

// TemplatesResponse is returned by GET /templates.
type TemplatesResponse struct {
	Templates []domain.ContractTemplate `json:"templates"`
}

// ErrorResponseBody documents the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
	Detail  string   `json:"detail" example:"contract text is too short for analysis"`
}

// Response documents the success envelope of the history endpoints.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

func newMetadata(o *domain.AnalysisOutcome) AnalysisMetadata {
	return AnalysisMetadata{
		ID:             o.ID,
		RequestedType:  o.RequestedMode,
		ResolvedType:   o.Mode,
		Truncated:      o.Truncated,
		Fallback:       o.Fallback,
		Cached:         o.Cached,
		InputLength:    o.InputLength,
		AnalyzedLength: o.AnalyzedLength,
		ModelUsed:      o.ModelUsed,
		ShapeWarnings:  o.ShapeWarnings,
	}
}
