// Package extractor converts binary contract documents into plain text.
package extractor

import (
	"fmt"

	"legalynx/internal/domain"
)

// ExtractionError reports a document whose container could not be decoded.
type ExtractionError struct {
	Kind domain.MediaKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ExtractionError against domain.ErrExtractionFailed.
func (e *ExtractionError) Is(target error) bool {
	return target == domain.ErrExtractionFailed
}

// Extractor turns PDF and DOCX documents into plain text. It holds no state and is safe
// for concurrent use.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of a document. Only pdf and docx are accepted; plain text
// never reaches the extractor. An empty string is a valid result.
func (x *Extractor) Extract(data []byte, kind domain.MediaKind) (string, error) {
	switch kind {
	case domain.MediaKindPDF:
		return extractPDF(data)
	case domain.MediaKindDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, kind)
	}
}
