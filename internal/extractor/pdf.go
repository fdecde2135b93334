package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"legalynx/internal/domain"
)

// extractPDF concatenates the text of every page in page order, with no separator.
// Blank pages contribute nothing. Container and content-stream faults are ExtractionErrors.
func extractPDF(data []byte) (text string, err error) {
	// The decoder panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Kind: domain.MediaKindPDF, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	if len(data) == 0 {
		return "", &ExtractionError{Kind: domain.MediaKindPDF, Err: errors.New("empty document")}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: domain.MediaKindPDF, Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		// /Contents is optional; a page without it is blank and adds nothing.
		if p.V.IsNull() || p.V.Key("Contents").IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Kind: domain.MediaKindPDF, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
