package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"legalynx/internal/domain"
)

const documentPart = "word/document.xml"

// extractDOCX reads the paragraphs of the main document part. Each paragraph ends with a newline.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: domain.MediaKindDOCX, Err: err}
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", &ExtractionError{Kind: domain.MediaKindDOCX, Err: errors.New("missing " + documentPart)}
	}

	rc, err := part.Open()
	if err != nil {
		return "", &ExtractionError{Kind: domain.MediaKindDOCX, Err: err}
	}
	defer func() { _ = rc.Close() }()

	text, err := paragraphText(rc)
	if err != nil {
		return "", &ExtractionError{Kind: domain.MediaKindDOCX, Err: err}
	}
	return text, nil
}

// paragraphText walks WordprocessingML tokens. Elements are matched by local name so that
// any namespace prefix bound to the main namespace works.
func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText, inTabStops := false, false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tabs":
				inTabStops = true
			case "tab":
				if !inTabStops {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				inTabStops = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
