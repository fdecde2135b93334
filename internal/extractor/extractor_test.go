package extractor_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalynx/internal/domain"
	"legalynx/internal/extractor"
)

// buildPDF assembles a minimal PDF with one Helvetica text line per page and a valid xref table.
// An empty string produces a page with no /Contents entry.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // pages tree, filled below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := make([]string, 0, len(pages))
	for i, text := range pages {
		pageObj := 4 + 2*i
		contentObj := pageObj + 1
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		page := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentObj)
		if text == "" {
			page = "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>"
		}
		objects = append(objects,
			page,
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefAt := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefAt)
	return buf.Bytes()
}

// buildDOCX assembles an OOXML package containing only the main document part.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestExtract_PDF(t *testing.T) {
	data := buildPDF(t, "This Agreement is made between Alpha and Beta.")

	text, err := extractor.New().Extract(data, domain.MediaKindPDF)

	require.NoError(t, err)
	assert.Contains(t, text, "This Agreement is made between Alpha and Beta.")
}

func TestExtract_PDF_PageOrder(t *testing.T) {
	data := buildPDF(t, "FirstPageText", "SecondPageText")

	text, err := extractor.New().Extract(data, domain.MediaKindPDF)

	require.NoError(t, err)
	first := strings.Index(text, "FirstPageText")
	second := strings.Index(text, "SecondPageText")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestExtract_PDF_BlankPage(t *testing.T) {
	data := buildPDF(t, "Hello", "")

	text, err := extractor.New().Extract(data, domain.MediaKindPDF)

	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
}

func TestExtract_PDF_BlankPageBetweenText(t *testing.T) {
	data := buildPDF(t, "Recitals", "", "Signatures")

	text, err := extractor.New().Extract(data, domain.MediaKindPDF)

	require.NoError(t, err)
	require.Contains(t, text, "Recitals")
	require.Contains(t, text, "Signatures")
	assert.Less(t, strings.Index(text, "Recitals"), strings.Index(text, "Signatures"))
}

func TestExtract_PDF_Corrupt(t *testing.T) {
	_, err := extractor.New().Extract([]byte("this is not a pdf at all"), domain.MediaKindPDF)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	var exErr *extractor.ExtractionError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, domain.MediaKindPDF, exErr.Kind)
}

func TestExtract_PDF_Empty(t *testing.T) {
	_, err := extractor.New().Extract(nil, domain.MediaKindPDF)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_DOCX(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wordNS + `><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>1. Term</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">Twelve months </w:t></w:r><w:r><w:t>from signing.</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body></w:document>`

	text, err := extractor.New().Extract(buildDOCX(t, doc), domain.MediaKindDOCX)

	require.NoError(t, err)
	assert.Equal(t, "1. Term\tTwelve months from signing.\nLine one\nLine two\n", text)
}

func TestExtract_DOCX_NoText(t *testing.T) {
	doc := `<w:document ` + wordNS + `><w:body><w:p/></w:body></w:document>`

	text, err := extractor.New().Extract(buildDOCX(t, doc), domain.MediaKindDOCX)

	require.NoError(t, err)
	assert.Equal(t, "", strings.TrimSpace(text))
}

func TestExtract_DOCX_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractor.New().Extract(buf.Bytes(), domain.MediaKindDOCX)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_DOCX_NotAZip(t *testing.T) {
	_, err := extractor.New().Extract([]byte("PK garbage"), domain.MediaKindDOCX)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_DOCX_MalformedXML(t *testing.T) {
	doc := `<w:document ` + wordNS + `><w:body><w:p><w:r><w:t>open`

	_, err := extractor.New().Extract(buildDOCX(t, doc), domain.MediaKindDOCX)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_UnsupportedKind(t *testing.T) {
	x := extractor.New()

	_, err := x.Extract([]byte("plain text"), domain.MediaKindPlainText)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = x.Extract([]byte("data"), domain.MediaKind("rtf"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
