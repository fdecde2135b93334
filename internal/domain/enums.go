package domain

import (
	"path/filepath"
	"strings"
)

// AnalysisMode selects the scope of a contract analysis.
type AnalysisMode string

const (
	ModeFull       AnalysisMode = "full"
	ModeRisks      AnalysisMode = "risks"
	ModeClauses    AnalysisMode = "clauses"
	ModeCompliance AnalysisMode = "compliance"
)

// MediaKind identifies the container format of an incoming document.
type MediaKind string

const (
	MediaKindPDF       MediaKind = "pdf"
	MediaKindDOCX      MediaKind = "docx"
	MediaKindPlainText MediaKind = "plain-text"
)

// AllowedContentTypes maps MIME content types to MediaKind.
var AllowedContentTypes = map[string]MediaKind{
	"application/pdf": MediaKindPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": MediaKindDOCX,
	"text/plain": MediaKindPlainText,
}

// AllowedExtensions maps file extensions (without dot) to MediaKind.
var AllowedExtensions = map[string]MediaKind{
	"pdf":  MediaKindPDF,
	"docx": MediaKindDOCX,
	"txt":  MediaKindPlainText,
}

// UploadableKinds are the container formats accepted by the upload endpoint.
var UploadableKinds = map[MediaKind]bool{
	MediaKindPDF:  true,
	MediaKindDOCX: true,
}

// DetectMediaKind resolves a MediaKind from a declared content type, falling back
// to the file extension when the content type is missing or generic.
func DetectMediaKind(contentType, fileName string) (MediaKind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if kind, ok := AllowedContentTypes[ct]; ok {
		return kind, true
	}
	if ct != "" && ct != "application/octet-stream" {
		return "", false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	kind, ok := AllowedExtensions[ext]
	return kind, ok
}

// AnalysisSource records which entry point produced a stored analysis.
type AnalysisSource string

const (
	SourceText   AnalysisSource = "text"
	SourceUpload AnalysisSource = "upload"
	SourceBulk   AnalysisSource = "bulk"
)
