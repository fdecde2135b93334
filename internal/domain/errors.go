package domain

import "errors"

var (
	ErrUnsupportedFormat      = errors.New("unsupported document format")
	ErrExtractionFailed       = errors.New("document text extraction failed")
	ErrEmptyDocument          = errors.New("no text could be extracted from the document")
	ErrInputTooShort          = errors.New("contract text is too short for analysis")
	ErrEngineNotConfigured    = errors.New("reasoning engine is not configured")
	ErrEngineInvocationFailed = errors.New("reasoning engine invocation failed")
	ErrEngineTimeout          = errors.New("reasoning engine timed out")
	ErrEmptyBatch             = errors.New("no contracts provided for analysis")
	ErrBatchTooLarge          = errors.New("too many contracts in one batch")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrAnalysisNotFound       = errors.New("analysis not found")
)
