package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"legalynx/internal/domain"
	"legalynx/internal/engine"
	"legalynx/internal/logger"
)

// APIResponse is the standard envelope for history and error responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code. The message is repeated
// in detail for clients that read the flat error field.
func RespondError(c *gin.Context, status int, code, msg string) {
	respondError(c, status, code, msg, msg)
}

func respondError(c *gin.Context, status int, code, msg, detail string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
		Detail:  detail,
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateLimited *engine.RateLimitError
	switch {
	case errors.Is(err, domain.ErrInputTooShort):
		return http.StatusBadRequest, "INPUT_TOO_SHORT", "contract text must contain at least 100 characters"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "only PDF and DOCX files are supported"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadRequest, "EXTRACTION_FAILED", "could not read text from the document"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "no text could be extracted from the file"
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest, "EMPTY_BATCH", "no contracts provided for analysis"
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusBadRequest, "BATCH_TOO_LARGE", "too many contracts in one batch"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound, "ANALYSIS_NOT_FOUND", "analysis not found"
	case errors.Is(err, domain.ErrEngineTimeout):
		return http.StatusGatewayTimeout, "ENGINE_TIMEOUT", "analysis timed out; try again later"
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "analysis provider is rate limited; try again later"
	case errors.Is(err, domain.ErrEngineInvocationFailed):
		return http.StatusBadGateway, "ENGINE_FAILED", "analysis provider request failed"
	case errors.Is(err, domain.ErrEngineNotConfigured):
		return http.StatusInternalServerError, "ENGINE_NOT_CONFIGURED", "analysis provider is not configured"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response. Client errors
// carry the underlying error text in detail; server errors only carry the public message.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rateLimited *engine.RateLimitError
	if errors.As(err, &rateLimited) && rateLimited.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(rateLimited.RetryAfter.Seconds())))
	}

	detail := msg
	if status < http.StatusInternalServerError {
		detail = err.Error()
	}
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		logger.WithContext(c.Request.Context()).Error("request failed",
			"path", c.Request.URL.Path, "status", status, "error", err)
	}
	respondError(c, status, code, msg, detail)
}
