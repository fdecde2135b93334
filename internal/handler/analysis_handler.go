package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalynx/internal/analysis"
	"legalynx/internal/domain"
	"legalynx/internal/logger"
	"legalynx/internal/service"
)

// multipartOverhead leaves room for form boundaries and headers around the file part.
const multipartOverhead = 1 << 20

// AnalysisHandler handles single-contract analysis and history endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	maxUploadBytes  int64
}

// NewAnalysisHandler creates a new AnalysisHandler. maxUploadBytes caps uploaded files.
func NewAnalysisHandler(analysisService service.AnalysisService, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, maxUploadBytes: maxUploadBytes}
}

// Analyze handles POST /analyze
// @Summary Analyze contract text
// @Description Runs a full, risks, clauses or compliance analysis of the submitted contract text.
// @Description Unknown analysis types fall back to compliance. analysis_type echoes the request and
// @Description metadata.resolved_type names the template used. Only the first 4000 characters are analyzed.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Contract text and analysis type"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} ErrorResponseBody "Missing or too short contract text"
// @Failure 429 {object} ErrorResponseBody "Provider rate limited"
// @Failure 502 {object} ErrorResponseBody "Provider request failed"
// @Failure 504 {object} ErrorResponseBody "Provider timed out"
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if strings.TrimSpace(req.ContractText) == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_TEXT", "no contract text provided")
		return
	}

	// Only an absent field means full; an explicit empty value is resolved like any unknown mode.
	mode := domain.ModeFull
	if req.AnalysisType != nil {
		mode = domain.AnalysisMode(*req.AnalysisType)
	}
	if !analysis.IsKnown(mode) {
		logger.WithContext(c.Request.Context()).Info("analysisHandler.Analyze: unknown analysis type, using default",
			"requested", mode, "default", analysis.DefaultMode, "supported", analysis.Modes())
	}

	outcome, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeInput{
		Text:   req.ContractText,
		Mode:   mode,
		Title:  req.Title,
		Source: domain.SourceText,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success:      true,
		AnalysisType: mode,
		Result:       outcome.Result,
		Metadata:     newMetadata(outcome),
	})
}

// Upload handles POST /upload
// @Summary Upload and analyze a contract
// @Description Extracts text from a PDF or DOCX file and runs a full analysis.
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Contract file (PDF or DOCX)"
// @Param title formData string false "Title stored with the analysis"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or unreadable document"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Provider request failed"
// @Router /upload [post]
func (h *AnalysisHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	kind, ok := domain.DetectMediaKind(header.Header.Get("Content-Type"), header.Filename)
	if !ok || !domain.UploadableKinds[kind] {
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "failed to read uploaded file")
		return
	}

	res, err := h.analysisService.AnalyzeDocument(c.Request.Context(), service.DocumentInput{
		Document: domain.Document{Data: data, Kind: kind, FileName: header.Filename},
		Title:    c.PostForm("title"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:             true,
		Filename:            res.FileName,
		ExtractedTextLength: res.ExtractedTextLength,
		Result:              res.Outcome.Result,
		Metadata:            newMetadata(res.Outcome),
	})
}

// List handles GET /analyses
// @Summary List stored analyses
// @Description Lists analysis history, newest first.
// @Tags history
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ContractAnalysis,meta=PagMeta}
// @Failure 500 {object} ErrorResponseBody
// @Router /analyses [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	analyses, total, err := h.analysisService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /analyses/:id
// @Summary Get a stored analysis
// @Tags history
// @Produce json
// @Param id path string true "Analysis ID (UUID)"
// @Success 200 {object} Response{data=domain.ContractAnalysis}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Analysis not found"
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	record, err := h.analysisService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
