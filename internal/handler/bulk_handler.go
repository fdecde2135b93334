package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalynx/internal/service"
	"legalynx/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BulkHandler handles batch analysis endpoints.
type BulkHandler struct {
	bulkService service.BulkService
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(bulkService service.BulkService) *BulkHandler {
	return &BulkHandler{bulkService: bulkService}
}

// Analyze handles POST /bulk-analyze
// @Summary Analyze several contracts
// @Description Runs a full analysis of every contract. Per-contract failures are reported in that
// @Description contract's result; results keep the request order.
// @Tags bulk
// @Accept json
// @Produce json
// @Param request body BulkAnalyzeRequest true "Contracts to analyze"
// @Success 200 {object} BulkAnalyzeResponse
// @Failure 400 {object} ErrorResponseBody "Empty or oversized batch"
// @Router /bulk-analyze [post]
func (h *BulkHandler) Analyze(c *gin.Context) {
	var req BulkAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	results, err := h.bulkService.AnalyzeBatch(c.Request.Context(), req.Contracts)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BulkAnalyzeResponse{
		Success:        true,
		TotalContracts: len(req.Contracts),
		Results:        results,
	})
}

// Export handles POST /bulk-analyze/export
// @Summary Analyze several contracts and download an Excel report
// @Tags bulk
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body BulkAnalyzeRequest true "Contracts to analyze"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Empty or oversized batch"
// @Router /bulk-analyze/export [post]
func (h *BulkHandler) Export(c *gin.Context) {
	var req BulkAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	data, err := h.bulkService.ExportBatch(c.Request.Context(), req.Contracts)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := xlsxexport.BuildFilename("contract_analysis")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
