package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalynx/internal/domain"
)

// TemplateHandler serves the static contract archetype catalog.
type TemplateHandler struct{}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// List handles GET /templates
// @Summary List contract templates
// @Tags templates
// @Produce json
// @Success 200 {object} TemplatesResponse
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, TemplatesResponse{Templates: domain.ContractTemplates})
}
