package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const searchNotImplemented = "semantic search is not implemented yet; no contracts were searched"

// SearchHandler exposes the semantic search endpoint. Retrieval is not implemented, so every
// search returns an empty result list.
type SearchHandler struct{}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Search handles POST /semantic-search
// @Summary Semantic search (not implemented)
// @Description Accepts a query and contracts and always returns an empty result list.
// @Tags search
// @Accept json
// @Produce json
// @Param query query string false "Search query"
// @Param request body SemanticSearchRequest false "Query and contracts"
// @Success 200 {object} SemanticSearchResponse
// @Failure 400 {object} ErrorResponseBody "Malformed body"
// @Router /semantic-search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SemanticSearchRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	if req.Query == "" {
		req.Query = c.Query("query")
	}

	c.JSON(http.StatusOK, SemanticSearchResponse{
		Query:   req.Query,
		Message: searchNotImplemented,
		Results: []interface{}{},
	})
}
