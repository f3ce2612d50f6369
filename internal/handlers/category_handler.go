package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuscash/internal/categories"
)

// CategoryHandler serves the fixed category tables.
type CategoryHandler struct {
	tables categories.Tables
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(tables categories.Tables) *CategoryHandler {
	return &CategoryHandler{tables: tables}
}

// ListCategories returns the income and expense category tables
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {object} categories.Tables "Category tables"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.tables)
}
