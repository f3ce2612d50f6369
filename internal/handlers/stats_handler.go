package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"campuscash/internal/services"
)

// StatsHandler serves aggregate views over a user's transactions.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns totals and the expense breakdown
// @Summary     Get statistics
// @Description Total income, total expenses, balance and expenses per category
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.Summary "Statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statsService.GetStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export downloads the plain-text financial summary
// @Summary     Export summary
// @Description Plain-text summary with totals and the ten most recent transactions
// @Tags        stats
// @Produce     plain
// @Security    BearerAuth
// @Success     200 {string} string "Summary document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.statsService.ExportSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc.Content))
}
