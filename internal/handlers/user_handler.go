package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"campuscash/internal/services"
)

// UserHandler handles changes to the authenticated user's settings.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// BudgetRequest carries the new budget target.
type BudgetRequest struct {
	Budget *decimal.Decimal `json:"budget" binding:"required,amount,gte=0,lte=999999999999.99" swaggertype:"number"`
}

// BudgetResponse echoes the stored budget.
type BudgetResponse struct {
	Budget decimal.Decimal `json:"budget" swaggertype:"number"`
}

// UpdateBudget sets the user's budget
// @Summary     Update budget
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BudgetRequest true "New budget"
// @Success     200 {object} BudgetResponse "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /user/budget [put]
func (h *UserHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.UpdateBudget(userID, *req.Budget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "user", userID, c.ClientIP(),
		map[string]interface{}{"budget": user.Budget.String()})

	c.JSON(http.StatusOK, BudgetResponse{Budget: user.Budget})
}
