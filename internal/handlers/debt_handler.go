package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the request payload for creating a debt.
type CreateDebtRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           models.DebtType `json:"type" binding:"required,debt_type"`
	Balance        float64         `json:"balance" binding:"required"`
	InterestRate   float64         `json:"interestRate"`
	MinimumPayment float64         `json:"minimumPayment"`
}

// Create handles the creation of a debt.
// @Summary     Create a debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.Create(c.Request.Context(), userID, services.DebtInput{
		Name:           req.Name,
		Type:           req.Type,
		Balance:        req.Balance,
		InterestRate:   req.InterestRate,
		MinimumPayment: req.MinimumPayment,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, debt)
}

// List handles the retrieval of the user's debts.
// @Summary     List debts
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Debt "Debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debts, err := h.debtService.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, debts)
}

// GetByID handles the retrieval of a single debt.
// @Summary     Get debt by ID
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} models.Debt "Debt"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, debt)
}

// UpdateDebtRequest represents a partial debt update.
type UpdateDebtRequest struct {
	Name           *string          `json:"name"`
	Type           *models.DebtType `json:"type" binding:"omitempty,debt_type"`
	Balance        *float64         `json:"balance"`
	InterestRate   *float64         `json:"interestRate"`
	MinimumPayment *float64         `json:"minimumPayment"`
}

// Update handles updating an existing debt.
// @Summary     Update debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to update"
// @Success     200 {object} models.Debt "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [put]
func (h *DebtHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.Update(c.Request.Context(), userID, c.Param("id"), services.DebtUpdateFields{
		Name:           req.Name,
		Type:           req.Type,
		Balance:        req.Balance,
		InterestRate:   req.InterestRate,
		MinimumPayment: req.MinimumPayment,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, debt)
}

// Delete handles the deletion of a debt.
// @Summary     Delete debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted successfully"})
}
