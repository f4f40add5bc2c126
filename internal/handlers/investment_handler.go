package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
type CreateInvestmentRequest struct {
	Name          string                `json:"name" binding:"required"`
	Type          models.InvestmentType `json:"type" binding:"required,investment_type"`
	InvestedAmount float64               `json:"investedAmount" binding:"required"`
	CurrentValue  float64               `json:"currentValue" binding:"required"`
	Quantity      *float64              `json:"quantity"`
}

// Create handles the creation of an investment.
// @Summary     Create an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.Create(c.Request.Context(), userID, services.InvestmentInput{
		Name:          req.Name,
		Type:          req.Type,
		InvestedAmount: req.InvestedAmount,
		CurrentValue:  req.CurrentValue,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

// List handles the retrieval of the user's investments.
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Investment "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.investmentService.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

// GetByID handles the retrieval of a single investment.
// @Summary     Get investment by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}

// UpdateInvestmentRequest represents a partial investment update.
type UpdateInvestmentRequest struct {
	Name          *string                `json:"name"`
	Type          *models.InvestmentType `json:"type" binding:"omitempty,investment_type"`
	InvestedAmount *float64               `json:"investedAmount"`
	CurrentValue  *float64               `json:"currentValue"`
	Quantity      *float64               `json:"quantity"`
}

// Update handles updating an existing investment.
// @Summary     Update investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.Update(c.Request.Context(), userID, c.Param("id"), services.InvestmentUpdateFields{
		Name:          req.Name,
		Type:          req.Type,
		InvestedAmount: req.InvestedAmount,
		CurrentValue:  req.CurrentValue,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}

// Delete handles the deletion of an investment.
// @Summary     Delete investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} MessageResponse "Investment deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}
