package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/models"
	"finbook/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// manual transaction. All fields are required.
type CreateTransactionRequest struct {
	Amount      float64                `json:"amount" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Date        string                 `json:"date" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Category    string                 `json:"category" binding:"required"`
}

// Create handles the creation of a manual transaction.
// @Summary     Create a transaction
// @Description Create a manual transaction. A retried submission with equal amount and description within 30 seconds returns the existing record.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created (or absorbed retry)"
// @Failure     400 {object} ErrorResponse "Missing or invalid fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.Create(
		c.Request.Context(),
		userID,
		req.Amount,
		req.Description,
		req.Date,
		req.Type,
		req.Category,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// List handles the retrieval of the user's transactions with optional
// filters, sorted by date descending.
// @Summary     List transactions
// @Description List the user's transactions with optional category/type/date filters, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       type      query string false "Filter by type (income, expense)"
// @Param       startDate query string false "Filter by start date (inclusive)"
// @Param       endDate   query string false "Filter by end date (inclusive)"
// @Success     200 {array}  models.Transaction "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.TransactionFilter{
		Category:  c.Query("category"),
		Type:      c.Query("type"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	transactions, err := h.transactionService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Absent fields are left untouched.
type UpdateTransactionRequest struct {
	Amount      *float64                `json:"amount"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Date        *string                 `json:"date"`
	Description *string                 `json:"description"`
	Category    *string                 `json:"category"`
}

// Update handles updating an existing transaction.
// @Summary     Update transaction
// @Description Apply a partial update to an owned transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), userID, c.Param("id"), services.TransactionUpdateFields{
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// Delete handles the deletion of a transaction.
// @Summary     Delete transaction
// @Description Delete an owned transaction by ID
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportTransactionsRequest represents an import batch.
type ImportTransactionsRequest struct {
	Transactions []services.ImportRecord `json:"transactions" binding:"required"`
}

// Import handles a batch import of externally sourced transactions. The
// response is always 201 with a reconciliation report; persistence failures
// are communicated through the report's errors counter, not the HTTP status.
// @Summary     Import transactions
// @Description De-duplicate and persist a batch of externally sourced transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ImportTransactionsRequest true "Transactions to import"
// @Success     201 {object} services.ImportReport "Reconciliation report"
// @Failure     400 {object} ErrorResponse "Missing or malformed payload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/import [post]
func (h *TransactionHandler) Import(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "missing or invalid transactions payload"))
		return
	}

	report, err := h.transactionService.Import(c.Request.Context(), userID, req.Transactions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// CategoryFeedbackRequest represents a category correction.
type CategoryFeedbackRequest struct {
	Description   string `json:"description" binding:"required"`
	OldCategory   string `json:"oldCategory" binding:"required"`
	NewCategory   string `json:"newCategory" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// Feedback handles a category correction submission.
// @Summary     Submit category feedback
// @Description Persist a category correction for future classifier training
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryFeedbackRequest true "Correction details"
// @Success     200 {object} MessageResponse "Feedback received"
// @Failure     400 {object} ErrorResponse "Missing fields"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/feedback [post]
func (h *TransactionHandler) Feedback(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.RecordCategoryFeedback(
		c.Request.Context(),
		userID,
		req.TransactionID,
		req.Description,
		req.OldCategory,
		req.NewCategory,
	); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback received"})
}
