package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finbook/internal/errors"
	"finbook/internal/services"
)

// CategoryHandler handles transaction category requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// AddCategoryRequest represents the request payload for adding a category.
type AddCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// List handles the retrieval of the user's transaction categories.
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  string "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Add handles adding a new category to the user's list.
// @Summary     Add a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddCategoryRequest true "Category name"
// @Success     201 {array}  string "Updated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	categories, err := h.categoryService.Add(c.Request.Context(), userID, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categories)
}

// Remove handles removing a category from the user's list.
// @Summary     Remove a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Category name"
// @Success     200 {array}  string "Updated categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name} [delete]
func (h *CategoryHandler) Remove(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.Remove(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
