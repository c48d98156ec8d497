package controllers

import (
	"net/http"

	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/services"

	"github.com/gin-gonic/gin"
)

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CatalogController) GetCategories(c *gin.Context) {
	items, total, err := h.catalog.ListCategories(c.Request.Context(),
		repository.CategoryFilter{Search: c.Query("search")}, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *CatalogController) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogController) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category := models.Category{Name: input.Name, Description: input.Description}
	if respondErr(c, h.catalog.CreateCategory(c.Request.Context(), &category)) {
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogController) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateCategoryInput
	if !bindJSON(c, &input) {
		return
	}
	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, services.CategoryPatch{
		Name:        input.Name,
		Description: input.Description,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes the category with its services and products
func (h *CatalogController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.catalog.DeleteCategory(c.Request.Context(), id)) {
		return
	}
	deleted(c, "Category")
}
