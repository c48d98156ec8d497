package controllers

import (
	"net/http"

	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	CategoryID  *uuid.UUID       `json:"categoryId"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

type UpdateProductInput struct {
	CategoryID  NullableUUID     `json:"categoryId"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (h *CatalogController) GetProducts(c *gin.Context) {
	var (
		filter = repository.ProductFilter{Search: c.Query("search")}
		err    error
	)
	if filter.CategoryID, err = uuidQuery(c, "category"); respondErr(c, err) {
		return
	}
	if filter.MinPrice, err = decimalQuery(c, "min_price"); respondErr(c, err) {
		return
	}
	if filter.MaxPrice, err = decimalQuery(c, "max_price"); respondErr(c, err) {
		return
	}

	items, total, err := h.catalog.ListProducts(c.Request.Context(), filter, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *CatalogController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogController) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if !bindJSON(c, &input) {
		return
	}
	product := models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
	}
	if respondErr(c, h.catalog.CreateProduct(c.Request.Context(), &product)) {
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateProductInput
	if !bindJSON(c, &input) {
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, services.ProductPatch{
		CategoryID:  input.CategoryID.patch(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.catalog.DeleteProduct(c.Request.Context(), id)) {
		return
	}
	deleted(c, "Product")
}
