// controllers/service.go
package controllers

import (
	"net/http"

	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	CategoryID  *uuid.UUID       `json:"categoryId"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	CategoryID  NullableUUID     `json:"categoryId"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// GetServices lists services filtered by category, price range and search
func (h *CatalogController) GetServices(c *gin.Context) {
	var (
		filter = repository.ServiceFilter{Search: c.Query("search")}
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

	items, total, err := h.catalog.ListServices(c.Request.Context(), filter, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *CatalogController) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	service, err := h.catalog.GetService(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, service)
}

// GetServiceEmployees lists the employees able to perform a service
func (h *CatalogController) GetServiceEmployees(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employees, err := h.appointments.AllowedEmployees(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateService creates a new service
func (h *CatalogController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service := models.Service{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
	}
	if err := h.catalog.CreateService(c.Request.Context(), &service); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService updates an existing service
func (h *CatalogController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := h.catalog.UpdateService(c.Request.Context(), id, services.ServicePatch{
		CategoryID:  input.CategoryID.patch(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService deletes a service
func (h *CatalogController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.catalog.DeleteService(c.Request.Context(), id)) {
		return
	}
	deleted(c, "Service")
}
