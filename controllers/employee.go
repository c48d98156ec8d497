package controllers

import (
	"net/http"

	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateEmployeeInput struct {
	Name       string      `json:"name" binding:"required"`
	Position   string      `json:"position"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
}

// UpdateEmployeeInput replaces the service set only when serviceIds is sent.
type UpdateEmployeeInput struct {
	Name       *string      `json:"name"`
	Position   *string      `json:"position"`
	ServiceIDs *[]uuid.UUID `json:"serviceIds"`
}

func (h *CatalogController) GetEmployees(c *gin.Context) {
	var (
		filter = repository.EmployeeFilter{Position: c.Query("position"), Search: c.Query("search")}
		err    error
	)
	if filter.ServiceID, err = uuidQuery(c, "service"); respondErr(c, err) {
		return
	}
	items, total, err := h.catalog.ListEmployees(c.Request.Context(), filter, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *CatalogController) GetEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := h.catalog.GetEmployee(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *CatalogController) CreateEmployee(c *gin.Context) {
	var input CreateEmployeeInput
	if !bindJSON(c, &input) {
		return
	}
	employee := models.Employee{Name: input.Name, Position: input.Position}
	if respondErr(c, h.catalog.CreateEmployee(c.Request.Context(), &employee, input.ServiceIDs)) {
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *CatalogController) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateEmployeeInput
	if !bindJSON(c, &input) {
		return
	}
	employee, err := h.catalog.UpdateEmployee(c.Request.Context(), id, services.EmployeePatch{
		Name:       input.Name,
		Position:   input.Position,
		ServiceIDs: input.ServiceIDs,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *CatalogController) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.catalog.DeleteEmployee(c.Request.Context(), id)) {
		return
	}
	deleted(c, "Employee")
}
