package controllers

import (
	"net/http"

	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
)

// CatalogController serves categories, services, employees and products.
// Reads are public; writes are staff-only at the router.
type CatalogController struct {
	catalog      *services.CatalogService
	appointments *services.AppointmentService
}

func NewCatalogController(catalog *services.CatalogService, appointments *services.AppointmentService) *CatalogController {
	return &CatalogController{catalog: catalog, appointments: appointments}
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully"})
}

func respondErr(c *gin.Context, err error) bool {
	if err != nil {
		utils.RespondAppError(c, err)
		return true
	}
	return false
}
