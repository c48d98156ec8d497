package controllers

import (
	"net/http"

	"bellezza-backend/repository"
	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	BirthDate *string `json:"birthDate"`
}

// UpdateClientInput defines the expected JSON structure for updating a client.
// The linked user is not writable through the API.
type UpdateClientInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birthDate"`
}

type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

// CreateClient creates a client profile
func (h *ClientController) CreateClient(c *gin.Context) {
	var input CreateClientInput
	if !bindJSON(c, &input) {
		return
	}
	birthDate, err := optionalDate(input.BirthDate)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	client, err := h.clients.Create(c.Request.Context(), utils.CurrentPrincipal(c), services.ClientInput{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		BirthDate: birthDate,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients lists the clients visible to the caller
func (h *ClientController) GetClients(c *gin.Context) {
	filter := repository.ClientFilter{Search: c.Query("search")}
	clients, total, err := h.clients.List(c.Request.Context(), utils.CurrentPrincipal(c), filter, pageFromQuery(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	respondPage(c, clients, total)
}

// GetClient retrieves a specific client by ID
func (h *ClientController) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// GetMyClient returns the caller's own client profile
func (h *ClientController) GetMyClient(c *gin.Context) {
	client, err := h.clients.Mine(c.Request.Context(), utils.CurrentPrincipal(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func (h *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateClientInput
	if !bindJSON(c, &input) {
		return
	}
	birthDate, err := optionalDate(input.BirthDate)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	client, err := h.clients.Update(c.Request.Context(), utils.CurrentPrincipal(c), id, services.ClientPatch{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		BirthDate: birthDate,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client with its appointments and reviews
func (h *ClientController) DeleteClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), utils.CurrentPrincipal(c), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
