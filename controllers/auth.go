// controllers/auth.go
package controllers

import (
	"net/http"

	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone" binding:"required"`
	BirthDate *string `json:"birthDate"`
}

type TokenInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates an account together with its client profile
func (h *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	birthDate, err := optionalDate(input.BirthDate)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		BirthDate: birthDate,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// Token exchanges email and password for an access token
func (h *AuthController) Token(c *gin.Context) {
	var input TokenInput
	if !bindJSON(c, &input) {
		return
	}

	token, err := h.auth.Token(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthController) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), utils.CurrentPrincipal(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
