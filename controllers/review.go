package controllers

import (
	"net/http"
	"strconv"

	"bellezza-backend/apperror"
	"bellezza-backend/repository"
	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateReviewInput struct {
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Rating        int       `json:"rating" binding:"required"`
	Comment       string    `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (h *ReviewController) GetReviews(c *gin.Context) {
	var (
		filter repository.ReviewFilter
		err    error
	)
	if filter.ClientID, err = uuidQuery(c, "client"); respondErr(c, err) {
		return
	}
	if raw := c.Query("min_rating"); raw != "" {
		if filter.MinRating, err = strconv.Atoi(raw); err != nil {
			utils.RespondAppError(c, apperror.Validation("invalid min_rating"))
			return
		}
	}
	items, total, err := h.reviews.List(c.Request.Context(), filter, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

// GetHighRatedReviews lists reviews rated 4 and above
func (h *ReviewController) GetHighRatedReviews(c *gin.Context) {
	items, total, err := h.reviews.HighRated(c.Request.Context(), pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *ReviewController) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := h.reviews.Get(c.Request.Context(), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewController) CreateReview(c *gin.Context) {
	var input CreateReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), utils.CurrentPrincipal(c), services.ReviewInput{
		AppointmentID: input.AppointmentID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewController) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := h.reviews.Edit(c.Request.Context(), utils.CurrentPrincipal(c), id, services.ReviewPatch{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.reviews.Delete(c.Request.Context(), utils.CurrentPrincipal(c), id)) {
		return
	}
	deleted(c, "Review")
}
