package controllers

import (
	"context"
	"net/http"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAppointmentInput books a slot. ClientID is only read for staff.
type CreateAppointmentInput struct {
	ClientID   *uuid.UUID `json:"clientId"`
	EmployeeID uuid.UUID  `json:"employeeId" binding:"required"`
	ServiceID  uuid.UUID  `json:"serviceId" binding:"required"`
	Date       string     `json:"date" binding:"required"`
	Time       string     `json:"time" binding:"required"`
}

type UpdateAppointmentInput struct {
	EmployeeID *uuid.UUID `json:"employeeId"`
	ServiceID  *uuid.UUID `json:"serviceId"`
	Date       *string    `json:"date"`
	Time       *string    `json:"time"`
	Status     *string    `json:"status"`
}

type AppointmentController struct {
	appointments *services.AppointmentService
}

func NewAppointmentController(appointments *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

// GetAppointments lists the caller's visible appointments, newest first
func (h *AppointmentController) GetAppointments(c *gin.Context) {
	filter, err := appointmentFilter(c)
	if respondErr(c, err) {
		return
	}
	items, total, err := h.appointments.List(c.Request.Context(), utils.CurrentPrincipal(c), filter, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

// GetUrgentAppointments lists today's pending appointments
func (h *AppointmentController) GetUrgentAppointments(c *gin.Context) {
	items, total, err := h.appointments.Urgent(c.Request.Context(), utils.CurrentPrincipal(c), pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, items, total)
}

func (h *AppointmentController) GetAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	appointment, err := h.appointments.Get(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}
	date, err := parseDate(input.Date)
	if respondErr(c, err) {
		return
	}
	clock, err := parseClock(input.Time)
	if respondErr(c, err) {
		return
	}

	appointment, err := h.appointments.Create(c.Request.Context(), utils.CurrentPrincipal(c), services.BookingInput{
		ClientID:   input.ClientID,
		EmployeeID: input.EmployeeID,
		ServiceID:  input.ServiceID,
		Date:       date,
		Time:       clock,
	})
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment applies a partial edit; PUT and PATCH behave the same
func (h *AppointmentController) UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input UpdateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	patch := services.AppointmentPatch{EmployeeID: input.EmployeeID, ServiceID: input.ServiceID}
	var err error
	if patch.Date, err = optionalDate(input.Date); respondErr(c, err) {
		return
	}
	if input.Time != nil {
		clock, err := parseClock(*input.Time)
		if respondErr(c, err) {
			return
		}
		patch.Time = &clock
	}
	principal := utils.CurrentPrincipal(c)
	// Status writes from clients are ignored, valid or not.
	if input.Status != nil && principal.IsStaff {
		status := models.AppointmentStatus(*input.Status)
		if !status.Valid() {
			utils.RespondAppError(c, apperror.Validation("unknown status "+*input.Status))
			return
		}
		patch.Status = &status
	}

	appointment, err := h.appointments.Edit(c.Request.Context(), principal, id, patch)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentController) CancelAppointment(c *gin.Context) {
	h.lifecycle(c, h.appointments.Cancel)
}

func (h *AppointmentController) ConfirmAppointment(c *gin.Context) {
	h.lifecycle(c, h.appointments.Confirm)
}

func (h *AppointmentController) CompleteAppointment(c *gin.Context) {
	h.lifecycle(c, h.appointments.Complete)
}

func (h *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if respondErr(c, h.appointments.Delete(c.Request.Context(), utils.CurrentPrincipal(c), id)) {
		return
	}
	deleted(c, "Appointment")
}

type lifecycleAction func(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentController) lifecycle(c *gin.Context, action lifecycleAction) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	appointment, err := action(c.Request.Context(), utils.CurrentPrincipal(c), id)
	if respondErr(c, err) {
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func appointmentFilter(c *gin.Context) (repository.AppointmentFilter, error) {
	f := repository.AppointmentFilter{Search: c.Query("search")}
	var err error
	if f.ClientID, err = uuidQuery(c, "client"); err != nil {
		return f, err
	}
	if f.EmployeeID, err = uuidQuery(c, "employee"); err != nil {
		return f, err
	}
	if f.ServiceID, err = uuidQuery(c, "service"); err != nil {
		return f, err
	}
	if raw := c.Query("date"); raw != "" {
		if f.Date, err = optionalDate(&raw); err != nil {
			return f, err
		}
	}
	if raw := c.Query("status"); raw != "" {
		f.Status = models.AppointmentStatus(raw)
		if !f.Status.Valid() {
			return f, apperror.Validation("unknown status " + raw)
		}
	}
	return f, nil
}
