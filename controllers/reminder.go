// controllers/reminder.go
package controllers

import (
	"net/http"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/services"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReminderController exposes the reminder log and manual job triggers to staff.
type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// GetReminderLogs lists delivery attempts, newest first, optionally by status
func (h *ReminderController) GetReminderLogs(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != models.ReminderSent && status != models.ReminderFailed {
		utils.RespondAppError(c, apperror.Validation("status must be sent or failed"))
		return
	}
	logs, total, err := h.reminders.Logs(c.Request.Context(), status, pageFromQuery(c))
	if respondErr(c, err) {
		return
	}
	respondPage(c, logs, total)
}

// RunReminders sends tomorrow's reminders now
func (h *ReminderController) RunReminders(c *gin.Context) {
	result, err := h.reminders.SendReminders(c.Request.Context())
	if respondErr(c, err) {
		return
	}
	status := http.StatusOK
	if result.Skipped {
		status = http.StatusAccepted
	}
	c.JSON(status, result)
}

// PurgeAppointments deletes appointments past the retention period
func (h *ReminderController) PurgeAppointments(c *gin.Context) {
	deleted, skipped, err := h.reminders.PurgeOldAppointments(c.Request.Context())
	if respondErr(c, err) {
		return
	}
	status := http.StatusOK
	if skipped {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"deleted": deleted, "skipped": skipped})
}
