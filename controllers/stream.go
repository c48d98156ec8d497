package controllers

import (
	"net/http"

	"bellezza-backend/realtime"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// StreamController upgrades staff connections to the appointment event feed.
type StreamController struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewStreamController accepts websocket origins from allowedOrigins; an
// empty list or "*" accepts any origin.
func NewStreamController(hub *realtime.Hub, allowedOrigins []string, log logrus.FieldLogger) *StreamController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &StreamController{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Stream handles GET /api/appointments/stream
func (h *StreamController) Stream(c *gin.Context) {
	p := utils.CurrentPrincipal(c)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	realtime.NewClient(conn, h.hub, p.UserID).Run(c.Request.Context())
}
