package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/vendra/vendra-backend/internal/events"
	"github.com/vendra/vendra-backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin checks happen in the CORS middleware before the upgrade
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsController upgrades dashboard connections onto the catalog event
// stream.
type EventsController struct {
	hub *events.Hub
}

func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{
		hub: hub,
	}
}

// Subscribe upgrades the connection and streams catalog change events
// GET /api/v1/admin/events
func (ctrl *EventsController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := events.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
