package admin

import (
	"log"
	"net/http"

	"portal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in the middleware chain, origins are fronted by CORS
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveAttempts streams attempt events to the admin dashboard over WebSocket
// @Summary Live attempt feed
// @Description WebSocket stream of quiz attempt events for the admin dashboard
// @Tags Admin
// @Success 101
// @Failure 401,403 {object} map[string]string
// @Router /admin/attempts/live [get]
// @Security Bearer
func LiveAttempts(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(conn)
	defer func() {
		realtime.UnregisterClient(conn)
		conn.Close()
	}()

	// Drain control frames until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
