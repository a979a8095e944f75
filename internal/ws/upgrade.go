package ws

import (
	"net/http"
	"time"

	"listen/config"
	"listen/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeNotificationsWS upgrades the notification channel. The token query
// parameter is optional: absent means the connection is admitted with no role
// and will only see unrestricted broadcasts. A token that is present but
// invalid refuses the connection outright.
func UpgradeNotificationsWS(cfg *config.JWTConfig, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var client *Client
		if token := c.Query("token"); token != "" {
			claims, err := auth.ParseAccessToken(cfg, token)
			if err != nil {
				log.Warn().Str("remote", conn.RemoteAddr().String()).Msg("notification connect refused: invalid token")
				conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
				return
			}
			client = hub.Register(claims.Role)
		} else {
			client = hub.Register("")
		}
		defer client.Close()

		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies messages from client.Send to the connection until the
// client is closed.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg := <-c.Send:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
