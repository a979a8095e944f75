package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listen/config"
	"listen/internal/auth"
	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func jwtConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-secret",
		RefreshSecret: "test-refresh",
		AccessExpiry:  time.Hour,
		RefreshExpiry: time.Hour,
		Issuer:        "listen-test",
	}
}

func startServer(t *testing.T, cfg *config.JWTConfig, hub *ws.Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(cfg, hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func waitForClients(t *testing.T, hub *ws.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConnectWithValidTokenReceivesRoleScopedPush(t *testing.T) {
	cfg := jwtConfig()
	hub := ws.NewHub()
	srv := startServer(t, cfg, hub)

	token, err := auth.GenerateAccessToken(cfg, 1, "admin@listen.local", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Broadcast(&models.Notification{
		ID:         1,
		Message:    "User s@listen.local was created",
		Category:   domain.CategoryAdminUser,
		TargetRole: domain.RoleAdmin,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read push: %v", err)
	}
	if !strings.Contains(string(data), "ADMIN_USER") {
		t.Fatalf("unexpected push payload: %s", data)
	}
}

func TestConnectWithoutTokenGetsBroadcastsOnly(t *testing.T) {
	cfg := jwtConfig()
	hub := ws.NewHub()
	srv := startServer(t, cfg, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	// Role-restricted: must not arrive.
	hub.Broadcast(&models.Notification{ID: 1, Message: "m", Category: domain.CategoryAdminUser, TargetRole: domain.RoleAdmin})
	// Unrestricted: must arrive.
	hub.Broadcast(&models.Notification{ID: 2, Message: "Low stock: Widget has 2 units left", Category: domain.CategoryLowStock})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read push: %v", err)
	}
	if !strings.Contains(string(data), "LOW_STOCK") {
		t.Fatalf("expected the unrestricted broadcast first, got: %s", data)
	}
}

func TestConnectWithInvalidTokenIsRefused(t *testing.T) {
	cfg := jwtConfig()
	hub := ws.NewHub()
	srv := startServer(t, cfg, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "not-a-token"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if !strings.Contains(string(data), "invalid token") {
		t.Fatalf("expected invalid token error, got: %s", data)
	}
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("refused connection was registered; client count = %d", got)
	}
	// Server closes after the error frame.
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed after refusal")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	cfg := jwtConfig()
	hub := ws.NewHub()
	srv := startServer(t, cfg, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitForClients(t, hub, 1)
	conn.Close()
	waitForClients(t, hub, 0)
}
