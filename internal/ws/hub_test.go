package ws_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/ws"
)

func recvOne(t *testing.T, c *ws.Client) *models.Notification {
	t.Helper()
	select {
	case data := <-c.Send:
		var n models.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			t.Fatalf("unmarshal pushed notification: %v", err)
		}
		return &n
	default:
		t.Fatal("expected a pushed notification, got none")
		return nil
	}
}

func assertEmpty(t *testing.T, c *ws.Client) {
	t.Helper()
	select {
	case data := <-c.Send:
		t.Fatalf("expected no push, got %s", data)
	default:
	}
}

func TestBroadcastReachesAllConnections(t *testing.T) {
	hub := ws.NewHub()
	staff := hub.Register(domain.RoleStaff)
	defer staff.Close()
	anon := hub.Register("")
	defer anon.Close()

	hub.Broadcast(&models.Notification{ID: 1, Message: "Low stock: Widget has 2 units left", Category: domain.CategoryLowStock})

	if n := recvOne(t, staff); n.Category != domain.CategoryLowStock {
		t.Fatalf("staff got category %s", n.Category)
	}
	if n := recvOne(t, anon); n.ID != 1 {
		t.Fatalf("anonymous connection got id %d", n.ID)
	}
}

func TestTargetedBroadcastFiltersByRole(t *testing.T) {
	hub := ws.NewHub()
	admin := hub.Register(domain.RoleAdmin)
	defer admin.Close()
	staff := hub.Register(domain.RoleStaff)
	defer staff.Close()
	anon := hub.Register("")
	defer anon.Close()

	hub.Broadcast(&models.Notification{
		ID:         2,
		Message:    "User x@y.z was created",
		Category:   domain.CategoryAdminUser,
		TargetRole: domain.RoleAdmin,
	})

	if n := recvOne(t, admin); n.TargetRole != domain.RoleAdmin {
		t.Fatalf("admin got target role %q", n.TargetRole)
	}
	assertEmpty(t, staff)
	assertEmpty(t, anon)
}

func TestBroadcastWithNoConnections(t *testing.T) {
	hub := ws.NewHub()
	// Must not panic or block.
	hub.Broadcast(&models.Notification{ID: 3, Message: "hello", Category: domain.CategoryInfo})
}

func TestSlowClientIsSkippedNotWaitedOn(t *testing.T) {
	hub := ws.NewHub()
	c := hub.Register(domain.RoleStaff)
	defer c.Close()

	// Fill the send buffer; further pushes must be dropped, not block.
	for i := 0; i < 256; i++ {
		c.Send <- []byte("x")
	}
	done := make(chan struct{})
	go func() {
		hub.Broadcast(&models.Notification{ID: 4, Message: "m", Category: domain.CategoryInfo})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
}

func TestBroadcastDuringDisconnectDoesNotPanic(t *testing.T) {
	hub := ws.NewHub()
	n := &models.Notification{ID: 6, Message: "m", Category: domain.CategoryInfo}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					hub.Broadcast(n)
				}
			}
		}()
	}
	// Churn connections while broadcasts are in flight.
	for i := 0; i < 500; i++ {
		c := hub.Register(domain.RoleStaff)
		c.Close()
	}
	close(stop)
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("client count = %d, want 0", got)
	}
}

func TestCloseUnregisters(t *testing.T) {
	hub := ws.NewHub()
	a := hub.Register(domain.RoleStaff)
	b := hub.Register("")
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("client count = %d, want 2", got)
	}
	a.Close()
	a.Close() // double close is safe
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("client count after close = %d, want 1", got)
	}
	b.Close()
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("client count after both closed = %d, want 0", got)
	}

	// A closed client no longer receives anything.
	hub.Broadcast(&models.Notification{ID: 5, Message: "m", Category: domain.CategoryInfo})
}
