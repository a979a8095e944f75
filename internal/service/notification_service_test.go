package service_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/service"
)

// memStore mimics the repository's set-based semantics in memory.
type memStore struct {
	records   []models.Notification
	nextID    uint
	createErr error
}

func (m *memStore) Create(n *models.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	n.ID = m.nextID
	n.CreatedAt = time.Now()
	m.records = append(m.records, *n)
	return nil
}

func (m *memStore) ListAll() ([]models.Notification, error) {
	out := make([]models.Notification, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) CountUnread() (int64, error) {
	var n int64
	for _, r := range m.records {
		if !r.Read {
			n++
		}
	}
	return n, nil
}

func (m *memStore) MarkAllRead() error {
	for i := range m.records {
		m.records[i].Read = true
	}
	return nil
}

func (m *memStore) DeleteRead() (int64, error) {
	var kept []models.Notification
	var deleted int64
	for _, r := range m.records {
		if r.Read {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

type memHub struct {
	pushed []models.Notification
}

func (h *memHub) Broadcast(n *models.Notification) {
	h.pushed = append(h.pushed, *n)
}

func newService() (*service.NotificationService, *memStore, *memHub) {
	store := &memStore{}
	hub := &memHub{}
	return service.NewNotificationService(store, hub), store, hub
}

func TestRaisePersistsThenPushes(t *testing.T) {
	svc, store, hub := newService()

	ref := uint(42)
	if err := svc.Raise("New sale abc for $10.00", domain.CategoryNewSale, "", &ref); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.Message != "New sale abc for $10.00" || rec.Category != domain.CategoryNewSale {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Read {
		t.Fatal("new record must start unread")
	}
	if rec.RelatedID == nil || *rec.RelatedID != 42 {
		t.Fatalf("related id = %v, want 42", rec.RelatedID)
	}
	if len(hub.pushed) != 1 || hub.pushed[0].ID != rec.ID {
		t.Fatalf("pushed %d records, want the persisted one", len(hub.pushed))
	}
}

func TestRaiseRejectsEmptyMessage(t *testing.T) {
	svc, store, hub := newService()
	if err := svc.Raise("", domain.CategoryInfo, "", nil); !errors.Is(err, service.ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
	if len(store.records) != 0 || len(hub.pushed) != 0 {
		t.Fatal("nothing may be persisted or pushed for a rejected raise")
	}
}

func TestRaiseRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newService()
	if err := svc.Raise("m", domain.Category("BOGUS"), "", nil); !errors.Is(err, service.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestPersistFailureSkipsPush(t *testing.T) {
	svc, store, hub := newService()
	store.createErr = errors.New("connection lost")

	err := svc.Raise("m", domain.CategoryInfo, "", nil)
	if err == nil {
		t.Fatal("expected persistence error to surface to the producer")
	}
	if len(hub.pushed) != 0 {
		t.Fatal("an unpersisted record must never be pushed")
	}
}

func TestListAllNewestFirstWithUnreadCount(t *testing.T) {
	svc, store, _ := newService()
	for i := 0; i < 3; i++ {
		if err := svc.NotifyInfo("event"); err != nil {
			t.Fatalf("raise: %v", err)
		}
	}
	store.records[0].Read = true

	list, unread, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d records, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatal("records not in descending creation order")
		}
	}
	if unread != 2 {
		t.Fatalf("unread = %d, want 2", unread)
	}
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	svc, _, _ := newService()
	svc.NotifyInfo("a")
	svc.NotifyInfo("b")

	if err := svc.MarkAllRead(); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if err := svc.MarkAllRead(); err != nil {
		t.Fatalf("second mark all read: %v", err)
	}
	_, unread, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if unread != 0 {
		t.Fatalf("unread = %d, want 0", unread)
	}
}

func TestDeleteReadRemovesExactlyReadRecords(t *testing.T) {
	svc, store, _ := newService()
	for i := 0; i < 5; i++ {
		svc.NotifyInfo("event")
	}
	// Three read, two unread.
	store.records[0].Read = true
	store.records[1].Read = true
	store.records[2].Read = true

	deleted, err := svc.DeleteRead()
	if err != nil {
		t.Fatalf("delete read: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}
	list, unread, _ := svc.ListAll()
	if len(list) != 2 || unread != 2 {
		t.Fatalf("after cleanup: %d records (%d unread), want 2 unread survivors", len(list), unread)
	}

	// Second call is a no-op.
	deleted, err = svc.DeleteRead()
	if err != nil || deleted != 0 {
		t.Fatalf("second delete = (%d, %v), want (0, nil)", deleted, err)
	}
}

func TestAdminUserWrappersTargetAdminRole(t *testing.T) {
	svc, store, _ := newService()
	if err := svc.NotifyUserCreated(7, "staff@listen.local"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.NotifyUserUpdated(7, "staff@listen.local"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.NotifyUserDeleted(7, "staff@listen.local"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	for _, rec := range store.records {
		if rec.Category != domain.CategoryAdminUser {
			t.Fatalf("category = %s, want ADMIN_USER", rec.Category)
		}
		if rec.TargetRole != domain.RoleAdmin {
			t.Fatalf("target role = %q, want ADMIN", rec.TargetRole)
		}
	}
}

func TestEveryOtherWrapperBroadcasts(t *testing.T) {
	svc, store, _ := newService()
	p := &models.Product{ID: 1, Name: "Widget", Stock: 2, LowStockThreshold: 5}

	calls := []func() error{
		func() error { return svc.NotifyLowStock(p) },
		func() error { return svc.NotifyOutOfStock(p) },
		func() error { return svc.NotifyNewSale(1, "ref", 1000) },
		func() error { return svc.NotifySaleStatus(1, "ref", domain.SaleStatusPaid) },
		func() error { return svc.NotifyNewPurchase(1, "Acme", 5000) },
		func() error { return svc.NotifyPurchaseStatus(1, "Acme", domain.PurchaseStatusReceived) },
		func() error { return svc.NotifyInvoiceGenerated(1, "inv-1") },
		func() error { return svc.NotifyReportGenerated("Sales") },
		func() error { return svc.NotifyInfo("hello") },
	}
	for i, call := range calls {
		if err := call(); err != nil {
			t.Fatalf("wrapper %d: %v", i, err)
		}
	}
	for _, rec := range store.records {
		if rec.TargetRole != "" {
			t.Fatalf("category %s set target role %q, want broadcast", rec.Category, rec.TargetRole)
		}
	}
}
