package handler

import "testing"

func TestLowStockOrDefault(t *testing.T) {
	if got := lowStockOrDefault(nil, 7); got != 7 {
		t.Fatalf("omitted threshold = %d, want configured default 7", got)
	}
	explicit := 12
	if got := lowStockOrDefault(&explicit, 7); got != 12 {
		t.Fatalf("explicit threshold = %d, want 12", got)
	}
	zero := 0
	if got := lowStockOrDefault(&zero, 7); got != 0 {
		t.Fatalf("explicit zero threshold = %d, want 0 (alerts disabled)", got)
	}
}
