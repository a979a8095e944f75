package service

import (
	"testing"

	"listen/internal/domain"
)

func TestSaleTransitionAllowed(t *testing.T) {
	allowed := [][2]string{
		{domain.SaleStatusPending, domain.SaleStatusPaid},
		{domain.SaleStatusPending, domain.SaleStatusCancelled},
		{domain.SaleStatusPaid, domain.SaleStatusShipped},
		{domain.SaleStatusPaid, domain.SaleStatusCancelled},
		{domain.SaleStatusShipped, domain.SaleStatusDelivered},
	}
	for _, tr := range allowed {
		if !saleTransitionAllowed(tr[0], tr[1]) {
			t.Errorf("%s -> %s should be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{domain.SaleStatusPending, domain.SaleStatusShipped},
		{domain.SaleStatusPending, domain.SaleStatusDelivered},
		{domain.SaleStatusPaid, domain.SaleStatusPending},
		{domain.SaleStatusShipped, domain.SaleStatusCancelled},
		{domain.SaleStatusDelivered, domain.SaleStatusCancelled},
		{domain.SaleStatusCancelled, domain.SaleStatusPending},
		{domain.SaleStatusDelivered, domain.SaleStatusDelivered},
	}
	for _, tr := range denied {
		if saleTransitionAllowed(tr[0], tr[1]) {
			t.Errorf("%s -> %s should be rejected", tr[0], tr[1])
		}
	}
}
