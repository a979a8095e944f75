package service_test

import (
	"testing"

	"listen/internal/service"

	"github.com/gin-gonic/gin/binding"
)

func TestPurchaseItemInputValidation(t *testing.T) {
	zero := int64(0)
	item := service.PurchaseItemInput{ProductID: 1, Quantity: 2, UnitCostCents: &zero}
	if err := binding.Validator.ValidateStruct(item); err != nil {
		t.Fatalf("zero-cost line rejected: %v", err)
	}

	missing := service.PurchaseItemInput{ProductID: 1, Quantity: 2}
	if err := binding.Validator.ValidateStruct(missing); err == nil {
		t.Fatal("line without unit cost accepted")
	}

	neg := int64(-50)
	negative := service.PurchaseItemInput{ProductID: 1, Quantity: 2, UnitCostCents: &neg}
	if err := binding.Validator.ValidateStruct(negative); err == nil {
		t.Fatal("negative unit cost accepted")
	}
}
