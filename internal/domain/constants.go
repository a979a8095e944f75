package domain

// Role is the coarse authorization label carried by a session token and by a
// live notification connection. The zero value means unauthenticated.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleClient Role = "CLIENT" // storefront accounts
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// Category tags a notification with the producer scenario that raised it.
type Category string

const (
	CategoryLowStock         Category = "LOW_STOCK"
	CategoryOutOfStock       Category = "OUT_OF_STOCK"
	CategoryNewSale          Category = "NEW_SALE"
	CategorySaleStatus       Category = "SALE_STATUS"
	CategoryNewPurchase      Category = "NEW_PURCHASE"
	CategoryPurchaseStatus   Category = "PURCHASE_STATUS"
	CategoryInvoiceGenerated Category = "INVOICE_GENERATED"
	CategoryAdminUser        Category = "ADMIN_USER"
	CategoryReportGenerated  Category = "REPORT_GENERATED"
	CategoryInfo             Category = "INFO"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLowStock, CategoryOutOfStock, CategoryNewSale, CategorySaleStatus,
		CategoryNewPurchase, CategoryPurchaseStatus, CategoryInvoiceGenerated,
		CategoryAdminUser, CategoryReportGenerated, CategoryInfo:
		return true
	}
	return false
}

const (
	SaleStatusPending   = "PENDING"
	SaleStatusPaid      = "PAID"
	SaleStatusShipped   = "SHIPPED"
	SaleStatusDelivered = "DELIVERED"
	SaleStatusCancelled = "CANCELLED"
)

const (
	PurchaseStatusOrdered   = "ORDERED"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusCancelled = "CANCELLED"
)
