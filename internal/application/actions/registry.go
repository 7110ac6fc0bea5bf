package actions

import (
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// NewBrands builds the brand operations.
func NewBrands(client *upstream.Client, logger *zap.Logger) *Resource[schema.BrandPayload, Brand] {
	return NewResource[schema.BrandPayload, Brand](client, logger, "/brands", "Brand", "/brands")
}

// NewCustomers builds the customer operations.
func NewCustomers(client *upstream.Client, logger *zap.Logger) *Resource[schema.CustomerPayload, Customer] {
	return NewResource[schema.CustomerPayload, Customer](client, logger, "/customers", "Customer", "/customers")
}

// NewProducts builds the product operations.
func NewProducts(client *upstream.Client, logger *zap.Logger) *Resource[schema.ProductPayload, Product] {
	return NewResource[schema.ProductPayload, Product](client, logger, "/products", "Product", "/products")
}

// NewStaff builds the staff operations.
func NewStaff(client *upstream.Client, logger *zap.Logger) *Resource[schema.StaffPayload, Staff] {
	return NewResource[schema.StaffPayload, Staff](client, logger, "/staff", "Staff member", "/staff")
}

// NewInvoices builds the invoice operations.
func NewInvoices(client *upstream.Client, logger *zap.Logger) *Resource[schema.InvoicePayload, Invoice] {
	return NewResource[schema.InvoicePayload, Invoice](client, logger, "/invoices", "Invoice", "/invoices")
}

// NewWarehouses builds the warehouse operations.
func NewWarehouses(client *upstream.Client, logger *zap.Logger) *Resource[schema.WarehousePayload, Warehouse] {
	return NewResource[schema.WarehousePayload, Warehouse](client, logger, "/warehouses", "Warehouse", "/warehouses")
}
