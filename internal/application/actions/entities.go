package actions

import (
	"errors"

	"github.com/shopspring/decimal"
)

// errMissingTenant marks mutations attempted without a resolved session.
// Display-wise it maps to the generic message; it exists for logs.
var errMissingTenant = errors.New("tenant context not resolved")

// Entity shapes as the remote API returns them. Fields beyond what the
// forms edit (ids, timestamps) ride along untouched.

// Brand is a product brand.
type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Customer is a registered customer.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Product is a sellable product.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	CategoryID  string          `json:"category,omitempty"`
	BrandID     string          `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image,omitempty"`
	Location    string          `json:"location,omitempty"`
}

// Stock is the on-hand quantity of a product in a warehouse.
type Stock struct {
	ID            string `json:"id"`
	ProductID     string `json:"product"`
	ProductName   string `json:"productName,omitempty"`
	WarehouseID   string `json:"warehouse,omitempty"`
	Quantity      int64  `json:"quantity"`
	AlertQuantity int64  `json:"alertQuantity,omitempty"`
}

// Staff is a staff member account.
type Staff struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Location string `json:"location,omitempty"`
}

// RecipeVariant is one sellable variation of a recipe.
type RecipeVariant struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Recipe is a menu recipe with its variants.
type Recipe struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Variants    []RecipeVariant `json:"variants,omitempty"`
	Location    string          `json:"location,omitempty"`
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ProductID string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Invoice is a sales invoice.
type Invoice struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer"`
	Items      []InvoiceItem   `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	Location   string          `json:"location,omitempty"`
	CreatedAt  string          `json:"createdAt,omitempty"`
}

// Warehouse is a stock-keeping site.
type Warehouse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Business string `json:"business,omitempty"`
}
