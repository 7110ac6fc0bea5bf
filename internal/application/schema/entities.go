package schema

// Per-entity form payload shapes. The validate tags are the single source
// of truth for both the browser form and the gateway; binding only parses
// JSON, validation runs in the action layer via Validate.

// BrandPayload is the brand create/update form shape.
type BrandPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image,omitempty" validate:"omitempty,url"`
}

// CustomerPayload is the customer create/update form shape.
type CustomerPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ProductPayload is the product create/update form shape.
type ProductPayload struct {
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku" validate:"required"`
	CategoryID  string          `json:"category,omitempty"`
	BrandID     string          `json:"brand,omitempty"`
	Price       OptionalDecimal `json:"price,omitzero"`
	Cost        OptionalDecimal `json:"cost,omitzero"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image,omitempty" validate:"omitempty,url"`
}

// StockPayload is the stock adjustment form shape.
type StockPayload struct {
	ProductID     string      `json:"product" validate:"required"`
	Quantity      OptionalInt `json:"quantity,omitzero"`
	AlertQuantity OptionalInt `json:"alertQuantity,omitzero"`
}

// StaffPayload is the staff member form shape.
type StaffPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role" validate:"required"`
}

// RecipeVariantPayload is one variant row inside a recipe form.
// Variants without an id are new; existing variants absent from the
// submitted list are removed during update reconciliation.
type RecipeVariantPayload struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name" validate:"required"`
	Price OptionalDecimal `json:"price,omitzero"`
}

// RecipePayload is the recipe create/update form shape.
type RecipePayload struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description,omitempty"`
	Variants    []RecipeVariantPayload `json:"variants" validate:"dive"`
}

// InvoiceItemPayload is one line item on an invoice form.
type InvoiceItemPayload struct {
	ProductID string          `json:"product" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Price     OptionalDecimal `json:"price,omitzero"`
}

// InvoicePayload is the invoice form shape.
type InvoicePayload struct {
	CustomerID string               `json:"customer" validate:"required"`
	Items      []InvoiceItemPayload `json:"items" validate:"required,min=1,dive"`
	Notes      string               `json:"notes,omitempty"`
}

// WarehousePayload is the warehouse form shape.
type WarehousePayload struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
}

// LoginPayload is the login form shape.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
