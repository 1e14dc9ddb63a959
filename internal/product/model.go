package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultReorderThreshold = 10

type Product struct {
	ID               uint            `json:"id"`
	SupplierID       uint            `json:"supplier_id"`
	CategoryID       *uint           `json:"category_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NeedsRestock reports whether stock has fallen to the reorder threshold.
func (p *Product) NeedsRestock() bool {
	return p.Quantity <= p.ReorderThreshold
}

func (p *Product) OwnedBy(supplierID uint) bool {
	return p.SupplierID == supplierID
}

type CreateInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	Quantity         int
	ReorderThreshold *int
	CategoryID       *uint
}

type UpdateInput struct {
	Name             *string
	Description      *string
	Price            *decimal.Decimal
	Quantity         *int
	ReorderThreshold *int
	CategoryID       *uint
	ClearCategory    bool
}

func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil &&
		in.Quantity == nil && in.ReorderThreshold == nil &&
		in.CategoryID == nil && !in.ClearCategory
}

type ListOptions struct {
	Search     string
	CategoryID *uint
	Limit      int
	Page       int
}

type ListResult struct {
	Items []*Product `json:"items"`
	Total int        `json:"total"`
	Limit int        `json:"limit"`
	Page  int        `json:"page"`
}
