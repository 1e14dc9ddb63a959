package rating

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinScore         = 1
	MaxScore         = 5
	MaxCommentLength = 500
	RecentLimit      = 5
)

type Rating struct {
	ID         uint      `json:"id"`
	OrderID    uint      `json:"order_id"`
	RaterID    uint      `json:"rater_id"`
	SupplierID uint      `json:"supplier_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Stats struct {
	Average decimal.Decimal
	Count   int
}

// Summary is the public view of a supplier with its rating aggregate.
type Summary struct {
	SupplierID uint            `json:"supplier_id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	Average    decimal.Decimal `json:"average"`
	Count      int             `json:"count"`
	Recent     []*Rating       `json:"recent"`
}
