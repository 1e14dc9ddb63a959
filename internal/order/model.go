package order

import (
	"time"

	"marketplace-be/internal/auth"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusDeclined  Status = "DECLINED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var statuses = []Status{StatusPending, StatusAccepted, StatusDeclined, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if Status(s) == st {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Active orders still need supplier attention.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

// activeStatuses lists every status for which Active holds.
func activeStatuses() []string {
	var out []string
	for _, st := range statuses {
		if st.Active() {
			out = append(out, string(st))
		}
	}
	return out
}

type Action string

const (
	ActionAccept   Action = "accept"
	ActionDecline  Action = "decline"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

type transition struct {
	from  Status
	to    Status
	actor auth.Kind
}

var transitions = map[Action]transition{
	ActionAccept:   {from: StatusPending, to: StatusAccepted, actor: auth.KindSupplier},
	ActionDecline:  {from: StatusPending, to: StatusDeclined, actor: auth.KindSupplier},
	ActionComplete: {from: StatusAccepted, to: StatusCompleted, actor: auth.KindSupplier},
	ActionCancel:   {from: StatusPending, to: StatusCancelled, actor: auth.KindBuyer},
}

// From is the only status the action may be applied to.
func (a Action) From() Status { return transitions[a].from }

func (a Action) To() Status { return transitions[a].to }

// MovesStock reports whether applying a also decrements the product's stock.
func (a Action) MovesStock() bool { return a == ActionAccept }

type Order struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	BuyerID     uint            `json:"buyer_id"`
	SupplierID  uint            `json:"supplier_id"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VisibleTo reports whether a is one of the two parties to the order.
func (o *Order) VisibleTo(a auth.Actor) bool {
	switch a.Kind {
	case auth.KindBuyer:
		return o.BuyerID == a.ProfileID
	case auth.KindSupplier:
		return o.SupplierID == a.ProfileID
	}
	return false
}

// Snapshot is an order and its product's stock as read under lock.
type Snapshot struct {
	Order Order
	Stock int
}

// Authorize applies the lifecycle rules for a against the locked snapshot.
// Checks run in order: permission, state, stock.
func Authorize(snap *Snapshot, actor auth.Actor, a Action) error {
	t, ok := transitions[a]
	if !ok {
		return ErrInvalidTransition
	}

	if actor.Kind != t.actor {
		return ErrPermissionDenied
	}
	owner := snap.Order.SupplierID
	if t.actor == auth.KindBuyer {
		owner = snap.Order.BuyerID
	}
	if owner != actor.ProfileID {
		return ErrPermissionDenied
	}

	if snap.Order.Status != t.from {
		return ErrInvalidTransition
	}

	if a.MovesStock() && snap.Stock < snap.Order.Quantity {
		return ErrInsufficientStock
	}
	return nil
}

type ProductOrders struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Orders      int    `json:"orders"`
	Active      int    `json:"active"`
}

type Report struct {
	ProductCount     int             `json:"product_count"`
	TotalOrders      int             `json:"total_orders"`
	ActiveOrders     int             `json:"active_orders"`
	OrdersPerProduct []ProductOrders `json:"orders_per_product"`
}
