package order

import (
	"context"

	"orderdesk/internal/domain"
)

// listCap bounds List results. There is no pagination cursor; callers
// needing more must narrow the filter.
const listCap = 100

// ListFilter selects orders. Empty fields are ignored; supplied fields
// are ANDed. StartDate and EndDate are inclusive bounds on orderDate.
type ListFilter struct {
	Status     string
	CustomerID string
	StartDate  string
	EndDate    string
}

// ItemInput is a caller-supplied order line. The subtotal is always
// recomputed by the repository.
type ItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// CreateInput holds the caller-settable fields of a new order.
type CreateInput struct {
	CustomerID   string
	CustomerName string
	Items        []ItemInput
	Status       string
	Notes        string
	OrderDate    string
	DeliveryDate string
}

// UpdateInput is a partial order update. Nil fields keep their prior
// value; a non-nil Items slice replaces the whole item list and triggers
// recomputation of every subtotal and the order total.
type UpdateInput struct {
	CustomerID   *string
	CustomerName *string
	Items        []ItemInput
	Status       *string
	Notes        *string
	OrderDate    *string
	DeliveryDate *string
}

// Repository persists and fetches orders.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	// ListRange returns every order with start <= orderDate < end,
	// ascending and uncapped. Used by the monthly report, which must see
	// the full month.
	ListRange(ctx context.Context, start, end string) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
