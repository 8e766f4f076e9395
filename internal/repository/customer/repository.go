package customer

import (
	"context"

	"orderdesk/internal/domain"
)

// listCap bounds the store-level page List works from. The page is cut
// by name order before the search filter runs, so a search can miss
// customers whose names sort past the cap. Known limitation, kept to
// match the store's query capabilities.
const listCap = 200

// ListFilter selects customers. Rank is an exact match pushed to the
// store; Search is a case-insensitive substring match against the name,
// applied after retrieval because the store cannot express it.
type ListFilter struct {
	Rank   string
	Search string
}

// CreateInput holds the caller-settable fields of a new customer.
// Rank defaults to "D" when empty.
type CreateInput struct {
	Name    string
	Rank    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// UpdateInput is a partial customer update; nil fields keep their prior
// value.
type UpdateInput struct {
	Name    *string
	Rank    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// Repository persists and fetches customers.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, in CreateInput) (*domain.Customer, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}
