package customer

import (
	"context"
	"strings"

	"orderdesk/internal/domain"
	custrepo "orderdesk/internal/repository/customer"
)

// Service validates customer input and delegates persistence to the
// repository.
type Service struct {
	repo repo
}

type repo interface {
	List(ctx context.Context, filter custrepo.ListFilter) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, in custrepo.CreateInput) (*domain.Customer, error)
	Update(ctx context.Context, id string, in custrepo.UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

func New(r custrepo.Repository) *Service {
	return &Service{repo: r}
}

// CreateInput captures fields expected by the customer creation endpoint.
type CreateInput struct {
	Name    string `json:"name"`
	Rank    string `json:"rank"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateInput captures a partial customer update. Absent fields stay
// unchanged; present fields replace the prior value.
type UpdateInput struct {
	Name    *string `json:"name"`
	Rank    *string `json:"rank"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (s *Service) List(ctx context.Context, filter custrepo.ListFilter) ([]domain.Customer, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name required")
	}
	if in.Rank != "" && !domain.ValidRank(in.Rank) {
		return nil, domain.Invalid("unknown rank")
	}

	return s.repo.Create(ctx, custrepo.CreateInput{
		Name:    in.Name,
		Rank:    in.Rank,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Notes:   in.Notes,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Invalid("name cannot be empty")
	}
	if in.Rank != nil && !domain.ValidRank(*in.Rank) {
		return nil, domain.Invalid("unknown rank")
	}

	return s.repo.Update(ctx, id, custrepo.UpdateInput{
		Name:    in.Name,
		Rank:    in.Rank,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Notes:   in.Notes,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
