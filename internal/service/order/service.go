package order

import (
	"context"
	"strings"
	"time"

	"orderdesk/internal/domain"
	orderrepo "orderdesk/internal/repository/order"
)

// Service validates order input and delegates persistence to the
// repository. Derived fields (subtotals, totals, timestamps) are the
// repository's job.
type Service struct {
	repo repo
}

type repo interface {
	List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
	Update(ctx context.Context, id string, in orderrepo.UpdateInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

func New(r orderrepo.Repository) *Service {
	return &Service{repo: r}
}

// ItemInput mirrors incoming order line payloads. Subtotals in the
// payload are ignored; the repository recomputes them.
type ItemInput struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateInput captures fields expected by the order creation endpoint.
type CreateInput struct {
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	Items        []ItemInput `json:"items"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes"`
	OrderDate    string      `json:"orderDate"`
	DeliveryDate string      `json:"deliveryDate"`
}

// UpdateInput captures a partial order update. Absent fields stay
// unchanged; present fields replace the prior value.
type UpdateInput struct {
	CustomerID   *string     `json:"customerId"`
	CustomerName *string     `json:"customerName"`
	Items        []ItemInput `json:"items"`
	Status       *string     `json:"status"`
	Notes        *string     `json:"notes"`
	OrderDate    *string     `json:"orderDate"`
	DeliveryDate *string     `json:"deliveryDate"`
}

func (s *Service) List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.Invalid("customerId required")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("at least one item required")
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return nil, domain.Invalid("item productName required")
		}
	}
	if err := validDate(in.OrderDate); err != nil {
		return nil, err
	}
	if in.DeliveryDate != "" {
		if err := validDate(in.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return nil, domain.Invalid("unknown status")
	}

	return s.repo.Create(ctx, orderrepo.CreateInput{
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Items:        repoItems(in.Items),
		Status:       in.Status,
		Notes:        in.Notes,
		OrderDate:    in.OrderDate,
		DeliveryDate: in.DeliveryDate,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error) {
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) == "" {
		return nil, domain.Invalid("customerId cannot be empty")
	}
	if in.Items != nil {
		if len(in.Items) == 0 {
			return nil, domain.Invalid("at least one item required")
		}
		for _, item := range in.Items {
			if strings.TrimSpace(item.ProductName) == "" {
				return nil, domain.Invalid("item productName required")
			}
		}
	}
	if in.Status != nil && !domain.ValidStatus(*in.Status) {
		return nil, domain.Invalid("unknown status")
	}
	if in.OrderDate != nil {
		if err := validDate(*in.OrderDate); err != nil {
			return nil, err
		}
	}
	if in.DeliveryDate != nil && *in.DeliveryDate != "" {
		if err := validDate(*in.DeliveryDate); err != nil {
			return nil, err
		}
	}

	var items []orderrepo.ItemInput
	if in.Items != nil {
		items = repoItems(in.Items)
	}
	return s.repo.Update(ctx, id, orderrepo.UpdateInput{
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Items:        items,
		Status:       in.Status,
		Notes:        in.Notes,
		OrderDate:    in.OrderDate,
		DeliveryDate: in.DeliveryDate,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func repoItems(items []ItemInput) []orderrepo.ItemInput {
	out := make([]orderrepo.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, orderrepo.ItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}

// validDate requires the zero-padded "YYYY-MM-DD" form; everything
// downstream compares dates lexicographically.
func validDate(date string) error {
	if len(date) != 10 {
		return domain.Invalid("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.Invalid("date must be YYYY-MM-DD")
	}
	return nil
}
