package customer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/store"
)

type storeRepo struct {
	store  store.Store
	logger *log.Logger
}

// New builds a Repository on top of a document store.
func New(st store.Store, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &storeRepo{store: st, logger: logger}
}

func (r *storeRepo) List(ctx context.Context, filter ListFilter) ([]domain.Customer, error) {
	q := store.Query{
		OrderBy: "name",
		Limit:   listCap,
	}
	if filter.Rank != "" {
		q.Predicates = append(q.Predicates, store.Predicate{Field: "rank", Op: store.OpEq, Value: filter.Rank})
	}

	records, err := r.store.Query(ctx, store.Customers, q)
	if err != nil {
		r.logger.Printf("customer repo: list error=%v", err)
		return nil, domain.StoreError(err)
	}

	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		c, err := decodeCustomer(rec)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		filtered := customers[:0]
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				filtered = append(filtered, c)
			}
		}
		customers = filtered
	}

	r.logger.Printf("customer repo: list count=%d", len(customers))
	return customers, nil
}

func (r *storeRepo) Get(ctx context.Context, id string) (*domain.Customer, error) {
	rec, err := r.store.GetByID(ctx, store.Customers, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get id=%s error=%v", id, err)
		return nil, domain.StoreError(err)
	}
	return decodeCustomer(rec)
}

func (r *storeRepo) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	rank := in.Rank
	if rank == "" {
		rank = domain.RankNew
	}
	now := nowStamp()

	customer := domain.Customer{
		Name:      in.Name,
		Rank:      rank,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := r.store.Insert(ctx, store.Customers, customer)
	if err != nil {
		r.logger.Printf("customer repo: create name=%s error=%v", in.Name, err)
		return nil, domain.StoreError(err)
	}
	customer.ID = id
	r.logger.Printf("customer repo: created id=%s name=%s", id, in.Name)
	return &customer, nil
}

func (r *storeRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	fields := map[string]any{
		"updatedAt": nowStamp(),
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Rank != nil {
		fields["rank"] = *in.Rank
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	if err := r.store.UpdateFields(ctx, store.Customers, id, fields); err != nil {
		r.logger.Printf("customer repo: update id=%s error=%v", id, err)
		return nil, domain.StoreError(err)
	}
	return r.Get(ctx, id)
}

func (r *storeRepo) Delete(ctx context.Context, id string) error {
	// No cascade: orders keep their customerId and name snapshot.
	if err := r.store.DeleteByID(ctx, store.Customers, id); err != nil {
		r.logger.Printf("customer repo: delete id=%s error=%v", id, err)
		return domain.StoreError(err)
	}
	return nil
}

func decodeCustomer(rec store.Record) (*domain.Customer, error) {
	var c domain.Customer
	if err := json.Unmarshal(rec.Data, &c); err != nil {
		return nil, err
	}
	c.ID = rec.ID
	return &c, nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
