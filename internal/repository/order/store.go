package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
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

func (r *storeRepo) List(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	q := store.Query{
		OrderBy: "orderDate",
		Desc:    true,
		Limit:   listCap,
	}
	if filter.Status != "" {
		q.Predicates = append(q.Predicates, store.Predicate{Field: "status", Op: store.OpEq, Value: filter.Status})
	}
	if filter.CustomerID != "" {
		q.Predicates = append(q.Predicates, store.Predicate{Field: "customerId", Op: store.OpEq, Value: filter.CustomerID})
	}
	if filter.StartDate != "" {
		q.Predicates = append(q.Predicates, store.Predicate{Field: "orderDate", Op: store.OpGte, Value: filter.StartDate})
	}
	if filter.EndDate != "" {
		q.Predicates = append(q.Predicates, store.Predicate{Field: "orderDate", Op: store.OpLte, Value: filter.EndDate})
	}

	records, err := r.store.Query(ctx, store.Orders, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, domain.StoreError(err)
	}
	orders, err := decodeOrders(records)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: list count=%d", len(orders))
	return orders, nil
}

func (r *storeRepo) ListRange(ctx context.Context, start, end string) ([]domain.Order, error) {
	q := store.Query{
		Predicates: []store.Predicate{
			{Field: "orderDate", Op: store.OpGte, Value: start},
			{Field: "orderDate", Op: store.OpLt, Value: end},
		},
		OrderBy: "orderDate",
	}

	records, err := r.store.Query(ctx, store.Orders, q)
	if err != nil {
		r.logger.Printf("order repo: range %s..%s error=%v", start, end, err)
		return nil, domain.StoreError(err)
	}
	return decodeOrders(records)
}

func (r *storeRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	rec, err := r.store.GetByID(ctx, store.Orders, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, domain.StoreError(err)
	}
	return decodeOrder(rec)
}

func (r *storeRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	items, total := deriveItems(in.Items)
	status := in.Status
	if status == "" {
		status = domain.StatusReceived
	}
	now := nowStamp()

	order := domain.Order{
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Items:        items,
		TotalAmount:  total,
		Status:       status,
		Notes:        in.Notes,
		OrderDate:    in.OrderDate,
		DeliveryDate: in.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := r.store.Insert(ctx, store.Orders, order)
	if err != nil {
		r.logger.Printf("order repo: create customer_id=%s error=%v", in.CustomerID, err)
		return nil, domain.StoreError(err)
	}
	order.ID = id
	r.logger.Printf("order repo: created id=%s customer_id=%s total=%v", id, in.CustomerID, total)
	return &order, nil
}

func (r *storeRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error) {
	fields := map[string]any{
		"updatedAt": nowStamp(),
	}
	if in.Items != nil {
		items, total := deriveItems(in.Items)
		fields["items"] = items
		fields["totalAmount"] = total
	}
	if in.CustomerID != nil {
		fields["customerId"] = *in.CustomerID
	}
	if in.CustomerName != nil {
		fields["customerName"] = *in.CustomerName
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.OrderDate != nil {
		fields["orderDate"] = *in.OrderDate
	}
	if in.DeliveryDate != nil {
		fields["deliveryDate"] = *in.DeliveryDate
	}

	if err := r.store.UpdateFields(ctx, store.Orders, id, fields); err != nil {
		r.logger.Printf("order repo: update id=%s error=%v", id, err)
		return nil, domain.StoreError(err)
	}
	return r.Get(ctx, id)
}

func (r *storeRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteByID(ctx, store.Orders, id); err != nil {
		r.logger.Printf("order repo: delete id=%s error=%v", id, err)
		return domain.StoreError(err)
	}
	return nil
}

// deriveItems recomputes every subtotal and the order total. Item order
// is preserved.
func deriveItems(inputs []ItemInput) ([]domain.OrderItem, float64) {
	items := make([]domain.OrderItem, 0, len(inputs))
	var total float64
	for _, in := range inputs {
		subtotal := float64(in.Quantity) * in.UnitPrice
		items = append(items, domain.OrderItem{
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Subtotal:    subtotal,
		})
		total += subtotal
	}
	return items, total
}

func decodeOrders(records []store.Record) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		o, err := decodeOrder(rec)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func decodeOrder(rec store.Record) (*domain.Order, error) {
	var o domain.Order
	if err := json.Unmarshal(rec.Data, &o); err != nil {
		return nil, err
	}
	o.ID = rec.ID
	return &o, nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
