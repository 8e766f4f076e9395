package report

import (
	"context"
	"fmt"

	"orderdesk/internal/domain"
)

// Service builds the monthly aggregation report: one row per customer
// with orders in the month, each row carrying per-product rollups.
type Service struct {
	orders    orderSource
	customers customerSource
}

type orderSource interface {
	ListRange(ctx context.Context, start, end string) ([]domain.Order, error)
}

type customerSource interface {
	Resolve(ctx context.Context, ids []string) (map[string]domain.Customer, error)
}

func New(orders orderSource, customers customerSource) *Service {
	return &Service{orders: orders, customers: customers}
}

type customerGroup struct {
	name        string
	rank        string
	orderCount  int
	totalAmount float64
	items       *orderedMap[*productAcc]
}

type productAcc struct {
	quantity int
	subtotal float64
}

// Summarize aggregates the month's orders grouped by customer. Rows
// appear in the order each customer's first order of the month was
// placed. The customer name comes from the order's own snapshot; the
// rank is looked up from the current customer record and falls back to
// "?" when the customer no longer resolves.
func (s *Service) Summarize(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, domain.Invalid("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, domain.Invalid("year must be positive")
	}

	start, end := monthRange(year, month)
	orders, err := s.orders.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.CustomerID)
	}
	customers, err := s.customers.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	groups := newOrderedMap[*customerGroup]()
	for _, o := range orders {
		group, ok := groups.get(o.CustomerID)
		if !ok {
			rank := domain.RankUnknown
			if c, resolved := customers[o.CustomerID]; resolved {
				rank = c.Rank
			}
			group = &customerGroup{
				name:  o.CustomerName,
				rank:  rank,
				items: newOrderedMap[*productAcc](),
			}
			groups.set(o.CustomerID, group)
		}

		group.orderCount++
		group.totalAmount += o.TotalAmount

		for _, item := range o.Items {
			acc, ok := group.items.get(item.ProductName)
			if !ok {
				acc = &productAcc{}
				group.items.set(item.ProductName, acc)
			}
			acc.quantity += item.Quantity
			acc.subtotal += item.Subtotal
		}
	}

	summary := make([]domain.CustomerSummary, 0, groups.len())
	var grandTotal float64
	groups.each(func(_ string, group *customerGroup) {
		rollups := make([]domain.ProductRollup, 0, group.items.len())
		group.items.each(func(productName string, acc *productAcc) {
			rollups = append(rollups, domain.ProductRollup{
				ProductName: productName,
				Quantity:    acc.quantity,
				Subtotal:    acc.subtotal,
			})
		})
		summary = append(summary, domain.CustomerSummary{
			CustomerName: group.name,
			CustomerRank: group.rank,
			OrderCount:   group.orderCount,
			TotalAmount:  group.totalAmount,
			Items:        rollups,
		})
		grandTotal += group.totalAmount
	})

	return &domain.MonthlySummary{
		Year:        year,
		Month:       month,
		Summary:     summary,
		TotalOrders: len(orders),
		GrandTotal:  grandTotal,
	}, nil
}

// monthRange returns the half-open [start, end) ISO date range covering
// (year, month). December rolls over to January 1st of the next year.
func monthRange(year, month int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	if month == 12 {
		return start, fmt.Sprintf("%04d-01-01", year+1)
	}
	return start, fmt.Sprintf("%04d-%02d-01", year, month+1)
}
