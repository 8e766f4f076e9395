package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

type stubOrders struct {
	orders    []domain.Order
	gotStart  string
	gotEnd    string
	err       error
	rangeOnly bool
}

func (s *stubOrders) ListRange(_ context.Context, start, end string) ([]domain.Order, error) {
	s.gotStart, s.gotEnd = start, end
	if s.err != nil {
		return nil, s.err
	}
	if !s.rangeOnly {
		return s.orders, nil
	}
	var out []domain.Order
	for _, o := range s.orders {
		if o.OrderDate >= start && o.OrderDate < end {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubCustomers struct {
	customers map[string]domain.Customer
	gotIDs    []string
	err       error
}

func (s *stubCustomers) Resolve(_ context.Context, ids []string) (map[string]domain.Customer, error) {
	s.gotIDs = ids
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]domain.Customer)
	for _, id := range ids {
		if c, ok := s.customers[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func order(customerID, name, date string, items ...domain.OrderItem) domain.Order {
	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	return domain.Order{
		CustomerID:   customerID,
		CustomerName: name,
		Items:        items,
		TotalAmount:  total,
		OrderDate:    date,
	}
}

func item(product string, qty int, subtotal float64) domain.OrderItem {
	return domain.OrderItem{ProductName: product, Quantity: qty, Subtotal: subtotal}
}

func TestSummarizeMergesRepeatProductsPerCustomer(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		order("c1", "Sato Bakery", "2024-03-04", item("Widget", 2, 200)),
		order("c1", "Sato Bakery", "2024-03-10", item("Widget", 1, 100)),
	}}
	customers := &stubCustomers{customers: map[string]domain.Customer{
		"c1": {ID: "c1", Name: "Sato Bakery", Rank: domain.RankTop},
	}}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 2, got.TotalOrders)
	assert.Equal(t, 300.0, got.GrandTotal)

	require.Len(t, got.Summary, 1)
	row := got.Summary[0]
	assert.Equal(t, "Sato Bakery", row.CustomerName)
	assert.Equal(t, domain.RankTop, row.CustomerRank)
	assert.Equal(t, 2, row.OrderCount)
	assert.Equal(t, 300.0, row.TotalAmount)

	require.Len(t, row.Items, 1)
	assert.Equal(t, "Widget", row.Items[0].ProductName)
	assert.Equal(t, 3, row.Items[0].Quantity)
	assert.Equal(t, 300.0, row.Items[0].Subtotal)
}

func TestSummarizeQueriesHalfOpenMonthRange(t *testing.T) {
	orders := &stubOrders{rangeOnly: true, orders: []domain.Order{
		order("c1", "Sato Bakery", "2024-02-28", item("Widget", 1, 100)),
		order("c1", "Sato Bakery", "2024-03-01", item("Widget", 1, 100)),
		order("c1", "Sato Bakery", "2024-03-31", item("Widget", 1, 100)),
		order("c1", "Sato Bakery", "2024-04-01", item("Widget", 1, 100)),
	}}
	customers := &stubCustomers{}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", orders.gotStart)
	assert.Equal(t, "2024-04-01", orders.gotEnd)
	assert.Equal(t, 2, got.TotalOrders)
}

func TestSummarizeUnresolvedCustomerGetsUnknownRank(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		order("gone", "Closed Shop", "2024-03-04", item("Widget", 1, 100)),
	}}
	customers := &stubCustomers{}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	require.Len(t, got.Summary, 1)
	assert.Equal(t, "Closed Shop", got.Summary[0].CustomerName)
	assert.Equal(t, domain.RankUnknown, got.Summary[0].CustomerRank)
}

// The name on the row is the snapshot carried by the order, not the
// current customer record.
func TestSummarizeUsesOrderNameSnapshot(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		order("c1", "Old Name", "2024-03-04", item("Widget", 1, 100)),
	}}
	customers := &stubCustomers{customers: map[string]domain.Customer{
		"c1": {ID: "c1", Name: "New Name", Rank: domain.RankRegular},
	}}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	require.Len(t, got.Summary, 1)
	assert.Equal(t, "Old Name", got.Summary[0].CustomerName)
	assert.Equal(t, domain.RankRegular, got.Summary[0].CustomerRank)
}

func TestSummarizeRowsFollowFirstOrderAppearance(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		order("c2", "Tanaka Cafe", "2024-03-02", item("Coffee", 1, 500)),
		order("c1", "Sato Bakery", "2024-03-03", item("Flour", 1, 300)),
		order("c2", "Tanaka Cafe", "2024-03-04", item("Milk", 2, 400)),
	}}
	customers := &stubCustomers{}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	require.Len(t, got.Summary, 2)
	assert.Equal(t, "Tanaka Cafe", got.Summary[0].CustomerName)
	assert.Equal(t, "Sato Bakery", got.Summary[1].CustomerName)
	assert.Equal(t, 3, got.TotalOrders)
	assert.Equal(t, 1200.0, got.GrandTotal)
}

// Reordering the input orders may change row order but never row content.
func TestSummarizeIsOrderIndependentAsASet(t *testing.T) {
	forward := []domain.Order{
		order("c1", "Sato Bakery", "2024-03-03", item("Flour", 1, 300)),
		order("c2", "Tanaka Cafe", "2024-03-05", item("Coffee", 1, 500)),
		order("c1", "Sato Bakery", "2024-03-10", item("Flour", 2, 600)),
	}
	reversed := []domain.Order{forward[2], forward[1], forward[0]}
	customers := &stubCustomers{}

	a, err := New(&stubOrders{orders: forward}, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)
	b, err := New(&stubOrders{orders: reversed}, customers).Summarize(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, a.TotalOrders, b.TotalOrders)
	assert.Equal(t, a.GrandTotal, b.GrandTotal)

	byName := func(rows []domain.CustomerSummary) map[string]domain.CustomerSummary {
		out := make(map[string]domain.CustomerSummary, len(rows))
		for _, r := range rows {
			out[r.CustomerName] = r
		}
		return out
	}
	assert.Equal(t, byName(a.Summary), byName(b.Summary))
}

func TestSummarizeEmptyMonth(t *testing.T) {
	orders := &stubOrders{}
	customers := &stubCustomers{}

	got, err := New(orders, customers).Summarize(context.Background(), 2024, 6)
	require.NoError(t, err)

	assert.Empty(t, got.Summary)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.GrandTotal)
}

func TestSummarizeRejectsBadPeriods(t *testing.T) {
	svc := New(&stubOrders{}, &stubCustomers{})
	ctx := context.Background()

	for _, tc := range []struct {
		year, month int
	}{
		{2024, 0},
		{2024, 13},
		{0, 3},
	} {
		_, err := svc.Summarize(ctx, tc.year, tc.month)
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr, "year=%d month=%d", tc.year, tc.month)
	}
}

func TestSummarizePropagatesSourceErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New(&stubOrders{err: domain.StoreError(errors.New("down"))}, &stubCustomers{}).Summarize(ctx, 2024, 3)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	orders := &stubOrders{orders: []domain.Order{
		order("c1", "Sato Bakery", "2024-03-04", item("Widget", 1, 100)),
	}}
	_, err = New(orders, &stubCustomers{err: domain.StoreError(errors.New("down"))}).Summarize(ctx, 2024, 3)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestMonthRangeEndsWhereNextMonthStarts(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 1; month <= 11; month++ {
			_, end := monthRange(year, month)
			nextStart, _ := monthRange(year, month+1)
			assert.Equal(t, nextStart, end, "%04d-%02d", year, month)
		}
	}
}

func TestMonthRangeDecemberRollsOver(t *testing.T) {
	start, end := monthRange(2024, 12)
	assert.Equal(t, "2024-12-01", start)
	assert.Equal(t, "2025-01-01", end)
}

func TestMonthRangeZeroPadsMonths(t *testing.T) {
	for month := 1; month <= 9; month++ {
		start, _ := monthRange(2024, month)
		assert.Equal(t, fmt.Sprintf("2024-0%d-01", month), start)
	}
}
