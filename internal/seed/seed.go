package seed

import (
	"context"
	"fmt"

	"orderdesk/internal/domain"
	custrepo "orderdesk/internal/repository/customer"
	orderrepo "orderdesk/internal/repository/order"
)

type customerWriter interface {
	Create(ctx context.Context, in custrepo.CreateInput) (*domain.Customer, error)
}

type orderWriter interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
}

// Apply inserts sample customers and orders for manual testing. It goes
// through the repositories so derived fields come out the same way the
// API produces them. Running it twice duplicates the data.
func Apply(ctx context.Context, customers customerWriter, orders orderWriter) error {
	type orderSeed struct {
		items        []orderrepo.ItemInput
		status       string
		orderDate    string
		deliveryDate string
		notes        string
	}
	type customerSeed struct {
		customer custrepo.CreateInput
		orders   []orderSeed
	}

	seeds := []customerSeed{
		{
			customer: custrepo.CreateInput{
				Name:  "Sato Bakery",
				Rank:  domain.RankTop,
				Phone: "03-1234-5678",
				Email: "orders@sato-bakery.example",
				Notes: "Weekly standing order, delivers Mondays",
			},
			orders: []orderSeed{
				{
					items: []orderrepo.ItemInput{
						{ProductName: "Flour 25kg", Quantity: 4, UnitPrice: 3200},
						{ProductName: "Butter 1kg", Quantity: 10, UnitPrice: 980},
					},
					status:       domain.StatusDelivered,
					orderDate:    "2024-03-04",
					deliveryDate: "2024-03-05",
				},
				{
					items: []orderrepo.ItemInput{
						{ProductName: "Flour 25kg", Quantity: 4, UnitPrice: 3200},
					},
					status:    domain.StatusInProgress,
					orderDate: "2024-03-18",
				},
			},
		},
		{
			customer: custrepo.CreateInput{
				Name:    "Tanaka Cafe",
				Rank:    domain.RankRegular,
				Phone:   "03-9876-5432",
				Address: "2-4-1 Ginza, Chuo-ku",
			},
			orders: []orderSeed{
				{
					items: []orderrepo.ItemInput{
						{ProductName: "Coffee Beans 1kg", Quantity: 6, UnitPrice: 2400},
						{ProductName: "Milk 1L", Quantity: 24, UnitPrice: 210},
					},
					status:    domain.StatusReceived,
					orderDate: "2024-03-20",
					notes:     "Call before delivery",
				},
			},
		},
		{
			customer: custrepo.CreateInput{
				Name: "Yamada Deli",
			},
		},
	}

	for _, s := range seeds {
		created, err := customers.Create(ctx, s.customer)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", s.customer.Name, err)
		}
		for _, o := range s.orders {
			_, err := orders.Create(ctx, orderrepo.CreateInput{
				CustomerID:   created.ID,
				CustomerName: created.Name,
				Items:        o.items,
				Status:       o.status,
				Notes:        o.notes,
				OrderDate:    o.orderDate,
				DeliveryDate: o.deliveryDate,
			})
			if err != nil {
				return fmt.Errorf("seed order for %s: %w", created.Name, err)
			}
		}
	}

	return nil
}
