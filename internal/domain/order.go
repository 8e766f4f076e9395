package domain

// Order statuses. Any status may move to any other; no transition order
// is enforced.
const (
	StatusReceived   = "received"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

// OrderItem is a single line of an order. Subtotal is derived by the
// repository (quantity x unitPrice) and never taken from the caller.
type OrderItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// Order represents an order document. CustomerName is a snapshot of the
// customer's name at order time and is intentionally not kept in sync
// with later renames. Dates are zero-padded "YYYY-MM-DD" strings so that
// lexicographic comparison matches calendar order.
type Order struct {
	ID           string      `json:"id,omitempty"`
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"totalAmount"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes"`
	OrderDate    string      `json:"orderDate"`
	DeliveryDate string      `json:"deliveryDate"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}
