package domain

// ProductRollup accumulates quantity and subtotal for one product name
// across every order of a customer group.
type ProductRollup struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// CustomerSummary is one row of a monthly summary: all orders of one
// customer in the month, with per-product rollups.
type CustomerSummary struct {
	CustomerName string          `json:"customerName"`
	CustomerRank string          `json:"customerRank"`
	OrderCount   int             `json:"orderCount"`
	TotalAmount  float64         `json:"totalAmount"`
	Items        []ProductRollup `json:"items"`
}

// MonthlySummary groups a month's orders by customer. Rows appear in the
// order each customer's first order of the month was placed.
type MonthlySummary struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	Summary     []CustomerSummary `json:"summary"`
	TotalOrders int               `json:"totalOrders"`
	GrandTotal  float64           `json:"grandTotal"`
}
