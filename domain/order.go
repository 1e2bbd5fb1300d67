package domain

// OrderCreated is the order webhook payload handed to the attribution
// matcher. It is never persisted as-is.
type OrderCreated struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  string          `json:"customer_id"`
	TotalPrice  float64         `json:"total_price"`
	LineItems   []OrderLineItem `json:"line_items"`
}

type OrderLineItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	// Price is the unit price.
	Price      float64           `json:"price"`
	Properties map[string]string `json:"properties"`
}
