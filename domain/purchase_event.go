package domain

import "time"

// PurchaseEvent is one (order, product) row recorded when an order completes.
// Multiple rows share an order_id when the order contained multiple products.
type PurchaseEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Shop       string    `gorm:"column:shop;not null;index:idx_purchase_shop_time,priority:1" json:"shop"`
	OrderID    string    `gorm:"column:order_id;not null" json:"orderId"`
	ProductID  string    `gorm:"column:product_id;not null" json:"productId"`
	SessionID  string    `gorm:"column:session_id" json:"sessionId"`
	OrderTotal float64   `gorm:"column:order_total" json:"orderTotal"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index:idx_purchase_shop_time,priority:2" json:"created_at"`
}

func (PurchaseEvent) TableName() string {
	return "purchase_events"
}
