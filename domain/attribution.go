package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AttributionRecord credits a purchased product to the recommendation events
// that drove it. At most one record set exists per order id.
type AttributionRecord struct {
	ID                     uint                        `gorm:"primaryKey" json:"id"`
	Shop                   string                      `gorm:"column:shop;not null;index:idx_attribution_order,priority:1" json:"shop"`
	ProductID              string                      `gorm:"column:product_id;not null" json:"productId"`
	OrderID                string                      `gorm:"column:order_id;not null;index:idx_attribution_order,priority:2" json:"orderId"`
	OrderNumber            string                      `gorm:"column:order_number" json:"orderNumber"`
	OrderValue             float64                     `gorm:"column:order_value" json:"orderValue"`
	CustomerID             string                      `gorm:"column:customer_id" json:"customerId"`
	RecommendationEventIDs datatypes.JSONSlice[string] `gorm:"column:recommendation_event_ids" json:"recommendationEventIds"`
	AttributedRevenue      float64                     `gorm:"column:attributed_revenue" json:"attributedRevenue"`
	ConversionTimeMinutes  float64                     `gorm:"column:conversion_time_minutes" json:"conversionTimeMinutes"`
	CreatedAt              time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AttributionRecord) TableName() string {
	return "attribution_records"
}
