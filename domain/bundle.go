package domain

import "time"

// Bundle is a stored bundle definition. Older rows carry the legacy
// discount_pct / traffic_percentage columns; Normalize maps those onto the
// canonical fields so nothing downstream ever branches on which alias was set.
type Bundle struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Shop          string    `gorm:"column:shop;not null;index" json:"shop"`
	Handle        string    `gorm:"column:handle;index" json:"handle"`
	Name          string    `gorm:"column:name" json:"name"`
	Value         float64   `gorm:"column:value" json:"value"`
	DiscountPct   float64   `gorm:"column:discount_pct" json:"discountPct,omitempty"`
	TrafficPct    float64   `gorm:"column:traffic_pct" json:"trafficPct"`
	TrafficLegacy float64   `gorm:"column:traffic_percentage" json:"trafficPercentage,omitempty"`
	PurchaseCount int       `gorm:"column:purchase_count" json:"purchaseCount"`
	Revenue       float64   `gorm:"column:revenue" json:"revenue"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Bundle) TableName() string {
	return "bundles"
}

// Normalize folds legacy aliases into the canonical fields. Called at the
// storage boundary, immediately after every read.
func (b *Bundle) Normalize() {
	if b.Value == 0 && b.DiscountPct != 0 {
		b.Value = b.DiscountPct
	}
	if b.TrafficPct == 0 && b.TrafficLegacy != 0 {
		b.TrafficPct = b.TrafficLegacy
	}
}

// BundlePurchase is the per-order tracking row that prevents double counting
// a bundle when the order webhook is redelivered.
type BundlePurchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Shop      string    `gorm:"column:shop;not null;uniqueIndex:uniq_bundle_purchase,priority:1" json:"shop"`
	OrderID   string    `gorm:"column:order_id;not null;uniqueIndex:uniq_bundle_purchase,priority:2" json:"orderId"`
	BundleID  uint      `gorm:"column:bundle_id;not null;uniqueIndex:uniq_bundle_purchase,priority:3" json:"bundleId"`
	Revenue   float64   `gorm:"column:revenue" json:"revenue"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BundlePurchase) TableName() string {
	return "bundle_purchases"
}
