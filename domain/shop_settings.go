package domain

import "time"

// ShopSettings holds per-shop overrides for the engine. A missing row means
// "all defaults, attribution enabled".
type ShopSettings struct {
	Shop                string    `gorm:"column:shop;primaryKey" json:"shop"`
	AttributionEnabled  bool      `gorm:"column:attribution_enabled;default:true" json:"attributionEnabled"`
	AttributionLookback int       `gorm:"column:attribution_lookback_days" json:"attributionLookbackDays"`
	ClickWindowMinutes  int       `gorm:"column:click_window_minutes" json:"clickWindowMinutes"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ShopSettings) TableName() string {
	return "shop_settings"
}
