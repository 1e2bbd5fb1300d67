package domain

import "time"

// Counter is a per-shop named counter row, bumped atomically on every
// tracking ingest. Used when no Redis counter store is configured.
type Counter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Shop      string    `gorm:"column:shop;not null;uniqueIndex:uniq_counter,priority:1" json:"shop"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:uniq_counter,priority:2" json:"name"`
	Count     int64     `gorm:"column:count;not null" json:"count"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Counter) TableName() string {
	return "counters"
}
