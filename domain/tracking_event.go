package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	EventImpression           = "impression"
	EventRecommendationServed = "ml_recommendation_served"
	EventClick                = "click"
	EventPurchase             = "purchase"
)

// TrackingEvent is an impression, click or recommendation-served row.
type TrackingEvent struct {
	ID        string            `gorm:"column:id;primaryKey" json:"id"`
	Shop      string            `gorm:"column:shop;not null;index:idx_tracking_shop_time,priority:1" json:"shop"`
	EventType string            `gorm:"column:event_type;not null" json:"eventType"`
	ProductID string            `gorm:"column:product_id" json:"productId"`
	VariantID string            `gorm:"column:variant_id" json:"variantId"`
	SessionID string            `gorm:"column:session_id" json:"sessionId"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index:idx_tracking_shop_time,priority:2" json:"created_at"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}

// EventMetadata is the structured part of the free-form metadata payload.
// Only the fields relevant to attribution are decoded; anything else in the
// payload is ignored.
type EventMetadata struct {
	RecommendedIDs []string `json:"recommendationIds,omitempty"`
	ProductID      string   `json:"productId,omitempty"`
	VariantID      string   `json:"variantId,omitempty"`
	Anchors        []string `json:"anchors,omitempty"`
}

// DecodeMetadata parses the JSONB payload into EventMetadata. A payload that
// fails to decode yields (zero, false) so the event is simply excluded from
// attribution reasoning instead of failing the order.
func (e TrackingEvent) DecodeMetadata() (EventMetadata, bool) {
	if len(e.Metadata) == 0 {
		return EventMetadata{}, false
	}

	raw, err := json.Marshal(map[string]any(e.Metadata))
	if err != nil {
		return EventMetadata{}, false
	}

	var meta EventMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return EventMetadata{}, false
	}

	return meta, true
}
