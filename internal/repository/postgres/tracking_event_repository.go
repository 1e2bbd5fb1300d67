package postgres

import (
	"context"
	"fmt"
	"time"

	"cartAffinity/domain"

	"gorm.io/gorm"
)

type TrackingEventRepository struct {
	DB *gorm.DB
}

func NewTrackingEventRepository(db *gorm.DB) *TrackingEventRepository {
	return &TrackingEventRepository{DB: db}
}

func (r *TrackingEventRepository) SaveEvent(ctx context.Context, event domain.TrackingEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save tracking event: %w", err)
	}

	return nil
}

// FindRecentByShop returns up to limit of the shop's newest events inside the
// lookback window, newest first.
func (r *TrackingEventRepository) FindRecentByShop(ctx context.Context, shop string, since time.Time, limit int) ([]domain.TrackingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 500
	}

	var events []domain.TrackingEvent
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking_events: %w", err)
	}

	return events, nil
}
