package postgres

import (
	"context"
	"fmt"

	"cartAffinity/domain"

	"gorm.io/gorm"
)

type AttributionRepository struct {
	DB *gorm.DB
}

func NewAttributionRepository(db *gorm.DB) *AttributionRepository {
	return &AttributionRepository{DB: db}
}

func (r *AttributionRepository) FindByOrder(ctx context.Context, shop, orderID string) ([]domain.AttributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.AttributionRecord
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("order_id = ?", orderID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query attribution_records: %w", err)
	}

	return records, nil
}

func (r *AttributionRepository) SaveAll(ctx context.Context, records []domain.AttributionRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("failed to save attribution records: %w", err)
	}

	return nil
}

// FindByShop returns the newest attribution rows for admin analytics.
func (r *AttributionRepository) FindByShop(ctx context.Context, shop string, limit int) ([]domain.AttributionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var records []domain.AttributionRecord
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query attribution_records: %w", err)
	}

	return records, nil
}
