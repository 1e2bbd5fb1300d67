package postgres

import (
	"context"
	"fmt"
	"time"

	"cartAffinity/domain"

	"gorm.io/gorm"
)

type PurchaseEventRepository struct {
	DB *gorm.DB
}

func NewPurchaseEventRepository(db *gorm.DB) *PurchaseEventRepository {
	return &PurchaseEventRepository{DB: db}
}

func (r *PurchaseEventRepository) SaveEvent(ctx context.Context, event domain.PurchaseEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save purchase event: %w", err)
	}

	return nil
}

// FindRecentByShop returns the shop's purchase events inside the trailing
// window, oldest first.
func (r *PurchaseEventRepository) FindRecentByShop(ctx context.Context, shop string, since time.Time) ([]domain.PurchaseEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.PurchaseEvent
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase_events: %w", err)
	}

	return events, nil
}

// ListShops returns every shop that has purchase history.
func (r *PurchaseEventRepository) ListShops(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var shops []string
	err := r.DB.WithContext(ctx).
		Model(&domain.PurchaseEvent{}).
		Distinct("shop").
		Order("shop").
		Pluck("shop", &shops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}

	return shops, nil
}
