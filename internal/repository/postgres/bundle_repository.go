package postgres

import (
	"context"
	"errors"
	"fmt"

	"cartAffinity/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BundleRepository struct {
	DB *gorm.DB
}

func NewBundleRepository(db *gorm.DB) *BundleRepository {
	return &BundleRepository{DB: db}
}

// FindByID loads a bundle by primary key. Legacy alias columns are folded
// into the canonical fields before the bundle leaves the storage layer.
func (r *BundleRepository) FindByID(ctx context.Context, shop string, id uint) (domain.Bundle, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, false, fmt.Errorf("context error: %w", err)
	}

	var bundle domain.Bundle
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		First(&bundle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Bundle{}, false, nil
	}
	if err != nil {
		return domain.Bundle{}, false, fmt.Errorf("failed to find bundle: %w", err)
	}

	bundle.Normalize()
	return bundle, true, nil
}

func (r *BundleRepository) FindByHandle(ctx context.Context, shop, handle string) (domain.Bundle, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, false, fmt.Errorf("context error: %w", err)
	}

	var bundle domain.Bundle
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("handle = ?", handle).
		First(&bundle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Bundle{}, false, nil
	}
	if err != nil {
		return domain.Bundle{}, false, fmt.Errorf("failed to find bundle by handle: %w", err)
	}

	bundle.Normalize()
	return bundle, true, nil
}

func (r *BundleRepository) IncrementPurchase(ctx context.Context, shop string, bundleID uint, revenue float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Model(&domain.Bundle{}).
		Where("id = ?", bundleID).
		Where("shop = ?", shop).
		Updates(map[string]any{
			"purchase_count": gorm.Expr("purchase_count + ?", 1),
			"revenue":        gorm.Expr("revenue + ?", revenue),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to increment bundle counters: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("bundle not found")
	}

	return nil
}

func (r *BundleRepository) HasPurchase(ctx context.Context, shop, orderID string, bundleID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.BundlePurchase{}).
		Where("shop = ?", shop).
		Where("order_id = ?", orderID).
		Where("bundle_id = ?", bundleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query bundle_purchases: %w", err)
	}

	return count > 0, nil
}

func (r *BundleRepository) SavePurchase(ctx context.Context, purchase domain.BundlePurchase) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&purchase).Error
	if err != nil {
		return fmt.Errorf("failed to save bundle purchase: %w", err)
	}

	return nil
}
