package postgres

import (
	"context"
	"errors"
	"fmt"

	"cartAffinity/domain"

	"gorm.io/gorm"
)

type ShopSettingsRepository struct {
	DB *gorm.DB
}

func NewShopSettingsRepository(db *gorm.DB) *ShopSettingsRepository {
	return &ShopSettingsRepository{DB: db}
}

// GetSettings returns (settings, false, nil) when no row exists; callers
// treat that as "defaults, attribution enabled".
func (r *ShopSettingsRepository) GetSettings(ctx context.Context, shop string) (domain.ShopSettings, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShopSettings{}, false, fmt.Errorf("context error: %w", err)
	}

	var settings domain.ShopSettings
	err := r.DB.WithContext(ctx).First(&settings, "shop = ?", shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ShopSettings{}, false, nil
	}
	if err != nil {
		return domain.ShopSettings{}, false, fmt.Errorf("failed to query shop_settings: %w", err)
	}

	return settings, true, nil
}
