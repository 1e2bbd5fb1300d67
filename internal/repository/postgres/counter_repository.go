package postgres

import (
	"context"
	"errors"
	"fmt"

	"cartAffinity/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterRepository is the table-backed counter store used when no Redis is
// configured. Increments are single-statement upserts so concurrent ingests
// never lose a bump.
type CounterRepository struct {
	DB *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{DB: db}
}

func (r *CounterRepository) Increment(ctx context.Context, shop, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	counter := domain.Counter{Shop: shop, Name: name, Count: 1}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop"}, {Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("counters.count + 1")}),
		}).
		Create(&counter).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return r.Get(ctx, shop, name)
}

func (r *CounterRepository) Get(ctx context.Context, shop, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var counter domain.Counter
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("name = ?", name).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	return counter.Count, nil
}
