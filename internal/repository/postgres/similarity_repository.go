package postgres

import (
	"context"
	"errors"
	"fmt"

	"cartAffinity/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SimilarityRepository struct {
	DB *gorm.DB
}

func NewSimilarityRepository(db *gorm.DB) *SimilarityRepository {
	return &SimilarityRepository{DB: db}
}

// ReplaceForShop swaps the shop's similarity rows for the given set inside a
// single transaction: delete everything, then bulk-insert in fixed-size
// batches. skip-duplicate semantics tolerate accidental duplicate keys within
// a batch. Stored state therefore always reflects exactly one completed
// computation.
func (r *SimilarityRepository) ReplaceForShop(ctx context.Context, shop string, records []domain.SimilarityRecord, batchSize int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if batchSize <= 0 {
		batchSize = 1000
	}

	var deleted int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("shop = ?", shop).Delete(&domain.SimilarityRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete existing records: %w", res.Error)
		}
		deleted = res.RowsAffected

		if len(records) == 0 {
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(records, batchSize).Error; err != nil {
			return fmt.Errorf("bulk insert records: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace similarity records: %w", err)
	}

	return deleted, nil
}

// FindByProduct returns the top rows for one product, best first.
func (r *SimilarityRepository) FindByProduct(ctx context.Context, shop, productID string, limit int) ([]domain.SimilarityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}

	var records []domain.SimilarityRecord
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Where("product_id_1 = ?", productID).
		Order("overall_score DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query similarity_records: %w", err)
	}

	return records, nil
}

// BumpSoftSignal applies the missed-opportunity increment to both directions
// of a pair, creating the rows if needed. Scores are capped so repeated soft
// signals cannot drift a pair's scores unboundedly.
func (r *SimilarityRepository) BumpSoftSignal(ctx context.Context, shop, anchorID, productID string, coIncrement, overallIncrement, scoreCap float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		directions := [][2]string{
			{anchorID, productID},
			{productID, anchorID},
		}

		for _, dir := range directions {
			var rec domain.SimilarityRecord
			err := tx.Where("shop = ? AND product_id_1 = ? AND product_id_2 = ?", shop, dir[0], dir[1]).
				First(&rec).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				rec = domain.SimilarityRecord{
					Shop:            shop,
					ProductID1:      dir[0],
					ProductID2:      dir[1],
					CoPurchaseScore: capScore(coIncrement, scoreCap),
					OverallScore:    capScore(overallIncrement, scoreCap),
					SampleSize:      1,
				}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
					return fmt.Errorf("create soft-signal row: %w", err)
				}
			case err != nil:
				return fmt.Errorf("load soft-signal row: %w", err)
			default:
				updates := map[string]any{
					"co_purchase_score": capScore(rec.CoPurchaseScore+coIncrement, scoreCap),
					"overall_score":     capScore(rec.OverallScore+overallIncrement, scoreCap),
					"sample_size":       rec.SampleSize + 1,
				}
				if err := tx.Model(&domain.SimilarityRecord{}).
					Where("id = ?", rec.ID).
					Updates(updates).Error; err != nil {
					return fmt.Errorf("update soft-signal row: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to bump soft signal: %w", err)
	}

	return nil
}

func capScore(v, cap float64) float64 {
	if cap > 0 && v > cap {
		return cap
	}
	return v
}
