package affinity

import (
	"context"
	"fmt"
	"time"

	"cartAffinity/domain"
	"cartAffinity/pkg/logger"
)

// ---- Repository interfaces ----

type PurchaseEventRepository interface {
	FindRecentByShop(ctx context.Context, shop string, since time.Time) ([]domain.PurchaseEvent, error)
	ListShops(ctx context.Context) ([]string, error)
}

type SimilarityRepository interface {
	// ReplaceForShop atomically swaps the shop's rows for the given set and
	// reports how many old rows were removed.
	ReplaceForShop(ctx context.Context, shop string, records []domain.SimilarityRecord, batchSize int) (int64, error)
	FindByProduct(ctx context.Context, shop, productID string, limit int) ([]domain.SimilarityRecord, error)
}

// JobSummary is returned synchronously to the cron/scheduler caller that
// triggered a full recompute.
type JobSummary struct {
	ShopsProcessed int       `json:"shops_processed"`
	ShopsFailed    int       `json:"shops_failed"`
	RecordsDeleted int64     `json:"records_deleted"`
	RecordsCreated int       `json:"records_created"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// ---- Usecase / Service ----

type AffinityService struct {
	purchaseRepo PurchaseEventRepository
	simRepo      SimilarityRepository
	cfg          Config
}

func NewAffinityService(
	purchaseRepo PurchaseEventRepository,
	simRepo SimilarityRepository,
	cfg Config,
) *AffinityService {
	return &AffinityService{
		purchaseRepo: purchaseRepo,
		simRepo:      simRepo,
		cfg:          cfg,
	}
}

// RecomputeShop rebuilds one shop's similarity rows from its trailing
// purchase window. A shop with no purchase events is a normal empty outcome:
// its stale rows are cleared and no error is returned.
func (s *AffinityService) RecomputeShop(ctx context.Context, shop string) (created int, deleted int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("context error: %w", err)
	}

	since := time.Now().AddDate(0, 0, -s.cfg.WindowDays)

	events, err := s.purchaseRepo.FindRecentByShop(ctx, shop, since)
	if err != nil {
		return 0, 0, fmt.Errorf("load purchase events: %w", err)
	}

	matrix := BuildMatrix(events)
	records := ScorePairs(shop, matrix, s.cfg)

	deleted, err = s.simRepo.ReplaceForShop(ctx, shop, records, s.cfg.InsertBatchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("replace similarity records: %w", err)
	}

	logger.Debug("similarity_recompute",
		"shop", shop,
		"events", len(events),
		"pairs", len(matrix.Pairs),
		"records", len(records),
		"deleted", deleted,
	)

	return len(records), deleted, nil
}

// RecomputeAll runs RecomputeShop over every shop with purchase history.
// Per-shop failures are logged and skipped so one broken shop never starves
// the rest of the batch.
func (s *AffinityService) RecomputeAll(ctx context.Context) (JobSummary, error) {
	summary := JobSummary{StartedAt: time.Now()}

	shops, err := s.purchaseRepo.ListShops(ctx)
	if err != nil {
		return summary, fmt.Errorf("list shops: %w", err)
	}

	for _, shop := range shops {
		created, deleted, err := s.RecomputeShop(ctx, shop)
		if err != nil {
			summary.ShopsFailed++
			SimilarityRunsTotal.WithLabelValues("error").Inc()
			logger.Error("similarity recompute failed", "shop", shop, "error", err)
			continue
		}

		summary.ShopsProcessed++
		summary.RecordsCreated += created
		summary.RecordsDeleted += deleted

		SimilarityRunsTotal.WithLabelValues("ok").Inc()
		SimilarityRecordsCreated.Add(float64(created))
	}

	summary.FinishedAt = time.Now()

	logger.Info("similarity job finished",
		"shops_processed", summary.ShopsProcessed,
		"shops_failed", summary.ShopsFailed,
		"records_created", summary.RecordsCreated,
		"records_deleted", summary.RecordsDeleted,
	)

	return summary, nil
}

// Similar returns the stored top similarity rows for a product.
func (s *AffinityService) Similar(ctx context.Context, shop, productID string, limit int) ([]domain.SimilarityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}

	return s.simRepo.FindByProduct(ctx, shop, productID, limit)
}

// Associations computes the time-decayed bundle candidates for one product
// straight from recent purchase history.
func (s *AffinityService) Associations(ctx context.Context, shop, productID string) ([]AssociationCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	since := time.Now().AddDate(0, 0, -s.cfg.WindowDays)

	events, err := s.purchaseRepo.FindRecentByShop(ctx, shop, since)
	if err != nil {
		return nil, fmt.Errorf("load purchase events: %w", err)
	}

	candidates := BuildAssociations(events, time.Now(), s.cfg)

	out := make([]AssociationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}

	return out, nil
}
