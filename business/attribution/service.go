package attribution

import (
	"context"
	"fmt"
	"time"

	"cartAffinity/domain"
	"cartAffinity/pkg/logger"
)

// ---- Repository interfaces ----

type TrackingEventRepository interface {
	// FindRecentByShop returns the newest events first, capped at limit.
	FindRecentByShop(ctx context.Context, shop string, since time.Time, limit int) ([]domain.TrackingEvent, error)
}

type AttributionRepository interface {
	FindByOrder(ctx context.Context, shop, orderID string) ([]domain.AttributionRecord, error)
	SaveAll(ctx context.Context, records []domain.AttributionRecord) error
}

// SimilaritySignalRepository receives the weak positive signal written when
// an order with recommendation impressions converts without any attributable
// product.
type SimilaritySignalRepository interface {
	BumpSoftSignal(ctx context.Context, shop, anchorID, productID string, coIncrement, overallIncrement, scoreCap float64) error
}

type ShopSettingsRepository interface {
	GetSettings(ctx context.Context, shop string) (domain.ShopSettings, bool, error)
}

// Result is what the order webhook reports back to the platform caller.
type Result struct {
	UsedApp           bool    `json:"usedApp"`
	AttributedRevenue float64 `json:"attributedRevenue"`
}

// ---- Usecase / Service ----

type AttributionService struct {
	trackingRepo TrackingEventRepository
	attribRepo   AttributionRepository
	signalRepo   SimilaritySignalRepository
	bundleRepo   BundleRepository
	settingsRepo ShopSettingsRepository
	cfg          Config
	now          func() time.Time
}

func NewAttributionService(
	trackingRepo TrackingEventRepository,
	attribRepo AttributionRepository,
	signalRepo SimilaritySignalRepository,
	bundleRepo BundleRepository,
	settingsRepo ShopSettingsRepository,
	cfg Config,
) *AttributionService {
	return &AttributionService{
		trackingRepo: trackingRepo,
		attribRepo:   attribRepo,
		signalRepo:   signalRepo,
		bundleRepo:   bundleRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

// ProcessOrder runs the attribution matcher for a newly-created order.
// Attribution is best-effort telemetry: any internal failure is swallowed and
// reported as {usedApp=false, attributedRevenue=0} so the webhook can always
// answer 200 quickly.
func (s *AttributionService) ProcessOrder(ctx context.Context, shop string, order domain.OrderCreated) Result {
	result, err := func() (result Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in attribution matcher: %v", r)
			}
		}()
		return s.processOrder(ctx, shop, order)
	}()
	if err != nil {
		OrdersProcessedTotal.WithLabelValues("error").Inc()
		logger.Error("attribution failed", "shop", shop, "order_id", order.OrderID, "error", err)
		return Result{}
	}

	if result.AttributedRevenue > 0 {
		OrdersProcessedTotal.WithLabelValues("attributed").Inc()
		AttributedRevenueTotal.Add(result.AttributedRevenue)
	} else {
		OrdersProcessedTotal.WithLabelValues("unattributed").Inc()
	}

	return result
}

// recEvidence collects the impression events that justify attributing one
// product.
type recEvidence struct {
	eventIDs []string
	earliest time.Time
}

func (s *AttributionService) processOrder(ctx context.Context, shop string, order domain.OrderCreated) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context error: %w", err)
	}

	cfg := s.shopConfig(ctx, shop)
	if cfg == nil {
		// attribution disabled for this shop
		return Result{}, nil
	}

	// Webhooks may redeliver: an existing record set means this order was
	// already processed, so return its stored total without recomputing.
	existing, err := s.attribRepo.FindByOrder(ctx, shop, order.OrderID)
	if err != nil {
		return Result{}, fmt.Errorf("idempotency check: %w", err)
	}
	if len(existing) > 0 {
		total := 0.0
		for _, rec := range existing {
			total += rec.AttributedRevenue
		}
		return Result{UsedApp: true, AttributedRevenue: total}, nil
	}

	now := s.now()
	since := now.AddDate(0, 0, -cfg.LookbackDays)

	events, err := s.trackingRepo.FindRecentByShop(ctx, shop, since, cfg.TrackingEventLimit)
	if err != nil {
		return Result{}, fmt.Errorf("load tracking events: %w", err)
	}

	recommended, clicked, anchorID := s.replayEvents(events, now, *cfg)

	var (
		records     []domain.AttributionRecord
		totalcredit float64
		usedApp     bool
	)

	for _, line := range order.LineItems {
		split := SplitLineSource(line)
		if split.Bundle > 0 {
			usedApp = true
		}

		// The core rule: recommended AND clicked AND purchased through the
		// recommendation path. Dropping any leg forfeits the credit.
		if split.Recommendation == 0 {
			continue
		}
		evidence, wasRecommended := recommended[line.ProductID]
		if !wasRecommended {
			continue
		}
		if !clickedProduct(clicked, line) {
			continue
		}

		// Only the recommendation-sourced units count, not the whole line.
		revenue := line.Price * float64(split.Recommendation)

		conversionMinutes := 0.0
		if !evidence.earliest.IsZero() {
			conversionMinutes = now.Sub(evidence.earliest).Minutes()
		}

		records = append(records, domain.AttributionRecord{
			Shop:                   shop,
			ProductID:              line.ProductID,
			OrderID:                order.OrderID,
			OrderNumber:            order.OrderNumber,
			OrderValue:             order.TotalPrice,
			CustomerID:             order.CustomerID,
			RecommendationEventIDs: evidence.eventIDs,
			AttributedRevenue:      revenue,
			ConversionTimeMinutes:  conversionMinutes,
		})
		totalcredit += revenue
	}

	if len(records) > 0 {
		if err := s.attribRepo.SaveAll(ctx, records); err != nil {
			return Result{}, fmt.Errorf("save attribution records: %w", err)
		}
		usedApp = true
	} else {
		s.recordMiss(ctx, shop, order, anchorID)
	}

	s.processBundleLines(ctx, shop, order)

	return Result{UsedApp: usedApp, AttributedRevenue: totalcredit}, nil
}

// shopConfig folds per-shop settings over the service defaults. A missing
// settings row means defaults with attribution enabled; nil means disabled.
func (s *AttributionService) shopConfig(ctx context.Context, shop string) *Config {
	cfg := s.cfg

	if s.settingsRepo == nil {
		return &cfg
	}

	settings, ok, err := s.settingsRepo.GetSettings(ctx, shop)
	if err != nil || !ok {
		return &cfg
	}

	if !settings.AttributionEnabled {
		return nil
	}
	if settings.AttributionLookback > 0 {
		cfg.LookbackDays = settings.AttributionLookback
	}
	if settings.ClickWindowMinutes > 0 {
		cfg.ClickWindowMinutes = settings.ClickWindowMinutes
	}

	return &cfg
}

// replayEvents walks the recent tracking events and builds the recommended
// set (with supporting event ids), the recent-click set, and the first
// recommended anchor. Events whose metadata fails to decode are skipped.
func (s *AttributionService) replayEvents(
	events []domain.TrackingEvent,
	now time.Time,
	cfg Config,
) (map[string]*recEvidence, map[string]struct{}, string) {

	recommended := make(map[string]*recEvidence)
	clicked := make(map[string]struct{})
	anchorID := ""

	clickCutoff := now.Add(-time.Duration(cfg.ClickWindowMinutes) * time.Minute)

	for _, ev := range events {
		switch ev.EventType {
		case domain.EventClick:
			if ev.CreatedAt.Before(clickCutoff) {
				continue
			}
			if ev.ProductID != "" {
				clicked[ev.ProductID] = struct{}{}
			}
			if ev.VariantID != "" {
				clicked[ev.VariantID] = struct{}{}
			}
			if meta, ok := ev.DecodeMetadata(); ok {
				if meta.ProductID != "" {
					clicked[meta.ProductID] = struct{}{}
				}
				if meta.VariantID != "" {
					clicked[meta.VariantID] = struct{}{}
				}
			}

		case domain.EventImpression, domain.EventRecommendationServed:
			meta, ok := ev.DecodeMetadata()
			if !ok {
				continue
			}

			if anchorID == "" && len(meta.Anchors) > 0 {
				anchorID = meta.Anchors[0]
			}

			for _, pid := range meta.RecommendedIDs {
				if anchorID == "" {
					anchorID = pid
				}

				evidence, exists := recommended[pid]
				if !exists {
					evidence = &recEvidence{earliest: ev.CreatedAt}
					recommended[pid] = evidence
				}
				evidence.eventIDs = append(evidence.eventIDs, ev.ID)
				if ev.CreatedAt.Before(evidence.earliest) {
					evidence.earliest = ev.CreatedAt
				}
			}
		}
	}

	return recommended, clicked, anchorID
}

// clickedProduct checks the line's product or any of its known variant ids
// against the recent-click set.
func clickedProduct(clicked map[string]struct{}, line domain.OrderLineItem) bool {
	if _, ok := clicked[line.ProductID]; ok {
		return true
	}
	if line.VariantID != "" {
		if _, ok := clicked[line.VariantID]; ok {
			return true
		}
	}
	return false
}

// recordMiss writes the weak positive signal between the anchor and each
// purchased product when a campaign showed impressions but nothing was
// attributable. Best-effort: a write failure is logged, never propagated.
func (s *AttributionService) recordMiss(ctx context.Context, shop string, order domain.OrderCreated, anchorID string) {
	if s.signalRepo == nil || anchorID == "" {
		return
	}

	seen := make(map[string]struct{})
	for _, line := range order.LineItems {
		if line.ProductID == "" || line.ProductID == anchorID {
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}

		err := s.signalRepo.BumpSoftSignal(ctx, shop, anchorID, line.ProductID,
			s.cfg.SoftCoIncrement, s.cfg.SoftOverallIncrement, s.cfg.SoftScoreCap)
		if err != nil {
			logger.Warn("soft-signal upsert failed",
				"shop", shop, "anchor", anchorID, "product", line.ProductID, "error", err)
		}
	}
}

// processBundleLines groups bundle-tagged line items, matches them back to
// stored bundle definitions and bumps their purchase counters. A per-order
// BundlePurchase row guards against webhook redelivery. All of it is
// best-effort analytics.
func (s *AttributionService) processBundleLines(ctx context.Context, shop string, order domain.OrderCreated) {
	if s.bundleRepo == nil {
		return
	}

	type bundleGroup struct {
		revenue float64
		line    domain.OrderLineItem
	}

	groups := make(map[string]*bundleGroup)
	for _, line := range order.LineItems {
		tag, ok := line.Properties[PropBundleID]
		if !ok || tag == "" {
			continue
		}

		qty := SplitLineSource(line).Bundle
		if qty == 0 {
			qty = line.Quantity
		}

		grp, exists := groups[tag]
		if !exists {
			grp = &bundleGroup{line: line}
			groups[tag] = grp
		}
		grp.revenue += line.Price * float64(qty)
	}

	for tag, grp := range groups {
		bundle, strategy, ok, err := resolveBundle(ctx, s.bundleRepo, shop, tag, grp.line)
		if err != nil {
			logger.Warn("bundle resolution failed", "shop", shop, "tag", tag, "error", err)
			continue
		}
		if !ok {
			logger.Debug("bundle tag unmatched", "shop", shop, "tag", tag)
			continue
		}

		counted, err := s.bundleRepo.HasPurchase(ctx, shop, order.OrderID, bundle.ID)
		if err != nil {
			logger.Warn("bundle purchase lookup failed", "shop", shop, "bundle_id", bundle.ID, "error", err)
			continue
		}
		if counted {
			continue
		}

		if err := s.bundleRepo.SavePurchase(ctx, domain.BundlePurchase{
			Shop:     shop,
			OrderID:  order.OrderID,
			BundleID: bundle.ID,
			Revenue:  grp.revenue,
		}); err != nil {
			logger.Warn("bundle purchase log failed", "shop", shop, "bundle_id", bundle.ID, "error", err)
			continue
		}

		if err := s.bundleRepo.IncrementPurchase(ctx, shop, bundle.ID, grp.revenue); err != nil {
			logger.Warn("bundle counter update failed", "shop", shop, "bundle_id", bundle.ID, "error", err)
			continue
		}

		logger.Debug("bundle purchase counted",
			"shop", shop, "bundle_id", bundle.ID, "strategy", strategy, "revenue", grp.revenue)
	}
}
