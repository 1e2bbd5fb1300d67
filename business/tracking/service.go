package tracking

import (
	"context"
	"fmt"

	"cartAffinity/domain"
	"cartAffinity/pkg/logger"

	"github.com/google/uuid"
)

type TrackingEventRepository interface {
	SaveEvent(ctx context.Context, event domain.TrackingEvent) error
}

// CounterStore is an external key-value counter table, passed in explicitly
// so no handler carries shared mutable state.
type CounterStore interface {
	Increment(ctx context.Context, shop, name string) (int64, error)
	Get(ctx context.Context, shop, name string) (int64, error)
}

type TrackingService struct {
	eventRepo TrackingEventRepository
	counters  CounterStore
}

func NewTrackingService(eventRepo TrackingEventRepository, counters CounterStore) *TrackingService {
	return &TrackingService{
		eventRepo: eventRepo,
		counters:  counters,
	}
}

// RecordEvent persists one impression/click/recommendation-served event and
// bumps the shop's per-type counter. The counter bump is best-effort.
func (s *TrackingService) RecordEvent(ctx context.Context, event domain.TrackingEvent) (domain.TrackingEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackingEvent{}, fmt.Errorf("context error: %w", err)
	}

	switch event.EventType {
	case domain.EventImpression, domain.EventRecommendationServed, domain.EventClick, domain.EventPurchase:
	default:
		return domain.TrackingEvent{}, fmt.Errorf("unknown event type: %s", event.EventType)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		return domain.TrackingEvent{}, fmt.Errorf("save tracking event: %w", err)
	}

	if s.counters != nil {
		if _, err := s.counters.Increment(ctx, event.Shop, event.EventType); err != nil {
			logger.Warn("counter increment failed", "shop", event.Shop, "event_type", event.EventType, "error", err)
		}
	}

	return event, nil
}

// Counts returns the per-type event counters for a shop.
func (s *TrackingService) Counts(ctx context.Context, shop string) (map[string]int64, error) {
	if s.counters == nil {
		return map[string]int64{}, nil
	}

	out := make(map[string]int64)
	for _, eventType := range []string{
		domain.EventImpression,
		domain.EventRecommendationServed,
		domain.EventClick,
		domain.EventPurchase,
	} {
		n, err := s.counters.Get(ctx, shop, eventType)
		if err != nil {
			return nil, fmt.Errorf("read counter %s: %w", eventType, err)
		}
		out[eventType] = n
	}

	return out, nil
}
