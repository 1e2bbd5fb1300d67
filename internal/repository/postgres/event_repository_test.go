package postgres

import (
	"context"
	"testing"
	"time"

	"cartAffinity/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseEventRepository_WindowAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPurchaseEventRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []domain.PurchaseEvent{
		{Shop: "s1", OrderID: "O1", ProductID: "P1", CreatedAt: now.Add(-100 * 24 * time.Hour)},
		{Shop: "s1", OrderID: "O2", ProductID: "P1", CreatedAt: now.Add(-48 * time.Hour)},
		{Shop: "s1", OrderID: "O3", ProductID: "P2", CreatedAt: now.Add(-24 * time.Hour)},
		{Shop: "s2", OrderID: "O4", ProductID: "P1", CreatedAt: now.Add(-24 * time.Hour)},
	}
	require.NoError(t, db.Create(&seed).Error)

	events, err := repo.FindRecentByShop(ctx, "s1", now.AddDate(0, 0, -90))
	require.NoError(t, err)
	require.Len(t, events, 2, "events outside the window and other shops are excluded")
	assert.Equal(t, "O2", events[0].OrderID, "oldest first")
	assert.Equal(t, "O3", events[1].OrderID)
}

func TestPurchaseEventRepository_ListShops(t *testing.T) {
	db := newTestDB(t)
	repo := NewPurchaseEventRepository(db)
	ctx := context.Background()

	seed := []domain.PurchaseEvent{
		{Shop: "zeta.example.com", OrderID: "O1", ProductID: "P1"},
		{Shop: "alpha.example.com", OrderID: "O2", ProductID: "P1"},
		{Shop: "alpha.example.com", OrderID: "O3", ProductID: "P2"},
	}
	require.NoError(t, db.Create(&seed).Error)

	shops, err := repo.ListShops(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.example.com", "zeta.example.com"}, shops)
}

func TestTrackingEventRepository_NewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingEventRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []domain.TrackingEvent{
		{ID: "E1", Shop: "s1", EventType: domain.EventImpression, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "E2", Shop: "s1", EventType: domain.EventClick, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "E3", Shop: "s1", EventType: domain.EventClick, CreatedAt: now.Add(-1 * time.Hour)},
	}
	require.NoError(t, db.Create(&seed).Error)

	events, err := repo.FindRecentByShop(ctx, "s1", now.AddDate(0, 0, -7), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "E3", events[0].ID)
	assert.Equal(t, "E2", events[1].ID)
}

func TestAttributionRepository_SaveAndFindByOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttributionRepository(db)
	ctx := context.Background()

	records := []domain.AttributionRecord{
		{
			Shop:                   "s1",
			ProductID:              "P2",
			OrderID:                "O100",
			OrderNumber:            "#1001",
			OrderValue:             75,
			RecommendationEventIDs: []string{"E1", "E5"},
			AttributedRevenue:      25,
			ConversionTimeMinutes:  30,
		},
	}
	require.NoError(t, repo.SaveAll(ctx, records))

	found, err := repo.FindByOrder(ctx, "s1", "O100")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "P2", found[0].ProductID)
	assert.Equal(t, 25.0, found[0].AttributedRevenue)
	assert.Equal(t, []string{"E1", "E5"}, []string(found[0].RecommendationEventIDs))

	found, err = repo.FindByOrder(ctx, "s1", "O999")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestShopSettingsRepository_MissingRowMeansDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewShopSettingsRepository(db)
	ctx := context.Background()

	_, ok, err := repo.GetSettings(ctx, "unknown.example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	seed := domain.ShopSettings{
		Shop:                "s1",
		AttributionEnabled:  true,
		AttributionLookback: 14,
		ClickWindowMinutes:  30,
	}
	require.NoError(t, db.Create(&seed).Error)

	settings, ok, err := repo.GetSettings(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 14, settings.AttributionLookback)
	assert.Equal(t, 30, settings.ClickWindowMinutes)
}
