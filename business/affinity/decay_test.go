package affinity

import (
	"testing"
	"time"

	"cartAffinity/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agedPurchase(orderID, productID string, age time.Duration, now time.Time) domain.PurchaseEvent {
	return domain.PurchaseEvent{
		Shop:      "s1.example.com",
		OrderID:   orderID,
		ProductID: productID,
		CreatedAt: now.Add(-age),
	}
}

func TestDecayWeight_HalfLife(t *testing.T) {
	// an order exactly one half-life old carries half the weight
	assert.InDelta(t, 0.5, decayWeight(90*24*time.Hour, 90), 1e-9)
	assert.InDelta(t, 1.0, decayWeight(0, 90), 1e-9)
	assert.InDelta(t, 0.25, decayWeight(180*24*time.Hour, 90), 1e-9)

	// disabled decay
	assert.Equal(t, 1.0, decayWeight(400*24*time.Hour, 0))
}

func TestBuildAssociations_ConfidenceGate(t *testing.T) {
	now := time.Now()

	// P1 and P2 bought together in 4 recent orders: weighted co ≈ 4,
	// confidence(P1→P2) ≈ 1.0.
	var events []domain.PurchaseEvent
	for _, o := range []string{"O1", "O2", "O3", "O4"} {
		events = append(events,
			agedPurchase(o, "P1", time.Hour, now),
			agedPurchase(o, "P2", time.Hour, now),
		)
	}

	candidates := BuildAssociations(events, now, DefaultConfig())
	require.NotEmpty(t, candidates)

	var found bool
	for _, c := range candidates {
		if c.ProductID == "P1" && c.RelatedID == "P2" {
			found = true
			assert.InDelta(t, 1.0, c.Confidence, 1e-6)
			assert.GreaterOrEqual(t, c.WeightedCo, 3.0)
		}
	}
	assert.True(t, found, "expected association P1->P2")
}

func TestBuildAssociations_OldOrdersFallBelowGate(t *testing.T) {
	now := time.Now()

	// same 4 orders, but two half-lives old: weighted co ≈ 1, below both
	// co-occurrence floors
	var events []domain.PurchaseEvent
	for _, o := range []string{"O1", "O2", "O3", "O4"} {
		events = append(events,
			agedPurchase(o, "P1", 180*24*time.Hour, now),
			agedPurchase(o, "P2", 180*24*time.Hour, now),
		)
	}

	candidates := BuildAssociations(events, now, DefaultConfig())
	assert.Empty(t, candidates)
}

func TestBuildAssociations_NoQualifyingOrders(t *testing.T) {
	now := time.Now()

	events := []domain.PurchaseEvent{
		agedPurchase("O1", "P1", time.Hour, now),
		agedPurchase("O2", "P2", time.Hour, now),
	}

	assert.Empty(t, BuildAssociations(events, now, DefaultConfig()))
	assert.Empty(t, BuildAssociations(nil, now, DefaultConfig()))
}
