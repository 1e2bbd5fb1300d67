package affinity

import (
	"testing"

	"cartAffinity/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePairs_ExampleScenario(t *testing.T) {
	events := []domain.PurchaseEvent{
		purchase("O1", "P1", 30),
		purchase("O1", "P2", 30),
		purchase("O2", "P1", 50),
		purchase("O2", "P2", 50),
		purchase("O3", "P1", 20),
		purchase("O3", "P3", 20),
	}

	records := ScorePairs("s1.example.com", BuildMatrix(events), DefaultConfig())

	// only (P1,P2) passes the 2-minimum gate, emitted in both directions
	require.Len(t, records, 2)

	byDirection := map[[2]string]domain.SimilarityRecord{}
	for _, rec := range records {
		byDirection[[2]string{rec.ProductID1, rec.ProductID2}] = rec
	}

	forward, ok := byDirection[[2]string{"P1", "P2"}]
	require.True(t, ok, "missing direction P1->P2")
	backward, ok := byDirection[[2]string{"P2", "P1"}]
	require.True(t, ok, "missing direction P2->P1")

	// jaccard = 2 / (3 + 2 - 2), frequency = 2 / max(3, 2)
	assert.InDelta(t, 2.0/3.0, forward.CoPurchaseScore, 1e-9)
	assert.InDelta(t, 0.6*(2.0/3.0)+0.4*(2.0/3.0), forward.OverallScore, 1e-9)
	assert.Equal(t, 2, forward.SampleSize)

	assert.Equal(t, forward.OverallScore, backward.OverallScore)
	assert.Equal(t, forward.CoPurchaseScore, backward.CoPurchaseScore)
	assert.Equal(t, forward.SampleSize, backward.SampleSize)
}

func TestScorePairs_InclusionGate(t *testing.T) {
	// single shared order: co-purchase count 1 must never be persisted
	events := []domain.PurchaseEvent{
		purchase("O1", "P1", 10),
		purchase("O1", "P2", 10),
	}

	records := ScorePairs("s1.example.com", BuildMatrix(events), DefaultConfig())
	assert.Empty(t, records)
}

func TestScorePairs_GateProperties(t *testing.T) {
	events := []domain.PurchaseEvent{}
	// ten orders of {P1,P2} and one of {P3,P4}
	for _, o := range []string{"O1", "O2", "O3", "O4", "O5", "O6", "O7", "O8", "O9", "O10"} {
		events = append(events, purchase(o, "P1", 10), purchase(o, "P2", 10))
	}
	events = append(events, purchase("O11", "P3", 10), purchase("O11", "P4", 10))

	records := ScorePairs("s1.example.com", BuildMatrix(events), DefaultConfig())

	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.SampleSize, 2)
		assert.Greater(t, rec.OverallScore, 0.1)
		assert.Zero(t, rec.CategoryScore)
		assert.Zero(t, rec.PriceScore)
		assert.Zero(t, rec.CoViewScore)
	}
}

func TestScorePairs_EmptyMatrix(t *testing.T) {
	assert.Nil(t, ScorePairs("s1.example.com", BuildMatrix(nil), DefaultConfig()))
	assert.Nil(t, ScorePairs("s1.example.com", nil, DefaultConfig()))
}
