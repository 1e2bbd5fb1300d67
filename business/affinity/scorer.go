package affinity

import (
	"cartAffinity/domain"
)

// ScorePairs converts the raw matrix into persisted-shape similarity rows.
// Each surviving pair is emitted in both directions with identical scores so
// a lookup from either product hits an indexed row.
func ScorePairs(shop string, m *Matrix, cfg Config) []domain.SimilarityRecord {
	if m == nil || len(m.Pairs) == 0 {
		return nil
	}

	records := make([]domain.SimilarityRecord, 0, len(m.Pairs)*2)

	for key, pair := range m.Pairs {
		metaA := m.Products[key.A]
		metaB := m.Products[key.B]
		if metaA == nil || metaB == nil {
			continue
		}

		intersection := len(pair.SharedOrders)
		union := metaA.OrderCount() + metaB.OrderCount() - intersection

		jaccard := 0.0
		if union > 0 {
			jaccard = float64(intersection) / float64(union)
		}

		frequency := 0.0
		if denom := max(metaA.OrderCount(), metaB.OrderCount()); denom > 0 {
			frequency = float64(pair.CoPurchaseCount) / float64(denom)
		}

		overall := cfg.JaccardWeight*jaccard + cfg.FrequencyWeight*frequency

		// single-occurrence coincidences never make it to storage
		if overall <= cfg.MinOverallScore || pair.CoPurchaseCount < cfg.MinCoPurchases {
			continue
		}

		records = append(records,
			domain.SimilarityRecord{
				Shop:            shop,
				ProductID1:      key.A,
				ProductID2:      key.B,
				CoPurchaseScore: jaccard,
				OverallScore:    overall,
				SampleSize:      pair.CoPurchaseCount,
			},
			domain.SimilarityRecord{
				Shop:            shop,
				ProductID1:      key.B,
				ProductID2:      key.A,
				CoPurchaseScore: jaccard,
				OverallScore:    overall,
				SampleSize:      pair.CoPurchaseCount,
			},
		)
	}

	return records
}
