package affinity

import (
	"math"
	"sort"
	"time"

	"cartAffinity/domain"
)

// AssociationCandidate is a directional, time-decayed bundle candidate:
// customers who bought ProductID also bought RelatedID.
type AssociationCandidate struct {
	ProductID    string  `json:"productId"`
	RelatedID    string  `json:"relatedId"`
	Confidence   float64 `json:"confidence"`
	Lift         float64 `json:"lift"`
	WeightedCo   float64 `json:"weightedCoOccurrence"`
	WeightedBase float64 `json:"weightedAppearances"`
}

// decayWeight is the exponential recency weight of an order: an order exactly
// one half-life old counts half as much as one placed now.
func decayWeight(age time.Duration, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 1
	}
	ageDays := age.Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-math.Ln2 / halfLifeDays * ageDays)
}

// BuildAssociations replaces raw co-occurrence counts with time-decayed
// weights and keeps the pairs that pass either the confidence gate or the
// lift gate. The "or" lets both rare-but-tightly-coupled and
// common-and-reliably-paired products surface.
func BuildAssociations(events []domain.PurchaseEvent, now time.Time, cfg Config) []AssociationCandidate {
	type weightedOrder struct {
		products map[string]struct{}
		weight   float64
	}

	orders := make(map[string]*weightedOrder)
	for _, ev := range events {
		grp, ok := orders[ev.OrderID]
		if !ok {
			grp = &weightedOrder{
				products: make(map[string]struct{}),
				weight:   decayWeight(now.Sub(ev.CreatedAt), cfg.HalfLifeDays),
			}
			orders[ev.OrderID] = grp
		}
		grp.products[ev.ProductID] = struct{}{}
	}

	appearances := make(map[string]float64)
	coOccurrence := make(map[PairKey]float64)
	totalWeight := 0.0

	for _, grp := range orders {
		if len(grp.products) < 2 {
			continue
		}

		products := make([]string, 0, len(grp.products))
		for pid := range grp.products {
			products = append(products, pid)
		}

		for _, pid := range products {
			appearances[pid] += grp.weight
			totalWeight += grp.weight
		}

		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				coOccurrence[NewPairKey(products[i], products[j])] += grp.weight
			}
		}
	}

	if totalWeight == 0 {
		return nil
	}

	var out []AssociationCandidate
	emit := func(from, to string, wCo float64) {
		base := appearances[from]
		if base == 0 {
			return
		}

		confidence := wCo / base
		lift := 0.0
		if baseline := appearances[to] / totalWeight; baseline > 0 {
			lift = confidence / baseline
		}

		strongConfidence := confidence >= cfg.MinConfidence && wCo >= cfg.MinConfidenceCo
		strongLift := lift >= cfg.MinLift && wCo >= cfg.MinLiftCo
		if !strongConfidence && !strongLift {
			return
		}

		out = append(out, AssociationCandidate{
			ProductID:    from,
			RelatedID:    to,
			Confidence:   confidence,
			Lift:         lift,
			WeightedCo:   wCo,
			WeightedBase: base,
		})
	}

	for key, wCo := range coOccurrence {
		emit(key.A, key.B, wCo)
		emit(key.B, key.A, wCo)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Confidence > out[j].Confidence
	})

	return out
}
