package affinity

import (
	"cartAffinity/domain"
)

// PairKey is the canonical key of an unordered product pair: A is always the
// lexicographically smaller id, so (x,y) and (y,x) land on the same entry.
type PairKey struct {
	A string
	B string
}

func NewPairKey(x, y string) PairKey {
	if x <= y {
		return PairKey{A: x, B: y}
	}
	return PairKey{A: y, B: x}
}

// ProductPair accumulates co-purchase evidence for one unordered pair.
type ProductPair struct {
	Key             PairKey
	CoPurchaseCount int
	SharedOrders    map[string]struct{}
	Revenue         float64
}

// ProductMetadata is the per-product denominator for normalized scores.
type ProductMetadata struct {
	ProductID string
	Orders    map[string]struct{}
}

// OrderCount is the number of distinct qualifying orders the product
// appeared in.
func (m *ProductMetadata) OrderCount() int {
	return len(m.Orders)
}

// Matrix is the in-memory co-purchase structure for one shop.
type Matrix struct {
	Pairs    map[PairKey]*ProductPair
	Products map[string]*ProductMetadata
}

type orderGroup struct {
	products map[string]struct{}
	total    float64
}

// BuildMatrix groups purchase events by order and accumulates every unordered
// pair of distinct products per order. Orders with fewer than 2 distinct
// products are skipped entirely, so no self-pairs and no single-product noise
// enter the matrix. Zero events yields an empty matrix, not an error.
func BuildMatrix(events []domain.PurchaseEvent) *Matrix {
	m := &Matrix{
		Pairs:    make(map[PairKey]*ProductPair),
		Products: make(map[string]*ProductMetadata),
	}

	orders := make(map[string]*orderGroup)
	for _, ev := range events {
		grp, ok := orders[ev.OrderID]
		if !ok {
			grp = &orderGroup{products: make(map[string]struct{})}
			orders[ev.OrderID] = grp
		}
		grp.products[ev.ProductID] = struct{}{}
		if ev.OrderTotal > 0 {
			grp.total = ev.OrderTotal
		}
	}

	for orderID, grp := range orders {
		if len(grp.products) < 2 {
			continue
		}

		products := make([]string, 0, len(grp.products))
		for pid := range grp.products {
			products = append(products, pid)
		}

		for _, pid := range products {
			meta, ok := m.Products[pid]
			if !ok {
				meta = &ProductMetadata{
					ProductID: pid,
					Orders:    make(map[string]struct{}),
				}
				m.Products[pid] = meta
			}
			meta.Orders[orderID] = struct{}{}
		}

		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				key := NewPairKey(products[i], products[j])

				pair, ok := m.Pairs[key]
				if !ok {
					pair = &ProductPair{
						Key:          key,
						SharedOrders: make(map[string]struct{}),
					}
					m.Pairs[key] = pair
				}

				pair.CoPurchaseCount++
				pair.SharedOrders[orderID] = struct{}{}
				pair.Revenue += grp.total
			}
		}
	}

	return m
}
