package attribution

import (
	"context"
	"strconv"

	"cartAffinity/domain"
)

// DynamicBundlePrefix is the naming convention for bundles generated per
// product instead of authored by the merchant.
const DynamicBundlePrefix = "dynamic-bundle-"

type BundleRepository interface {
	FindByID(ctx context.Context, shop string, id uint) (domain.Bundle, bool, error)
	FindByHandle(ctx context.Context, shop, handle string) (domain.Bundle, bool, error)
	IncrementPurchase(ctx context.Context, shop string, bundleID uint, revenue float64) error
	HasPurchase(ctx context.Context, shop, orderID string, bundleID uint) (bool, error)
	SavePurchase(ctx context.Context, purchase domain.BundlePurchase) error
}

// bundleResolver tries one strategy of matching a line-item bundle tag back
// to a stored bundle definition.
type bundleResolver struct {
	name    string
	resolve func(ctx context.Context, repo BundleRepository, shop, tag string, line domain.OrderLineItem) (domain.Bundle, bool, error)
}

// bundleResolvers are tried in order; the first match wins. Order matters:
// a numeric tag is a direct id, the per-product convention covers dynamic
// bundles, and a plain handle lookup is the final fallback.
var bundleResolvers = []bundleResolver{
	{
		name: "direct_id",
		resolve: func(ctx context.Context, repo BundleRepository, shop, tag string, _ domain.OrderLineItem) (domain.Bundle, bool, error) {
			id, err := strconv.ParseUint(tag, 10, 64)
			if err != nil {
				return domain.Bundle{}, false, nil
			}
			return repo.FindByID(ctx, shop, uint(id))
		},
	},
	{
		name: "dynamic_per_product",
		resolve: func(ctx context.Context, repo BundleRepository, shop, _ string, line domain.OrderLineItem) (domain.Bundle, bool, error) {
			return repo.FindByHandle(ctx, shop, DynamicBundlePrefix+line.ProductID)
		},
	},
	{
		name: "handle",
		resolve: func(ctx context.Context, repo BundleRepository, shop, tag string, _ domain.OrderLineItem) (domain.Bundle, bool, error) {
			return repo.FindByHandle(ctx, shop, tag)
		},
	},
}

// resolveBundle walks the strategies and returns the first match, or false
// when the tag matches nothing.
func resolveBundle(ctx context.Context, repo BundleRepository, shop, tag string, line domain.OrderLineItem) (domain.Bundle, string, bool, error) {
	for _, r := range bundleResolvers {
		bundle, ok, err := r.resolve(ctx, repo, shop, tag, line)
		if err != nil {
			return domain.Bundle{}, "", false, err
		}
		if ok {
			return bundle, r.name, true, nil
		}
	}

	return domain.Bundle{}, "", false, nil
}
