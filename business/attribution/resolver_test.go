package attribution

import (
	"context"
	"testing"

	"cartAffinity/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBundle_DirectIDWins(t *testing.T) {
	repo := newFakeBundleRepo()
	repo.byID[12] = domain.Bundle{ID: 12, Shop: "s1", Name: "By ID"}
	// the same tag also exists as a handle; the id strategy must win
	repo.byHandle["12"] = domain.Bundle{ID: 99, Shop: "s1", Name: "By Handle"}

	bundle, strategy, ok, err := resolveBundle(context.Background(), repo, "s1", "12", domain.OrderLineItem{ProductID: "P1"})

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "direct_id", strategy)
	assert.Equal(t, uint(12), bundle.ID)
}

func TestResolveBundle_DynamicPerProductFallback(t *testing.T) {
	repo := newFakeBundleRepo()
	repo.byHandle[DynamicBundlePrefix+"P7"] = domain.Bundle{ID: 4, Shop: "s1"}

	bundle, strategy, ok, err := resolveBundle(context.Background(), repo, "s1", "whatever", domain.OrderLineItem{ProductID: "P7"})

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dynamic_per_product", strategy)
	assert.Equal(t, uint(4), bundle.ID)
}

func TestResolveBundle_PlainHandleIsLast(t *testing.T) {
	repo := newFakeBundleRepo()
	repo.byHandle["summer-sale"] = domain.Bundle{ID: 8, Shop: "s1"}

	bundle, strategy, ok, err := resolveBundle(context.Background(), repo, "s1", "summer-sale", domain.OrderLineItem{ProductID: "P1"})

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "handle", strategy)
	assert.Equal(t, uint(8), bundle.ID)
}

func TestResolveBundle_NoMatch(t *testing.T) {
	_, _, ok, err := resolveBundle(context.Background(), newFakeBundleRepo(), "s1", "missing", domain.OrderLineItem{ProductID: "P1"})

	require.NoError(t, err)
	assert.False(t, ok)
}
