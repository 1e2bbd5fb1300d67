package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeMetadata_FullPayload(t *testing.T) {
	event := TrackingEvent{
		EventType: EventImpression,
		Metadata: datatypes.JSONMap{
			"recommendationIds": []any{"P2", "P3"},
			"anchors":           []any{"P1"},
			"productId":         "P2",
			"variantId":         "V2",
			"campaign":          "summer", // unknown keys are ignored
		},
	}

	meta, ok := event.DecodeMetadata()
	require.True(t, ok)
	assert.Equal(t, []string{"P2", "P3"}, meta.RecommendedIDs)
	assert.Equal(t, []string{"P1"}, meta.Anchors)
	assert.Equal(t, "P2", meta.ProductID)
	assert.Equal(t, "V2", meta.VariantID)
}

func TestDecodeMetadata_EmptyPayload(t *testing.T) {
	_, ok := TrackingEvent{}.DecodeMetadata()
	assert.False(t, ok)

	_, ok = TrackingEvent{Metadata: datatypes.JSONMap{}}.DecodeMetadata()
	assert.False(t, ok)
}

func TestDecodeMetadata_WrongShapeFailsGracefully(t *testing.T) {
	event := TrackingEvent{
		Metadata: datatypes.JSONMap{"recommendationIds": "P2"},
	}

	_, ok := event.DecodeMetadata()
	assert.False(t, ok, "a scalar where a list is expected must not panic the decoder")
}
