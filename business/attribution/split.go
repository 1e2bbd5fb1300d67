package attribution

import (
	"strconv"

	"cartAffinity/domain"
)

// Line-item properties written by the storefront when units are added via a
// bundle or a recommendation click. Absent properties mean a manual add.
const (
	PropBundleQty = "_source_bundle_qty"
	PropRecQty    = "_source_rec_qty"
	PropManualQty = "_source_manual_qty"
	PropBundleID  = "_bundle_id"
)

// SourceSplit is the three-way breakdown of a line item's quantity. A single
// line can mix units added through different UI paths.
type SourceSplit struct {
	Bundle         int
	Recommendation int
	Manual         int
}

func propInt(props map[string]string, key string) int {
	raw, ok := props[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SplitLineSource reads the source-quantity properties off a line item.
// When none are present the whole quantity is attributed to manual.
// Recommendation units are clamped to the line quantity so a malformed
// property can never inflate attributed revenue.
func SplitLineSource(line domain.OrderLineItem) SourceSplit {
	split := SourceSplit{
		Bundle:         propInt(line.Properties, PropBundleQty),
		Recommendation: propInt(line.Properties, PropRecQty),
		Manual:         propInt(line.Properties, PropManualQty),
	}

	if split.Bundle == 0 && split.Recommendation == 0 && split.Manual == 0 {
		split.Manual = line.Quantity
		return split
	}

	if split.Recommendation > line.Quantity {
		split.Recommendation = line.Quantity
	}
	if split.Bundle > line.Quantity {
		split.Bundle = line.Quantity
	}

	return split
}
