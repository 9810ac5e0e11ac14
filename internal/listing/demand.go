// File: internal/listing/demand.go
package listing

import "math"

// Demand labels rendered alongside the score.
const (
	DemandLabelHigh     = "High Demand"
	DemandLabelModerate = "Moderate Demand"
	DemandLabelLow      = "Low Demand"
)

// DemandScore computes the land demand index from engagement counters.
// Price growth dominates, views contribute logarithmically, and the result
// is clamped to [0, 100].
func DemandScore(priceGrowth float64, views, inquiries, saves int) int {
	raw := priceGrowth*2 +
		math.Log10(float64(views)+1)*10 +
		float64(inquiries)*5 +
		float64(saves)*8
	score := int(math.Round(raw))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// DemandLabelFor buckets a score into its display label.
func DemandLabelFor(score int) string {
	switch {
	case score > 70:
		return DemandLabelHigh
	case score > 30:
		return DemandLabelModerate
	default:
		return DemandLabelLow
	}
}
