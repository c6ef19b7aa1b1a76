package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func evResult(ev float64) *EVResult {
	return &EVResult{EVPercent: ev}
}

func TestFilterResultsSanityGate(t *testing.T) {
	results := []*EVResult{
		evResult(12.0),
		evResult(75.0),  // boundary: exactly at the ceiling stays
		evResult(75.01), // above the ceiling is a data error
		evResult(120.0),
	}

	kept := FilterResults(results, -1000)
	assert.Len(t, kept, 2)
	for _, r := range kept {
		assert.LessOrEqual(t, r.EVPercent, SanityCeiling)
	}
}

func TestFilterResultsThresholdGate(t *testing.T) {
	results := []*EVResult{
		evResult(-3.0),
		evResult(0.0),
		evResult(4.99),
		evResult(5.0), // boundary inclusive
		evResult(8.5),
	}

	kept := FilterResults(results, 5.0)
	assert.Len(t, kept, 2)
	assert.InDelta(t, 5.0, kept[0].EVPercent, 1e-9)
	assert.InDelta(t, 8.5, kept[1].EVPercent, 1e-9)
}

func TestFilterResultsDefaultThresholdKeepsNonNegative(t *testing.T) {
	results := []*EVResult{
		evResult(-0.01),
		evResult(0.0),
		evResult(3.2),
	}

	kept := FilterResults(results, 0)
	assert.Len(t, kept, 2)
}

func TestFilterResultsPreservesComputedOrder(t *testing.T) {
	results := []*EVResult{
		evResult(9.0),
		evResult(1.0),
		evResult(5.0),
	}

	kept := FilterResults(results, 0)
	assert.Equal(t, []float64{9.0, 1.0, 5.0},
		[]float64{kept[0].EVPercent, kept[1].EVPercent, kept[2].EVPercent})
}

func TestFilterResultsSanityGateIgnoresThreshold(t *testing.T) {
	// A permissive threshold must never resurrect a sanity-gated result.
	kept := FilterResults([]*EVResult{evResult(90.0)}, -500)
	assert.Empty(t, kept)
}
