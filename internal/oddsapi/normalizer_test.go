package oddsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/models"
)

func TestNormalizerFlattensPayload(t *testing.T) {
	updated := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	odds := &EventOdds{
		Event: Event{ID: "evt-1"},
		Bookmakers: []BookmakerOdds{
			{
				Key: "fanduel",
				Markets: []MarketOdds{
					{
						Key:        "player_pass_yds",
						LastUpdate: updated,
						Outcomes: []Outcome{
							{Name: "Over", Description: "Josh Allen", Price: 1.85, Point: 280.5},
							{Name: "Under", Description: "Josh Allen", Price: 1.95, Point: 280.5},
						},
					},
				},
			},
			{
				Key: "prizepicks",
				Markets: []MarketOdds{
					{
						Key:        "player_pass_yds",
						LastUpdate: updated,
						Outcomes: []Outcome{
							{Name: "Over", Description: "Josh Allen", Price: 1.91, Point: 275.5},
						},
					},
				},
			},
		},
	}

	quotes := NewNormalizer(nil).Quotes(odds)
	require.Len(t, quotes, 3)

	assert.Equal(t, "fanduel", quotes[0].Bookmaker)
	assert.Equal(t, models.SideOver, quotes[0].Side)
	assert.Equal(t, 280.5, quotes[0].Line)
	assert.Equal(t, updated, quotes[0].LastUpdate)

	assert.Equal(t, "prizepicks", quotes[2].Bookmaker)
	assert.Equal(t, 275.5, quotes[2].Line)
}

func TestNormalizerSnapsFloatNoise(t *testing.T) {
	odds := &EventOdds{
		Bookmakers: []BookmakerOdds{
			{
				Key: "fanduel",
				Markets: []MarketOdds{
					{
						Key: "player_pass_yds",
						Outcomes: []Outcome{
							{Name: "Over", Description: "Josh Allen", Price: 1.9099999999, Point: 280.50000000001},
						},
					},
				},
			},
		},
	}

	quotes := NewNormalizer(nil).Quotes(odds)
	require.Len(t, quotes, 1)
	assert.Equal(t, 280.5, quotes[0].Line)
	assert.Equal(t, 1.91, quotes[0].Price)
}

func TestNormalizerDropsMalformedOutcomes(t *testing.T) {
	odds := &EventOdds{
		Bookmakers: []BookmakerOdds{
			{
				Key: "fanduel",
				Markets: []MarketOdds{
					{
						Key: "player_pass_yds",
						Outcomes: []Outcome{
							{Name: "Yes", Description: "Josh Allen", Price: 1.85, Point: 280.5},
							{Name: "Over", Description: "", Price: 1.85, Point: 280.5},
							{Name: "Over", Description: "Josh Allen", Price: 1.0, Point: 280.5},
							{Name: "Under", Description: "Josh Allen", Price: 1.95, Point: 280.5},
						},
					},
				},
			},
		},
	}

	quotes := NewNormalizer(nil).Quotes(odds)
	require.Len(t, quotes, 1)
	assert.Equal(t, models.SideUnder, quotes[0].Side)
}
