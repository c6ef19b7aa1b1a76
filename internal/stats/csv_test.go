package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nflFixture = `player_display_name,passing_yards,attempts,rushing_yards
Josh Allen,280,35,45
Josh Allen,310,40,30
Josh Allen,250,32,60
James Cook,,0,95
James Cook,,0,105
`

func loadFixture(t *testing.T) *CSVSource {
	t.Helper()
	src, err := ReadCSV(strings.NewReader(nflFixture), NFLScheme())
	require.NoError(t, err)
	return src
}

func TestCSVSourceStdDev(t *testing.T) {
	src := loadFixture(t)

	sd, ok := src.StdDev("Josh Allen", "player_pass_yds")
	require.True(t, ok)
	// Population std dev of [280, 310, 250] = sqrt(600).
	assert.InDelta(t, 24.4948974968, sd, 1e-6)
}

func TestCSVSourceMean(t *testing.T) {
	src := loadFixture(t)

	mean, ok := src.Mean("Josh Allen", "player_pass_yds")
	require.True(t, ok)
	assert.InDelta(t, 280.0, mean, 1e-9)

	mean, ok = src.Mean("James Cook", "player_rush_yds")
	require.True(t, ok)
	assert.InDelta(t, 100.0, mean, 1e-9)
}

func TestCSVSourceMissesAreNotErrors(t *testing.T) {
	src := loadFixture(t)

	_, ok := src.StdDev("Unknown Player", "player_pass_yds")
	assert.False(t, ok)

	// Known player, unmapped market key.
	_, ok = src.StdDev("Josh Allen", "player_points")
	assert.False(t, ok)

	// Blank cells never enter the series.
	_, ok = src.StdDev("James Cook", "player_pass_yds")
	assert.False(t, ok)
	assert.Equal(t, 0, src.Games("James Cook", "player_pass_yds"))
}

func TestCSVSourceMissingNameColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("team,points\nBUF,30\n"), NFLScheme())
	assert.Error(t, err)
}

func TestNBASchemeJoinsNameColumns(t *testing.T) {
	data := `firstName,lastName,points,assists
LeBron,James,28,8
LeBron,James,32,10
`
	src, err := ReadCSV(strings.NewReader(data), NBAScheme())
	require.NoError(t, err)

	mean, ok := src.Mean("LeBron James", "player_points")
	require.True(t, ok)
	assert.InDelta(t, 30.0, mean, 1e-9)
}

// countingSource tracks how often the backing source is consulted.
type countingSource struct {
	inner Source
	calls int
}

func (c *countingSource) StdDev(player, market string) (float64, bool) {
	c.calls++
	return c.inner.StdDev(player, market)
}

func (c *countingSource) Mean(player, market string) (float64, bool) {
	c.calls++
	return c.inner.Mean(player, market)
}

func TestCachedSourceMemoizesHitsAndMisses(t *testing.T) {
	counting := &countingSource{inner: loadFixture(t)}
	cachedSrc := NewCachedSource(counting, time.Minute)

	for i := 0; i < 3; i++ {
		sd, ok := cachedSrc.StdDev("Josh Allen", "player_pass_yds")
		require.True(t, ok)
		assert.InDelta(t, 24.4948974968, sd, 1e-6)
	}
	assert.Equal(t, 1, counting.calls)

	for i := 0; i < 3; i++ {
		_, ok := cachedSrc.StdDev("Unknown Player", "player_pass_yds")
		assert.False(t, ok)
	}
	assert.Equal(t, 2, counting.calls, "misses are memoized too")
}
