package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Scheme describes how one sport's game-log CSV maps onto lookups: which
// columns form the player name and which column backs each odds-provider
// market key.
type Scheme struct {
	NameColumns []string
	Markets     map[string]string
}

// NFLScheme maps odds provider NFL prop markets onto nflverse player-stat
// columns.
func NFLScheme() Scheme {
	return Scheme{
		NameColumns: []string{"player_display_name"},
		Markets: map[string]string{
			"player_field_goals":       "fg_made",
			"player_pass_attempts":     "attempts",
			"player_pass_completions":  "completions",
			"player_pass_interceptions": "passing_interceptions",
			"player_pass_tds":          "passing_tds",
			"player_pass_yds":          "passing_yards",
			"player_pats":              "pat_made",
			"player_receptions":        "receptions",
			"player_reception_tds":     "receiving_tds",
			"player_reception_yds":     "receiving_yards",
			"player_rush_attempts":     "carries",
			"player_rush_yds":          "rushing_yards",
			"player_rush_tds":          "rushing_tds",
			"player_solo_tackles":      "def_tackles_solo",
			"player_assists":           "def_tackle_assists",
		},
	}
}

// NBAScheme maps odds provider NBA prop markets onto box-score columns.
// The player name is split across two columns in the source data.
func NBAScheme() Scheme {
	return Scheme{
		NameColumns: []string{"firstName", "lastName"},
		Markets: map[string]string{
			"player_points":    "points",
			"player_rebounds":  "reboundsTotal",
			"player_assists":   "assists",
			"player_threes":    "threePointersMade",
			"player_blocks":    "blocks",
			"player_steals":    "steals",
			"player_turnovers": "turnovers",
		},
	}
}

// CSVSource is an in-memory game log loaded from a CSV export, indexed by
// player and stat column.
type CSVSource struct {
	scheme Scheme
	// values[player][column] is the player's game-by-game series.
	values map[string]map[string][]float64
}

// LoadCSV reads a game-log CSV from disk into a Source.
func LoadCSV(path string, scheme Scheme) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, scheme)
}

// ReadCSV parses a game-log CSV stream into a Source. Rows with a missing
// or non-numeric value for a column simply contribute nothing to that
// column's series, matching how gaps appear in real game logs.
func ReadCSV(r io.Reader, scheme Scheme) (*CSVSource, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}
	for _, name := range scheme.NameColumns {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("stats file missing name column %q", name)
		}
	}

	// Only stat columns referenced by the scheme are retained.
	statCols := make(map[string]int)
	for _, column := range scheme.Markets {
		if i, ok := colIndex[column]; ok {
			statCols[column] = i
		}
	}

	src := &CSVSource{
		scheme: scheme,
		values: make(map[string]map[string][]float64),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read stats row: %w", err)
		}

		nameParts := make([]string, 0, len(scheme.NameColumns))
		for _, col := range scheme.NameColumns {
			nameParts = append(nameParts, strings.TrimSpace(record[colIndex[col]]))
		}
		player := strings.Join(nameParts, " ")
		if player == "" {
			continue
		}

		byColumn := src.values[player]
		if byColumn == nil {
			byColumn = make(map[string][]float64)
			src.values[player] = byColumn
		}
		for column, i := range statCols {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil || math.IsNaN(v) {
				continue
			}
			byColumn[column] = append(byColumn[column], v)
		}
	}

	return src, nil
}

// series returns the player's game values for a market, if mapped.
func (s *CSVSource) series(player, market string) []float64 {
	column, ok := s.scheme.Markets[market]
	if !ok {
		return nil
	}
	return s.values[player][column]
}

// StdDev returns the population standard deviation of the player's game
// values for the market.
func (s *CSVSource) StdDev(player, market string) (float64, bool) {
	values := s.series(player, market)
	if len(values) == 0 {
		return 0, false
	}
	mean := meanOf(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values))), true
}

// Mean returns the player's historical mean for the market.
func (s *CSVSource) Mean(player, market string) (float64, bool) {
	values := s.series(player, market)
	if len(values) == 0 {
		return 0, false
	}
	return meanOf(values), true
}

// Games returns the number of games contributing to a lookup.
func (s *CSVSource) Games(player, market string) int {
	return len(s.series(player, market))
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
