package oddsapi

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/models"
)

// Quote normalization precision. Provider feeds occasionally carry float
// noise (a line of 275.5000000001 or a price of 1.9099999999); snapping
// keeps grouping by line exact downstream.
const (
	linePlaces  = 2
	pricePlaces = 4
)

// Normalizer flattens provider odds payloads into engine quotes.
type Normalizer struct {
	logger *logrus.Logger
}

// NewNormalizer creates a payload normalizer.
func NewNormalizer(logger *logrus.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Quotes flattens one event's bookmaker/market/outcome tree into a flat
// quote list. Outcomes that cannot be interpreted are dropped with a log
// line; a single malformed outcome never discards the event.
func (n *Normalizer) Quotes(odds *EventOdds) []models.Quote {
	var quotes []models.Quote
	for _, bookmaker := range odds.Bookmakers {
		for _, market := range bookmaker.Markets {
			for _, outcome := range market.Outcomes {
				side, err := models.ParseSide(outcome.Name)
				if err != nil {
					n.warn(bookmaker.Key, market.Key, outcome.Description, "unrecognized outcome name")
					continue
				}
				if outcome.Description == "" {
					n.warn(bookmaker.Key, market.Key, outcome.Description, "outcome missing player name")
					continue
				}
				if outcome.Price <= 1.0 {
					n.warn(bookmaker.Key, market.Key, outcome.Description, "outcome price not a valid decimal price")
					continue
				}
				quotes = append(quotes, models.Quote{
					Bookmaker:  bookmaker.Key,
					Market:     market.Key,
					Player:     outcome.Description,
					Side:       side,
					Line:       snap(outcome.Point, linePlaces),
					Price:      snap(outcome.Price, pricePlaces),
					LastUpdate: market.LastUpdate,
				})
			}
		}
	}
	return quotes
}

// snap rounds a provider float onto a fixed decimal grid.
func snap(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func (n *Normalizer) warn(bookmaker, market, player, msg string) {
	if n.logger == nil {
		return
	}
	n.logger.WithFields(logrus.Fields{
		"bookmaker": bookmaker,
		"market":    market,
		"player":    player,
	}).Warn(msg)
}
