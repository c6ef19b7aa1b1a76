package models

import (
	"fmt"
	"strings"
	"time"
)

// Side represents which side of an over/under line a quote is priced on.
type Side string

const (
	SideOver  Side = "Over"
	SideUnder Side = "Under"
)

// ParseSide converts an odds provider outcome name into a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "over":
		return SideOver, nil
	case "under":
		return SideUnder, nil
	default:
		return "", fmt.Errorf("unknown outcome side %q", name)
	}
}

// Opposite returns the other side of the line.
func (s Side) Opposite() Side {
	if s == SideOver {
		return SideUnder
	}
	return SideOver
}

// Quote is a single bookmaker price on one side of a player prop line,
// observed at fetch time. Quotes are immutable inputs to the engine.
type Quote struct {
	Bookmaker  string    `json:"bookmaker"`
	Market     string    `json:"market"`
	Player     string    `json:"player"`
	Side       Side      `json:"side"`
	Line       float64   `json:"line"`
	Price      float64   `json:"price"`
	LastUpdate time.Time `json:"last_update"`
}

// PropKey identifies the statistic a group of quotes is priced on.
// Consensus building and EV scoring both operate per PropKey.
type PropKey struct {
	Player string
	Market string
}

func (k PropKey) String() string {
	return k.Player + "/" + k.Market
}
