package engine

import "errors"

// Per-item errors. Each one is fatal to the quote or prop it occurred on,
// never to the batch.
var (
	// ErrInvalidPrice marks a decimal price at or below 1.0, which implies
	// an impossible or degenerate bet.
	ErrInvalidPrice = errors.New("decimal price must be greater than 1.0")

	// ErrProbabilityDomain marks a probability outside (0, 1) passed to the
	// inverse normal CDF.
	ErrProbabilityDomain = errors.New("probability outside (0, 1)")

	// ErrInvalidParameter marks a non-positive standard deviation.
	ErrInvalidParameter = errors.New("standard deviation must be positive")

	// ErrNoSharpConsensus means no configured sharp book quoted the prop.
	// The prop is skipped, not failed.
	ErrNoSharpConsensus = errors.New("no sharp book quotes available")

	// ErrMissingStdDev means the stats source has no history for the
	// player/market. Expected for fringe players; the prop is skipped.
	ErrMissingStdDev = errors.New("no historical standard deviation available")
)
