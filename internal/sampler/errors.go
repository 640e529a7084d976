package sampler

import "errors"

// Sentinel error kinds for sampling.
var (
	ErrInsufficientCatalogSize = errors.New("activity catalog has fewer entries than picks")
	ErrInvalidRange            = errors.New("invalid participant range")
)
