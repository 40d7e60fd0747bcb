package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"molten-core/internal/sims/molten"
)

// ErrBadQuery is returned for query parameters outside their limits.
var ErrBadQuery = errors.New("bad query")

const (
	minSide  = 16
	maxSide  = 1920
	maxFrame = 3600
)

// frameQuery identifies one rendered frame.
type frameQuery struct {
	Preset string `json:"preset"`
	Seed   int64  `json:"seed"`
	W      int    `json:"w"`
	H      int    `json:"h"`
	Frame  int    `json:"frame"`
}

func defaultFrameQuery() frameQuery {
	return frameQuery{
		Preset: molten.DefaultPreset,
		Seed:   molten.DefaultConfig().Seed,
		W:      320,
		H:      240,
		Frame:  60,
	}
}

func parseFrameQuery(v url.Values) (frameQuery, error) {
	q := defaultFrameQuery()
	if p := v.Get("preset"); p != "" {
		q.Preset = p
	}
	if s := v.Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return q, fmt.Errorf("%w: seed %q is not an integer", ErrBadQuery, s)
		}
		q.Seed = seed
	}
	var err error
	if q.W, err = intInRange(v, "w", q.W, minSide, maxSide); err != nil {
		return q, err
	}
	if q.H, err = intInRange(v, "h", q.H, minSide, maxSide); err != nil {
		return q, err
	}
	if q.Frame, err = intInRange(v, "frame", q.Frame, 0, maxFrame); err != nil {
		return q, err
	}
	return q, nil
}

func intInRange(v url.Values, key string, def, lo, hi int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrBadQuery, key, s)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrBadQuery, key, lo, hi, n)
	}
	return n, nil
}
