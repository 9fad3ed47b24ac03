// Package interval implements the <n><unit> interval grammar, the native
// interval planner, and the resampler that aggregates a native-interval
// candle series into a derived, coarser interval.
//
// Grammar: an interval is a positive integer followed by a unit letter —
// m (minute), h (hour), d (day), w (week), M (month, capitalized to
// disambiguate from minute). A month is fixed at exactly 30 days; this
// engine never consults a calendar.
package interval

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d+)([mhdwM])$`)

// DefaultInterval is used whenever a requested interval string fails to
// parse.
const DefaultInterval = "1d"

// Duration returns the exact time.Duration represented by an interval
// string, treating 1M as exactly 30 days. Returns an error if the string
// does not match the grammar.
func Duration(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("interval: %q does not match <n><unit> grammar", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("interval: %q has invalid magnitude", s)
	}
	switch m[2] {
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "w":
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case "M":
		return time.Duration(n) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("interval: %q has unknown unit", s)
	}
}

// Plan is the outcome of planning a requested interval against a market's
// native interval set: fetch Native candles and aggregate Factor of them
// into one bar of the Requested interval. Factor==1 means the native
// series already is the requested interval (no resampling needed).
type Plan struct {
	Requested string
	Native    string
	Factor    int
}

// Plan picks, from native (a market's supported fetch granularities), the
// largest native interval that evenly divides the requested interval. If
// none divides evenly, it falls back to the smallest native interval with
// Factor 1 (the caller gets the closest available granularity and performs
// no aggregation). An unparseable requested interval is treated as
// DefaultInterval.
func PlanFor(requested string, native []string) (Plan, error) {
	if len(native) == 0 {
		return Plan{}, fmt.Errorf("interval: no native intervals supplied")
	}
	reqDur, err := Duration(requested)
	if err != nil {
		requested = DefaultInterval
		reqDur, err = Duration(requested)
		if err != nil {
			return Plan{}, err
		}
	}

	type candidate struct {
		s   string
		dur time.Duration
	}
	candidates := make([]candidate, 0, len(native))
	for _, n := range native {
		d, err := Duration(n)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{s: n, dur: d})
	}
	if len(candidates) == 0 {
		return Plan{}, fmt.Errorf("interval: no native interval in %v is well-formed", native)
	}

	var best *candidate
	for i := range candidates {
		c := candidates[i]
		if c.dur > reqDur {
			continue
		}
		if reqDur%c.dur != 0 {
			continue
		}
		if best == nil || c.dur > best.dur {
			best = &c
		}
	}
	if best != nil {
		return Plan{Requested: requested, Native: best.s, Factor: int(reqDur / best.dur)}, nil
	}

	smallest := candidates[0]
	for _, c := range candidates[1:] {
		if c.dur < smallest.dur {
			smallest = c
		}
	}
	return Plan{Requested: requested, Native: smallest.s, Factor: 1}, nil
}
