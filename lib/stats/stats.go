package stats

import (
	"fmt"
	"sort"
	"time"

	"f1stats-backend/lib/model"
)

// DeltaSample is the signed time gap between two cars at one distance
// point. Positive means the comparison car is behind the reference.
type DeltaSample struct {
	Distance float64
	Delta    time.Duration
}

// DeltaTime resamples both drivers' traces onto the union of their
// distance grids, truncated to the overlapping distance range, and
// returns the per-sample gap comparison − reference. Swapping the two
// drivers negates every sample.
func DeltaTime(session Session, reference, comparison string) ([]DeltaSample, error) {
	if err := requireLapData(session); err != nil {
		return nil, err
	}
	ref, err := session.CarData(reference)
	if err != nil {
		return nil, err
	}
	comp, err := session.CarData(comparison)
	if err != nil {
		return nil, err
	}
	if len(ref) < 2 || len(comp) < 2 {
		return nil, model.MissingData("telemetry trace too short to interpolate", nil)
	}

	lo := max(ref[0].Distance, comp[0].Distance)
	hi := min(ref[len(ref)-1].Distance, comp[len(comp)-1].Distance)
	if lo > hi {
		return nil, model.MissingData("telemetry traces do not overlap in distance", nil)
	}

	grid := make([]float64, 0, len(ref)+len(comp))
	for _, s := range ref {
		if s.Distance >= lo && s.Distance <= hi {
			grid = append(grid, s.Distance)
		}
	}
	for _, s := range comp {
		if s.Distance >= lo && s.Distance <= hi {
			grid = append(grid, s.Distance)
		}
	}
	sort.Float64s(grid)

	out := make([]DeltaSample, 0, len(grid))
	var last float64
	for i, d := range grid {
		if i > 0 && d == last {
			continue
		}
		last = d
		out = append(out, DeltaSample{
			Distance: d,
			Delta:    interpolate(comp, d) - interpolate(ref, d),
		})
	}
	return out, nil
}

// interpolate returns the time-at-distance on a trace by linear
// interpolation. d must lie within the trace's distance range.
func interpolate(trace Trace, d float64) time.Duration {
	i := sort.Search(len(trace), func(i int) bool {
		return trace[i].Distance >= d
	})
	if trace[i].Distance == d {
		return trace[i].Time
	}
	a, b := trace[i-1], trace[i]
	frac := (d - a.Distance) / (b.Distance - a.Distance)
	return a.Time + time.Duration(frac*float64(b.Time-a.Time))
}

// Minisectors tags every sample of a driver's trace with its equal-
// length segment of the lap, numbered from 1. n defaults to 24 when
// not positive; the sample at maximum distance lands in segment n.
func Minisectors(session Session, driver string, n int) ([]int, error) {
	if err := requireLapData(session); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 24
	}
	trace, err := session.CarData(driver)
	if err != nil {
		return nil, err
	}
	if len(trace) == 0 {
		return nil, model.MissingData(
			fmt.Sprintf("empty telemetry trace for %s", driver), nil)
	}

	maxDistance := trace[len(trace)-1].Distance
	if maxDistance <= 0 {
		return nil, model.MissingData(
			fmt.Sprintf("degenerate telemetry trace for %s", driver), nil)
	}
	segment := maxDistance / float64(n)

	out := make([]int, len(trace))
	for i, s := range trace {
		sector := int(s.Distance/segment) + 1
		if sector > n {
			sector = n
		}
		out[i] = sector
	}
	return out, nil
}

// Stint is a contiguous run of laps on one compound by one driver.
type Stint struct {
	Driver   string
	Stint    int
	Compound string
	Laps     int
}

// Stints groups each driver's laps into stints, where a stint boundary
// is any tyre compound change. Laps are assumed ordered by lap number
// within a driver, which is how providers hand them over.
func Stints(session Session) ([]Stint, error) {
	if err := requireLapData(session); err != nil {
		return nil, err
	}

	var out []Stint
	index := map[string]int{}
	for _, lap := range session.Laps() {
		i, ok := index[lap.Driver]
		if ok && out[i].Compound == lap.Compound {
			out[i].Laps++
			continue
		}
		stint := 1
		if ok {
			stint = out[i].Stint + 1
		}
		out = append(out, Stint{
			Driver:   lap.Driver,
			Stint:    stint,
			Compound: lap.Compound,
			Laps:     1,
		})
		index[lap.Driver] = len(out) - 1
	}
	return out, nil
}

// PositionChange is a driver's gain or loss between grid and finish.
// Positive Diff means positions gained.
type PositionChange struct {
	Driver string
	Grid   int
	Finish int
	Diff   int
}

// PositionChanges computes grid minus finish per classified driver.
// Only race sessions have a meaningful grid.
func PositionChanges(session Session) ([]PositionChange, error) {
	if err := requireLapData(session); err != nil {
		return nil, err
	}
	if session.Name() != "Race" {
		return nil, model.MissingData(
			fmt.Sprintf("position changes are only defined for races, not %q", session.Name()), nil)
	}

	results := session.Results()
	out := make([]PositionChange, 0, len(results))
	for _, res := range results {
		out = append(out, PositionChange{
			Driver: res.Driver,
			Grid:   res.GridPosition,
			Finish: res.Position,
			Diff:   res.GridPosition - res.Position,
		})
	}
	return out, nil
}

// DriverDelta is a driver's mean lap time and its signed difference
// from the session-wide mean. Negative Delta means faster than the
// field.
type DriverDelta struct {
	Driver string
	Mean   time.Duration
	Delta  time.Duration
}

// AverageDelta compares each driver's mean lap time against the
// session mean. In-laps, out-laps, and untimed laps are ignored;
// drivers left with no valid laps are dropped rather than zero-filled.
func AverageDelta(session Session) ([]DriverDelta, error) {
	if err := requireLapData(session); err != nil {
		return nil, err
	}

	type bucket struct {
		total time.Duration
		count int
	}
	perDriver := map[string]*bucket{}
	order := []string{}
	var total time.Duration
	var count int
	for _, lap := range session.Laps() {
		if lap.PitIn || lap.PitOut || lap.LapTime <= 0 {
			continue
		}
		b, ok := perDriver[lap.Driver]
		if !ok {
			b = &bucket{}
			perDriver[lap.Driver] = b
			order = append(order, lap.Driver)
		}
		b.total += lap.LapTime
		b.count++
		total += lap.LapTime
		count++
	}
	if count == 0 {
		return nil, model.MissingData("no timed laps in session", nil)
	}

	sessionMean := total / time.Duration(count)
	out := make([]DriverDelta, 0, len(order))
	for _, driver := range order {
		b := perDriver[driver]
		mean := b.total / time.Duration(b.count)
		out = append(out, DriverDelta{
			Driver: driver,
			Mean:   mean,
			Delta:  mean - sessionMean,
		})
	}
	return out, nil
}
