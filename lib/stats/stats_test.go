package stats

import (
	"errors"
	"testing"
	"time"

	"f1stats-backend/lib/model"

	"github.com/stretchr/testify/require"
)

func telemetryTrace(points ...float64) Trace {
	// points come in (distance, seconds) pairs
	trace := make(Trace, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		trace = append(trace, TelemetrySample{
			Distance: points[i],
			Time:     time.Duration(points[i+1] * float64(time.Second)),
		})
	}
	return trace
}

func raceSession() *LoadedSession {
	return &LoadedSession{
		SessionName: "Race",
		Season:      2024,
		LapData: []Lap{
			{Driver: "VER", LapNumber: 1, LapTime: 93 * time.Second, Compound: "SOFT", PitOut: true},
			{Driver: "VER", LapNumber: 2, LapTime: 91 * time.Second, Compound: "SOFT"},
			{Driver: "VER", LapNumber: 3, LapTime: 95 * time.Second, Compound: "SOFT", PitIn: true},
			{Driver: "VER", LapNumber: 4, LapTime: 94 * time.Second, Compound: "HARD", PitOut: true},
			{Driver: "VER", LapNumber: 5, LapTime: 92 * time.Second, Compound: "HARD"},
			{Driver: "HAM", LapNumber: 1, LapTime: 94 * time.Second, Compound: "MEDIUM", PitOut: true},
			{Driver: "HAM", LapNumber: 2, LapTime: 93 * time.Second, Compound: "MEDIUM"},
			{Driver: "HAM", LapNumber: 3, LapTime: 92 * time.Second, Compound: "MEDIUM"},
		},
		ResultData: []SessionResult{
			{Driver: "VER", GridPosition: 3, Position: 1, Status: "Finished"},
			{Driver: "HAM", GridPosition: 1, Position: 2, Status: "Finished"},
			{Driver: "LEC", GridPosition: 2, Position: 5, Status: "Finished"},
		},
		Telemetry: map[string]Trace{
			"VER": telemetryTrace(0, 0, 100, 5, 200, 10.5, 300, 16, 400, 22),
			"HAM": telemetryTrace(50, 0, 150, 5.2, 250, 11, 350, 17, 450, 23),
		},
	}
}

func TestDeltaTimeAntiSymmetry(t *testing.T) {
	session := raceSession()

	forward, err := DeltaTime(session, "VER", "HAM")
	require.NoError(t, err)
	backward, err := DeltaTime(session, "HAM", "VER")
	require.NoError(t, err)
	require.Equal(t, len(forward), len(backward))
	require.NotEmpty(t, forward)

	for i := range forward {
		require.Equal(t, forward[i].Distance, backward[i].Distance)
		require.InDelta(t,
			float64(forward[i].Delta),
			-float64(backward[i].Delta),
			float64(time.Microsecond),
			"distance %f", forward[i].Distance)
	}
}

func TestDeltaTimeOverlapOnly(t *testing.T) {
	session := raceSession()

	deltas, err := DeltaTime(session, "VER", "HAM")
	require.NoError(t, err)

	// VER covers 0-400, HAM covers 50-450; samples outside 50-400 are
	// truncated, never extrapolated.
	for _, d := range deltas {
		require.GreaterOrEqual(t, d.Distance, 50.0)
		require.LessOrEqual(t, d.Distance, 400.0)
	}
}

func TestDeltaTimeUnknownDriver(t *testing.T) {
	session := raceSession()

	_, err := DeltaTime(session, "VER", "ALO")
	var missingErr *model.MissingDataError
	require.True(t, errors.As(err, &missingErr))
}

func TestMinisectors(t *testing.T) {
	session := &LoadedSession{
		SessionName: "Qualifying",
		Season:      2024,
		Telemetry: map[string]Trace{
			"VER": telemetryTrace(0, 0, 600, 10, 1200, 20, 1800, 30, 2400, 40),
		},
	}

	sectors, err := Minisectors(session, "VER", 24)
	require.NoError(t, err)
	require.Equal(t, []int{1, 7, 13, 19, 24}, sectors)
}

func TestMinisectorsDefaultCount(t *testing.T) {
	session := &LoadedSession{
		SessionName: "Qualifying",
		Season:      2024,
		Telemetry: map[string]Trace{
			"VER": telemetryTrace(0, 0, 2400, 40),
		},
	}

	sectors, err := Minisectors(session, "VER", 0)
	require.NoError(t, err)
	// The sample at max distance clamps into the last segment instead
	// of spilling into a 25th.
	require.Equal(t, []int{1, 24}, sectors)
}

func TestStints(t *testing.T) {
	session := raceSession()

	stints, err := Stints(session)
	require.NoError(t, err)
	require.Equal(t, []Stint{
		{Driver: "VER", Stint: 1, Compound: "SOFT", Laps: 3},
		{Driver: "VER", Stint: 2, Compound: "HARD", Laps: 2},
		{Driver: "HAM", Stint: 1, Compound: "MEDIUM", Laps: 3},
	}, stints)

	// Per-stint lap counts sum back to each driver's total laps.
	perDriver := map[string]int{}
	for _, stint := range stints {
		perDriver[stint.Driver] += stint.Laps
	}
	totals := map[string]int{}
	for _, lap := range session.Laps() {
		totals[lap.Driver]++
	}
	require.Equal(t, totals, perDriver)
}

func TestPositionChanges(t *testing.T) {
	session := raceSession()

	changes, err := PositionChanges(session)
	require.NoError(t, err)
	require.Equal(t, []PositionChange{
		{Driver: "VER", Grid: 3, Finish: 1, Diff: 2},
		{Driver: "HAM", Grid: 1, Finish: 2, Diff: -1},
		{Driver: "LEC", Grid: 2, Finish: 5, Diff: -3},
	}, changes)
}

func TestPositionChangesRaceOnly(t *testing.T) {
	session := raceSession()
	session.SessionName = "Qualifying"

	_, err := PositionChanges(session)
	var missingErr *model.MissingDataError
	require.True(t, errors.As(err, &missingErr))
}

func TestAverageDelta(t *testing.T) {
	session := raceSession()

	deltas, err := AverageDelta(session)
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	// Valid laps: VER 91s and 92s, HAM 93s and 92s; session mean 92s.
	require.Equal(t, "VER", deltas[0].Driver)
	require.Equal(t, 91*time.Second+500*time.Millisecond, deltas[0].Mean)
	require.Equal(t, -500*time.Millisecond, deltas[0].Delta)
	require.Equal(t, "HAM", deltas[1].Driver)
	require.Equal(t, 92*time.Second+500*time.Millisecond, deltas[1].Mean)
	require.Equal(t, 500*time.Millisecond, deltas[1].Delta)
}

func TestAverageDeltaNoTimedLaps(t *testing.T) {
	session := &LoadedSession{
		SessionName: "Race",
		Season:      2024,
		LapData: []Lap{
			{Driver: "VER", LapNumber: 1, LapTime: 93 * time.Second, PitOut: true},
		},
	}

	_, err := AverageDelta(session)
	var missingErr *model.MissingDataError
	require.True(t, errors.As(err, &missingErr))
}

// Pre-2018 sessions have no lap-level data; every computation refuses
// to produce degraded output.
func TestEraGating(t *testing.T) {
	session := raceSession()
	session.Season = 2016

	var missingErr *model.MissingDataError

	_, err := DeltaTime(session, "VER", "HAM")
	require.True(t, errors.As(err, &missingErr))
	_, err = Minisectors(session, "VER", 24)
	require.True(t, errors.As(err, &missingErr))
	_, err = Stints(session)
	require.True(t, errors.As(err, &missingErr))
	_, err = PositionChanges(session)
	require.True(t, errors.As(err, &missingErr))
	_, err = AverageDelta(session)
	require.True(t, errors.As(err, &missingErr))
	require.Contains(t, missingErr.Error(), "2018")
}
