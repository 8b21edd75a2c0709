// Package stats computes lap and telemetry statistics over a loaded
// session handle supplied by an external session-data provider.
package stats

import (
	"fmt"
	"time"

	"f1stats-backend/lib/model"
)

// Lap-level and telemetry data only exists from the 2018 season on.
const lapDataFirstSeason = 2018

// TelemetrySample is one point of a car's telemetry trace, ordered by
// distance into the lap.
type TelemetrySample struct {
	Distance float64
	Time     time.Duration
	Speed    float64
	Throttle float64
	Brake    bool
	Gear     int
}

// Trace is a single lap's telemetry, monotonically increasing in
// Distance.
type Trace []TelemetrySample

// Lap is one timed lap by one driver.
type Lap struct {
	Driver    string
	LapNumber int
	LapTime   time.Duration
	Compound  string
	PitIn     bool
	PitOut    bool
}

// SessionResult is a driver's classified outcome for a session.
type SessionResult struct {
	Driver       string
	GridPosition int
	Position     int
	Status       string
}

// Session is the loaded-session handle every computation runs against.
// Implementations are provided by the session-data source; the
// computations never load data themselves.
type Session interface {
	Name() string
	SupportsLapData() bool
	Laps() []Lap
	Results() []SessionResult
	CarData(driver string) (Trace, error)
}

// LoadedSession is an in-memory Session, suitable both for adapting an
// external provider's payload and for tests.
type LoadedSession struct {
	SessionName string
	Season      int
	LapData     []Lap
	ResultData  []SessionResult
	Telemetry   map[string]Trace
}

var _ Session = (*LoadedSession)(nil)

func (s *LoadedSession) Name() string {
	return s.SessionName
}

func (s *LoadedSession) SupportsLapData() bool {
	return s.Season >= lapDataFirstSeason
}

func (s *LoadedSession) Laps() []Lap {
	return s.LapData
}

func (s *LoadedSession) Results() []SessionResult {
	return s.ResultData
}

func (s *LoadedSession) CarData(driver string) (Trace, error) {
	trace, ok := s.Telemetry[driver]
	if !ok {
		return nil, model.MissingData(
			fmt.Sprintf("no telemetry recorded for %s", driver), nil)
	}
	return trace, nil
}

func requireLapData(session Session) error {
	if !session.SupportsLapData() {
		return model.MissingData(
			fmt.Sprintf("lap data not supported before %d", lapDataFirstSeason), nil)
	}
	return nil
}
