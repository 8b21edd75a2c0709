package model

import "time"

// DriverRecord is the canonical identity of a driver, loaded once per
// process from the bulk /drivers listing and treated as immutable.
type DriverRecord struct {
	ID              string `json:"driverId"`
	Code            string `json:"code"`
	PermanentNumber string `json:"permanentNumber"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Nationality     string `json:"nationality"`
	URL             string `json:"url"`
}

func (d DriverRecord) FullName() string {
	return d.GivenName + " " + d.FamilyName
}

// Age returns the driver's age derived from the year of birth, or 0 if
// the birth date is missing or in the future.
func (d DriverRecord) Age(now time.Time) int {
	if len(d.DateOfBirth) < 4 {
		return 0
	}
	var year int
	for _, c := range d.DateOfBirth[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	if now.Year() < year {
		return 0
	}
	return now.Year() - year
}

// StandingEntry is one ranked championship entry. Driver is set for
// driver standings, Team for constructor standings. SeasonGrid rows
// carry both.
type StandingEntry struct {
	Position int
	Points   float64
	Wins     int
	Driver   *DriverRecord
	Team     string
}

// RaceEvent identifies a race weekend. Round is unique within a season.
type RaceEvent struct {
	Season  string
	Round   int
	Name    string
	Date    string
	Time    string
	URL     string
	Circuit string
	Country string
}

// FastestLapEntry is the fastest-lap record attached to a race result.
type FastestLapEntry struct {
	Rank     int
	Driver   string
	Lap      int
	Time     string
	SpeedKph float64
}

// ResultEntry is a classified race result. FinishTime is nil whenever
// Status is anything other than "Finished".
type ResultEntry struct {
	Position   int
	Driver     *DriverRecord
	Team       string
	Laps       int
	Grid       int
	FinishTime *string
	Status     string
	Points     float64
	FastestLap *FastestLapEntry
}

// QualifyingEntry holds the per-session qualifying times. Q2 and Q3 are
// empty when the driver did not take part in that segment.
type QualifyingEntry struct {
	Position int
	Driver   *DriverRecord
	Team     string
	Q1       string
	Q2       string
	Q3       string
}

// LapRecord is one driver's timing for one race lap.
type LapRecord struct {
	Lap      int
	DriverID string
	Position int
	Time     time.Duration
}

// PitStopEntry is a single pit stop for a driver.
type PitStopEntry struct {
	DriverID string
	Stop     int
	Lap      int
	Time     string
	Duration time.Duration
}

// CareerTotals is a count with the supporting list of seasons (or team
// names for the Teams category).
type CareerTotals struct {
	Total int
	Items []string
}

// CareerSummary aggregates the five independent career queries for a
// single driver.
type CareerSummary struct {
	Driver        DriverRecord
	Wins          int
	Poles         int
	Championships CareerTotals
	Seasons       CareerTotals
	Teams         CareerTotals
}
