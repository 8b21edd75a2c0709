package ergast

import (
	"context"
	"fmt"

	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

// LapTimes holds every timed lap of a race keyed by lap number, one
// record per driver per lap.
type LapTimes struct {
	Event model.RaceEvent
	Laps  map[int][]model.LapRecord
}

// Laps returns the full lap-by-lap timing table for a race.
func (c *Client) Laps(ctx context.Context, season, round string, opts ...FetchOption) (*LapTimes, error) {
	const schema = "laps"
	ctx, span := tracer.Start(ctx, "Laps")
	defer span.End()

	reason := fmt.Sprintf("lap times unavailable for %s round %s", season, round)
	doc, err := c.document(ctx, fmt.Sprintf("/%s/%s/laps?limit=2000", season, round), opts...)
	if err != nil {
		return nil, missing(reason, err)
	}

	race, err := findOne(schema, doc.Selection, "race")
	if err != nil {
		return nil, missing(reason, err)
	}
	event, err := raceEvent(schema, race)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &LapTimes{Event: event, Laps: map[int][]model.LapRecord{}}

	seen := map[[2]interface{}]bool{}
	var iterErr error
	race.Find("lapslist lap").EachWithBreak(func(_ int, lap *goquery.Selection) bool {
		number, err := attrInt(schema, lap, "number")
		if err != nil {
			iterErr = err
			return false
		}
		// The parser keeps self-closed elements open until the lap tag
		// closes, so later timings can end up nested inside the first.
		// Find still reaches them all.
		lap.Find("timing").EachWithBreak(func(_ int, timing *goquery.Selection) bool {
			record, err := lapRecord(schema, number, timing)
			if err != nil {
				iterErr = err
				return false
			}
			key := [2]interface{}{number, record.DriverID}
			if seen[key] {
				iterErr = &model.NormalizationError{
					Schema: schema,
					Path:   "timing",
					Cause:  fmt.Errorf("duplicate timing for driver %s on lap %d", record.DriverID, number),
				}
				return false
			}
			seen[key] = true
			out.Laps[number] = append(out.Laps[number], record)
			return true
		})
		return iterErr == nil
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}

// DriverLapTimes holds one driver's laps for a race in running order.
type DriverLapTimes struct {
	Driver model.DriverRecord
	Event  model.RaceEvent
	Laps   []model.LapRecord
}

// DriverLaps resolves the identifier and returns that driver's lap
// times for a race.
func (c *Client) DriverLaps(ctx context.Context, season, round, identifier string, opts ...FetchOption) (*DriverLapTimes, error) {
	const schema = "laps"
	ctx, span := tracer.Start(ctx, "DriverLaps")
	defer span.End()

	driver, err := c.resolve(identifier)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("lap times unavailable for %s in %s round %s", driver.ID, season, round)
	doc, err := c.document(ctx, fmt.Sprintf("/%s/%s/drivers/%s/laps?limit=100", season, round, driver.ID), opts...)
	if err != nil {
		return nil, missing(reason, err)
	}

	race, err := findOne(schema, doc.Selection, "race")
	if err != nil {
		return nil, missing(reason, err)
	}
	event, err := raceEvent(schema, race)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &DriverLapTimes{Driver: driver, Event: event}

	var iterErr error
	race.Find("lapslist lap").EachWithBreak(func(_ int, lap *goquery.Selection) bool {
		number, err := attrInt(schema, lap, "number")
		if err != nil {
			iterErr = err
			return false
		}
		timing := lap.Find("timing").First()
		if timing.Length() == 0 {
			iterErr = &model.NormalizationError{
				Schema: schema,
				Path:   "timing",
				Cause:  fmt.Errorf("lap %d has no timing", number),
			}
			return false
		}
		record, err := lapRecord(schema, number, timing)
		if err != nil {
			iterErr = err
			return false
		}
		out.Laps = append(out.Laps, record)
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}

func lapRecord(schema string, number int, timing *goquery.Selection) (model.LapRecord, error) {
	driverID, err := attr(schema, timing, "driverid")
	if err != nil {
		return model.LapRecord{}, err
	}
	position, err := attrInt(schema, timing, "position")
	if err != nil {
		return model.LapRecord{}, err
	}
	raw, err := attr(schema, timing, "time")
	if err != nil {
		return model.LapRecord{}, err
	}
	lapTime, err := parseDuration(raw)
	if err != nil {
		return model.LapRecord{}, &model.NormalizationError{Schema: schema, Path: "timing@time", Cause: err}
	}
	return model.LapRecord{
		Lap:      number,
		DriverID: driverID,
		Position: position,
		Time:     lapTime,
	}, nil
}
