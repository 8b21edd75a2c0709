package ergast

import (
	"context"
	"fmt"

	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

// PitStops holds every pit stop of a race in upstream order.
type PitStops struct {
	Event model.RaceEvent
	Stops []model.PitStopEntry
}

// PitStops returns the pit stop log for a race.
func (c *Client) PitStops(ctx context.Context, season, round string, opts ...FetchOption) (*PitStops, error) {
	const schema = "pit-stops"
	ctx, span := tracer.Start(ctx, "PitStops")
	defer span.End()

	reason := fmt.Sprintf("pit stops unavailable for %s round %s", season, round)
	doc, err := c.document(ctx, fmt.Sprintf("/%s/%s/pitstops?limit=100", season, round), opts...)
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
	out := &PitStops{Event: event}

	var iterErr error
	race.Find("pitstopslist pitstop").EachWithBreak(func(_ int, stop *goquery.Selection) bool {
		driverID, err := attr(schema, stop, "driverid")
		if err != nil {
			iterErr = err
			return false
		}
		stopNo, err := attrInt(schema, stop, "stop")
		if err != nil {
			iterErr = err
			return false
		}
		lap, err := attrInt(schema, stop, "lap")
		if err != nil {
			iterErr = err
			return false
		}
		rawDuration, err := attr(schema, stop, "duration")
		if err != nil {
			iterErr = err
			return false
		}
		duration, err := parseDuration(rawDuration)
		if err != nil {
			iterErr = &model.NormalizationError{Schema: schema, Path: "pitstop@duration", Cause: err}
			return false
		}
		out.Stops = append(out.Stops, model.PitStopEntry{
			DriverID: driverID,
			Stop:     stopNo,
			Lap:      lap,
			Time:     stop.AttrOr("time", ""),
			Duration: duration,
		})
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}
