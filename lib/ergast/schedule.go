package ergast

import (
	"context"
	"fmt"
	"time"

	"f1stats-backend/lib/model"
	"f1stats-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// Schedule is the full race calendar for a season.
type Schedule struct {
	Season string
	Events []model.RaceEvent
}

// Schedule returns the current season's race calendar.
func (c *Client) Schedule(ctx context.Context, opts ...FetchOption) (*Schedule, error) {
	const schema = "race-schedule"
	ctx, span := tracer.Start(ctx, "Schedule")
	defer span.End()

	doc, err := c.document(ctx, "/current", opts...)
	if err != nil {
		return nil, missing("race schedule unavailable", err)
	}

	table, err := findOne(schema, doc.Selection, "racetable")
	if err != nil {
		return nil, missing("race schedule unavailable", err)
	}
	out := &Schedule{Season: table.AttrOr("season", "")}

	seenRounds := map[int]bool{}
	var iterErr error
	table.Find("race").EachWithBreak(func(_ int, race *goquery.Selection) bool {
		event, err := raceEvent(schema, race)
		if err != nil {
			iterErr = err
			return false
		}
		if seenRounds[event.Round] {
			iterErr = &model.NormalizationError{
				Schema: schema,
				Path:   "race",
				Cause:  fmt.Errorf("duplicate round %d in season %s", event.Round, event.Season),
			}
			return false
		}
		seenRounds[event.Round] = true
		if event.Season == "" {
			event.Season = out.Season
		}
		out.Events = append(out.Events, event)
		return true
	})
	if iterErr != nil {
		return nil, missing("race schedule unavailable", iterErr)
	}
	return out, nil
}

// NextRace is the next event on the calendar with a countdown computed
// at request time.
type NextRace struct {
	Event     model.RaceEvent
	Countdown time.Duration
}

// NextRace returns the next race on the current calendar.
func (c *Client) NextRace(ctx context.Context, opts ...FetchOption) (*NextRace, error) {
	const schema = "race-schedule"
	ctx, span := tracer.Start(ctx, "NextRace")
	defer span.End()

	doc, err := c.document(ctx, "/current/next", opts...)
	if err != nil {
		return nil, missing("next race unavailable", err)
	}

	race, err := findOne(schema, doc.Selection, "race")
	if err != nil {
		return nil, missing("next race unavailable", err)
	}
	event, err := raceEvent(schema, race)
	if err != nil {
		return nil, missing("next race unavailable", err)
	}

	out := &NextRace{Event: event}
	start, err := time.Parse("2006-01-02 15:04:05Z", event.Date+" "+event.Time)
	if err == nil {
		countdown := start.Sub(timezone.Now())
		if countdown > 0 {
			out.Countdown = countdown
		}
	}
	return out, nil
}
