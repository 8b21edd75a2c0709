package ergast

import (
	"context"
	"fmt"
	"strconv"

	"f1stats-backend/lib/model"
	"f1stats-backend/lib/rank"

	"github.com/PuerkitoBio/goquery"
)

// RaceResults is the classified result of one race, including the
// ranked fastest-lap timings when the era provides them.
type RaceResults struct {
	Event       model.RaceEvent
	Results     []model.ResultEntry
	FastestLaps []model.FastestLapEntry
}

// RaceResults returns the race classification for a round. `round` may
// be "last" and `season` may be "current".
func (c *Client) RaceResults(ctx context.Context, season, round string, opts ...FetchOption) (*RaceResults, error) {
	const schema = "race-results"
	ctx, span := tracer.Start(ctx, "RaceResults")
	defer span.End()

	doc, err := c.document(ctx, fmt.Sprintf("/%s/%s/results", season, round), opts...)
	if err != nil {
		return nil, missing(fmt.Sprintf("race results unavailable for %s round %s", season, round), err)
	}

	race, err := findOne(schema, doc.Selection, "race")
	if err != nil {
		return nil, missing(fmt.Sprintf("race results unavailable for %s round %s", season, round), err)
	}
	event, err := raceEvent(schema, race)
	if err != nil {
		return nil, missing(fmt.Sprintf("race results unavailable for %s round %s", season, round), err)
	}
	out := &RaceResults{Event: event}

	var iterErr error
	race.Find("resultslist result").EachWithBreak(func(_ int, res *goquery.Selection) bool {
		entry, fastest, err := c.resultEntry(schema, res)
		if err != nil {
			iterErr = err
			return false
		}
		out.Results = append(out.Results, entry)
		if fastest != nil {
			out.FastestLaps = append(out.FastestLaps, *fastest)
		}
		return true
	})
	if iterErr != nil {
		return nil, missing(fmt.Sprintf("race results unavailable for %s round %s", season, round), iterErr)
	}
	return out, nil
}

func (c *Client) resultEntry(schema string, res *goquery.Selection) (model.ResultEntry, *model.FastestLapEntry, error) {
	position, err := attrInt(schema, res, "position")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	points, err := attrFloat(schema, res, "points")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	driverNode, err := findOne(schema, res, "driver")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	driver, err := c.canonicalDriver(schema, driverNode)
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	laps, err := requireInt(schema, res, "laps")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	grid, err := requireInt(schema, res, "grid")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	status, err := requireText(schema, res, "status")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}

	// The finish time and the fastest-lap time share the <time> tag
	// name. Only a <time> that is a direct child of the result is a
	// finish time; matching by first occurrence would misattribute the
	// fastest lap whenever the finish time is absent (DNF).
	var finishTime *string
	if status == "Finished" {
		if t := res.ChildrenFiltered("time").First(); t.Length() > 0 {
			v := t.Text()
			finishTime = &v
		}
	}

	entry := model.ResultEntry{
		Position:   position,
		Driver:     driver,
		Team:       childText(res, "constructor name"),
		Laps:       laps,
		Grid:       grid,
		FinishTime: finishTime,
		Status:     status,
		Points:     points,
	}

	fastestNode := res.ChildrenFiltered("fastestlap").First()
	if fastestNode.Length() == 0 {
		return entry, nil, nil
	}
	rank, err := attrInt(schema, fastestNode, "rank")
	if err != nil {
		return model.ResultEntry{}, nil, err
	}
	lap, _ := strconv.Atoi(fastestNode.AttrOr("lap", "0"))
	speed, _ := strconv.ParseFloat(childText(fastestNode, "averagespeed"), 64)
	fastest := &model.FastestLapEntry{
		Rank:     rank,
		Driver:   driver.Code,
		Lap:      lap,
		Time:     childText(fastestNode, "time"),
		SpeedKph: speed,
	}
	entry.FastestLap = fastest
	return entry, fastest, nil
}

// BestLaps is the ranked fastest-lap view of a race.
type BestLaps struct {
	Event   model.RaceEvent
	Timings []model.FastestLapEntry
}

// BestLaps returns each driver's best lap for a race, ranked.
func (c *Client) BestLaps(ctx context.Context, season, round string, opts ...FetchOption) (*BestLaps, error) {
	ctx, span := tracer.Start(ctx, "BestLaps")
	defer span.End()

	results, err := c.RaceResults(ctx, season, round, opts...)
	if err != nil {
		return nil, err
	}
	return &BestLaps{
		Event: results.Event,
		Timings: rank.Rank(results.FastestLaps, func(a, b model.FastestLapEntry) int {
			return a.Rank - b.Rank
		}),
	}, nil
}
