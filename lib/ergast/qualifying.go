package ergast

import (
	"context"
	"fmt"

	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

// QualifyingResults is the qualifying classification for one round. Q2
// and Q3 stay empty for drivers who did not reach those segments.
type QualifyingResults struct {
	Event   model.RaceEvent
	Entries []model.QualifyingEntry
}

// QualifyingResults returns qualifying times per driver for a round.
func (c *Client) QualifyingResults(ctx context.Context, season, round string, opts ...FetchOption) (*QualifyingResults, error) {
	const schema = "qualifying-results"
	ctx, span := tracer.Start(ctx, "QualifyingResults")
	defer span.End()

	reason := fmt.Sprintf("qualifying results unavailable for %s round %s", season, round)
	doc, err := c.document(ctx, fmt.Sprintf("/%s/%s/qualifying", season, round), opts...)
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
	out := &QualifyingResults{Event: event}

	var iterErr error
	race.Find("qualifyinglist qualifyingresult").EachWithBreak(func(_ int, res *goquery.Selection) bool {
		position, err := attrInt(schema, res, "position")
		if err != nil {
			iterErr = err
			return false
		}
		driverNode, err := findOne(schema, res, "driver")
		if err != nil {
			iterErr = err
			return false
		}
		driver, err := c.canonicalDriver(schema, driverNode)
		if err != nil {
			iterErr = err
			return false
		}
		out.Entries = append(out.Entries, model.QualifyingEntry{
			Position: position,
			Driver:   driver,
			Team:     childText(res, "constructor name"),
			Q1:       childText(res, "q1"),
			Q2:       childText(res, "q2"),
			Q3:       childText(res, "q3"),
		})
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}
