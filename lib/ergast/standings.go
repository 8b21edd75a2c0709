package ergast

import (
	"context"
	"fmt"

	"f1stats-backend/lib/model"
	"f1stats-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// Standings is a season championship table for drivers or constructors.
// Round is the latest round the standings account for.
type Standings struct {
	Season  string
	Round   string
	Entries []model.StandingEntry
}

// DriverStandings returns the driver championship standings for a
// season ("current" is accepted).
func (c *Client) DriverStandings(ctx context.Context, season string, opts ...FetchOption) (*Standings, error) {
	const schema = "driver-standings"
	ctx, span := tracer.Start(ctx, "DriverStandings")
	defer span.End()

	doc, err := c.document(ctx, "/"+season+"/driverStandings", opts...)
	if err != nil {
		return nil, missing("driver standings unavailable for "+season, err)
	}

	list, err := findOne(schema, doc.Selection, "standingslist")
	if err != nil {
		return nil, missing("driver standings unavailable for "+season, err)
	}
	out := &Standings{
		Season: list.AttrOr("season", season),
		Round:  list.AttrOr("round", ""),
	}

	var iterErr error
	list.Find("driverstanding").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		entry, err := c.driverStandingEntry(schema, s)
		if err != nil {
			iterErr = err
			return false
		}
		out.Entries = append(out.Entries, entry)
		return true
	})
	if iterErr != nil {
		return nil, missing("driver standings unavailable for "+season, iterErr)
	}
	return out, nil
}

// ConstructorStandings returns the constructor championship standings
// for a season.
func (c *Client) ConstructorStandings(ctx context.Context, season string, opts ...FetchOption) (*Standings, error) {
	const schema = "constructor-standings"
	ctx, span := tracer.Start(ctx, "ConstructorStandings")
	defer span.End()

	doc, err := c.document(ctx, "/"+season+"/constructorStandings", opts...)
	if err != nil {
		return nil, missing("constructor standings unavailable for "+season, err)
	}

	list, err := findOne(schema, doc.Selection, "standingslist")
	if err != nil {
		return nil, missing("constructor standings unavailable for "+season, err)
	}
	out := &Standings{
		Season: list.AttrOr("season", season),
		Round:  list.AttrOr("round", ""),
	}

	var iterErr error
	list.Find("constructorstanding").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		position, err := attrInt(schema, s, "position")
		if err != nil {
			iterErr = err
			return false
		}
		points, err := attrFloat(schema, s, "points")
		if err != nil {
			iterErr = err
			return false
		}
		wins, err := attrInt(schema, s, "wins")
		if err != nil {
			iterErr = err
			return false
		}
		team, err := requireText(schema, s, "constructor name")
		if err != nil {
			iterErr = err
			return false
		}
		out.Entries = append(out.Entries, model.StandingEntry{
			Position: position,
			Points:   points,
			Wins:     wins,
			Team:     team,
		})
		return true
	})
	if iterErr != nil {
		return nil, missing("constructor standings unavailable for "+season, iterErr)
	}
	return out, nil
}

func (c *Client) driverStandingEntry(schema string, s *goquery.Selection) (model.StandingEntry, error) {
	position, err := attrInt(schema, s, "position")
	if err != nil {
		return model.StandingEntry{}, err
	}
	points, err := attrFloat(schema, s, "points")
	if err != nil {
		return model.StandingEntry{}, err
	}
	wins, err := attrInt(schema, s, "wins")
	if err != nil {
		return model.StandingEntry{}, err
	}
	driverNode, err := findOne(schema, s, "driver")
	if err != nil {
		return model.StandingEntry{}, err
	}
	driver, err := c.canonicalDriver(schema, driverNode)
	if err != nil {
		return model.StandingEntry{}, err
	}
	return model.StandingEntry{
		Position: position,
		Points:   points,
		Wins:     wins,
		Driver:   driver,
		Team:     childText(s, "constructor name"),
	}, nil
}

// GridEntry is one row of the season grid view built from the driver
// standings document.
type GridEntry struct {
	Code        string
	Number      string
	Name        string
	Age         int
	Nationality string
	Team        string
}

// SeasonGrid returns every driver and team on the grid for a season.
func (c *Client) SeasonGrid(ctx context.Context, season string, opts ...FetchOption) ([]GridEntry, error) {
	const schema = "driver-standings"
	ctx, span := tracer.Start(ctx, "SeasonGrid")
	defer span.End()

	standings, err := c.DriverStandings(ctx, season, opts...)
	if err != nil {
		return nil, err
	}

	grid := make([]GridEntry, 0, len(standings.Entries))
	for _, entry := range standings.Entries {
		if entry.Driver == nil {
			return nil, missing(
				"grid unavailable for "+season,
				fmt.Errorf("%s: standing entry without driver", schema),
			)
		}
		grid = append(grid, GridEntry{
			Code:        entry.Driver.Code,
			Number:      entry.Driver.PermanentNumber,
			Name:        entry.Driver.FullName(),
			Age:         entry.Driver.Age(timezone.Now()),
			Nationality: entry.Driver.Nationality,
			Team:        entry.Team,
		})
	}
	return grid, nil
}
