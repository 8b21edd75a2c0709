package ergast

import (
	"context"
	"sync"

	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

func (c *Client) total(schema string, doc *goquery.Document) (int, error) {
	root, err := findOne(schema, doc.Selection, "mrdata")
	if err != nil {
		return 0, err
	}
	return attrInt(schema, root, "total")
}

// WinEntry is one race win in a driver's career.
type WinEntry struct {
	Race    string
	Circuit string
	Date    string
	Team    string
	Grid    int
	Laps    int
	Time    string
}

// Wins lists every race win for a driver with the career total.
type Wins struct {
	Total int
	Races []WinEntry
}

// DriverWins returns the career race wins for a resolved driver.
func (c *Client) DriverWins(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*Wins, error) {
	const schema = "race-results"
	ctx, span := tracer.Start(ctx, "DriverWins")
	defer span.End()

	reason := "career wins unavailable for " + driver.ID
	doc, err := c.document(ctx, "/drivers/"+driver.ID+"/results/1?limit=300", opts...)
	if err != nil {
		return nil, missing(reason, err)
	}
	total, err := c.total(schema, doc)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &Wins{Total: total}

	var iterErr error
	doc.Find("racetable race").EachWithBreak(func(_ int, race *goquery.Selection) bool {
		result, err := findOne(schema, race, "resultslist result")
		if err != nil {
			iterErr = err
			return false
		}
		grid, err := requireInt(schema, result, "grid")
		if err != nil {
			iterErr = err
			return false
		}
		laps, err := requireInt(schema, result, "laps")
		if err != nil {
			iterErr = err
			return false
		}
		out.Races = append(out.Races, WinEntry{
			Race:    childText(race, "racename"),
			Circuit: childText(race, "circuitname"),
			Date:    childText(race, "date"),
			Team:    childText(result, "constructor name"),
			Grid:    grid,
			Laps:    laps,
			Time:    result.ChildrenFiltered("time").First().Text(),
		})
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}

// PoleEntry is one pole position in a driver's career.
type PoleEntry struct {
	Race    string
	Circuit string
	Date    string
	Team    string
	Q1      string
	Q2      string
	Q3      string
}

// Poles lists every pole position for a driver with the career total.
type Poles struct {
	Total int
	Races []PoleEntry
}

// DriverPoles returns the career pole positions for a resolved driver.
func (c *Client) DriverPoles(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*Poles, error) {
	const schema = "qualifying-results"
	ctx, span := tracer.Start(ctx, "DriverPoles")
	defer span.End()

	reason := "career poles unavailable for " + driver.ID
	doc, err := c.document(ctx, "/drivers/"+driver.ID+"/qualifying/1?limit=300", opts...)
	if err != nil {
		return nil, missing(reason, err)
	}
	total, err := c.total(schema, doc)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &Poles{Total: total}

	var iterErr error
	doc.Find("racetable race").EachWithBreak(func(_ int, race *goquery.Selection) bool {
		result, err := findOne(schema, race, "qualifyinglist qualifyingresult")
		if err != nil {
			iterErr = err
			return false
		}
		out.Races = append(out.Races, PoleEntry{
			Race:    childText(race, "racename"),
			Circuit: childText(race, "circuitname"),
			Date:    childText(race, "date"),
			Team:    childText(result, "constructor name"),
			Q1:      childText(result, "q1"),
			Q2:      childText(result, "q2"),
			Q3:      childText(result, "q3"),
		})
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}

// ChampionshipSeason is one season-ending standing in a driver's
// career.
type ChampionshipSeason struct {
	Season   string
	Position int
	Points   float64
	Wins     int
	Team     string
}

// Championships lists championship-winning seasons with the total.
type Championships struct {
	Total   int
	Seasons []ChampionshipSeason
}

// DriverChampionships returns seasons the driver finished first in the
// championship.
func (c *Client) DriverChampionships(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*Championships, error) {
	return c.driverStandingsHistory(ctx, driver, "/drivers/"+driver.ID+"/driverStandings/1",
		"career championships unavailable for "+driver.ID, opts...)
}

// DriverSeasons returns every season the driver has competed in.
func (c *Client) DriverSeasons(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*Championships, error) {
	return c.driverStandingsHistory(ctx, driver, "/drivers/"+driver.ID+"/driverStandings?limit=100",
		"career seasons unavailable for "+driver.ID, opts...)
}

func (c *Client) driverStandingsHistory(ctx context.Context, driver model.DriverRecord, endpoint, reason string, opts ...FetchOption) (*Championships, error) {
	const schema = "driver-standings"
	ctx, span := tracer.Start(ctx, "driverStandingsHistory")
	defer span.End()

	doc, err := c.document(ctx, endpoint, opts...)
	if err != nil {
		return nil, missing(reason, err)
	}
	total, err := c.total(schema, doc)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &Championships{Total: total}

	var iterErr error
	doc.Find("standingstable standingslist").EachWithBreak(func(_ int, list *goquery.Selection) bool {
		season, err := attr(schema, list, "season")
		if err != nil {
			iterErr = err
			return false
		}
		standing, err := findOne(schema, list, "driverstanding")
		if err != nil {
			iterErr = err
			return false
		}
		position, err := attrInt(schema, standing, "position")
		if err != nil {
			iterErr = err
			return false
		}
		points, err := attrFloat(schema, standing, "points")
		if err != nil {
			iterErr = err
			return false
		}
		wins, err := attrInt(schema, standing, "wins")
		if err != nil {
			iterErr = err
			return false
		}
		out.Seasons = append(out.Seasons, ChampionshipSeason{
			Season:   season,
			Position: position,
			Points:   points,
			Wins:     wins,
			Team:     childText(standing, "constructor name"),
		})
		return true
	})
	if iterErr != nil {
		return nil, missing(reason, iterErr)
	}
	return out, nil
}

// Teams lists every constructor the driver has driven for.
type Teams struct {
	Total int
	Names []string
}

// DriverTeams returns the constructors a driver has driven for.
func (c *Client) DriverTeams(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*Teams, error) {
	const schema = "driver-info"
	ctx, span := tracer.Start(ctx, "DriverTeams")
	defer span.End()

	reason := "career teams unavailable for " + driver.ID
	doc, err := c.document(ctx, "/drivers/"+driver.ID+"/constructors", opts...)
	if err != nil {
		return nil, missing(reason, err)
	}
	total, err := c.total(schema, doc)
	if err != nil {
		return nil, missing(reason, err)
	}
	out := &Teams{Total: total}
	doc.Find("constructortable constructor").Each(func(_ int, node *goquery.Selection) {
		out.Names = append(out.Names, childText(node, "name"))
	})
	return out, nil
}

// Career issues the five independent career queries concurrently and
// merges them once all have finished. Each goroutine owns its own
// result slot; merging happens only after the join. Any single failure
// fails the whole aggregate, a partial summary would silently drop a
// category.
func (c *Client) Career(ctx context.Context, driver model.DriverRecord, opts ...FetchOption) (*model.CareerSummary, error) {
	ctx, span := tracer.Start(ctx, "Career")
	defer span.End()

	var (
		wins    *Wins
		poles   *Poles
		champs  *Championships
		seasons *Championships
		teams   *Teams
	)

	var errList []error
	errLock := sync.Mutex{}
	wg := sync.WaitGroup{}

	run := func(fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				errLock.Lock()
				defer errLock.Unlock()
				errList = append(errList, err)
			}
		}()
	}

	run(func() (err error) { wins, err = c.DriverWins(ctx, driver, opts...); return })
	run(func() (err error) { poles, err = c.DriverPoles(ctx, driver, opts...); return })
	run(func() (err error) { champs, err = c.DriverChampionships(ctx, driver, opts...); return })
	run(func() (err error) { seasons, err = c.DriverSeasons(ctx, driver, opts...); return })
	run(func() (err error) { teams, err = c.DriverTeams(ctx, driver, opts...); return })

	wg.Wait()

	if len(errList) > 0 {
		return nil, missing("career summary unavailable for "+driver.ID, errList[0])
	}

	champYears := make([]string, 0, len(champs.Seasons))
	for _, s := range champs.Seasons {
		champYears = append(champYears, s.Season)
	}
	seasonYears := make([]string, 0, len(seasons.Seasons))
	for _, s := range seasons.Seasons {
		seasonYears = append(seasonYears, s.Season)
	}

	return &model.CareerSummary{
		Driver: driver,
		Wins:   wins.Total,
		Poles:  poles.Total,
		Championships: model.CareerTotals{
			Total: champs.Total,
			Items: champYears,
		},
		Seasons: model.CareerTotals{
			Total: seasons.Total,
			Items: seasonYears,
		},
		Teams: model.CareerTotals{
			Total: teams.Total,
			Items: teams.Names,
		},
	}, nil
}
