package ergast

import (
	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

// missing wraps fetch and normalization failures into the
// MissingDataError surfaced at the package boundary. The cause chain is
// preserved so callers can still tell an unavailable upstream from a
// shape mismatch.
func missing(reason string, err error) error {
	return model.MissingData(reason, err)
}

// driverFromNode extracts the inline driver element carried by
// standings, results and qualifying documents.
func driverFromNode(schema string, sel *goquery.Selection) (model.DriverRecord, error) {
	id, err := attr(schema, sel, "driverid")
	if err != nil {
		return model.DriverRecord{}, err
	}
	return model.DriverRecord{
		ID:              id,
		Code:            sel.AttrOr("code", ""),
		URL:             sel.AttrOr("url", ""),
		PermanentNumber: childText(sel, "permanentnumber"),
		GivenName:       childText(sel, "givenname"),
		FamilyName:      childText(sel, "familyname"),
		DateOfBirth:     childText(sel, "dateofbirth"),
		Nationality:     childText(sel, "nationality"),
	}, nil
}

// canonicalDriver funnels an inline driver reference through the
// resolver so records returned upward carry the canonical identity. An
// inline record not present in the bulk listing yet (rookie mid-season)
// is passed through as parsed.
func (c *Client) canonicalDriver(schema string, sel *goquery.Selection) (*model.DriverRecord, error) {
	parsed, err := driverFromNode(schema, sel)
	if err != nil {
		return nil, err
	}
	if c.resolver != nil {
		resolved, err := c.resolver.Resolve(parsed.ID)
		if err == nil {
			return &resolved, nil
		}
	}
	return &parsed, nil
}

// raceEvent extracts the shared race header used by results,
// qualifying, laps and pit stop documents.
func raceEvent(schema string, race *goquery.Selection) (model.RaceEvent, error) {
	season, err := attr(schema, race, "season")
	if err != nil {
		return model.RaceEvent{}, err
	}
	round, err := attrInt(schema, race, "round")
	if err != nil {
		return model.RaceEvent{}, err
	}
	name, err := requireText(schema, race, "racename")
	if err != nil {
		return model.RaceEvent{}, err
	}
	circuit, err := requireText(schema, race, "circuitname")
	if err != nil {
		return model.RaceEvent{}, err
	}
	return model.RaceEvent{
		Season:  season,
		Round:   round,
		Name:    name,
		URL:     race.AttrOr("url", ""),
		Circuit: circuit,
		Country: childText(race, "country"),
		Date:    childText(race, "date"),
		Time:    childText(race, "time"),
	}, nil
}
