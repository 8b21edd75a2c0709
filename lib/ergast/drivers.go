package ergast

import (
	"context"

	"f1stats-backend/lib/model"
)

// AllDrivers fetches the bulk driver listing (keyed-document form).
// This backs the identifier resolver and is refreshed only by an
// explicit out-of-band update.
func (c *Client) AllDrivers(ctx context.Context, opts ...FetchOption) ([]model.DriverRecord, error) {
	ctx, span := tracer.Start(ctx, "AllDrivers")
	defer span.End()

	var body struct {
		MRData struct {
			DriverTable struct {
				Drivers []model.DriverRecord `json:"Drivers"`
			} `json:"DriverTable"`
		} `json:"MRData"`
	}
	err := c.keyed(ctx, "/drivers.json?limit=1000", &body, opts...)
	if err != nil {
		return nil, missing("driver listing unavailable", err)
	}
	if len(body.MRData.DriverTable.Drivers) == 0 {
		return nil, missing("driver listing unavailable", nil)
	}
	return body.MRData.DriverTable.Drivers, nil
}

// Driver fetches a single driver document by canonical id.
func (c *Client) Driver(ctx context.Context, id string, opts ...FetchOption) (model.DriverRecord, error) {
	const schema = "driver-info"
	ctx, span := tracer.Start(ctx, "Driver")
	defer span.End()

	doc, err := c.document(ctx, "/drivers/"+id, opts...)
	if err != nil {
		return model.DriverRecord{}, missing("driver info unavailable for "+id, err)
	}
	node, err := findOne(schema, doc.Selection, "drivertable driver")
	if err != nil {
		return model.DriverRecord{}, missing("driver info unavailable for "+id, err)
	}
	record, err := driverFromNode(schema, node)
	if err != nil {
		return model.DriverRecord{}, missing("driver info unavailable for "+id, err)
	}
	return record, nil
}
