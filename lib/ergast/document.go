package ergast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"f1stats-backend/lib/model"

	"github.com/PuerkitoBio/goquery"
)

// document fetches an endpoint and parses the XML tag-tree. The parser
// lowercases every tag and attribute name, which is what makes tag
// lookup case-insensitive across upstream API versions.
func (c *Client) document(ctx context.Context, endpoint string, opts ...FetchOption) (*goquery.Document, error) {
	p, err := c.fetch(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}
	if !p.isXML() {
		return nil, &model.NormalizationError{
			Schema: endpoint,
			Path:   "content-type",
			Cause:  fmt.Errorf("expected application/xml, got %q", p.contentType),
		}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.body))
	if err != nil {
		return nil, &model.NormalizationError{Schema: endpoint, Path: "document", Cause: err}
	}
	return doc, nil
}

// keyed fetches an endpoint and decodes the JSON keyed-document into
// out.
func (c *Client) keyed(ctx context.Context, endpoint string, out any, opts ...FetchOption) error {
	p, err := c.fetch(ctx, endpoint, opts...)
	if err != nil {
		return err
	}
	if !p.isJSON() {
		return &model.NormalizationError{
			Schema: endpoint,
			Path:   "content-type",
			Cause:  fmt.Errorf("expected application/json, got %q", p.contentType),
		}
	}
	if err := json.Unmarshal(p.body, out); err != nil {
		return &model.NormalizationError{Schema: endpoint, Path: "document", Cause: err}
	}
	return nil
}

// findOne returns the first node matching selector, or a
// NormalizationError naming the missing path. Extraction rules use this
// for every required node so a shape mismatch is rejected instead of
// being read speculatively.
func findOne(schema string, root *goquery.Selection, selector string) (*goquery.Selection, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return nil, &model.NormalizationError{Schema: schema, Path: selector, Cause: fmt.Errorf("node not found")}
	}
	return sel, nil
}

func attr(schema string, sel *goquery.Selection, name string) (string, error) {
	v, ok := sel.Attr(name)
	if !ok {
		return "", &model.NormalizationError{Schema: schema, Path: "@" + name, Cause: fmt.Errorf("attribute not found")}
	}
	return v, nil
}

func attrInt(schema string, sel *goquery.Selection, name string) (int, error) {
	v, err := attr(schema, sel, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &model.NormalizationError{Schema: schema, Path: "@" + name, Cause: err}
	}
	return n, nil
}

func attrFloat(schema string, sel *goquery.Selection, name string) (float64, error) {
	v, err := attr(schema, sel, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &model.NormalizationError{Schema: schema, Path: "@" + name, Cause: err}
	}
	return f, nil
}

// childText returns the trimmed text of the first descendant matching
// tag, or "" when absent. Optional fields go through this.
func childText(sel *goquery.Selection, tag string) string {
	return strings.TrimSpace(sel.Find(tag).First().Text())
}

func requireText(schema string, sel *goquery.Selection, tag string) (string, error) {
	found := sel.Find(tag).First()
	if found.Length() == 0 {
		return "", &model.NormalizationError{Schema: schema, Path: tag, Cause: fmt.Errorf("node not found")}
	}
	return strings.TrimSpace(found.Text()), nil
}

func requireInt(schema string, sel *goquery.Selection, tag string) (int, error) {
	v, err := requireText(schema, sel, tag)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &model.NormalizationError{Schema: schema, Path: tag, Cause: err}
	}
	return n, nil
}

// parseDuration converts timing strings such as "1:30.202", "22.539"
// or "1:02:03.456" into a duration. Durations in race data are always
// non-negative.
func parseDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("malformed timing value %q", s)
	}
	whole, frac, _ := strings.Cut(parts[len(parts)-1], ".")
	secs, err := strconv.Atoi(whole)
	if err != nil || secs < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("malformed timing value %q", s)
	}
	total := time.Duration(secs) * time.Second
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		n, err := strconv.Atoi(frac)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed timing value %q", s)
		}
		for i := len(frac); i < 9; i++ {
			n *= 10
		}
		total += time.Duration(n)
	}
	unit := time.Minute
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed timing value %q", s)
		}
		total += time.Duration(n) * unit
		unit *= 60
	}
	return total, nil
}
