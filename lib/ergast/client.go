package ergast

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"f1stats-backend/lib/fetchcache"
	"f1stats-backend/lib/model"
	"f1stats-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/ergast")

const DefaultBaseURL = "https://ergast.com/api/f1"

// ErrUnavailable is returned by the fetch layer for transport failures,
// timeouts and non-2xx statuses. Callers translate it into a
// MissingDataError so "no data" stays distinguishable from "malformed
// data".
var ErrUnavailable = errors.New("upstream response unavailable")

// Resolver maps a loose driver identifier (canonical id, short code,
// permanent number or name fragment) to the canonical driver record.
type Resolver interface {
	Resolve(identifier string) (model.DriverRecord, error)
}

type Client struct {
	http     *resty.Client
	cache    *fetchcache.Store
	policy   *fetchcache.Policy
	resolver Resolver
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// optional; without it every fetch goes to the network
	Cache *fetchcache.Store
	// per-request hard timeout, defaults to 30s
	Timeout time.Duration
	// optional wire dump target for debug logging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	http := resty.New()
	http.SetBaseURL(baseURL)
	http.SetTimeout(timeout)
	http.SetHeader("accept", "application/xml, application/json")

	restyutil.InstrumentClient(http, "lib/ergast/http", opts.InstrumentOutput)

	return &Client{
		http:   http,
		cache:  opts.Cache,
		policy: fetchcache.DefaultPolicy(),
	}
}

// SetResolver installs the canonical driver set used to resolve driver
// references on normalized records. Endpoints that take a user-supplied
// identifier fail with DriverNotFoundError when no resolver is set.
func (c *Client) SetResolver(r Resolver) {
	c.resolver = r
}

// ResolveDriver maps a user-supplied identifier to the canonical
// driver record via the installed resolver.
func (c *Client) ResolveDriver(identifier string) (model.DriverRecord, error) {
	return c.resolve(identifier)
}

func (c *Client) resolve(identifier string) (model.DriverRecord, error) {
	if c.resolver == nil {
		return model.DriverRecord{}, &model.DriverNotFoundError{Identifier: identifier}
	}
	return c.resolver.Resolve(identifier)
}

// FetchOption adjusts a single fetch. Cache bypass is threaded through
// explicitly here instead of living in process-global state.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	skipCache bool
}

// SkipCache forces the fetch to hit the network and overwrite whatever
// is cached for the URL.
func SkipCache() FetchOption {
	return func(o *fetchOptions) {
		o.skipCache = true
	}
}

type payload struct {
	contentType string
	body        []byte
}

func (p payload) isXML() bool  { return strings.Contains(p.contentType, "application/xml") }
func (p payload) isJSON() bool { return strings.Contains(p.contentType, "application/json") }

// fetch consults the cache, then issues a GET against the base path.
// Non-2xx statuses and transport failures both come back as
// ErrUnavailable within the client timeout, never as a hang.
func (c *Client) fetch(ctx context.Context, endpoint string, opts ...FetchOption) (payload, error) {
	ctx, span := tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "endpoint",
		Value: attribute.StringValue(endpoint),
	})

	var o fetchOptions
	for _, opt := range opts {
		opt(&o)
	}

	cacheURL := c.http.BaseURL + endpoint
	if c.cache != nil && !o.skipCache {
		entry, err := c.cache.Get(ctx, cacheURL)
		if err == nil {
			span.SetStatus(codes.Ok, "CACHE HIT")
			return payload{contentType: entry.ContentType, body: entry.Body}, nil
		}
		if err != fetchcache.ErrNotFound {
			span.RecordError(err)
			slog.WarnContext(ctx, "cache read failed", "url", cacheURL, "err", err)
		}
	}

	res, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return payload{}, ErrUnavailable
	}
	if res.StatusCode() != 200 {
		slog.WarnContext(
			ctx, "fetch failed",
			"url", cacheURL,
			"status", res.StatusCode(),
		)
		span.SetStatus(codes.Error, "non-2xx status")
		return payload{}, ErrUnavailable
	}

	p := payload{
		contentType: res.Header().Get("content-type"),
		body:        res.Body(),
	}

	if c.cache != nil {
		err = c.cache.Put(ctx, cacheURL, fetchcache.Entry{
			ContentType: p.contentType,
			Body:        p.body,
		}, c.policy.TTL(cacheURL))
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "cache write failed", "url", cacheURL, "err", err)
		}
	}

	return p, nil
}
