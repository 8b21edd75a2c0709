package fetchcache

import (
	"bytes"
	"context"
	"encoding/gob"
	"net/url"
	"time"

	"f1stats-backend/lib/timezone"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lib/fetchcache")

var ErrNotFound = badger.ErrKeyNotFound

// Entry is one cached upstream response. ExpiresAt is an absolute unix
// timestamp recorded at write time.
type Entry struct {
	ContentType string
	Body        []byte

	ExpiresAt int64
}

// Store is a persistent response cache keyed by normalized request URL.
// Get and Put are atomic per key; no cross-key coordination exists or
// is needed.
type Store struct {
	db *badger.DB
}

func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Flush drops every cached response. Used by the out-of-band admin
// update flow.
func (s *Store) Flush() error {
	return s.db.DropAll()
}

func cacheKey(rawurl string) (string, error) {
	parsed, err := url.Parse(rawurl)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		parsed,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return normalized, nil
}

func (s *Store) Get(ctx context.Context, rawurl string) (Entry, error) {
	ctx, span := tracer.Start(ctx, "get")
	defer span.End()

	key, err := cacheKey(rawurl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return Entry{}, err
	}
	span.SetAttributes(attribute.KeyValue{
		Key:   "cache_key",
		Value: attribute.StringValue(key),
	})

	tx := s.db.NewTransaction(false)
	defer tx.Discard()
	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item")
		return Entry{}, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return Entry{}, err
	}

	var cached Entry
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return Entry{}, err
	}

	if timezone.Now().Unix() >= cached.ExpiresAt {
		span.AddEvent("delete expired cache key", trace.WithAttributes(attribute.KeyValue{
			Key:   "key",
			Value: attribute.StringValue(key),
		}))

		tx := s.db.NewTransaction(true)
		defer tx.Commit()

		err = tx.Delete([]byte(key))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete expired key")
		}
		return Entry{}, ErrNotFound
	}

	span.SetStatus(codes.Ok, "CACHE HIT")
	return cached, nil
}

func (s *Store) Put(ctx context.Context, rawurl string, entry Entry, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "put")
	defer span.End()

	key, err := cacheKey(rawurl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(
		attribute.KeyValue{
			Key:   "cache_key",
			Value: attribute.StringValue(key),
		},
		attribute.KeyValue{
			Key:   "ttl",
			Value: attribute.StringValue(ttl.String()),
		},
	)

	entry.ExpiresAt = timezone.Now().Add(ttl).Unix()

	serialized := bytes.NewBuffer(nil)
	err = gob.NewEncoder(serialized).Encode(entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize entry")
		return err
	}

	tx := s.db.NewTransaction(true)
	defer tx.Discard()
	err = tx.Set([]byte(key), serialized.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write entry")
		return err
	}
	return tx.Commit()
}
