package ergast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"f1stats-backend/lib/fetchcache"
	"f1stats-backend/lib/model"
	"f1stats-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func fixtureServer(t testing.TB, routes map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if strings.Contains(r.URL.Path, ".json") {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t testing.TB, routes map[string]string) *Client {
	t.Helper()
	cleanup := telemetry.SetupForTesting("lib/ergast")
	t.Cleanup(cleanup)

	server := fixtureServer(t, routes)
	return NewClient(ClientOptions{
		BaseURL: server.URL,
		Timeout: time.Second * 5,
	})
}

func TestFetchUnavailable(t *testing.T) {
	client := newTestClient(t, map[string]string{})

	_, err := client.DriverStandings(context.Background(), "2024")
	require.Error(t, err)

	var missingErr *model.MissingDataError
	require.True(t, errors.As(err, &missingErr))
	require.True(t, errors.Is(err, ErrUnavailable))
}

func TestFetchTransportFailure(t *testing.T) {
	server := fixtureServer(t, map[string]string{})
	server.Close()

	client := NewClient(ClientOptions{
		BaseURL: server.URL,
		Timeout: time.Second,
	})
	_, err := client.DriverStandings(context.Background(), "2024")
	require.True(t, errors.Is(err, ErrUnavailable))
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client := NewClient(ClientOptions{
		BaseURL: server.URL,
		Timeout: time.Millisecond * 200,
	})

	start := time.Now()
	_, err := client.DriverStandings(context.Background(), "2024")
	elapsed := time.Since(start)

	require.True(t, errors.Is(err, ErrUnavailable))
	require.Less(t, elapsed, time.Second*2)
}

func TestFetchCaching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(standingsFixture))
	}))
	t.Cleanup(server.Close)

	store, err := fetchcache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	client := NewClient(ClientOptions{
		BaseURL: server.URL,
		Cache:   store,
	})

	ctx := context.Background()
	_, err = client.DriverStandings(ctx, "2024")
	require.NoError(t, err)
	require.Equal(t, 1, hits)

	_, err = client.DriverStandings(ctx, "2024")
	require.NoError(t, err)
	require.Equal(t, 1, hits)

	_, err = client.DriverStandings(ctx, "2024", SkipCache())
	require.NoError(t, err)
	require.Equal(t, 2, hits)
}

func TestResolveWithoutResolver(t *testing.T) {
	client := newTestClient(t, map[string]string{})

	_, err := client.ResolveDriver("HAM")
	var notFound *model.DriverNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "HAM", notFound.Identifier)
}
