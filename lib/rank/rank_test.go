package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type timedEntry struct {
	driver  string
	seconds float64
}

func byTime(a, b timedEntry) int {
	switch {
	case a.seconds < b.seconds:
		return -1
	case a.seconds > b.seconds:
		return 1
	}
	return 0
}

var entries = []timedEntry{
	{driver: "NOR", seconds: 92.1},
	{driver: "VER", seconds: 91.4},
	{driver: "HAM", seconds: 92.8},
	{driver: "PIA", seconds: 92.1},
	{driver: "LEC", seconds: 91.9},
	{driver: "SAI", seconds: 93.0},
	{driver: "RUS", seconds: 92.5},
}

func TestRankStable(t *testing.T) {
	ranked := Rank(entries, byTime)

	require.Equal(t, "VER", ranked[0].driver)
	require.Equal(t, "LEC", ranked[1].driver)
	// NOR and PIA tie on time; the pre-sort order is preserved.
	require.Equal(t, "NOR", ranked[2].driver)
	require.Equal(t, "PIA", ranked[3].driver)

	// The input is left untouched.
	require.Equal(t, "NOR", entries[0].driver)
}

func TestFilterFastestSlowest(t *testing.T) {
	ranked := Rank(entries, byTime)

	fastest, err := Filter(ranked, ModeFastest)
	require.NoError(t, err)
	require.Equal(t, []timedEntry{ranked[0]}, fastest)

	slowest, err := Filter(ranked, ModeSlowest)
	require.NoError(t, err)
	require.Equal(t, []timedEntry{ranked[len(ranked)-1]}, slowest)
}

func TestFilterTopIsRankedPrefix(t *testing.T) {
	for n := 0; n <= len(entries); n++ {
		ranked := Rank(entries[:n], byTime)

		top, err := Filter(ranked, ModeTop)
		require.NoError(t, err)
		require.Len(t, top, min(5, n))
		for i := range top {
			require.Equal(t, ranked[i], top[i])
		}
	}
}

func TestFilterBottom(t *testing.T) {
	ranked := Rank(entries, byTime)

	bottom, err := Filter(ranked, ModeBottom)
	require.NoError(t, err)
	require.Len(t, bottom, 5)
	require.Equal(t, ranked[len(ranked)-5:], bottom)

	short, err := Filter(ranked[:3], ModeBottom)
	require.NoError(t, err)
	require.Len(t, short, 3)
}

func TestFilterAll(t *testing.T) {
	ranked := Rank(entries, byTime)

	all, err := Filter(ranked, ModeAll)
	require.NoError(t, err)
	require.Equal(t, ranked, all)
}

func TestFilterEmpty(t *testing.T) {
	out, err := Filter([]timedEntry{}, ModeFastest)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"fastest", "slowest", "top", "bottom", "all"} {
		mode, err := ParseMode(name)
		require.NoError(t, err)
		require.Equal(t, name, string(mode))
	}

	_, err := ParseMode("median")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "median"))
}
