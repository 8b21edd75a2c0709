package drivers

import (
	"errors"
	"testing"

	"f1stats-backend/lib/model"

	"github.com/stretchr/testify/require"
)

func testSet() *Set {
	return NewSet([]model.DriverRecord{
		{
			ID:              "hamilton",
			Code:            "HAM",
			PermanentNumber: "44",
			GivenName:       "Lewis",
			FamilyName:      "Hamilton",
		},
		{
			ID:              "max_verstappen",
			Code:            "VER",
			PermanentNumber: "33",
			GivenName:       "Max",
			FamilyName:      "Verstappen",
		},
		{
			ID:              "michael_schumacher",
			Code:            "MSC",
			GivenName:       "Michael",
			FamilyName:      "Schumacher",
		},
		{
			ID:              "mick_schumacher",
			Code:            "MSC",
			PermanentNumber: "47",
			GivenName:       "Mick",
			FamilyName:      "Schumacher",
		},
	})
}

// Every identifier form referring to the same driver resolves to the
// same canonical id.
func TestResolveIdentifierForms(t *testing.T) {
	set := testSet()

	for _, identifier := range []string{"hamilton", "HAM", "ham", "44", "Hamilton", "Lewis"} {
		driver, err := set.Resolve(identifier)
		require.NoError(t, err, "identifier %q", identifier)
		require.Equal(t, "hamilton", driver.ID, "identifier %q", identifier)
	}
}

func TestResolveOrderOfSpecificity(t *testing.T) {
	set := NewSet([]model.DriverRecord{
		// A driver whose code collides with another driver's id.
		{ID: "msc", Code: "XXX", GivenName: "Some", FamilyName: "Driver"},
		{ID: "other", Code: "MSC", GivenName: "Other", FamilyName: "Driver"},
	})

	driver, err := set.Resolve("msc")
	require.NoError(t, err)
	require.Equal(t, "msc", driver.ID)
}

// A shared code resolves to the earlier roster entry; a name fragment
// shared by several drivers picks the closest full name.
func TestResolveAmbiguity(t *testing.T) {
	set := testSet()

	byCode, err := set.Resolve("MSC")
	require.NoError(t, err)
	require.Equal(t, "michael_schumacher", byCode.ID)

	byName, err := set.Resolve("Michael")
	require.NoError(t, err)
	require.Equal(t, "michael_schumacher", byName.ID)

	// Both full names contain the fragment; the closer one by string
	// similarity wins.
	byFamily, err := set.Resolve("Schumacher")
	require.NoError(t, err)
	require.Equal(t, "mick_schumacher", byFamily.ID)
}

func TestResolveNotFound(t *testing.T) {
	set := testSet()

	_, err := set.Resolve("nobody")
	var notFound *model.DriverNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "nobody", notFound.Identifier)

	_, err = set.Resolve("   ")
	require.True(t, errors.As(err, &notFound))
}

func TestRecordsCopies(t *testing.T) {
	set := testSet()

	records := set.Records()
	records[0].ID = "mutated"

	driver, err := set.Resolve("HAM")
	require.NoError(t, err)
	require.Equal(t, "hamilton", driver.ID)
}
