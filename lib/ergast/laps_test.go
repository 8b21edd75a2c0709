package ergast

import (
	"context"
	"errors"
	"testing"
	"time"

	"f1stats-backend/lib/model"

	"github.com/stretchr/testify/require"
)

const lapsFixture = `<?xml version="1.0" encoding="utf-8"?>
<MRData series="f1" total="4">
	<RaceTable season="2024" round="14">
		<Race season="2024" round="14">
			<RaceName>Belgian Grand Prix</RaceName>
			<Circuit circuitId="spa">
				<CircuitName>Circuit de Spa-Francorchamps</CircuitName>
			</Circuit>
			<LapsList>
				<Lap number="1">
					<Timing driverId="hamilton" position="1" time="1:53.051"/>
					<Timing driverId="piastri" position="2" time="1:53.465"/>
				</Lap>
				<Lap number="2">
					<Timing driverId="hamilton" position="1" time="1:50.202"/>
					<Timing driverId="piastri" position="2" time="1:50.119"/>
				</Lap>
			</LapsList>
		</Race>
	</RaceTable>
</MRData>`

const duplicateTimingFixture = `<?xml version="1.0" encoding="utf-8"?>
<MRData series="f1" total="2">
	<RaceTable season="2024" round="14">
		<Race season="2024" round="14">
			<RaceName>Belgian Grand Prix</RaceName>
			<Circuit circuitId="spa">
				<CircuitName>Circuit de Spa-Francorchamps</CircuitName>
			</Circuit>
			<LapsList>
				<Lap number="1">
					<Timing driverId="hamilton" position="1" time="1:53.051"/>
					<Timing driverId="hamilton" position="1" time="1:53.051"/>
				</Lap>
			</LapsList>
		</Race>
	</RaceTable>
</MRData>`

func TestLaps(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/2024/14/laps?limit=2000": lapsFixture,
	})

	laps, err := client.Laps(context.Background(), "2024", "14")
	require.NoError(t, err)
	require.Len(t, laps.Laps, 2)
	require.Len(t, laps.Laps[1], 2)
	require.Len(t, laps.Laps[2], 2)

	first := laps.Laps[1][0]
	require.Equal(t, "hamilton", first.DriverID)
	require.Equal(t, 1, first.Position)
	require.Equal(t, time.Minute+53*time.Second+51*time.Millisecond, first.Time)
}

func TestLapsDuplicateTiming(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/2024/14/laps?limit=2000": duplicateTimingFixture,
	})

	_, err := client.Laps(context.Background(), "2024", "14")
	require.Error(t, err)

	var normErr *model.NormalizationError
	require.True(t, errors.As(err, &normErr))
}

func TestDriverLaps(t *testing.T) {
	fixture := `<?xml version="1.0" encoding="utf-8"?>
<MRData series="f1" total="2">
	<RaceTable season="2024" round="14">
		<Race season="2024" round="14">
			<RaceName>Belgian Grand Prix</RaceName>
			<Circuit circuitId="spa">
				<CircuitName>Circuit de Spa-Francorchamps</CircuitName>
			</Circuit>
			<LapsList>
				<Lap number="1">
					<Timing driverId="hamilton" position="3" time="1:53.051"/>
				</Lap>
				<Lap number="2">
					<Timing driverId="hamilton" position="2" time="1:50.202"/>
				</Lap>
			</LapsList>
		</Race>
	</RaceTable>
</MRData>`

	client := newTestClient(t, map[string]string{
		"/2024/14/drivers/hamilton/laps?limit=100": fixture,
	})
	client.SetResolver(staticResolver{record: model.DriverRecord{
		ID:         "hamilton",
		Code:       "HAM",
		GivenName:  "Lewis",
		FamilyName: "Hamilton",
	}})

	laps, err := client.DriverLaps(context.Background(), "2024", "14", "HAM")
	require.NoError(t, err)
	require.Equal(t, "hamilton", laps.Driver.ID)
	require.Len(t, laps.Laps, 2)
	require.Equal(t, 3, laps.Laps[0].Position)
	require.Equal(t, 2, laps.Laps[1].Lap)
}

type staticResolver struct {
	record model.DriverRecord
}

func (r staticResolver) Resolve(identifier string) (model.DriverRecord, error) {
	return r.record, nil
}
