package ergast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const qualifyingFixture = `<?xml version="1.0" encoding="utf-8"?>
<MRData series="f1" total="2">
	<RaceTable season="2024" round="14">
		<Race season="2024" round="14">
			<RaceName>Belgian Grand Prix</RaceName>
			<Circuit circuitId="spa">
				<CircuitName>Circuit de Spa-Francorchamps</CircuitName>
			</Circuit>
			<QualifyingList>
				<QualifyingResult number="1" position="1">
					<Driver driverId="max_verstappen" code="VER" url="">
						<GivenName>Max</GivenName>
						<FamilyName>Verstappen</FamilyName>
					</Driver>
					<Constructor constructorId="red_bull"><Name>Red Bull</Name></Constructor>
					<Q1>1:54.100</Q1>
					<Q2>1:53.837</Q2>
					<Q3>1:53.159</Q3>
				</QualifyingResult>
				<QualifyingResult number="24" position="16">
					<Driver driverId="zhou" code="ZHO" url="">
						<GivenName>Guanyu</GivenName>
						<FamilyName>Zhou</FamilyName>
					</Driver>
					<Constructor constructorId="sauber"><Name>Sauber</Name></Constructor>
					<Q1>1:56.593</Q1>
				</QualifyingResult>
			</QualifyingList>
		</Race>
	</RaceTable>
</MRData>`

func TestQualifyingResults(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/2024/14/qualifying": qualifyingFixture,
	})

	quali, err := client.QualifyingResults(context.Background(), "2024", "14")
	require.NoError(t, err)
	require.Len(t, quali.Entries, 2)

	pole := quali.Entries[0]
	require.Equal(t, 1, pole.Position)
	require.Equal(t, "max_verstappen", pole.Driver.ID)
	require.Equal(t, "1:53.159", pole.Q3)

	// Knocked out in the first segment, so the later segments stay
	// empty rather than failing normalization.
	eliminated := quali.Entries[1]
	require.Equal(t, "1:56.593", eliminated.Q1)
	require.Equal(t, "", eliminated.Q2)
	require.Equal(t, "", eliminated.Q3)
}
