package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vbc/internal/competition"
)

func TestResolveText(t *testing.T) {
	out, _, err := execute(NewResolveCommand(&RootOptions{Format: "text"}), cupPath(t),
		"TA", "{P:A:PA3:winner}", "{F:KO:FIN:winner}")
	require.NoError(t, err)

	assert.Equal(t,
		"TA → TA (Alpha)\n"+
			"{P:A:PA3:winner} → TC (Charlie)\n"+
			"{F:KO:FIN:winner} → UNKNOWN_TEAM_ID (Unknown Team)\n",
		out)
}

func TestResolveJSON(t *testing.T) {
	out, _, err := execute(NewResolveCommand(&RootOptions{Format: "json"}), cupPath(t), "{P:A:PA1:loser}")
	require.NoError(t, err)

	var results []Resolution
	decodeData(t, out, &results)
	require.Len(t, results, 1)
	assert.Equal(t, Resolution{Ref: "{P:A:PA1:loser}", ID: "TB", Name: "Bravo"}, results[0])
}

func TestResolveInvalidReference(t *testing.T) {
	out, _, err := execute(NewResolveCommand(&RootOptions{Format: "json"}), cupPath(t), "TZ", "{P:A:PA1:winner}")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 invalid reference(s)")

	var results []Resolution
	decodeData(t, out, &results)
	require.Len(t, results, 2)
	assert.Equal(t, competition.UnknownTeamID, results[0].ID)
	assert.Contains(t, results[0].Error, "[E221]")
	assert.Empty(t, results[1].Error)
}

func TestResolveMissingRef(t *testing.T) {
	_, _, err := execute(NewResolveCommand(&RootOptions{Format: "text"}), cupPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")
}
