package notifydb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	var l Layout
	require.Equal(t, "/tmp/notifydb.jane", l.Dir("jane"))
	require.Equal(t, "/tmp/notifydb.jane/db", l.LogPath("jane"))
	require.Equal(t, "/tmp/notifydb.jane/fifo.42", l.FIFOPath("jane", 42))

	l = Layout{Base: "/scratch"}
	require.Equal(t, "/scratch/notifydb.jane/db", l.LogPath("jane"))
	require.Equal(t, "/scratch/notifydb.jane/fifo.0", l.FIFOPath("jane", 0))
}

func TestIdentityValidationCases(t *testing.T) {
	require.NoError(t, Identity("jane").Validate())
	require.NoError(t, Identity("svc-builds").Validate())

	require.EqualError(t, Identity("").Validate(), "must be non-empty")
	require.EqualError(t, Identity("ja/ne").Validate(), "cannot contain '/' (ja/ne)")

	require.EqualError(t, ExtendContext(Identity("").Validate(), "LOGNAME"),
		"LOGNAME: must be non-empty")
}

func TestWaiterIDValidationCases(t *testing.T) {
	require.NoError(t, WaiterID(0).Validate())
	require.NoError(t, MaxWaiterID.Validate())

	require.EqualError(t, WaiterID(-1).Validate(), "not in range [0, 99999999] (-1)")
	require.EqualError(t, (MaxWaiterID + 1).Validate(), "not in range [0, 99999999] (100000000)")

	require.Equal(t, "42", WaiterID(42).String())
}
