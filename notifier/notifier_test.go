package notifier

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifytest"
)

func TestNotifyDeliversSentinel(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	s.Register(t, 42, "/home/u/proj")
	var ch = s.Listen(t, 42)

	require.NoError(t, Notify(s.Layout, s.Identity, 42))
	require.Equal(t, byte('1'), <-ch)
}

func TestNotifyWithoutListener(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	s.Register(t, 42, "/home/u/proj")

	var err = Notify(s.Layout, s.Identity, 42)
	require.Equal(t, ErrNoListener, err)
	require.EqualError(t, err, "no one is waiting on the other end of the FIFO")

	// The outcome is repeatable: no descriptor or other state lingers from
	// the failed attempt.
	require.Equal(t, ErrNoListener, Notify(s.Layout, s.Identity, 42))
}

func TestNotifyOverAbsentFIFO(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var err = Notify(s.Layout, s.Identity, 7)
	require.Error(t, err)
	require.Equal(t, unix.ENOENT, errors.Cause(err))
}
