package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifier"
	"go.notifydb.dev/core/notifytest"
	"go.notifydb.dev/core/registry"
)

func TestRunDeliversToCoveringWaiter(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var proj = scratchDir(t, s, "proj")
	require.NoError(t, os.Mkdir(filepath.Join(proj, "sub"), 0755))

	s.Register(t, 42, proj)
	var ch = s.Listen(t, 42)

	chdir(t, filepath.Join(proj, "sub"))

	require.NoError(t, run(s.Layout, s.Identity, nil))
	require.Equal(t, byte('1'), <-ch)
}

func TestRunWithoutListener(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var proj = scratchDir(t, s, "proj")
	s.Register(t, 42, proj)

	chdir(t, proj)

	var err = run(s.Layout, s.Identity, nil)
	require.Equal(t, notifier.ErrNoListener, err)
	require.EqualError(t, err, "no one is waiting on the other end of the FIFO")
}

func TestRunWithoutRegistry(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	require.Equal(t, registry.ErrNoWaiters, run(s.Layout, s.Identity, nil))
}

func TestRunRecordOrderPrecedence(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var early = scratchDir(t, s, "early") // Matched by the working directory.
	var late = scratchDir(t, s, "late")   // Matched by the argument.

	s.Register(t, 7, early)
	s.Register(t, 8, late)
	var ch = s.Listen(t, 7)

	chdir(t, early)

	// The argument candidate is ordered first, but precedence runs by record
	// order in the log: the earlier record's waiter is the one notified.
	require.NoError(t, run(s.Layout, s.Identity, []string{late}))
	require.Equal(t, byte('1'), <-ch)
}

func TestResolveCandidatesOrdersArgumentFirst(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var here = scratchDir(t, s, "here")
	var there = scratchDir(t, s, "there")
	chdir(t, here)

	var cands, err = resolveCandidates(nil)
	require.NoError(t, err)
	require.Equal(t, []string{here}, cands)

	cands, err = resolveCandidates([]string{there})
	require.NoError(t, err)
	require.Equal(t, []string{there, here}, cands)

	// Relative arguments resolve against the working directory.
	cands, err = resolveCandidates([]string{filepath.Join("..", "there")})
	require.NoError(t, err)
	require.Equal(t, []string{there, here}, cands)

	var _, rerr = resolveCandidates([]string{"does/not/exist"})
	require.Error(t, rerr)

	// An empty argument is rejected rather than aliased to the working
	// directory.
	var _, eerr = resolveCandidates([]string{""})
	require.Equal(t, unix.ENOENT, errors.Cause(eerr))
	require.EqualError(t, eerr, `resolving "": no such file or directory`)
}

func TestResolveCandidatesFollowsSymlinks(t *testing.T) {
	var s = notifytest.NewScratch(t)
	defer s.Cleanup()

	var target = scratchDir(t, s, "target")
	var link = filepath.Join(s.Layout.Base, "link")
	require.NoError(t, os.Symlink(target, link))

	chdir(t, target)

	var cands, err = resolveCandidates([]string{link})
	require.NoError(t, err)
	require.Equal(t, []string{target, target}, cands)
}

// scratchDir creates a directory under the Scratch base and returns its
// canonicalized path.
func scratchDir(t *testing.T, s notifytest.Scratch, name string) string {
	var dir = filepath.Join(s.Layout.Base, name)
	require.NoError(t, os.Mkdir(dir, 0755))

	var resolved, err = filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func chdir(t *testing.T, dir string) {
	var prev, err = os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
