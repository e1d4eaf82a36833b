// Package notifytest provides test support for exercising registry scans
// and FIFO notification against real files and pipes. Its Scratch plays the
// part of the external registration writer: it appends records under an
// exclusive lock, creates waiter FIFOs, and attaches listening readers.
package notifytest

import (
	"fmt"
	"io"
	"os"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifydb"
)

// Scratch is a disposable registry rooted under a temporary base directory,
// scoped to a generated Identity.
type Scratch struct {
	Layout   notifydb.Layout
	Identity notifydb.Identity
}

// NewScratch returns a Scratch with an initialized registry directory.
// Callers should defer Cleanup.
func NewScratch(t require.TestingT) Scratch {
	var dir, err = os.MkdirTemp("", "notifydb")
	require.NoError(t, err)

	var s = Scratch{
		Layout:   notifydb.Layout{Base: dir},
		Identity: notifydb.Identity(petname.Generate(2, "-")),
	}
	require.NoError(t, os.Mkdir(s.Layout.Dir(s.Identity), 0700))
	return s
}

// Cleanup removes the Scratch base directory and everything under it.
func (s Scratch) Cleanup() {
	_ = os.RemoveAll(s.Layout.Base)
}

// Append appends |raw| bytes to the registration log under an exclusive
// advisory lock, as the external writer does.
func (s Scratch) Append(t require.TestingT, raw string) {
	var f, err = os.OpenFile(s.Layout.LogPath(s.Identity),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	require.NoError(t, err)
	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_EX))

	_, err = f.WriteString(raw)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

// Register appends a well-formed record binding waiter |id| to |path|, and
// creates the FIFO which notification of |id| will open.
func (s Scratch) Register(t require.TestingT, id notifydb.WaiterID, path string) {
	require.NoError(t, id.Validate())

	s.Append(t, fmt.Sprintf("%d %s %s\n", time.Now().Unix(), id, path))
	require.NoError(t, unix.Mkfifo(s.Layout.FIFOPath(s.Identity, id), 0600))
}

// Listen attaches a listening reader to the FIFO of waiter |id|, and
// returns a channel which yields the first byte received. The reading end
// is opened before Listen returns, so a non-blocking writer open performed
// afterward will find a listener. Listen also holds its own writing
// descriptor of the FIFO so that the read cannot observe end-of-file
// before a byte arrives.
func (s Scratch) Listen(t require.TestingT, id notifydb.WaiterID) <-chan byte {
	var path = s.Layout.FIFOPath(s.Identity, id)

	var rfd, err = unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	require.NoError(t, err)
	var wfd, werr = unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	require.NoError(t, werr)

	var r = os.NewFile(uintptr(rfd), path)
	var w = os.NewFile(uintptr(wfd), path)

	var ch = make(chan byte, 1)
	go func() {
		var b [1]byte
		var _, err = io.ReadFull(r, b[:])
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.NoError(t, w.Close())
		ch <- b[0]
	}()
	return ch
}
