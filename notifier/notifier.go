package notifier

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifydb"
)

// ErrNoListener is returned by Notify when the waiter's FIFO exists but no
// process currently has it open for reading. It's a benign outcome: the
// waiter has gone away, or hasn't yet come back around to its read.
var ErrNoListener = errors.New("no one is waiting on the other end of the FIFO")

// sentinel is the payload of a notification. Its value carries no meaning;
// the arrival of a byte is the entire signal.
const sentinel = '1'

// Notify wakes the waiter |id| registered under |who| by writing one
// sentinel byte to its FIFO. The open is write-only and non-blocking: a
// FIFO with no current reader fails with ErrNoListener rather than waiting
// for one to appear. The descriptor is closed on every return path.
func Notify(l notifydb.Layout, who notifydb.Identity, id notifydb.WaiterID) error {
	var path = l.FIFOPath(who, id)

	var fd, err = unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err == unix.ENXIO {
		notificationsTotal.WithLabelValues("no-listener").Inc()
		return ErrNoListener
	} else if err != nil {
		notificationsTotal.WithLabelValues("error").Inc()
		return errors.Wrapf(err, "opening %s", path)
	}
	var f = os.NewFile(uintptr(fd), path)
	defer f.Close()

	if _, err = f.Write([]byte{sentinel}); err != nil {
		notificationsTotal.WithLabelValues("error").Inc()
		return errors.WithMessage(err, "writing to FIFO")
	}
	notificationsTotal.WithLabelValues("delivered").Inc()
	return nil
}
