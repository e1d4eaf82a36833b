package registry

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifydb"
)

// ErrNoWaiters is returned by Find when there is nothing to notify: the
// identity has no registration log, or no record of the log covers a
// candidate path. It's an expected steady state rather than a failure.
var ErrNoWaiters = errors.New("no processes to notify")

// Find scans the registration log of |id| for the first record, in file
// order, whose path covers any of |candidates|, and returns that record's
// WaiterID. Candidate order matters only within a single record: a record
// matching any candidate wins over all later records.
//
// The log is read under a shared advisory lock, serializing against the
// exclusive lock of the external writer so that a half-appended record is
// never observed. The lock and descriptor are released on every return
// path. Scanning stops at the first match, leaving the remainder of the
// log unread.
func Find(l notifydb.Layout, id notifydb.Identity, candidates []string) (notifydb.WaiterID, error) {
	var path = l.LogPath(id)

	var f, err = os.Open(path)
	if os.IsNotExist(err) {
		return 0, ErrNoWaiters
	} else if err != nil {
		return 0, errors.WithMessage(err, "opening registry log")
	}
	// Closing the descriptor also drops the advisory lock.
	defer f.Close()

	if err = unix.Flock(int(f.Fd()), unix.LOCK_SH); err != nil {
		return 0, errors.Wrapf(err, "locking %s", path)
	}

	var it = NewIterator(f)
	for {
		var rec, err = it.Next()

		if err == io.EOF {
			log.WithFields(log.Fields{
				"log":     path,
				"scanned": humanize.IBytes(uint64(it.Offset())),
			}).Debug("no registration covers a candidate path")
			return 0, ErrNoWaiters
		} else if err != nil {
			return 0, err
		}

		for _, c := range candidates {
			if notifydb.Matches(rec.Path, c) {
				log.WithFields(log.Fields{
					"id":      rec.ID,
					"path":    rec.Path,
					"scanned": humanize.IBytes(uint64(it.Offset())),
				}).Debug("matched registration")
				return rec.ID, nil
			}
		}
	}
}
