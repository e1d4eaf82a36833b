package notifydb

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Identity is the opaque per-user token which scopes a registry. It is used
// only to derive filesystem paths, and is never otherwise interpreted.
type Identity string

// Validate returns an error if the Identity is not well-formed.
func (id Identity) Validate() error {
	if id == "" {
		return NewValidationError("must be non-empty")
	} else if strings.ContainsRune(string(id), '/') {
		return NewValidationError("cannot contain '/' (%s)", id)
	}
	return nil
}

// String returns the Identity as a string.
func (id Identity) String() string { return string(id) }

// WaiterID identifies one waiting process registration. Each WaiterID names
// the FIFO to be signalled when its registered path covers a candidate.
type WaiterID int32

// MaxWaiterID is the largest allowed WaiterID.
const MaxWaiterID WaiterID = 99999999

// Validate returns an error if the WaiterID is outside [0, MaxWaiterID].
func (id WaiterID) Validate() error {
	if id < 0 || id > MaxWaiterID {
		return NewValidationError("not in range [0, %d] (%d)", MaxWaiterID, id)
	}
	return nil
}

// String returns the WaiterID in the decimal form used within FIFO names.
func (id WaiterID) String() string { return strconv.FormatInt(int64(id), 10) }

// DefaultBase is the base directory of the production registry layout.
const DefaultBase = "/tmp"

// Layout maps Identities and WaiterIDs to the filesystem locations shared
// with the external registration writer. The naming scheme below DefaultBase
// is a fixed interoperability contract and is not configurable.
type Layout struct {
	// Base is the directory under which per-identity registry directories
	// live. If empty, DefaultBase is used.
	Base string
}

// Dir returns the registry directory of |id|.
func (l Layout) Dir(id Identity) string {
	var base = l.Base
	if base == "" {
		base = DefaultBase
	}
	return filepath.Join(base, "notifydb."+id.String())
}

// LogPath returns the registration log path of |id|.
func (l Layout) LogPath(id Identity) string {
	return filepath.Join(l.Dir(id), "db")
}

// FIFOPath returns the notification FIFO path of waiter |w| under |id|.
func (l Layout) FIFOPath(id Identity, w WaiterID) string {
	return filepath.Join(l.Dir(id), "fifo."+w.String())
}
