// Package mainboilerplate contains shared boilerplate for this project's
// programs. The idea is to provide a selection of narrowly scoped methods so
// callers do not have to buy-in to an all-or-nothing approach.
package mainboilerplate

// Version and BuildDate identify the build. They're populated via -ldflags,
// eg `-X go.notifydb.dev/core/mainboilerplate.Version=v0.1.0`.
var (
	Version   = "development"
	BuildDate = "unknown"
)
