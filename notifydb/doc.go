// Package notifydb defines the on-disk conventions shared with the external
// registration writer: the identity-scoped directory layout, the waiter ID
// which addresses a notification FIFO, and the path coverage predicate which
// decides whether a registration matches a candidate directory.
package notifydb
