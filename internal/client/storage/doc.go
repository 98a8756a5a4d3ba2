// Package storage opens the local SQLite database, applies the embedded
// migrations and hands out repositories bound either to the database or to a
// single transaction.
//
// The pool is limited to one open connection. SQLite serialises writers
// anyway; with a single handle every call, including those made from
// background goroutines, is queued instead of racing for the write lock.
package storage
