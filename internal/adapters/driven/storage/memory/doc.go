// Package memory provides in-memory implementations of the driven ports.
// Every store copies values on the way in and out, so callers never share
// block trees or data records with the store.
package memory
