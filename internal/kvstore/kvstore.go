// Package kvstore abstracts the device-local key-value byte store the
// snapshot and cart records persist into.
package kvstore

// Store is a flat key-value byte store. Values returned by Get are owned by
// the caller; implementations must not retain or reuse them.
type Store interface {
	Get(key []byte) (value []byte, ok bool, err error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Close() error
}
