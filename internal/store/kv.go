// ABOUTME: Key-value medium abstraction shared by every storage backend.
// ABOUTME: Defines transactional View/Update and the persistence error sentinels.

package store

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_kv.go -package=mocks github.com/harper/notebook/internal/store KV,Txn

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Txn.Get for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrReadOnly is returned by Txn.Set inside View.
	ErrReadOnly = errors.New("transaction is read-only")
	// ErrRead wraps failures of the medium while reading.
	ErrRead = errors.New("failed to read from store")
	// ErrPersist wraps failures of the medium while writing. It is recoverable:
	// the transaction is aborted and nothing is changed.
	ErrPersist = errors.New("failed to persist")
)

// Txn is a single transaction over the medium.
type Txn interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
}

// KV is a transactional key-value medium. Writes made inside one Update
// commit together or not at all.
type KV interface {
	View(ctx context.Context, fn func(txn Txn) error) error
	Update(ctx context.Context, fn func(txn Txn) error) error
	Close() error
}
