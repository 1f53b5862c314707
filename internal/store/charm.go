// ABOUTME: Charm KV medium for cloud-synced storage.
// ABOUTME: Short-lived kv.Do sessions avoid lock contention with other processes.

package store

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// CharmDBName is the charm kv database used by notebook.
const CharmDBName = "notebook"

// Charm holds configuration for charm kv sessions. It does not hold a
// connection: every View/Update opens the database, runs, and closes it.
type Charm struct {
	dbName   string
	autoSync bool
}

// CharmOption configures a Charm medium.
type CharmOption func(*Charm)

func WithCharmDBName(name string) CharmOption {
	return func(c *Charm) {
		c.dbName = name
	}
}

// WithAutoSync enables or disables sync after writes.
func WithAutoSync(enabled bool) CharmOption {
	return func(c *Charm) {
		c.autoSync = enabled
	}
}

// WithCharmHost points the charm client at a self-hosted server.
func WithCharmHost(host string) CharmOption {
	return func(c *Charm) {
		if host != "" {
			_ = os.Setenv("CHARM_HOST", host)
		}
	}
}

func OpenCharm(opts ...CharmOption) *Charm {
	c := &Charm{dbName: CharmDBName, autoSync: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// charmKV is the part of *kv.KV a charmTxn needs.
type charmKV interface {
	Get(key []byte) ([]byte, error)
	NewTransaction(update bool) (*badger.Txn, error)
	Commit(txn *badger.Txn, callback func(error)) error
}

// charmTxn stages writes so they are flushed only after the callback succeeds.
type charmTxn struct {
	kv       charmKV
	staged   map[string][]byte
	order    []string
	readOnly bool
}

func (t *charmTxn) Get(key []byte) ([]byte, error) {
	if v, ok := t.staged[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	val, err := t.kv.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (t *charmTxn) Set(key, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	k := string(key)
	if _, ok := t.staged[k]; !ok {
		t.order = append(t.order, k)
	}
	t.staged[k] = append([]byte(nil), value...)
	return nil
}

// flush commits every staged key in one badger transaction, so either all of
// them land or none do.
func (t *charmTxn) flush() error {
	if len(t.order) == 0 {
		return nil
	}
	txn, err := t.kv.NewTransaction(true)
	if err != nil {
		return err
	}
	defer txn.Discard()

	for _, k := range t.order {
		if err := txn.Set([]byte(k), t.staged[k]); err != nil {
			return err
		}
	}
	return t.kv.Commit(txn, nil)
}

func (c *Charm) View(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		return fn(&charmTxn{kv: k, readOnly: true})
	})
}

// Update holds the charm database lock for the whole callback and flush.
func (c *Charm) Update(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.Do(c.dbName, func(k *kv.KV) error {
		txn := &charmTxn{kv: k, staged: make(map[string][]byte)}
		if err := fn(txn); err != nil {
			return err
		}
		if err := txn.flush(); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *Charm) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

func (c *Charm) Close() error {
	return nil
}
