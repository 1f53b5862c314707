// ABOUTME: Badger-backed KV medium for on-disk (or in-memory) storage.
// ABOUTME: Each Update is one badger transaction, so multi-key writes are atomic.

package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// Badger wraps a badger database.
type Badger struct {
	db *badger.DB
}

type badgerConfig struct {
	inMemory bool
	logger   badger.Logger
}

// BadgerOption configures OpenBadger.
type BadgerOption func(*badgerConfig)

// WithInMemory keeps all data in memory; the directory is ignored.
func WithInMemory() BadgerOption {
	return func(c *badgerConfig) {
		c.inMemory = true
	}
}

// WithBadgerLogger routes badger's own logging. A nil logger silences it.
func WithBadgerLogger(l badger.Logger) BadgerOption {
	return func(c *badgerConfig) {
		c.logger = l
	}
}

// OpenBadger opens (creating if needed) a badger database in dir.
func OpenBadger(dir string, opts ...BadgerOption) (*Badger, error) {
	cfg := &badgerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var bopts badger.Options
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		bopts = badger.DefaultOptions(dir)
	}
	bopts = bopts.WithLogger(cfg.logger)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

type badgerTxn struct {
	txn *badger.Txn
}

func (t *badgerTxn) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t *badgerTxn) Set(key, value []byte) error {
	err := t.txn.Set(key, value)
	if errors.Is(err, badger.ErrReadOnlyTxn) {
		return ErrReadOnly
	}
	return err
}

func (b *Badger) View(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn})
	})
}

func (b *Badger) Update(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTxn{txn: txn})
	})
}

func (b *Badger) Close() error {
	return b.db.Close()
}
