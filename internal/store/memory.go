// ABOUTME: In-memory KV medium with copy-on-write transactions.
// ABOUTME: Used for tests and the memory backend.

package store

import (
	"context"
	"sync"
)

// Memory is a KV held in a map. Update stages writes and applies them only
// when the callback succeeds.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

type memTxn struct {
	base     map[string][]byte
	staged   map[string][]byte
	readOnly bool
}

func (t *memTxn) Get(key []byte) ([]byte, error) {
	if v, ok := t.staged[string(key)]; ok {
		return append([]byte(nil), v...), nil
	}
	v, ok := t.base[string(key)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (t *memTxn) Set(key, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	t.staged[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) View(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(&memTxn{base: m.data, readOnly: true})
}

func (m *Memory) Update(ctx context.Context, fn func(txn Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	txn := &memTxn{base: m.data, staged: make(map[string][]byte)}
	if err := fn(txn); err != nil {
		return err
	}
	for k, v := range txn.staged {
		m.data[k] = v
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
