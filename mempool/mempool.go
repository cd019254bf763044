// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mempool implements the FIFO transaction queue that feeds block
// production. Admission is gated by an injected validation function and an
// aggregate byte capacity; entries are drained strictly in admission order.
package mempool

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/ledgersim/ledger"
)

// ValidateFunc is called for each transaction before admission. A non-nil
// return rejects the transaction without enqueueing it.
type ValidateFunc func(tx *ledger.Transaction) error

// Config is used to configure the Mempool instance
type Config struct {
	// Capacity is the aggregate byte capacity of the mempool
	Capacity uint64
	// Logger receives debug-level admission diagnostics
	Logger *slog.Logger
	// ValidateFunc gates admission. It may be nil, in which case only the
	// capacity check applies
	ValidateFunc ValidateFunc
}

// Entry is a queued transaction along with its encoded size and admission
// sequence number
type Entry struct {
	Tx    *ledger.Transaction
	Size  uint64
	Order uint64
}

// MempoolFullError indicates that admitting a transaction would exceed the
// mempool's aggregate byte capacity
type MempoolFullError struct {
	TxSize   uint64
	Size     uint64
	Capacity uint64
}

func (e MempoolFullError) Error() string {
	return fmt.Sprintf(
		"mempool full: transaction size %d, current size %d, capacity %d",
		e.TxSize,
		e.Size,
		e.Capacity,
	)
}

// Mempool is a FIFO queue of validated transactions bounded by aggregate
// encoded size. It is not safe for concurrent use; callers are expected to
// serialize access
type Mempool struct {
	config  Config
	entries []Entry
	size    uint64
	counter uint64
}

// NewMempool returns a new Mempool with the provided config
func NewMempool(cfg Config) *Mempool {
	if cfg.Capacity == 0 {
		panic("mempool: capacity must be positive")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Mempool{
		config: cfg,
	}
}

// Capacity returns the aggregate byte capacity of the mempool
func (m *Mempool) Capacity() uint64 {
	return m.config.Capacity
}

// Size returns the aggregate encoded size of all queued transactions
func (m *Mempool) Size() uint64 {
	return m.size
}

// NumberOfTxs returns the number of queued transactions
func (m *Mempool) NumberOfTxs() uint64 {
	return uint64(len(m.entries))
}

// IsEmpty returns true when no transactions are queued
func (m *Mempool) IsEmpty() bool {
	return len(m.entries) == 0
}

// Add validates the transaction via the configured ValidateFunc, enforces the
// aggregate byte capacity, and appends it to the queue. A transaction is
// either admitted whole or not at all
func (m *Mempool) Add(tx *ledger.Transaction) error {
	if m.config.ValidateFunc != nil {
		if err := m.config.ValidateFunc(tx); err != nil {
			return err
		}
	}
	txSize := uint64(len(tx.Cbor()))
	if m.size+txSize > m.config.Capacity {
		return MempoolFullError{
			TxSize:   txSize,
			Size:     m.size,
			Capacity: m.config.Capacity,
		}
	}
	m.entries = append(
		m.entries,
		Entry{
			Tx:    tx,
			Size:  txSize,
			Order: m.counter,
		},
	)
	m.counter++
	m.size += txSize
	m.config.Logger.Debug(
		"admitted transaction to mempool",
		"tx_hash",
		tx.Hash().String(),
		"tx_size",
		txSize,
		"mempool_size",
		m.size,
	)
	return nil
}

// PeekFront returns the oldest queued entry without removing it
func (m *Mempool) PeekFront() (Entry, bool) {
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[0], true
}

// PopFront removes and returns the oldest queued entry
func (m *Mempool) PopFront() (Entry, bool) {
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	entry := m.entries[0]
	m.entries = m.entries[1:]
	m.size -= entry.Size
	return entry, true
}

// Transactions returns a snapshot of the queued transactions in admission
// order
func (m *Mempool) Transactions() []*ledger.Transaction {
	ret := make([]*ledger.Transaction, len(m.entries))
	for i, entry := range m.entries {
		ret[i] = entry.Tx
	}
	return ret
}
