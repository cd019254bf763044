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

package test_ledger

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/ledgersim/ledger"
)

// Compile-time checks that MockLedgerState implements LedgerState and all child interfaces
var (
	_ ledger.LedgerState = (*MockLedgerState)(nil)
	_ ledger.UtxoState   = (*MockLedgerState)(nil)
	_ ledger.SlotState   = (*MockLedgerState)(nil)
)

// MockLedgerState is the canonical internal mock used by tests. Tests should
// construct &test_ledger.MockLedgerState{} and configure fields (e.g.
// NetworkIdVal, UtxoByIdFunc) to control behavior. Keeping this in an
// internal package prevents external consumers from depending on test-only
// APIs while allowing in-repo tests to reuse the same mock.
type MockLedgerState struct {
	NetworkIdVal uint8
	UtxoByIdFunc func(ledger.TransactionInput) (ledger.Utxo, error)
	// SlotToTimeFunc optionally overrides slot-to-time conversion.
	// If nil, returns error indicating mock is not configured.
	SlotToTimeFunc func(uint64) (time.Time, error)
	// TimeToSlotFunc optionally overrides time-to-slot conversion.
	// If nil, returns error indicating mock is not configured.
	TimeToSlotFunc func(time.Time) (uint64, error)
}

func (m *MockLedgerState) UtxoById(
	id ledger.TransactionInput,
) (ledger.Utxo, error) {
	if m.UtxoByIdFunc != nil {
		return m.UtxoByIdFunc(id)
	}
	return ledger.Utxo{}, errors.New("not found")
}

func (m *MockLedgerState) SlotToTime(
	slot uint64,
) (time.Time, error) {
	if m.SlotToTimeFunc != nil {
		return m.SlotToTimeFunc(slot)
	}
	return time.Time{}, fmt.Errorf(
		"MockLedgerState.SlotToTimeFunc not configured for slot %d",
		slot,
	)
}

func (m *MockLedgerState) TimeToSlot(
	t time.Time,
) (uint64, error) {
	if m.TimeToSlotFunc != nil {
		return m.TimeToSlotFunc(t)
	}
	return 0, errors.New("MockLedgerState.TimeToSlotFunc not configured")
}

func (m *MockLedgerState) NetworkId() uint8 { return m.NetworkIdVal }

// NewMockLedgerStateWithUtxos creates a MockLedgerState with lookup behavior for provided UTXOs.
// This helper uses bytes.Equal for efficient byte array comparison.
func NewMockLedgerStateWithUtxos(utxos []ledger.Utxo) *MockLedgerState {
	return &MockLedgerState{
		UtxoByIdFunc: func(id ledger.TransactionInput) (ledger.Utxo, error) {
			for _, u := range utxos {
				if id.Index() == u.Id.Index() &&
					bytes.Equal(id.Id().Bytes(), u.Id.Id().Bytes()) {
					return u, nil
				}
			}
			return ledger.Utxo{}, errors.New("not found")
		},
	}
}
