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

package ledgersim

import (
	"log/slog"

	"github.com/blinklabs-io/ledgersim/ledger"
)

// EmulatorOptionFunc is a type that represents functions that modify the Emulator config
type EmulatorOptionFunc func(*Emulator)

// WithLogger specifies the logger for diagnostics. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) EmulatorOptionFunc {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithProtocolParameterUpdate specifies protocol parameter overrides applied on top of the genesis values
func WithProtocolParameterUpdate(
	update ledger.ProtocolParameterUpdate,
) EmulatorOptionFunc {
	return func(e *Emulator) {
		e.paramUpdate = &update
	}
}

// WithMempoolCapacity specifies the mempool byte capacity. The default is twice the max block body size
func WithMempoolCapacity(capacity uint64) EmulatorOptionFunc {
	return func(e *Emulator) {
		e.mempoolCapacity = capacity
	}
}

// WithInitialUtxos specifies additional UTxOs to seed the store with alongside the genesis initial funds
func WithInitialUtxos(utxos []ledger.Utxo) EmulatorOptionFunc {
	return func(e *Emulator) {
		e.initialUtxos = utxos
	}
}
