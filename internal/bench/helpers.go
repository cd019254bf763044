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

// Package bench provides benchmark fixtures for the emulator's hot paths.
package bench

import (
	"fmt"

	"github.com/blinklabs-io/ledgersim"
	"github.com/blinklabs-io/ledgersim/internal/test"
	test_ledger "github.com/blinklabs-io/ledgersim/internal/test/ledger"
	"github.com/blinklabs-io/ledgersim/ledger"
)

const (
	benchSourceAddr = "addr_test1vp3hs5m8seylj6ly2rvvjqacnscwqsglsnzj2rg8tk59w2sw6u2mt"
	benchSinkAddr   = "addr_test1vrtzjlxzdgjl439jflkat0jjfva5czkxsvz3rke3lkjwg5gahj9q7"
	benchUtxoAmount = 10_000_000
	benchTxFee      = 1_000_000
)

// BenchUtxos returns the requested number of spendable UTxOs at a fixed
// source address with synthetic transaction IDs
func BenchUtxos(count int) []ledger.Utxo {
	ret := make([]ledger.Utxo, 0, count)
	for i := 0; i < count; i++ {
		ret = append(
			ret,
			ledger.Utxo{
				Id: ledger.NewTransactionInput(
					fmt.Sprintf("%064x", i),
					0,
				),
				Output: ledger.NewTransactionOutput(
					test.MustAddress(benchSourceAddr),
					benchUtxoAmount,
					nil,
				),
			},
		)
	}
	return ret
}

// BenchPaymentTxs returns one valid payment transaction per provided UTxO,
// each spending exactly that UTxO
func BenchPaymentTxs(utxos []ledger.Utxo) []*ledger.Transaction {
	ret := make([]*ledger.Transaction, 0, len(utxos))
	for _, utxo := range utxos {
		ret = append(
			ret,
			ledger.NewTransaction(
				[]ledger.TransactionInput{utxo.Id},
				[]ledger.TransactionOutput{
					ledger.NewTransactionOutput(
						test.MustAddress(benchSinkAddr),
						benchUtxoAmount-benchTxFee,
						nil,
					),
				},
				benchTxFee,
				nil,
			),
		)
	}
	return ret
}

// BenchLedgerState returns a mock ledger state holding the provided UTxOs
func BenchLedgerState(utxos []ledger.Utxo) ledger.LedgerState {
	return test_ledger.NewMockLedgerStateWithUtxos(utxos)
}

// MustBenchEmulator returns an emulator seeded with the provided UTxOs. It
// panics on construction errors, which makes it usable inline
func MustBenchEmulator(utxos []ledger.Utxo) *ledgersim.Emulator {
	emulator, err := ledgersim.NewEmulator(
		ledger.DefaultGenesis(),
		ledgersim.WithInitialUtxos(utxos),
	)
	if err != nil {
		panic(fmt.Sprintf("error creating emulator: %s", err))
	}
	return emulator
}
