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

package bench

import (
	"fmt"
	"testing"
)

// BenchmarkEmulatorSubmitTx benchmarks transaction submission against a
// freshly seeded emulator.
func BenchmarkEmulatorSubmitTx(b *testing.B) {
	utxos := BenchUtxos(1)
	tx := BenchPaymentTxs(utxos)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		emulator := MustBenchEmulator(utxos)
		b.StartTimer()
		if _, err := emulator.SubmitTx(tx); err != nil {
			b.Fatalf("SubmitTx failed: %v", err)
		}
	}
}

// BenchmarkEmulatorAdvanceBlocks benchmarks producing a block that drains
// the given number of queued transactions.
func BenchmarkEmulatorAdvanceBlocks(b *testing.B) {
	for _, numTxs := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("Txs_%d", numTxs), func(b *testing.B) {
			utxos := BenchUtxos(numTxs)
			txs := BenchPaymentTxs(utxos)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				emulator := MustBenchEmulator(utxos)
				for _, tx := range txs {
					if _, err := emulator.SubmitTx(tx); err != nil {
						b.Fatalf("SubmitTx failed: %v", err)
					}
				}
				b.StartTimer()
				benchSink = emulator.AdvanceBlocks(1)
			}
		})
	}
}
