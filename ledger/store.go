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

package ledger

import (
	"bytes"
	"fmt"
	"slices"
)

// Store is an in-memory UTXO set. It is not safe for concurrent use and
// relies on the caller for synchronization
type Store struct {
	utxos map[TransactionInput]Utxo
}

func NewStore() *Store {
	return &Store{
		utxos: make(map[TransactionInput]Utxo),
	}
}

func (s *Store) UtxoById(input TransactionInput) (Utxo, error) {
	utxo, ok := s.utxos[input]
	if !ok {
		return Utxo{}, NotFoundUtxoError{Input: input}
	}
	return utxo, nil
}

func (s *Store) AddUtxo(utxo Utxo) {
	s.utxos[utxo.Id] = utxo
}

func (s *Store) Len() int {
	return len(s.utxos)
}

// Apply atomically removes the UTXOs consumed by the transaction and adds
// the UTXOs it produces. The transaction must have been validated against
// this exact state. Applying a transaction with an unresolved input panics
func (s *Store) Apply(tx *Transaction) {
	for _, input := range tx.Consumed() {
		if _, ok := s.utxos[input]; !ok {
			panic(fmt.Sprintf(
				"applying transaction %s with unresolved input %s",
				tx.Hash(),
				input,
			))
		}
	}
	for _, input := range tx.Consumed() {
		delete(s.utxos, input)
	}
	for _, utxo := range tx.Produced() {
		s.utxos[utxo.Id] = utxo
	}
}

// Utxos returns all entries ordered by transaction hash and output index
func (s *Store) Utxos() []Utxo {
	ret := make([]Utxo, 0, len(s.utxos))
	for _, utxo := range s.utxos {
		ret = append(ret, utxo)
	}
	slices.SortFunc(
		ret,
		func(a, b Utxo) int { return compareTransactionInputs(a.Id, b.Id) },
	)
	return ret
}

// UtxosByAddress returns the entries locked by the given address, ordered
// by transaction hash and output index
func (s *Store) UtxosByAddress(address Address) []Utxo {
	ret := []Utxo{}
	for _, utxo := range s.utxos {
		if utxo.Output.Address() != address {
			continue
		}
		ret = append(ret, utxo)
	}
	slices.SortFunc(
		ret,
		func(a, b Utxo) int { return compareTransactionInputs(a.Id, b.Id) },
	)
	return ret
}

// Snapshot returns a deep copy of the store. Mutating the copy or values
// reached through it leaves the original untouched
func (s *Store) Snapshot() *Store {
	ret := NewStore()
	for id, utxo := range s.utxos {
		ret.utxos[id] = copyUtxo(utxo)
	}
	return ret
}

func copyUtxo(utxo Utxo) Utxo {
	ret := Utxo{
		Id: utxo.Id,
		Output: TransactionOutput{
			OutputAddress: utxo.Output.OutputAddress,
			OutputAmount: TransactionOutputValue{
				Amount: utxo.Output.OutputAmount.Amount,
				Assets: copyMultiAsset(utxo.Output.OutputAmount.Assets),
			},
			OutputDatum:     bytes.Clone(utxo.Output.OutputDatum),
			OutputScriptRef: bytes.Clone(utxo.Output.OutputScriptRef),
		},
	}
	return ret
}

func copyMultiAsset(src *MultiAsset) *MultiAsset {
	if src == nil {
		return nil
	}
	dst := NewMultiAsset(nil)
	for _, policyId := range src.Policies() {
		for _, assetName := range src.Assets(policyId) {
			dst.SetAsset(policyId, assetName, src.Asset(policyId, assetName))
		}
	}
	return &dst
}
