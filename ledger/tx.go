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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/ledgersim/cbor"

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// TransactionInput references an output of a previous transaction by that
// transaction's hash and the output's position within it
type TransactionInput struct {
	cbor.StructAsArray
	TxId        Blake2b256
	OutputIndex uint32
}

// NewTransactionInput creates a TransactionInput from a transaction hash
// given as a hex string. It panics if the hash cannot be decoded or the
// index is out of range
func NewTransactionInput(transactionId string, outputIndex int) TransactionInput {
	hash, err := hex.DecodeString(transactionId)
	if err != nil {
		panic("failed to decode transaction hash: " + err.Error())
	}
	if outputIndex < 0 || outputIndex > 0xFFFFFFFF {
		panic("outputIndex out of range")
	}
	return TransactionInput{
		TxId:        NewBlake2b256(hash),
		OutputIndex: uint32(outputIndex),
	}
}

func (i TransactionInput) Id() Blake2b256 {
	return i.TxId
}

func (i TransactionInput) Index() uint32 {
	return i.OutputIndex
}

func (i TransactionInput) Utxorpc() *utxorpc.TxInput {
	return &utxorpc.TxInput{
		TxHash:      i.TxId.Bytes(),
		OutputIndex: i.OutputIndex,
	}
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId, i.OutputIndex)
}

func (i TransactionInput) MarshalJSON() ([]byte, error) {
	return []byte("\"" + i.String() + "\""), nil
}

// compareTransactionInputs provides the canonical input ordering: by
// transaction hash, then by output index
func compareTransactionInputs(a, b TransactionInput) int {
	if c := bytes.Compare(a.TxId.Bytes(), b.TxId.Bytes()); c != 0 {
		return c
	}
	if a.OutputIndex != b.OutputIndex {
		if a.OutputIndex < b.OutputIndex {
			return -1
		}
		return 1
	}
	return 0
}

// TransactionOutputValue is the value of an output. An output carrying only
// base-currency coin is encoded as a bare unsigned integer, while an output
// that also carries native assets is encoded as a [coin, assets] pair
type TransactionOutputValue struct {
	cbor.StructAsArray
	Amount uint64
	Assets *MultiAsset
}

func (v *TransactionOutputValue) UnmarshalCBOR(data []byte) error {
	// Try to parse as simple amount first
	var tmpAmount uint64
	if _, err := cbor.Decode(data, &tmpAmount); err == nil {
		v.Amount = tmpAmount
		return nil
	}
	return cbor.DecodeGeneric(data, v)
}

func (v *TransactionOutputValue) MarshalCBOR() ([]byte, error) {
	if v.Assets == nil {
		return cbor.Encode(v.Amount)
	}
	return cbor.EncodeGeneric(v)
}

// TransactionOutput locks a value at an address. The datum and script
// reference fields are carried as opaque bytes
type TransactionOutput struct {
	cbor.DecodeStoreCbor
	OutputAddress   Address                `cbor:"0,keyasint,omitempty"`
	OutputAmount    TransactionOutputValue `cbor:"1,keyasint,omitempty"`
	OutputDatum     []byte                 `cbor:"2,keyasint,omitempty"`
	OutputScriptRef []byte                 `cbor:"3,keyasint,omitempty"`
}

// NewTransactionOutput creates an output paying the given coin amount, and
// optionally native assets, to an address
func NewTransactionOutput(
	address Address,
	amount uint64,
	assets *MultiAsset,
) TransactionOutput {
	return TransactionOutput{
		OutputAddress: address,
		OutputAmount: TransactionOutputValue{
			Amount: amount,
			Assets: assets,
		},
	}
}

func (o *TransactionOutput) UnmarshalCBOR(cborData []byte) error {
	return o.UnmarshalCbor(cborData, o)
}

func (o TransactionOutput) Address() Address {
	return o.OutputAddress
}

func (o TransactionOutput) Amount() uint64 {
	return o.OutputAmount.Amount
}

func (o TransactionOutput) Assets() *MultiAsset {
	return o.OutputAmount.Assets
}

// Value returns the full value locked by the output, coin and assets both
func (o TransactionOutput) Value() Value {
	return NewValueWithAssets(o.OutputAmount.Amount, o.OutputAmount.Assets)
}

func (o TransactionOutput) Datum() []byte {
	return o.OutputDatum
}

func (o TransactionOutput) ScriptRef() []byte {
	return o.OutputScriptRef
}

func (o TransactionOutput) MarshalJSON() ([]byte, error) {
	tmpObj := struct {
		Address Address     `json:"address"`
		Amount  uint64      `json:"amount"`
		Assets  *MultiAsset `json:"assets,omitempty"`
		Datum   string      `json:"datum,omitempty"`
	}{
		Address: o.OutputAddress,
		Amount:  o.OutputAmount.Amount,
		Assets:  o.OutputAmount.Assets,
		Datum:   hex.EncodeToString(o.OutputDatum),
	}
	return json.Marshal(&tmpObj)
}

func (o TransactionOutput) Utxorpc() *utxorpc.TxOutput {
	var address []byte
	if o.OutputAddress.Bytes() == nil {
		address = []byte{}
	} else {
		address = o.OutputAddress.Bytes()
	}

	var assets []*utxorpc.Multiasset
	if o.Assets() != nil {
		tmpAssets := o.Assets()
		for _, policyId := range tmpAssets.Policies() {
			ma := &utxorpc.Multiasset{
				PolicyId: policyId.Bytes(),
			}
			for _, assetName := range tmpAssets.Assets(policyId) {
				amount := tmpAssets.Asset(policyId, assetName)
				asset := &utxorpc.Asset{
					Name:       assetName,
					OutputCoin: amount.Uint64(),
				}
				ma.Assets = append(ma.Assets, asset)
			}
			assets = append(assets, ma)
		}
	}

	return &utxorpc.TxOutput{
		Address: address,
		Coin:    o.Amount(),
		Assets:  assets,
	}
}

// Transaction moves value from consumed UTXOs to newly created outputs. It
// is CBOR-encoded as a map with integer keys matching the on-chain
// transaction body layout, and its hash over that encoding is its identity
type Transaction struct {
	cbor.DecodeStoreCbor
	hash      *Blake2b256
	TxInputs  []TransactionInput  `cbor:"0,keyasint,omitempty"`
	TxOutputs []TransactionOutput `cbor:"1,keyasint,omitempty"`
	TxFee     uint64              `cbor:"2,keyasint,omitempty"`
	TxMint    *MultiAsset         `cbor:"9,keyasint,omitempty"`
}

// NewTransaction creates a transaction from its parts. The mint field may
// be nil when the transaction mints and burns nothing
func NewTransaction(
	inputs []TransactionInput,
	outputs []TransactionOutput,
	fee uint64,
	mint *MultiAsset,
) *Transaction {
	return &Transaction{
		TxInputs:  inputs,
		TxOutputs: outputs,
		TxFee:     fee,
		TxMint:    mint,
	}
}

// NewTransactionFromCbor parses a CBOR-encoded transaction
func NewTransactionFromCbor(data []byte) (*Transaction, error) {
	var tx Transaction
	if _, err := cbor.Decode(data, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &tx, nil
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	return t.UnmarshalCbor(cborData, t)
}

func (t *Transaction) Inputs() []TransactionInput {
	return t.TxInputs
}

func (t *Transaction) Outputs() []TransactionOutput {
	return t.TxOutputs
}

func (t *Transaction) Fee() uint64 {
	return t.TxFee
}

func (t *Transaction) Mint() *MultiAsset {
	return t.TxMint
}

// Hash returns the transaction identity, the Blake2b-256 digest of the
// transaction's CBOR encoding. The hash is computed on first use and cached
func (t *Transaction) Hash() Blake2b256 {
	if t.hash == nil {
		tmpHash := Blake2b256Hash(t.Cbor())
		t.hash = &tmpHash
	}
	return *t.hash
}

// Cbor returns the transaction's serialized form. Transactions decoded from
// CBOR return the original bytes, while locally constructed transactions are
// encoded on first use and the result cached
func (t *Transaction) Cbor() []byte {
	cborData := t.DecodeStoreCbor.Cbor()
	if cborData != nil {
		return cborData
	}
	cborData, err := cbor.Encode(t)
	if err != nil {
		panic("CBOR encoding of transaction failed: " + err.Error())
	}
	t.SetCbor(cborData)
	return cborData
}

// Consumed returns the inputs spent by the transaction
func (t *Transaction) Consumed() []TransactionInput {
	return t.Inputs()
}

// Produced returns the UTXOs created by the transaction, keyed by the
// transaction's own hash and each output's position
func (t *Transaction) Produced() []Utxo {
	ret := []Utxo{}
	for idx, output := range t.Outputs() {
		ret = append(
			ret,
			Utxo{
				Id: TransactionInput{
					TxId:        t.Hash(),
					OutputIndex: uint32(idx), // #nosec G115
				},
				Output: output,
			},
		)
	}
	return ret
}

func (t *Transaction) Utxorpc() *utxorpc.Tx {
	txi := []*utxorpc.TxInput{}
	txo := []*utxorpc.TxOutput{}
	for _, input := range t.Inputs() {
		txi = append(txi, input.Utxorpc())
	}
	for _, output := range t.Outputs() {
		txo = append(txo, output.Utxorpc())
	}
	return &utxorpc.Tx{
		Inputs:  txi,
		Outputs: txo,
		Fee:     t.Fee(),
		Hash:    t.Hash().Bytes(),
	}
}

// Utxo pairs an unspent output with the input that identifies it
type Utxo struct {
	Id     TransactionInput
	Output TransactionOutput
}
