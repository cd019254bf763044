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
	"math/big"
	"slices"

	"github.com/blinklabs-io/ledgersim/cbor"
)

// UtxoValidationRuleFunc represents a function that validates a transaction
// against a specific UTXO validation rule.
type UtxoValidationRuleFunc func(
	tx *Transaction,
	slot uint64,
	ledgerState LedgerState,
	protocolParams ProtocolParameters,
) error

// UtxoValidationRules lists the validation rules in evaluation order, with
// the cheapest and most common failures first. A transaction that fails an
// earlier rule is never evaluated against a later one
var UtxoValidationRules = []UtxoValidationRuleFunc{
	UtxoValidateBadInputsUtxo,
	UtxoValidateInputSetEmptyUtxo,
	UtxoValidateOutputSetEmptyUtxo,
	UtxoValidateMaxTxSizeUtxo,
	UtxoValidateFeeTooSmallUtxo,
	UtxoValidateOutputTooSmallUtxo,
	UtxoValidateValueNotConservedUtxo,
}

// VerifyTransaction runs the provided validation rules in order and wraps
// the first error encountered into a ValidationError.
func VerifyTransaction(
	tx *Transaction,
	slot uint64,
	ledgerState LedgerState,
	protocolParams ProtocolParameters,
	validationRules []UtxoValidationRuleFunc,
) error {
	for i, rule := range validationRules {
		if err := rule(tx, slot, ledgerState, protocolParams); err != nil {
			details := map[string]any{"rule_index": i, "slot": slot}
			if tx != nil {
				details["tx_hash"] = tx.Hash().String()
			}
			return NewValidationError(
				ValidationErrorTypeTransaction,
				"transaction validation failed",
				details,
				err,
			)
		}
	}
	return nil
}

// UtxoValidateBadInputsUtxo ensures that all inputs are present in the ledger state (have not been spent)
func UtxoValidateBadInputsUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	var badInputs []TransactionInput
	for _, tmpInput := range tx.Inputs() {
		_, err := ls.UtxoById(tmpInput)
		if err != nil {
			badInputs = append(badInputs, tmpInput)
		}
	}
	if len(badInputs) == 0 {
		return nil
	}
	return BadInputsUtxoError{
		Inputs: badInputs,
	}
}

// UtxoValidateInputSetEmptyUtxo ensures that the input set is not empty
func UtxoValidateInputSetEmptyUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	if len(tx.Inputs()) > 0 {
		return nil
	}
	return InputSetEmptyUtxoError{}
}

// UtxoValidateOutputSetEmptyUtxo ensures that the output set is not empty
func UtxoValidateOutputSetEmptyUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	if len(tx.Outputs()) > 0 {
		return nil
	}
	return OutputSetEmptyUtxoError{}
}

// UtxoValidateMaxTxSizeUtxo ensures that a transaction does not exceed the max size
func UtxoValidateMaxTxSizeUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	txBytes := tx.Cbor()
	if uint(len(txBytes)) <= pp.MaxTxSize {
		return nil
	}
	return MaxTxSizeUtxoError{
		TxSize:    uint(len(txBytes)),
		MaxTxSize: pp.MaxTxSize,
	}
}

// UtxoValidateFeeTooSmallUtxo ensures that the fee is at least the calculated minimum
func UtxoValidateFeeTooSmallUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	minFee := MinFeeTx(tx, pp)
	if tx.Fee() >= minFee {
		return nil
	}
	return FeeTooSmallUtxoError{
		Provided: tx.Fee(),
		Min:      minFee,
	}
}

// UtxoValidateOutputTooSmallUtxo ensures that every output carries at least
// the minimum lovelace deposit for its size. The first deficient output in
// order is reported
func UtxoValidateOutputTooSmallUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	for idx, tmpOutput := range tx.Outputs() {
		minCoin, err := MinCoinTxOut(&tmpOutput, pp)
		if err != nil {
			return err
		}
		if tmpOutput.Amount() >= minCoin {
			continue
		}
		return OutputTooSmallUtxoError{
			OutputIndex: idx,
			Required:    minCoin,
			Provided:    tmpOutput.Amount(),
		}
	}
	return nil
}

// UtxoValidateValueNotConservedUtxo ensures that for every asset the
// consumed value plus the minted value equals the produced value, counting
// the fee as produced lovelace. Minting or burning lovelace itself is
// rejected before the equation is checked, balanced or not
func UtxoValidateValueNotConservedUtxo(
	tx *Transaction,
	slot uint64,
	ls LedgerState,
	pp ProtocolParameters,
) error {
	if mint := tx.Mint(); mint != nil {
		adaMint := mint.Asset(AdaAssetId.PolicyId(), AdaAssetId.AssetName())
		if adaMint.Sign() != 0 {
			minted := new(big.Int)
			burned := new(big.Int)
			if adaMint.Sign() > 0 {
				minted.Set(adaMint)
			} else {
				burned.Neg(adaMint)
			}
			return MintAdaUtxoError{
				Minted: minted,
				Burned: burned,
			}
		}
	}
	// Calculate consumed value from resolved inputs. Unresolved inputs are
	// excluded here since the bad-inputs rule reports them
	consumed := NewValue(0)
	for _, tmpInput := range tx.Inputs() {
		tmpUtxo, err := ls.UtxoById(tmpInput)
		if err != nil {
			continue
		}
		consumed = consumed.Add(tmpUtxo.Output.Value())
	}
	// Calculate produced value from outputs
	produced := NewValue(0)
	for _, tmpOutput := range tx.Outputs() {
		produced = produced.Add(tmpOutput.Value())
	}
	// Check the equation per asset id in canonical order so the first
	// reported violation is deterministic
	for _, id := range conservedAssetIds(consumed, produced, tx.Mint()) {
		c := consumed.Asset(id)
		p := produced.Asset(id)
		m := new(big.Int)
		if mint := tx.Mint(); mint != nil {
			m = mint.Asset(id.PolicyId(), id.AssetName())
		}
		if id.IsAda() {
			p.Add(p, new(big.Int).SetUint64(tx.Fee()))
		}
		lhs := new(big.Int).Add(c, m)
		if lhs.Cmp(p) == 0 {
			continue
		}
		return ValueNotConservedUtxoError{
			Asset:    id,
			Consumed: c,
			Minted:   m,
			Produced: p,
		}
	}
	return nil
}

// conservedAssetIds returns the union of asset ids across the consumed
// value, the produced value, and the mint bundle, ordered with lovelace
// first and the rest ascending by policy id and asset name
func conservedAssetIds(consumed Value, produced Value, mint *MultiAsset) []AssetId {
	ret := []AssetId{}
	seen := map[AssetId]struct{}{}
	sources := [][]AssetId{
		consumed.AssetIds(),
		produced.AssetIds(),
	}
	if mint != nil {
		sources = append(sources, mint.AssetIds())
	}
	for _, src := range sources {
		for _, id := range src {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ret = append(ret, id)
		}
	}
	slices.SortFunc(ret, compareAssetIds)
	return ret
}

// CalculateMinFee computes the minimum fee for a transaction given its
// CBOR-encoded size and the protocol parameters MinFeeA and MinFeeB.
func CalculateMinFee(txSize int, minFeeA uint, minFeeB uint) uint64 {
	return uint64(minFeeA*uint(txSize) + minFeeB) //nolint:gosec
}

// MinFeeTx calculates the minimum required fee for a transaction based on
// its serialized size and the protocol parameters
func MinFeeTx(
	tx *Transaction,
	pparams ProtocolParameters,
) uint64 {
	return CalculateMinFee(
		len(tx.Cbor()),
		pparams.MinFeeA,
		pparams.MinFeeB,
	)
}

// MinCoinTxOut calculates the minimum coin for a transaction output based
// on its serialized size and the protocol parameters. Larger addresses,
// more numerous assets, and larger datums all raise the requirement
func MinCoinTxOut(
	output *TransactionOutput,
	pparams ProtocolParameters,
) (uint64, error) {
	txOutBytes, err := cbor.Encode(output)
	if err != nil {
		return 0, err
	}
	minCoinTxOut := pparams.AdaPerUtxoByte * uint64(len(txOutBytes))
	return minCoinTxOut, nil
}
