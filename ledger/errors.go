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
	"fmt"
	"math/big"
	"strings"
)

// ValidationError represents a structured validation error with additional context
type ValidationError struct {
	Type    ValidationErrorType
	Message string
	Details map[string]any
	Cause   error
}

type ValidationErrorType string

const (
	ValidationErrorTypeTransaction   ValidationErrorType = "transaction"
	ValidationErrorTypeConfiguration ValidationErrorType = "configuration"
)

func (e ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new structured validation error
func NewValidationError(
	errType ValidationErrorType,
	message string,
	details map[string]any,
	cause error,
) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

type InputSetEmptyUtxoError struct{}

func (InputSetEmptyUtxoError) Error() string {
	return "input set empty"
}

type OutputSetEmptyUtxoError struct{}

func (OutputSetEmptyUtxoError) Error() string {
	return "output set empty"
}

type BadInputsUtxoError struct {
	Inputs []TransactionInput
}

func (e BadInputsUtxoError) Error() string {
	tmpInputs := make([]string, len(e.Inputs))
	for idx, tmpInput := range e.Inputs {
		tmpInputs[idx] = tmpInput.String()
	}
	return "bad input(s): " + strings.Join(tmpInputs, ", ")
}

type MaxTxSizeUtxoError struct {
	TxSize    uint
	MaxTxSize uint
}

func (e MaxTxSizeUtxoError) Error() string {
	return fmt.Sprintf(
		"transaction size too large: size %d, max %d",
		e.TxSize,
		e.MaxTxSize,
	)
}

type FeeTooSmallUtxoError struct {
	Provided uint64
	Min      uint64
}

func (e FeeTooSmallUtxoError) Error() string {
	return fmt.Sprintf(
		"fee too small: provided %d, minimum %d",
		e.Provided,
		e.Min,
	)
}

type OutputTooSmallUtxoError struct {
	OutputIndex int
	Required    uint64
	Provided    uint64
}

func (e OutputTooSmallUtxoError) Error() string {
	return fmt.Sprintf(
		"output too small: output %d provided %d, minimum %d",
		e.OutputIndex,
		e.Provided,
		e.Required,
	)
}

type MintAdaUtxoError struct {
	Minted *big.Int
	Burned *big.Int
}

func (e MintAdaUtxoError) Error() string {
	return fmt.Sprintf(
		"lovelace cannot be minted or burned: minted %d, burned %d",
		e.Minted,
		e.Burned,
	)
}

type ValueNotConservedUtxoError struct {
	Asset    AssetId
	Consumed *big.Int
	Minted   *big.Int
	Produced *big.Int
}

func (e ValueNotConservedUtxoError) Error() string {
	available := new(big.Int).Add(e.Consumed, e.Minted)
	diff := new(big.Int).Sub(e.Produced, available)
	detail := fmt.Sprintf("destroys %d", new(big.Int).Neg(diff))
	if diff.Sign() > 0 {
		detail = fmt.Sprintf("creates %d from nothing", diff)
	}
	return fmt.Sprintf(
		"value not conserved for %s: consumed %d, minted %d, produced %d (transaction %s)",
		e.Asset,
		e.Consumed,
		e.Minted,
		e.Produced,
		detail,
	)
}

type NotFoundUtxoError struct {
	Input TransactionInput
}

func (e NotFoundUtxoError) Error() string {
	return "UTxO not found: " + e.Input.String()
}
