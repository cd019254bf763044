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

// Package cbor wraps the upstream CBOR library with deterministic encoding
// options and helpers for types that retain their original CBOR
package cbor

import (
	_cbor "github.com/fxamacker/cbor/v2"
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Useful for embedding and easier to remember
type StructAsArray struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_ struct{} `cbor:",toarray"`
}

type DecodeStoreCborInterface interface {
	Cbor() []byte
	SetCbor([]byte)
}

type DecodeStoreCbor struct {
	cborData []byte
}

// SetCbor stores a copy of the provided CBOR data
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if cborData == nil {
		d.cborData = nil
		return
	}
	d.cborData = make([]byte, len(cborData))
	copy(d.cborData, cborData)
}

// Cbor returns the original CBOR for the object
func (d *DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// UnmarshalCbor decodes the specified CBOR into the destination object and stores
// the original CBOR. The destination object's UnmarshalCBOR() function is bypassed
// to avoid recursion
func (d *DecodeStoreCbor) UnmarshalCbor(
	cborData []byte,
	dest DecodeStoreCborInterface,
) error {
	if err := DecodeGeneric(cborData, dest); err != nil {
		return err
	}
	// Store a copy of the original CBOR data
	// This must be done after DecodeGeneric, or it gets wiped out when using struct
	// embedding and the DecodeStoreCbor struct is embedded at a deeper level
	d.SetCbor(cborData)
	return nil
}
