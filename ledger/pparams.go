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
	cardano "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// ProtocolParameters holds the subset of protocol parameters used during
// transaction validation. They are supplied at construction and never
// mutated by the ledger itself
type ProtocolParameters struct {
	MinFeeA          uint   `json:"minFeeA"`
	MinFeeB          uint   `json:"minFeeB"`
	MaxBlockBodySize uint   `json:"maxBlockBodySize"`
	MaxTxSize        uint   `json:"maxTxSize"`
	AdaPerUtxoByte   uint64 `json:"adaPerUtxoByte"`
}

// DefaultProtocolParameters returns parameters matching the Cardano mainnet
// values for the parameters the simulator models
func DefaultProtocolParameters() ProtocolParameters {
	return ProtocolParameters{
		MinFeeA:          44,
		MinFeeB:          155381,
		MaxBlockBodySize: 90112,
		MaxTxSize:        16384,
		AdaPerUtxoByte:   4310,
	}
}

// ProtocolParameterUpdate carries optional overrides for individual protocol
// parameters. Nil fields leave the current value unchanged
type ProtocolParameterUpdate struct {
	MinFeeA          *uint
	MinFeeB          *uint
	MaxBlockBodySize *uint
	MaxTxSize        *uint
	AdaPerUtxoByte   *uint64
}

func (p *ProtocolParameters) Update(paramUpdate *ProtocolParameterUpdate) {
	if paramUpdate.MinFeeA != nil {
		p.MinFeeA = *paramUpdate.MinFeeA
	}
	if paramUpdate.MinFeeB != nil {
		p.MinFeeB = *paramUpdate.MinFeeB
	}
	if paramUpdate.MaxBlockBodySize != nil {
		p.MaxBlockBodySize = *paramUpdate.MaxBlockBodySize
	}
	if paramUpdate.MaxTxSize != nil {
		p.MaxTxSize = *paramUpdate.MaxTxSize
	}
	if paramUpdate.AdaPerUtxoByte != nil {
		p.AdaPerUtxoByte = *paramUpdate.AdaPerUtxoByte
	}
}

func (p *ProtocolParameters) Utxorpc() *cardano.PParams {
	// #nosec G115
	return &cardano.PParams{
		CoinsPerUtxoByte:  p.AdaPerUtxoByte,
		MaxTxSize:         uint64(p.MaxTxSize),
		MinFeeCoefficient: uint64(p.MinFeeA),
		MinFeeConstant:    uint64(p.MinFeeB),
		MaxBlockBodySize:  uint64(p.MaxBlockBodySize),
	}
}
