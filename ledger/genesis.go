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
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/blinklabs-io/ledgersim/cbor"
)

// GenesisRat wraps big.Rat to parse decimal JSON values without losing
// precision to an intermediate float
type GenesisRat struct {
	*big.Rat
}

func (r *GenesisRat) UnmarshalJSON(data []byte) error {
	r.Rat = new(big.Rat)
	if _, ok := r.Rat.SetString(string(data)); !ok {
		return fmt.Errorf("invalid rational number: %s", data)
	}
	return nil
}

func (r GenesisRat) MarshalJSON() ([]byte, error) {
	if r.Rat == nil {
		return []byte("null"), nil
	}
	f, _ := r.Rat.Float64()
	return json.Marshal(f)
}

// Genesis holds the chain configuration supplied at emulator construction:
// the clock parameters, the protocol parameters, and the initial fund
// distribution. SlotLength is in milliseconds
type Genesis struct {
	SystemStart        time.Time          `json:"systemStart"`
	NetworkMagic       uint32             `json:"networkMagic"`
	NetworkId          string             `json:"networkId"`
	ActiveSlotsCoeff   *GenesisRat        `json:"activeSlotsCoeff"`
	EpochLength        uint               `json:"epochLength"`
	SlotLength         uint               `json:"slotLength"`
	MaxLovelaceSupply  uint64             `json:"maxLovelaceSupply"`
	ProtocolParameters ProtocolParameters `json:"protocolParams"`
	InitialFunds       map[string]uint64  `json:"initialFunds"`
}

// DefaultGenesis returns a genesis with mainnet-like clock and protocol
// parameters, a testnet network ID, and no initial funds
func DefaultGenesis() Genesis {
	return Genesis{
		SystemStart:        time.Unix(1596059091, 0).UTC(),
		NetworkMagic:       42,
		NetworkId:          "testnet",
		ActiveSlotsCoeff:   &GenesisRat{big.NewRat(1, 20)},
		EpochLength:        432000,
		SlotLength:         1000,
		MaxLovelaceSupply:  45000000000000000,
		ProtocolParameters: DefaultProtocolParameters(),
	}
}

func NewGenesisFromReader(r io.Reader) (Genesis, error) {
	var ret Genesis
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ret); err != nil {
		return ret, err
	}
	return ret, nil
}

func NewGenesisFromFile(path string) (Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return Genesis{}, err
	}
	defer f.Close()
	return NewGenesisFromReader(f)
}

// NetworkIdValue maps the genesis network name onto the address header
// network bits
func (g *Genesis) NetworkIdValue() (uint8, error) {
	switch g.NetworkId {
	case "mainnet", "Mainnet":
		return AddressNetworkMainnet, nil
	case "testnet", "Testnet":
		return AddressNetworkTestnet, nil
	}
	return 0, fmt.Errorf("unknown network ID: %s", g.NetworkId)
}

// GenesisUtxos returns the UTXOs representing the genesis initial funds.
// Each entry becomes a single output keyed by the hash of its address
func (g *Genesis) GenesisUtxos() ([]Utxo, error) {
	networkId, err := g.NetworkIdValue()
	if err != nil {
		return nil, err
	}
	ret := []Utxo{}
	for address, amount := range g.InitialFunds {
		tmpAddr, err := NewAddress(address)
		if err != nil {
			return nil, err
		}
		if tmpAddr.NetworkId() != networkId {
			return nil, fmt.Errorf(
				"initial funds address %s does not match genesis network %s",
				address,
				g.NetworkId,
			)
		}
		addrBytes, err := cbor.Encode(&tmpAddr)
		if err != nil {
			return nil, err
		}
		ret = append(
			ret,
			Utxo{
				Id: TransactionInput{
					TxId:        Blake2b256Hash(addrBytes),
					OutputIndex: 0,
				},
				Output: NewTransactionOutput(tmpAddr, amount, nil),
			},
		)
	}
	return ret, nil
}
