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
	"errors"
	"fmt"

	"github.com/blinklabs-io/ledgersim/cbor"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet uint8 = 0
	AddressNetworkMainnet uint8 = 1

	// Enterprise (payment key only) address header type. The emulator doesn't
	// model staking, so this is the only type it produces
	AddressTypeKeyNone uint8 = 0b0110
)

// Address is a payment-key address with network discrimination. It's a
// comparable value type so it can be used directly in equality checks and
// as a map key
type Address struct {
	networkId      uint8
	paymentKeyHash Blake2b224
}

// NewAddress returns an Address based on the provided bech32 address string
func NewAddress(addr string) (Address, error) {
	_, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return Address{}, err
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, err
	}
	a := Address{}
	if err := a.populateFromBytes(decoded); err != nil {
		return Address{}, err
	}
	return a, nil
}

// NewAddressFromBytes returns an Address based on the raw bytes provided
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	var ret Address
	if err := ret.populateFromBytes(addrBytes); err != nil {
		return Address{}, err
	}
	return ret, nil
}

// NewAddressFromKeyHash returns an Address for the provided network and
// payment key hash
func NewAddressFromKeyHash(networkId uint8, keyHash Blake2b224) (Address, error) {
	if networkId != AddressNetworkTestnet &&
		networkId != AddressNetworkMainnet {
		return Address{}, errors.New("invalid network ID")
	}
	return Address{
		networkId:      networkId,
		paymentKeyHash: keyHash,
	}, nil
}

func (a *Address) populateFromBytes(data []byte) error {
	if len(data) != AddressHashSize+1 {
		return fmt.Errorf("invalid address length: %d", len(data))
	}
	header := data[0]
	if (header&AddressHeaderTypeMask)>>4 != AddressTypeKeyNone {
		return fmt.Errorf("unsupported address type: %#02x", header)
	}
	a.networkId = header & AddressHeaderNetworkMask
	if a.networkId != AddressNetworkTestnet &&
		a.networkId != AddressNetworkMainnet {
		return fmt.Errorf("invalid network ID: %d", a.networkId)
	}
	a.paymentKeyHash = NewBlake2b224(data[1:])
	return nil
}

func (a Address) NetworkId() uint8 {
	return a.networkId
}

// PaymentKeyHash returns the Blake2b224 hash of the payment key
func (a Address) PaymentKeyHash() Blake2b224 {
	return a.paymentKeyHash
}

// Bytes returns the underlying bytes for the address
func (a Address) Bytes() []byte {
	ret := make([]byte, 0, AddressHashSize+1)
	header := (AddressTypeKeyNone << 4) | (a.networkId & AddressHeaderNetworkMask)
	ret = append(ret, header)
	ret = append(ret, a.paymentKeyHash.Bytes()...)
	return ret
}

func (a Address) generateHRP() string {
	ret := "addr"
	// Add test suffix if not mainnet
	if a.networkId != AddressNetworkMainnet {
		ret += "_test"
	}
	return ret
}

// String returns the bech32-encoded version of the address
func (a Address) String() string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(a.Bytes(), 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(a.generateHRP(), convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	tmpData := []byte{}
	if _, err := cbor.Decode(data, &tmpData); err != nil {
		return err
	}
	return a.populateFromBytes(tmpData)
}

func (a *Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.Bytes())
}
