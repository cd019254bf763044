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

package ledger_test

import (
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/ledgersim/ledger"
)

const testGenesisConfig = `
{
  "systemStart": "2020-07-29T21:44:51Z",
  "networkMagic": 42,
  "networkId": "Testnet",
  "activeSlotsCoeff": 0.05,
  "epochLength": 432000,
  "slotLength": 1000,
  "maxLovelaceSupply": 45000000000000000,
  "protocolParams": {
    "minFeeA": 44,
    "minFeeB": 155381,
    "maxBlockBodySize": 90112,
    "maxTxSize": 16384,
    "adaPerUtxoByte": 4310
  },
  "initialFunds": {
    "addr_test1vp3hs5m8seylj6ly2rvvjqacnscwqsglsnzj2rg8tk59w2sw6u2mt": 10000000000,
    "addr_test1vrtzjlxzdgjl439jflkat0jjfva5czkxsvz3rke3lkjwg5gahj9q7": 5000000000
  }
}
`

var expectedGenesisObj = ledger.Genesis{
	SystemStart: time.Date(
		2020,
		time.July,
		29,
		21,
		44,
		51,
		0,
		time.UTC,
	),
	NetworkMagic: 42,
	NetworkId:    "Testnet",
	ActiveSlotsCoeff: &ledger.GenesisRat{
		Rat: big.NewRat(5, 100),
	},
	EpochLength:       432000,
	SlotLength:        1000,
	MaxLovelaceSupply: 45000000000000000,
	ProtocolParameters: ledger.ProtocolParameters{
		MinFeeA:          44,
		MinFeeB:          155381,
		MaxBlockBodySize: 90112,
		MaxTxSize:        16384,
		AdaPerUtxoByte:   4310,
	},
	InitialFunds: map[string]uint64{
		testAliceAddr: 10_000_000_000,
		testBobAddr:   5_000_000_000,
	},
}

func TestGenesisFromJson(t *testing.T) {
	tmpGenesis, err := ledger.NewGenesisFromReader(
		strings.NewReader(testGenesisConfig),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reflect.DeepEqual(tmpGenesis, expectedGenesisObj) {
		t.Fatalf(
			"did not get expected object:\n     got: %#v\n  wanted: %#v",
			tmpGenesis,
			expectedGenesisObj,
		)
	}
}

func TestGenesisFromJsonUnknownField(t *testing.T) {
	tmpJson := `{"networkId": "Testnet", "bogusField": 123}`
	_, err := ledger.NewGenesisFromReader(strings.NewReader(tmpJson))
	if err == nil {
		t.Fatal("expected failure on unknown field, got none")
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("did not get expected error: %s", err)
	}
}

func TestGenesisNetworkIdValue(t *testing.T) {
	testDefs := []struct {
		networkId     string
		expectedValue uint8
		expectedErr   string
	}{
		{
			networkId:     "mainnet",
			expectedValue: ledger.AddressNetworkMainnet,
		},
		{
			networkId:     "Mainnet",
			expectedValue: ledger.AddressNetworkMainnet,
		},
		{
			networkId:     "testnet",
			expectedValue: ledger.AddressNetworkTestnet,
		},
		{
			networkId:     "Testnet",
			expectedValue: ledger.AddressNetworkTestnet,
		},
		{
			networkId:   "devnet",
			expectedErr: "unknown network ID: devnet",
		},
	}
	for _, testDef := range testDefs {
		tmpGenesis := ledger.Genesis{NetworkId: testDef.networkId}
		networkId, err := tmpGenesis.NetworkIdValue()
		if testDef.expectedErr != "" {
			if err == nil || err.Error() != testDef.expectedErr {
				t.Fatalf(
					"did not get expected error: got %v, wanted %s",
					err,
					testDef.expectedErr,
				)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if networkId != testDef.expectedValue {
			t.Fatalf(
				"did not get expected network ID: got %d, wanted %d",
				networkId,
				testDef.expectedValue,
			)
		}
	}
}

func TestGenesisUtxos(t *testing.T) {
	expectedUtxos := map[string]struct {
		txId   string
		amount uint64
	}{
		testAliceAddr: {
			txId:   "e9e29e9a11e8bbe3f71178d8eb6375da6896689a8b0a94c5588386f081124dff",
			amount: 10_000_000_000,
		},
		testBobAddr: {
			txId:   "ea69a265081c2e17bf599e02117c2a90713a315794b1495392f101a54fa64e28",
			amount: 5_000_000_000,
		},
	}
	tmpGenesis, err := ledger.NewGenesisFromReader(
		strings.NewReader(testGenesisConfig),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	tmpGenesisUtxos, err := tmpGenesis.GenesisUtxos()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(tmpGenesisUtxos) != len(expectedUtxos) {
		t.Fatalf(
			"did not get expected count of genesis UTxOs: got %d, wanted %d",
			len(tmpGenesisUtxos),
			len(expectedUtxos),
		)
	}
	for _, tmpUtxo := range tmpGenesisUtxos {
		expected, ok := expectedUtxos[tmpUtxo.Output.Address().String()]
		if !ok {
			t.Fatalf(
				"got genesis UTxO for unexpected address: %s",
				tmpUtxo.Output.Address().String(),
			)
		}
		if tmpUtxo.Id.Id().String() != expected.txId {
			t.Fatalf(
				"did not get expected TxID: got %s, wanted %s",
				tmpUtxo.Id.Id().String(),
				expected.txId,
			)
		}
		if tmpUtxo.Id.Index() != 0 {
			t.Fatalf(
				"did not get expected output index: %d",
				tmpUtxo.Id.Index(),
			)
		}
		if tmpUtxo.Output.Amount() != expected.amount {
			t.Fatalf(
				"did not get expected amount: got %d, wanted %d",
				tmpUtxo.Output.Amount(),
				expected.amount,
			)
		}
	}
}

func TestGenesisUtxosNetworkMismatch(t *testing.T) {
	tmpGenesis := ledger.DefaultGenesis()
	tmpGenesis.InitialFunds = map[string]uint64{
		// Mainnet address with a testnet genesis
		"addr1v93hs5m8seylj6ly2rvvjqacnscwqsglsnzj2rg8tk59w2s4jgk5w": 1_000_000,
	}
	_, err := tmpGenesis.GenesisUtxos()
	if err == nil {
		t.Fatal("expected failure for mismatched network, got none")
	}
	if !strings.Contains(err.Error(), "does not match genesis network") {
		t.Fatalf("did not get expected error: %s", err)
	}
}

func TestDefaultGenesis(t *testing.T) {
	tmpGenesis := ledger.DefaultGenesis()
	if tmpGenesis.NetworkId != "testnet" {
		t.Fatalf(
			"did not get expected network ID: %s",
			tmpGenesis.NetworkId,
		)
	}
	if tmpGenesis.ActiveSlotsCoeff.Cmp(big.NewRat(1, 20)) != 0 {
		t.Fatalf(
			"did not get expected active slots coefficient: %s",
			tmpGenesis.ActiveSlotsCoeff.RatString(),
		)
	}
	if tmpGenesis.EpochLength != 432000 {
		t.Fatalf(
			"did not get expected epoch length: %d",
			tmpGenesis.EpochLength,
		)
	}
	if tmpGenesis.SlotLength != 1000 {
		t.Fatalf(
			"did not get expected slot length: %d",
			tmpGenesis.SlotLength,
		)
	}
	if !reflect.DeepEqual(
		tmpGenesis.ProtocolParameters,
		ledger.DefaultProtocolParameters(),
	) {
		t.Fatalf(
			"did not get expected protocol parameters: %#v",
			tmpGenesis.ProtocolParameters,
		)
	}
	tmpGenesisUtxos, err := tmpGenesis.GenesisUtxos()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(tmpGenesisUtxos) != 0 {
		t.Fatalf(
			"did not get expected count of genesis UTxOs: %d",
			len(tmpGenesisUtxos),
		)
	}
}
