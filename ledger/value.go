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
	"math/big"
	"slices"
	"strings"

	"github.com/blinklabs-io/ledgersim/cbor"
)

// AssetId identifies a single asset kind. The zero value (empty policy id and
// empty asset name) is the distinguished id for the base currency (lovelace)
type AssetId struct {
	policyId  Blake2b224
	assetName cbor.ByteString
}

// AdaAssetId is the distinguished asset id for lovelace
var AdaAssetId = AssetId{}

func NewAssetId(policyId Blake2b224, assetName []byte) AssetId {
	return AssetId{
		policyId:  policyId,
		assetName: cbor.NewByteString(assetName),
	}
}

func (a AssetId) PolicyId() Blake2b224 {
	return a.policyId
}

func (a AssetId) AssetName() []byte {
	return a.assetName.Bytes()
}

func (a AssetId) IsAda() bool {
	return a == AdaAssetId
}

func (a AssetId) String() string {
	if a.IsAda() {
		return "lovelace"
	}
	return a.policyId.String() + "." + hex.EncodeToString(a.assetName.Bytes())
}

// compareAssetIds orders asset ids with lovelace first, then ascending by
// policy id and asset name
func compareAssetIds(a, b AssetId) int {
	if a.IsAda() {
		if b.IsAda() {
			return 0
		}
		return -1
	}
	if b.IsAda() {
		return 1
	}
	if c := bytes.Compare(a.policyId.Bytes(), b.policyId.Bytes()); c != 0 {
		return c
	}
	return bytes.Compare(a.assetName.Bytes(), b.assetName.Bytes())
}

// MultiAsset represents a collection of policies, assets, and quantities.
// It's used for TX output assets and TX asset minting (negative values
// represent burning)
type MultiAsset struct {
	data map[Blake2b224]map[cbor.ByteString]*big.Int
}

// NewMultiAsset creates a MultiAsset with the specified data
func NewMultiAsset(
	data map[Blake2b224]map[cbor.ByteString]*big.Int,
) MultiAsset {
	if data == nil {
		data = make(map[Blake2b224]map[cbor.ByteString]*big.Int)
	}
	return MultiAsset{data: data}
}

// multiAssetJson is a convenience type for marshaling MultiAsset to JSON
type multiAssetJson struct {
	Name        string `json:"name"`
	NameHex     string `json:"nameHex"`
	PolicyId    string `json:"policyId"`
	Fingerprint string `json:"fingerprint"`
	Amount      string `json:"amount"`
}

func (m *MultiAsset) UnmarshalCBOR(data []byte) error {
	_, err := cbor.Decode(data, &(m.data))
	return err
}

func (m *MultiAsset) MarshalCBOR() ([]byte, error) {
	// The CBOR library is configured with SortCoreDeterministic, so direct encoding
	// of the map produces deterministic output without manual sorting
	return cbor.Encode(m.data)
}

func (m MultiAsset) MarshalJSON() ([]byte, error) {
	tmpAssets := make([]multiAssetJson, 0, len(m.data))
	for _, assetId := range m.AssetIds() {
		tmpAssets = append(
			tmpAssets,
			multiAssetJson{
				Name:     string(assetId.AssetName()),
				NameHex:  hex.EncodeToString(assetId.AssetName()),
				Amount:   bigIntToString(m.Asset(assetId.policyId, assetId.AssetName())),
				PolicyId: assetId.policyId.String(),
				Fingerprint: NewAssetFingerprint(
					assetId.policyId.Bytes(),
					assetId.AssetName(),
				).String(),
			},
		)
	}
	return json.Marshal(&tmpAssets)
}

func (m *MultiAsset) Policies() []Blake2b224 {
	ret := make([]Blake2b224, 0, len(m.data))
	for policyId := range m.data {
		ret = append(ret, policyId)
	}
	return ret
}

func (m *MultiAsset) Assets(policyId Blake2b224) [][]byte {
	assets, ok := m.data[policyId]
	if !ok {
		return nil
	}
	ret := make([][]byte, 0, len(assets))
	for assetName := range assets {
		ret = append(ret, assetName.Bytes())
	}
	return ret
}

// Asset returns the quantity of the specified asset. Nil or missing entries
// are returned as zero
func (m *MultiAsset) Asset(policyId Blake2b224, assetName []byte) *big.Int {
	policy, ok := m.data[policyId]
	if !ok {
		return new(big.Int)
	}
	amount := policy[cbor.NewByteString(assetName)]
	if amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(amount)
}

// SetAsset sets the quantity of the specified asset
func (m *MultiAsset) SetAsset(
	policyId Blake2b224,
	assetName []byte,
	amount *big.Int,
) {
	if m.data == nil {
		m.data = make(map[Blake2b224]map[cbor.ByteString]*big.Int)
	}
	if _, ok := m.data[policyId]; !ok {
		m.data[policyId] = make(map[cbor.ByteString]*big.Int)
	}
	m.data[policyId][cbor.NewByteString(assetName)] = new(big.Int).Set(amount)
}

// Add adds the provided assets to the receiver pointwise, treating absent
// entries as zero
func (m *MultiAsset) Add(assets *MultiAsset) {
	if assets == nil {
		return
	}
	for policy, policyAssets := range assets.data {
		for asset, amount := range policyAssets {
			newAmount := addBigInts(
				m.Asset(policy, asset.Bytes()),
				amount,
			)
			m.SetAsset(policy, asset.Bytes(), newAmount)
		}
	}
}

// Scale multiplies every quantity by the provided integer. Scaling by -1
// negates the assets, which turns minting into burning and vice versa
func (m *MultiAsset) Scale(k int64) MultiAsset {
	ret := NewMultiAsset(nil)
	factor := big.NewInt(k)
	for policy, policyAssets := range m.data {
		for asset, amount := range policyAssets {
			if amount == nil {
				continue
			}
			ret.SetAsset(
				policy,
				asset.Bytes(),
				new(big.Int).Mul(amount, factor),
			)
		}
	}
	return ret
}

func (m *MultiAsset) Compare(assets *MultiAsset) bool {
	// Normalize data for easier comparison
	tmpData := m.normalize()
	otherData := assets.normalize()
	// Compare policy counts
	if len(otherData) != len(tmpData) {
		return false
	}
	for policy, policyAssets := range otherData {
		// Compare asset counts for policy
		if len(policyAssets) != len(tmpData[policy]) {
			return false
		}
		for asset, amount := range policyAssets {
			// Compare quantity of specific asset
			if m.Asset(policy, asset.Bytes()).Cmp(amount) != 0 {
				return false
			}
		}
	}
	return true
}

// IsZero returns true when every entry is zero-valued after pruning
func (m *MultiAsset) IsZero() bool {
	return len(m.normalize()) == 0
}

// Len returns the number of distinct assets with a non-zero quantity
func (m *MultiAsset) Len() int {
	ret := 0
	for _, policyAssets := range m.normalize() {
		ret += len(policyAssets)
	}
	return ret
}

// AssetIds returns the ids of all non-zero assets, ordered ascending by
// policy id and asset name
func (m *MultiAsset) AssetIds() []AssetId {
	ret := []AssetId{}
	for policy, policyAssets := range m.normalize() {
		for asset := range policyAssets {
			ret = append(
				ret,
				AssetId{policyId: policy, assetName: asset},
			)
		}
	}
	slices.SortFunc(ret, compareAssetIds)
	return ret
}

func (m *MultiAsset) normalize() map[Blake2b224]map[cbor.ByteString]*big.Int {
	ret := map[Blake2b224]map[cbor.ByteString]*big.Int{}
	if m == nil || m.data == nil {
		return ret
	}
	for policy, policyAssets := range m.data {
		for asset, amount := range policyAssets {
			if amount == nil || amount.Sign() == 0 {
				continue
			}
			if _, ok := ret[policy]; !ok {
				ret[policy] = make(map[cbor.ByteString]*big.Int)
			}
			// copy amount to avoid aliasing
			ret[policy][asset] = new(big.Int).Set(amount)
		}
	}
	return ret
}

// String returns a stable, human-friendly representation of the MultiAsset.
// Output format: [<policyId>.<assetNameHex>=<amount>, ...] sorted by policyId, then asset name
func (m *MultiAsset) String() string {
	if m == nil {
		return "[]"
	}
	norm := m.normalize()
	if len(norm) == 0 {
		return "[]"
	}

	policies := make([]Blake2b224, 0, len(norm))
	for pid := range norm {
		policies = append(policies, pid)
	}
	slices.SortFunc(
		policies,
		func(a, b Blake2b224) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)

	var b strings.Builder
	b.WriteByte('[')
	first := true
	for _, pid := range policies {
		assets := norm[pid]
		names := make([]cbor.ByteString, 0, len(assets))
		for name := range assets {
			names = append(names, name)
		}
		slices.SortFunc(
			names,
			func(a, b cbor.ByteString) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
		)

		for _, name := range names {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(pid.String())
			b.WriteByte('.')
			b.WriteString(hex.EncodeToString(name.Bytes()))
			b.WriteByte('=')
			b.WriteString(assets[name].String())
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Value represents a quantity of lovelace together with any number of other
// assets. It's the unit of bookkeeping for the value preservation checks
type Value struct {
	coin   *big.Int
	assets MultiAsset
}

// NewValue creates a Value holding the specified quantity of lovelace
func NewValue(coin uint64) Value {
	return Value{
		coin:   new(big.Int).SetUint64(coin),
		assets: NewMultiAsset(nil),
	}
}

// NewValueWithAssets creates a Value holding the specified quantity of
// lovelace and a copy of the provided assets
func NewValueWithAssets(coin uint64, assets *MultiAsset) Value {
	ret := NewValue(coin)
	ret.assets.Add(assets)
	return ret
}

// Coin returns the lovelace quantity
func (v Value) Coin() *big.Int {
	if v.coin == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.coin)
}

// Assets returns a copy of the non-lovelace assets
func (v Value) Assets() MultiAsset {
	ret := NewMultiAsset(nil)
	ret.Add(&v.assets)
	return ret
}

// Asset returns the quantity of the specified asset id
func (v Value) Asset(id AssetId) *big.Int {
	if id.IsAda() {
		return v.Coin()
	}
	return v.assets.Asset(id.policyId, id.AssetName())
}

// Add returns the pointwise sum of the two values, treating absent entries
// as zero
func (v Value) Add(other Value) Value {
	ret := Value{
		coin:   addBigInts(v.coin, other.coin),
		assets: NewMultiAsset(nil),
	}
	ret.assets.Add(&v.assets)
	ret.assets.Add(&other.assets)
	return ret
}

// AddAsset returns a copy of the value with the quantity of a single asset
// id adjusted by the provided amount
func (v Value) AddAsset(id AssetId, amount *big.Int) Value {
	ret := v.Add(Value{})
	if id.IsAda() {
		ret.coin = addBigInts(ret.coin, amount)
		return ret
	}
	ret.assets.SetAsset(
		id.policyId,
		id.AssetName(),
		addBigInts(v.assets.Asset(id.policyId, id.AssetName()), amount),
	)
	return ret
}

// Scale returns the value with every quantity multiplied by the provided
// integer. Scaling by -1 negates the value
func (v Value) Scale(k int64) Value {
	ret := Value{
		coin:   new(big.Int).Mul(v.Coin(), big.NewInt(k)),
		assets: v.assets.Scale(k),
	}
	return ret
}

// IsZero returns true when the lovelace quantity is zero and every other
// entry is zero-valued after pruning
func (v Value) IsZero() bool {
	return v.Coin().Sign() == 0 && v.assets.IsZero()
}

// Equal compares two values per asset id after pruning zero entries
func (v Value) Equal(other Value) bool {
	return v.Coin().Cmp(other.Coin()) == 0 &&
		v.assets.Compare(&other.assets)
}

// AssetIds returns all non-zero asset ids in the canonical order: lovelace
// first (always present), then ascending by policy id and asset name
func (v Value) AssetIds() []AssetId {
	ret := []AssetId{AdaAssetId}
	ret = append(ret, v.assets.AssetIds()...)
	return ret
}

// Len returns the number of distinct non-zero asset kinds, counting lovelace
func (v Value) Len() int {
	ret := v.assets.Len()
	if v.Coin().Sign() != 0 {
		ret++
	}
	return ret
}

func (v Value) String() string {
	var b strings.Builder
	b.WriteString(v.Coin().String())
	b.WriteString(" lovelace")
	if !v.assets.IsZero() {
		b.WriteString(" + ")
		b.WriteString(v.assets.String())
	}
	return b.String()
}

// Helper functions for nil-safe big.Int handling

func addBigInts(a, b *big.Int) *big.Int {
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return new(big.Int).Add(a, b)
}

func bigIntToString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}
