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
	"github.com/blinklabs-io/ledgersim/cbor"

	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

// BlockHeader identifies a block and its position in the chain. The header
// hash is the Blake2b-256 digest of the header's CBOR encoding
type BlockHeader struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	hash *Blake2b256
	Body BlockHeaderBody
}

type BlockHeaderBody struct {
	cbor.StructAsArray
	BlockNumber   uint64
	Slot          uint64
	PrevHash      Blake2b256
	BlockBodySize uint64
	BlockBodyHash Blake2b256
}

func (h *BlockHeader) UnmarshalCBOR(cborData []byte) error {
	return h.UnmarshalCbor(cborData, h)
}

// Cbor returns the header's serialized form, encoding it on first use for
// locally constructed headers
func (h *BlockHeader) Cbor() []byte {
	cborData := h.DecodeStoreCbor.Cbor()
	if cborData != nil {
		return cborData
	}
	cborData, err := cbor.Encode(h)
	if err != nil {
		panic("CBOR encoding of block header failed: " + err.Error())
	}
	h.SetCbor(cborData)
	return cborData
}

func (h *BlockHeader) Hash() Blake2b256 {
	if h.hash == nil {
		tmpHash := Blake2b256Hash(h.Cbor())
		h.hash = &tmpHash
	}
	return *h.hash
}

func (h *BlockHeader) PrevHash() Blake2b256 {
	return h.Body.PrevHash
}

func (h *BlockHeader) BlockNumber() uint64 {
	return h.Body.BlockNumber
}

func (h *BlockHeader) SlotNumber() uint64 {
	return h.Body.Slot
}

func (h *BlockHeader) BlockBodySize() uint64 {
	return h.Body.BlockBodySize
}

// Block is a produced block: a header plus the transactions applied in it
type Block struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	BlockHeader       *BlockHeader
	BlockTransactions []*Transaction
}

// NewBlock assembles a block at the given height and slot from the given
// transactions, computing the body size and body hash from their CBOR
func NewBlock(
	blockNumber uint64,
	slot uint64,
	prevHash Blake2b256,
	txs []*Transaction,
) *Block {
	bodySize := uint64(0)
	bodyData := []byte{}
	for _, tx := range txs {
		txCbor := tx.Cbor()
		bodySize += uint64(len(txCbor))
		bodyData = append(bodyData, txCbor...)
	}
	return &Block{
		BlockHeader: &BlockHeader{
			Body: BlockHeaderBody{
				BlockNumber:   blockNumber,
				Slot:          slot,
				PrevHash:      prevHash,
				BlockBodySize: bodySize,
				BlockBodyHash: Blake2b256Hash(bodyData),
			},
		},
		BlockTransactions: txs,
	}
}

func (b *Block) UnmarshalCBOR(cborData []byte) error {
	return b.UnmarshalCbor(cborData, b)
}

func (b *Block) Hash() Blake2b256 {
	return b.BlockHeader.Hash()
}

func (b *Block) Header() *BlockHeader {
	return b.BlockHeader
}

func (b *Block) PrevHash() Blake2b256 {
	return b.BlockHeader.PrevHash()
}

func (b *Block) BlockNumber() uint64 {
	return b.BlockHeader.BlockNumber()
}

func (b *Block) SlotNumber() uint64 {
	return b.BlockHeader.SlotNumber()
}

func (b *Block) BlockBodySize() uint64 {
	return b.BlockHeader.BlockBodySize()
}

func (b *Block) Transactions() []*Transaction {
	return b.BlockTransactions
}

func (b *Block) Utxorpc() *utxorpc.Block {
	txs := []*utxorpc.Tx{}
	for _, t := range b.Transactions() {
		txs = append(txs, t.Utxorpc())
	}
	body := &utxorpc.BlockBody{
		Tx: txs,
	}
	header := &utxorpc.BlockHeader{
		Hash:   b.Hash().Bytes(),
		Height: b.BlockNumber(),
		Slot:   b.SlotNumber(),
	}
	block := &utxorpc.Block{
		Body:   body,
		Header: header,
	}
	return block
}
