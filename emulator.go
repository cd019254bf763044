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

// Package ledgersim implements a deterministic single-node emulator of a
// Cardano-style UTxO ledger.
//
// The emulator owns a simulated slot clock, a UTxO store, and a FIFO mempool.
// Submitted transactions are validated against the confirmed ledger state and
// queued; blocks are produced by draining the mempool at block boundaries as
// the clock advances. Everything is synchronous and single-threaded, which
// makes runs fully reproducible.
//
// This package is the main entry point into this library. The other packages
// can be used outside of this one, but it's not a primary design goal.
package ledgersim

import (
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/blinklabs-io/ledgersim/clock"
	"github.com/blinklabs-io/ledgersim/ledger"
	"github.com/blinklabs-io/ledgersim/mempool"
)

// The Emulator type owns the simulated clock, the UTxO store, and the mempool,
// and drives block production over them
type Emulator struct {
	mutex           sync.Mutex
	logger          *slog.Logger
	genesis         ledger.Genesis
	protocolParams  ledger.ProtocolParameters
	paramUpdate     *ledger.ProtocolParameterUpdate
	mempoolCapacity uint64
	initialUtxos    []ledger.Utxo
	networkId       uint8
	clock           *clock.Clock
	store           *ledger.Store
	mempool         *mempool.Mempool
	ledgerState     ledger.LedgerState
	blocks          []*ledger.Block
}

// NewEmulator returns a new Emulator object with the specified genesis config
// and options. The UTxO store is seeded from the genesis initial funds plus
// any UTxOs provided via options. An error is returned if the genesis config
// is inconsistent
func NewEmulator(
	genesis ledger.Genesis,
	options ...EmulatorOptionFunc,
) (*Emulator, error) {
	e := &Emulator{
		genesis: genesis,
	}
	// Apply provided options functions
	for _, option := range options {
		option(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	networkId, err := genesis.NetworkIdValue()
	if err != nil {
		return nil, err
	}
	e.networkId = networkId
	e.protocolParams = genesis.ProtocolParameters
	if e.paramUpdate != nil {
		e.protocolParams.Update(e.paramUpdate)
	}
	var slotsCoeff *big.Rat
	if genesis.ActiveSlotsCoeff != nil {
		slotsCoeff = genesis.ActiveSlotsCoeff.Rat
	}
	e.clock = clock.NewClock(
		clock.Config{
			SystemStart:      genesis.SystemStart,
			SlotLength:       genesis.SlotLength,
			EpochLength:      genesis.EpochLength,
			ActiveSlotsCoeff: slotsCoeff,
		},
	)
	e.store = ledger.NewStore()
	genesisUtxos, err := genesis.GenesisUtxos()
	if err != nil {
		return nil, fmt.Errorf("generate genesis UTxOs: %w", err)
	}
	for _, utxo := range genesisUtxos {
		e.store.AddUtxo(utxo)
	}
	for _, utxo := range e.initialUtxos {
		e.store.AddUtxo(utxo)
	}
	e.ledgerState = &emulatorLedgerState{emulator: e}
	if e.mempoolCapacity == 0 {
		e.mempoolCapacity = 2 * uint64(e.protocolParams.MaxBlockBodySize)
	}
	e.mempool = mempool.NewMempool(
		mempool.Config{
			Capacity:     e.mempoolCapacity,
			Logger:       e.logger,
			ValidateFunc: e.validateTx,
		},
	)
	return e, nil
}

// New is an alias to NewEmulator
func New(
	genesis ledger.Genesis,
	options ...EmulatorOptionFunc,
) (*Emulator, error) {
	return NewEmulator(genesis, options...)
}

// SubmitTx validates the transaction against the current confirmed ledger
// state at the current slot and adds it to the mempool. The transaction hash
// is returned on success. On failure nothing is enqueued and the validation
// error is returned
func (e *Emulator) SubmitTx(
	tx *ledger.Transaction,
) (ledger.Blake2b256, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if err := e.mempool.Add(tx); err != nil {
		return ledger.Blake2b256{}, err
	}
	return tx.Hash(), nil
}

// AdvanceBlocks advances the clock to each of the next n block boundaries,
// draining the mempool into a new block at each one. The produced blocks are
// returned in order
func (e *Emulator) AdvanceBlocks(n uint64) []*ledger.Block {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	blocks := make([]*ledger.Block, 0, n)
	for i := uint64(0); i < n; i++ {
		e.clock.AdvanceSlots(e.clock.SlotsToNextBlock())
		blocks = append(blocks, e.produceBlock())
	}
	return blocks
}

// AdvanceSlots advances the clock by n slots, draining the mempool into a new
// block at every block boundary contained in the interval. The new current
// slot is returned
func (e *Emulator) AdvanceSlots(n uint64) uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	remaining := n
	for remaining > 0 {
		toBoundary := e.clock.SlotsToNextBlock()
		if toBoundary > remaining {
			e.clock.AdvanceSlots(remaining)
			break
		}
		e.clock.AdvanceSlots(toBoundary)
		remaining -= toBoundary
		e.produceBlock()
	}
	return e.clock.CurrentSlot()
}

// produceBlock drains the mempool into a new block at the current slot and
// records it. The caller must hold the emulator lock with the clock positioned
// on a block boundary
func (e *Emulator) produceBlock() *ledger.Block {
	var blockTxs []*ledger.Transaction
	var bodySize uint64
	maxBodySize := uint64(e.protocolParams.MaxBlockBodySize)
	for {
		entry, ok := e.mempool.PeekFront()
		if !ok {
			break
		}
		if bodySize+entry.Size > maxBodySize {
			// Leave the entry queued for a future block
			break
		}
		e.mempool.PopFront()
		// Re-validate against the current ledger state. An input consumed by
		// an earlier transaction in this same pass fails the bad-inputs rule
		if err := e.validateTx(entry.Tx); err != nil {
			e.logger.Warn(
				"dropping invalid transaction from mempool",
				"tx_hash",
				entry.Tx.Hash().String(),
				"slot",
				e.clock.CurrentSlot(),
				"error",
				err,
			)
			continue
		}
		e.store.Apply(entry.Tx)
		blockTxs = append(blockTxs, entry.Tx)
		bodySize += entry.Size
	}
	prevHash := ledger.Blake2b256{}
	if len(e.blocks) > 0 {
		prevHash = e.blocks[len(e.blocks)-1].Hash()
	}
	block := ledger.NewBlock(
		e.clock.BlockHeight(),
		e.clock.CurrentSlot(),
		prevHash,
		blockTxs,
	)
	e.blocks = append(e.blocks, block)
	e.logger.Debug(
		"produced block",
		"block_number",
		block.BlockNumber(),
		"slot",
		block.SlotNumber(),
		"tx_count",
		len(blockTxs),
		"body_size",
		bodySize,
	)
	return block
}

// validateTx runs phase-1 validation against the current confirmed ledger
// state at the current slot
func (e *Emulator) validateTx(tx *ledger.Transaction) error {
	return ledger.VerifyTransaction(
		tx,
		e.clock.CurrentSlot(),
		e.ledgerState,
		e.protocolParams,
		ledger.UtxoValidationRules,
	)
}

// Utxos returns a deep copy of the current UTxO set in deterministic order
func (e *Emulator) Utxos() []ledger.Utxo {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.store.Snapshot().Utxos()
}

// UtxosByAddress returns a deep copy of the current UTxOs at the given
// address in deterministic order
func (e *Emulator) UtxosByAddress(address ledger.Address) []ledger.Utxo {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.store.Snapshot().UtxosByAddress(address)
}

// CurrentSlot returns the current slot number
func (e *Emulator) CurrentSlot() uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.clock.CurrentSlot()
}

// CurrentEpoch returns the epoch containing the current slot
func (e *Emulator) CurrentEpoch() uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.clock.CurrentEpoch()
}

// BlockHeight returns the block height at the current slot
func (e *Emulator) BlockHeight() uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.clock.BlockHeight()
}

// CurrentTime returns the wall-clock time of the current slot
func (e *Emulator) CurrentTime() time.Time {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.clock.CurrentTime()
}

// MempoolSnapshot returns the queued transactions in admission order
func (e *Emulator) MempoolSnapshot() []*ledger.Transaction {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.mempool.Transactions()
}

// MempoolSizeAndCapacity returns the mempool capacity (in bytes), size (in
// bytes), and number of queued transactions
func (e *Emulator) MempoolSizeAndCapacity() (uint64, uint64, uint64) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.mempool.Capacity(), e.mempool.Size(), e.mempool.NumberOfTxs()
}

// ChainTip returns the tip of the produced chain, or a zero Tip before any
// block has been produced
func (e *Emulator) ChainTip() ledger.Tip {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if len(e.blocks) == 0 {
		return ledger.Tip{}
	}
	tipBlock := e.blocks[len(e.blocks)-1]
	return ledger.Tip{
		Slot:        tipBlock.SlotNumber(),
		Hash:        tipBlock.Hash(),
		BlockNumber: tipBlock.BlockNumber(),
	}
}

// Blocks returns the produced blocks in order
func (e *Emulator) Blocks() []*ledger.Block {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	ret := make([]*ledger.Block, len(e.blocks))
	copy(ret, e.blocks)
	return ret
}

// MinOutputDeposit returns the minimum lovelace deposit required for the
// given output under the current protocol parameters
func (e *Emulator) MinOutputDeposit(
	output *ledger.TransactionOutput,
) (uint64, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return ledger.MinCoinTxOut(output, e.protocolParams)
}

// ProtocolParameters returns the protocol parameters in effect
func (e *Emulator) ProtocolParameters() ledger.ProtocolParameters {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.protocolParams
}

// NetworkId returns the network ID derived from the genesis config
func (e *Emulator) NetworkId() uint8 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.networkId
}

// emulatorLedgerState adapts the emulator's store and clock to the
// ledger.LedgerState interface consumed by the validation rules. It reads the
// live store, so it must only be used while the emulator lock is held
type emulatorLedgerState struct {
	emulator *Emulator
}

// Compile-time check that emulatorLedgerState implements LedgerState
var _ ledger.LedgerState = (*emulatorLedgerState)(nil)

func (l *emulatorLedgerState) UtxoById(
	id ledger.TransactionInput,
) (ledger.Utxo, error) {
	return l.emulator.store.UtxoById(id)
}

func (l *emulatorLedgerState) SlotToTime(slot uint64) (time.Time, error) {
	return l.emulator.clock.SlotToTime(slot), nil
}

func (l *emulatorLedgerState) TimeToSlot(t time.Time) (uint64, error) {
	return l.emulator.clock.TimeToSlot(t)
}

func (l *emulatorLedgerState) NetworkId() uint8 {
	return l.emulator.networkId
}
