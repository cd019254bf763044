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

// Package clock implements the simulated slot clock. The only stored state
// is the current slot; epoch, block height, and wall time are derived from
// it and the fixed genesis parameters
package clock

import (
	"fmt"
	"math/big"
	"time"
)

// InvalidTimeError indicates a time before the start of the simulated chain
type InvalidTimeError struct {
	Time        time.Time
	SystemStart time.Time
}

func (e InvalidTimeError) Error() string {
	return fmt.Sprintf(
		"time %s precedes system start %s",
		e.Time.Format(time.RFC3339Nano),
		e.SystemStart.Format(time.RFC3339Nano),
	)
}

// Config holds the genesis parameters the clock derives everything from.
// SlotLength is in milliseconds. ActiveSlotsCoeff is the expected block
// density per slot, in (0, 1]
type Config struct {
	SystemStart      time.Time
	SlotLength       uint
	EpochLength      uint
	ActiveSlotsCoeff *big.Rat
}

// Clock tracks the current slot of the simulated chain. It is not safe for
// concurrent use and relies on the caller for synchronization
type Clock struct {
	config      Config
	currentSlot uint64
}

// NewClock creates a Clock at slot zero. It panics when the configuration
// is unusable, since no meaningful simulation can run on it
func NewClock(config Config) *Clock {
	if config.SlotLength == 0 {
		panic("clock: slot length must be positive")
	}
	if config.EpochLength == 0 {
		panic("clock: epoch length must be positive")
	}
	if config.ActiveSlotsCoeff == nil ||
		config.ActiveSlotsCoeff.Sign() <= 0 ||
		config.ActiveSlotsCoeff.Cmp(big.NewRat(1, 1)) > 0 {
		panic("clock: active slots coefficient must be in (0, 1]")
	}
	return &Clock{
		config: config,
	}
}

func (c *Clock) CurrentSlot() uint64 {
	return c.currentSlot
}

func (c *Clock) CurrentEpoch() uint64 {
	return c.SlotToEpoch(c.currentSlot)
}

func (c *Clock) CurrentTime() time.Time {
	return c.SlotToTime(c.currentSlot)
}

// SlotToTime returns the start of the given slot: the system start plus the
// slot number times the slot length, with no rounding
func (c *Clock) SlotToTime(slot uint64) time.Time {
	// #nosec G115
	offset := time.Duration(slot) *
		time.Duration(c.config.SlotLength) *
		time.Millisecond
	return c.config.SystemStart.Add(offset)
}

// TimeToSlot returns the slot containing the given time. Times within a
// slot floor to it, so SlotToTime and TimeToSlot invert each other on slot
// boundaries
func (c *Clock) TimeToSlot(t time.Time) (uint64, error) {
	if t.Before(c.config.SystemStart) {
		return 0, InvalidTimeError{
			Time:        t,
			SystemStart: c.config.SystemStart,
		}
	}
	elapsed := t.Sub(c.config.SystemStart).Milliseconds()
	// #nosec G115
	return uint64(elapsed) / uint64(c.config.SlotLength), nil
}

func (c *Clock) SlotToEpoch(slot uint64) uint64 {
	return slot / uint64(c.config.EpochLength)
}

// SlotToBlockHeight returns the number of blocks produced by the given
// slot: floor(slot * ActiveSlotsCoeff), computed with exact rational
// arithmetic. Block production is deterministic at the configured density
func (c *Clock) SlotToBlockHeight(slot uint64) uint64 {
	height := new(big.Int).Mul(
		new(big.Int).SetUint64(slot),
		c.config.ActiveSlotsCoeff.Num(),
	)
	height.Quo(height, c.config.ActiveSlotsCoeff.Denom())
	return height.Uint64()
}

// BlockHeight returns the block height at the current slot
func (c *Clock) BlockHeight() uint64 {
	return c.SlotToBlockHeight(c.currentSlot)
}

// SlotsToNextBlock returns the distance from the current slot to the next
// slot at which the block height increments
func (c *Clock) SlotsToNextBlock() uint64 {
	// The next boundary is the smallest slot s with
	// floor(s * coeff) > floor(currentSlot * coeff), which is
	// ceil((height+1) / coeff)
	target := new(big.Int).SetUint64(c.BlockHeight() + 1)
	target.Mul(target, c.config.ActiveSlotsCoeff.Denom())
	num := c.config.ActiveSlotsCoeff.Num()
	target.Add(target, new(big.Int).Sub(num, big.NewInt(1)))
	target.Quo(target, num)
	return target.Uint64() - c.currentSlot
}

// AdvanceSlots advances the clock by n slots and returns the new slot.
// Advancing by zero is a caller bug and panics
func (c *Clock) AdvanceSlots(n uint64) uint64 {
	if n == 0 {
		panic("clock: cannot advance by zero slots")
	}
	c.currentSlot += n
	return c.currentSlot
}

// AdvanceToNextBlock advances the clock to the next block boundary and
// returns the new slot
func (c *Clock) AdvanceToNextBlock() uint64 {
	return c.AdvanceSlots(c.SlotsToNextBlock())
}
