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

package clock_test

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/blinklabs-io/ledgersim/clock"
)

var testSystemStart = time.Date(
	2020,
	time.July,
	29,
	21,
	44,
	51,
	0,
	time.UTC,
)

func testClockConfig(coeff *big.Rat) clock.Config {
	return clock.Config{
		SystemStart:      testSystemStart,
		SlotLength:       1000,
		EpochLength:      432000,
		ActiveSlotsCoeff: coeff,
	}
}

func TestNewClockPanics(t *testing.T) {
	testDefs := []struct {
		name   string
		config clock.Config
	}{
		{
			name: "zero slot length",
			config: clock.Config{
				SystemStart:      testSystemStart,
				SlotLength:       0,
				EpochLength:      432000,
				ActiveSlotsCoeff: big.NewRat(1, 20),
			},
		},
		{
			name: "zero epoch length",
			config: clock.Config{
				SystemStart:      testSystemStart,
				SlotLength:       1000,
				EpochLength:      0,
				ActiveSlotsCoeff: big.NewRat(1, 20),
			},
		},
		{
			name:   "nil active slots coefficient",
			config: testClockConfig(nil),
		},
		{
			name:   "zero active slots coefficient",
			config: testClockConfig(new(big.Rat)),
		},
		{
			name:   "negative active slots coefficient",
			config: testClockConfig(big.NewRat(-1, 20)),
		},
		{
			name:   "active slots coefficient above one",
			config: testClockConfig(big.NewRat(3, 2)),
		},
	}
	for _, testDef := range testDefs {
		t.Run(
			testDef.name,
			func(t *testing.T) {
				defer func() {
					if recover() == nil {
						t.Errorf("NewClock should panic")
					}
				}()
				clock.NewClock(testDef.config)
			},
		)
	}
}

func TestSlotToBlockHeight(t *testing.T) {
	testDefs := []struct {
		coeff          *big.Rat
		slot           uint64
		expectedHeight uint64
	}{
		{coeff: big.NewRat(1, 20), slot: 0, expectedHeight: 0},
		{coeff: big.NewRat(1, 20), slot: 19, expectedHeight: 0},
		{coeff: big.NewRat(1, 20), slot: 20, expectedHeight: 1},
		{coeff: big.NewRat(1, 20), slot: 39, expectedHeight: 1},
		{coeff: big.NewRat(1, 20), slot: 40, expectedHeight: 2},
		{coeff: big.NewRat(1, 20), slot: 100, expectedHeight: 5},
		{coeff: big.NewRat(3, 10), slot: 3, expectedHeight: 0},
		{coeff: big.NewRat(3, 10), slot: 4, expectedHeight: 1},
		{coeff: big.NewRat(3, 10), slot: 7, expectedHeight: 2},
		{coeff: big.NewRat(3, 10), slot: 33, expectedHeight: 9},
		{coeff: big.NewRat(3, 10), slot: 34, expectedHeight: 10},
		{coeff: big.NewRat(1, 1), slot: 12345, expectedHeight: 12345},
	}
	for _, testDef := range testDefs {
		tmpClock := clock.NewClock(testClockConfig(testDef.coeff))
		height := tmpClock.SlotToBlockHeight(testDef.slot)
		if height != testDef.expectedHeight {
			t.Fatalf(
				"did not get expected block height for slot %d at density %s: got %d, wanted %d",
				testDef.slot,
				testDef.coeff.RatString(),
				height,
				testDef.expectedHeight,
			)
		}
	}
}

func TestSlotsToNextBlock(t *testing.T) {
	testDefs := []struct {
		coeff         *big.Rat
		currentSlot   uint64
		expectedSlots uint64
	}{
		{coeff: big.NewRat(1, 20), currentSlot: 0, expectedSlots: 20},
		{coeff: big.NewRat(1, 20), currentSlot: 19, expectedSlots: 1},
		{coeff: big.NewRat(1, 20), currentSlot: 20, expectedSlots: 20},
		{coeff: big.NewRat(3, 10), currentSlot: 0, expectedSlots: 4},
		{coeff: big.NewRat(3, 10), currentSlot: 4, expectedSlots: 3},
		{coeff: big.NewRat(3, 10), currentSlot: 7, expectedSlots: 3},
		{coeff: big.NewRat(3, 10), currentSlot: 10, expectedSlots: 4},
		{coeff: big.NewRat(1, 1), currentSlot: 5, expectedSlots: 1},
	}
	for _, testDef := range testDefs {
		tmpClock := clock.NewClock(testClockConfig(testDef.coeff))
		if testDef.currentSlot > 0 {
			tmpClock.AdvanceSlots(testDef.currentSlot)
		}
		slots := tmpClock.SlotsToNextBlock()
		if slots != testDef.expectedSlots {
			t.Fatalf(
				"did not get expected slots to next block at slot %d and density %s: got %d, wanted %d",
				testDef.currentSlot,
				testDef.coeff.RatString(),
				slots,
				testDef.expectedSlots,
			)
		}
	}
}

func TestSlotTimeRoundTrip(t *testing.T) {
	tmpClock := clock.NewClock(testClockConfig(big.NewRat(1, 20)))
	for _, slot := range []uint64{0, 1, 20, 431999, 432000, 10_000_000} {
		slotTime := tmpClock.SlotToTime(slot)
		roundTrip, err := tmpClock.TimeToSlot(slotTime)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if roundTrip != slot {
			t.Fatalf(
				"did not get expected slot from round trip: got %d, wanted %d",
				roundTrip,
				slot,
			)
		}
	}
	// Times within a slot floor to it
	midSlot, err := tmpClock.TimeToSlot(
		tmpClock.SlotToTime(42).Add(999 * time.Millisecond),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if midSlot != 42 {
		t.Fatalf(
			"did not get expected slot for mid-slot time: got %d, wanted %d",
			midSlot,
			42,
		)
	}
	nextSlot, err := tmpClock.TimeToSlot(
		tmpClock.SlotToTime(42).Add(1000 * time.Millisecond),
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if nextSlot != 43 {
		t.Fatalf(
			"did not get expected slot for slot boundary time: got %d, wanted %d",
			nextSlot,
			43,
		)
	}
}

func TestTimeToSlotBeforeStart(t *testing.T) {
	tmpClock := clock.NewClock(testClockConfig(big.NewRat(1, 20)))
	_, err := tmpClock.TimeToSlot(testSystemStart.Add(-time.Second))
	if err == nil {
		t.Fatal("expected failure for time before system start, got none")
	}
	var timeErr clock.InvalidTimeError
	if !errors.As(err, &timeErr) {
		t.Fatalf(
			"did not get expected error type: got %T, wanted %T",
			err,
			timeErr,
		)
	}
	if !timeErr.Time.Equal(testSystemStart.Add(-time.Second)) ||
		!timeErr.SystemStart.Equal(testSystemStart) {
		t.Fatalf("did not get expected times in error: %s", err)
	}
	expectedErr := "time 2020-07-29T21:44:50Z precedes system start 2020-07-29T21:44:51Z"
	if err.Error() != expectedErr {
		t.Fatalf(
			"did not get expected error message: got %q, wanted %q",
			err.Error(),
			expectedErr,
		)
	}
}

func TestSlotToEpoch(t *testing.T) {
	testDefs := []struct {
		epochLength   uint
		slot          uint64
		expectedEpoch uint64
	}{
		{epochLength: 432000, slot: 0, expectedEpoch: 0},
		{epochLength: 432000, slot: 431999, expectedEpoch: 0},
		{epochLength: 432000, slot: 432000, expectedEpoch: 1},
		{epochLength: 432000, slot: 1296000, expectedEpoch: 3},
		{epochLength: 100, slot: 250, expectedEpoch: 2},
	}
	for _, testDef := range testDefs {
		tmpClock := clock.NewClock(
			clock.Config{
				SystemStart:      testSystemStart,
				SlotLength:       1000,
				EpochLength:      testDef.epochLength,
				ActiveSlotsCoeff: big.NewRat(1, 20),
			},
		)
		epoch := tmpClock.SlotToEpoch(testDef.slot)
		if epoch != testDef.expectedEpoch {
			t.Fatalf(
				"did not get expected epoch for slot %d: got %d, wanted %d",
				testDef.slot,
				epoch,
				testDef.expectedEpoch,
			)
		}
	}
}

func TestClockAdvance(t *testing.T) {
	tmpClock := clock.NewClock(testClockConfig(big.NewRat(1, 20)))
	if tmpClock.CurrentSlot() != 0 {
		t.Fatalf(
			"did not get expected initial slot: %d",
			tmpClock.CurrentSlot(),
		)
	}
	if !tmpClock.CurrentTime().Equal(testSystemStart) {
		t.Fatalf(
			"did not get expected initial time: %s",
			tmpClock.CurrentTime(),
		)
	}
	newSlot := tmpClock.AdvanceSlots(45)
	if newSlot != 45 || tmpClock.CurrentSlot() != 45 {
		t.Fatalf(
			"did not get expected slot after advance: got %d, wanted %d",
			tmpClock.CurrentSlot(),
			45,
		)
	}
	if tmpClock.BlockHeight() != 2 {
		t.Fatalf(
			"did not get expected block height: got %d, wanted %d",
			tmpClock.BlockHeight(),
			2,
		)
	}
	expectedTime := testSystemStart.Add(45 * time.Second)
	if !tmpClock.CurrentTime().Equal(expectedTime) {
		t.Fatalf(
			"did not get expected time: got %s, wanted %s",
			tmpClock.CurrentTime(),
			expectedTime,
		)
	}
	if tmpClock.CurrentEpoch() != 0 {
		t.Fatalf(
			"did not get expected epoch: %d",
			tmpClock.CurrentEpoch(),
		)
	}
}

func TestAdvanceSlotsZeroPanics(t *testing.T) {
	tmpClock := clock.NewClock(testClockConfig(big.NewRat(1, 20)))
	defer func() {
		if recover() == nil {
			t.Errorf("AdvanceSlots should panic when advancing by zero")
		}
	}()
	tmpClock.AdvanceSlots(0)
}

func TestAdvanceToNextBlock(t *testing.T) {
	tmpClock := clock.NewClock(testClockConfig(big.NewRat(3, 10)))
	// At density 3/10 the block boundaries fall at slots 4, 7, 10, 14, ...
	expectedSlots := []uint64{4, 7, 10, 14, 17, 20, 24, 27, 30, 34}
	for idx, expectedSlot := range expectedSlots {
		newSlot := tmpClock.AdvanceToNextBlock()
		if newSlot != expectedSlot {
			t.Fatalf(
				"did not get expected slot after advance: got %d, wanted %d",
				newSlot,
				expectedSlot,
			)
		}
		expectedHeight := uint64(idx + 1)
		if tmpClock.BlockHeight() != expectedHeight {
			t.Fatalf(
				"did not get expected block height: got %d, wanted %d",
				tmpClock.BlockHeight(),
				expectedHeight,
			)
		}
	}
}
