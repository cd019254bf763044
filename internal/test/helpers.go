package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/ledgersim/ledger"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// MustAddress is a helper function for tests that decodes a bech32 address. It doesn't
// return an error value, which makes it usable inline.
func MustAddress(addr string) ledger.Address {
	decoded, err := ledger.NewAddress(addr)
	if err != nil {
		panic(fmt.Sprintf("error decoding address: %s", err))
	}
	return decoded
}
