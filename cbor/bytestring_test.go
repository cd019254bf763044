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

package cbor

import (
	"encoding/hex"
	"encoding/json"
	"testing"
)

func TestByteStringString(t *testing.T) {
	testDefs := []struct {
		data        []byte
		expectedStr string
	}{
		{data: nil, expectedStr: ""},
		{data: []byte{0xab, 0xcd}, expectedStr: "abcd"},
		{data: []byte("token"), expectedStr: "746f6b656e"},
	}
	for _, testDef := range testDefs {
		bs := NewByteString(testDef.data)
		if bs.String() != testDef.expectedStr {
			t.Fatalf(
				"did not get expected string, got: %s, wanted: %s",
				bs.String(),
				testDef.expectedStr,
			)
		}
	}
}

func TestByteStringMapKey(t *testing.T) {
	// Deterministic encoding orders the keys by their encoded bytes
	expectedHex := "a241cc0242aabb01"
	testData := map[ByteString]uint64{
		NewByteString([]byte{0xaa, 0xbb}): 1,
		NewByteString([]byte{0xcc}):       2,
	}
	cborData, err := Encode(testData)
	if err != nil {
		t.Fatalf("unexpected error encoding map: %s", err)
	}
	if hex.EncodeToString(cborData) != expectedHex {
		t.Fatalf(
			"did not get expected CBOR, got: %s, wanted: %s",
			hex.EncodeToString(cborData),
			expectedHex,
		)
	}
	testMap := map[ByteString]uint64{}
	if _, err := Decode(cborData, &testMap); err != nil {
		t.Fatalf("unexpected error decoding map: %s", err)
	}
	if len(testMap) != 2 ||
		testMap[NewByteString([]byte{0xaa, 0xbb})] != 1 ||
		testMap[NewByteString([]byte{0xcc})] != 2 {
		t.Fatalf("did not get expected map contents, got: %#v", testMap)
	}
}

func TestByteStringMarshalJSON(t *testing.T) {
	jsonData, err := json.Marshal(NewByteString([]byte{0xaa, 0xbb}))
	if err != nil {
		t.Fatalf("unexpected error marshaling JSON: %s", err)
	}
	if string(jsonData) != `"aabb"` {
		t.Fatalf(
			"did not get expected JSON, got: %s, wanted: %s",
			string(jsonData),
			`"aabb"`,
		)
	}
}
