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
	"bytes"
	"errors"
	"reflect"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		opts := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
		}
		cachedDecMode, cachedDecModeErr = opts.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

func Decode(dataBytes []byte, dest any) (int, error) {
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	dec := decMode.NewDecoder(bytes.NewReader(dataBytes))
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeGeneric decodes the specified CBOR into the destination object without using
// the destination object's UnmarshalCBOR() function
func DecodeGeneric(cborData []byte, dest any) error {
	valueDest := reflect.ValueOf(dest)
	if valueDest.Kind() != reflect.Pointer ||
		valueDest.Elem().Kind() != reflect.Struct {
		return errors.New("destination must be a pointer to a struct")
	}
	tmpDest := reflect.New(genericStructType(valueDest.Elem().Type()))
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	return copier.Copy(dest, tmpDest.Interface())
}
