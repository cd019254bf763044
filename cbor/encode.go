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
	"errors"
	"reflect"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(data)
}

// EncodeGeneric encodes the specified object to CBOR without using the source object's
// MarshalCBOR() function
func EncodeGeneric(src any) ([]byte, error) {
	// Create a duplicate(-ish) struct from the source
	// We do this so that we can bypass any custom MarshalCBOR() function on the
	// source object
	valueSrc := reflect.ValueOf(src)
	if valueSrc.Kind() != reflect.Pointer ||
		valueSrc.Elem().Kind() != reflect.Struct {
		return nil, errors.New("source must be a pointer to a struct")
	}
	tmpSrc := reflect.New(genericStructType(valueSrc.Elem().Type()))
	// Copy values from source object into temporary object
	if err := copier.Copy(tmpSrc.Interface(), src); err != nil {
		return nil, err
	}
	return Encode(tmpSrc.Interface())
}

// genericStructType builds (and caches) a copy of the provided struct type with the
// embedded DecodeStoreCbor field stripped, which also strips any custom CBOR
// marshal/unmarshal methods
func genericStructType(src reflect.Type) reflect.Type {
	genericTypeCacheMutex.RLock()
	tmpType, ok := genericTypeCache[src]
	genericTypeCacheMutex.RUnlock()
	if ok {
		return tmpType
	}
	tmpFields := []reflect.StructField{}
	for i := 0; i < src.NumField(); i++ {
		tmpField := src.Field(i)
		if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
			tmpFields = append(tmpFields, tmpField)
		}
	}
	tmpType = reflect.StructOf(tmpFields)
	genericTypeCacheMutex.Lock()
	genericTypeCache[src] = tmpType
	genericTypeCacheMutex.Unlock()
	return tmpType
}

var (
	genericTypeCache      = map[reflect.Type]reflect.Type{}
	genericTypeCacheMutex sync.RWMutex
)
