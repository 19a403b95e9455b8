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
	"fmt"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			// This defaults to 32, but metadata in the wild nests deeper
			MaxNestedLevels: 256,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
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

// ListItems returns the raw CBOR of each item in a CBOR list, in encoded order
func ListItems(cborData []byte) ([]RawMessage, error) {
	majorType, err := MajorType(cborData)
	if err != nil {
		return nil, err
	}
	if majorType != CborTypeArray {
		return nil, fmt.Errorf("expected cbor list, found major type 0x%x", majorType)
	}
	var ret []RawMessage
	if _, err := Decode(cborData, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// MapPairs returns the raw CBOR of each key/value pair in a CBOR map, in encoded order.
// Decoding into a Go map would lose the original key order
func MapPairs(cborData []byte) ([][2]RawMessage, error) {
	majorType, length, indefinite, headerSize, err := itemHeader(cborData)
	if err != nil {
		return nil, err
	}
	if majorType != CborTypeMap {
		return nil, fmt.Errorf("expected cbor map, found major type 0x%x", majorType)
	}
	decMode, err := getDecMode()
	if err != nil {
		return nil, err
	}
	rest := cborData[headerSize:]
	var ret [][2]RawMessage
	for i := uint64(0); indefinite || i < length; i++ {
		if len(rest) == 0 {
			return nil, errors.New("truncated cbor map")
		}
		if indefinite && rest[0] == CborBreak {
			break
		}
		var key, value RawMessage
		rest, err = decMode.UnmarshalFirst(rest, &key)
		if err != nil {
			return nil, fmt.Errorf("decode map key %d: %w", i, err)
		}
		rest, err = decMode.UnmarshalFirst(rest, &value)
		if err != nil {
			return nil, fmt.Errorf("decode map value %d: %w", i, err)
		}
		ret = append(ret, [2]RawMessage{key, value})
	}
	return ret, nil
}
