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

package metadata

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/blinklabs-io/txkit/cbor"
)

// DecodeCBOR decodes a single metadatum. Map pairs keep their encoded order. Tags other
// than bignums and simple values decode as Opaque, and floats as Float, so that
// validation can report them instead of failing the decode
func DecodeCBOR(cborData []byte) (Node, error) {
	majorType, err := cbor.MajorType(cborData)
	if err != nil {
		return nil, err
	}
	switch majorType {
	case cbor.CborTypeUnsigned, cbor.CborTypeNegative:
		n := new(big.Int)
		if _, err := cbor.Decode(cborData, n); err != nil {
			return nil, err
		}
		return Int{Value: n}, nil
	case cbor.CborTypeTextString:
		var s string
		if _, err := cbor.Decode(cborData, &s); err != nil {
			return nil, err
		}
		return Text{Value: s}, nil
	case cbor.CborTypeByteString:
		var bs []byte
		if _, err := cbor.Decode(cborData, &bs); err != nil {
			return nil, err
		}
		return Bytes{Value: bs}, nil
	case cbor.CborTypeArray:
		rawItems, err := cbor.ListItems(cborData)
		if err != nil {
			return nil, err
		}
		items := make([]Node, 0, len(rawItems))
		for idx, rawItem := range rawItems {
			item, err := DecodeCBOR(rawItem)
			if err != nil {
				return nil, fmt.Errorf("decode list item %d: %w", idx, err)
			}
			items = append(items, item)
		}
		return List{Items: items}, nil
	case cbor.CborTypeMap:
		rawPairs, err := cbor.MapPairs(cborData)
		if err != nil {
			return nil, err
		}
		pairs := make([]Pair, 0, len(rawPairs))
		for idx, rawPair := range rawPairs {
			key, err := DecodeCBOR(rawPair[0])
			if err != nil {
				return nil, fmt.Errorf("decode map key %d: %w", idx, err)
			}
			value, err := DecodeCBOR(rawPair[1])
			if err != nil {
				return nil, fmt.Errorf("decode map value %d: %w", idx, err)
			}
			pairs = append(pairs, Pair{Key: key, Value: value})
		}
		return Map{Pairs: pairs}, nil
	case cbor.CborTypeTag:
		var tmpTag cbor.RawTag
		if _, err := cbor.Decode(cborData, &tmpTag); err != nil {
			return nil, err
		}
		switch tmpTag.Number {
		case cbor.CborTagPositiveBignum, cbor.CborTagNegativeBignum:
			n := new(big.Int)
			if _, err := cbor.Decode(cborData, n); err != nil {
				return nil, err
			}
			return Int{Value: n}, nil
		}
		return Opaque{Kind: OpaqueTag, Value: tmpTag.Number}, nil
	case cbor.CborTypeFloatSim:
		var v any
		if _, err := cbor.Decode(cborData, &v); err != nil {
			return nil, err
		}
		switch tmpVal := v.(type) {
		case float64:
			return Float{Value: tmpVal}, nil
		case float32:
			return Float{Value: float64(tmpVal)}, nil
		case bool:
			return Opaque{Kind: OpaqueBool, Value: tmpVal}, nil
		case nil:
			return Opaque{Kind: OpaqueNull}, nil
		default:
			return Opaque{Kind: OpaqueSimple, Value: tmpVal}, nil
		}
	}
	return nil, fmt.Errorf("unknown CBOR major type 0x%x", majorType)
}

// DecodeMetadataSet returns the label mapping held by an auxiliary data item. It accepts
// the bare metadata map, the [metadata, scripts] array form and the tagged map form with
// metadata under key 0. Auxiliary data without metadata yields an empty mapping
func DecodeMetadataSet(cborData []byte) (Map, error) {
	majorType, err := cbor.MajorType(cborData)
	if err != nil {
		return Map{}, err
	}
	var metadataRaw []byte
	switch majorType {
	case cbor.CborTypeMap:
		metadataRaw = cborData
	case cbor.CborTypeArray:
		items, err := cbor.ListItems(cborData)
		if err != nil {
			return Map{}, err
		}
		if len(items) != 2 {
			return Map{}, errors.New("auxiliary data array must have 2 elements")
		}
		metadataRaw = items[0]
	case cbor.CborTypeTag:
		var tmpTag cbor.RawTag
		if _, err := cbor.Decode(cborData, &tmpTag); err != nil {
			return Map{}, err
		}
		if tmpTag.Number != cbor.CborTagMap {
			return Map{}, fmt.Errorf(
				"expected CBOR tag %d for auxiliary data map, got %d",
				cbor.CborTagMap,
				tmpTag.Number,
			)
		}
		pairs, err := cbor.MapPairs(tmpTag.Content)
		if err != nil {
			return Map{}, err
		}
		for _, pair := range pairs {
			var key uint64
			if _, err := cbor.Decode(pair[0], &key); err != nil {
				continue
			}
			if key == 0 {
				metadataRaw = pair[1]
				break
			}
		}
	default:
		return Map{}, fmt.Errorf("unsupported auxiliary data type: 0x%x", majorType)
	}
	if len(metadataRaw) == 0 || cbor.IsNull(metadataRaw) {
		return Map{Pairs: []Pair{}}, nil
	}
	node, err := DecodeCBOR(metadataRaw)
	if err != nil {
		return Map{}, err
	}
	m, ok := node.(Map)
	if !ok {
		return Map{}, fmt.Errorf("metadata must be a map, found %s", node.TypeName())
	}
	return m, nil
}
