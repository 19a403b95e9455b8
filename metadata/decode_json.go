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

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var ErrInvalidJson = errors.New("invalid metadata JSON")

// Decimal digits of 2^64-1
const maxMetadataIntDigits = 20

// FromJSON builds a metadata tree from JSON. Object members keep their document order.
// Integral numbers become Int, other numbers become Float, and booleans and nulls
// become Opaque. Numbers too large for metadata are kept unexpanded as an Opaque number
func FromJSON(jsonData []byte) (Node, error) {
	if !gjson.ValidBytes(jsonData) {
		return nil, ErrInvalidJson
	}
	return fromJsonResult(gjson.ParseBytes(jsonData))
}

// MapFromJSON is FromJSON for documents that must be a JSON object, such as a label mapping
func MapFromJSON(jsonData []byte) (Map, error) {
	node, err := FromJSON(jsonData)
	if err != nil {
		return Map{}, err
	}
	m, ok := node.(Map)
	if !ok {
		return Map{}, fmt.Errorf(
			"%w: expected an object, found %s",
			ErrInvalidJson,
			node.TypeName(),
		)
	}
	return m, nil
}

// FromBlockfrostTxMetadata builds a label mapping from the transaction metadata format
// returned by Blockfrost: an array of {"label": "721", "json_metadata": {...}} entries
func FromBlockfrostTxMetadata(jsonData []byte) (Map, error) {
	if !gjson.ValidBytes(jsonData) {
		return Map{}, ErrInvalidJson
	}
	entries := gjson.ParseBytes(jsonData)
	if !entries.IsArray() {
		return Map{}, fmt.Errorf("%w: expected an array of labels", ErrInvalidJson)
	}
	ret := Map{Pairs: []Pair{}}
	var err error
	entries.ForEach(func(_, entry gjson.Result) bool {
		label := entry.Get("label")
		if !label.Exists() {
			err = fmt.Errorf("%w: metadata entry without a label", ErrInvalidJson)
			return false
		}
		var value Node
		value, err = fromJsonResult(entry.Get("json_metadata"))
		if err != nil {
			return false
		}
		ret.Pairs = append(ret.Pairs, TextPair(label.String(), value))
		return true
	})
	if err != nil {
		return Map{}, err
	}
	return ret, nil
}

func fromJsonResult(r gjson.Result) (Node, error) {
	switch r.Type {
	case gjson.String:
		return Text{Value: r.String()}, nil
	case gjson.Number:
		d, err := decimal.NewFromString(r.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: number %s: %w", ErrInvalidJson, r.Raw, err)
		}
		if d.IsZero() {
			return Int{Value: new(big.Int)}, nil
		}
		// Magnitude is at least 10^(digits+exponent-1)
		magnitude := int64(d.NumDigits()) + int64(d.Exponent())
		if magnitude > maxMetadataIntDigits {
			if d.Exponent() < 0 && !d.IsInteger() {
				return Float{Value: r.Float()}, nil
			}
			return Opaque{Kind: OpaqueNumber, Value: r.Raw}, nil
		}
		if magnitude <= 0 {
			return Float{Value: r.Float()}, nil
		}
		if d.IsInteger() {
			return Int{Value: d.BigInt()}, nil
		}
		return Float{Value: r.Float()}, nil
	case gjson.True, gjson.False:
		return Opaque{Kind: OpaqueBool, Value: r.Bool()}, nil
	case gjson.Null:
		// Also covers a missing value
		return Opaque{Kind: OpaqueNull}, nil
	case gjson.JSON:
		if r.IsArray() {
			ret := List{Items: []Node{}}
			var err error
			r.ForEach(func(_, item gjson.Result) bool {
				var node Node
				node, err = fromJsonResult(item)
				if err != nil {
					return false
				}
				ret.Items = append(ret.Items, node)
				return true
			})
			if err != nil {
				return nil, err
			}
			return ret, nil
		}
		ret := Map{Pairs: []Pair{}}
		var err error
		r.ForEach(func(key, value gjson.Result) bool {
			var node Node
			node, err = fromJsonResult(value)
			if err != nil {
				return false
			}
			ret.Pairs = append(ret.Pairs, TextPair(key.String(), node))
			return true
		})
		if err != nil {
			return nil, err
		}
		return ret, nil
	}
	return nil, fmt.Errorf("%w: unexpected value %q", ErrInvalidJson, r.Raw)
}
