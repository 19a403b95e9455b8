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

var ErrNotEncodable = errors.New("metadata node has no CBOR metadatum form")

// EncodeCBOR encodes a tree as a CBOR metadatum. Map pairs keep their order. Float and
// Opaque nodes are rejected with ErrNotEncodable
func EncodeCBOR(n Node) ([]byte, error) {
	switch v := n.(type) {
	case Int:
		if v.Value == nil {
			return cbor.Encode(new(big.Int))
		}
		return cbor.Encode(v.Value)
	case Text:
		return cbor.Encode(v.Value)
	case Bytes:
		if v.Value == nil {
			// A nil slice would encode as null
			return cbor.Encode([]byte{})
		}
		return cbor.Encode(v.Value)
	case List:
		items := make([]cbor.RawMessage, 0, len(v.Items))
		for idx, item := range v.Items {
			itemCbor, err := EncodeCBOR(item)
			if err != nil {
				return nil, fmt.Errorf("encode list item %d: %w", idx, err)
			}
			items = append(items, itemCbor)
		}
		return cbor.Encode(items)
	case Map:
		pairs := make([][2]cbor.RawMessage, 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			keyCbor, err := EncodeCBOR(pair.Key)
			if err != nil {
				return nil, fmt.Errorf("encode map key %s: %w", KeyString(pair.Key), err)
			}
			valueCbor, err := EncodeCBOR(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("encode map value %s: %w", KeyString(pair.Key), err)
			}
			pairs = append(pairs, [2]cbor.RawMessage{keyCbor, valueCbor})
		}
		return cbor.EncodeMapPairs(pairs), nil
	case nil:
		return nil, fmt.Errorf("%w: missing value", ErrNotEncodable)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotEncodable, n.TypeName())
}

// EncodeMetadataSet encodes a label mapping with integer label keys, the form used in
// auxiliary data. Labels must be unsigned integers
func EncodeMetadataSet(root Map) ([]byte, error) {
	labels := make([]Pair, 0, len(root.Pairs))
	for _, pair := range root.Pairs {
		label, ok := new(big.Int).SetString(KeyString(pair.Key), 10)
		if !ok || label.Sign() < 0 || !label.IsUint64() {
			return nil, fmt.Errorf(
				"%w: label %q is not an unsigned integer",
				ErrNotEncodable,
				KeyString(pair.Key),
			)
		}
		labels = append(labels, Pair{Key: Int{Value: label}, Value: pair.Value})
	}
	return EncodeCBOR(Map{Pairs: labels})
}
