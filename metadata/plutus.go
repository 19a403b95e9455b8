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
	"math/big"
	"slices"

	"github.com/blinklabs-io/plutigo/data"
)

// FromPlutusData converts Plutus data to a metadata tree. A constructor becomes a map
// with "constructor" and "fields" keys, the shape used for datums in JSON
func FromPlutusData(pd data.PlutusData) Node {
	switch v := pd.(type) {
	case *data.Constr:
		fields := make([]Node, 0, len(v.Fields))
		for _, field := range v.Fields {
			fields = append(fields, FromPlutusData(field))
		}
		return NewMap(
			TextPair("constructor", Int{Value: new(big.Int).SetUint64(uint64(v.Tag))}),
			TextPair("fields", List{Items: fields}),
		)
	case *data.Map:
		pairs := make([]Pair, 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			pairs = append(
				pairs,
				Pair{Key: FromPlutusData(pair[0]), Value: FromPlutusData(pair[1])},
			)
		}
		return Map{Pairs: pairs}
	case *data.List:
		items := make([]Node, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, FromPlutusData(item))
		}
		return List{Items: items}
	case *data.Integer:
		if v.Inner == nil {
			return Int{Value: new(big.Int)}
		}
		return Int{Value: new(big.Int).Set(v.Inner)}
	case *data.ByteString:
		return Bytes{Value: slices.Clone(v.Inner)}
	case nil:
		return Opaque{Kind: OpaqueNull}
	}
	return Opaque{Kind: OpaquePlutus, Value: pd}
}
