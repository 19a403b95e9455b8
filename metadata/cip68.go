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
	"bytes"
	"fmt"

	"github.com/blinklabs-io/plutigo/data"
)

const (
	LabelCIP68Reference = "100"
	LabelCIP68UserToken = "500"

	StandardCIP68 = "CIP-68"

	DefaultCIP68Version = 1
)

// CIP68Metadata is a reference datum split into its metadata body, version and extra data
type CIP68Metadata struct {
	Metadata Node
	Version  Node
	Extra    Node
}

// ParseCIP68 reads a datum shaped as {"constructor": n, "fields": [metadata, version,
// extra]}. A missing version is Int(1) and a missing extra is nil. Without positional
// fields the value of a "map" key is the metadata, and failing that the node itself
func ParseCIP68(n Node) CIP68Metadata {
	ret := CIP68Metadata{
		Metadata: n,
		Version:  NewInt(DefaultCIP68Version),
	}
	m, ok := n.(Map)
	if !ok {
		return ret
	}
	if fieldsNode, ok := m.Get("fields"); ok {
		if fields, ok := fieldsNode.(List); ok && len(fields.Items) > 0 {
			ret.Metadata = fields.Items[0]
			if len(fields.Items) > 1 {
				ret.Version = fields.Items[1]
			}
			if len(fields.Items) > 2 {
				ret.Extra = fields.Items[2]
			}
			return ret
		}
	}
	if body, ok := m.Get("map"); ok {
		ret.Metadata = body
	}
	return ret
}

// ParseCIP68Datum parses a reference datum in Plutus data form
func ParseCIP68Datum(pd data.PlutusData) CIP68Metadata {
	return ParseCIP68(FromPlutusData(pd))
}

// DecodeCIP68Datum parses a CBOR-encoded reference datum
func DecodeCIP68Datum(cborData []byte) (CIP68Metadata, error) {
	pd, err := data.Decode(cborData)
	if err != nil {
		return CIP68Metadata{}, fmt.Errorf("decode datum: %w", err)
	}
	return ParseCIP68Datum(pd), nil
}

// Field returns a named entry of the metadata body
func (m CIP68Metadata) Field(name string) (Node, bool) {
	body, ok := m.Metadata.(Map)
	if !ok {
		return nil, false
	}
	return body.Get(name)
}

// Name returns the "name" entry of the metadata body. Datum field values are byte
// strings holding UTF-8 text
func (m CIP68Metadata) Name() string {
	value, ok := m.Field("name")
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case Text:
		return v.Value
	case Bytes:
		return string(v.Value)
	}
	return ""
}

func (m CIP68Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"standard":"` + StandardCIP68 + `"`)
	keys := []string{"metadata", "version", "extra"}
	values := []Node{m.Metadata, m.Version, m.Extra}
	for idx, key := range keys {
		buf.WriteString(`,"` + key + `":`)
		if err := writeNode(&buf, values[idx]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
