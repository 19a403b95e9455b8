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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Node is a single value in a metadata tree. The set of implementations is closed
type Node interface {
	isNode()
	TypeName() string
}

type Int struct{ Value *big.Int }

type Text struct{ Value string }

type Bytes struct{ Value []byte }

// Float is a non-integral number. It is never valid metadata but is kept so that
// validation can report it
type Float struct{ Value float64 }

type List struct {
	Items []Node
}

type Pair struct {
	Key   Node
	Value Node
}

type Map struct {
	Pairs []Pair
}

// Opaque kinds
const (
	OpaqueBool    = "bool"
	OpaqueNull    = "null"
	OpaqueNumber  = "number"
	OpaqueTag     = "tag"
	OpaqueSimple  = "simple"
	OpaquePlutus  = "plutus"
	OpaqueUnknown = "unknown"
)

// Opaque holds a value with no metadata equivalent, such as a boolean, a null, a CBOR
// tag or a CBOR simple value. An OpaqueNumber holds the literal of a JSON number too
// large to be a metadata integer
type Opaque struct {
	Kind  string
	Value any
}

func (Int) isNode()    {}
func (Text) isNode()   {}
func (Bytes) isNode()  {}
func (Float) isNode()  {}
func (List) isNode()   {}
func (Map) isNode()    {}
func (Opaque) isNode() {}

func (Int) TypeName() string    { return "int" }
func (Text) TypeName() string   { return "text" }
func (Bytes) TypeName() string  { return "bytes" }
func (Float) TypeName() string  { return "float" }
func (List) TypeName() string   { return "list" }
func (Map) TypeName() string    { return "map" }
func (Opaque) TypeName() string { return "opaque" }

func NewInt(v int64) Int {
	return Int{Value: big.NewInt(v)}
}

func NewText(v string) Text {
	return Text{Value: v}
}

func NewBytes(v []byte) Bytes {
	return Bytes{Value: v}
}

func NewList(items ...Node) List {
	return List{Items: items}
}

func NewMap(pairs ...Pair) Map {
	return Map{Pairs: pairs}
}

// TextPair returns a map pair with a text key
func TextPair(key string, value Node) Pair {
	return Pair{Key: Text{Value: key}, Value: value}
}

// KeyString renders a map key for use in paths, lookups and JSON object keys. Text keys
// render as their value, integers in decimal and byte strings in hex
func KeyString(key Node) string {
	switch k := key.(type) {
	case Text:
		return k.Value
	case Int:
		if k.Value == nil {
			return "0"
		}
		return k.Value.String()
	case Bytes:
		return hex.EncodeToString(k.Value)
	case Float:
		return strconv.FormatFloat(k.Value, 'g', -1, 64)
	case nil:
		return "null"
	default:
		return "<" + key.TypeName() + ">"
	}
}

// keyMatches also matches byte string keys holding the UTF-8 form of the key, which is
// how datum-encoded metadata stores field names
func keyMatches(key Node, name string) bool {
	if k, ok := key.(Bytes); ok && string(k.Value) == name {
		return true
	}
	switch key.(type) {
	case Text, Int, Bytes:
		return KeyString(key) == name
	}
	return false
}

// Get returns the value of the first pair whose key matches
func (m Map) Get(key string) (Node, bool) {
	for _, pair := range m.Pairs {
		if keyMatches(pair.Key, key) {
			return pair.Value, true
		}
	}
	return nil, false
}

// Len returns the number of pairs
func (m Map) Len() int {
	return len(m.Pairs)
}

// TextValue returns the string held by a text node
func TextValue(n Node) (string, bool) {
	t, ok := n.(Text)
	if !ok {
		return "", false
	}
	return t.Value, true
}

func (i Int) MarshalJSON() ([]byte, error)    { return marshalNode(i) }
func (t Text) MarshalJSON() ([]byte, error)   { return marshalNode(t) }
func (b Bytes) MarshalJSON() ([]byte, error)  { return marshalNode(b) }
func (f Float) MarshalJSON() ([]byte, error)  { return marshalNode(f) }
func (l List) MarshalJSON() ([]byte, error)   { return marshalNode(l) }
func (m Map) MarshalJSON() ([]byte, error)    { return marshalNode(m) }
func (o Opaque) MarshalJSON() ([]byte, error) { return marshalNode(o) }

func marshalNode(n Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeNode renders a node as JSON. Map pairs keep their order, which encoding/json
// cannot do for Go maps
func writeNode(buf *bytes.Buffer, n Node) error {
	switch v := n.(type) {
	case nil:
		buf.WriteString("null")
	case Int:
		if v.Value == nil {
			buf.WriteString("0")
		} else {
			buf.WriteString(v.Value.String())
		}
	case Text:
		return writeJson(buf, v.Value)
	case Bytes:
		return writeJson(buf, "0x"+hex.EncodeToString(v.Value))
	case Float:
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			return writeJson(buf, strconv.FormatFloat(v.Value, 'g', -1, 64))
		}
		buf.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	case List:
		buf.WriteByte('[')
		for idx, item := range v.Items {
			if idx > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		keys := make([]string, 0, len(v.Pairs))
		values := make([]Node, 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			keys = append(keys, KeyString(pair.Key))
			values = append(values, pair.Value)
		}
		return writeObject(buf, keys, values)
	case Opaque:
		switch v.Kind {
		case OpaqueBool, OpaqueNull:
			return writeJson(buf, v.Value)
		case OpaqueNumber:
			if raw, ok := v.Value.(string); ok {
				buf.WriteString(raw)
				return nil
			}
			return writeJson(buf, v.Value)
		default:
			return writeJson(
				buf,
				map[string]string{"kind": v.Kind, "value": fmt.Sprintf("%v", v.Value)},
			)
		}
	default:
		return fmt.Errorf("unknown metadata node type %T", n)
	}
	return nil
}

// writeObject renders a JSON object with the keys in the given order
func writeObject(buf *bytes.Buffer, keys []string, values []Node) error {
	buf.WriteByte('{')
	for idx, key := range keys {
		if idx > 0 {
			buf.WriteByte(',')
		}
		if err := writeJson(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeNode(buf, values[idx]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJson(buf *bytes.Buffer, v any) error {
	tmpData, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(tmpData)
	return nil
}
