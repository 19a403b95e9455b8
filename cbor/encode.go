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
	"encoding/binary"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
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
			// Encode *big.Int values that fit as plain CBOR integers
			BigIntConvert: _cbor.BigIntConvertShortest,
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
	buf := bytes.NewBuffer(nil)
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

// EncodeMapPairs builds a definite-length CBOR map from already encoded pairs, keeping
// their order. Encode sorts map keys, which loses the original order
func EncodeMapPairs(pairs [][2]RawMessage) []byte {
	buf := bytes.NewBuffer(nil)
	writeHeader(buf, CborTypeMap, uint64(len(pairs)))
	for _, pair := range pairs {
		buf.Write(pair[0])
		buf.Write(pair[1])
	}
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, majorType uint8, arg uint64) {
	switch {
	case arg <= uint64(CborMaxUintSimple):
		buf.WriteByte(majorType | uint8(arg))
	case arg <= math.MaxUint8:
		buf.WriteByte(majorType | 24)
		buf.WriteByte(uint8(arg))
	case arg <= math.MaxUint16:
		buf.WriteByte(majorType | 25)
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(arg)))
	case arg <= math.MaxUint32:
		buf.WriteByte(majorType | 26)
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(arg)))
	default:
		buf.WriteByte(majorType | 27)
		buf.Write(binary.BigEndian.AppendUint64(nil, arg))
	}
}
