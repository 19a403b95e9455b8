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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the encode and decode
// modes used throughout txkit.
package cbor

import (
	"encoding/binary"
	"errors"
	"fmt"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	CborTypeUnsigned   uint8 = 0x00
	CborTypeNegative   uint8 = 0x20
	CborTypeByteString uint8 = 0x40
	CborTypeTextString uint8 = 0x60
	CborTypeArray      uint8 = 0x80
	CborTypeMap        uint8 = 0xa0
	CborTypeTag        uint8 = 0xc0
	CborTypeFloatSim   uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0

	// Max value able to be stored in a single byte without type prefix
	CborMaxUintSimple uint8 = 0x17

	// Marks the end of an indefinite-length item
	CborBreak uint8 = 0xff

	cborInfoMask       uint8 = 0x1f
	cborInfoIndefinite uint8 = 0x1f
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Alias for Tag for convenience
type Tag = _cbor.Tag

// Alias for RawTag for convenience
type RawTag = _cbor.RawTag

// MajorType returns the major type bits of the first item in the provided CBOR
func MajorType(cborData []byte) (uint8, error) {
	if len(cborData) == 0 {
		return 0, errors.New("empty cbor")
	}
	return cborData[0] & CborTypeMask, nil
}

// itemHeader parses the initial byte(s) of a CBOR item. It returns the major type,
// the argument (length or value), whether the item is indefinite-length, and the
// number of bytes used by the header
func itemHeader(cborData []byte) (uint8, uint64, bool, int, error) {
	if len(cborData) == 0 {
		return 0, 0, false, 0, errors.New("empty cbor")
	}
	majorType := cborData[0] & CborTypeMask
	info := cborData[0] & cborInfoMask
	switch {
	case info <= CborMaxUintSimple:
		return majorType, uint64(info), false, 1, nil
	case info == cborInfoIndefinite:
		return majorType, 0, true, 1, nil
	case info > 27:
		return 0, 0, false, 0, fmt.Errorf(
			"invalid additional info %d in cbor header",
			info,
		)
	}
	// 24 => 1 byte, 25 => 2 bytes, 26 => 4 bytes, 27 => 8 bytes
	argSize := 1 << (info - 24)
	if len(cborData) < 1+argSize {
		return 0, 0, false, 0, errors.New("truncated cbor header")
	}
	argBytes := cborData[1 : 1+argSize]
	var arg uint64
	switch argSize {
	case 1:
		arg = uint64(argBytes[0])
	case 2:
		arg = uint64(binary.BigEndian.Uint16(argBytes))
	case 4:
		arg = uint64(binary.BigEndian.Uint32(argBytes))
	default:
		arg = binary.BigEndian.Uint64(argBytes)
	}
	return majorType, arg, false, 1 + argSize, nil
}
