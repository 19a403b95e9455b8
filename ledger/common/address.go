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

package common

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/blinklabs-io/txkit/cbor"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111

	// Byron address payloads are wrapped in this CBOR tag
	byronPayloadTag = 24
)

// Address kinds reported by InspectAddress
const (
	AddressKindBase       = "base"
	AddressKindPointer    = "pointer"
	AddressKindEnterprise = "enterprise"
	AddressKindReward     = "reward"
	AddressKindByron      = "byron"
)

// Sentinel error for address strings that cannot be decoded
var ErrInvalidAddress = errors.New("invalid address")

// InvalidAddressError wraps the reason an address string could not be decoded
type InvalidAddressError struct {
	Address string
	Err     error
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Address, e.Err)
}

func (e InvalidAddressError) Unwrap() error {
	return e.Err
}

func (InvalidAddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

type Address struct {
	addressType    uint8
	networkId      uint8
	hrp            string
	paymentHash    *Blake2b224
	stakingHash    *Blake2b224
	stakingPointer *AddressPayloadPointer
	extraData      []byte
	byronNetwork   *uint32
	raw            []byte
}

// NewAddress returns an Address based on the provided bech32/base58 address string
// It detects if the string has mixed case assumes it is a base58 encoded address
// otherwise, it assumes it is bech32 encoded
func NewAddress(addr string) (Address, error) {
	var decoded []byte
	var hrp string
	if addr == "" {
		return Address{}, InvalidAddressError{Address: addr, Err: errors.New("empty address")}
	}
	if strings.ToLower(addr) != addr {
		// Mixed case detected: Assume Base58 encoding (e.g., Byron addresses)
		decoded = base58.Decode(addr)
		if len(decoded) == 0 {
			return Address{}, InvalidAddressError{Address: addr, Err: errors.New("invalid base58 data")}
		}
	} else {
		tmpHrp, data, err := bech32.DecodeNoLimit(addr)
		if err != nil {
			return Address{}, InvalidAddressError{Address: addr, Err: err}
		}
		decoded, err = bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return Address{}, InvalidAddressError{Address: addr, Err: err}
		}
		hrp = tmpHrp
	}
	a := Address{hrp: hrp}
	if err := a.populateFromBytes(decoded); err != nil {
		return Address{}, InvalidAddressError{Address: addr, Err: err}
	}
	if a.addressType != AddressTypeByron {
		if hrp == "" {
			return Address{}, InvalidAddressError{Address: addr, Err: errors.New("missing bech32 prefix")}
		}
		if expected := a.generateHRP(); expected != hrp {
			return Address{}, InvalidAddressError{
				Address: addr,
				Err:     fmt.Errorf("prefix %q does not match header, expected %q", hrp, expected),
			}
		}
	}
	return a, nil
}

// NewAddressFromBytes returns an Address based on the raw bytes provided
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	var ret Address
	if err := ret.populateFromBytes(addrBytes); err != nil {
		return Address{}, err
	}
	return ret, nil
}

func (a *Address) populateFromBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty address data")
	}
	a.raw = bytes.Clone(data)
	// Extract header info
	header := data[0]
	a.addressType = (header & AddressHeaderTypeMask) >> 4
	a.networkId = header & AddressHeaderNetworkMask
	// Byron Addresses
	if a.addressType == AddressTypeByron {
		return a.populateByron(data)
	}
	if a.networkId != AddressNetworkTestnet && a.networkId != AddressNetworkMainnet {
		return fmt.Errorf("unknown network ID %d", a.networkId)
	}
	// Payment payload
	payload := data[1:]
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeKeyScript, AddressTypeKeyPointer, AddressTypeKeyNone,
		AddressTypeScriptKey, AddressTypeScriptScript, AddressTypeScriptPointer, AddressTypeScriptNone:
		if len(payload) < AddressHashSize {
			return errors.New("invalid payment payload: hash too small")
		}
		tmpHash := NewBlake2b224(payload[0:AddressHashSize])
		a.paymentHash = &tmpHash
		payload = payload[AddressHashSize:]
	case AddressTypeNoneKey, AddressTypeNoneScript:
	default:
		return fmt.Errorf("unknown address type %d", a.addressType)
	}
	// Staking payload
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeNoneKey,
		AddressTypeKeyScript, AddressTypeScriptScript, AddressTypeNoneScript:
		if len(payload) < AddressHashSize {
			return errors.New("invalid staking payload: hash too small")
		}
		tmpHash := NewBlake2b224(payload[0:AddressHashSize])
		a.stakingHash = &tmpHash
		payload = payload[AddressHashSize:]
	case AddressTypeKeyPointer, AddressTypeScriptPointer:
		var tmpPointer AddressPayloadPointer
		n, err := tmpPointer.decode(payload)
		if err != nil {
			return err
		}
		a.stakingPointer = &tmpPointer
		payload = payload[n:]
	}
	// Store any extra address data
	// This is needed to handle the case describe in:
	// https://github.com/IntersectMBO/cardano-ledger/issues/2729
	if len(payload) > 0 {
		a.extraData = payload[:]
	}
	return nil
}

type byronAddressAttributes struct {
	Payload    []byte `cbor:"1,keyasint,omitempty"`
	NetworkRaw []byte `cbor:"2,keyasint,omitempty"`
}

func (a *Address) populateByron(data []byte) error {
	items, err := cbor.ListItems(data)
	if err != nil {
		return err
	}
	if len(items) != 2 {
		return errors.New("invalid Byron address data: expected 2 items")
	}
	var payloadTag cbor.Tag
	if _, err := cbor.Decode(items[0], &payloadTag); err != nil {
		return err
	}
	payloadBytes, ok := payloadTag.Content.([]byte)
	if !ok || payloadTag.Number != byronPayloadTag {
		return errors.New(
			"invalid Byron address data: unexpected payload content",
		)
	}
	var checksum uint32
	if _, err := cbor.Decode(items[1], &checksum); err != nil {
		return err
	}
	if checksum != crc32.ChecksumIEEE(payloadBytes) {
		return errors.New(
			"invalid Byron address data: checksum does not match",
		)
	}
	payloadItems, err := cbor.ListItems(payloadBytes)
	if err != nil {
		return err
	}
	if len(payloadItems) != 3 {
		return errors.New("invalid Byron address data: expected 3 payload items")
	}
	var addrHash []byte
	if _, err := cbor.Decode(payloadItems[0], &addrHash); err != nil {
		return err
	}
	if len(addrHash) != AddressHashSize {
		return errors.New(
			"invalid Byron address data: hash is not expected length",
		)
	}
	var attr byronAddressAttributes
	if _, err := cbor.Decode(payloadItems[1], &attr); err != nil {
		return err
	}
	tmpHash := NewBlake2b224(addrHash)
	a.paymentHash = &tmpHash
	if len(attr.NetworkRaw) > 0 {
		var tmpNetwork uint32
		if _, err := cbor.Decode(attr.NetworkRaw, &tmpNetwork); err != nil {
			return err
		}
		a.byronNetwork = &tmpNetwork
	}
	return nil
}

func (a Address) NetworkId() uint8 {
	if a.addressType == AddressTypeByron {
		// Use Shelley network ID convention
		if a.byronNetwork == nil {
			// Return mainnet if no network ID is present in address
			return AddressNetworkMainnet
		}
		// Return testnet, since the convention says we only include network ID on testnets
		return AddressNetworkTestnet
	}
	return a.networkId
}

func (a Address) Type() uint8 {
	return a.addressType
}

// Kind returns a short name for the address type
func (a Address) Kind() string {
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeKeyScript, AddressTypeScriptScript:
		return AddressKindBase
	case AddressTypeKeyPointer, AddressTypeScriptPointer:
		return AddressKindPointer
	case AddressTypeKeyNone, AddressTypeScriptNone:
		return AddressKindEnterprise
	case AddressTypeNoneKey, AddressTypeNoneScript:
		return AddressKindReward
	case AddressTypeByron:
		return AddressKindByron
	}
	return ""
}

// PaymentHash returns the payment key or script hash, if any
func (a Address) PaymentHash() *Blake2b224 {
	return a.paymentHash
}

// StakingHash returns the staking key or script hash, if any
func (a Address) StakingHash() *Blake2b224 {
	return a.stakingHash
}

// StakingPointer returns the staking pointer of a pointer address
func (a Address) StakingPointer() *AddressPayloadPointer {
	return a.stakingPointer
}

// PaymentIsScript reports whether the payment part is a script hash
func (a Address) PaymentIsScript() bool {
	switch a.addressType {
	case AddressTypeScriptKey, AddressTypeScriptScript, AddressTypeScriptPointer, AddressTypeScriptNone:
		return true
	}
	return false
}

// StakingIsScript reports whether the staking part is a script hash
func (a Address) StakingIsScript() bool {
	switch a.addressType {
	case AddressTypeKeyScript, AddressTypeScriptScript, AddressTypeNoneScript:
		return true
	}
	return false
}

func (a Address) generateHRP() string {
	var ret string
	if a.addressType == AddressTypeNoneKey ||
		a.addressType == AddressTypeNoneScript {
		ret = "stake"
	} else {
		ret = "addr"
	}
	// Add test_ suffix if not mainnet
	if a.networkId != AddressNetworkMainnet {
		ret += "_test"
	}
	return ret
}

// Bytes returns the underlying bytes for the address
func (a Address) Bytes() []byte {
	return bytes.Clone(a.raw)
}

// String returns the bech32-encoded version of the address, or base58 for Byron addresses
func (a Address) String() string {
	if a.addressType == AddressTypeByron {
		return base58.Encode(a.raw)
	}
	return encodeBech32(a.generateHRP(), a.raw)
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// AddressInfo summarizes an address string
type AddressInfo struct {
	Address        string                 `json:"address"`
	Kind           string                 `json:"type"`
	NetworkId      uint8                  `json:"networkId"`
	Network        string                 `json:"network"`
	Prefix         string                 `json:"prefix,omitempty"`
	PaymentHash    string                 `json:"paymentHash,omitempty"`
	StakingHash    string                 `json:"stakingHash,omitempty"`
	StakingPointer *AddressPayloadPointer `json:"stakingPointer,omitempty"`
	Script         bool                   `json:"script"`
	StakingScript  bool                   `json:"stakingScript"`
}

// InspectAddress decodes an address string and reports its type and network
func InspectAddress(addr string) (AddressInfo, error) {
	a, err := NewAddress(addr)
	if err != nil {
		return AddressInfo{}, err
	}
	ret := AddressInfo{
		Address:        addr,
		Kind:           a.Kind(),
		NetworkId:      a.NetworkId(),
		Network:        "testnet",
		Prefix:         a.hrp,
		StakingPointer: a.StakingPointer(),
		Script:         a.PaymentIsScript(),
		StakingScript:  a.StakingIsScript(),
	}
	if ret.NetworkId == AddressNetworkMainnet {
		ret.Network = "mainnet"
	}
	if paymentHash := a.PaymentHash(); paymentHash != nil {
		ret.PaymentHash = paymentHash.String()
	}
	if stakingHash := a.StakingHash(); stakingHash != nil {
		ret.StakingHash = stakingHash.String()
	}
	return ret, nil
}

// IsValidAddress reports whether the string decodes as a Shelley or Byron address
func IsValidAddress(addr string) bool {
	_, err := NewAddress(addr)
	return err == nil
}

type AddressPayloadPointer struct {
	Slot      uint64 `json:"slot"`
	TxIndex   uint64 `json:"txIndex"`
	CertIndex uint64 `json:"certIndex"`
}

func (a *AddressPayloadPointer) decode(data []byte) (int, error) {
	readVarUint := func(buf *bytes.Reader) (uint64, error) {
		var ret uint64
		for {
			byt, err := buf.ReadByte()
			if err != nil {
				return 0, err
			}
			ret = (ret << 7) | uint64(byt&0x7F)
			if (byt & 0x80) == 0 {
				return ret, nil
			}
		}
	}
	buf := bytes.NewReader(data)
	var err error
	a.Slot, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	a.TxIndex, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	a.CertIndex, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	return len(data) - buf.Len(), nil
}
