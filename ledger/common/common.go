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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
	Blake2b160Size = 20
)

var (
	policyIdRegexp = regexp.MustCompile(`^[a-fA-F0-9]{56}$`)
	txHashRegexp   = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
)

type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

// NewBlake2b256FromHex decodes a hex string into a Blake2b256, such as a transaction ID
func NewBlake2b256FromHex(hexData string) (Blake2b256, error) {
	var b Blake2b256
	if err := decodeHexHash(hexData, b[:]); err != nil {
		return b, err
	}
	return b, nil
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b Blake2b256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b256) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	return decodeHexHash(tmp, b[:])
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	tmpHash, err := blake2b.New(Blake2b256Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b256(tmpHash.Sum(nil))
}

type Blake2b224 [Blake2b224Size]byte

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

// NewBlake2b224FromHex decodes a hex string into a Blake2b224, such as a policy ID
func NewBlake2b224FromHex(hexData string) (Blake2b224, error) {
	var b Blake2b224
	if err := decodeHexHash(hexData, b[:]); err != nil {
		return b, err
	}
	return b, nil
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b Blake2b224) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Blake2b224) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	return decodeHexHash(tmp, b[:])
}

func (b Blake2b224) Bech32(prefix string) string {
	return encodeBech32(prefix, b[:])
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

// PolicyId identifies a native asset minting policy
type PolicyId = Blake2b224

type Blake2b160 [Blake2b160Size]byte

func NewBlake2b160(data []byte) Blake2b160 {
	b := Blake2b160{}
	copy(b[:], data)
	return b
}

func (b Blake2b160) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b160) Bytes() []byte {
	return b[:]
}

// Blake2b160Hash generates a Blake2b-160 hash from the provided data
func Blake2b160Hash(data []byte) Blake2b160 {
	tmpHash, err := blake2b.New(Blake2b160Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b160(tmpHash.Sum(nil))
}

// AssetFingerprint is the CIP-14 user-facing identifier for a native asset
type AssetFingerprint struct {
	policyId  []byte
	assetName []byte
}

func NewAssetFingerprint(policyId []byte, assetName []byte) AssetFingerprint {
	return AssetFingerprint{
		policyId:  policyId,
		assetName: assetName,
	}
}

func (a AssetFingerprint) Hash() Blake2b160 {
	tmpData := make([]byte, 0, len(a.policyId)+len(a.assetName))
	tmpData = append(tmpData, a.policyId...)
	tmpData = append(tmpData, a.assetName...)
	return Blake2b160Hash(tmpData)
}

func (a AssetFingerprint) String() string {
	return encodeBech32("asset", a.Hash().Bytes())
}

type PoolId [28]byte

func NewPoolIdFromBech32(poolId string) (PoolId, error) {
	var p PoolId
	hrp, data, err := bech32.DecodeNoLimit(poolId)
	if err != nil {
		return p, err
	}
	if hrp != "pool" {
		return p, fmt.Errorf("invalid pool ID prefix: %s", hrp)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return p, err
	}
	if len(decoded) != len(p) {
		return p, fmt.Errorf("invalid pool ID length: %d", len(decoded))
	}
	p = PoolId(decoded)
	return p, nil
}

func (p PoolId) String() string {
	return Blake2b224(p).Bech32("pool")
}

// IsValidPolicyId reports whether the string is a hex-encoded 28-byte policy ID
func IsValidPolicyId(policyId string) bool {
	return policyIdRegexp.MatchString(policyId)
}

// IsValidTxHash reports whether the string is a hex-encoded 32-byte transaction hash
func IsValidTxHash(txHash string) bool {
	return txHashRegexp.MatchString(txHash)
}

// IsValidPoolId reports whether the string is a bech32 pool ID with a valid checksum
func IsValidPoolId(poolId string) bool {
	_, err := NewPoolIdFromBech32(poolId)
	return err == nil
}

func decodeHexHash(hexData string, dest []byte) error {
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		return err
	}
	if len(decoded) != len(dest) {
		return fmt.Errorf(
			"invalid hash length: expected %d bytes, got %d",
			len(dest),
			len(decoded),
		)
	}
	copy(dest, decoded)
	return nil
}

func encodeBech32(prefix string, data []byte) string {
	// Convert data to base32 and encode as bech32
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}
