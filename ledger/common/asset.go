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
	"errors"
	"fmt"
)

const (
	// Max length of an asset name in bytes
	AssetNameMaxLength = 32

	policyIdHexLength = Blake2b224Size * 2
)

// NewAssetUnit builds the unit string for a native asset: the hex policy ID followed by
// the hex asset name
func NewAssetUnit(policyId PolicyId, assetName []byte) string {
	return policyId.String() + hex.EncodeToString(assetName)
}

// ParseAssetUnit splits a native asset unit into its policy ID and asset name
func ParseAssetUnit(unit string) (PolicyId, []byte, error) {
	var policyId PolicyId
	if unit == LovelaceUnit {
		return policyId, nil, errors.New("lovelace is not a native asset unit")
	}
	if len(unit) < policyIdHexLength {
		return policyId, nil, fmt.Errorf("asset unit too short: %q", unit)
	}
	policyId, err := NewBlake2b224FromHex(unit[:policyIdHexLength])
	if err != nil {
		return policyId, nil, fmt.Errorf("invalid policy ID in asset unit %q: %w", unit, err)
	}
	assetName, err := hex.DecodeString(unit[policyIdHexLength:])
	if err != nil {
		return policyId, nil, fmt.Errorf("invalid asset name in asset unit %q: %w", unit, err)
	}
	if len(assetName) > AssetNameMaxLength {
		return policyId, nil, fmt.Errorf(
			"asset name too long: %d bytes (max %d)",
			len(assetName),
			AssetNameMaxLength,
		)
	}
	return policyId, assetName, nil
}

// AssetUnitFingerprint returns the CIP-14 fingerprint for a native asset unit
func AssetUnitFingerprint(unit string) (AssetFingerprint, error) {
	policyId, assetName, err := ParseAssetUnit(unit)
	if err != nil {
		return AssetFingerprint{}, err
	}
	return NewAssetFingerprint(policyId.Bytes(), assetName), nil
}

// assetUnitParts returns the policy portion and asset name byte length of a unit without
// validating it, so that sizing works on partially-populated upstream data
func assetUnitParts(unit string) (string, uint64) {
	if len(unit) <= policyIdHexLength {
		return unit, 0
	}
	return unit[:policyIdHexLength], uint64(len(unit)-policyIdHexLength) / 2
}
