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
	"math/big"
)

const (
	// MinUtxoFloor is the smallest lovelace value any output may carry
	MinUtxoFloor = 1_000_000

	// CoinsPerUtxoByte is the lovelace cost per byte of UTxO entry size
	CoinsPerUtxoByte = 4310

	// Fixed overhead added to every output's size before costing
	utxoConstantOverhead = 160
	// Size of an output entry without a value bundle
	utxoEntrySizeWithoutVal = 27
	// Overhead of a multi-asset bundle
	utxoBundleOverhead = 6
	// Size of one policy ID
	utxoPolicyIdSize = 28
	// Overhead of each asset entry in a bundle
	utxoAssetEntryOverhead = 12
	// Overhead of an inline datum beyond its own size
	utxoInlineDatumOverhead = 2
)

// OutputSize describes the size-driving properties of a transaction output
type OutputSize struct {
	AssetCount     uint64
	AssetNameBytes uint64
	PolicyCount    uint64
	InlineDatum    bool
	DatumSize      uint64
}

// MinimumUtxoValue returns the minimum lovelace an output of the given size must carry.
// It is never below MinUtxoFloor
func MinimumUtxoValue(size OutputSize) *big.Int {
	return minimumUtxoValue(size, CoinsPerUtxoByte)
}

func minimumUtxoValue(size OutputSize, coinsPerUtxoByte uint64) *big.Int {
	tmpSize := big.NewInt(utxoEntrySizeWithoutVal)
	if size.AssetCount > 0 {
		tmpSize.Add(tmpSize, big.NewInt(utxoBundleOverhead))
		tmpSize.Add(
			tmpSize,
			new(big.Int).Mul(
				new(big.Int).SetUint64(size.PolicyCount),
				big.NewInt(utxoPolicyIdSize),
			),
		)
		tmpSize.Add(tmpSize, new(big.Int).SetUint64(size.AssetNameBytes))
		tmpSize.Add(
			tmpSize,
			new(big.Int).Mul(
				new(big.Int).SetUint64(size.AssetCount),
				big.NewInt(utxoAssetEntryOverhead),
			),
		)
	}
	if size.InlineDatum {
		tmpSize.Add(tmpSize, new(big.Int).SetUint64(size.DatumSize))
		tmpSize.Add(tmpSize, big.NewInt(utxoInlineDatumOverhead))
	}
	tmpSize.Add(tmpSize, big.NewInt(utxoConstantOverhead))
	ret := tmpSize.Mul(tmpSize, new(big.Int).SetUint64(coinsPerUtxoByte))
	floor := big.NewInt(MinUtxoFloor)
	if ret.Cmp(floor) < 0 {
		return floor
	}
	return ret
}

// MinimumUtxoValueString is MinimumUtxoValue rendered as a base-10 string
func MinimumUtxoValueString(size OutputSize) string {
	return MinimumUtxoValue(size).String()
}

// OutputSizeFromAmounts derives an OutputSize from an amount list. Lovelace amounts and
// zero quantities are not counted as assets
func OutputSizeFromAmounts(amounts []Amount, inlineDatum []byte) OutputSize {
	var ret OutputSize
	policies := make(map[string]struct{})
	units := make(map[string]struct{})
	for _, amount := range amounts {
		if amount.IsLovelace() || amount.Quantity == nil || amount.Quantity.Sign() == 0 {
			continue
		}
		if _, ok := units[amount.Unit]; ok {
			continue
		}
		units[amount.Unit] = struct{}{}
		policy, nameBytes := assetUnitParts(amount.Unit)
		policies[policy] = struct{}{}
		ret.AssetCount++
		ret.AssetNameBytes += nameBytes
	}
	ret.PolicyCount = uint64(len(policies))
	if len(inlineDatum) > 0 {
		ret.InlineDatum = true
		ret.DatumSize = uint64(len(inlineDatum))
	}
	return ret
}

// OutputSizeFromUtxo derives an OutputSize from an existing output
func OutputSizeFromUtxo(u Utxo) OutputSize {
	return OutputSizeFromAmounts(u.amounts, u.inlineDatum)
}

// ValidateOutputValue returns a BelowMinimumUtxoError if the lovelace value is below the
// minimum for an output of the given size
func ValidateOutputValue(lovelace *big.Int, size OutputSize) error {
	tmpLovelace := bigIntOrZero(lovelace)
	minimum := MinimumUtxoValue(size)
	if tmpLovelace.Cmp(minimum) < 0 {
		return BelowMinimumUtxoError{
			Lovelace: tmpLovelace,
			Minimum:  minimum,
		}
	}
	return nil
}
