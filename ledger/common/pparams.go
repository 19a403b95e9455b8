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
	"errors"
	"math/big"

	"github.com/tidwall/gjson"
)

const (
	// DefaultEstimatedTxSize is the transaction size assumed for a rough fee estimate
	DefaultEstimatedTxSize = 300

	DefaultCollateralPercent   = 150
	DefaultMaxCollateralInputs = 3
)

// ProtocolParameters holds the subset of protocol parameters used for sizing outputs,
// estimating fees and posting collateral
type ProtocolParameters struct {
	MinFeeA             uint64 `json:"minFeeA"`
	MinFeeB             uint64 `json:"minFeeB"`
	CoinsPerUtxoByte    uint64 `json:"coinsPerUtxoByte"`
	MaxTxSize           uint64 `json:"maxTxSize"`
	CollateralPercent   uint64 `json:"collateralPercent"`
	MaxCollateralInputs uint64 `json:"maxCollateralInputs"`
}

// ProtocolParametersFromJson extracts protocol parameters from a Blockfrost
// /epochs/latest/parameters response. Numeric fields may be JSON numbers or strings
func ProtocolParametersFromJson(data []byte) (ProtocolParameters, error) {
	if !gjson.ValidBytes(data) {
		return ProtocolParameters{}, errors.New("invalid protocol parameters JSON")
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return ProtocolParameters{}, errors.New("protocol parameters JSON is not an object")
	}
	minFeeA := result.Get("min_fee_a")
	minFeeB := result.Get("min_fee_b")
	if !minFeeA.Exists() || !minFeeB.Exists() {
		return ProtocolParameters{}, errors.New("protocol parameters JSON missing min_fee_a/min_fee_b")
	}
	ret := ProtocolParameters{
		MinFeeA:             minFeeA.Uint(),
		MinFeeB:             minFeeB.Uint(),
		CoinsPerUtxoByte:    result.Get("coins_per_utxo_size").Uint(),
		MaxTxSize:           result.Get("max_tx_size").Uint(),
		CollateralPercent:   result.Get("collateral_percent").Uint(),
		MaxCollateralInputs: result.Get("max_collateral_inputs").Uint(),
	}
	// Older eras publish the per-word value under a different name
	if ret.CoinsPerUtxoByte == 0 {
		ret.CoinsPerUtxoByte = result.Get("coins_per_utxo_word").Uint() / 8
	}
	return ret, nil
}

// CalculateMinFee returns the linear fee for a transaction of the given size
func CalculateMinFee(txSize uint64, minFeeA uint64, minFeeB uint64) uint64 {
	return minFeeA*txSize + minFeeB
}

// EstimateFee returns a rough fee estimate. A zero size uses DefaultEstimatedTxSize
func (p ProtocolParameters) EstimateFee(txSize uint64) uint64 {
	if txSize == 0 {
		txSize = DefaultEstimatedTxSize
	}
	return CalculateMinFee(txSize, p.MinFeeA, p.MinFeeB)
}

// MinimumUtxoValue is like the package-level MinimumUtxoValue, but uses the
// coins-per-byte value from these parameters when one is set
func (p ProtocolParameters) MinimumUtxoValue(size OutputSize) *big.Int {
	if p.CoinsPerUtxoByte == 0 {
		return MinimumUtxoValue(size)
	}
	return minimumUtxoValue(size, p.CoinsPerUtxoByte)
}

// RequiredCollateral returns the collateral needed to cover the given fee
func (p ProtocolParameters) RequiredCollateral(fee uint64) *big.Int {
	collateralPercent := p.CollateralPercent
	if collateralPercent == 0 {
		collateralPercent = DefaultCollateralPercent
	}
	ret := new(big.Int).Mul(
		new(big.Int).SetUint64(fee),
		new(big.Int).SetUint64(collateralPercent),
	)
	// Round up so that the collateral is never short
	ret.Add(ret, big.NewInt(99))
	return ret.Quo(ret, big.NewInt(100))
}

// CollateralInputLimit returns the maximum number of collateral inputs
func (p ProtocolParameters) CollateralInputLimit() int {
	if p.MaxCollateralInputs == 0 {
		return DefaultMaxCollateralInputs
	}
	return int(p.MaxCollateralInputs) //nolint:gosec
}
