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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed Blockfrost /epochs/latest/parameters response
const testProtocolParametersJson = `{
	"epoch": 500,
	"min_fee_a": 44,
	"min_fee_b": 155381,
	"max_block_size": 90112,
	"max_tx_size": 16384,
	"key_deposit": "2000000",
	"pool_deposit": "500000000",
	"coins_per_utxo_size": "4310",
	"coins_per_utxo_word": "4310",
	"collateral_percent": 150,
	"max_collateral_inputs": 3
}`

func TestProtocolParametersFromJson(t *testing.T) {
	pp, err := ProtocolParametersFromJson([]byte(testProtocolParametersJson))
	require.NoError(t, err)
	assert.Equal(
		t,
		ProtocolParameters{
			MinFeeA:             44,
			MinFeeB:             155381,
			CoinsPerUtxoByte:    4310,
			MaxTxSize:           16384,
			CollateralPercent:   150,
			MaxCollateralInputs: 3,
		},
		pp,
	)
}

func TestProtocolParametersFromJsonLegacy(t *testing.T) {
	pp, err := ProtocolParametersFromJson(
		[]byte(`{"min_fee_a": "44", "min_fee_b": "155381", "coins_per_utxo_word": 34482}`),
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(44), pp.MinFeeA)
	assert.Equal(t, uint64(155381), pp.MinFeeB)
	assert.Equal(t, uint64(4310), pp.CoinsPerUtxoByte)
}

func TestProtocolParametersFromJsonInvalid(t *testing.T) {
	testDefs := []string{
		``,
		`{"min_fee_a": 44`,
		`[1, 2]`,
		`{"min_fee_a": 44}`,
	}
	for _, testDef := range testDefs {
		_, err := ProtocolParametersFromJson([]byte(testDef))
		assert.Error(t, err, "expected error for %q", testDef)
	}
}

func TestEstimateFee(t *testing.T) {
	pp := ProtocolParameters{MinFeeA: 44, MinFeeB: 155381}
	// 44 * 300 + 155381
	assert.Equal(t, uint64(168581), pp.EstimateFee(0))
	assert.Equal(t, uint64(168581), pp.EstimateFee(DefaultEstimatedTxSize))
	assert.Equal(t, uint64(155381+44*1000), pp.EstimateFee(1000))
	assert.Equal(t, uint64(155381), CalculateMinFee(0, 0, 155381))
}

func TestProtocolParametersMinimumUtxoValue(t *testing.T) {
	size := OutputSize{AssetCount: 2, AssetNameBytes: 20, PolicyCount: 1}
	assert.Equal(t, MinimumUtxoValue(size), ProtocolParameters{}.MinimumUtxoValue(size))
	assert.Equal(
		t,
		MinimumUtxoValue(size),
		ProtocolParameters{CoinsPerUtxoByte: CoinsPerUtxoByte}.MinimumUtxoValue(size),
	)
	// 265 bytes at 5000 lovelace per byte
	assert.Equal(
		t,
		"1325000",
		ProtocolParameters{CoinsPerUtxoByte: 5000}.MinimumUtxoValue(size).String(),
	)
}

func TestRequiredCollateral(t *testing.T) {
	pp := ProtocolParameters{}
	assert.Equal(t, "252872", pp.RequiredCollateral(168581).String())
	assert.Equal(t, "150", pp.RequiredCollateral(100).String())
	pp.CollateralPercent = 200
	assert.Equal(t, "337162", pp.RequiredCollateral(168581).String())
	assert.Equal(t, DefaultMaxCollateralInputs, pp.CollateralInputLimit())
	pp.MaxCollateralInputs = 5
	assert.Equal(t, 5, pp.CollateralInputLimit())
}
