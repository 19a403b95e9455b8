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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimumUtxoValue(t *testing.T) {
	testDefs := []struct {
		name     string
		size     OutputSize
		expected string
	}{
		{
			name:     "ada only",
			size:     OutputSize{},
			expected: "1000000",
		},
		{
			name: "two assets under one policy",
			size: OutputSize{
				AssetCount:     2,
				AssetNameBytes: 20,
				PolicyCount:    1,
			},
			// (27 + 6 + 28 + 20 + 24 + 160) * 4310
			expected: "1142150",
		},
		{
			name: "inline datum only",
			size: OutputSize{
				InlineDatum: true,
				DatumSize:   100,
			},
			// (27 + 100 + 2 + 160) * 4310
			expected: "1245590",
		},
		{
			name: "datum size ignored without inline datum",
			size: OutputSize{
				DatumSize: 100,
			},
			expected: "1000000",
		},
		{
			name: "assets and inline datum",
			size: OutputSize{
				AssetCount:     10,
				AssetNameBytes: 320,
				PolicyCount:    3,
				InlineDatum:    true,
				DatumSize:      500,
			},
			// (27 + 6 + 84 + 320 + 120 + 500 + 2 + 160) * 4310
			expected: "5253890",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Equal(t, testDef.expected, MinimumUtxoValue(testDef.size).String())
			assert.Equal(t, testDef.expected, MinimumUtxoValueString(testDef.size))
		})
	}
}

func TestMinimumUtxoValueMonotonic(t *testing.T) {
	base := OutputSize{
		AssetCount:     3,
		AssetNameBytes: 30,
		PolicyCount:    2,
		InlineDatum:    true,
		DatumSize:      50,
	}
	baseValue := MinimumUtxoValue(base)
	bumps := []func(OutputSize) OutputSize{
		func(s OutputSize) OutputSize { s.AssetCount++; return s },
		func(s OutputSize) OutputSize { s.AssetNameBytes += 10; return s },
		func(s OutputSize) OutputSize { s.PolicyCount++; return s },
		func(s OutputSize) OutputSize { s.DatumSize += 64; return s },
	}
	for idx, bump := range bumps {
		bumped := MinimumUtxoValue(bump(base))
		assert.Equal(t, 1, bumped.Cmp(baseValue), "bump %d did not increase the minimum", idx)
	}
	// Adding an inline datum never lowers the minimum
	noDatum := base
	noDatum.InlineDatum = false
	assert.GreaterOrEqual(t, baseValue.Cmp(MinimumUtxoValue(noDatum)), 0)
	// Near the floor the minimum stays flat
	assert.Equal(
		t,
		MinimumUtxoValue(OutputSize{}),
		MinimumUtxoValue(OutputSize{InlineDatum: true, DatumSize: 1}),
	)
	for assetCount := uint64(0); assetCount < 50; assetCount++ {
		value := MinimumUtxoValue(OutputSize{AssetCount: assetCount, PolicyCount: 1})
		assert.GreaterOrEqual(t, value.Int64(), int64(MinUtxoFloor))
	}
}

func TestOutputSizeFromAmounts(t *testing.T) {
	policyA := strings.Repeat("aa", 28)
	policyB := strings.Repeat("bb", 28)
	amounts := []Amount{
		NewLovelaceAmount(2000000),
		{Unit: policyA + "746f6b656e31", Quantity: big.NewInt(1)},
		{Unit: policyA + "746f6b656e32", Quantity: big.NewInt(5)},
		{Unit: policyB, Quantity: big.NewInt(7)},
		// Zero quantities do not occupy space in the bundle
		{Unit: policyB + "00", Quantity: big.NewInt(0)},
	}
	size := OutputSizeFromAmounts(amounts, nil)
	assert.Equal(
		t,
		OutputSize{
			AssetCount:     3,
			AssetNameBytes: 12,
			PolicyCount:    2,
		},
		size,
	)
	size = OutputSizeFromAmounts(amounts, []byte{0xd8, 0x79, 0x80})
	assert.True(t, size.InlineDatum)
	assert.Equal(t, uint64(3), size.DatumSize)
	assert.Equal(t, OutputSize{}, OutputSizeFromAmounts([]Amount{NewLovelaceAmount(5)}, nil))
}

func TestOutputSizeFromUtxo(t *testing.T) {
	input, err := NewTransactionInput(strings.Repeat("01", 32), 0)
	require.NoError(t, err)
	utxo, err := NewUtxo(
		input,
		[]Amount{
			NewLovelaceAmount(1500000),
			{Unit: strings.Repeat("cc", 28) + "4e4654", Quantity: big.NewInt(1)},
		},
		WithInlineDatum([]byte{0x01}),
	)
	require.NoError(t, err)
	size := OutputSizeFromUtxo(utxo)
	assert.Equal(t, uint64(1), size.AssetCount)
	assert.Equal(t, uint64(3), size.AssetNameBytes)
	assert.Equal(t, uint64(1), size.PolicyCount)
	assert.True(t, size.InlineDatum)
	assert.Equal(t, uint64(1), size.DatumSize)
}

func TestValidateOutputValue(t *testing.T) {
	size := OutputSize{AssetCount: 2, AssetNameBytes: 20, PolicyCount: 1}
	require.NoError(t, ValidateOutputValue(big.NewInt(1142150), size))
	err := ValidateOutputValue(big.NewInt(1142149), size)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBelowMinimumUtxo))
	var belowErr BelowMinimumUtxoError
	require.True(t, errors.As(err, &belowErr))
	assert.Equal(t, "1142150", belowErr.Minimum.String())
	assert.Error(t, ValidateOutputValue(nil, OutputSize{}))
}
