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
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTxHash = "4c1cbb4a5ae0e4c0a6d6a35e5e2c5b3b2b0ac1c7a6e1c0e4e4f2a2b0c6d7e8f9"

func testInput(t *testing.T, idx uint32) TransactionInput {
	t.Helper()
	input, err := NewTransactionInput(testTxHash, idx)
	require.NoError(t, err)
	return input
}

func TestTransactionInput(t *testing.T) {
	input := testInput(t, 3)
	assert.Equal(t, testTxHash+"#3", input.String())
	assert.Equal(t, uint32(3), input.Index())
	assert.Equal(t, testTxHash, input.Id().String())
	jsonData, err := json.Marshal(input)
	require.NoError(t, err)
	assert.Equal(t, `"`+testTxHash+`#3"`, string(jsonData))
	_, err = NewTransactionInput("abcd", 0)
	assert.Error(t, err)
}

func TestNewUtxo(t *testing.T) {
	unit := strings.Repeat("ab", 28) + "746f6b656e"
	utxo, err := NewUtxo(
		testInput(t, 0),
		[]Amount{
			NewLovelaceAmount(5000000),
			{Unit: unit, Quantity: big.NewInt(10)},
		},
		WithAddress("addr_test1vpmwd5tk8quxnzxq46h8vztf00xtphrd7zd0al5ur5jsylg3r9v4l"),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(5000000), utxo.Lovelace().Int64())
	assert.Equal(t, int64(10), utxo.Quantity(unit).Int64())
	assert.Equal(t, int64(0), utxo.Quantity("missing").Int64())
	assert.True(t, utxo.HasAssets())
	assert.False(t, utxo.HasDatum())
	assert.Len(t, utxo.Assets(), 1)
	assert.Equal(t, "addr_test1vpmwd5tk8quxnzxq46h8vztf00xtphrd7zd0al5ur5jsylg3r9v4l", utxo.Address())
}

func TestNewUtxoMissingLovelace(t *testing.T) {
	unit := strings.Repeat("ab", 28)
	utxo, err := NewUtxo(
		testInput(t, 1),
		[]Amount{{Unit: unit, Quantity: big.NewInt(1)}},
	)
	require.NoError(t, err)
	amounts := utxo.Amounts()
	require.Len(t, amounts, 2)
	assert.True(t, amounts[0].IsLovelace())
	assert.Equal(t, int64(0), amounts[0].Quantity.Int64())
	assert.Equal(t, int64(0), utxo.Lovelace().Int64())
}

func TestNewUtxoInvalid(t *testing.T) {
	unit := strings.Repeat("ab", 28)
	testDefs := []struct {
		name    string
		amounts []Amount
	}{
		{
			name: "duplicate lovelace",
			amounts: []Amount{
				NewLovelaceAmount(1),
				NewLovelaceAmount(2),
			},
		},
		{
			name: "duplicate asset",
			amounts: []Amount{
				{Unit: unit, Quantity: big.NewInt(1)},
				{Unit: unit, Quantity: big.NewInt(1)},
			},
		},
		{
			name:    "negative quantity",
			amounts: []Amount{{Unit: LovelaceUnit, Quantity: big.NewInt(-1)}},
		},
		{
			name:    "empty unit",
			amounts: []Amount{{Unit: "", Quantity: big.NewInt(1)}},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := NewUtxo(testInput(t, 0), testDef.amounts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidUtxo))
		})
	}
}

func TestUtxoImmutable(t *testing.T) {
	quantity := big.NewInt(7000000)
	amounts := []Amount{{Unit: LovelaceUnit, Quantity: quantity}}
	utxo, err := NewUtxo(testInput(t, 0), amounts)
	require.NoError(t, err)
	// Mutating the caller's value does not leak into the Utxo
	quantity.SetInt64(1)
	assert.Equal(t, int64(7000000), utxo.Lovelace().Int64())
	// Mutating returned values does not leak into the Utxo
	utxo.Lovelace().SetInt64(2)
	utxo.Amounts()[0].Quantity.SetInt64(3)
	assert.Equal(t, int64(7000000), utxo.Lovelace().Int64())
}

func TestUtxoJson(t *testing.T) {
	// Shape returned by the Blockfrost /addresses/{address}/utxos endpoint
	jsonData := `[
		{
			"address": "addr_test1vpmwd5tk8quxnzxq46h8vztf00xtphrd7zd0al5ur5jsylg3r9v4l",
			"tx_hash": "` + testTxHash + `",
			"tx_index": 1,
			"output_index": 1,
			"amount": [
				{"unit": "lovelace", "quantity": "42000000"},
				{"unit": "` + strings.Repeat("ab", 28) + `4e4654", "quantity": "12"}
			],
			"block": "7eb8e27d18686c7db9a18f8bbcfe34e3fed6e047afaa2d969904d15e934847e6",
			"data_hash": "` + strings.Repeat("cd", 32) + `",
			"inline_datum": "d87980",
			"reference_script_hash": null
		},
		{
			"txHash": "` + testTxHash + `",
			"outputIndex": 2,
			"amount": [
				{"unit": "lovelace", "quantity": 3000000}
			]
		}
	]`
	utxos, err := DecodeUtxosJson([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	assert.Equal(t, testTxHash+"#1", utxos[0].Input().String())
	assert.Equal(t, int64(42000000), utxos[0].Lovelace().Int64())
	assert.Equal(t, int64(12), utxos[0].Quantity(strings.Repeat("ab", 28)+"4e4654").Int64())
	require.NotNil(t, utxos[0].DatumHash())
	assert.Equal(t, strings.Repeat("cd", 32), utxos[0].DatumHash().String())
	assert.Equal(t, []byte{0xd8, 0x79, 0x80}, utxos[0].InlineDatum())
	assert.Nil(t, utxos[0].ReferenceScriptHash())
	assert.True(t, utxos[0].HasDatum())
	assert.Equal(t, uint32(2), utxos[1].Input().Index())
	assert.Equal(t, int64(3000000), utxos[1].Lovelace().Int64())
	// Encoding and decoding preserves the output
	encoded, err := json.Marshal(utxos[0])
	require.NoError(t, err)
	var decoded Utxo
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, utxos[0].Input(), decoded.Input())
	assert.Equal(t, utxos[0].Amounts(), decoded.Amounts())
	assert.Equal(t, utxos[0].InlineDatum(), decoded.InlineDatum())
	assert.Equal(t, utxos[0].DatumHash(), decoded.DatumHash())
}

func TestUtxoJsonInvalid(t *testing.T) {
	testDefs := []string{
		`[{"tx_hash": "zz", "output_index": 0, "amount": []}]`,
		`[{"tx_hash": "` + testTxHash + `", "output_index": 0, "amount": [{"unit": "lovelace", "quantity": "1.5"}]}]`,
		`[{"tx_hash": "` + testTxHash + `", "output_index": 0, "amount": [{"unit": "lovelace", "quantity": "-1"}]}]`,
		`[{"tx_hash": "` + testTxHash + `", "output_index": 0, "amount": [], "inline_datum": "xyz"}]`,
		`{}`,
	}
	for _, testDef := range testDefs {
		_, err := DecodeUtxosJson([]byte(testDef))
		assert.Error(t, err, "expected error for %s", testDef)
	}
}
