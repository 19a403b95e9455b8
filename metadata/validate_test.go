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

package metadata_test

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/blinklabs-io/txkit/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMap(t *testing.T, jsonData string) metadata.Map {
	t.Helper()
	m, err := metadata.MapFromJSON([]byte(jsonData))
	require.NoError(t, err)
	return m
}

func TestValidate(t *testing.T) {
	long := strings.Repeat("x", 100)
	testDefs := []struct {
		name           string
		jsonData       string
		expectedErrors []string
	}{
		{
			name:           "valid",
			jsonData:       `{"674": {"msg": ["hello", "world"]}, "1": 42, "2": -42}`,
			expectedErrors: []string{},
		},
		{
			name:     "invalid key and long string",
			jsonData: `{"invalid-key": {"a": 1}, "674": {"msg": "` + long + `"}}`,
			expectedErrors: []string{
				`metadata key "invalid-key" must be an unsigned integer`,
				`metadata[674].msg: text too long (100 bytes, max 64)`,
			},
		},
		{
			name:     "key errors do not stop the value walk",
			jsonData: `{"-1": "` + long + `"}`,
			expectedErrors: []string{
				`metadata key "-1" must be an unsigned integer`,
				`metadata[-1]: text too long (100 bytes, max 64)`,
			},
		},
		{
			name:     "label out of range",
			jsonData: `{"18446744073709551616": 1, "18446744073709551615": 1}`,
			expectedErrors: []string{
				`metadata key "18446744073709551616" is out of valid range`,
			},
		},
		{
			name:     "non-integral number in list",
			jsonData: `{"1": [1, 2.5, [3.25]]}`,
			expectedErrors: []string{
				`metadata[1][1]: numbers must be integers`,
				`metadata[1][2][0]: numbers must be integers`,
			},
		},
		{
			name:     "integer out of range",
			jsonData: `{"1": {"max": 18446744073709551615, "over": 18446744073709551616, "under": -18446744073709551616}}`,
			expectedErrors: []string{
				`metadata[1].over: integer out of range`,
				`metadata[1].under: integer out of range`,
			},
		},
		{
			name:     "booleans and nulls",
			jsonData: `{"1": {"flag": true, "nothing": null}}`,
			expectedErrors: []string{
				`metadata[1].flag: unsupported bool value`,
				`metadata[1].nothing: unsupported null value`,
			},
		},
		{
			name:     "long map key",
			jsonData: `{"1": {"` + long + `": 1}}`,
			expectedErrors: []string{
				fmt.Sprintf(`metadata[1].%s: key: text too long (100 bytes, max 64)`, long),
			},
		},
		{
			name:     "string of exactly 64 bytes",
			jsonData: `{"1": "` + strings.Repeat("y", 64) + `"}`,
			expectedErrors: []string{},
		},
		{
			name:     "multi-byte characters count as bytes",
			jsonData: `{"1": "` + strings.Repeat("é", 33) + `"}`,
			expectedErrors: []string{
				`metadata[1]: text too long (66 bytes, max 64)`,
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			report := metadata.Validate(mustMap(t, testDef.jsonData))
			assert.Equal(t, testDef.expectedErrors, report.Errors)
			assert.Equal(t, len(testDef.expectedErrors) == 0, report.Valid)
		})
	}
}

func TestValidateExhaustive(t *testing.T) {
	// Each label carries one independent violation
	pairs := make([]metadata.Pair, 0, 20)
	for i := range 20 {
		var value metadata.Node
		switch i % 4 {
		case 0:
			value = metadata.NewText(strings.Repeat("a", 65+i))
		case 1:
			value = metadata.NewBytes(make([]byte, 65+i))
		case 2:
			value = metadata.Float{Value: float64(i) + 0.5}
		default:
			value = metadata.Int{Value: new(big.Int).Lsh(big.NewInt(1), 70)}
		}
		pairs = append(
			pairs,
			metadata.Pair{Key: metadata.NewInt(int64(i)), Value: metadata.NewList(value)},
		)
	}
	report := metadata.Validate(metadata.NewMap(pairs...))
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 20)
	assert.Equal(t, "metadata[1][0]: bytes too long (66 bytes, max 64)", report.Errors[1])
}

func TestValidateCBORShapes(t *testing.T) {
	root := metadata.NewMap(
		metadata.Pair{Key: metadata.NewBytes([]byte{0x01}), Value: metadata.NewInt(1)},
		metadata.Pair{
			Key:   metadata.NewInt(1),
			Value: metadata.Opaque{Kind: metadata.OpaqueTag, Value: uint64(121)},
		},
	)
	report := metadata.Validate(root)
	assert.Equal(
		t,
		[]string{
			`metadata key "01" must be an unsigned integer`,
			`metadata[1]: unsupported tag value`,
		},
		report.Errors,
	)
}

func TestReportJson(t *testing.T) {
	jsonData, err := json.Marshal(metadata.Validate(mustMap(t, `{"1": "ok"}`)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true, "errors": []}`, string(jsonData))
}
