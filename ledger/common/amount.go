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
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// LovelacePerAda is the fixed ratio between lovelace and ADA
	LovelacePerAda = 1_000_000

	// LovelaceUnit is the amount unit used for the base currency
	LovelaceUnit = "lovelace"

	adaDecimals = 6
)

// LovelaceAmount is any representation of a lovelace quantity accepted by LovelaceToAda
type LovelaceAmount interface {
	int | int64 | uint64 | string | *big.Int
}

// LovelaceToAda converts a lovelace amount into ADA for display. Strings must be base-10
// integers; a string that cannot be parsed yields NaN
func LovelaceToAda[T LovelaceAmount](amount T) float64 {
	var tmp *big.Int
	switch v := any(amount).(type) {
	case *big.Int:
		tmp = v
	case int:
		tmp = big.NewInt(int64(v))
	case int64:
		tmp = big.NewInt(v)
	case uint64:
		tmp = new(big.Int).SetUint64(v)
	case string:
		parsed, err := ParseLovelace(v)
		if err != nil {
			return math.NaN()
		}
		tmp = parsed
	}
	if tmp == nil {
		return 0
	}
	ret, _ := decimal.NewFromBigInt(tmp, -adaDecimals).Float64()
	return ret
}

// AdaToLovelace converts an ADA amount into lovelace. Fractions of a lovelace are truncated
// toward zero. The float is taken at its shortest decimal representation, so 2.3 yields
// "2300000". Non-finite values yield "0"
func AdaToLovelace(ada float64) string {
	if math.IsNaN(ada) || math.IsInf(ada, 0) {
		return "0"
	}
	return decimal.NewFromFloat(ada).Shift(adaDecimals).Truncate(0).String()
}

// FormatAda renders a lovelace amount as an exact ADA decimal string
func FormatAda(lovelace *big.Int) string {
	if lovelace == nil {
		return "0"
	}
	return decimal.NewFromBigInt(lovelace, -adaDecimals).String()
}

// ParseLovelace parses a base-10 integer lovelace quantity
func ParseLovelace(s string) (*big.Int, error) {
	ret, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid lovelace quantity: %q", s)
	}
	return ret, nil
}

// ParseAda parses an exact decimal ADA amount into lovelace, truncating toward zero
func ParseAda(s string) (*big.Int, error) {
	tmp, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid ADA amount %q: %w", s, err)
	}
	return tmp.Shift(adaDecimals).Truncate(0).BigInt(), nil
}

func bigIntOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
