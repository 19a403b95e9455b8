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
	"fmt"
	"math/big"
)

// Sentinel error for malformed UTxO amounts so callers can use errors.Is
var ErrInvalidUtxo = errors.New("invalid utxo")

// InvalidAmountError indicates an amount list that violates the UTxO invariants
type InvalidAmountError struct {
	Input  TransactionInput
	Unit   string
	Reason string
}

func (e InvalidAmountError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("invalid amount for %s: %s", e.Input.String(), e.Reason)
	}
	return fmt.Sprintf(
		"invalid amount for %s: %s: %s",
		e.Input.String(),
		e.Unit,
		e.Reason,
	)
}

func (InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidUtxo
}

// Sentinel error for outputs that carry less than the minimum lovelace
var ErrBelowMinimumUtxo = errors.New("output value below minimum")

// BelowMinimumUtxoError indicates an output value below the minimum UTxO value for its size
type BelowMinimumUtxoError struct {
	Lovelace *big.Int
	Minimum  *big.Int
}

func (e BelowMinimumUtxoError) Error() string {
	return fmt.Sprintf(
		"output carries %s lovelace, minimum is %s",
		e.Lovelace.String(),
		e.Minimum.String(),
	)
}

func (BelowMinimumUtxoError) Is(target error) bool {
	return target == ErrBelowMinimumUtxo
}
