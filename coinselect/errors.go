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

package coinselect

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoCollateral      = errors.New("no suitable collateral")
)

// InsufficientFundsError reports a selection that could not cover its requirements
type InsufficientFundsError struct {
	Required  *big.Int
	Available *big.Int
	Shortfall Shortfall
}

func (e *InsufficientFundsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(
		&sb,
		"insufficient funds: required %s lovelace, available %s",
		e.Required.String(),
		e.Available.String(),
	)
	for _, asset := range e.Shortfall.Assets {
		fmt.Fprintf(&sb, ", missing %s of %s", asset.Quantity.String(), asset.Unit)
	}
	return sb.String()
}

func (*InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
