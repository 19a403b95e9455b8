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
	"fmt"
	"math/big"

	"github.com/blinklabs-io/txkit/ledger/common"
)

// DefaultCollateralMinimum is the smallest lovelace value accepted for a collateral input
const DefaultCollateralMinimum = 5_000_000

// IsCollateralCandidate reports whether a UTxO can be posted as collateral: it holds only
// lovelace, carries no datum or reference script, and holds at least minLovelace
func IsCollateralCandidate(u common.Utxo, minLovelace *big.Int) bool {
	if u.HasAssets() || u.HasDatum() || u.ReferenceScriptHash() != nil {
		return false
	}
	if minLovelace == nil {
		minLovelace = big.NewInt(DefaultCollateralMinimum)
	}
	return u.Lovelace().Cmp(minLovelace) >= 0
}

// SelectCollateral returns the collateral candidates among the UTxOs, in their original
// order. A nil minLovelace uses DefaultCollateralMinimum
func SelectCollateral(utxos []common.Utxo, minLovelace *big.Int) []common.Utxo {
	ret := make([]common.Utxo, 0)
	for _, u := range utxos {
		if IsCollateralCandidate(u, minLovelace) {
			ret = append(ret, u)
		}
	}
	return ret
}

// SelectCollateralFor picks collateral inputs covering the collateral required for a fee
// under the given protocol parameters. It prefers a single input and otherwise takes the
// largest candidates up to the collateral input limit
func SelectCollateralFor(
	utxos []common.Utxo,
	pp common.ProtocolParameters,
	fee uint64,
) ([]common.Utxo, error) {
	required := pp.RequiredCollateral(fee)
	candidates := sortByLovelaceDesc(SelectCollateral(utxos, new(big.Int)))
	if len(candidates) == 0 {
		return nil, ErrNoCollateral
	}
	// Smallest single candidate that covers the requirement
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Lovelace().Cmp(required) >= 0 {
			return []common.Utxo{candidates[i]}, nil
		}
	}
	limit := min(pp.CollateralInputLimit(), len(candidates))
	total := new(big.Int)
	for i := range limit {
		total.Add(total, candidates[i].Lovelace())
		if total.Cmp(required) >= 0 {
			return candidates[:i+1], nil
		}
	}
	return nil, fmt.Errorf(
		"%w: need %s lovelace, best %d inputs hold %s",
		ErrNoCollateral,
		required.String(),
		limit,
		total.String(),
	)
}
