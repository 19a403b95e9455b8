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
	"math/big"

	"github.com/blinklabs-io/txkit/ledger/common"
)

// RandomImprove starts from a Largest-First selection and, when that selection is well
// short of twice the required lovelace, adds randomly chosen extra UTxOs until it is not.
// The extra inputs leave a larger change output, which keeps the UTxO set healthy.
// Adding inputs never removes sufficiency
type RandomImprove struct {
	config Config
}

var _ Selector = (*RandomImprove)(nil)

func NewRandomImprove(options ...SelectorOptionFunc) *RandomImprove {
	return &RandomImprove{
		config: NewConfig(options...),
	}
}

func (s *RandomImprove) Select(
	utxos []common.Utxo,
	required *big.Int,
	assets []AssetRequirement,
) Result {
	t := newTally(required, assets)
	largestFirst(t, utxos)
	baselineCount := len(t.selected)
	target := new(big.Int).Mul(
		t.requiredLovelace,
		new(big.Int).SetUint64(s.config.ImproveFactor),
	)
	threshold := new(big.Int).Mul(
		target,
		new(big.Int).SetUint64(s.config.ImproveThreshold),
	)
	threshold.Quo(threshold, big.NewInt(100))
	if t.lovelace.Cmp(threshold) < 0 {
		remaining := unselected(utxos, t.selected)
		s.config.shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
		for _, u := range remaining {
			if t.lovelace.Cmp(target) >= 0 {
				break
			}
			t.add(u)
		}
	}
	ret := t.result()
	s.config.Logger.Debug(
		"random-improve selection",
		"component", "coinselect",
		"candidates", len(utxos),
		"baseline", baselineCount,
		"improved", len(ret.Selected)-baselineCount,
		"required", ret.RequiredLovelace.String(),
		"target", target.String(),
		"total", ret.TotalLovelace.String(),
		"satisfied", ret.Satisfied(),
	)
	return ret
}

// unselected returns the candidates whose input does not appear in the selection, in
// their original order
func unselected(utxos []common.Utxo, selected []common.Utxo) []common.Utxo {
	selectedInputs := make(map[common.TransactionInput]struct{}, len(selected))
	for _, u := range selected {
		selectedInputs[u.Input()] = struct{}{}
	}
	ret := make([]common.Utxo, 0, len(utxos))
	for _, u := range utxos {
		if _, ok := selectedInputs[u.Input()]; ok {
			continue
		}
		ret = append(ret, u)
	}
	return ret
}
