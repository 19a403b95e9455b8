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
	"slices"

	"github.com/blinklabs-io/txkit/ledger/common"
)

// LargestFirst selects UTxOs in descending lovelace order until the requirements are met.
// It is deterministic for a given candidate order
type LargestFirst struct {
	config Config
}

var _ Selector = (*LargestFirst)(nil)

func NewLargestFirst(options ...SelectorOptionFunc) *LargestFirst {
	return &LargestFirst{
		config: NewConfig(options...),
	}
}

func (s *LargestFirst) Select(
	utxos []common.Utxo,
	required *big.Int,
	assets []AssetRequirement,
) Result {
	t := newTally(required, assets)
	largestFirst(t, utxos)
	ret := t.result()
	s.config.Logger.Debug(
		"largest-first selection",
		"component", "coinselect",
		"candidates", len(utxos),
		"selected", len(ret.Selected),
		"required", ret.RequiredLovelace.String(),
		"total", ret.TotalLovelace.String(),
		"satisfied", ret.Satisfied(),
	)
	return ret
}

// largestFirst adds candidates to the tally in descending lovelace order, stopping once
// the tally is satisfied. A UTxO is added before the check, so at least one is taken from
// a non-empty candidate set
func largestFirst(t *tally, utxos []common.Utxo) {
	sorted := sortByLovelaceDesc(utxos)
	for _, u := range sorted {
		t.add(u)
		if t.satisfied() {
			break
		}
	}
}

// sortByLovelaceDesc returns a copy of the UTxOs stably sorted by lovelace, largest first
func sortByLovelaceDesc(utxos []common.Utxo) []common.Utxo {
	type candidate struct {
		utxo     common.Utxo
		lovelace *big.Int
	}
	candidates := make([]candidate, 0, len(utxos))
	for _, u := range utxos {
		candidates = append(
			candidates,
			candidate{utxo: u, lovelace: u.Lovelace()},
		)
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return b.lovelace.Cmp(a.lovelace)
	})
	ret := make([]common.Utxo, 0, len(candidates))
	for _, c := range candidates {
		ret = append(ret, c.utxo)
	}
	return ret
}
