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
	"encoding/json"
	"math/big"
	"slices"
	"strings"

	"github.com/blinklabs-io/txkit/ledger/common"
)

// AssetRequirement is a minimum quantity of a native asset that a selection must cover
type AssetRequirement struct {
	Unit     string   `json:"unit"`
	Quantity *big.Int `json:"quantity"`
}

// Selector picks a subset of candidate UTxOs covering the required lovelace and assets.
// A Selector returns a best-effort Result when the candidates are insufficient; use
// Result.Err to detect that case
type Selector interface {
	Select(utxos []common.Utxo, required *big.Int, assets []AssetRequirement) Result
}

// Result holds the outcome of a coin selection
type Result struct {
	// Selected UTxOs in selection order
	Selected         []common.Utxo
	RequiredLovelace *big.Int
	RequiredAssets   []AssetRequirement
	TotalLovelace    *big.Int
	// Total quantity per asset unit across the selected UTxOs
	TotalAssets map[string]*big.Int
	// Change is TotalLovelace minus RequiredLovelace, negative when under-funded
	Change *big.Int
}

// Satisfied reports whether the selected UTxOs cover the required lovelace and every
// asset requirement
func (r Result) Satisfied() bool {
	if bigIntOrZero(r.TotalLovelace).Cmp(bigIntOrZero(r.RequiredLovelace)) < 0 {
		return false
	}
	for _, req := range r.RequiredAssets {
		if bigIntOrZero(r.TotalAssets[req.Unit]).Cmp(req.Quantity) < 0 {
			return false
		}
	}
	return true
}

// Shortfall holds the amounts missing from an unsatisfied selection
type Shortfall struct {
	Lovelace *big.Int           `json:"lovelace"`
	Assets   []AssetRequirement `json:"assets,omitempty"`
}

// IsZero reports whether nothing is missing
func (s Shortfall) IsZero() bool {
	return s.Lovelace.Sign() == 0 && len(s.Assets) == 0
}

// Shortfall returns the lovelace and per-asset quantities still needed to satisfy the
// requirements
func (r Result) Shortfall() Shortfall {
	ret := Shortfall{
		Lovelace: new(big.Int),
	}
	missing := new(big.Int).Sub(
		bigIntOrZero(r.RequiredLovelace),
		bigIntOrZero(r.TotalLovelace),
	)
	if missing.Sign() > 0 {
		ret.Lovelace = missing
	}
	for _, req := range r.RequiredAssets {
		missing := new(big.Int).Sub(req.Quantity, bigIntOrZero(r.TotalAssets[req.Unit]))
		if missing.Sign() > 0 {
			ret.Assets = append(
				ret.Assets,
				AssetRequirement{Unit: req.Unit, Quantity: missing},
			)
		}
	}
	return ret
}

// Err returns an InsufficientFundsError when the selection is not satisfied, or nil
func (r Result) Err() error {
	if r.Satisfied() {
		return nil
	}
	return &InsufficientFundsError{
		Required:  bigIntOrZero(r.RequiredLovelace),
		Available: bigIntOrZero(r.TotalLovelace),
		Shortfall: r.Shortfall(),
	}
}

// ChangeAssets returns the asset quantities left over after the requirements are taken,
// sorted by unit. Units with nothing left over are omitted
func (r Result) ChangeAssets() []common.Amount {
	required := make(map[string]*big.Int, len(r.RequiredAssets))
	for _, req := range r.RequiredAssets {
		required[req.Unit] = req.Quantity
	}
	ret := make([]common.Amount, 0, len(r.TotalAssets))
	for unit, total := range r.TotalAssets {
		change := new(big.Int).Sub(total, bigIntOrZero(required[unit]))
		if change.Sign() <= 0 {
			continue
		}
		ret = append(ret, common.Amount{Unit: unit, Quantity: change})
	}
	slices.SortFunc(ret, func(a, b common.Amount) int {
		return strings.Compare(a.Unit, b.Unit)
	})
	return ret
}

// ChangeOutputSize returns the size of an output carrying the change assets
func (r Result) ChangeOutputSize() common.OutputSize {
	return common.OutputSizeFromAmounts(r.ChangeAssets(), nil)
}

// ChangeMeetsMinimum reports whether the lovelace change is enough to fund a change output
// carrying the change assets
func (r Result) ChangeMeetsMinimum() bool {
	return common.ValidateOutputValue(r.Change, r.ChangeOutputSize()) == nil
}

type resultJson struct {
	Selected         []common.Utxo      `json:"selected"`
	RequiredLovelace string             `json:"requiredLovelace"`
	RequiredAssets   []AssetRequirement `json:"requiredAssets,omitempty"`
	TotalLovelace    string             `json:"totalLovelace"`
	TotalAssets      []common.Amount    `json:"totalAssets,omitempty"`
	Change           string             `json:"change"`
	ChangeAssets     []common.Amount    `json:"changeAssets,omitempty"`
	Satisfied        bool               `json:"satisfied"`
	Shortfall        *Shortfall         `json:"shortfall,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	tmpObj := resultJson{
		Selected:         r.Selected,
		RequiredLovelace: bigIntOrZero(r.RequiredLovelace).String(),
		RequiredAssets:   r.RequiredAssets,
		TotalLovelace:    bigIntOrZero(r.TotalLovelace).String(),
		Change:           bigIntOrZero(r.Change).String(),
		ChangeAssets:     r.ChangeAssets(),
		Satisfied:        r.Satisfied(),
	}
	if tmpObj.Selected == nil {
		tmpObj.Selected = []common.Utxo{}
	}
	for unit, total := range r.TotalAssets {
		tmpObj.TotalAssets = append(
			tmpObj.TotalAssets,
			common.Amount{Unit: unit, Quantity: total},
		)
	}
	slices.SortFunc(tmpObj.TotalAssets, func(a, b common.Amount) int {
		return strings.Compare(a.Unit, b.Unit)
	})
	if !tmpObj.Satisfied {
		shortfall := r.Shortfall()
		tmpObj.Shortfall = &shortfall
	}
	return json.Marshal(&tmpObj)
}

// tally accumulates selected UTxOs and their running totals
type tally struct {
	requiredLovelace *big.Int
	requiredAssets   []AssetRequirement
	selected         []common.Utxo
	lovelace         *big.Int
	assets           map[string]*big.Int
}

func newTally(required *big.Int, assets []AssetRequirement) *tally {
	requiredLovelace, requiredAssets := normalizeRequirements(required, assets)
	return &tally{
		requiredLovelace: requiredLovelace,
		requiredAssets:   requiredAssets,
		lovelace:         new(big.Int),
		assets:           make(map[string]*big.Int),
	}
}

func (t *tally) add(u common.Utxo) {
	t.selected = append(t.selected, u)
	for _, amount := range u.Amounts() {
		if amount.IsLovelace() {
			t.lovelace.Add(t.lovelace, amount.Quantity)
			continue
		}
		total, ok := t.assets[amount.Unit]
		if !ok {
			total = new(big.Int)
			t.assets[amount.Unit] = total
		}
		total.Add(total, amount.Quantity)
	}
}

func (t *tally) satisfied() bool {
	if t.lovelace.Cmp(t.requiredLovelace) < 0 {
		return false
	}
	for _, req := range t.requiredAssets {
		total, ok := t.assets[req.Unit]
		if !ok || total.Cmp(req.Quantity) < 0 {
			return false
		}
	}
	return true
}

func (t *tally) result() Result {
	ret := Result{
		Selected:         t.selected,
		RequiredLovelace: new(big.Int).Set(t.requiredLovelace),
		RequiredAssets:   t.requiredAssets,
		TotalLovelace:    new(big.Int).Set(t.lovelace),
		TotalAssets:      make(map[string]*big.Int, len(t.assets)),
		Change:           new(big.Int).Sub(t.lovelace, t.requiredLovelace),
	}
	if ret.Selected == nil {
		ret.Selected = []common.Utxo{}
	}
	for unit, total := range t.assets {
		ret.TotalAssets[unit] = new(big.Int).Set(total)
	}
	return ret
}

// normalizeRequirements folds lovelace asset requirements into the lovelace amount, merges
// repeated units and drops non-positive quantities
func normalizeRequirements(
	required *big.Int,
	assets []AssetRequirement,
) (*big.Int, []AssetRequirement) {
	requiredLovelace := bigIntOrZero(required)
	if requiredLovelace.Sign() < 0 {
		requiredLovelace.SetInt64(0)
	}
	var ret []AssetRequirement
	unitIdx := make(map[string]int, len(assets))
	for _, asset := range assets {
		if asset.Quantity == nil || asset.Quantity.Sign() <= 0 {
			continue
		}
		if asset.Unit == common.LovelaceUnit {
			requiredLovelace.Add(requiredLovelace, asset.Quantity)
			continue
		}
		if idx, ok := unitIdx[asset.Unit]; ok {
			ret[idx].Quantity.Add(ret[idx].Quantity, asset.Quantity)
			continue
		}
		unitIdx[asset.Unit] = len(ret)
		ret = append(
			ret,
			AssetRequirement{
				Unit:     asset.Unit,
				Quantity: new(big.Int).Set(asset.Quantity),
			},
		)
	}
	return requiredLovelace, ret
}

func bigIntOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
