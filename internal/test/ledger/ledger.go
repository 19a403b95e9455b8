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

package test_ledger

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/blinklabs-io/txkit/ledger/common"
)

// TestAddress is a preview network enterprise address used by fixtures
const TestAddress = "addr_test1vpmwd5tk8quxnzxq46h8vztf00xtphrd7zd0al5ur5jsylg3r9v4l"

// TxHash returns a deterministic transaction hash for a fixture index
func TxHash(idx uint32) string {
	return fmt.Sprintf("%064x", uint64(idx)+1)
}

// Input returns a deterministic transaction input for a fixture index
func Input(idx uint32) common.TransactionInput {
	ret, err := common.NewTransactionInput(TxHash(idx), idx)
	if err != nil {
		panic(fmt.Sprintf("unexpected error building input: %s", err))
	}
	return ret
}

// PolicyId returns a policy ID made of a repeated byte
func PolicyId(b byte) string {
	return strings.Repeat(hex.EncodeToString([]byte{b}), common.Blake2b224Size)
}

// AssetUnit returns the unit for an asset under the policy from PolicyId
func AssetUnit(policyByte byte, assetName string) string {
	return PolicyId(policyByte) + hex.EncodeToString([]byte(assetName))
}

// Asset returns an asset amount
func Asset(unit string, quantity int64) common.Amount {
	return common.Amount{
		Unit:     unit,
		Quantity: big.NewInt(quantity),
	}
}

// NewUtxo builds a Utxo for the fixture index with the given lovelace and asset amounts.
// It panics on invalid input, which is only ever a bug in the test
func NewUtxo(
	idx uint32,
	lovelace uint64,
	assets []common.Amount,
	opts ...common.UtxoOptionFunc,
) common.Utxo {
	amounts := append(
		[]common.Amount{common.NewLovelaceAmount(lovelace)},
		assets...,
	)
	opts = append([]common.UtxoOptionFunc{common.WithAddress(TestAddress)}, opts...)
	ret, err := common.NewUtxo(Input(idx), amounts, opts...)
	if err != nil {
		panic(fmt.Sprintf("unexpected error building utxo: %s", err))
	}
	return ret
}

// NewAdaUtxos builds one ADA-only Utxo per lovelace value, indexed from 0
func NewAdaUtxos(lovelace ...uint64) []common.Utxo {
	ret := make([]common.Utxo, 0, len(lovelace))
	for idx, amount := range lovelace {
		ret = append(ret, NewUtxo(uint32(idx), amount, nil)) //nolint:gosec
	}
	return ret
}

// NewUtxoLookup returns a lookup function over the provided UTxOs, matching on the
// transaction input
func NewUtxoLookup(utxos []common.Utxo) func(common.TransactionInput) (common.Utxo, error) {
	return func(id common.TransactionInput) (common.Utxo, error) {
		for _, u := range utxos {
			if id.Index() == u.Input().Index() &&
				bytes.Equal(id.Id().Bytes(), u.Input().Id().Bytes()) {
				return u, nil
			}
		}
		return common.Utxo{}, errors.New("not found")
	}
}
