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
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// TransactionInput identifies a transaction output by transaction ID and output index
type TransactionInput struct {
	TxId        Blake2b256
	OutputIndex uint32
}

func NewTransactionInput(txHash string, outputIndex uint32) (TransactionInput, error) {
	txId, err := NewBlake2b256FromHex(txHash)
	if err != nil {
		return TransactionInput{}, fmt.Errorf("invalid transaction hash %q: %w", txHash, err)
	}
	return TransactionInput{TxId: txId, OutputIndex: outputIndex}, nil
}

func (i TransactionInput) Id() Blake2b256 {
	return i.TxId
}

func (i TransactionInput) Index() uint32 {
	return i.OutputIndex
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId, i.OutputIndex)
}

func (i TransactionInput) MarshalJSON() ([]byte, error) {
	return []byte("\"" + i.String() + "\""), nil
}

// Amount is a quantity of a single unit, either lovelace or a native asset
type Amount struct {
	Unit     string
	Quantity *big.Int
}

func NewLovelaceAmount(quantity uint64) Amount {
	return Amount{
		Unit:     LovelaceUnit,
		Quantity: new(big.Int).SetUint64(quantity),
	}
}

func (a Amount) IsLovelace() bool {
	return a.Unit == LovelaceUnit
}

func (a Amount) copy() Amount {
	return Amount{Unit: a.Unit, Quantity: bigIntOrZero(a.Quantity)}
}

type amountJson struct {
	Unit     string          `json:"unit"`
	Quantity json.RawMessage `json:"quantity"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	tmpQuantity := "0"
	if a.Quantity != nil {
		tmpQuantity = a.Quantity.String()
	}
	return json.Marshal(
		map[string]string{
			"unit":     a.Unit,
			"quantity": tmpQuantity,
		},
	)
}

// UnmarshalJSON accepts the quantity as either a JSON string or a JSON number
func (a *Amount) UnmarshalJSON(data []byte) error {
	var tmp amountJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	a.Unit = tmp.Unit
	rawQuantity := strings.Trim(string(bytes.TrimSpace(tmp.Quantity)), "\"")
	if rawQuantity == "" || rawQuantity == "null" {
		a.Quantity = new(big.Int)
		return nil
	}
	quantity, err := ParseLovelace(rawQuantity)
	if err != nil {
		return fmt.Errorf("unit %s: %w", tmp.Unit, err)
	}
	a.Quantity = quantity
	return nil
}

// Utxo is an unspent transaction output. It always carries exactly one lovelace amount
// and is not modified after construction
type Utxo struct {
	input               TransactionInput
	address             string
	amounts             []Amount
	lovelace            *big.Int
	datumHash           *Blake2b256
	inlineDatum         []byte
	referenceScriptHash *Blake2b224
}

// UtxoOptionFunc is a function that sets optional fields on a Utxo during construction
type UtxoOptionFunc func(*Utxo)

// WithAddress sets the address holding the output
func WithAddress(address string) UtxoOptionFunc {
	return func(u *Utxo) {
		u.address = address
	}
}

// WithDatumHash sets the datum hash of the output
func WithDatumHash(datumHash Blake2b256) UtxoOptionFunc {
	return func(u *Utxo) {
		u.datumHash = &datumHash
	}
}

// WithInlineDatum sets the raw CBOR of an inline datum on the output
func WithInlineDatum(datumCbor []byte) UtxoOptionFunc {
	return func(u *Utxo) {
		u.inlineDatum = bytes.Clone(datumCbor)
	}
}

// WithReferenceScriptHash sets the hash of a reference script carried by the output
func WithReferenceScriptHash(scriptHash Blake2b224) UtxoOptionFunc {
	return func(u *Utxo) {
		u.referenceScriptHash = &scriptHash
	}
}

// NewUtxo validates the provided amounts and returns a Utxo. A missing lovelace amount is
// treated as zero lovelace. A second lovelace amount, a repeated asset unit, an empty unit
// or a negative quantity is rejected
func NewUtxo(
	input TransactionInput,
	amounts []Amount,
	options ...UtxoOptionFunc,
) (Utxo, error) {
	u := Utxo{
		input:   input,
		amounts: make([]Amount, 0, len(amounts)+1),
	}
	seenUnits := make(map[string]struct{}, len(amounts))
	for _, amount := range amounts {
		if amount.Unit == "" {
			return Utxo{}, InvalidAmountError{
				Input:  input,
				Reason: "empty unit",
			}
		}
		if _, ok := seenUnits[amount.Unit]; ok {
			return Utxo{}, InvalidAmountError{
				Input:  input,
				Unit:   amount.Unit,
				Reason: "duplicate unit",
			}
		}
		seenUnits[amount.Unit] = struct{}{}
		tmpAmount := amount.copy()
		if tmpAmount.Quantity.Sign() < 0 {
			return Utxo{}, InvalidAmountError{
				Input:  input,
				Unit:   amount.Unit,
				Reason: "negative quantity",
			}
		}
		if tmpAmount.IsLovelace() {
			u.lovelace = tmpAmount.Quantity
		}
		u.amounts = append(u.amounts, tmpAmount)
	}
	if u.lovelace == nil {
		u.lovelace = new(big.Int)
		u.amounts = append(
			[]Amount{{Unit: LovelaceUnit, Quantity: u.lovelace}},
			u.amounts...,
		)
	}
	for _, option := range options {
		option(&u)
	}
	return u, nil
}

func (u Utxo) Input() TransactionInput {
	return u.input
}

func (u Utxo) Address() string {
	return u.address
}

// Amounts returns a copy of all amounts on the output in their original order
func (u Utxo) Amounts() []Amount {
	ret := make([]Amount, 0, len(u.amounts))
	for _, amount := range u.amounts {
		ret = append(ret, amount.copy())
	}
	return ret
}

// Assets returns a copy of the native asset amounts on the output
func (u Utxo) Assets() []Amount {
	ret := make([]Amount, 0, len(u.amounts))
	for _, amount := range u.amounts {
		if amount.IsLovelace() {
			continue
		}
		ret = append(ret, amount.copy())
	}
	return ret
}

func (u Utxo) HasAssets() bool {
	return len(u.amounts) > 1
}

// Lovelace returns a copy of the lovelace quantity on the output
func (u Utxo) Lovelace() *big.Int {
	return bigIntOrZero(u.lovelace)
}

// Quantity returns a copy of the quantity held for the given unit, or zero
func (u Utxo) Quantity(unit string) *big.Int {
	for _, amount := range u.amounts {
		if amount.Unit == unit {
			return bigIntOrZero(amount.Quantity)
		}
	}
	return new(big.Int)
}

func (u Utxo) DatumHash() *Blake2b256 {
	if u.datumHash == nil {
		return nil
	}
	tmp := *u.datumHash
	return &tmp
}

// InlineDatum returns a copy of the raw CBOR of the inline datum, if any
func (u Utxo) InlineDatum() []byte {
	return bytes.Clone(u.inlineDatum)
}

func (u Utxo) ReferenceScriptHash() *Blake2b224 {
	if u.referenceScriptHash == nil {
		return nil
	}
	tmp := *u.referenceScriptHash
	return &tmp
}

// HasDatum reports whether the output carries a datum hash or an inline datum
func (u Utxo) HasDatum() bool {
	return u.datumHash != nil || len(u.inlineDatum) > 0
}

// utxoJson follows the shape of address UTxOs returned by the Blockfrost API. The
// camelCase variants are accepted for inputs produced by other tooling
type utxoJson struct {
	TxHash              string   `json:"tx_hash"`
	TxHashAlt           string   `json:"txHash,omitempty"`
	OutputIndex         *uint32  `json:"output_index"`
	OutputIndexAlt      *uint32  `json:"outputIndex,omitempty"`
	Address             string   `json:"address,omitempty"`
	Amount              []Amount `json:"amount"`
	DataHash            *string  `json:"data_hash"`
	InlineDatum         *string  `json:"inline_datum"`
	ReferenceScriptHash *string  `json:"reference_script_hash"`
}

func (u Utxo) MarshalJSON() ([]byte, error) {
	index := u.input.OutputIndex
	tmpObj := utxoJson{
		TxHash:      u.input.TxId.String(),
		OutputIndex: &index,
		Address:     u.address,
		Amount:      u.Amounts(),
	}
	if u.datumHash != nil {
		tmp := u.datumHash.String()
		tmpObj.DataHash = &tmp
	}
	if len(u.inlineDatum) > 0 {
		tmp := hex.EncodeToString(u.inlineDatum)
		tmpObj.InlineDatum = &tmp
	}
	if u.referenceScriptHash != nil {
		tmp := u.referenceScriptHash.String()
		tmpObj.ReferenceScriptHash = &tmp
	}
	return json.Marshal(&tmpObj)
}

func (u *Utxo) UnmarshalJSON(data []byte) error {
	var tmp utxoJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	txHash := tmp.TxHash
	if txHash == "" {
		txHash = tmp.TxHashAlt
	}
	var outputIndex uint32
	switch {
	case tmp.OutputIndex != nil:
		outputIndex = *tmp.OutputIndex
	case tmp.OutputIndexAlt != nil:
		outputIndex = *tmp.OutputIndexAlt
	}
	input, err := NewTransactionInput(txHash, outputIndex)
	if err != nil {
		return err
	}
	options := []UtxoOptionFunc{WithAddress(tmp.Address)}
	if tmp.DataHash != nil && *tmp.DataHash != "" {
		datumHash, err := NewBlake2b256FromHex(*tmp.DataHash)
		if err != nil {
			return fmt.Errorf("invalid datum hash for %s: %w", input, err)
		}
		options = append(options, WithDatumHash(datumHash))
	}
	if tmp.InlineDatum != nil && *tmp.InlineDatum != "" {
		datumCbor, err := hex.DecodeString(*tmp.InlineDatum)
		if err != nil {
			return fmt.Errorf("invalid inline datum for %s: %w", input, err)
		}
		options = append(options, WithInlineDatum(datumCbor))
	}
	if tmp.ReferenceScriptHash != nil && *tmp.ReferenceScriptHash != "" {
		scriptHash, err := NewBlake2b224FromHex(*tmp.ReferenceScriptHash)
		if err != nil {
			return fmt.Errorf("invalid reference script hash for %s: %w", input, err)
		}
		options = append(options, WithReferenceScriptHash(scriptHash))
	}
	tmpUtxo, err := NewUtxo(input, tmp.Amount, options...)
	if err != nil {
		return err
	}
	*u = tmpUtxo
	return nil
}

// DecodeUtxosJson decodes a JSON array of UTxOs as returned by the Blockfrost
// /addresses/{address}/utxos endpoint
func DecodeUtxosJson(data []byte) ([]Utxo, error) {
	var ret []Utxo
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
