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
	"math"
	"math/big"

	"github.com/tidwall/gjson"
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
	"google.golang.org/protobuf/encoding/protojson"
)

// Plutus script language tags prepended to the script bytes when hashing
const (
	scriptTagPlutusV1 = 1
	scriptTagPlutusV2 = 2
	scriptTagPlutusV3 = 3
)

func (i TransactionInput) Utxorpc() *utxorpc.TxInput {
	return &utxorpc.TxInput{
		TxHash:      i.TxId.Bytes(),
		OutputIndex: i.OutputIndex,
	}
}

// Utxorpc converts the output to its UTxO RPC form. The reference script itself is not
// known, so only the datum and value are carried over
func (u Utxo) Utxorpc() (*utxorpc.TxOutput, error) {
	var addressBytes []byte
	if u.address != "" {
		addr, err := NewAddress(u.address)
		if err != nil {
			return nil, err
		}
		addressBytes = addr.Bytes()
	}
	lovelace := u.Lovelace()
	if !lovelace.IsUint64() {
		return nil, fmt.Errorf("lovelace amount out of range for %s", u.input)
	}
	var assets []*utxorpc.Multiasset
	policyIdx := make(map[PolicyId]int)
	for _, amount := range u.amounts {
		if amount.IsLovelace() {
			continue
		}
		policyId, assetName, err := ParseAssetUnit(amount.Unit)
		if err != nil {
			return nil, err
		}
		if !amount.Quantity.IsUint64() {
			return nil, fmt.Errorf(
				"asset quantity out of range for %s: %s",
				u.input,
				amount.Unit,
			)
		}
		idx, ok := policyIdx[policyId]
		if !ok {
			idx = len(assets)
			policyIdx[policyId] = idx
			assets = append(assets, &utxorpc.Multiasset{
				PolicyId: policyId.Bytes(),
			})
		}
		assets[idx].Assets = append(
			assets[idx].Assets,
			&utxorpc.Asset{
				Name:       assetName,
				OutputCoin: amount.Quantity.Uint64(),
			},
		)
	}
	var datum *utxorpc.Datum
	switch {
	case len(u.inlineDatum) > 0:
		datumHash := Blake2b256Hash(u.inlineDatum)
		if u.datumHash != nil {
			datumHash = *u.datumHash
		}
		datum = &utxorpc.Datum{
			Hash:         datumHash.Bytes(),
			OriginalCbor: u.InlineDatum(),
		}
	case u.datumHash != nil:
		datum = &utxorpc.Datum{
			Hash: u.datumHash.Bytes(),
		}
	}
	return &utxorpc.TxOutput{
		Address: addressBytes,
		Coin:    lovelace.Uint64(),
		Assets:  assets,
		Datum:   datum,
	}, nil
}

// NewUtxoFromUtxorpc builds a Utxo from a UTxO RPC output
func NewUtxoFromUtxorpc(
	txHash string,
	outputIndex uint32,
	output *utxorpc.TxOutput,
) (Utxo, error) {
	input, err := NewTransactionInput(txHash, outputIndex)
	if err != nil {
		return Utxo{}, err
	}
	if output == nil {
		return Utxo{}, fmt.Errorf("missing output for %s", input)
	}
	amounts := []Amount{NewLovelaceAmount(output.GetCoin())}
	for _, ma := range output.GetAssets() {
		if len(ma.GetPolicyId()) != Blake2b224Size {
			return Utxo{}, fmt.Errorf(
				"invalid policy ID length %d for %s",
				len(ma.GetPolicyId()),
				input,
			)
		}
		policyId := NewBlake2b224(ma.GetPolicyId())
		for _, asset := range ma.GetAssets() {
			amounts = append(amounts, Amount{
				Unit:     NewAssetUnit(policyId, asset.GetName()),
				Quantity: new(big.Int).SetUint64(asset.GetOutputCoin()),
			})
		}
	}
	var options []UtxoOptionFunc
	if len(output.GetAddress()) > 0 {
		addr, err := NewAddressFromBytes(output.GetAddress())
		if err != nil {
			return Utxo{}, fmt.Errorf("invalid address for %s: %w", input, err)
		}
		options = append(options, WithAddress(addr.String()))
	}
	if datum := output.GetDatum(); datum != nil {
		if len(datum.GetHash()) == Blake2b256Size {
			options = append(options, WithDatumHash(NewBlake2b256(datum.GetHash())))
		}
		if len(datum.GetOriginalCbor()) > 0 {
			options = append(options, WithInlineDatum(datum.GetOriginalCbor()))
		}
	}
	if script := output.GetScript(); script != nil {
		scriptHash, err := utxorpcScriptHash(script)
		if err != nil {
			return Utxo{}, fmt.Errorf("reference script for %s: %w", input, err)
		}
		options = append(options, WithReferenceScriptHash(scriptHash))
	}
	return NewUtxo(input, amounts, options...)
}

// utxorpcScriptHash hashes a Plutus script with its language tag. Native scripts have
// no CBOR in this form and are recorded with an empty hash
func utxorpcScriptHash(script *utxorpc.Script) (Blake2b224, error) {
	var tag byte
	var scriptBytes []byte
	switch s := script.GetScript().(type) {
	case *utxorpc.Script_Native:
		return Blake2b224{}, nil
	case *utxorpc.Script_PlutusV1:
		tag, scriptBytes = scriptTagPlutusV1, s.PlutusV1
	case *utxorpc.Script_PlutusV2:
		tag, scriptBytes = scriptTagPlutusV2, s.PlutusV2
	case *utxorpc.Script_PlutusV3:
		tag, scriptBytes = scriptTagPlutusV3, s.PlutusV3
	default:
		return Blake2b224{}, errors.New("unsupported script type")
	}
	return Blake2b224Hash(append([]byte{tag}, scriptBytes...)), nil
}

// DecodeUtxorpcUtxosJson decodes a JSON array of {"txHash", "outputIndex", "output"}
// entries, where each output is a UTxO RPC TxOutput in its protobuf JSON form
func DecodeUtxorpcUtxosJson(data []byte) ([]Utxo, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid UTxO RPC JSON")
	}
	entries := gjson.ParseBytes(data)
	if !entries.IsArray() {
		return nil, errors.New("UTxO RPC JSON is not an array")
	}
	ret := make([]Utxo, 0, len(entries.Array()))
	var err error
	entries.ForEach(func(_, entry gjson.Result) bool {
		txHash := entry.Get("txHash").String()
		outputIndex := entry.Get("outputIndex").Uint()
		if outputIndex > math.MaxUint32 {
			err = fmt.Errorf("UTxO %s#%d: output index out of range", txHash, outputIndex)
			return false
		}
		outputJson := entry.Get("output")
		if !outputJson.IsObject() {
			err = fmt.Errorf("UTxO %s#%d has no output", txHash, outputIndex)
			return false
		}
		output := &utxorpc.TxOutput{}
		if err = protojson.Unmarshal([]byte(outputJson.Raw), output); err != nil {
			err = fmt.Errorf("UTxO %s#%d: %w", txHash, outputIndex, err)
			return false
		}
		var u Utxo
		u, err = NewUtxoFromUtxorpc(txHash, uint32(outputIndex), output)
		if err != nil {
			return false
		}
		ret = append(ret, u)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Utxorpc converts the parameters to their UTxO RPC form
func (p ProtocolParameters) Utxorpc() *utxorpc.PParams {
	return &utxorpc.PParams{
		CoinsPerUtxoByte:     p.CoinsPerUtxoByte,
		MaxTxSize:            p.MaxTxSize,
		MinFeeCoefficient:    p.MinFeeA,
		MinFeeConstant:       p.MinFeeB,
		CollateralPercentage: p.CollateralPercent,
		MaxCollateralInputs:  p.MaxCollateralInputs,
	}
}

// ProtocolParametersFromUtxorpc extracts protocol parameters from their UTxO RPC form
func ProtocolParametersFromUtxorpc(pp *utxorpc.PParams) ProtocolParameters {
	return ProtocolParameters{
		MinFeeA:             pp.GetMinFeeCoefficient(),
		MinFeeB:             pp.GetMinFeeConstant(),
		CoinsPerUtxoByte:    pp.GetCoinsPerUtxoByte(),
		MaxTxSize:           pp.GetMaxTxSize(),
		CollateralPercent:   pp.GetCollateralPercentage(),
		MaxCollateralInputs: pp.GetMaxCollateralInputs(),
	}
}
