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

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/blinklabs-io/txkit/coinselect"
	"github.com/blinklabs-io/txkit/ledger/common"
	"github.com/blinklabs-io/txkit/metadata"
)

func writeJson(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadUtxos(path string, format string) ([]common.Utxo, error) {
	tmpData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decode := common.DecodeUtxosJson
	if format == formatUtxorpc {
		decode = common.DecodeUtxorpcUtxosJson
	}
	utxos, err := decode(tmpData)
	if err != nil {
		return nil, fmt.Errorf("decode UTxOs from %s: %w", path, err)
	}
	return utxos, nil
}

func loadProtocolParams(path string) (common.ProtocolParameters, error) {
	tmpData, err := os.ReadFile(path)
	if err != nil {
		return common.ProtocolParameters{}, err
	}
	pp, err := common.ProtocolParametersFromJson(tmpData)
	if err != nil {
		return common.ProtocolParameters{}, fmt.Errorf(
			"decode protocol parameters from %s: %w",
			path,
			err,
		)
	}
	return pp, nil
}

func loadMetadata(path string, format string) (metadata.Map, error) {
	tmpData, err := os.ReadFile(path)
	if err != nil {
		return metadata.Map{}, err
	}
	switch format {
	case formatBlockfrost:
		return metadata.FromBlockfrostTxMetadata(tmpData)
	case formatCbor:
		cborData, err := hex.DecodeString(strings.TrimSpace(string(tmpData)))
		if err != nil {
			return metadata.Map{}, fmt.Errorf("decode CBOR hex: %w", err)
		}
		return metadata.DecodeMetadataSet(cborData)
	default:
		return metadata.MapFromJSON(tmpData)
	}
}

// parseAssetRequirement parses <unit>:<quantity>
func parseAssetRequirement(value string) (coinselect.AssetRequirement, error) {
	unit, quantityStr, ok := strings.Cut(value, ":")
	if !ok || unit == "" {
		return coinselect.AssetRequirement{}, fmt.Errorf(
			"invalid asset requirement %q: expected <unit>:<quantity>",
			value,
		)
	}
	quantity, ok := new(big.Int).SetString(quantityStr, 10)
	if !ok || quantity.Sign() < 0 {
		return coinselect.AssetRequirement{}, fmt.Errorf(
			"invalid quantity in asset requirement %q",
			value,
		)
	}
	return coinselect.AssetRequirement{Unit: unit, Quantity: quantity}, nil
}

func runSelect(cfg *selectConfig, logger *slog.Logger, w io.Writer) error {
	utxos, err := loadUtxos(cfg.UtxoFile, cfg.UtxoFormat)
	if err != nil {
		return err
	}
	amount, err := common.ParseLovelace(cfg.Amount)
	if err != nil {
		return err
	}
	requirements := make([]coinselect.AssetRequirement, 0, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		requirement, err := parseAssetRequirement(asset)
		if err != nil {
			return err
		}
		requirements = append(requirements, requirement)
	}
	options := []coinselect.SelectorOptionFunc{coinselect.WithLogger(logger)}
	var selector coinselect.Selector
	switch cfg.Strategy {
	case strategyRandomImprove:
		if cfg.Seed != 0 {
			options = append(
				options,
				coinselect.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))), //nolint:gosec
			)
		}
		selector = coinselect.NewRandomImprove(options...)
	default:
		selector = coinselect.NewLargestFirst(options...)
	}
	result := selector.Select(utxos, amount, requirements)
	if err := result.Err(); err != nil {
		logger.Warn("selection is short of the requirement", "error", err)
	}
	return writeJson(w, result)
}

type collateralOutput struct {
	Required *string       `json:"required,omitempty"`
	Selected []common.Utxo `json:"selected"`
}

func runCollateral(cfg *collateralConfig, w io.Writer) error {
	utxos, err := loadUtxos(cfg.UtxoFile, cfg.UtxoFormat)
	if err != nil {
		return err
	}
	if cfg.ProtocolParamsFile == "" {
		minLovelace, err := common.ParseLovelace(cfg.MinLovelace)
		if err != nil {
			return err
		}
		return writeJson(
			w,
			collateralOutput{Selected: coinselect.SelectCollateral(utxos, minLovelace)},
		)
	}
	pp, err := loadProtocolParams(cfg.ProtocolParamsFile)
	if err != nil {
		return err
	}
	fee := cfg.Fee
	if fee == 0 {
		fee = pp.EstimateFee(0)
	}
	selected, err := coinselect.SelectCollateralFor(utxos, pp, fee)
	if err != nil {
		return err
	}
	required := pp.RequiredCollateral(fee).String()
	return writeJson(w, collateralOutput{Required: &required, Selected: selected})
}

type minUtxoEntry struct {
	Input    *common.TransactionInput `json:"input,omitempty"`
	Minimum  string                   `json:"minimum"`
	Lovelace string                   `json:"lovelace,omitempty"`
	Valid    *bool                    `json:"valid,omitempty"`
}

func runMinUtxo(cfg *minUtxoConfig, w io.Writer) error {
	minimum := common.MinimumUtxoValue
	if cfg.ProtocolParamsFile != "" {
		pp, err := loadProtocolParams(cfg.ProtocolParamsFile)
		if err != nil {
			return err
		}
		minimum = pp.MinimumUtxoValue
	}
	if cfg.UtxoFile == "" {
		size := common.OutputSize{
			AssetCount:     cfg.AssetCount,
			AssetNameBytes: cfg.AssetNameBytes,
			PolicyCount:    cfg.PolicyCount,
			InlineDatum:    cfg.InlineDatum,
			DatumSize:      cfg.DatumSize,
		}
		return writeJson(w, minUtxoEntry{Minimum: minimum(size).String()})
	}
	utxos, err := loadUtxos(cfg.UtxoFile, cfg.UtxoFormat)
	if err != nil {
		return err
	}
	ret := make([]minUtxoEntry, 0, len(utxos))
	for _, u := range utxos {
		input := u.Input()
		value := minimum(common.OutputSizeFromUtxo(u))
		valid := u.Lovelace().Cmp(value) >= 0
		ret = append(ret, minUtxoEntry{
			Input:    &input,
			Minimum:  value.String(),
			Lovelace: u.Lovelace().String(),
			Valid:    &valid,
		})
	}
	return writeJson(w, ret)
}

type feeOutput struct {
	TxSize uint64 `json:"txSize"`
	Fee    string `json:"fee"`
	Ada    string `json:"ada"`
}

func runFee(cfg *feeConfig, w io.Writer) error {
	pp, err := loadProtocolParams(cfg.ProtocolParamsFile)
	if err != nil {
		return err
	}
	txSize := cfg.TxSize
	if txSize == 0 {
		txSize = common.DefaultEstimatedTxSize
	}
	fee := new(big.Int).SetUint64(pp.EstimateFee(txSize))
	return writeJson(w, feeOutput{
		TxSize: txSize,
		Fee:    fee.String(),
		Ada:    common.FormatAda(fee),
	})
}

type convertOutput struct {
	Lovelace string  `json:"lovelace"`
	Ada      string  `json:"ada"`
	AdaFloat float64 `json:"adaValue"`
}

func runConvert(cfg *convertConfig, w io.Writer) error {
	var lovelace *big.Int
	var err error
	switch {
	case cfg.Lovelace != "" && cfg.Ada != "":
		return errors.New("specify only one of --lovelace and --ada")
	case cfg.Lovelace != "":
		lovelace, err = common.ParseLovelace(cfg.Lovelace)
	case cfg.Ada != "":
		lovelace, err = common.ParseAda(cfg.Ada)
	default:
		return errors.New("one of --lovelace or --ada is required")
	}
	if err != nil {
		return err
	}
	return writeJson(w, convertOutput{
		Lovelace: lovelace.String(),
		Ada:      common.FormatAda(lovelace),
		AdaFloat: common.LovelaceToAda(lovelace),
	})
}

func runAddress(cfg *addressConfig, w io.Writer) error {
	info, err := common.InspectAddress(cfg.Args.Address)
	if err != nil {
		return err
	}
	if cfg.Network != "" {
		network := common.NetworkByName(cfg.Network)
		if network == common.NetworkInvalid {
			return fmt.Errorf("unknown network %q", cfg.Network)
		}
		if !network.Accepts(info) {
			return fmt.Errorf(
				"address %s does not belong to network %s",
				cfg.Args.Address,
				network.Name,
			)
		}
	}
	return writeJson(w, info)
}

func runMetadataValidate(cfg *metadataValidateConfig, w io.Writer) error {
	root, err := loadMetadata(cfg.File, cfg.Format)
	if err != nil {
		return err
	}
	return writeJson(w, metadata.Validate(root))
}

func runMetadataParse(cfg *metadataParseConfig, w io.Writer) error {
	if cfg.Datum != "" {
		cborData, err := hex.DecodeString(strings.TrimSpace(cfg.Datum))
		if err != nil {
			return fmt.Errorf("decode datum hex: %w", err)
		}
		parsed, err := metadata.DecodeCIP68Datum(cborData)
		if err != nil {
			return err
		}
		return writeJson(w, parsed)
	}
	if cfg.File == "" {
		return errors.New("one of --file or --datum is required")
	}
	root, err := loadMetadata(cfg.File, cfg.Format)
	if err != nil {
		return err
	}
	parsed, err := metadata.Parse(root)
	if err != nil {
		return err
	}
	return writeJson(w, parsed)
}
