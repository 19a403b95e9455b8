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
	"github.com/jessevdk/go-flags"
)

const (
	selectSubCmd           = "select"
	collateralSubCmd       = "collateral"
	minUtxoSubCmd          = "min-utxo"
	feeSubCmd              = "fee"
	convertSubCmd          = "convert"
	addressSubCmd          = "address"
	metadataValidateSubCmd = "metadata-validate"
	metadataParseSubCmd    = "metadata-parse"
)

const (
	strategyLargestFirst  = "largest-first"
	strategyRandomImprove = "random-improve"

	formatJson       = "json"
	formatBlockfrost = "blockfrost"
	formatCbor       = "cbor"
	formatUtxorpc    = "utxorpc"
)

type globalFlags struct {
	Debug bool `long:"debug" description:"Enable debug logging"`
}

type selectConfig struct {
	UtxoFile   string   `long:"utxos" short:"u" description:"JSON file with candidate UTxOs" required:"true"`
	UtxoFormat string   `long:"utxo-format" description:"UTxO file format" default:"blockfrost" choice:"blockfrost" choice:"utxorpc"`
	Amount     string   `long:"amount" short:"a" description:"Required amount in lovelace" required:"true"`
	Assets     []string `long:"asset" description:"Required asset as <unit>:<quantity> (may be repeated)"`
	Strategy   string   `long:"strategy" short:"s" description:"Selection strategy" default:"largest-first" choice:"largest-first" choice:"random-improve"`
	Seed       uint64   `long:"seed" description:"Random seed for random-improve (0 uses the global source)"`
}

type collateralConfig struct {
	UtxoFile           string `long:"utxos" short:"u" description:"JSON file with candidate UTxOs" required:"true"`
	UtxoFormat         string `long:"utxo-format" description:"UTxO file format" default:"blockfrost" choice:"blockfrost" choice:"utxorpc"`
	ProtocolParamsFile string `long:"protocol-params" short:"p" description:"JSON file with protocol parameters; enables fee-based selection"`
	Fee                uint64 `long:"fee" description:"Transaction fee in lovelace (defaults to the estimated fee)"`
	MinLovelace        string `long:"min-lovelace" description:"Minimum lovelace for a candidate when no protocol parameters are given" default:"5000000"`
}

type minUtxoConfig struct {
	AssetCount         uint64 `long:"assets" description:"Number of distinct assets in the output"`
	AssetNameBytes     uint64 `long:"asset-name-bytes" description:"Total length of the asset names in bytes"`
	PolicyCount        uint64 `long:"policies" description:"Number of distinct policies in the output"`
	InlineDatum        bool   `long:"inline-datum" description:"The output carries an inline datum"`
	DatumSize          uint64 `long:"datum-size" description:"Inline datum size in bytes"`
	UtxoFile           string `long:"utxos" short:"u" description:"Report the minimum for every UTxO in this JSON file instead"`
	UtxoFormat         string `long:"utxo-format" description:"UTxO file format" default:"blockfrost" choice:"blockfrost" choice:"utxorpc"`
	ProtocolParamsFile string `long:"protocol-params" short:"p" description:"JSON file with protocol parameters"`
}

type feeConfig struct {
	ProtocolParamsFile string `long:"protocol-params" short:"p" description:"JSON file with protocol parameters" required:"true"`
	TxSize             uint64 `long:"tx-size" description:"Transaction size in bytes (defaults to 300)"`
}

type convertConfig struct {
	Lovelace string `long:"lovelace" description:"Lovelace amount to convert to ADA"`
	Ada      string `long:"ada" description:"ADA amount to convert to lovelace"`
}

type addressConfig struct {
	Network string `long:"network" short:"n" description:"Require the address to belong to this network"`
	Args    struct {
		Address string `positional-arg-name:"address" description:"Bech32 or base58 address"`
	} `positional-args:"yes" required:"yes"`
}

type metadataValidateConfig struct {
	File   string `long:"file" short:"f" description:"File with the metadata" required:"true"`
	Format string `long:"format" description:"Metadata format" default:"json" choice:"json" choice:"blockfrost" choice:"cbor"`
}

type metadataParseConfig struct {
	File   string `long:"file" short:"f" description:"File with the metadata"`
	Format string `long:"format" description:"Metadata format" default:"json" choice:"json" choice:"blockfrost" choice:"cbor"`
	Datum  string `long:"datum" description:"CIP-68 reference datum as CBOR hex, instead of a metadata file"`
}

// parseCommandLine returns the active subcommand and its config
func parseCommandLine(args []string) (string, any, *globalFlags, error) {
	cfg := &globalFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	selectConf := &selectConfig{}
	_, _ = parser.AddCommand(selectSubCmd, "Select inputs for a payment",
		"Selects UTxOs covering a lovelace amount and optional assets", selectConf)

	collateralConf := &collateralConfig{}
	_, _ = parser.AddCommand(collateralSubCmd, "Select collateral inputs",
		"Selects ADA-only UTxOs suitable as collateral", collateralConf)

	minUtxoConf := &minUtxoConfig{}
	_, _ = parser.AddCommand(minUtxoSubCmd, "Compute the minimum UTxO value",
		"Computes the minimum lovelace for an output of the given size", minUtxoConf)

	feeConf := &feeConfig{}
	_, _ = parser.AddCommand(feeSubCmd, "Estimate a transaction fee",
		"Estimates the linear fee for a transaction size", feeConf)

	convertConf := &convertConfig{}
	_, _ = parser.AddCommand(convertSubCmd, "Convert between lovelace and ADA",
		"Converts a lovelace amount to ADA or an ADA amount to lovelace", convertConf)

	addressConf := &addressConfig{}
	_, _ = parser.AddCommand(addressSubCmd, "Inspect an address",
		"Decodes an address and reports its type and network", addressConf)

	metadataValidateConf := &metadataValidateConfig{}
	_, _ = parser.AddCommand(metadataValidateSubCmd, "Validate transaction metadata",
		"Reports every structural violation in a metadata label mapping", metadataValidateConf)

	metadataParseConf := &metadataParseConfig{}
	_, _ = parser.AddCommand(metadataParseSubCmd, "Parse NFT metadata",
		"Parses CIP-25 or CIP-68 metadata", metadataParseConf)

	if _, err := parser.ParseArgs(args); err != nil {
		return "", nil, cfg, err
	}

	var config any
	switch parser.Command.Active.Name {
	case selectSubCmd:
		config = selectConf
	case collateralSubCmd:
		config = collateralConf
	case minUtxoSubCmd:
		config = minUtxoConf
	case feeSubCmd:
		config = feeConf
	case convertSubCmd:
		config = convertConf
	case addressSubCmd:
		config = addressConf
	case metadataValidateSubCmd:
		config = metadataValidateConf
	case metadataParseSubCmd:
		config = metadataParseConf
	}
	return parser.Command.Active.Name, config, cfg, nil
}
