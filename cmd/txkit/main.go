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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	subCmd, config, globals, err := parseCommandLine(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, globals.Debug)
	slog.SetDefault(logger)

	if err := run(subCmd, config, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(subCmd string, config any, logger *slog.Logger, w io.Writer) error {
	logger.Debug("running command", "command", subCmd)
	switch subCmd {
	case selectSubCmd:
		return runSelect(config.(*selectConfig), logger, w)
	case collateralSubCmd:
		return runCollateral(config.(*collateralConfig), w)
	case minUtxoSubCmd:
		return runMinUtxo(config.(*minUtxoConfig), w)
	case feeSubCmd:
		return runFee(config.(*feeConfig), w)
	case convertSubCmd:
		return runConvert(config.(*convertConfig), w)
	case addressSubCmd:
		return runAddress(config.(*addressConfig), w)
	case metadataValidateSubCmd:
		return runMetadataValidate(config.(*metadataValidateConfig), w)
	case metadataParseSubCmd:
		return runMetadataParse(config.(*metadataParseConfig), w)
	}
	return fmt.Errorf("unknown sub-command %q", subCmd)
}
