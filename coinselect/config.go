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
	"log/slog"
	"math/rand/v2"
)

// Config contains configuration options for the coin selectors
type Config struct {
	Logger *slog.Logger
	// Rand is the random source used to shuffle candidates. A nil Rand uses the global
	// generator, which is safe for concurrent use. A provided Rand must not be shared
	// between goroutines
	Rand *rand.Rand
	// ImproveFactor is the multiple of the required lovelace that Random-Improve aims for
	ImproveFactor uint64
	// ImproveThreshold is the percentage of the improvement target at which the
	// Largest-First baseline is accepted as is
	ImproveThreshold uint64
}

// SelectorOptionFunc is a function that modifies a Config
type SelectorOptionFunc func(*Config)

const (
	DefaultImproveFactor    = 2
	DefaultImproveThreshold = 80
)

// NewConfig creates a new Config with default values, applying any provided option functions
func NewConfig(options ...SelectorOptionFunc) Config {
	c := Config{
		ImproveFactor:    DefaultImproveFactor,
		ImproveThreshold: DefaultImproveThreshold,
	}
	// Apply provided options functions
	for _, option := range options {
		option(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// WithLogger sets the logger used for selection debug output
func WithLogger(logger *slog.Logger) SelectorOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithRand sets the random source used by Random-Improve
func WithRand(r *rand.Rand) SelectorOptionFunc {
	return func(c *Config) {
		c.Rand = r
	}
}

// WithImproveFactor sets the multiple of the required lovelace targeted by Random-Improve
func WithImproveFactor(factor uint64) SelectorOptionFunc {
	return func(c *Config) {
		c.ImproveFactor = factor
	}
}

// WithImproveThreshold sets the percentage of the improvement target at which the
// baseline selection is kept
func WithImproveThreshold(percent uint64) SelectorOptionFunc {
	return func(c *Config) {
		c.ImproveThreshold = percent
	}
}

func (c Config) shuffle(n int, swap func(i, j int)) {
	if c.Rand != nil {
		c.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
