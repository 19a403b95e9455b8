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

// Package common provides the ledger value types shared by coin selection and
// metadata handling.
//
// # Key Files by Purpose
//
// Values:
//   - amount.go: lovelace/ADA conversion and parsing
//   - asset.go: native asset units and fingerprints
//   - utxo.go: TransactionInput, Amount and the immutable Utxo type
//
// Sizing and fees:
//   - minutxo.go: minimum lovelace for an output of a given size
//   - pparams.go: ProtocolParameters, fee estimate and collateral amount
//   - utxorpc.go: conversions to and from UTxO RPC types
//
// Identity:
//   - common.go: Blake2b hash types, pool IDs and format checks
//   - address.go: Shelley and Byron address decoding
//   - network.go: known networks
//
// # Common Patterns
//
// A Utxo is only built through NewUtxo, which guarantees exactly one lovelace
// amount and non-negative quantities. Accessors return copies, so a Utxo can be
// shared between goroutines.
//
// # Testing
//
// Use the UTxO builders in internal/test/ledger to construct fixtures.
package common
