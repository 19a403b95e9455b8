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

// Package metadata models transaction metadata as an ordered tree of nodes and provides
// structural validation and the CIP-25 and CIP-68 NFT metadata conventions.
//
// # Key Files by Purpose
//
//   - node.go: the Node variants (Int, Text, Bytes, Float, List, Map, Opaque) and JSON output
//   - decode_json.go: trees from JSON documents and Blockfrost metadata responses
//   - decode_cbor.go: trees from CBOR metadatums and auxiliary data
//   - encode_cbor.go: CBOR metadatums and label sets from trees
//   - plutus.go: trees from Plutus data
//   - validate.go: structural limits (labels, 64-byte strings, integer range)
//   - cip25.go, cip68.go, parse.go: NFT metadata conventions
package metadata
