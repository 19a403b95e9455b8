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

// Package coinselect chooses transaction inputs from a set of UTxOs.
//
// Two strategies implement Selector: LargestFirst and RandomImprove. Both return a
// Result even when the candidates fall short; Result.Err reports that case as an
// InsufficientFundsError. SelectCollateral and SelectCollateralFor pick ADA-only
// inputs suitable as collateral.
package coinselect
