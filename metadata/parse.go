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

package metadata

import (
	"encoding/json"
	"errors"
)

var ErrConventionNotFound = errors.New("no CIP-25 or CIP-68 metadata found")

// Parsed holds the result of Parse. Exactly one of CIP25 and CIP68 is set
type Parsed struct {
	Standard string
	CIP25    *CIP25Metadata
	CIP68    *CIP68Metadata
}

// Parse detects the metadata convention of a label mapping. Label 721 is parsed as
// CIP-25, otherwise label 100 or 500 as CIP-68
func Parse(root Map) (Parsed, error) {
	if cip25, ok := ParseCIP25(root); ok {
		return Parsed{Standard: StandardCIP25, CIP25: &cip25}, nil
	}
	for _, label := range []string{LabelCIP68Reference, LabelCIP68UserToken} {
		if value, ok := root.Get(label); ok {
			cip68 := ParseCIP68(value)
			return Parsed{Standard: StandardCIP68, CIP68: &cip68}, nil
		}
	}
	return Parsed{}, ErrConventionNotFound
}

func (p Parsed) MarshalJSON() ([]byte, error) {
	switch {
	case p.CIP25 != nil:
		return p.CIP25.MarshalJSON()
	case p.CIP68 != nil:
		return p.CIP68.MarshalJSON()
	}
	return json.Marshal(nil)
}
