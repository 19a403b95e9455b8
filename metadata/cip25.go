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
	"bytes"
	"strings"

	"github.com/blinklabs-io/txkit/ledger/common"
)

const (
	LabelCIP25 = "721"

	StandardCIP25 = "CIP-25"

	DefaultIPFSGateway = "https://ipfs.io/ipfs/"

	cip25VersionKey = "version"
	ipfsScheme      = "ipfs://"
)

// CIP25Metadata is the flattened content of label 721
type CIP25Metadata struct {
	Version Node
	Assets  []CIP25Asset
}

// CIP25Asset is the metadata of a single asset under label 721
type CIP25Asset struct {
	PolicyId  string
	AssetName string
	Fields    []Pair
	nameBytes []byte
}

// Compliance summarizes which of the CIP-25 required and recommended fields are present
type Compliance struct {
	HasName      bool `json:"hasName"`
	HasImage     bool `json:"hasImage"`
	HasMediaType bool `json:"hasMediaType"`
	Compliant    bool `json:"cip25Compliant"`
}

// ParseCIP25 flattens the policy/asset structure under label 721. The boolean result is
// false when the label is absent
func ParseCIP25(root Map) (CIP25Metadata, bool) {
	ret := CIP25Metadata{Assets: []CIP25Asset{}}
	labelValue, ok := root.Get(LabelCIP25)
	if !ok {
		return ret, false
	}
	policies, ok := labelValue.(Map)
	if !ok {
		return ret, true
	}
	for _, policyPair := range policies.Pairs {
		policyId := KeyString(policyPair.Key)
		if policyId == cip25VersionKey {
			ret.Version = policyPair.Value
			continue
		}
		assets, ok := policyPair.Value.(Map)
		if !ok {
			continue
		}
		for _, assetPair := range assets.Pairs {
			asset := CIP25Asset{
				PolicyId:  policyId,
				AssetName: KeyString(assetPair.Key),
				Fields:    []Pair{},
				nameBytes: keyBytes(assetPair.Key),
			}
			if fields, ok := assetPair.Value.(Map); ok {
				asset.Fields = fields.Pairs
			}
			ret.Assets = append(ret.Assets, asset)
		}
	}
	return ret, true
}

// keyBytes returns the raw asset name for a key: the UTF-8 text of a text key or the
// content of a byte string key
func keyBytes(key Node) []byte {
	switch k := key.(type) {
	case Text:
		return []byte(k.Value)
	case Bytes:
		return bytes.Clone(k.Value)
	}
	return []byte(KeyString(key))
}

// Field returns the value of a named field
func (a CIP25Asset) Field(name string) (Node, bool) {
	return Map{Pairs: a.Fields}.Get(name)
}

func (a CIP25Asset) Name() string {
	return a.joinedText("name")
}

// Image returns the image URI, joining it when it is split into chunks of at most 64 bytes
func (a CIP25Asset) Image() string {
	return a.joinedText("image")
}

func (a CIP25Asset) MediaType() string {
	return a.joinedText("mediaType")
}

func (a CIP25Asset) Description() string {
	return a.joinedText("description")
}

// ImageURL returns the image URI with the ipfs:// scheme replaced by an HTTP gateway. An
// empty gateway uses DefaultIPFSGateway
func (a CIP25Asset) ImageURL(gateway string) string {
	image := a.Image()
	if !strings.HasPrefix(image, ipfsScheme) {
		return image
	}
	if gateway == "" {
		gateway = DefaultIPFSGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway + strings.TrimPrefix(image, ipfsScheme)
}

func (a CIP25Asset) Compliance() Compliance {
	ret := Compliance{
		HasName:      a.Name() != "",
		HasImage:     a.Image() != "",
		HasMediaType: a.MediaType() != "",
	}
	ret.Compliant = ret.HasName && ret.HasImage
	return ret
}

// Unit returns the asset unit, which requires the policy key to be a policy ID
func (a CIP25Asset) Unit() (string, error) {
	policyId, err := common.NewBlake2b224FromHex(a.PolicyId)
	if err != nil {
		return "", err
	}
	return common.NewAssetUnit(policyId, a.nameBytes), nil
}

// Fingerprint returns the CIP-14 asset fingerprint
func (a CIP25Asset) Fingerprint() (common.AssetFingerprint, error) {
	unit, err := a.Unit()
	if err != nil {
		return common.AssetFingerprint{}, err
	}
	return common.AssetUnitFingerprint(unit)
}

func (a CIP25Asset) joinedText(name string) string {
	value, ok := a.Field(name)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case Text:
		return v.Value
	case List:
		var sb strings.Builder
		for _, item := range v.Items {
			if text, ok := item.(Text); ok {
				sb.WriteString(text.Value)
			}
		}
		return sb.String()
	}
	return ""
}

// MarshalJSON renders the asset as one object with the policy ID and asset name followed
// by the original fields
func (a CIP25Asset) MarshalJSON() ([]byte, error) {
	keys := []string{"policyId", "assetName"}
	values := []Node{Text{Value: a.PolicyId}, Text{Value: a.AssetName}}
	for _, field := range a.Fields {
		key := KeyString(field.Key)
		if key == "policyId" || key == "assetName" {
			continue
		}
		keys = append(keys, key)
		values = append(values, field.Value)
	}
	var buf bytes.Buffer
	if err := writeObject(&buf, keys, values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m CIP25Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"standard":"` + StandardCIP25 + `"`)
	if m.Version != nil {
		buf.WriteString(`,"version":`)
		if err := writeNode(&buf, m.Version); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`,"assets":[`)
	for idx, asset := range m.Assets {
		if idx > 0 {
			buf.WriteByte(',')
		}
		tmpData, err := asset.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(tmpData)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}
