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
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

const (
	// Maximum length in bytes of a text or byte string value
	MaxValueBytes = 64
)

var (
	labelRegexp = regexp.MustCompile(`^[0-9]+$`)

	// Integers must fit in [-(2^64-1), 2^64-1]
	maxMetadataInt = new(big.Int).SetUint64(^uint64(0))
	minMetadataInt = new(big.Int).Neg(maxMetadataInt)
)

// Report is the outcome of validating a metadata tree
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a label mapping against the structural limits of transaction metadata.
// Every violation is reported with the path of the offending value
func Validate(root Map) Report {
	v := validator{errors: []string{}}
	for _, pair := range root.Pairs {
		label := KeyString(pair.Key)
		v.checkLabel(pair.Key, label)
		v.checkNode(pair.Value, fmt.Sprintf("metadata[%s]", label), "")
	}
	return Report{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
	}
}

// ValidateNode checks any node, such as a single label value
func ValidateNode(n Node, path string) Report {
	v := validator{errors: []string{}}
	v.checkNode(n, path, "")
	return Report{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
	}
}

type validator struct {
	errors []string
}

func (v *validator) addf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) checkLabel(key Node, label string) {
	switch key.(type) {
	case Text, Int:
	default:
		v.addf("metadata key %q must be an unsigned integer", label)
		return
	}
	if !labelRegexp.MatchString(label) {
		v.addf("metadata key %q must be an unsigned integer", label)
		return
	}
	if _, err := strconv.ParseUint(label, 10, 64); err != nil {
		v.addf("metadata key %q is out of valid range", label)
	}
}

// checkNode validates a node and its children. The prefix qualifies errors for map keys
func (v *validator) checkNode(n Node, path string, prefix string) {
	switch node := n.(type) {
	case Int:
		if node.Value != nil &&
			(node.Value.Cmp(maxMetadataInt) > 0 || node.Value.Cmp(minMetadataInt) < 0) {
			v.addf("%s: %sinteger out of range", path, prefix)
		}
	case Text:
		if len(node.Value) > MaxValueBytes {
			v.addf(
				"%s: %stext too long (%d bytes, max %d)",
				path,
				prefix,
				len(node.Value),
				MaxValueBytes,
			)
		}
	case Bytes:
		if len(node.Value) > MaxValueBytes {
			v.addf(
				"%s: %sbytes too long (%d bytes, max %d)",
				path,
				prefix,
				len(node.Value),
				MaxValueBytes,
			)
		}
	case Float:
		v.addf("%s: %snumbers must be integers", path, prefix)
	case List:
		for idx, item := range node.Items {
			v.checkNode(item, fmt.Sprintf("%s[%d]", path, idx), prefix)
		}
	case Map:
		for _, pair := range node.Pairs {
			childPath := path + "." + KeyString(pair.Key)
			v.checkNode(pair.Key, childPath, "key: ")
			v.checkNode(pair.Value, childPath, prefix)
		}
	case Opaque:
		if node.Kind == OpaqueNumber {
			v.addf("%s: %sinteger out of range", path, prefix)
			return
		}
		v.addf("%s: %sunsupported %s value", path, prefix, node.Kind)
	case nil:
		v.addf("%s: %smissing value", path, prefix)
	}
}
