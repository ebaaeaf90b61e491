// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package instance

import "strings"

// Metadata is the set of RFC 7952 annotations attached to one instance
// node, keyed by the annotation's local name.
type Metadata map[string]interface{}

// ExtractMetadata splits a raw RFC 7951 object into its ordinary data
// members and its "@"-prefixed metadata siblings. RFC 7952 §5.3 lets an
// implementation write the module prefix on either the "@name" key, the
// annotation's own key, both, or neither; this accepts every form a
// reader may encounter, keyed here by the member's bare local name.
func ExtractMetadata(raw map[string]interface{}) (data map[string]interface{}, meta map[string]Metadata) {
	data = make(map[string]interface{}, len(raw))
	meta = make(map[string]Metadata)
	for k, v := range raw {
		if strings.HasPrefix(k, "@") {
			target := localName(k[1:])
			ann, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			m := make(Metadata, len(ann))
			for ak, av := range ann {
				m[localName(ak)] = av
			}
			meta[target] = m
			continue
		}
		data[k] = v
	}
	return data, meta
}

func localName(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[i+1:]
	}
	return key
}
