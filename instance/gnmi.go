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

import (
	"encoding/json"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/openconfig/gnmi/value"

	"github.com/sdcio/yang-datamodel/schema"
)

// ToGNMITypedValue renders a leaf or leaf-list entry's cooked value as a
// gnmi.TypedValue, for a gNMI Get/Subscribe response. Structured values
// are rendered as their RFC 7951 JSON encoding, per gNMI's
// JSON_IETF_VAL convention for subtrees.
func ToGNMITypedValue(v Value, sn schema.Node) (*gnmipb.TypedValue, error) {
	switch v.(type) {
	case *ObjectValue, *ArrayValue:
		raw, err := ToRaw(v, sn)
		if err != nil {
			return nil, err
		}
		enc, err := json.Marshal(raw)
		if err != nil {
			return nil, NewMalformedJSONError(err.Error())
		}
		return &gnmipb.TypedValue{Value: &gnmipb.TypedValue_JsonIetfVal{JsonIetfVal: enc}}, nil
	default:
		return value.FromScalar(v)
	}
}
