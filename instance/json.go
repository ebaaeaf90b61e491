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

	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// FromRaw cooks an RFC 7951 JSON-decoded value — as produced by
// encoding/json into some nesting of map[string]interface{},
// []interface{}, string, float64, bool and nil — into a Value, against
// the schema node sn describes this position as.
func FromRaw(raw interface{}, sn schema.Node) (Value, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		if _, isAny := sn.(*schema.Anydata); isAny {
			return v, nil
		}
		in, ok := sn.(schema.InternalNode)
		if !ok {
			return nil, NewNotObjectError(sn.QName().Local)
		}
		return objectFromRaw(v, in)
	case []interface{}:
		entries := make([]Value, 0, len(v))
		for _, e := range v {
			cv, err := FromRaw(e, sn)
			if err != nil {
				return nil, err
			}
			entries = append(entries, cv)
		}
		return NewArrayValue(entries), nil
	default:
		if _, isAny := sn.(*schema.Anyxml); isAny {
			return v, nil
		}
		t, err := terminalType(sn)
		if err != nil {
			return nil, err
		}
		return t.ParseRaw(v)
	}
}

func objectFromRaw(raw map[string]interface{}, in schema.InternalNode) (*ObjectValue, error) {
	data, _ := ExtractMetadata(raw)
	members := make(map[string]Value, len(data))
	for key, val := range data {
		local := localName(key)
		child := schema.FindDataChild(in, local)
		if child == nil {
			return nil, NewNoSuchMemberError(local)
		}
		cv, err := FromRaw(val, child)
		if err != nil {
			return nil, err
		}
		members[local] = cv
	}
	return NewObjectValue(members), nil
}

// ToRaw converts a cooked Value back to RFC 7951 JSON-ready data,
// qualifying member names with their owning module whenever it differs
// from sn's.
func ToRaw(v Value, sn schema.Node) (interface{}, error) {
	switch val := v.(type) {
	case *ObjectValue:
		in, ok := sn.(schema.InternalNode)
		if !ok {
			return nil, NewNotObjectError(sn.QName().Local)
		}
		out := make(map[string]interface{}, val.Len())
		for _, name := range val.Names() {
			child := schema.FindDataChild(in, name)
			if child == nil {
				continue
			}
			mv, _ := val.Member(name)
			rv, err := ToRaw(mv, child)
			if err != nil {
				return nil, err
			}
			out[instanceKey(sn, child)] = rv
		}
		return out, nil
	case *ArrayValue:
		out := make([]interface{}, val.Len())
		for i := 0; i < val.Len(); i++ {
			rv, err := ToRaw(val.Entry(i), sn)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		if _, isAny := sn.(*schema.Anydata); isAny {
			return val, nil
		}
		if _, isAny := sn.(*schema.Anyxml); isAny {
			return val, nil
		}
		t, err := terminalType(sn)
		if err != nil {
			return nil, err
		}
		return t.ToRaw(val)
	}
}

// instanceKey renders child's instance name as seen from within parent:
// bare local name if child belongs to parent's own module, else
// "module:local" per RFC 7951 §4.
func instanceKey(parent, child schema.Node) string {
	cns := child.QName().Namespace
	if cns != "" && cns != parent.QName().Namespace {
		return cns + ":" + child.QName().Local
	}
	return child.QName().Local
}

func terminalType(sn schema.Node) (ytypes.Type, error) {
	switch n := sn.(type) {
	case *schema.Leaf:
		return n.Type, nil
	case *schema.LeafList:
		return n.Type, nil
	}
	return nil, NewNotScalarError(sn.QName().Local)
}

// DecodeJSON unmarshals data as generic JSON and cooks it against sn.
func DecodeJSON(data []byte, sn schema.Node) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewMalformedJSONError(err.Error())
	}
	return FromRaw(raw, sn)
}

// EncodeJSON renders v, a Value described by sn, as RFC 7951 JSON.
func EncodeJSON(v Value, sn schema.Node) ([]byte, error) {
	raw, err := ToRaw(v, sn)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// FromXML is intentionally not implemented as a from-scratch XML
// decoder: RFC 7950 §9.13's instance-identifier grammar and the
// key-predicate quoting rules are shared with XML instance data, so
// instance.FromXML is implemented in xml.go on top of encoding/xml's
// streaming decoder rather than duplicated here.
