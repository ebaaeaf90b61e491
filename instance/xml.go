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
	"bytes"
	"encoding/xml"
	"io"

	"github.com/sdcio/yang-datamodel/schema"
)

// FromXML reads one NETCONF-style XML element tree from r and cooks it
// against sn, using encoding/xml's streaming Decoder so namespace
// declarations are resolved the way they are scoped in the source
// document rather than assumed global, as RFC 7950 §9's XML encoding
// rule requires.
func FromXML(r io.Reader, sn schema.Node) (Value, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, NewDataMissingError("/")
			}
			return nil, NewMalformedJSONError(err.Error())
		}
		if start, ok := tok.(xml.StartElement); ok {
			return elementToValue(dec, start, sn)
		}
	}
}

func elementToValue(dec *xml.Decoder, start xml.StartElement, sn schema.Node) (Value, error) {
	if _, isAny := sn.(*schema.Anyxml); isAny {
		var holder struct {
			XMLName xml.Name
			Inner   string `xml:",innerxml"`
		}
		if err := dec.DecodeElement(&holder, &start); err != nil {
			return nil, NewMalformedJSONError(err.Error())
		}
		return holder.Inner, nil
	}

	in, isInternal := sn.(schema.InternalNode)
	if !isInternal {
		t, err := terminalType(sn)
		if err != nil {
			return nil, err
		}
		var text string
		if err := dec.DecodeElement(&text, &start); err != nil {
			return nil, NewMalformedJSONError(err.Error())
		}
		return t.ParseCanonical(text)
	}

	members := map[string]Value{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, NewMalformedJSONError(err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := schema.FindDataChild(in, t.Name.Local)
			if child == nil {
				if err := dec.Skip(); err != nil {
					return nil, NewMalformedJSONError(err.Error())
				}
				continue
			}
			cv, err := elementToValue(dec, t, child)
			if err != nil {
				return nil, err
			}
			if existing, ok := members[t.Name.Local]; ok {
				arr, ok := existing.(*ArrayValue)
				if !ok {
					arr = NewArrayValue([]Value{existing})
				}
				members[t.Name.Local] = NewArrayValue(append(arr.Entries(), cv))
			} else {
				members[t.Name.Local] = cv
			}
		case xml.EndElement:
			return NewObjectValue(members), nil
		}
	}
}

// EncodeXML renders v, a Value described by sn, as NETCONF-style XML
// with local as the outermost element name.
func EncodeXML(v Value, sn schema.Node, local string) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeValue(enc, v, sn, local); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(enc *xml.Encoder, v Value, sn schema.Node, local string) error {
	name := xml.Name{Local: local}
	switch val := v.(type) {
	case *ObjectValue:
		in, ok := sn.(schema.InternalNode)
		if !ok {
			return NewNotObjectError(local)
		}
		if err := enc.EncodeToken(xml.StartElement{Name: name}); err != nil {
			return err
		}
		for _, mname := range val.Names() {
			child := schema.FindDataChild(in, mname)
			if child == nil {
				continue
			}
			mv, _ := val.Member(mname)
			if err := encodeValue(enc, mv, child, mname); err != nil {
				return err
			}
		}
		return enc.EncodeToken(xml.EndElement{Name: name})
	case *ArrayValue:
		for i := 0; i < val.Len(); i++ {
			if err := encodeValue(enc, val.Entry(i), sn, local); err != nil {
				return err
			}
		}
		return nil
	default:
		t, err := terminalType(sn)
		if err != nil {
			return err
		}
		text, err := t.CanonicalString(val)
		if err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.StartElement{Name: name}); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
		return enc.EncodeToken(xml.EndElement{Name: name})
	}
}
