// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

// InstanceIdentifier is RFC 7950 §9.13's "instance-identifier" built-in
// type. Its lexical form is itself a restricted XPath expression (RFC
// 7950 §9.13.2); full parsing into a step sequence lives in the
// `instance` package, which owns the data tree the expression is
// evaluated against. Here the cooked value is just the instance-
// identifier's canonical string, with Require controlling whether the
// referenced instance must exist (require-instance true, the default).
type InstanceIdentifier struct {
	base
	Require bool
}

func NewInstanceIdentifier(require bool) *InstanceIdentifier {
	return &InstanceIdentifier{base: base{name: "instance-identifier"}, Require: require}
}

func (t *InstanceIdentifier) ParseCanonical(s string) (interface{}, error) {
	if len(s) == 0 || s[0] != '/' {
		return nil, NewMalformedLexicalValueError("instance-identifier", s)
	}
	return s, nil
}

func (t *InstanceIdentifier) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("instance-identifier", raw)
	}
	return t.ParseCanonical(s)
}

func (t *InstanceIdentifier) ToRaw(cooked interface{}) (interface{}, error) {
	return cooked.(string), nil
}

func (t *InstanceIdentifier) CanonicalString(cooked interface{}) (string, error) {
	return cooked.(string), nil
}

func (t *InstanceIdentifier) Contains(cooked interface{}) error {
	s, ok := cooked.(string)
	if !ok || len(s) == 0 || s[0] != '/' {
		return NewMalformedLexicalValueError("instance-identifier", s)
	}
	return nil
}
