// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

// Union is RFC 7950 §9.12's "union" built-in type: the first member type
// (in declaration order) whose ParseCanonical/ParseRaw succeeds owns the
// value, per RFC 7950 §9.12's "first matching type" rule. The cooked
// value is a unionValue pairing the winning member's own cooked form with
// that member's index, so ToRaw/CanonicalString/Contains can dispatch
// back to the same member without re-running the match.
type Union struct {
	base
	Members []Type
}

func NewUnion(members []Type, def interface{}, hasDefault bool) *Union {
	return &Union{base: base{name: "union", def: def, hasDefault: hasDefault}, Members: members}
}

type unionValue struct {
	memberIdx int
	value     interface{}
}

func (t *Union) ParseCanonical(s string) (interface{}, error) {
	for i, m := range t.Members {
		if v, err := m.ParseCanonical(s); err == nil {
			return unionValue{memberIdx: i, value: v}, nil
		}
	}
	return nil, NewUnionViolationError(s)
}

func (t *Union) ParseRaw(raw interface{}) (interface{}, error) {
	for i, m := range t.Members {
		if v, err := m.ParseRaw(raw); err == nil {
			return unionValue{memberIdx: i, value: v}, nil
		}
	}
	return nil, NewUnionViolationError(toDisplayString(raw))
}

func (t *Union) ToRaw(cooked interface{}) (interface{}, error) {
	uv := cooked.(unionValue)
	return t.Members[uv.memberIdx].ToRaw(uv.value)
}

func (t *Union) CanonicalString(cooked interface{}) (string, error) {
	uv := cooked.(unionValue)
	return t.Members[uv.memberIdx].CanonicalString(uv.value)
}

func (t *Union) Contains(cooked interface{}) error {
	uv, ok := cooked.(unionValue)
	if !ok {
		return NewMalformedRawValueError("union", cooked)
	}
	if uv.memberIdx < 0 || uv.memberIdx >= len(t.Members) {
		return NewMalformedRawValueError("union", cooked)
	}
	return t.Members[uv.memberIdx].Contains(uv.value)
}

func toDisplayString(raw interface{}) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return "<non-string raw value>"
}
