// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Boolean is RFC 7950 §9.5's "boolean" built-in type. Cooked value: bool.
type Boolean struct{ base }

func NewBoolean(def interface{}, hasDefault bool) *Boolean {
	return &Boolean{base{name: "boolean", def: def, hasDefault: hasDefault}}
}

func (t *Boolean) ParseCanonical(s string) (interface{}, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return nil, NewMalformedLexicalValueError("boolean", s)
	}
}

func (t *Boolean) ParseRaw(raw interface{}) (interface{}, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, NewMalformedRawValueError("boolean", raw)
	}
	return b, nil
}

func (t *Boolean) ToRaw(cooked interface{}) (interface{}, error) { return cooked.(bool), nil }

func (t *Boolean) CanonicalString(cooked interface{}) (string, error) {
	if cooked.(bool) {
		return "true", nil
	}
	return "false", nil
}

func (t *Boolean) Contains(cooked interface{}) error {
	if _, ok := cooked.(bool); !ok {
		return NewMalformedRawValueError("boolean", cooked)
	}
	return nil
}

// Empty is RFC 7950 §9.11's "empty" built-in type. Cooked value: nil; its
// only legal representation carries no content at all.
type Empty struct{ base }

func NewEmpty() *Empty { return &Empty{base{name: "empty"}} }

func (t *Empty) ParseCanonical(s string) (interface{}, error) {
	if s != "" {
		return nil, NewEmptyLeafHasValueError(s)
	}
	return nil, nil
}

func (t *Empty) ParseRaw(raw interface{}) (interface{}, error) {
	if arr, ok := raw.([]interface{}); ok && len(arr) == 1 && arr[0] == nil {
		return nil, nil
	}
	return nil, NewMalformedRawValueError("empty", raw)
}

func (t *Empty) ToRaw(cooked interface{}) (interface{}, error) {
	return []interface{}{nil}, nil
}

func (t *Empty) CanonicalString(cooked interface{}) (string, error) { return "", nil }

func (t *Empty) Contains(cooked interface{}) error { return nil }

// String is RFC 7950 §9.4's "string" built-in type, restricted by
// length and pattern. Cooked value: string.
type String struct {
	base
	Length   UintRanges
	Patterns PatternSet
}

func NewString(length UintRanges, patterns PatternSet, def interface{}, hasDefault bool) *String {
	return &String{base: base{name: "string", def: def, hasDefault: hasDefault}, Length: length, Patterns: patterns}
}

func (t *String) ParseCanonical(s string) (interface{}, error) {
	if err := t.Contains(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (t *String) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("string", raw)
	}
	return t.ParseCanonical(s)
}

func (t *String) ToRaw(cooked interface{}) (interface{}, error) { return cooked.(string), nil }

func (t *String) CanonicalString(cooked interface{}) (string, error) { return cooked.(string), nil }

func (t *String) Contains(cooked interface{}) error {
	s, ok := cooked.(string)
	if !ok {
		return NewMalformedRawValueError("string", cooked)
	}
	if t.Length != nil && !t.Length.Contains(uint64(len([]rune(s)))) {
		return NewLengthViolationError(len([]rune(s)), t.Length.String())
	}
	return t.Patterns.Contains(s)
}

// Binary is RFC 7950 §9.8's "binary" built-in type, base64-encoded on
// the wire. Cooked value: []byte.
type Binary struct {
	base
	Length UintRanges
}

func NewBinary(length UintRanges) *Binary {
	return &Binary{base: base{name: "binary"}, Length: length}
}

func (t *Binary) ParseCanonical(s string) (interface{}, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, NewMalformedLexicalValueError("binary", s)
	}
	return t.parsed(b)
}

func (t *Binary) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("binary", raw)
	}
	return t.ParseCanonical(s)
}

func (t *Binary) parsed(b []byte) (interface{}, error) {
	if err := t.Contains(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (t *Binary) ToRaw(cooked interface{}) (interface{}, error) {
	return base64.StdEncoding.EncodeToString(cooked.([]byte)), nil
}

func (t *Binary) CanonicalString(cooked interface{}) (string, error) {
	return base64.StdEncoding.EncodeToString(cooked.([]byte)), nil
}

func (t *Binary) Contains(cooked interface{}) error {
	b, ok := cooked.([]byte)
	if !ok {
		return NewMalformedRawValueError("binary", cooked)
	}
	if t.Length != nil && !t.Length.Contains(uint64(len(b))) {
		return NewLengthViolationError(len(b), t.Length.String())
	}
	return nil
}

// Integer is the signed integer family (int8/16/32/64), parameterized by
// BitSize. Cooked value: int64.
type Integer struct {
	base
	BitSize int
	Ranges  IntRanges
}

func NewInteger(name string, bitSize int, ranges IntRanges, def interface{}, hasDefault bool) *Integer {
	return &Integer{base: base{name: name, def: def, hasDefault: hasDefault}, BitSize: bitSize, Ranges: ranges}
}

func (t *Integer) ParseCanonical(s string) (interface{}, error) {
	v, err := strconv.ParseInt(s, 10, t.BitSize)
	if err != nil {
		return nil, NewMalformedLexicalValueError(t.name, s)
	}
	if err := t.Contains(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Integer) ParseRaw(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case float64:
		return t.ParseCanonical(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return t.ParseCanonical(v)
	default:
		return nil, NewMalformedRawValueError(t.name, raw)
	}
}

func (t *Integer) ToRaw(cooked interface{}) (interface{}, error) {
	v := cooked.(int64)
	if t.BitSize <= 32 {
		return float64(v), nil
	}
	return strconv.FormatInt(v, 10), nil
}

func (t *Integer) CanonicalString(cooked interface{}) (string, error) {
	return strconv.FormatInt(cooked.(int64), 10), nil
}

func (t *Integer) Contains(cooked interface{}) error {
	v, ok := cooked.(int64)
	if !ok {
		return NewMalformedRawValueError(t.name, cooked)
	}
	if t.Ranges != nil && !t.Ranges.Contains(v) {
		return NewRangeViolationError(fmt.Sprintf("%d", v), t.Ranges.String())
	}
	return nil
}

// Uinteger is the unsigned integer family (uint8/16/32/64). Cooked
// value: uint64.
type Uinteger struct {
	base
	BitSize int
	Ranges  UintRanges
}

func NewUinteger(name string, bitSize int, ranges UintRanges, def interface{}, hasDefault bool) *Uinteger {
	return &Uinteger{base: base{name: name, def: def, hasDefault: hasDefault}, BitSize: bitSize, Ranges: ranges}
}

func (t *Uinteger) ParseCanonical(s string) (interface{}, error) {
	v, err := strconv.ParseUint(s, 10, t.BitSize)
	if err != nil {
		return nil, NewMalformedLexicalValueError(t.name, s)
	}
	if err := t.Contains(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Uinteger) ParseRaw(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case float64:
		return t.ParseCanonical(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return t.ParseCanonical(v)
	default:
		return nil, NewMalformedRawValueError(t.name, raw)
	}
}

func (t *Uinteger) ToRaw(cooked interface{}) (interface{}, error) {
	v := cooked.(uint64)
	if t.BitSize <= 32 {
		return float64(v), nil
	}
	return strconv.FormatUint(v, 10), nil
}

func (t *Uinteger) CanonicalString(cooked interface{}) (string, error) {
	return strconv.FormatUint(cooked.(uint64), 10), nil
}

func (t *Uinteger) Contains(cooked interface{}) error {
	v, ok := cooked.(uint64)
	if !ok {
		return NewMalformedRawValueError(t.name, cooked)
	}
	if t.Ranges != nil && !t.Ranges.Contains(v) {
		return NewRangeViolationError(fmt.Sprintf("%d", v), t.Ranges.String())
	}
	return nil
}

// Decimal64 is RFC 7950 §9.3's "decimal64" built-in type. Cooked value:
// int64, scaled by 10^FractionDigits, so range comparisons stay exact.
type Decimal64 struct {
	base
	FractionDigits int
	Ranges         DecimalRanges
}

func NewDecimal64(fractionDigits int, ranges DecimalRanges, def interface{}, hasDefault bool) *Decimal64 {
	return &Decimal64{base: base{name: "decimal64", def: def, hasDefault: hasDefault}, FractionDigits: fractionDigits, Ranges: ranges}
}

func (t *Decimal64) ParseCanonical(s string) (interface{}, error) {
	v, err := ParseDecimal64(s, t.FractionDigits)
	if err != nil {
		return nil, err
	}
	if err := t.Contains(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Decimal64) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("decimal64", raw)
	}
	return t.ParseCanonical(s)
}

func (t *Decimal64) ToRaw(cooked interface{}) (interface{}, error) {
	return FormatDecimal64(cooked.(int64), t.FractionDigits), nil
}

func (t *Decimal64) CanonicalString(cooked interface{}) (string, error) {
	return FormatDecimal64(cooked.(int64), t.FractionDigits), nil
}

func (t *Decimal64) Contains(cooked interface{}) error {
	v, ok := cooked.(int64)
	if !ok {
		return NewMalformedRawValueError("decimal64", cooked)
	}
	if t.Ranges != nil && !t.Ranges.Contains(v) {
		return NewRangeViolationError(FormatDecimal64(v, t.FractionDigits), "decimal64 range")
	}
	return nil
}

// Enum is one "enum" substatement: its lexical name plus assigned value.
type Enum struct {
	Name  string
	Value int
}

// Enumeration is RFC 7950 §9.6's "enumeration" built-in type. Cooked
// value: string (the enum's Name).
type Enumeration struct {
	base
	Enums []Enum
}

func NewEnumeration(enums []Enum, def interface{}, hasDefault bool) *Enumeration {
	return &Enumeration{base: base{name: "enumeration", def: def, hasDefault: hasDefault}, Enums: enums}
}

func (t *Enumeration) find(name string) (Enum, bool) {
	for _, e := range t.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

func (t *Enumeration) ParseCanonical(s string) (interface{}, error) {
	if err := t.Contains(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (t *Enumeration) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("enumeration", raw)
	}
	return t.ParseCanonical(s)
}

func (t *Enumeration) ToRaw(cooked interface{}) (interface{}, error) { return cooked.(string), nil }

func (t *Enumeration) CanonicalString(cooked interface{}) (string, error) {
	return cooked.(string), nil
}

func (t *Enumeration) Contains(cooked interface{}) error {
	s, ok := cooked.(string)
	if !ok {
		return NewMalformedRawValueError("enumeration", cooked)
	}
	names := make([]string, len(t.Enums))
	for i, e := range t.Enums {
		names[i] = e.Name
	}
	if _, ok := t.find(s); !ok {
		return NewEnumerationViolationError(s, names)
	}
	return nil
}

// Bit is one "bit" substatement: its lexical name plus assigned position.
type Bit struct {
	Name     string
	Position uint32
}

// Bits is RFC 7950 §9.7's "bits" built-in type. Cooked value:
// map[string]bool, one entry per asserted bit name.
type Bits struct {
	base
	Bits []Bit
}

func NewBits(bits []Bit) *Bits {
	return &Bits{base: base{name: "bits"}, Bits: bits}
}

func (t *Bits) has(name string) bool {
	for _, b := range t.Bits {
		if b.Name == name {
			return true
		}
	}
	return false
}

func (t *Bits) ParseCanonical(s string) (interface{}, error) {
	set := make(map[string]bool)
	for _, name := range splitWhitespace(s) {
		if !t.has(name) {
			return nil, NewBitsViolationError(name)
		}
		set[name] = true
	}
	return set, nil
}

func (t *Bits) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("bits", raw)
	}
	return t.ParseCanonical(s)
}

func (t *Bits) ToRaw(cooked interface{}) (interface{}, error) {
	s, err := t.CanonicalString(cooked)
	return s, err
}

func (t *Bits) CanonicalString(cooked interface{}) (string, error) {
	set := cooked.(map[string]bool)
	var out string
	for _, b := range t.Bits {
		if set[b.Name] {
			if out != "" {
				out += " "
			}
			out += b.Name
		}
	}
	return out, nil
}

func (t *Bits) Contains(cooked interface{}) error {
	set, ok := cooked.(map[string]bool)
	if !ok {
		return NewMalformedRawValueError("bits", cooked)
	}
	for name := range set {
		if !t.has(name) {
			return NewBitsViolationError(name)
		}
	}
	return nil
}

func splitWhitespace(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
