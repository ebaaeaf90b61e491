// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import (
	"testing"

	"github.com/sdcio/yang-datamodel/library"
)

func TestIntegerRangeRestriction(t *testing.T) {
	it := NewInteger("int8", 8, IntRanges{{Min: 0, Max: 100}}, nil, false)

	if _, err := it.ParseCanonical("50"); err != nil {
		t.Fatalf("unexpected error for in-range value: %v", err)
	}
	if _, err := it.ParseCanonical("120"); err == nil {
		t.Fatal("expected a range-violation error for 120")
	}
	if _, err := it.ParseCanonical("not-a-number"); err == nil {
		t.Fatal("expected a lexical error for a non-numeric string")
	}
}

func TestDecimal64RoundTrip(t *testing.T) {
	d := NewDecimal64(2, DecimalRanges{{Min: -10000, Max: 10000}}, nil, false)
	v, err := d.ParseCanonical("3.14")
	if err != nil {
		t.Fatalf("ParseCanonical: %v", err)
	}
	s, err := d.CanonicalString(v)
	if err != nil {
		t.Fatalf("CanonicalString: %v", err)
	}
	if s != "3.14" {
		t.Fatalf("round trip = %q, want 3.14", s)
	}
}

func TestStringLengthAndPattern(t *testing.T) {
	pat, err := CompilePattern("[a-z]+", false)
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	st := NewString(UintRanges{{Min: 1, Max: 5}}, PatternSet{{pat}}, nil, false)

	if _, err := st.ParseCanonical("abc"); err != nil {
		t.Fatalf("unexpected error for valid string: %v", err)
	}
	if _, err := st.ParseCanonical("ABC"); err == nil {
		t.Fatal("expected a pattern violation for uppercase input")
	}
	if _, err := st.ParseCanonical("toolongvalue"); err == nil {
		t.Fatal("expected a length violation for an overlong string")
	}
}

func TestEnumerationContains(t *testing.T) {
	e := NewEnumeration([]Enum{{Name: "up", Value: 0}, {Name: "down", Value: 1}}, nil, false)
	if _, err := e.ParseCanonical("up"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.ParseCanonical("sideways"); err == nil {
		t.Fatal("expected an enumeration violation for an unknown enum")
	}
}

func TestUnionFirstMatchWins(t *testing.T) {
	u := NewUnion([]Type{
		NewInteger("int32", 32, nil, nil, false),
		NewString(nil, nil, nil, false),
	}, nil, false)

	v, err := u.ParseCanonical("42")
	if err != nil {
		t.Fatalf("ParseCanonical: %v", err)
	}
	s, err := u.CanonicalString(v)
	if err != nil {
		t.Fatalf("CanonicalString: %v", err)
	}
	if s != "42" {
		t.Fatalf("got %q, want 42 (int member should win over string member)", s)
	}

	v2, err := u.ParseCanonical("hello")
	if err != nil {
		t.Fatalf("ParseCanonical(hello): %v", err)
	}
	if err := u.Contains(v2); err != nil {
		t.Fatalf("Contains on string-matched member: %v", err)
	}
}

func TestIdentityrefRestriction(t *testing.T) {
	base := library.QualName{Local: "transport-protocol", Namespace: "base-types"}
	tcp := library.QualName{Local: "tcp", Namespace: "base-types"}
	udp := library.QualName{Local: "udp", Namespace: "base-types"}

	idref := NewIdentityref([]library.QualName{base}, []library.QualName{base, tcp}, nil, false)

	if _, err := idref.ParseCanonical("base-types:tcp"); err != nil {
		t.Fatalf("unexpected error for allowed identity: %v", err)
	}
	if _, err := idref.ParseCanonical("base-types:udp"); err == nil {
		t.Fatalf("expected an error for %v, which is not in the allowed set", udp)
	}
}

func TestBitsSetRoundTrip(t *testing.T) {
	b := NewBits([]Bit{{Name: "a", Position: 0}, {Name: "b", Position: 1}})
	v, err := b.ParseCanonical("a b")
	if err != nil {
		t.Fatalf("ParseCanonical: %v", err)
	}
	if err := b.Contains(v); err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if _, err := b.ParseCanonical("a nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown bit name")
	}
}
