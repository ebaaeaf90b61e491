// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package ytypes is the YANG built-in and derived type system: parsing
// between lexical (XML/text) and raw (RFC 7951 JSON) representations, a
// cooked in-memory value for each, and the restriction machinery (range,
// length, pattern, enum, bits, identityref) used to validate it.
package ytypes

// Type is satisfied by every built-in and derived YANG type. A cooked
// value is the in-memory Go representation this package and `instance`
// exchange; its concrete Go type depends on the YANG type (int64 for the
// signed integers and for decimal64, uint64 for the unsigned integers,
// string for string/enumeration/instance-identifier, map[string]bool for
// bits, library.QualName for identityref, bool for boolean, nil for
// empty, []byte for binary, and the member type's wrapped value for a
// union).
type Type interface {
	// Name is the type's lexical name, e.g. "uint32" or a derived
	// typedef's local name.
	Name() string

	// ParseCanonical converts a lexical-form string (as found in XML
	// element content or an instance-identifier predicate) into a cooked
	// value, applying all restrictions.
	ParseCanonical(s string) (interface{}, error)

	// ParseRaw converts an RFC 7951 JSON-decoded value (string, float64,
	// bool, or nil depending on the JSON encoding rule for this type)
	// into a cooked value, applying all restrictions.
	ParseRaw(raw interface{}) (interface{}, error)

	// ToRaw converts a cooked value back to its RFC 7951 JSON
	// representation.
	ToRaw(cooked interface{}) (interface{}, error)

	// CanonicalString renders a cooked value as its canonical lexical
	// string, per the type's canonical-form rule in RFC 7950 §9.
	CanonicalString(cooked interface{}) (string, error)

	// Contains re-validates a cooked value's restrictions. Used after a
	// union member match or a leafref target re-read to confirm the
	// value still satisfies the type without re-parsing text.
	Contains(cooked interface{}) error

	// Default returns the type's "default" substatement's cooked value,
	// if one is in effect (inherited from a typedef chain or set
	// directly), and whether one is present at all.
	Default() (interface{}, bool)
}

type base struct {
	name       string
	def        interface{}
	hasDefault bool
}

func (b *base) Name() string { return b.name }

func (b *base) Default() (interface{}, bool) {
	if !b.hasDefault {
		return nil, false
	}
	return b.def, true
}
