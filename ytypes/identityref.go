// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import (
	"github.com/sdcio/yang-datamodel/library"
)

// Identityref is RFC 7950 §9.10's "identityref" built-in type. Cooked
// value: library.QualName. Resolve, not this package, owns the identity
// derivation graph (library.SchemaData); Identityref stores the closed
// set of QualNames this particular restriction accepts, precomputed by
// the schema package at compile time via library.DerivedIdentities.
type Identityref struct {
	base
	Bases   []library.QualName
	Allowed []library.QualName
	DefaultCtx library.ModuleIdentifier
}

func NewIdentityref(bases, allowed []library.QualName, def interface{}, hasDefault bool) *Identityref {
	return &Identityref{
		base:    base{name: "identityref", def: def, hasDefault: hasDefault},
		Bases:   bases,
		Allowed: allowed,
	}
}

func (t *Identityref) find(qn library.QualName) bool {
	for _, a := range t.Allowed {
		if a == qn {
			return true
		}
	}
	return false
}

// ParseCanonical parses an identity reference in the string form
// "namespace:local": the text before the first colon is taken as the
// namespace as written, and no prefix resolution is done. This method
// only enforces the identityref's own base restriction.
func (t *Identityref) ParseCanonical(s string) (interface{}, error) {
	qn := parseQualNameString(s)
	if err := t.Contains(qn); err != nil {
		return nil, err
	}
	return qn, nil
}

func (t *Identityref) ParseRaw(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, NewMalformedRawValueError("identityref", raw)
	}
	return t.ParseCanonical(s)
}

func (t *Identityref) ToRaw(cooked interface{}) (interface{}, error) {
	return cooked.(library.QualName).String(), nil
}

func (t *Identityref) CanonicalString(cooked interface{}) (string, error) {
	return cooked.(library.QualName).String(), nil
}

func (t *Identityref) Contains(cooked interface{}) error {
	qn, ok := cooked.(library.QualName)
	if !ok {
		return NewMalformedRawValueError("identityref", cooked)
	}
	if !t.find(qn) {
		allowed := make([]string, len(t.Allowed))
		for i, a := range t.Allowed {
			allowed[i] = a.String()
		}
		return NewIdentityrefViolationError(qn.String(), allowed)
	}
	return nil
}

func parseQualNameString(s string) library.QualName {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return library.QualName{Namespace: s[:i], Local: s[i+1:]}
		}
	}
	return library.QualName{Local: s}
}
