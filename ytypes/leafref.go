// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import "github.com/sdcio/yang-datamodel/xpath"

// Leafref is RFC 7950 §9.9's "leafref" built-in type. The path expression
// is compiled to an xpath.Expr at schema build time; the target leaf's
// own Type (resolved by the `schema` package once the tree is built) is carried
// alongside so a leafref's cooked value is always in its target's native
// representation, never a bare string.
type Leafref struct {
	base
	Path     xpath.Expr
	Require  bool
	Target   Type // nil until the schema package resolves the path's target node
}

func NewLeafref(path xpath.Expr, require bool) *Leafref {
	return &Leafref{base: base{name: "leafref"}, Path: path, Require: require}
}

func (t *Leafref) resolvedOrString() Type {
	if t.Target != nil {
		return t.Target
	}
	return NewString(nil, nil, nil, false)
}

func (t *Leafref) ParseCanonical(s string) (interface{}, error) {
	return t.resolvedOrString().ParseCanonical(s)
}

func (t *Leafref) ParseRaw(raw interface{}) (interface{}, error) {
	return t.resolvedOrString().ParseRaw(raw)
}

func (t *Leafref) ToRaw(cooked interface{}) (interface{}, error) {
	return t.resolvedOrString().ToRaw(cooked)
}

func (t *Leafref) CanonicalString(cooked interface{}) (string, error) {
	return t.resolvedOrString().CanonicalString(cooked)
}

func (t *Leafref) Contains(cooked interface{}) error {
	return t.resolvedOrString().Contains(cooked)
}
