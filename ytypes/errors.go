// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// Copyright (c) 2014-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import (
	"fmt"

	"github.com/danos/mgmterror"
)

func newInvalidValueError(msg string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = msg
	return e
}

func newInvalidValueErrorWithAppTag(msg, appTag string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = msg
	if appTag != "" {
		e.AppTag = appTag
	}
	return e
}

func NewRangeViolationError(got, allowed string) error {
	return newInvalidValueErrorWithAppTag(
		fmt.Sprintf("value %q is outside the permitted range %s", got, allowed),
		"range-violation")
}

func NewLengthViolationError(got int, allowed string) error {
	return newInvalidValueErrorWithAppTag(
		fmt.Sprintf("length %d is outside the permitted range %s", got, allowed),
		"length-violation")
}

func NewPatternViolationError(got, pattern string) error {
	return newInvalidValueErrorWithAppTag(
		fmt.Sprintf("%q does not match pattern %s", got, pattern),
		"pattern-violation")
}

func NewEnumerationViolationError(got string, allowed []string) error {
	return newInvalidValueError(
		fmt.Sprintf("%q is not one of the permitted enum values %v", got, allowed))
}

func NewBitsViolationError(got string) error {
	return newInvalidValueError(fmt.Sprintf("%q is not a valid bit name", got))
}

func NewIdentityrefViolationError(got string, allowed []string) error {
	return newInvalidValueError(
		fmt.Sprintf("identity %q is not derived from any of %v", got, allowed))
}

func NewUnionViolationError(got string) error {
	return newInvalidValueError(
		fmt.Sprintf("value %q does not match any member type of the union", got))
}

func NewMalformedLexicalValueError(typeName, got string) error {
	return newInvalidValueError(fmt.Sprintf("%q is not a valid lexical %s value", got, typeName))
}

func NewMalformedRawValueError(typeName string, raw interface{}) error {
	return newInvalidValueError(fmt.Sprintf("%v is not a valid raw %s value", raw, typeName))
}

func NewEmptyLeafHasValueError(got string) error {
	return newInvalidValueError(
		fmt.Sprintf("leaf of type empty must have no value, got %q", got))
}
