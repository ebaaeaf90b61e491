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

package validate

import (
	"fmt"

	"github.com/danos/mgmterror"
)

func NewNotScalarError(name string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("%q is not a leaf or leaf-list", name)
	return e
}

// NewMustViolationError reports a failed "must" expression, carrying
// whatever error-message/error-app-tag the statement declared.
func NewMustViolationError(path, must, errorMessage, errorAppTag string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	if errorAppTag != "" {
		e.AppTag = errorAppTag
	}
	if errorMessage != "" {
		e.Message = errorMessage
	} else {
		e.Message = fmt.Sprintf("must constraint %q not satisfied", must)
	}
	e.Path = path
	return e
}

func NewWhenViolationError(path, when string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("when condition %q not satisfied", when)
	e.Path = path
	return e
}

func NewMissingMandatoryError(path, name string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("mandatory node %q is missing", name)
	e.Path = path
	return e
}

func NewMissingKeyError(path, listName string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("list %q entry is missing a key value", listName)
	e.Path = path
	return e
}

func NewDuplicateKeyError(path, listName string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("list %q has two entries with the same key", listName)
	e.Path = path
	return e
}

func NewUniqueViolationError(path, listName string, leafs []string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("list %q has two entries with the same %v", listName, leafs)
	e.Path = path
	return e
}

func NewTooFewElementsError(path, name string, min int) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("%q has fewer than the required minimum of %d elements", name, min)
	e.Path = path
	return e
}

func NewTooManyElementsError(path, name string, max int) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("%q has more than the allowed maximum of %d elements", name, max)
	e.Path = path
	return e
}

func NewLeafrefTargetMissingError(path, target string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("leafref target %q does not resolve to any instance", target)
	e.Path = path
	return e
}

func NewInvalidIdentityError(path, value string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("%q is not derived from the required base identity", value)
	e.Path = path
	return e
}

// NewContentModelViolationError reports a child-name combination the
// content model rejects outright (an unrecognized member, or two branches
// of the same choice both present) — one for which MandatoryMembers
// couldn't name a specific missing node.
func NewContentModelViolationError(path string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = "data does not match the node's content model"
	e.Path = path
	return e
}

func NewInstanceIdentifierTargetMissingError(path, value string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("instance-identifier %q does not resolve to any instance", value)
	e.Path = path
	return e
}
