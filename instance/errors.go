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
	"fmt"

	"github.com/danos/mgmterror"
)

func NewNoParentError() error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = "instance node has no parent to ascend to"
	return e
}

func NewNotObjectError(path string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("%s: value is not an object", path)
	return e
}

func NewNotArrayError(path string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("%s: value is not an array", path)
	return e
}

func NewNoSuchMemberError(name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("no such member %q", name)
	return e
}

func NewMemberNotPermittedError(name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("member %q is not permitted by the schema here", name)
	return e
}

func NewNoSuchEntryError(index int) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("no entry at index %d", index)
	return e
}

func NewNoSuchKeyError(keys string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("no entry with keys %s", keys)
	return e
}

func NewInvalidRouteError(text string) error {
	e := mgmterror.NewMalformedMessageError()
	e.Message = fmt.Sprintf("invalid instance route %q", text)
	return e
}

func NewNoSuchSchemaChildError(name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("no schema node for %q at this position", name)
	return e
}

func NewNotScalarError(name string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("%q is not a leaf or leaf-list", name)
	return e
}

func NewMalformedJSONError(reason string) error {
	e := mgmterror.NewMalformedMessageError()
	e.Message = fmt.Sprintf("malformed JSON instance data: %s", reason)
	return e
}

// NewDataMissingError reports that a mandatory or referenced piece of
// instance data is absent. It is an operation-failed application error
// whose Path is set to path.
func NewDataMissingError(path string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("%s: data is missing", path)
	e.Path = path
	return e
}

// NewDataExistsError reports a create that collided with existing data.
// It is an operation-failed application error whose Path is set to path.
func NewDataExistsError(path string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("%s: data already exists", path)
	e.Path = path
	return e
}

// InstanceValueError reports that a terminal node's cooked value
// violates a constraint the type system itself does not enforce (e.g. a
// leafref target check or an instance-identifier route that does not
// resolve).
type InstanceValueError struct {
	Path   string
	Reason string
}

func (e *InstanceValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func NewInstanceValueError(path, reason string) error {
	return &InstanceValueError{Path: path, Reason: reason}
}
