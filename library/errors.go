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

package library

import (
	"fmt"

	"github.com/danos/mgmterror"
)

func NewBadLibraryDataError(msg string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = "bad yang-library data: " + msg
	return e
}

func NewModuleNotFoundError(name, revision string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("module %s not found in search path", ModuleIdentifier{name, revision})
	return e
}

func NewModuleNotRegisteredError(mid ModuleIdentifier) error {
	e := mgmterror.NewUnknownElementApplicationError(mid.Name)
	e.Message = fmt.Sprintf("module %s is not registered", mid)
	return e
}

func NewModuleNotImplementedError(name string) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("module %s is not implemented", name)
	return e
}

func NewModuleNotImportedError(name string, mid ModuleIdentifier) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("module %s is not imported by %s", name, mid)
	return e
}

func NewMultipleImplementedRevisionsError(name string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("multiple implemented revisions of module %s", name)
	return e
}

func NewCyclicImportsError() error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = "cyclic imports among implemented modules"
	return e
}

func NewFeaturePrerequisiteError(feature QualName) error {
	e := mgmterror.NewOperationFailedApplicationError()
	e.Message = fmt.Sprintf("feature %s has an unmet if-feature prerequisite", feature)
	return e
}

func NewUnknownPrefixError(prefix string, mid ModuleIdentifier) error {
	e := mgmterror.NewUnknownElementApplicationError(prefix)
	e.Message = fmt.Sprintf("unknown prefix %q in module %s", prefix, mid)
	return e
}

func NewInvalidFeatureExpressionError(expr string) error {
	e := mgmterror.NewBadElementApplicationError("if-feature")
	e.Message = fmt.Sprintf("invalid if-feature expression: %q", expr)
	return e
}

func NewInvalidSchemaPathError(path string) error {
	e := mgmterror.NewBadElementApplicationError("schema-path")
	e.Message = fmt.Sprintf("invalid schema path: %q", path)
	return e
}

func NewDefinitionNotFoundError(keyword, name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("%s %q not found", keyword, name)
	return e
}
