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

package schema

import (
	"fmt"

	"github.com/danos/mgmterror"
)

func NewUnknownTypeError(name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("unknown type %q", name)
	return e
}

func NewMissingSubstatementError(parentKeyword, childKeyword string) error {
	e := mgmterror.NewBadElementApplicationError(parentKeyword)
	e.Message = fmt.Sprintf("%s statement missing required %q substatement", parentKeyword, childKeyword)
	return e
}

func NewInvalidRestrictionError(kind, text string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("invalid %s restriction %q", kind, text)
	return e
}

func NewAugmentTargetNotFoundError(path string) error {
	e := mgmterror.NewUnknownElementApplicationError(path)
	e.Message = fmt.Sprintf("augment target node %q not found", path)
	return e
}

func NewDeviationTargetNotFoundError(path string) error {
	e := mgmterror.NewUnknownElementApplicationError(path)
	e.Message = fmt.Sprintf("deviation target node %q not found", path)
	return e
}

func NewGroupingNotFoundError(name string) error {
	e := mgmterror.NewUnknownElementApplicationError(name)
	e.Message = fmt.Sprintf("grouping %q not found", name)
	return e
}

func NewUnexpectedStatementError(parentKeyword, childKeyword string) error {
	e := mgmterror.NewBadElementApplicationError(childKeyword)
	e.Message = fmt.Sprintf("unexpected %q substatement under %q", childKeyword, parentKeyword)
	return e
}
