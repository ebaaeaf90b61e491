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

package statement

import (
	"fmt"

	"github.com/danos/mgmterror"
)

// Coordinates pinpoint a location inside a module's source text, used to
// annotate every parser error.
type Coordinates struct {
	Module string
	Line   int
}

func (c Coordinates) String() string {
	if c.Module == "" {
		return fmt.Sprintf("line %d", c.Line)
	}
	return fmt.Sprintf("%s:%d", c.Module, c.Line)
}

// NewEndOfInputError reports that the lexer ran out of input while a
// statement or quoted string was still open.
func NewEndOfInputError(at Coordinates) error {
	e := mgmterror.NewMalformedMessageError()
	e.Message = fmt.Sprintf("%s: unexpected end of input", at)
	return e
}

// NewUnexpectedInputError reports a token that doesn't fit the grammar at
// the current position; expected names the construct the parser wanted.
func NewUnexpectedInputError(at Coordinates, got, expected string) error {
	e := mgmterror.NewMalformedMessageError()
	e.Message = fmt.Sprintf("%s: unexpected input %q, expected %s", at, got, expected)
	return e
}

// NewInvalidArgumentError reports a bad escape sequence inside a
// double-quoted string argument.
func NewInvalidArgumentError(at Coordinates, escape string) error {
	e := mgmterror.NewBadElementApplicationError("argument")
	e.Message = fmt.Sprintf("%s: invalid escape sequence \\%s", at, escape)
	return e
}

// NewModuleNameMismatchError reports that the parsed module's name doesn't
// match the name the caller expected to find in this file.
func NewModuleNameMismatchError(expected, got string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("module name mismatch: expected %q, got %q", expected, got)
	return e
}

// NewModuleRevisionMismatchError reports that the parsed module's latest
// revision doesn't match the revision the caller expected.
func NewModuleRevisionMismatchError(expected, got string) error {
	e := mgmterror.NewInvalidValueApplicationError()
	e.Message = fmt.Sprintf("module revision mismatch: expected %q, got %q", expected, got)
	return e
}
