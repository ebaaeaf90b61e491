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

// Package statement implements the tokenizer and recursive-descent parser
// for the YANG module text language. Parsing produces a generic Statement
// tree; it does not interpret keywords beyond the quoting/escaping rules
// needed to recover arguments.
package statement

import "strings"

var escapeTable = strings.NewReplacer(`"`, `\"`, `\`, `\\`)

// Statement is a single YANG statement: a keyword (optionally prefixed by
// an extension module's prefix), an optional argument, and an ordered list
// of substatements. Statement trees are built once by Parse and are never
// mutated afterwards.
type Statement struct {
	Keyword   string
	Prefix    string // "" for built-in (unprefixed) statements
	Argument  string
	HasArg    bool
	Sub       []*Statement
	Parent    *Statement
	Pos       Coordinates
}

// QKeyword returns the statement's keyword, prefixed if it is an extension.
func (s *Statement) QKeyword() string {
	if s.Prefix == "" {
		return s.Keyword
	}
	return s.Prefix + ":" + s.Keyword
}

func (s *Statement) String() string {
	var b strings.Builder
	b.WriteString(s.QKeyword())
	if s.HasArg {
		b.WriteString(` "`)
		b.WriteString(escapeTable.Replace(s.Argument))
		b.WriteByte('"')
	}
	if len(s.Sub) > 0 {
		b.WriteString(" { ... }")
	} else {
		b.WriteByte(';')
	}
	return b.String()
}

// Find1 returns the first direct substatement matching keyword, prefix and
// (if non-empty) argument. prefix == "" matches built-in statements only.
func (s *Statement) Find1(keyword, prefix string, argument ...string) *Statement {
	for _, sub := range s.Sub {
		if sub.Keyword != keyword || sub.Prefix != prefix {
			continue
		}
		if len(argument) > 0 && sub.Argument != argument[0] {
			continue
		}
		return sub
	}
	return nil
}

// FindAll returns every direct substatement matching keyword and prefix, in
// source order.
func (s *Statement) FindAll(keyword, prefix string) []*Statement {
	var out []*Statement
	for _, sub := range s.Sub {
		if sub.Keyword == keyword && sub.Prefix == prefix {
			out = append(out, sub)
		}
	}
	return out
}

// GetDefinition searches ancestor statements (starting at the receiver's
// parent) for a grouping or typedef named name. keyword must be "grouping"
// or "typedef".
func (s *Statement) GetDefinition(name, keyword string) *Statement {
	for anc := s.Parent; anc != nil; anc = anc.Parent {
		if def := anc.Find1(keyword, "", name); def != nil {
			return def
		}
	}
	return nil
}

// Walk calls fn for the receiver and, depth-first, every descendant.
func (s *Statement) Walk(fn func(*Statement)) {
	fn(s)
	for _, sub := range s.Sub {
		sub.Walk(fn)
	}
}

// Clone deep-copies the receiver and its substatements. Parent pointers in
// the clone point into the cloned tree, not the original.
func (s *Statement) Clone() *Statement {
	c := *s
	c.Parent = nil
	c.Sub = make([]*Statement, len(s.Sub))
	for i, sub := range s.Sub {
		c.Sub[i] = sub.Clone()
		c.Sub[i].Parent = &c
	}
	return &c
}
