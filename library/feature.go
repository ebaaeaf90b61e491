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
	"strings"

	"github.com/sdcio/yang-datamodel/statement"
)

// IfFeatures evaluates every "if-feature" substatement of stmt (an AND of
// them, each being an "or"/"and"/"not" boolean expression over feature
// names, per RFC 7950 §7.20.2) against the features this SchemaData was
// told are supported. stmt's "own" substatements only are consulted; it
// does not recurse into children.
func (sd *SchemaData) IfFeatures(stmt *statement.Statement, mid ModuleIdentifier) (bool, error) {
	for _, iff := range stmt.FindAll("if-feature", "") {
		p := &featureExprParser{sd: sd, mid: mid, text: iff.Argument}
		ok, err := p.parse()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// featureExprParser is a recursive-descent evaluator for the if-feature
// boolean-expression grammar: disjunction of conjunctions of (possibly
// negated) atoms, atoms being a feature identifier or a parenthesized
// sub-expression. Precedence, loosest to tightest: or, and, not.
type featureExprParser struct {
	sd   *SchemaData
	mid  ModuleIdentifier
	text string
	pos  int
}

func (p *featureExprParser) parse() (bool, error) {
	v, err := p.disj()
	if err != nil {
		return false, err
	}
	p.skipSpace()
	if p.pos != len(p.text) {
		return false, NewInvalidFeatureExpressionError(p.text)
	}
	return v, nil
}

func (p *featureExprParser) skipSpace() {
	for p.pos < len(p.text) && p.text[p.pos] == ' ' {
		p.pos++
	}
}

func (p *featureExprParser) peekWord(word string) bool {
	p.skipSpace()
	rest := p.text[p.pos:]
	if !strings.HasPrefix(rest, word) {
		return false
	}
	after := p.pos + len(word)
	if after < len(p.text) && !isFeatureDelim(p.text[after]) {
		return false
	}
	return true
}

func isFeatureDelim(b byte) bool {
	return b == ' ' || b == '(' || b == ')'
}

func (p *featureExprParser) disj() (bool, error) {
	v, err := p.conj()
	if err != nil {
		return false, err
	}
	for {
		if p.peekWord("or") {
			p.pos += len("or")
			rhs, err := p.conj()
			if err != nil {
				return false, err
			}
			v = v || rhs
			continue
		}
		return v, nil
	}
}

func (p *featureExprParser) conj() (bool, error) {
	v, err := p.term()
	if err != nil {
		return false, err
	}
	for {
		if p.peekWord("and") {
			p.pos += len("and")
			rhs, err := p.term()
			if err != nil {
				return false, err
			}
			v = v && rhs
			continue
		}
		return v, nil
	}
}

func (p *featureExprParser) term() (bool, error) {
	if p.peekWord("not") {
		p.pos += len("not")
		v, err := p.term()
		if err != nil {
			return false, err
		}
		return !v, nil
	}
	return p.atom()
}

func (p *featureExprParser) atom() (bool, error) {
	p.skipSpace()
	if p.pos < len(p.text) && p.text[p.pos] == '(' {
		p.pos++
		v, err := p.disj()
		if err != nil {
			return false, err
		}
		p.skipSpace()
		if p.pos >= len(p.text) || p.text[p.pos] != ')' {
			return false, NewInvalidFeatureExpressionError(p.text)
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.text) && !isFeatureDelim(p.text[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return false, NewInvalidFeatureExpressionError(p.text)
	}
	name := p.text[start:p.pos]
	local, fid := p.sd.resolvePname(name, p.mid)
	mdata, ok := p.sd.Modules[fid]
	if !ok {
		return false, NewModuleNotRegisteredError(fid)
	}
	return mdata.Features[local], nil
}
