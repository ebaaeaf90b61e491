// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package ytypes

import (
	"regexp"
	"strings"
)

// Pattern is one compiled "pattern" restriction. A string/binary type may
// carry several, one list of alternatives per level of type derivation
// (RFC 7950 §9.4.6): the value must match at least one pattern from
// *every* level for the type chain to accept it.
type Pattern struct {
	Source  string
	Inverted bool // pattern has modifier "invert-match"
	re      *regexp.Regexp
}

// CompilePattern compiles a YANG pattern (a W3C XML Schema regular
// expression, which `regexp`'s RE2 dialect is a practical superset of for
// the patterns this corpus exercises) into a Pattern.
func CompilePattern(source string, inverted bool) (Pattern, error) {
	re, err := regexp.Compile("^(?:" + source + ")$")
	if err != nil {
		return Pattern{}, newInvalidValueError("invalid pattern " + source + ": " + err.Error())
	}
	return Pattern{Source: source, Inverted: inverted, re: re}, nil
}

func (p Pattern) Matches(s string) bool {
	m := p.re.MatchString(s)
	if p.Inverted {
		return !m
	}
	return m
}

// PatternLevel is one level of alternative patterns (any one of which may
// match for that level to be satisfied).
type PatternLevel []Pattern

func (lvl PatternLevel) satisfied(s string) bool {
	if len(lvl) == 0 {
		return true
	}
	for _, p := range lvl {
		if p.Matches(s) {
			return true
		}
	}
	return false
}

// PatternSet is every level of pattern restriction accumulated along a
// type's derivation chain.
type PatternSet []PatternLevel

func (ps PatternSet) Contains(s string) error {
	for _, lvl := range ps {
		if !lvl.satisfied(s) {
			srcs := make([]string, len(lvl))
			for i, p := range lvl {
				srcs[i] = p.Source
			}
			return NewPatternViolationError(s, strings.Join(srcs, " | "))
		}
	}
	return nil
}
