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
	"strconv"
	"strings"

	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/statement"
	"github.com/sdcio/yang-datamodel/xpath"
	"github.com/sdcio/yang-datamodel/ytypes"
)

var builtinBitSizes = map[string]int{
	"int8": 8, "int16": 16, "int32": 32, "int64": 64,
	"uint8": 8, "uint16": 16, "uint32": 32, "uint64": 64,
}

// resolveType turns a "type" statement into a concrete ytypes.Type,
// chasing typedef references across modules and layering each level's own
// range/length/pattern restrictions onto the restriction set inherited
// from its base, per RFC 7950 §9's type-derivation rules.
func (b *builder) resolveType(typeStmt *statement.Statement, sctx library.SchemaContext) (ytypes.Type, error) {
	name := typeStmt.Argument
	if !strings.Contains(name, ":") {
		if _, ok := builtinBitSizes[name]; ok {
			return b.buildIntegerType(name, typeStmt)
		}
		switch name {
		case "boolean":
			return b.buildBooleanType(typeStmt), nil
		case "empty":
			return ytypes.NewEmpty(), nil
		case "string":
			return b.buildStringType(typeStmt)
		case "binary":
			return b.buildBinaryType(typeStmt)
		case "decimal64":
			return b.buildDecimal64Type(typeStmt)
		case "enumeration":
			return b.buildEnumerationType(typeStmt), nil
		case "bits":
			return b.buildBitsType(typeStmt), nil
		case "leafref":
			return b.buildLeafrefType(typeStmt)
		case "identityref":
			return b.buildIdentityrefType(typeStmt, sctx)
		case "instance-identifier":
			req := true
			if ri := typeStmt.Find1("require-instance", ""); ri != nil {
				req = ri.Argument == "true"
			}
			return ytypes.NewInstanceIdentifier(req), nil
		case "union":
			return b.buildUnionType(typeStmt, sctx)
		}
	}

	def, dsctx, err := b.sd.GetDefinition(typeStmt, sctx)
	if err != nil {
		return nil, err
	}
	key := typedefKey{mid: dsctx.TextModule, name: def.Argument}
	base, ok := b.typedefs[key]
	if !ok {
		baseTypeStmt := def.Find1("type", "")
		if baseTypeStmt == nil {
			return nil, NewMissingSubstatementError("typedef", "type")
		}
		base, err = b.resolveType(baseTypeStmt, dsctx)
		if err != nil {
			return nil, err
		}
		if defStmt := def.Find1("default", ""); defStmt != nil {
			base = withDefault(base, defStmt.Argument)
		}
		b.typedefs[key] = base
	}
	return layerRestrictions(base, typeStmt)
}

// withDefault reconstructs t with a parsed default value attached; used
// when a typedef's own "default" substatement supplies one.
func withDefault(t ytypes.Type, raw string) ytypes.Type {
	cooked, err := t.ParseCanonical(raw)
	if err != nil {
		return t
	}
	switch v := t.(type) {
	case *ytypes.Boolean:
		return ytypes.NewBoolean(cooked, true)
	case *ytypes.String:
		return ytypes.NewString(v.Length, v.Patterns, cooked, true)
	case *ytypes.Integer:
		return ytypes.NewInteger(v.Name(), v.BitSize, v.Ranges, cooked, true)
	case *ytypes.Uinteger:
		return ytypes.NewUinteger(v.Name(), v.BitSize, v.Ranges, cooked, true)
	case *ytypes.Decimal64:
		return ytypes.NewDecimal64(v.FractionDigits, v.Ranges, cooked, true)
	case *ytypes.Enumeration:
		return ytypes.NewEnumeration(v.Enums, cooked, true)
	}
	return t
}

// layerRestrictions applies typeStmt's own range/length/pattern
// substatements (legal when typeStmt names a derived type too, per the
// YANG grammar) on top of a typedef chain's already-resolved base type.
// Types with no further-restrictable substatements pass through
// unchanged.
func layerRestrictions(base ytypes.Type, typeStmt *statement.Statement) (ytypes.Type, error) {
	switch v := base.(type) {
	case *ytypes.String:
		length := v.Length
		if l := typeStmt.Find1("length", ""); l != nil {
			var err error
			if length, err = parseUintRanges(l.Argument); err != nil {
				return nil, err
			}
		}
		patterns := v.Patterns
		if lvl, err := parsePatternLevel(typeStmt); err != nil {
			return nil, err
		} else if len(lvl) > 0 {
			patterns = append(append(ytypes.PatternSet{}, patterns...), lvl)
		}
		def, hasDefault := v.Default()
		return ytypes.NewString(length, patterns, def, hasDefault), nil
	case *ytypes.Integer:
		ranges := v.Ranges
		if r := typeStmt.Find1("range", ""); r != nil {
			var err error
			if ranges, err = parseIntRanges(r.Argument); err != nil {
				return nil, err
			}
		}
		def, hasDefault := v.Default()
		return ytypes.NewInteger(v.Name(), v.BitSize, ranges, def, hasDefault), nil
	case *ytypes.Uinteger:
		ranges := v.Ranges
		if r := typeStmt.Find1("range", ""); r != nil {
			var err error
			if ranges, err = parseUintRanges(r.Argument); err != nil {
				return nil, err
			}
		}
		def, hasDefault := v.Default()
		return ytypes.NewUinteger(v.Name(), v.BitSize, ranges, def, hasDefault), nil
	case *ytypes.Decimal64:
		ranges := v.Ranges
		if r := typeStmt.Find1("range", ""); r != nil {
			var err error
			if ranges, err = parseDecimalRanges(r.Argument, v.FractionDigits); err != nil {
				return nil, err
			}
		}
		def, hasDefault := v.Default()
		return ytypes.NewDecimal64(v.FractionDigits, ranges, def, hasDefault), nil
	case *ytypes.Binary:
		length := v.Length
		if l := typeStmt.Find1("length", ""); l != nil {
			var err error
			if length, err = parseUintRanges(l.Argument); err != nil {
				return nil, err
			}
		}
		return ytypes.NewBinary(length), nil
	}
	return base, nil
}

func (b *builder) buildBooleanType(typeStmt *statement.Statement) ytypes.Type {
	return ytypes.NewBoolean(nil, false)
}

func (b *builder) buildIntegerType(name string, typeStmt *statement.Statement) (ytypes.Type, error) {
	bitSize := builtinBitSizes[name]
	if strings.HasPrefix(name, "u") {
		var ranges ytypes.UintRanges
		if r := typeStmt.Find1("range", ""); r != nil {
			var err error
			if ranges, err = parseUintRanges(r.Argument); err != nil {
				return nil, err
			}
		}
		return ytypes.NewUinteger(name, bitSize, ranges, nil, false), nil
	}
	var ranges ytypes.IntRanges
	if r := typeStmt.Find1("range", ""); r != nil {
		var err error
		if ranges, err = parseIntRanges(r.Argument); err != nil {
			return nil, err
		}
	}
	return ytypes.NewInteger(name, bitSize, ranges, nil, false), nil
}

func (b *builder) buildStringType(typeStmt *statement.Statement) (ytypes.Type, error) {
	var length ytypes.UintRanges
	if l := typeStmt.Find1("length", ""); l != nil {
		var err error
		if length, err = parseUintRanges(l.Argument); err != nil {
			return nil, err
		}
	}
	lvl, err := parsePatternLevel(typeStmt)
	if err != nil {
		return nil, err
	}
	var patterns ytypes.PatternSet
	if len(lvl) > 0 {
		patterns = ytypes.PatternSet{lvl}
	}
	return ytypes.NewString(length, patterns, nil, false), nil
}

func (b *builder) buildBinaryType(typeStmt *statement.Statement) (ytypes.Type, error) {
	var length ytypes.UintRanges
	if l := typeStmt.Find1("length", ""); l != nil {
		var err error
		if length, err = parseUintRanges(l.Argument); err != nil {
			return nil, err
		}
	}
	return ytypes.NewBinary(length), nil
}

func (b *builder) buildDecimal64Type(typeStmt *statement.Statement) (ytypes.Type, error) {
	fd := typeStmt.Find1("fraction-digits", "")
	if fd == nil {
		return nil, NewMissingSubstatementError("type decimal64", "fraction-digits")
	}
	digits, err := strconv.Atoi(fd.Argument)
	if err != nil {
		return nil, NewInvalidRestrictionError("fraction-digits", fd.Argument)
	}
	var ranges ytypes.DecimalRanges
	if r := typeStmt.Find1("range", ""); r != nil {
		if ranges, err = parseDecimalRanges(r.Argument, digits); err != nil {
			return nil, err
		}
	}
	return ytypes.NewDecimal64(digits, ranges, nil, false), nil
}

func (b *builder) buildEnumerationType(typeStmt *statement.Statement) ytypes.Type {
	var enums []ytypes.Enum
	next := 0
	for _, e := range typeStmt.FindAll("enum", "") {
		v := next
		if vs := e.Find1("value", ""); vs != nil {
			if n, err := strconv.Atoi(vs.Argument); err == nil {
				v = n
			}
		}
		enums = append(enums, ytypes.Enum{Name: e.Argument, Value: v})
		next = v + 1
	}
	return ytypes.NewEnumeration(enums, nil, false)
}

func (b *builder) buildBitsType(typeStmt *statement.Statement) ytypes.Type {
	var bits []ytypes.Bit
	next := uint32(0)
	for _, bi := range typeStmt.FindAll("bit", "") {
		p := next
		if ps := bi.Find1("position", ""); ps != nil {
			if n, err := strconv.ParseUint(ps.Argument, 10, 32); err == nil {
				p = uint32(n)
			}
		}
		bits = append(bits, ytypes.Bit{Name: bi.Argument, Position: p})
		next = p + 1
	}
	return ytypes.NewBits(bits)
}

func (b *builder) buildLeafrefType(typeStmt *statement.Statement) (ytypes.Type, error) {
	p := typeStmt.Find1("path", "")
	if p == nil {
		return nil, NewMissingSubstatementError("type leafref", "path")
	}
	expr, err := xpath.Compile(p.Argument)
	if err != nil {
		return nil, err
	}
	require := true
	if ri := typeStmt.Find1("require-instance", ""); ri != nil {
		require = ri.Argument == "true"
	}
	return ytypes.NewLeafref(expr, require), nil
}

func (b *builder) buildIdentityrefType(typeStmt *statement.Statement, sctx library.SchemaContext) (ytypes.Type, error) {
	var bases []library.QualName
	for _, bs := range typeStmt.FindAll("base", "") {
		qn, err := b.sd.TranslateNodeID(bs.Argument, sctx)
		if err != nil {
			return nil, err
		}
		bases = append(bases, qn)
	}
	var allowed []library.QualName
	for _, base := range bases {
		allowed = append(allowed, b.sd.DerivedIdentities(base)...)
	}
	return ytypes.NewIdentityref(bases, allowed, nil, false), nil
}

func (b *builder) buildUnionType(typeStmt *statement.Statement, sctx library.SchemaContext) (ytypes.Type, error) {
	var members []ytypes.Type
	for _, ts := range typeStmt.FindAll("type", "") {
		m, err := b.resolveType(ts, sctx)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return ytypes.NewUnion(members, nil, false), nil
}

func parsePatternLevel(typeStmt *statement.Statement) (ytypes.PatternLevel, error) {
	var lvl ytypes.PatternLevel
	for _, p := range typeStmt.FindAll("pattern", "") {
		inverted := false
		if mod := p.Find1("modifier", ""); mod != nil {
			inverted = mod.Argument == "invert-match"
		}
		cp, err := ytypes.CompilePattern(p.Argument, inverted)
		if err != nil {
			return nil, err
		}
		lvl = append(lvl, cp)
	}
	return lvl, nil
}

// parseIntRanges parses a YANG "range" argument ("lo..hi", possibly
// several segments separated by "|"); bare numbers are a one-point range.
// Both bounds must be decimal integers: the "min" and "max" keywords are
// not accepted and yield an invalid-restriction error.
func parseIntRanges(s string) (ytypes.IntRanges, error) {
	var out ytypes.IntRanges
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "..")
		loV, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, NewInvalidRestrictionError("range", s)
		}
		hiV := loV
		if found {
			hiV, err = strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
			if err != nil {
				return nil, NewInvalidRestrictionError("range", s)
			}
		}
		out = append(out, ytypes.IntRange{Min: loV, Max: hiV})
	}
	return out, nil
}

func parseUintRanges(s string) (ytypes.UintRanges, error) {
	var out ytypes.UintRanges
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "..")
		loV, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, NewInvalidRestrictionError("length", s)
		}
		hiV := loV
		if found {
			hiV, err = strconv.ParseUint(strings.TrimSpace(hi), 10, 64)
			if err != nil {
				return nil, NewInvalidRestrictionError("length", s)
			}
		}
		out = append(out, ytypes.UintRange{Min: loV, Max: hiV})
	}
	return out, nil
}

func parseDecimalRanges(s string, fractionDigits int) (ytypes.DecimalRanges, error) {
	var out ytypes.DecimalRanges
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "..")
		loV, err := ytypes.ParseDecimal64(strings.TrimSpace(lo), fractionDigits)
		if err != nil {
			return nil, NewInvalidRestrictionError("range", s)
		}
		hiV := loV
		if found {
			hiV, err = ytypes.ParseDecimal64(strings.TrimSpace(hi), fractionDigits)
			if err != nil {
				return nil, NewInvalidRestrictionError("range", s)
			}
		}
		out = append(out, ytypes.DecimalRange{Min: loV, Max: hiV})
	}
	return out, nil
}
