// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package xpath

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// IdentityResolver answers the derived-from family of YANG extension
// functions (RFC 7950 §10.4.4/10.4.5), backed by a module/identity graph
// the xpath package has no knowledge of. Contexts that never evaluate
// derived-from() may leave this unset.
type IdentityResolver interface {
	// IsDerivedFrom reports whether value (an identityref's QName as
	// "namespace:local") is the base identity or a (reflexive/irreflexive
	// per orSelf) descendant of it.
	IsDerivedFrom(value, baseQName string, orSelf bool) bool
}

func (c *Context) identityResolver() IdentityResolver {
	return c.Identity
}

// WithIdentityResolver returns a Context that derived-from()/
// derived-from-or-self() will consult to resolve identity ancestry.
func (c *Context) WithIdentityResolver(r IdentityResolver) *Context {
	cp := *c
	cp.Identity = r
	return &cp
}

type builtinFunc func(ctx *Context, args []Expr) (Datum, error)

var builtinFunctions map[string]builtinFunc

func init() {
	builtinFunctions = map[string]builtinFunc{
		"last":                    fnLast,
		"position":                fnPosition,
		"count":                   fnCount,
		"id":                      fnNotSupported("id"),
		"local-name":              fnLocalName,
		"namespace-uri":           fnNamespaceURI,
		"name":                    fnName,
		"string":                  fnString,
		"concat":                  fnConcat,
		"starts-with":             fnStartsWith,
		"contains":                fnContains,
		"substring-before":        fnSubstringBefore,
		"substring-after":         fnSubstringAfter,
		"substring":               fnSubstring,
		"string-length":           fnStringLength,
		"normalize-space":         fnNormalizeSpace,
		"translate":               fnTranslate,
		"boolean":                 fnBoolean,
		"not":                     fnNot,
		"true":                    fnTrue,
		"false":                   fnFalse,
		"lang":                    fnNotSupported("lang"),
		"number":                  fnNumber,
		"sum":                     fnSum,
		"floor":                   fnFloor,
		"ceiling":                 fnCeiling,
		"round":                   fnRound,
		"current":                 fnCurrent,
		"deref":                   fnDeref,
		"derived-from":            fnDerivedFrom(false),
		"derived-from-or-self":    fnDerivedFrom(true),
		"re-match":                fnReMatch,
		"bit-is-set":              fnBitIsSet,
		"enum-value":              fnEnumValue,
	}
}

func fnNotSupported(name string) builtinFunc {
	return func(ctx *Context, args []Expr) (Datum, error) {
		return nil, fmt.Errorf("xpath: %s() is not supported", name)
	}
}

func evalEach(ctx *Context, args []Expr) ([]Datum, error) {
	out := make([]Datum, len(args))
	for i, a := range args {
		d, err := a.Eval(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func fnLast(ctx *Context, args []Expr) (Datum, error) {
	return NewNumberDatum(float64(ctx.Size)), nil
}

func fnPosition(ctx *Context, args []Expr) (Datum, error) {
	return NewNumberDatum(float64(ctx.Position)), nil
}

func fnCount(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: count() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) {
		return nil, fmt.Errorf("xpath: count() argument is not a node-set")
	}
	return NewNumberDatum(float64(len(d.Nodeset()))), nil
}

func contextNode(ctx *Context, args []Expr) (XpathNode, error) {
	if len(args) == 0 {
		return ctx.Node, nil
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) || len(d.Nodeset()) == 0 {
		return nil, nil
	}
	return d.Nodeset()[0], nil
}

func fnLocalName(ctx *Context, args []Expr) (Datum, error) {
	n, err := contextNode(ctx, args)
	if err != nil || n == nil {
		return NewLiteralDatum(""), err
	}
	return NewLiteralDatum(n.XName()), nil
}

func fnNamespaceURI(ctx *Context, args []Expr) (Datum, error) {
	n, err := contextNode(ctx, args)
	if err != nil || n == nil {
		return NewLiteralDatum(""), err
	}
	return NewLiteralDatum(n.XNamespace()), nil
}

func fnName(ctx *Context, args []Expr) (Datum, error) {
	return fnLocalName(ctx, args)
}

func fnString(ctx *Context, args []Expr) (Datum, error) {
	if len(args) == 0 {
		return NewLiteralDatum(NodeStringValue(ctx.Node)), nil
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewLiteralDatum(d.String()), nil
}

func fnConcat(ctx *Context, args []Expr) (Datum, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("xpath: concat() takes at least two arguments")
	}
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, v := range vals {
		b.WriteString(v.String())
	}
	return NewLiteralDatum(b.String()), nil
}

func fnStartsWith(ctx *Context, args []Expr) (Datum, error) {
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("xpath: starts-with() takes exactly two arguments")
	}
	return NewBoolDatum(strings.HasPrefix(vals[0].String(), vals[1].String())), nil
}

func fnContains(ctx *Context, args []Expr) (Datum, error) {
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("xpath: contains() takes exactly two arguments")
	}
	return NewBoolDatum(strings.Contains(vals[0].String(), vals[1].String())), nil
}

func fnSubstringBefore(ctx *Context, args []Expr) (Datum, error) {
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("xpath: substring-before() takes exactly two arguments")
	}
	s, sep := vals[0].String(), vals[1].String()
	if i := strings.Index(s, sep); i >= 0 {
		return NewLiteralDatum(s[:i]), nil
	}
	return NewLiteralDatum(""), nil
}

func fnSubstringAfter(ctx *Context, args []Expr) (Datum, error) {
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, fmt.Errorf("xpath: substring-after() takes exactly two arguments")
	}
	s, sep := vals[0].String(), vals[1].String()
	if i := strings.Index(s, sep); i >= 0 {
		return NewLiteralDatum(s[i+len(sep):]), nil
	}
	return NewLiteralDatum(""), nil
}

// fnSubstring implements XPath 1.0's 1-based, round-to-nearest substring
// semantics (§4.2), including negative/fractional start positions.
func fnSubstring(ctx *Context, args []Expr) (Datum, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("xpath: substring() takes two or three arguments")
	}
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	s := vals[0].String()
	start := round(vals[1].Number())
	runes := []rune(s)
	begin := start
	end := float64(len(runes)) + 1
	if len(vals) == 3 {
		end = start + round(vals[2].Number())
	}
	if begin < 1 {
		begin = 1
	}
	if end > float64(len(runes))+1 {
		end = float64(len(runes)) + 1
	}
	if begin >= end {
		return NewLiteralDatum(""), nil
	}
	return NewLiteralDatum(string(runes[int(begin)-1 : int(end)-1])), nil
}

func round(f float64) float64 {
	if math.IsNaN(f) {
		return f
	}
	return math.Floor(f + 0.5)
}

func fnStringLength(ctx *Context, args []Expr) (Datum, error) {
	var s string
	if len(args) == 0 {
		s = NodeStringValue(ctx.Node)
	} else {
		d, err := args[0].Eval(ctx)
		if err != nil {
			return nil, err
		}
		s = d.String()
	}
	return NewNumberDatum(float64(len([]rune(s)))), nil
}

func fnNormalizeSpace(ctx *Context, args []Expr) (Datum, error) {
	var s string
	if len(args) == 0 {
		s = NodeStringValue(ctx.Node)
	} else {
		d, err := args[0].Eval(ctx)
		if err != nil {
			return nil, err
		}
		s = d.String()
	}
	return NewLiteralDatum(strings.Join(strings.Fields(s), " ")), nil
}

func fnTranslate(ctx *Context, args []Expr) (Datum, error) {
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("xpath: translate() takes exactly three arguments")
	}
	s, from, to := vals[0].String(), []rune(vals[1].String()), []rune(vals[2].String())
	var b strings.Builder
	for _, r := range s {
		idx := -1
		for i, f := range from {
			if f == r {
				idx = i
				break
			}
		}
		if idx < 0 {
			b.WriteRune(r)
			continue
		}
		if idx < len(to) {
			b.WriteRune(to[idx])
		}
	}
	return NewLiteralDatum(b.String()), nil
}

func fnBoolean(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: boolean() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewBoolDatum(d.Boolean()), nil
}

func fnNot(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: not() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewBoolDatum(!d.Boolean()), nil
}

func fnTrue(ctx *Context, args []Expr) (Datum, error)  { return NewBoolDatum(true), nil }
func fnFalse(ctx *Context, args []Expr) (Datum, error) { return NewBoolDatum(false), nil }

func fnNumber(ctx *Context, args []Expr) (Datum, error) {
	if len(args) == 0 {
		return NewNumberDatum(numberFromString(NodeStringValue(ctx.Node))), nil
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewNumberDatum(d.Number()), nil
}

func fnSum(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: sum() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) {
		return nil, fmt.Errorf("xpath: sum() argument is not a node-set")
	}
	var total float64
	for _, n := range d.Nodeset() {
		total += numberFromString(NodeStringValue(n))
	}
	return NewNumberDatum(total), nil
}

func fnFloor(ctx *Context, args []Expr) (Datum, error) {
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewNumberDatum(math.Floor(d.Number())), nil
}

func fnCeiling(ctx *Context, args []Expr) (Datum, error) {
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewNumberDatum(math.Ceil(d.Number())), nil
}

func fnRound(ctx *Context, args []Expr) (Datum, error) {
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewNumberDatum(round(d.Number())), nil
}

// fnCurrent implements RFC 7950 §10.1.1's current(): the context node in
// effect when the surrounding must/when expression started evaluating,
// which stays fixed across any subsequent axis navigation.
func fnCurrent(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("xpath: current() takes no arguments")
	}
	return NewNodesetDatum([]XpathNode{ctx.Current}), nil
}

// fnDeref implements RFC 7950 §10.4.1: deref(node-set) evaluates its
// argument's string-value as if it were the leafref/instance-identifier
// path of the first node in the set, and returns the node-set that path
// resolves to starting from the referencing node.
func fnDeref(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: deref() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) || len(d.Nodeset()) == 0 {
		return NewNodesetDatum(nil), nil
	}
	n := d.Nodeset()[0]
	path, err := Compile(n.XValue())
	if err != nil {
		return nil, fmt.Errorf("xpath: deref(): %w", err)
	}
	return path.Eval(ctx.withNode(n, 1, 1))
}

func fnDerivedFrom(orSelf bool) builtinFunc {
	return func(ctx *Context, args []Expr) (Datum, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("xpath: derived-from() takes exactly two arguments")
		}
		vals, err := evalEach(ctx, args)
		if err != nil {
			return nil, err
		}
		resolver := ctx.identityResolver()
		if resolver == nil {
			return nil, fmt.Errorf("xpath: derived-from() used without an identity resolver")
		}
		return NewBoolDatum(resolver.IsDerivedFrom(vals[0].String(), vals[1].String(), orSelf)), nil
	}
}

// fnReMatch implements RFC 7950 §10.5.1: re-match(string, pattern) tests
// string against an XSD-regex pattern, anchored at both ends like a
// "pattern" type restriction.
func fnReMatch(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("xpath: re-match() takes exactly two arguments")
	}
	vals, err := evalEach(ctx, args)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile("^(?:" + vals[1].String() + ")$")
	if err != nil {
		return nil, fmt.Errorf("xpath: re-match(): %w", err)
	}
	return NewBoolDatum(re.MatchString(vals[0].String())), nil
}

// fnBitIsSet implements RFC 7950 §10.6.1: bit-is-set(node-set, bit-name).
func fnBitIsSet(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("xpath: bit-is-set() takes exactly two arguments")
	}
	nodeD, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	bitD, err := args[1].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(nodeD) || len(nodeD.Nodeset()) == 0 {
		return NewBoolDatum(false), nil
	}
	val := NodeStringValue(nodeD.Nodeset()[0])
	for _, name := range strings.Fields(val) {
		if name == bitD.String() {
			return NewBoolDatum(true), nil
		}
	}
	return NewBoolDatum(false), nil
}

// fnEnumValue implements RFC 7950 §10.7.1: enum-value(node-set) returns
// the integer value of an enumeration node's current assignment, or NaN
// if the argument doesn't resolve or isn't a known enum name.
func fnEnumValue(ctx *Context, args []Expr) (Datum, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("xpath: enum-value() takes exactly one argument")
	}
	d, err := args[0].Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) || len(d.Nodeset()) == 0 {
		return NewNumberDatum(math.NaN()), nil
	}
	resolver := ctx.identityResolver()
	if r, ok := resolver.(enumResolver); ok {
		if v, ok := r.EnumValue(d.Nodeset()[0].XValue()); ok {
			return NewNumberDatum(float64(v)), nil
		}
	}
	if v, err := strconv.Atoi(NodeStringValue(d.Nodeset()[0])); err == nil {
		return NewNumberDatum(float64(v)), nil
	}
	return NewNumberDatum(math.NaN()), nil
}

// enumResolver is an optional extension of IdentityResolver that schema-
// aware callers can implement so enum-value() reflects declared enum
// values rather than assuming the lexical text is itself the integer.
type enumResolver interface {
	EnumValue(name string) (int, bool)
}
