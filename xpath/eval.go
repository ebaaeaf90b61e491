// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package xpath

import (
	"fmt"
	"strings"
)

func (t nameTest) matches(ctx *Context, n XpathNode) bool {
	if t.local == "*" {
		if t.prefix == "" {
			return true
		}
		ns := ctx.resolveNamespace(t.prefix)
		return ns == "" || n.XNamespace() == ns
	}
	if n.XName() != t.local {
		return false
	}
	if t.prefix == "" {
		return true
	}
	// A prefix the context cannot resolve does not narrow the match.
	ns := ctx.resolveNamespace(t.prefix)
	return ns == "" || n.XNamespace() == ns
}

func (t nameTest) String() string {
	if t.prefix != "" {
		return t.prefix + ":" + t.local
	}
	return t.local
}

func (t nodeTypeTest) matches(ctx *Context, n XpathNode) bool {
	// YANG instance/schema trees expose only element-shaped nodes; text(),
	// comment() and processing-instruction() never match, and node()
	// matches everything, per RFC 7950's data model having no XML-only
	// node kinds of its own.
	return t.kind == "node"
}

func (t nodeTypeTest) String() string { return t.kind + "()" }

func axisName(a Axis) string {
	switch a {
	case AxisChild:
		return "child"
	case AxisSelf:
		return "self"
	case AxisParent:
		return "parent"
	case AxisAncestor:
		return "ancestor"
	case AxisAncestorOrSelf:
		return "ancestor-or-self"
	case AxisDescendant:
		return "descendant"
	case AxisDescendantOrSelf:
		return "descendant-or-self"
	case AxisFollowingSibling:
		return "following-sibling"
	case AxisPrecedingSibling:
		return "preceding-sibling"
	case AxisAttribute:
		return "attribute"
	}
	return "?"
}

// axisNodes returns the raw node set reached from n by axis, ignoring the
// node test and predicates. YANG trees have no attribute nodes;
// following/preceding-sibling use the order in which the parent's
// XChildren returns its children.
func axisNodes(n XpathNode, axis Axis) []XpathNode {
	switch axis {
	case AxisSelf:
		return []XpathNode{n}
	case AxisParent:
		if p := n.XParent(); p != nil {
			return []XpathNode{p}
		}
		return nil
	case AxisChild:
		return n.XChildren("*", "")
	case AxisAncestor, AxisAncestorOrSelf:
		var out []XpathNode
		if axis == AxisAncestorOrSelf {
			out = append(out, n)
		}
		for cur := n.XParent(); cur != nil; cur = cur.XParent() {
			out = append(out, cur)
		}
		return out
	case AxisDescendant, AxisDescendantOrSelf:
		var out []XpathNode
		if axis == AxisDescendantOrSelf {
			out = append(out, n)
		}
		var walk func(XpathNode)
		walk = func(cur XpathNode) {
			for _, c := range cur.XChildren("*", "") {
				out = append(out, c)
				walk(c)
			}
		}
		walk(n)
		return out
	case AxisFollowingSibling, AxisPrecedingSibling:
		p := n.XParent()
		if p == nil {
			return nil
		}
		siblings := p.XChildren("*", "")
		idx := -1
		for i, s := range siblings {
			if s == n {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		if axis == AxisFollowingSibling {
			return siblings[idx+1:]
		}
		return siblings[:idx]
	case AxisAttribute:
		return nil
	}
	return nil
}

func (s LocationStep) eval(ctx *Context, from []XpathNode) ([]XpathNode, error) {
	var candidates []XpathNode
	seen := make(map[XpathNode]bool)
	for _, n := range from {
		for _, c := range axisNodes(n, s.Axis) {
			if !s.Test.matches(ctx, c) {
				continue
			}
			if seen[c] {
				continue
			}
			seen[c] = true
			candidates = append(candidates, c)
		}
	}
	if len(s.Predicates) == 0 {
		return candidates, nil
	}

	reverse := s.Axis == AxisAncestor || s.Axis == AxisAncestorOrSelf ||
		s.Axis == AxisPrecedingSibling
	for _, pred := range s.Predicates {
		var kept []XpathNode
		size := len(candidates)
		for i, c := range candidates {
			pos := i + 1
			if reverse {
				pos = size - i
			}
			pctx := ctx.withNode(c, pos, size)
			d, err := pred.Eval(pctx)
			if err != nil {
				return nil, err
			}
			if predicateTrue(d, pos) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	return candidates, nil
}

// predicateTrue applies XPath 1.0's special predicate-truth rule: a
// number predicate tests position equality, everything else uses
// Datum.Boolean().
func predicateTrue(d Datum, pos int) bool {
	if d.TypeName() == "number" {
		return d.Number() == float64(pos)
	}
	return d.Boolean()
}

func (lp *LocationPath) Eval(ctx *Context) (Datum, error) {
	var from []XpathNode
	if lp.Absolute {
		from = []XpathNode{ctx.Node.XRoot()}
	} else {
		from = []XpathNode{ctx.Node}
	}
	nodes := from
	for _, step := range lp.Steps {
		var err error
		nodes, err = step.eval(ctx, nodes)
		if err != nil {
			return nil, err
		}
	}
	return NewNodesetDatum(sortDocumentOrder(nodes)), nil
}

func (lp *LocationPath) String() string {
	var b strings.Builder
	if lp.Absolute {
		b.WriteByte('/')
	}
	for i, s := range lp.Steps {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(axisName(s.Axis))
		b.WriteString("::")
		b.WriteString(s.Test.String())
		for _, pr := range s.Predicates {
			b.WriteByte('[')
			b.WriteString(pr.String())
			b.WriteByte(']')
		}
	}
	return b.String()
}

func (fe *FilterExpr) Eval(ctx *Context) (Datum, error) {
	d, err := fe.Primary.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if len(fe.Predicates) == 0 {
		return d, nil
	}
	nodes := d.Nodeset()
	size := len(nodes)
	var kept []XpathNode
	for i, n := range nodes {
		pctx := ctx.withNode(n, i+1, size)
		ok := true
		for _, pred := range fe.Predicates {
			pd, err := pred.Eval(pctx)
			if err != nil {
				return nil, err
			}
			if !predicateTrue(pd, i+1) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, n)
		}
	}
	return NewNodesetDatum(kept), nil
}

func (fe *FilterExpr) String() string { return fe.Primary.String() + "[...]" }

func (fp *FilterPath) Eval(ctx *Context) (Datum, error) {
	d, err := fp.Primary.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if !IsNodeset(d) {
		return nil, fmt.Errorf("xpath: %s does not evaluate to a node-set", fp.Primary.String())
	}
	nodes := d.Nodeset()
	for _, step := range fp.Steps {
		nodes, err = step.eval(ctx, nodes)
		if err != nil {
			return nil, err
		}
	}
	return NewNodesetDatum(sortDocumentOrder(nodes)), nil
}

func (fp *FilterPath) String() string { return fp.Primary.String() + "/..." }

func (u *UnionExpr) Eval(ctx *Context) (Datum, error) {
	seen := make(map[XpathNode]bool)
	var out []XpathNode
	for _, part := range u.Parts {
		d, err := part.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if !IsNodeset(d) {
			return nil, fmt.Errorf("xpath: union operand %s is not a node-set", part.String())
		}
		for _, n := range d.Nodeset() {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return NewNodesetDatum(sortDocumentOrder(out)), nil
}

func (u *UnionExpr) String() string {
	parts := make([]string, len(u.Parts))
	for i, p := range u.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " | ")
}

func (n *NumberLiteral) Eval(ctx *Context) (Datum, error) { return NewNumberDatum(n.Value), nil }
func (n *NumberLiteral) String() string                  { return fmt.Sprintf("%g", n.Value) }

func (s *StringLiteral) Eval(ctx *Context) (Datum, error) { return NewLiteralDatum(s.Value), nil }
func (s *StringLiteral) String() string                   { return "'" + s.Value + "'" }

func (v *VariableRef) Eval(ctx *Context) (Datum, error) {
	d, ok := ctx.Vars[v.Name]
	if !ok {
		return nil, fmt.Errorf("xpath: undefined variable $%s", v.Name)
	}
	return d, nil
}
func (v *VariableRef) String() string { return "$" + v.Name }

func (u *UnaryMinusExpr) Eval(ctx *Context) (Datum, error) {
	d, err := u.X.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return NewNumberDatum(-d.Number()), nil
}
func (u *UnaryMinusExpr) String() string { return "-" + u.X.String() }

func (b *BinaryExpr) String() string { return b.Left.String() + " " + b.Op + " " + b.Right.String() }

func (b *BinaryExpr) Eval(ctx *Context) (Datum, error) {
	switch b.Op {
	case "and":
		l, err := b.Left.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if !l.Boolean() {
			return NewBoolDatum(false), nil
		}
		r, err := b.Right.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return NewBoolDatum(r.Boolean()), nil
	case "or":
		l, err := b.Left.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if l.Boolean() {
			return NewBoolDatum(true), nil
		}
		r, err := b.Right.Eval(ctx)
		if err != nil {
			return nil, err
		}
		return NewBoolDatum(r.Boolean()), nil
	}

	l, err := b.Left.Eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := b.Right.Eval(ctx)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "=", "!=":
		return NewBoolDatum(evalEquality(l, r, b.Op == "!=")), nil
	case "<", "<=", ">", ">=":
		return NewBoolDatum(evalRelational(l, r, b.Op)), nil
	case "+":
		return NewNumberDatum(l.Number() + r.Number()), nil
	case "-":
		return NewNumberDatum(l.Number() - r.Number()), nil
	case "*":
		return NewNumberDatum(l.Number() * r.Number()), nil
	case "div":
		return NewNumberDatum(l.Number() / r.Number()), nil
	case "mod":
		lf, rf := l.Number(), r.Number()
		return NewNumberDatum(float64(int64(lf) % int64(rf))), nil
	}
	return nil, fmt.Errorf("xpath: unknown operator %q", b.Op)
}

// evalEquality implements XPath 1.0 §3.4's node-set comparison rules: if
// either side is a node-set, the comparison is true if it holds for some
// node's string-value; otherwise values are compared after converting
// both to a common type driven by whichever side is not a string.
func evalEquality(l, r Datum, negate bool) bool {
	var eq bool
	switch {
	case IsNodeset(l) && IsNodeset(r):
		eq = anyStringMatch(l.(interface{ stringValues() []string }).stringValues(),
			r.(interface{ stringValues() []string }).stringValues())
	case IsNodeset(l):
		eq = nodesetMatchesScalar(l, r)
	case IsNodeset(r):
		eq = nodesetMatchesScalar(r, l)
	case l.TypeName() == "boolean" || r.TypeName() == "boolean":
		eq = l.Boolean() == r.Boolean()
	case l.TypeName() == "number" || r.TypeName() == "number":
		eq = l.Number() == r.Number()
	default:
		eq = l.String() == r.String()
	}
	if negate {
		return !eq
	}
	return eq
}

func anyStringMatch(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	for _, s := range a {
		if set[s] {
			return true
		}
	}
	return false
}

func nodesetMatchesScalar(ns, scalar Datum) bool {
	nsv := ns.(interface{ stringValues() []string }).stringValues()
	switch scalar.TypeName() {
	case "number":
		for _, s := range nsv {
			if numberFromString(s) == scalar.Number() {
				return true
			}
		}
	case "boolean":
		return ns.Boolean() == scalar.Boolean()
	default:
		for _, s := range nsv {
			if s == scalar.String() {
				return true
			}
		}
	}
	return false
}

func evalRelational(l, r Datum, op string) bool {
	lf, rf := l.Number(), r.Number()
	switch op {
	case "<":
		return lf < rf
	case "<=":
		return lf <= rf
	case ">":
		return lf > rf
	case ">=":
		return lf >= rf
	}
	return false
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

func (f *FunctionCall) Eval(ctx *Context) (Datum, error) {
	fn, ok := builtinFunctions[f.Name]
	if !ok {
		return nil, fmt.Errorf("xpath: unknown function %s()", f.Name)
	}
	return fn(ctx, f.Args)
}
