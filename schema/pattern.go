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

// Package schema builds a YANG schema tree out of a resolved library
// description, expressing each container/list/choice's set of legal
// children as a derivative pattern: a small algebra of regular-expression-
// like combinators (Member, Pair, Alternative, ChoicePattern, Conditional)
// whose Deriv method consumes one child name at a time. A node's children
// are exhaustively present iff the pattern left after deriving every
// supplied child name is Nullable.
package schema

// ContentType selects which of a node's members are visible: the
// "config true" subset, the "config false" subset, or both. A data tree
// built for operational state walks with All; one built for <edit-config>
// walks with Config.
type ContentType int

const (
	ContentConfig ContentType = 1 << iota
	ContentNonConfig
	ContentAll = ContentConfig | ContentNonConfig
)

func (c ContentType) matches(other ContentType) bool { return c&other != 0 }

// Pattern is a schema pattern: the set of child-name sequences a node's
// content model accepts, represented so that consuming one name produces
// the pattern for what may legally follow.
type Pattern interface {
	// Deriv returns the pattern remaining after consuming a child named x.
	Deriv(x string, ctype ContentType) Pattern
	// Nullable reports whether the pattern accepts the empty sequence,
	// i.e. whether no further mandatory members remain.
	Nullable(ctype ContentType) bool
	// Empty reports whether the pattern is (conditionally) the empty
	// pattern regardless of any input.
	Empty() bool
	// EvalWhen propagates when-condition evaluation against cnode into
	// every Conditional reachable from the receiver.
	EvalWhen(cnode WhenNode)
	// MandatoryMembers returns the member names the pattern requires, or
	// nil if that set cannot be determined statically (an Alternative
	// whose branches disagree).
	MandatoryMembers(ctype ContentType) []string
	String() string
}

// WhenNode is the minimal view of an instance a when-expression needs:
// enough to build a dummy child and hand the result to an xpath context.
// The `validate` package's schemaWhenNode satisfies this.
type WhenNode interface {
	PutMember(name string, placeholder bool) WhenNode
	EvalBool(whenExpr WhenExpr) bool
}

// WhenExpr isolates schema from a concrete xpath.Expr so pattern.go has
// no import-time dependency on the xpath package; Conditional just holds
// one and hands it back to WhenNode.EvalBool.
type WhenExpr interface{}

func optional(p Pattern) Pattern       { return CombineAlternative(empty{}, p) }
func optionalConfig(p Pattern) Pattern { return CombineAlternative(emptyConfig{}, p) }

type empty struct{}

func (empty) Deriv(x string, ctype ContentType) Pattern { return notAllowed{} }
func (empty) Nullable(ctype ContentType) bool           { return true }
func (empty) Empty() bool                               { return true }
func (empty) EvalWhen(cnode WhenNode)                   {}
func (empty) MandatoryMembers(ctype ContentType) []string { return []string{} }
func (empty) String() string                            { return "Empty" }

// Empty is the pattern accepting only the empty sequence.
func Empty() Pattern { return empty{} }

type emptyConfig struct{}

func (emptyConfig) Deriv(x string, ctype ContentType) Pattern { return notAllowed{} }
func (emptyConfig) Nullable(ctype ContentType) bool           { return ctype.matches(ContentConfig) }
func (emptyConfig) Empty() bool                               { return false }
func (emptyConfig) EvalWhen(cnode WhenNode)                   {}
func (emptyConfig) MandatoryMembers(ctype ContentType) []string {
	if ctype.matches(ContentNonConfig) {
		return []string{}
	}
	return nil
}
func (emptyConfig) String() string { return "EmptyConfig" }

// EmptyConfig is the pattern nullable only when validating configuration.
func EmptyConfig() Pattern { return emptyConfig{} }

type notAllowed struct{}

func (n notAllowed) Deriv(x string, ctype ContentType) Pattern   { return n }
func (notAllowed) Nullable(ctype ContentType) bool               { return false }
func (notAllowed) Empty() bool                                   { return false }
func (notAllowed) EvalWhen(cnode WhenNode)                       {}
func (notAllowed) MandatoryMembers(ctype ContentType) []string   { return nil }
func (notAllowed) String() string                                { return "NotAllowed" }

// NotAllowed is the pattern accepting nothing at all.
func NotAllowed() Pattern { return notAllowed{} }

// Conditional gates a pattern on a "when" expression, evaluated once per
// instance via EvalWhen before Nullable/Deriv/Empty are consulted.
type Conditional struct {
	Pattern Pattern
	When    WhenExpr
	valWhen bool
	hasWhen bool
}

func NewConditional(p Pattern, when WhenExpr) *Conditional {
	return &Conditional{Pattern: p, When: when}
}

func (c *Conditional) checkWhen() bool { return c.When == nil || c.valWhen }

func (c *Conditional) EvalWhen(cnode WhenNode) {
	if c.When != nil {
		c.valWhen = cnode.EvalBool(c.When)
		c.hasWhen = true
	}
	c.Pattern.EvalWhen(cnode)
}

func (c *Conditional) Empty() bool { return c.When != nil && !c.valWhen }

func (c *Conditional) Nullable(ctype ContentType) bool {
	return !c.checkWhen() || c.Pattern.Nullable(ctype)
}

func (c *Conditional) Deriv(x string, ctype ContentType) Pattern {
	if c.checkWhen() {
		return c.Pattern.Deriv(x, ctype)
	}
	return notAllowed{}
}

func (c *Conditional) MandatoryMembers(ctype ContentType) []string {
	if c.checkWhen() {
		return c.Pattern.MandatoryMembers(ctype)
	}
	return []string{}
}

func (c *Conditional) String() string { return c.Pattern.String() }

// Member is a single named child, active only for the given content type
// and (if present) while its own when-condition holds.
type Member struct {
	Name    string
	CType   ContentType
	When    WhenExpr
	valWhen bool
}

func NewMember(name string, ctype ContentType, when WhenExpr) *Member {
	return &Member{Name: name, CType: ctype, When: when}
}

func (m *Member) active(ctype ContentType) bool {
	return m.CType.matches(ctype) && (m.When == nil || m.valWhen)
}

func (m *Member) EvalWhen(cnode WhenNode) {
	if m.When != nil {
		dummy := cnode.PutMember(m.Name, true)
		m.valWhen = dummy.EvalBool(m.When)
	}
}

func (m *Member) Empty() bool { return false }

func (m *Member) Nullable(ctype ContentType) bool { return !m.active(ctype) }

func (m *Member) Deriv(x string, ctype ContentType) Pattern {
	if m.Name == x && m.active(ctype) {
		return empty{}
	}
	return notAllowed{}
}

func (m *Member) MandatoryMembers(ctype ContentType) []string {
	if m.active(ctype) {
		return []string{m.Name}
	}
	return []string{}
}

func (m *Member) String() string { return "member '" + m.Name + "'" }

// Alternative is "p or q": either pattern may be taken, used for optional
// members and for the disjunction inside a choice's cases.
type Alternative struct {
	Left, Right Pattern
}

// CombineAlternative drops NotAllowed branches, the same short-circuit
// yangson's Alternative.combine applies so trees don't grow NotAllowed
// chaff as cases are merged in.
func CombineAlternative(p, q Pattern) Pattern {
	if _, ok := p.(notAllowed); ok {
		return q
	}
	if _, ok := q.(notAllowed); ok {
		return p
	}
	return &Alternative{Left: p, Right: q}
}

func (a *Alternative) EvalWhen(cnode WhenNode) {
	a.Left.EvalWhen(cnode)
	a.Right.EvalWhen(cnode)
}

func (a *Alternative) Empty() bool { return false }

func (a *Alternative) Nullable(ctype ContentType) bool {
	return a.Left.Nullable(ctype) || a.Right.Nullable(ctype)
}

func (a *Alternative) Deriv(x string, ctype ContentType) Pattern {
	return CombineAlternative(a.Left.Deriv(x, ctype), a.Right.Deriv(x, ctype))
}

func (a *Alternative) MandatoryMembers(ctype ContentType) []string {
	lm := a.Left.MandatoryMembers(ctype)
	rm := a.Right.MandatoryMembers(ctype)
	if lm == nil || rm == nil || len(lm) != len(rm) {
		return nil
	}
	inLeft := make(map[string]bool, len(lm))
	for _, n := range lm {
		inLeft[n] = true
	}
	for _, n := range rm {
		if !inLeft[n] {
			return nil
		}
	}
	return lm
}

func (a *Alternative) String() string { return a.Left.String() + " or " + a.Right.String() }

// ChoicePattern is a "choice" statement's content model: the alternative
// of its cases, tagged with the choice's own name for mandatory-member
// reporting. Nullable and Deriv delegate to the cases; the choice's own
// content type is not checked here.
type ChoicePattern struct {
	Alternative
	Name string
}

func NewChoicePattern(cases Pattern, name string) *ChoicePattern {
	return &ChoicePattern{Alternative: Alternative{Left: cases, Right: notAllowed{}}, Name: name}
}

func (c *ChoicePattern) Nullable(ctype ContentType) bool { return c.Alternative.Nullable(ctype) }

func (c *ChoicePattern) String() string { return "choice " + c.Name }

// Pair is "p then q": both patterns' members may appear, in any relative
// order — schema trees have no sequencing requirement between sibling
// nodes, so Pair.Deriv tries consuming x from either side.
type Pair struct {
	Left, Right Pattern
}

func CombinePair(p, q Pattern) Pattern {
	if p.Empty() {
		return q
	}
	if q.Empty() {
		return p
	}
	if _, ok := p.(notAllowed); ok {
		return p
	}
	if _, ok := q.(notAllowed); ok {
		return q
	}
	return &Pair{Left: p, Right: q}
}

func (p *Pair) EvalWhen(cnode WhenNode) {
	p.Left.EvalWhen(cnode)
	p.Right.EvalWhen(cnode)
}

func (p *Pair) Empty() bool { return false }

func (p *Pair) Nullable(ctype ContentType) bool {
	return p.Left.Nullable(ctype) && p.Right.Nullable(ctype)
}

func (p *Pair) Deriv(x string, ctype ContentType) Pattern {
	return CombineAlternative(
		CombinePair(p.Left.Deriv(x, ctype), p.Right),
		CombinePair(p.Right.Deriv(x, ctype), p.Left),
	)
}

func (p *Pair) MandatoryMembers(ctype ContentType) []string {
	lm := p.Left.MandatoryMembers(ctype)
	rm := p.Right.MandatoryMembers(ctype)
	if lm == nil {
		return rm
	}
	if rm == nil {
		return lm
	}
	return append(append([]string{}, lm...), rm...)
}

func (p *Pair) String() string { return p.Left.String() }

// Sequence folds CombinePair over members in declaration order, the
// pattern a container/list/case builds for its direct children.
func Sequence(members ...Pattern) Pattern {
	p := Pattern(empty{})
	for _, m := range members {
		p = CombinePair(p, m)
	}
	return p
}
