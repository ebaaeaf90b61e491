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

import "github.com/sdcio/yang-datamodel/xpath"

// AssignPatterns computes and attaches every InternalNode's content-model
// Pattern under root, then resolves leafref targets against the now-
// complete tree. Build calls this itself; it is exported for tests and
// tools that assemble a schema tree by hand, outside the statement/
// library pipeline, and still need a tree ready for validate.Validate.
func AssignPatterns(root *SchemaRoot) {
	b := &builder{}
	b.assignPatterns(root)
	resolveLeafrefTargets(root)
}

// assignPatterns walks the built tree bottom-up, giving every
// InternalNode a Pattern describing its legal children: a Choice gets a
// ChoicePattern over its Cases, everything else gets the Sequence of its
// children's member patterns.
func (b *builder) assignPatterns(n Node) {
	in, ok := n.(InternalNode)
	if !ok {
		return
	}
	for _, child := range in.Children() {
		b.assignPatterns(child)
	}

	if ch, isChoice := n.(*Choice); isChoice {
		alt := Pattern(NotAllowed())
		for _, cs := range ch.Cases {
			alt = CombineAlternative(alt, casePattern(cs))
		}
		pat := NewChoicePattern(alt, ch.QName().Local)
		if ch.Mandatory {
			in.setPattern(pat)
		} else {
			in.setPattern(optional(pat))
		}
		return
	}

	var members []Pattern
	for _, child := range in.Children() {
		members = append(members, memberPattern(child))
	}
	pat := Sequence(members...)
	in.setPattern(pat)
}

// casePattern is a case's own member sequence, gated by its "when" if one
// is present.
func casePattern(c *Case) Pattern {
	var members []Pattern
	for _, child := range c.Children() {
		members = append(members, memberPattern(child))
	}
	pat := Sequence(members...)
	if c.When != nil {
		return NewConditional(pat, c.When)
	}
	return pat
}

// memberPattern is the pattern contributed by a single child as seen from
// its parent's member sequence: a Member tagged with the child's own
// content type and when-condition, wrapped optional unless the child is
// itself mandatory.
func memberPattern(n Node) Pattern {
	name := n.QName().Local
	ctype := NodeContentType(n)

	switch v := n.(type) {
	case *Leaf:
		m := NewMember(name, ctype, toWhenExpr(v.When))
		if v.Mandatory {
			return m
		}
		return optional(m)
	case *LeafList:
		m := NewMember(name, ctype, toWhenExpr(v.When))
		if v.MinElements > 0 {
			return m
		}
		return optional(m)
	case *List:
		m := NewMember(name, ctype, toWhenExpr(v.When))
		if v.MinElements > 0 {
			return m
		}
		return optional(m)
	case *Container:
		m := NewMember(name, ctype, toWhenExpr(v.When))
		// A non-presence container is mandatory only when its own
		// (already-assigned) pattern requires some child.
		if p := v.Pattern(); v.Presence || v.When != nil || p == nil || p.Nullable(ctype) {
			return optional(m)
		}
		return m
	case *Choice:
		// A choice never itself appears as a member name in instance
		// data; its own (already-assigned, by assignPatterns' post-order
		// walk) pattern ranges directly over whichever case is present.
		return v.Pattern()
	case *Anydata, *Anyxml:
		return optional(NewMember(name, ctype, nil))
	default:
		return optional(NewMember(name, ctype, nil))
	}
}

func toWhenExpr(w xpath.Expr) WhenExpr {
	if w == nil {
		return nil
	}
	return w
}
