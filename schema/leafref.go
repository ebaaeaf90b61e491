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
	"strings"

	"github.com/sdcio/yang-datamodel/xpath"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// resolveLeafrefTargets walks the fully assembled tree once, giving every
// leafref-typed leaf and leaf-list the Type of the leaf its path names, so
// a leafref's cooked value is always produced in the target's native
// representation rather than falling back to string. This runs exactly
// once, right after the tree (and its Patterns) are built: schema.Node is
// shared, read-only state across however many validations run
// concurrently against it afterwards, so resolving per validate call
// would mean mutating that shared state from multiple goroutines at once.
func resolveLeafrefTargets(root *SchemaRoot) {
	walkNodes(root, func(n Node) {
		var typ *ytypes.Type
		switch t := n.(type) {
		case *Leaf:
			typ = &t.Type
		case *LeafList:
			typ = &t.Type
		default:
			return
		}
		lr, ok := (*typ).(*ytypes.Leafref)
		if !ok || lr.Target != nil {
			return
		}
		if target := resolveLeafrefPath(n, lr.Path); target != nil {
			lr.Target = target.Type
		}
	})
}

func walkNodes(n Node, visit func(Node)) {
	visit(n)
	if in, ok := n.(InternalNode); ok {
		for _, c := range in.Children() {
			walkNodes(c, visit)
		}
	}
}

// resolveLeafrefPath walks a leafref's compiled path expression against the
// schema tree itself, starting from the node the leafref type belongs to,
// and returns the *Leaf it lands on, or nil if the path doesn't resolve to
// one (an unsupported expression shape, a dangling reference, or a target
// that isn't a leaf). Predicates along the way (typically a list's
// key-equals-current() test) are ignored: they narrow which instance a
// step selects at validate time, never which schema node the path denotes.
func resolveLeafrefPath(n Node, path xpath.Expr) *Leaf {
	if path == nil {
		return nil
	}
	var steps []xpath.LocationStep
	cur := n
	switch p := path.(type) {
	case *xpath.LocationPath:
		steps = p.Steps
		if p.Absolute {
			cur = rootOf(n)
		}
	case *xpath.FilterPath:
		// Primary is a current() call or similar; the leaf itself is
		// already the right starting point for a relative path.
		steps = p.Steps
	default:
		return nil
	}

	for _, step := range steps {
		switch step.Axis {
		case xpath.AxisParent:
			if cur == nil {
				return nil
			}
			cur = cur.Parent()
		case xpath.AxisChild, xpath.AxisSelf:
			name, ok := stepName(step)
			if !ok {
				return nil
			}
			in, ok := cur.(InternalNode)
			if !ok {
				return nil
			}
			cur, ok = in.Children()[name]
			if !ok {
				return nil
			}
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	leaf, _ := cur.(*Leaf)
	return leaf
}

// stepName extracts a location step's plain local name, stripping any
// module prefix, and rejects wildcards and node-type tests (node(),
// text(), ...) that a leafref path has no business using.
func stepName(step xpath.LocationStep) (string, bool) {
	s := step.Test.String()
	if s == "" || strings.HasSuffix(s, "()") {
		return "", false
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	if s == "*" {
		return "", false
	}
	return s, true
}

func rootOf(n Node) Node {
	cur := n
	for {
		p := cur.Parent()
		if p == nil {
			return cur
		}
		cur = p
	}
}
