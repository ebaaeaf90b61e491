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

// Package validate runs the six-step constraint check RFC 7950 requires
// of a data tree — pattern-derivative presence, when, must, list
// key/unique/min-max, terminal-node type/leafref/identityref, and
// recursion — bridging the schema package's Pattern/WhenNode interfaces
// and the xpath package's evaluator to real instance.Node data.
package validate

import (
	"github.com/sdcio/yang-datamodel/instance"
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/xpath"
)

// xnode adapts one instance.Node, paired with the schema.Node
// describing it, to xpath.XpathNode.
type xnode struct {
	n  instance.Node
	sn schema.Node
	sd *library.SchemaData
}

func wrap(n instance.Node, sn schema.Node, sd *library.SchemaData) *xnode {
	return &xnode{n: n, sn: sn, sd: sd}
}

func (x *xnode) XParent() xpath.XpathNode {
	up, err := x.n.Up()
	if err != nil {
		return nil
	}
	parentSchema := x.sn.Parent()
	if parentSchema == nil {
		return nil
	}
	return wrap(up, parentSchema, x.sd)
}

func (x *xnode) XRoot() xpath.XpathNode {
	cur := xpath.XpathNode(x)
	for {
		p := cur.XParent()
		if p == nil {
			return cur
		}
		cur = p
	}
}

func (x *xnode) XChildren(name, namespace string) []xpath.XpathNode {
	obj, ok := x.n.Value().(*instance.ObjectValue)
	if !ok {
		return nil
	}
	in, ok := x.sn.(schema.InternalNode)
	if !ok {
		return nil
	}
	var names []string
	if name == "*" {
		names = obj.Names()
	} else {
		names = []string{name}
	}
	var out []xpath.XpathNode
	for _, mname := range names {
		v, ok := obj.Member(mname)
		if !ok {
			continue
		}
		childSchema := schema.FindDataChild(in, mname)
		if childSchema == nil {
			continue
		}
		if namespace != "" && childSchema.QName().Namespace != namespace {
			continue
		}
		memberNode, err := x.n.Member(mname)
		if err != nil {
			continue
		}
		if arr, ok := v.(*instance.ArrayValue); ok {
			for i := 0; i < arr.Len(); i++ {
				entryNode, err := memberNode.Entry(i)
				if err != nil {
					continue
				}
				out = append(out, wrap(entryNode, childSchema, x.sd))
			}
			continue
		}
		out = append(out, wrap(memberNode, childSchema, x.sd))
	}
	return out
}

func (x *xnode) XName() string      { return x.sn.QName().Local }
func (x *xnode) XNamespace() string { return x.sn.QName().Namespace }

func (x *xnode) XIsLeaf() bool {
	_, ok := x.sn.(*schema.Leaf)
	return ok
}

func (x *xnode) XIsLeafList() bool {
	_, ok := x.sn.(*schema.LeafList)
	return ok
}

func (x *xnode) XValue() string {
	t, err := terminalType(x.sn)
	if err != nil {
		return ""
	}
	s, err := t.CanonicalString(x.n.Value())
	if err != nil {
		return ""
	}
	return s
}

func (x *xnode) XListKeys() []xpath.XpathNodeKey {
	list, ok := x.sn.(*schema.List)
	if !ok {
		return nil
	}
	obj, ok := x.n.Value().(*instance.ObjectValue)
	if !ok {
		return nil
	}
	in, ok := x.sn.(schema.InternalNode)
	if !ok {
		return nil
	}
	var keys []xpath.XpathNodeKey
	for _, kname := range list.Keys {
		v, ok := obj.Member(kname)
		if !ok {
			continue
		}
		kn := schema.FindDataChild(in, kname)
		leaf, ok := kn.(*schema.Leaf)
		if !ok {
			continue
		}
		s, err := leaf.Type.CanonicalString(v)
		if err != nil {
			continue
		}
		keys = append(keys, xpath.XpathNodeKey{Name: kname, Value: s})
	}
	return keys
}

func terminalType(sn schema.Node) (interface {
	CanonicalString(interface{}) (string, error)
}, error) {
	switch n := sn.(type) {
	case *schema.Leaf:
		return n.Type, nil
	case *schema.LeafList:
		return n.Type, nil
	}
	return nil, NewNotScalarError(sn.QName().Local)
}

// emptyPrefixResolver resolves every XPath QName prefix to the empty
// (no) namespace. The schema package compiles when/must/leafref
// expressions without baking in a prefix table (xpath.Compile takes no
// resolver), so cross-module node tests inside an expression are not
// disambiguated at evaluation time; unprefixed node tests, by far the
// common case for must/when bodies written against the node's own
// module, resolve correctly regardless.
type emptyPrefixResolver struct{}

func (emptyPrefixResolver) ResolvePrefix(prefix string) (string, bool) { return "", prefix == "" }

// identityResolver answers derived-from()/derived-from-or-self() via the
// schema's own identity graph.
type identityResolver struct{ sd *library.SchemaData }

func (r identityResolver) IsDerivedFrom(value, baseQName string, orSelf bool) bool {
	v := parseQName(value)
	b := parseQName(baseQName)
	if orSelf && v == b {
		return true
	}
	return r.sd.DerivedFrom(v, b)
}

func parseQName(s string) library.QualName {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return library.QualName{Namespace: s[:i], Local: s[i+1:]}
		}
	}
	return library.QualName{Local: s}
}

// evalContext builds the xpath.Context a when/must/leafref expression
// attached to n (described by sn) should run in.
func evalContext(n instance.Node, sn schema.Node, sd *library.SchemaData) *xpath.Context {
	node := wrap(n, sn, sd)
	ctx := xpath.NewContext(node, emptyPrefixResolver{})
	return ctx.WithIdentityResolver(identityResolver{sd: sd})
}
