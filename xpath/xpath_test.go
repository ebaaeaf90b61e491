// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package xpath

import "testing"

// fakeNode is a minimal in-memory XpathNode tree for exercising the
// parser/evaluator without a real schema or instance tree.
type fakeNode struct {
	name     string
	ns       string
	value    string
	isLeaf   bool
	parent   *fakeNode
	children []*fakeNode
}

func (n *fakeNode) XParent() XpathNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) XRoot() XpathNode {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

func (n *fakeNode) XChildren(name, namespace string) []XpathNode {
	var out []XpathNode
	for _, c := range n.children {
		if name != "*" && c.name != name {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (n *fakeNode) XName() string             { return n.name }
func (n *fakeNode) XNamespace() string        { return n.ns }
func (n *fakeNode) XValue() string            { return n.value }
func (n *fakeNode) XIsLeaf() bool             { return n.isLeaf }
func (n *fakeNode) XIsLeafList() bool         { return false }
func (n *fakeNode) XListKeys() []XpathNodeKey { return nil }

func buildTestTree() *fakeNode {
	root := &fakeNode{name: "/", ns: "urn:test"}
	iface := &fakeNode{name: "interfaces", ns: "urn:test", parent: root}
	root.children = []*fakeNode{iface}
	eth0 := &fakeNode{name: "interface", ns: "urn:test", parent: iface}
	eth1 := &fakeNode{name: "interface", ns: "urn:test", parent: iface}
	iface.children = []*fakeNode{eth0, eth1}
	eth0.children = []*fakeNode{
		{name: "name", ns: "urn:test", value: "eth0", isLeaf: true, parent: eth0},
		{name: "mtu", ns: "urn:test", value: "1500", isLeaf: true, parent: eth0},
	}
	eth1.children = []*fakeNode{
		{name: "name", ns: "urn:test", value: "eth1", isLeaf: true, parent: eth1},
		{name: "mtu", ns: "urn:test", value: "9000", isLeaf: true, parent: eth1},
	}
	return root
}

func evalExpr(t *testing.T, node XpathNode, expr string) Datum {
	t.Helper()
	e, err := Compile(expr)
	if err != nil {
		t.Fatalf("Compile(%q): %v", expr, err)
	}
	d, err := e.Eval(NewContext(node, nil))
	if err != nil {
		t.Fatalf("Eval(%q): %v", expr, err)
	}
	return d
}

func TestLocationPathChildAxis(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "/interfaces/interface")
	if !IsNodeset(d) {
		t.Fatalf("expected a node-set")
	}
	if got := len(d.Nodeset()); got != 2 {
		t.Fatalf("got %d interfaces, want 2", got)
	}
}

func TestPredicateEquality(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "/interfaces/interface[name='eth1']/mtu")
	nodes := d.Nodeset()
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].XValue() != "9000" {
		t.Fatalf("got mtu %q, want 9000", nodes[0].XValue())
	}
}

func TestPositionPredicate(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "/interfaces/interface[2]/name")
	nodes := d.Nodeset()
	if len(nodes) != 1 || nodes[0].XValue() != "eth1" {
		t.Fatalf("got %v, want eth1", d.String())
	}
}

func TestCountAndComparison(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "count(/interfaces/interface) = 2")
	if !d.Boolean() {
		t.Fatalf("expected count() = 2 to be true")
	}
}

func TestNumericComparisonOverNodeset(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "/interfaces/interface[mtu > 5000]/name")
	nodes := d.Nodeset()
	if len(nodes) != 1 || nodes[0].XValue() != "eth1" {
		t.Fatalf("got %v, want eth1", d.String())
	}
}

func TestStringFunctions(t *testing.T) {
	root := buildTestTree()
	if d := evalExpr(t, root, "concat('a', 'b', 'c')"); d.String() != "abc" {
		t.Fatalf("concat: got %q", d.String())
	}
	if d := evalExpr(t, root, "substring('interfaces', 1, 4)"); d.String() != "inte" {
		t.Fatalf("substring: got %q", d.String())
	}
	if d := evalExpr(t, root, "string-length('eth0')"); d.Number() != 4 {
		t.Fatalf("string-length: got %v", d.Number())
	}
}

func TestCurrentFunction(t *testing.T) {
	root := buildTestTree()
	eth1 := root.children[0].children[1]
	e, err := Compile("current()/name")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	d, err := e.Eval(NewContext(eth1, nil))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	nodes := d.Nodeset()
	if len(nodes) != 1 || nodes[0].XValue() != "eth1" {
		t.Fatalf("got %v, want eth1", d.String())
	}
}

func TestReMatchFunction(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, `re-match('eth0', '[a-z]+[0-9]')`)
	if !d.Boolean() {
		t.Fatalf("expected re-match to succeed")
	}
	d = evalExpr(t, root, `re-match('ETH0', '[a-z]+[0-9]')`)
	if d.Boolean() {
		t.Fatalf("expected re-match to fail on uppercase input")
	}
}

type fakeIdentityResolver struct{}

func (fakeIdentityResolver) IsDerivedFrom(value, base string, orSelf bool) bool {
	return value == "test:tcp" && base == "test:transport-protocol"
}

func TestDerivedFromFunction(t *testing.T) {
	e, err := Compile(`derived-from(., 'test:transport-protocol')`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	leaf := &fakeNode{name: "proto", value: "test:tcp", isLeaf: true}
	ctx := NewContext(leaf, nil).WithIdentityResolver(fakeIdentityResolver{})
	d, err := e.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !d.Boolean() {
		t.Fatalf("expected derived-from to report true")
	}
}

func TestUnionOfPaths(t *testing.T) {
	root := buildTestTree()
	d := evalExpr(t, root, "/interfaces/interface[1]/name | /interfaces/interface[2]/name")
	if len(d.Nodeset()) != 2 {
		t.Fatalf("got %d nodes, want 2", len(d.Nodeset()))
	}
}
