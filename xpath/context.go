// Copyright (c) 2017-2021, AT&T Intellectual Property. All rights reserved
//
// SPDX-License-Identifier: MPL-2.0

package xpath

// PrefixResolver maps an XPath QName prefix to the namespace it denotes in
// whatever schema the expression was compiled against. The xpath package
// has no notion of modules or imports of its own; callers that compile
// expressions against a YANG schema supply a resolver backed by it.
type PrefixResolver interface {
	ResolvePrefix(prefix string) (namespace string, ok bool)
}

// Context carries everything a compiled Expr needs to evaluate: the node
// it runs against, that node's position and the size of the node-set it
// came from (for position()/last()), the "current()" node fixed at the
// point the expression started (RFC 7950 §10.1.1), and prefix resolution
// for QNames appearing in node tests or identityref-shaped function
// arguments.
type Context struct {
	Node     XpathNode
	Position int
	Size     int
	Current  XpathNode
	Prefixes PrefixResolver
	Vars     map[string]Datum
	Identity IdentityResolver
}

// NewContext builds the initial evaluation context for a stand-alone
// expression: node is both the context node and current().
func NewContext(node XpathNode, resolver PrefixResolver) *Context {
	return &Context{Node: node, Position: 1, Size: 1, Current: node, Prefixes: resolver}
}

func (c *Context) withNode(n XpathNode, pos, size int) *Context {
	cp := *c
	cp.Node = n
	cp.Position = pos
	cp.Size = size
	return &cp
}

func (c *Context) resolveNamespace(prefix string) string {
	if prefix == "" {
		return ""
	}
	if c.Prefixes == nil {
		return ""
	}
	ns, _ := c.Prefixes.ResolvePrefix(prefix)
	return ns
}
