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
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/xpath"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// Node is the common interface every schema node variant satisfies.
type Node interface {
	QName() library.QualName
	Parent() Node
	Config() bool
	Description() string
	setParent(Node)
}

type base struct {
	qname       library.QualName
	parent      Node
	config      bool
	description string
}

func (b *base) QName() library.QualName { return b.qname }
func (b *base) Parent() Node            { return b.parent }
func (b *base) Config() bool            { return b.config }
func (b *base) Description() string     { return b.description }
func (b *base) setParent(p Node)        { b.parent = p }

// InternalNode is any schema node that has children validated through a
// Pattern: Container, List, Choice, Case, and the synthetic SchemaRoot.
type InternalNode interface {
	Node
	Children() map[string]Node
	Pattern() Pattern
	setPattern(Pattern)
	setChild(Node)
}

type internal struct {
	base
	children map[string]Node
	pattern  Pattern
}

func (i *internal) Children() map[string]Node { return i.children }
func (i *internal) Pattern() Pattern           { return i.pattern }
func (i *internal) setPattern(p Pattern)       { i.pattern = p }

func (i *internal) setChild(n Node) {
	if i.children == nil {
		i.children = make(map[string]Node)
	}
	i.children[n.QName().Local] = n
}

// Container is RFC 7950's "container" data node.
type Container struct {
	internal
	Presence bool
	When     xpath.Expr
	Must     []MustConstraint
}

// List is RFC 7950's "list" data node.
type List struct {
	internal
	Keys          []string
	Unique        [][]string
	MinElements   int
	MaxElements   int // 0 means unbounded
	OrderedByUser bool
	When          xpath.Expr
	Must          []MustConstraint
}

// Choice is RFC 7950's "choice" data node; its Pattern is a
// *ChoicePattern over its Cases.
type Choice struct {
	internal
	Cases     map[string]*Case
	Default   string
	Mandatory bool
	When      xpath.Expr
}

// Case groups one alternative's sub-forest of data nodes under a choice.
type Case struct {
	internal
	When xpath.Expr
}

// SchemaRoot is the synthetic internal node holding every implemented
// module's top-level data nodes as its children.
type SchemaRoot struct {
	internal
}

// RpcAction is an RFC 7950 "rpc" or "action" statement: a synthetic pair
// of Input/Output containers, neither of which is reachable from a
// config/nonconfig data tree walk.
type RpcAction struct {
	internal
	Input  *Input
	Output *Output
}

// Input is an rpc/action's "input" substatement.
type Input struct{ internal }

// Output is an rpc/action's "output" substatement.
type Output struct{ internal }

// Notification is an RFC 7950 "notification" statement.
type Notification struct{ internal }

// Anydata is RFC 7950's "anydata" terminal node: an arbitrary, schema-less
// instance value.
type Anydata struct{ base }

// Anyxml is RFC 7950's "anyxml" terminal node: an arbitrary XML fragment.
type Anyxml struct{ base }

// Leaf is RFC 7950's "leaf" terminal node.
type Leaf struct {
	base
	Type       ytypes.Type
	Mandatory  bool
	Default    interface{}
	HasDefault bool
	When       xpath.Expr
	Must       []MustConstraint
}

// LeafList is RFC 7950's "leaf-list" terminal node.
type LeafList struct {
	base
	Type          ytypes.Type
	MinElements   int
	MaxElements   int
	OrderedByUser bool
	When          xpath.Expr
	Must          []MustConstraint
}

// MustConstraint pairs a compiled "must" expression with the error
// information a failing evaluation should report.
type MustConstraint struct {
	Expr         xpath.Expr
	ErrorMessage string
	ErrorAppTag  string
}

func NewContainer(qn library.QualName) *Container {
	c := &Container{}
	c.qname = qn
	c.config = true
	return c
}

func NewList(qn library.QualName) *List {
	l := &List{}
	l.qname = qn
	l.config = true
	return l
}

func NewChoice(qn library.QualName) *Choice {
	ch := &Choice{Cases: make(map[string]*Case)}
	ch.qname = qn
	ch.config = true
	return ch
}

func NewCase(qn library.QualName) *Case {
	c := &Case{}
	c.qname = qn
	c.config = true
	return c
}

func NewSchemaRoot() *SchemaRoot {
	r := &SchemaRoot{}
	r.qname = library.QualName{Local: "/"}
	r.config = true
	return r
}

// NewLeaf builds a Leaf of the given type, config true by default.
func NewLeaf(qn library.QualName, t ytypes.Type) *Leaf {
	l := &Leaf{Type: t}
	l.qname = qn
	l.config = true
	return l
}

// NewLeafList builds a LeafList of the given type, config true by
// default.
func NewLeafList(qn library.QualName, t ytypes.Type) *LeafList {
	ll := &LeafList{Type: t}
	ll.qname = qn
	ll.config = true
	return ll
}

// NewAnydata builds an Anydata node, config true by default.
func NewAnydata(qn library.QualName) *Anydata {
	a := &Anydata{}
	a.qname = qn
	a.config = true
	return a
}

// NewAnyxml builds an Anyxml node, config true by default.
func NewAnyxml(qn library.QualName) *Anyxml {
	a := &Anyxml{}
	a.qname = qn
	a.config = true
	return a
}

// AddChild registers n as a direct child of parent and fixes n's parent
// pointer; it is the only supported way to grow an InternalNode's
// children after construction.
func AddChild(parent InternalNode, n Node) {
	n.setParent(parent)
	parent.setChild(n)
}

// NodeContentType reports the content type an individual node occupies:
// ContentConfig if it (or an ancestor) is "config true", else
// ContentNonConfig — a node is never both.
func NodeContentType(n Node) ContentType {
	if n.Config() {
		return ContentConfig
	}
	return ContentNonConfig
}
