// Copyright (c) 2019, AT&T Intellectual Property. All rights reserved.
//
// Copyright (c) 2015 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package xpath

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Datum is one of XPath 1.0's four base types: boolean, number, string
// ("literal"), or node-set. Every operator and function converts its
// operands to whichever base type it needs via these accessors.
type Datum interface {
	TypeName() string
	Boolean() bool
	String() string
	Number() float64
	Nodeset() []XpathNode
}

func IsNodeset(d Datum) bool { _, ok := d.(nodesetDatum); return ok }

func numberFromString(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

type boolDatum struct{ v bool }

func NewBoolDatum(v bool) Datum      { return boolDatum{v} }
func (b boolDatum) TypeName() string { return "boolean" }
func (b boolDatum) Boolean() bool    { return b.v }
func (b boolDatum) Nodeset() []XpathNode {
	panic(fmt.Errorf("cannot convert boolean to a node-set"))
}
func (b boolDatum) Number() float64 {
	if b.v {
		return 1
	}
	return 0
}
func (b boolDatum) String() string {
	if b.v {
		return "true"
	}
	return "false"
}

type literalDatum struct{ v string }

func NewLiteralDatum(v string) Datum    { return literalDatum{v} }
func (l literalDatum) TypeName() string { return "string" }
func (l literalDatum) Boolean() bool    { return len(l.v) > 0 }
func (l literalDatum) String() string   { return l.v }
func (l literalDatum) Number() float64  { return numberFromString(l.v) }
func (l literalDatum) Nodeset() []XpathNode {
	panic(fmt.Errorf("cannot convert string %q to a node-set", l.v))
}

type numberDatum struct{ v float64 }

func NewNumberDatum(v float64) Datum   { return numberDatum{v} }
func (n numberDatum) TypeName() string { return "number" }
func (n numberDatum) Boolean() bool    { return n.v != 0 && !math.IsNaN(n.v) }
func (n numberDatum) Number() float64  { return n.v }
func (n numberDatum) String() string {
	switch {
	case math.IsNaN(n.v):
		return "NaN"
	case n.v == 0:
		return "0"
	case math.IsInf(n.v, 1):
		return "Infinity"
	case math.IsInf(n.v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}
func (n numberDatum) Nodeset() []XpathNode {
	panic(fmt.Errorf("cannot convert a number to a node-set"))
}

type nodesetDatum struct{ nodes []XpathNode }

func NewNodesetDatum(nodes []XpathNode) Datum { return nodesetDatum{nodes} }
func (ns nodesetDatum) TypeName() string      { return "node-set" }
func (ns nodesetDatum) Boolean() bool         { return len(ns.nodes) != 0 }
func (ns nodesetDatum) Nodeset() []XpathNode  { return ns.nodes }
func (ns nodesetDatum) String() string {
	if len(ns.nodes) == 0 {
		return ""
	}
	return NodeStringValue(ns.nodes[0])
}
func (ns nodesetDatum) Number() float64 { return numberFromString(ns.String()) }

// stringValues returns the string-value of every node in the set, in
// document order, used by = and != when either side is a node-set.
func (ns nodesetDatum) stringValues() []string {
	out := make([]string, len(ns.nodes))
	for i, n := range ns.nodes {
		out[i] = NodeStringValue(n)
	}
	return out
}

// sortDocumentOrder orders a node-set by document position so
// position()/last() and XPath's node-set equality behave predictably;
// YANG trees have no natural document index, so we fall back to the
// node's absolute path string.
func sortDocumentOrder(nodes []XpathNode) []XpathNode {
	out := make([]XpathNode, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		return nodePathString(out[i]) < nodePathString(out[j])
	})
	return out
}

func nodePathString(n XpathNode) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.XParent() {
		parts = append([]string{cur.XName()}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}
