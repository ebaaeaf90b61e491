// Copyright (c) 2018-2019,2021, AT&T Intellectual Property. All rights reserved.
//
// Copyright (c) 2015-2017 by Brocade Communications Systems, Inc.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package xpath is a recursive-descent XPath 1.0 parser and evaluator
// over an abstract instance-tree interface (XpathNode), with the YANG
// extension functions of RFC 7950 §10 layered on the core function
// library.
package xpath

import "strings"

// XpathNode isolates this package from any one instance-tree
// implementation; the `validate` package provides the adapter over a
// paired instance and schema node. All methods are X-prefixed to avoid collision with whatever
// the adapter's own type already exports.
type XpathNode interface {
	XParent() XpathNode
	XRoot() XpathNode
	XChildren(name string, namespace string) []XpathNode
	XName() string
	XNamespace() string
	XValue() string
	XIsLeaf() bool
	XIsLeafList() bool
	// XListKeys returns, for a list entry node, the (name, value) pairs
	// making up its key; nil for anything else.
	XListKeys() []XpathNodeKey
}

type XpathNodeKey struct {
	Name  string
	Value string
}

// PathType is a parsed, slash-separated path used for pretty-printing
// and for GetAbsPath-style relative-to-absolute path resolution.
type PathType []string

func NewPathType(path string) PathType {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathType{}
	}
	var pt PathType
	if path[0] == '/' {
		pt = append(pt, "/")
		path = path[1:]
	}
	if path == "" {
		return pt
	}
	return append(pt, strings.Split(path, "/")...)
}

func (p PathType) String() string {
	if len(p) == 0 {
		return ""
	}
	var s string
	start := 0
	if p[0] == "/" {
		start = 1
	} else {
		s = p[0]
		start = 1
	}
	for _, elem := range p[start:] {
		s += "/" + elem
	}
	return s
}

// NodeStringValue implements XPath's string-value of a node: for a leaf
// or leaf-list entry it is XValue(); otherwise it is the concatenation
// of all descendant leaf text in document order.
func NodeStringValue(n XpathNode) string {
	if n.XIsLeaf() || n.XIsLeafList() {
		return n.XValue()
	}
	var s string
	for _, c := range n.XChildren("*", "") {
		s += NodeStringValue(c)
	}
	return s
}
