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
	"strconv"
	"strings"

	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/statement"
)

// applyAugment resolves a top-level "augment" statement's absolute
// schema-node-id against root and attaches its children there, gated by
// the augment's own if-feature. A "when" substatement of the augment
// itself is not applied to the added children. A child that isn't itself a "case"
// augmenting into a Choice target is wrapped in a synthetic one-member
// case, per RFC 7950 §7.17's augment-into-choice shorthand.
func (b *builder) applyAugment(root *SchemaRoot, stmt *statement.Statement, sctx library.SchemaContext) error {
	ok, err := b.sd.IfFeatures(stmt, sctx.TextModule)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	target, err := b.resolveAbsolute(root, stmt.Argument, sctx)
	if err != nil {
		return err
	}

	if ch, isChoice := target.(*Choice); isChoice {
		for _, sub := range stmt.Sub {
			if sub.Keyword == "case" {
				if err := b.buildCase(ch, sub, sctx); err != nil {
					return err
				}
				continue
			}
			if isDataKeyword(sub.Keyword) {
				qn, err := b.qualName(sub, sctx)
				if err != nil {
					return err
				}
				c := NewCase(qn)
				c.config = ch.config
				AddChild(ch, c)
				ch.Cases[c.QName().Local] = c
				if err := b.buildDataNode(c, sub, sctx); err != nil {
					return err
				}
			}
		}
		return nil
	}

	in, ok := target.(InternalNode)
	if !ok {
		return NewAugmentTargetNotFoundError(stmt.Argument)
	}
	return b.buildChildren(in, stmt, sctx)
}

func isDataKeyword(kw string) bool {
	switch kw {
	case "container", "leaf", "leaf-list", "list", "choice", "anydata", "anyxml", "uses":
		return true
	}
	return false
}

// resolveAbsolute walks a slash-separated, possibly-"/"-leading absolute
// schema-node-id from root.
func (b *builder) resolveAbsolute(root *SchemaRoot, path string, sctx library.SchemaContext) (Node, error) {
	path = strings.TrimPrefix(path, "/")
	var cur Node = root
	for _, seg := range strings.Split(path, "/") {
		qn, err := b.sd.TranslateNodeID(seg, sctx)
		if err != nil {
			return nil, err
		}
		in, ok := cur.(InternalNode)
		if !ok {
			return nil, NewAugmentTargetNotFoundError(path)
		}
		child, ok := in.Children()[qn.Local]
		if !ok {
			if ch, isChoice := cur.(*Choice); isChoice {
				found := false
				for _, cs := range ch.Cases {
					if c, ok2 := cs.Children()[qn.Local]; ok2 {
						child, found = c, true
						break
					}
				}
				if !found {
					return nil, NewAugmentTargetNotFoundError(path)
				}
			} else {
				return nil, NewAugmentTargetNotFoundError(path)
			}
		}
		cur = child
	}
	return cur, nil
}

// applyDeviation applies a top-level "deviation" statement's "not-supported"
// removal or "add"/"replace"/"delete" property edits to its target node.
func (b *builder) applyDeviation(root *SchemaRoot, stmt *statement.Statement, sctx library.SchemaContext) error {
	target, err := b.resolveAbsolute(root, stmt.Argument, sctx)
	if err != nil {
		return err
	}
	for _, dev := range stmt.FindAll("deviate", "") {
		switch dev.Argument {
		case "not-supported":
			removeFromParent(target)
			return nil
		case "add", "replace":
			applyDeviateProperties(target, dev)
		case "delete":
			// "delete" edits are not applied: every property the
			// deviate names, including a default, stays on the target.
		}
	}
	return nil
}

func removeFromParent(n Node) {
	p := n.Parent()
	if in, ok := p.(InternalNode); ok {
		delete(in.Children(), n.QName().Local)
	}
}

func applyDeviateProperties(target Node, dev *statement.Statement) {
	switch n := target.(type) {
	case *Leaf:
		if def := dev.Find1("default", ""); def != nil {
			if cooked, err := n.Type.ParseCanonical(def.Argument); err == nil {
				n.Default, n.HasDefault = cooked, true
			}
		}
		if m := dev.Find1("mandatory", ""); m != nil {
			n.Mandatory = m.Argument == "true"
		}
	case *LeafList:
		if me := dev.Find1("min-elements", ""); me != nil {
			n.MinElements, _ = strconv.Atoi(me.Argument)
		}
		if me := dev.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
			n.MaxElements, _ = strconv.Atoi(me.Argument)
		}
	case *List:
		if me := dev.Find1("min-elements", ""); me != nil {
			n.MinElements, _ = strconv.Atoi(me.Argument)
		}
		if me := dev.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
			n.MaxElements, _ = strconv.Atoi(me.Argument)
		}
	case *Container:
		n.Presence = n.Presence || dev.Find1("presence", "") != nil
	}
}
