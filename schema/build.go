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
	"github.com/sdcio/yang-datamodel/xpath"
	"github.com/sdcio/yang-datamodel/ytypes"
	log "github.com/sirupsen/logrus"
)

// builder carries the library.SchemaData through tree assembly and
// memoizes typedefs so a commonly reused one is resolved once rather than
// once per leaf that names it.
type builder struct {
	sd       *library.SchemaData
	typedefs map[typedefKey]ytypes.Type
	augments []pendingAugment
	deviates []pendingDeviation
}

type typedefKey struct {
	mid  library.ModuleIdentifier
	name string
}

type pendingAugment struct {
	stmt *statement.Statement
	sctx library.SchemaContext
}

type pendingDeviation struct {
	stmt *statement.Statement
	sctx library.SchemaContext
}

// Build assembles the complete schema tree for every implemented module
// (and submodule) in sd, in import-topological order, into a single
// synthetic SchemaRoot: top-level data nodes first, then augments, then
// deviations, matching the ordering yangson's DataModel.from_raw applies.
func Build(sd *library.SchemaData) (*SchemaRoot, error) {
	b := &builder{sd: sd, typedefs: make(map[typedefKey]ytypes.Type)}
	root := NewSchemaRoot()

	for _, mid := range sd.ImplementedOrder() {
		mdata := sd.Modules[mid]
		sctx := library.SchemaContext{DefaultNamespace: sd.Namespace(mid), TextModule: mid}
		for _, sub := range mdata.Statement.Sub {
			switch sub.Keyword {
			case "container", "leaf", "leaf-list", "list", "choice", "anydata", "anyxml", "uses":
				if err := b.buildDataNode(root, sub, sctx); err != nil {
					return nil, err
				}
			case "rpc", "action":
				if err := b.buildRpcAction(root, sub, sctx); err != nil {
					return nil, err
				}
			case "notification":
				if err := b.buildNotification(root, sub, sctx); err != nil {
					return nil, err
				}
			case "augment":
				b.augments = append(b.augments, pendingAugment{stmt: sub, sctx: sctx})
			case "deviation":
				b.deviates = append(b.deviates, pendingDeviation{stmt: sub, sctx: sctx})
			}
		}
	}

	for _, a := range b.augments {
		if err := b.applyAugment(root, a.stmt, a.sctx); err != nil {
			return nil, err
		}
	}
	for _, d := range b.deviates {
		if err := b.applyDeviation(root, d.stmt, d.sctx); err != nil {
			return nil, err
		}
	}

	b.assignPatterns(root)
	resolveLeafrefTargets(root)
	return root, nil
}

// buildDataNode dispatches a single data-defining statement to its node
// constructor and, if it passes if-feature gating, attaches the result
// (or, for "uses", the grouping's expanded children) to parent.
func (b *builder) buildDataNode(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	ok, err := b.sd.IfFeatures(stmt, sctx.TextModule)
	if err != nil {
		return err
	}
	if !ok {
		log.Debugf("schema: %s gated off by if-feature", stmt)
		return nil
	}

	switch stmt.Keyword {
	case "container":
		return b.buildContainer(parent, stmt, sctx)
	case "leaf":
		return b.buildLeaf(parent, stmt, sctx)
	case "leaf-list":
		return b.buildLeafList(parent, stmt, sctx)
	case "list":
		return b.buildList(parent, stmt, sctx)
	case "choice":
		return b.buildChoice(parent, stmt, sctx)
	case "anydata":
		return b.buildAnydata(parent, stmt, sctx)
	case "anyxml":
		return b.buildAnyxml(parent, stmt, sctx)
	case "uses":
		return b.buildUses(parent, stmt, sctx)
	}
	return nil
}

// buildChildren builds every data-defining substatement of stmt as a
// child of n.
func (b *builder) buildChildren(n InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	for _, sub := range stmt.Sub {
		switch sub.Keyword {
		case "container", "leaf", "leaf-list", "list", "choice", "anydata", "anyxml", "uses":
			if err := b.buildDataNode(n, sub, sctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) qualName(stmt *statement.Statement, sctx library.SchemaContext) (library.QualName, error) {
	return b.sd.TranslateNodeID(stmt.Argument, sctx)
}

func whenOf(stmt *statement.Statement) (xpath.Expr, error) {
	w := stmt.Find1("when", "")
	if w == nil {
		return nil, nil
	}
	return xpath.Compile(w.Argument)
}

func mustsOf(stmt *statement.Statement) ([]MustConstraint, error) {
	var out []MustConstraint
	for _, m := range stmt.FindAll("must", "") {
		expr, err := xpath.Compile(m.Argument)
		if err != nil {
			return nil, err
		}
		mc := MustConstraint{Expr: expr}
		if em := m.Find1("error-message", ""); em != nil {
			mc.ErrorMessage = em.Argument
		}
		if et := m.Find1("error-app-tag", ""); et != nil {
			mc.ErrorAppTag = et.Argument
		}
		out = append(out, mc)
	}
	return out, nil
}

func configOf(stmt *statement.Statement, inherited bool) bool {
	if c := stmt.Find1("config", ""); c != nil {
		return c.Argument == "true"
	}
	return inherited
}

func (b *builder) buildContainer(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	c := NewContainer(qn)
	c.config = configOf(stmt, parent.Config())
	c.Presence = stmt.Find1("presence", "") != nil
	if d := stmt.Find1("description", ""); d != nil {
		c.description = d.Argument
	}
	if c.When, err = whenOf(stmt); err != nil {
		return err
	}
	if c.Must, err = mustsOf(stmt); err != nil {
		return err
	}
	AddChild(parent, c)
	return b.buildChildren(c, stmt, sctx)
}

func (b *builder) buildList(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	l := NewList(qn)
	l.config = configOf(stmt, parent.Config())
	if d := stmt.Find1("description", ""); d != nil {
		l.description = d.Argument
	}
	if k := stmt.Find1("key", ""); k != nil {
		l.Keys = strings.Fields(k.Argument)
	}
	for _, u := range stmt.FindAll("unique", "") {
		l.Unique = append(l.Unique, strings.Fields(u.Argument))
	}
	if me := stmt.Find1("min-elements", ""); me != nil {
		l.MinElements, _ = strconv.Atoi(me.Argument)
	}
	if me := stmt.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
		l.MaxElements, _ = strconv.Atoi(me.Argument)
	}
	if ob := stmt.Find1("ordered-by", ""); ob != nil {
		l.OrderedByUser = ob.Argument == "user"
	}
	if l.When, err = whenOf(stmt); err != nil {
		return err
	}
	if l.Must, err = mustsOf(stmt); err != nil {
		return err
	}
	AddChild(parent, l)
	return b.buildChildren(l, stmt, sctx)
}

func (b *builder) buildChoice(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	ch := NewChoice(qn)
	ch.config = configOf(stmt, parent.Config())
	if d := stmt.Find1("description", ""); d != nil {
		ch.description = d.Argument
	}
	if m := stmt.Find1("mandatory", ""); m != nil {
		ch.Mandatory = m.Argument == "true"
	}
	if def := stmt.Find1("default", ""); def != nil {
		ch.Default = def.Argument
	}
	if ch.When, err = whenOf(stmt); err != nil {
		return err
	}
	AddChild(parent, ch)

	for _, sub := range stmt.Sub {
		switch sub.Keyword {
		case "case":
			if err := b.buildCase(ch, sub, sctx); err != nil {
				return err
			}
		case "container", "leaf", "leaf-list", "list", "anydata", "anyxml":
			// shorthand case: the bare data node is itself a one-member case.
			cqn, err := b.qualName(sub, sctx)
			if err != nil {
				return err
			}
			c := NewCase(cqn)
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

func (b *builder) buildCase(parent *Choice, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	c := NewCase(qn)
	c.config = parent.config
	if d := stmt.Find1("description", ""); d != nil {
		c.description = d.Argument
	}
	if c.When, err = whenOf(stmt); err != nil {
		return err
	}
	AddChild(parent, c)
	parent.Cases[c.QName().Local] = c
	return b.buildChildren(c, stmt, sctx)
}

func (b *builder) buildLeaf(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	typeStmt := stmt.Find1("type", "")
	if typeStmt == nil {
		return NewMissingSubstatementError("leaf", "type")
	}
	typ, err := b.resolveType(typeStmt, sctx)
	if err != nil {
		return err
	}
	lf := &Leaf{Type: typ}
	lf.qname = qn
	lf.config = configOf(stmt, parent.Config())
	if d := stmt.Find1("description", ""); d != nil {
		lf.description = d.Argument
	}
	if m := stmt.Find1("mandatory", ""); m != nil {
		lf.Mandatory = m.Argument == "true"
	}
	if def := stmt.Find1("default", ""); def != nil {
		cooked, err := typ.ParseCanonical(def.Argument)
		if err != nil {
			return err
		}
		lf.Default, lf.HasDefault = cooked, true
	}
	if lf.When, err = whenOf(stmt); err != nil {
		return err
	}
	if lf.Must, err = mustsOf(stmt); err != nil {
		return err
	}
	AddChild(parent, lf)
	return nil
}

func (b *builder) buildLeafList(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	typeStmt := stmt.Find1("type", "")
	if typeStmt == nil {
		return NewMissingSubstatementError("leaf-list", "type")
	}
	typ, err := b.resolveType(typeStmt, sctx)
	if err != nil {
		return err
	}
	ll := &LeafList{Type: typ}
	ll.qname = qn
	ll.config = configOf(stmt, parent.Config())
	if d := stmt.Find1("description", ""); d != nil {
		ll.description = d.Argument
	}
	if me := stmt.Find1("min-elements", ""); me != nil {
		ll.MinElements, _ = strconv.Atoi(me.Argument)
	}
	if me := stmt.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
		ll.MaxElements, _ = strconv.Atoi(me.Argument)
	}
	if ob := stmt.Find1("ordered-by", ""); ob != nil {
		ll.OrderedByUser = ob.Argument == "user"
	}
	if ll.When, err = whenOf(stmt); err != nil {
		return err
	}
	if ll.Must, err = mustsOf(stmt); err != nil {
		return err
	}
	AddChild(parent, ll)
	return nil
}

func (b *builder) buildAnydata(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	a := &Anydata{}
	a.qname = qn
	a.config = configOf(stmt, parent.Config())
	AddChild(parent, a)
	return nil
}

func (b *builder) buildAnyxml(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	a := &Anyxml{}
	a.qname = qn
	a.config = configOf(stmt, parent.Config())
	AddChild(parent, a)
	return nil
}

func (b *builder) buildRpcAction(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	ra := &RpcAction{}
	ra.qname = qn
	ra.config = false
	in := &Input{}
	in.qname = library.QualName{Local: "input", Namespace: qn.Namespace}
	out := &Output{}
	out.qname = library.QualName{Local: "output", Namespace: qn.Namespace}
	ra.Input, ra.Output = in, out
	AddChild(parent, ra)
	AddChild(ra, in)
	AddChild(ra, out)
	if inStmt := stmt.Find1("input", ""); inStmt != nil {
		if err := b.buildChildren(in, inStmt, sctx); err != nil {
			return err
		}
	}
	if outStmt := stmt.Find1("output", ""); outStmt != nil {
		if err := b.buildChildren(out, outStmt, sctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildNotification(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	qn, err := b.qualName(stmt, sctx)
	if err != nil {
		return err
	}
	n := &Notification{}
	n.qname = qn
	n.config = false
	AddChild(parent, n)
	return b.buildChildren(n, stmt, sctx)
}

// buildUses expands a "uses" statement: the named grouping's children are
// copied into parent as if written there directly, then any "refine"
// substatements adjust the copies in place.
func (b *builder) buildUses(parent InternalNode, stmt *statement.Statement, sctx library.SchemaContext) error {
	grouping, gsctx, err := b.sd.GetDefinition(stmt, sctx)
	if err != nil {
		return err
	}
	if err := b.buildChildren(parent, grouping, gsctx); err != nil {
		return err
	}
	for _, refine := range stmt.FindAll("refine", "") {
		b.applyRefine(parent, refine)
	}
	for _, aug := range stmt.FindAll("augment", "") {
		b.augments = append(b.augments, pendingAugment{stmt: aug, sctx: sctx})
	}
	return nil
}

// applyRefine mutates the child named by refine's descendant-schema-node-id
// argument (resolved relative to parent, the grouping's expansion point)
// per RFC 7950 §7.13.2's per-statement-kind refinement rules.
func (b *builder) applyRefine(parent InternalNode, refine *statement.Statement) {
	target := resolveRelative(parent, refine.Argument)
	if target == nil {
		return
	}
	switch n := target.(type) {
	case *Leaf:
		if def := refine.Find1("default", ""); def != nil {
			if cooked, err := n.Type.ParseCanonical(def.Argument); err == nil {
				n.Default, n.HasDefault = cooked, true
			}
		}
		if m := refine.Find1("mandatory", ""); m != nil {
			n.Mandatory = m.Argument == "true"
		}
		if d := refine.Find1("description", ""); d != nil {
			n.description = d.Argument
		}
		if ms, err := mustsOf(refine); err == nil && len(ms) > 0 {
			n.Must = append(n.Must, ms...)
		}
	case *Container:
		n.Presence = n.Presence || refine.Find1("presence", "") != nil
		if d := refine.Find1("description", ""); d != nil {
			n.description = d.Argument
		}
		if ms, err := mustsOf(refine); err == nil && len(ms) > 0 {
			n.Must = append(n.Must, ms...)
		}
	case *List:
		if me := refine.Find1("min-elements", ""); me != nil {
			n.MinElements, _ = strconv.Atoi(me.Argument)
		}
		if me := refine.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
			n.MaxElements, _ = strconv.Atoi(me.Argument)
		}
	case *LeafList:
		if me := refine.Find1("min-elements", ""); me != nil {
			n.MinElements, _ = strconv.Atoi(me.Argument)
		}
		if me := refine.Find1("max-elements", ""); me != nil && me.Argument != "unbounded" {
			n.MaxElements, _ = strconv.Atoi(me.Argument)
		}
	case *Choice:
		if def := refine.Find1("default", ""); def != nil {
			n.Default = def.Argument
		}
	}
}

// resolveRelative walks a slash-separated descendant-schema-node-id
// (no leading slash) from start, crossing transparently through Choice
// into its Cases.
func resolveRelative(start Node, path string) Node {
	cur := start
	for _, seg := range strings.Split(path, "/") {
		local := seg
		if i := strings.IndexByte(seg, ':'); i >= 0 {
			local = seg[i+1:]
		}
		in, ok := cur.(InternalNode)
		if !ok {
			return nil
		}
		child, ok := in.Children()[local]
		if !ok {
			if ch, isChoice := cur.(*Choice); isChoice {
				found := false
				for _, cs := range ch.Cases {
					if c, ok := cs.Children()[local]; ok {
						child, found = c, true
						break
					}
				}
				if !found {
					return nil
				}
			} else {
				return nil
			}
		}
		cur = child
	}
	return cur
}
