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

package validate

import (
	"github.com/sdcio/yang-datamodel/instance"
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/xpath"
)

// schemaWhenNode implements schema.WhenNode over one instance.Node,
// letting a Pattern's Member.EvalWhen speculatively attach a prospective
// child and evaluate that child's "when" as if it were present — which
// is how a Member's own activity is decided before the instance data is
// known to actually carry that member.
type schemaWhenNode struct {
	n  instance.Node
	sn schema.Node
	sd *library.SchemaData
}

func newSchemaWhenNode(n instance.Node, sn schema.Node, sd *library.SchemaData) schema.WhenNode {
	return &schemaWhenNode{n: n, sn: sn, sd: sd}
}

func (w *schemaWhenNode) PutMember(name string, placeholder bool) schema.WhenNode {
	child, err := w.n.PutMember(name, placeholder)
	if err != nil {
		return w
	}
	in, ok := w.sn.(schema.InternalNode)
	if !ok {
		return w
	}
	childSchema := schema.FindDataChild(in, name)
	if childSchema == nil {
		return w
	}
	return newSchemaWhenNode(child, childSchema, w.sd)
}

func (w *schemaWhenNode) EvalBool(whenExpr schema.WhenExpr) bool {
	expr, ok := whenExpr.(xpath.Expr)
	if !ok {
		return false
	}
	ctx := evalContext(w.n, w.sn, w.sd)
	d, err := expr.Eval(ctx)
	if err != nil {
		return false
	}
	return d.Boolean()
}

// evalWhenExpr evaluates a node's own "when" substatement (Leaf.When,
// Container.When, etc.) directly, outside of the Pattern/Member
// indirection above — used by Validate's own per-node when check.
func evalWhenExpr(n instance.Node, sn schema.Node, sd *library.SchemaData, when xpath.Expr) (bool, error) {
	if when == nil {
		return true, nil
	}
	ctx := evalContext(n, sn, sd)
	d, err := when.Eval(ctx)
	if err != nil {
		return false, err
	}
	return d.Boolean(), nil
}
