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
	"fmt"
	"strings"

	"github.com/sdcio/yang-datamodel/instance"
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/xpath"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// Errors collects every violation a validation run found, rather than
// stopping at the first one — the same multi-error accumulation shape
// RFC 7950 implementations report a whole <edit-config> failure in.
type Errors []error

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Scope narrows which of the six validation concerns run, mirroring the
// three-way split a caller chooses between a quick structural check and a
// full semantic one.
type Scope int

const (
	// ScopeSyntax runs only the content-model/cardinality checks that
	// don't need to evaluate an XPath expression: pattern multiplicity
	// (step 1), list min/max-elements and key structure (part of
	// step 4).
	ScopeSyntax Scope = iota
	// ScopeSemantics runs the checks that evaluate an XPath expression
	// against the instance: when (step 2), must (step 3), and
	// terminal-node leafref/instance-identifier existence (step 5); it
	// also runs the list "unique" check (the rest of step 4).
	ScopeSemantics
	// ScopeAll runs every check.
	ScopeAll
)

func (s Scope) wantsSyntax() bool    { return s == ScopeSyntax || s == ScopeAll }
func (s Scope) wantsSemantics() bool { return s == ScopeSemantics || s == ScopeAll }

// ParseScope maps the CLI's "syntax"/"semantics"/"all" flag values onto a
// Scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "syntax":
		return ScopeSyntax, nil
	case "semantics":
		return ScopeSemantics, nil
	case "all":
		return ScopeAll, nil
	default:
		return 0, fmt.Errorf("invalid scope %q: want syntax, semantics, or all", s)
	}
}

// ParseContentType maps the CLI's "config"/"nonconfig"/"all" flag values
// onto a schema.ContentType.
func ParseContentType(s string) (schema.ContentType, error) {
	switch s {
	case "config":
		return schema.ContentConfig, nil
	case "nonconfig":
		return schema.ContentNonConfig, nil
	case "all":
		return schema.ContentAll, nil
	default:
		return 0, fmt.Errorf("invalid content type %q: want config, nonconfig, or all", s)
	}
}

// Validate checks the data tree rooted at n against its own schema,
// restricted to scope's subset of checks and ctype's subset of nodes
// (config-only, state-only, or both), applying RFC 7950's six validation
// concerns: content-model multiplicity (via the schema package's
// derivative Pattern), when, must, list key/unique/min-max-elements,
// terminal-node restrictions (leafref/instance-identifier existence), and
// recursion into every descendant. It always runs to completion and
// returns every violation found, or nil if the tree is valid.
func Validate(n instance.Node, sd *library.SchemaData, ctype schema.ContentType, scope Scope) error {
	errs := validateTree(n, sd, ctype, scope)
	if len(errs) == 0 {
		return nil
	}
	return Errors(errs)
}

func contentMatches(global, node schema.ContentType) bool { return global&node != 0 }

func validateTree(n instance.Node, sd *library.SchemaData, ctype schema.ContentType, scope Scope) []error {
	sn := n.SchemaNode()
	if sn == nil || !contentMatches(ctype, schema.NodeContentType(sn)) {
		return nil
	}

	var errs []error
	errs = append(errs, validateNode(n, sn, sd, ctype, scope)...)

	switch v := n.Value().(type) {
	case *instance.ObjectValue:
		for _, name := range v.Names() {
			child, err := n.Member(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, validateTree(child, sd, ctype, scope)...)
		}
	case *instance.ArrayValue:
		errs = append(errs, checkListConstraints(n, sn, v, ctype, scope)...)
		for i := 0; i < v.Len(); i++ {
			entry, err := n.Entry(i)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, validateTree(entry, sd, ctype, scope)...)
		}
	default:
		if scope.wantsSemantics() {
			errs = append(errs, checkTerminal(n, sn, sd)...)
		}
	}
	return errs
}

// validateNode runs the per-node checks that don't depend on whether n is
// an object, array, or scalar: the node's own content-model multiplicity
// (step 1), its own "when" (step 2), and its own "must" statements
// (step 3).
func validateNode(n instance.Node, sn schema.Node, sd *library.SchemaData, ctype schema.ContentType, scope Scope) []error {
	var errs []error

	// A list/leaf-list's own "when"/"must"/Pattern describe a single
	// entry, the same as RFC 7950 evaluates them once per instantiated
	// list/leaf-list entry — never the array of entries as a whole, which
	// is what n is positioned on here before validateTree descends into
	// each entry. checkListConstraints covers the array-wide concerns
	// (min/max-elements, keys, unique) instead.
	if _, isArray := n.Value().(*instance.ArrayValue); isArray {
		return errs
	}

	if scope.wantsSemantics() {
		if when := nodeWhen(sn); when != nil {
			ok, err := evalWhenExpr(n, sn, sd, when)
			if err != nil {
				errs = append(errs, err)
			} else if !ok {
				errs = append(errs, NewWhenViolationError(instance.PathString(n), when.String()))
			}
		}

		for _, mc := range nodeMusts(sn) {
			d, err := mc.Expr.Eval(evalContext(n, sn, sd))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !d.Boolean() {
				errs = append(errs, NewMustViolationError(
					instance.PathString(n), mc.Expr.String(), mc.ErrorMessage, mc.ErrorAppTag))
			}
		}
	}

	if scope.wantsSyntax() {
		if in, ok := sn.(schema.InternalNode); ok {
			errs = append(errs, checkPattern(n, in, sd, ctype)...)
		}
	}

	return errs
}

// nodeWhen returns sn's own "when" substatement, if it has one — distinct
// from a Member's when inside a parent's Pattern, which checkPattern
// already evaluates via schemaWhenNode.
func nodeWhen(sn schema.Node) xpath.Expr {
	switch v := sn.(type) {
	case *schema.Container:
		return v.When
	case *schema.List:
		return v.When
	case *schema.Choice:
		return v.When
	case *schema.Case:
		return v.When
	case *schema.Leaf:
		return v.When
	case *schema.LeafList:
		return v.When
	}
	return nil
}

func nodeMusts(sn schema.Node) []schema.MustConstraint {
	switch v := sn.(type) {
	case *schema.Container:
		return v.Must
	case *schema.List:
		return v.Must
	case *schema.Leaf:
		return v.Must
	case *schema.LeafList:
		return v.Must
	}
	return nil
}

// checkPattern runs the derivative-pattern multiplicity check (step 1):
// the receiver's own content model, with its "when" guards evaluated
// against the instance, must be left Nullable once every present member
// name has been consumed.
func checkPattern(n instance.Node, in schema.InternalNode, sd *library.SchemaData, ctype schema.ContentType) []error {
	pat := in.Pattern()
	if pat == nil {
		return nil
	}
	pat.EvalWhen(newSchemaWhenNode(n, in, sd))

	if obj, ok := n.Value().(*instance.ObjectValue); ok {
		for _, name := range obj.Names() {
			pat = pat.Deriv(name, ctype)
		}
	}
	if pat.Nullable(ctype) {
		return nil
	}

	missing := pat.MandatoryMembers(ctype)
	if missing == nil {
		return []error{NewContentModelViolationError(instance.PathString(n))}
	}
	errs := make([]error, 0, len(missing))
	for _, m := range missing {
		errs = append(errs, NewMissingMandatoryError(instance.PathString(n), m))
	}
	return errs
}

// checkListConstraints runs step 4 against a list or leaf-list's whole
// array value, before any of its entries are individually recursed into:
// min/max-elements and key-tuple structure are ScopeSyntax (no XPath
// involved); the "unique" statement — a cross-entry semantic constraint,
// and the only one of the four that can legally be relaxed independently
// of the others — is ScopeSemantics. Both only apply while config nodes
// are in scope, since key/unique are config-only RFC 7950 constraints.
func checkListConstraints(n instance.Node, sn schema.Node, arr *instance.ArrayValue, ctype schema.ContentType, scope Scope) []error {
	var errs []error
	switch l := sn.(type) {
	case *schema.List:
		if scope.wantsSyntax() {
			errs = append(errs, checkMinMax(n, l.QName().Local, arr.Len(), l.MinElements, l.MaxElements)...)
			if contentMatches(ctype, schema.ContentConfig) {
				errs = append(errs, checkListKeys(n, l, arr)...)
			}
		}
		if scope.wantsSemantics() && contentMatches(ctype, schema.ContentConfig) {
			errs = append(errs, checkListUnique(n, l, arr)...)
		}
	case *schema.LeafList:
		if scope.wantsSyntax() {
			errs = append(errs, checkMinMax(n, l.QName().Local, arr.Len(), l.MinElements, l.MaxElements)...)
		}
	}
	return errs
}

func checkMinMax(n instance.Node, name string, count, min, max int) []error {
	var errs []error
	if min > 0 && count < min {
		errs = append(errs, NewTooFewElementsError(instance.PathString(n), name, min))
	}
	if max > 0 && count > max {
		errs = append(errs, NewTooManyElementsError(instance.PathString(n), name, max))
	}
	return errs
}

func checkListKeys(n instance.Node, l *schema.List, arr *instance.ArrayValue) []error {
	var errs []error
	seen := make(map[string]bool, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		obj, ok := arr.Entry(i).(*instance.ObjectValue)
		if !ok {
			continue
		}
		key, complete := keyTuple(obj, l.Keys)
		if !complete {
			errs = append(errs, NewMissingKeyError(instance.PathString(n), l.QName().Local))
			continue
		}
		if seen[key] {
			errs = append(errs, NewDuplicateKeyError(instance.PathString(n), l.QName().Local))
		}
		seen[key] = true
	}
	return errs
}

// checkListUnique only resolves a "unique" group's leaf names one level
// deep (direct members of the entry); a descendant-schema-node-id crossing
// into a child container is left unenforced, noted in the design ledger as
// a deliberate scope simplification.
func checkListUnique(n instance.Node, l *schema.List, arr *instance.ArrayValue) []error {
	var errs []error
	for _, group := range l.Unique {
		seen := make(map[string]bool, arr.Len())
		for i := 0; i < arr.Len(); i++ {
			obj, ok := arr.Entry(i).(*instance.ObjectValue)
			if !ok {
				continue
			}
			key, complete := keyTuple(obj, group)
			if !complete {
				continue
			}
			if seen[key] {
				errs = append(errs, NewUniqueViolationError(instance.PathString(n), l.QName().Local, group))
			}
			seen[key] = true
		}
	}
	return errs
}

func keyTuple(obj *instance.ObjectValue, names []string) (string, bool) {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		local := name
		if i := strings.IndexByte(name, '/'); i >= 0 {
			local = name[:i] // one-level-deep simplification; see checkListUnique
		}
		v, ok := obj.Member(local)
		if !ok {
			return "", false
		}
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, "\x00"), true
}

// checkTerminal runs step 5 against a single leaf/leaf-list scalar entry:
// range/length/pattern/enum restrictions are already enforced by the
// ytypes.Type.ParseRaw/ParseCanonical call that produced this cooked
// value, so what's left is the part that needs schema and instance
// context to resolve — leafref and instance-identifier existence.
func checkTerminal(n instance.Node, sn schema.Node, sd *library.SchemaData) []error {
	var typ ytypes.Type
	switch t := sn.(type) {
	case *schema.Leaf:
		typ = t.Type
	case *schema.LeafList:
		typ = t.Type
	default:
		return nil
	}

	switch t := typ.(type) {
	case *ytypes.Leafref:
		if !t.Require || t.Path == nil {
			return nil
		}
		if !leafrefTargetExists(n, sn, sd, t) {
			return []error{NewLeafrefTargetMissingError(instance.PathString(n), t.Path.String())}
		}
	case *ytypes.InstanceIdentifier:
		if !t.Require {
			return nil
		}
		s, _ := n.Value().(string)
		route, err := instance.ParseInstanceID(s)
		if err != nil {
			return []error{err}
		}
		if _, err := instance.Goto(n.Top(), route); err != nil {
			return []error{NewInstanceIdentifierTargetMissingError(instance.PathString(n), s)}
		}
	}
	return nil
}

func leafrefTargetExists(n instance.Node, sn schema.Node, sd *library.SchemaData, lr *ytypes.Leafref) bool {
	d, err := lr.Path.Eval(evalContext(n, sn, sd))
	if err != nil {
		return false
	}
	return len(d.Nodeset()) > 0
}
