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

// Package library resolves a YANG library description (RFC 7895 form)
// into a registered, prefix-resolved, topologically ordered set of
// modules, with the identity derivation graph built alongside.
package library

import (
	"fmt"

	"github.com/sdcio/yang-datamodel/statement"
)

// ModuleIdentifier is the canonical key for a module or submodule: its
// name plus the empty string or a YYYY-MM-DD revision date.
type ModuleIdentifier struct {
	Name     string
	Revision string
}

func (m ModuleIdentifier) String() string {
	if m.Revision == "" {
		return m.Name
	}
	return fmt.Sprintf("%s@%s", m.Name, m.Revision)
}

// ModuleData holds everything SchemaData tracks per registered
// module/submodule.
type ModuleData struct {
	ID         ModuleIdentifier
	MainModule ModuleIdentifier // == ID for a main module
	Statement  *statement.Statement
	Features   map[string]bool
	PrefixMap  map[string]ModuleIdentifier
	Submodules []ModuleIdentifier
}

// QualName is a (local name, namespace) pair, where namespace is the name
// of the main module that defines the identifier.
type QualName struct {
	Local     string
	Namespace string
}

func (q QualName) String() string { return q.Namespace + ":" + q.Local }

// SchemaContext is threaded through schema construction so unprefixed
// names resolve against the right namespace even when a definition was
// expanded via "uses" across modules.
type SchemaContext struct {
	DefaultNamespace string
	TextModule       ModuleIdentifier
}

// ModuleSource loads the text of a module or submodule. Implementations
// typically search a list of directories for "{name}.yang" or
// "{name}@{revision}.yang"; DirModuleSource
// provides that behavior over the local filesystem.
type ModuleSource interface {
	Load(name, revision string) (text string, err error)
}

// identityAdjacency tracks an identity's immediate bases and derivations,
// maintained in both directions for symmetric traversal.
type identityAdjacency struct {
	bases  map[QualName]bool
	derivs map[QualName]bool
}

// SchemaData is the repository of resolved library structures: registered
// modules, implemented revisions, the identity graph, and the
// topological module-processing order. It is built once by
// FromLibraryData and never mutated afterwards.
type SchemaData struct {
	Modules        map[ModuleIdentifier]*ModuleData
	Implement      map[string]string // module name -> implemented revision
	sequence       []ModuleIdentifier
	identityAdjs   map[QualName]*identityAdjacency
	source         ModuleSource
	moduleSetID    string
}

// ImplementedOrder returns implemented modules (and their submodules) in
// the topological-by-imports order established during construction.
func (sd *SchemaData) ImplementedOrder() []ModuleIdentifier {
	out := make([]ModuleIdentifier, len(sd.sequence))
	copy(out, sd.sequence)
	return out
}
