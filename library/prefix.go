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

package library

import (
	"strings"

	"github.com/sdcio/yang-datamodel/statement"
)

// Namespace returns the main-module name that defines mid, i.e. the name
// under which instance data using mid's definitions is namespaced.
func (sd *SchemaData) Namespace(mid ModuleIdentifier) string {
	return sd.Modules[mid].MainModule.Name
}

// resolvePname splits pname on ":"; an unprefixed name resolves to mid
// itself, a prefixed one is looked up in mid's prefix map. Panics are
// never used here by design — callers that need the UnknownPrefix error
// should use ResolvePname instead; this variant is for call sites, like
// checkFeaturePrerequisites, that have already validated the prefix.
func (sd *SchemaData) resolvePname(pname string, mid ModuleIdentifier) (local string, owner ModuleIdentifier) {
	local, owner, _ = sd.ResolvePname(pname, mid)
	return local, owner
}

// ResolvePname implements resolve_pname: split pname on
// ":"; the prefix (if any) is looked up in mid's prefix map; an
// unprefixed name resolves to mid.
func (sd *SchemaData) ResolvePname(pname string, mid ModuleIdentifier) (local string, owner ModuleIdentifier, err error) {
	mdata, ok := sd.Modules[mid]
	if !ok {
		return "", ModuleIdentifier{}, NewModuleNotRegisteredError(mid)
	}
	if i := strings.IndexByte(pname, ':'); i >= 0 {
		prefix, loc := pname[:i], pname[i+1:]
		owner, ok := mdata.PrefixMap[prefix]
		if !ok {
			return "", ModuleIdentifier{}, NewUnknownPrefixError(prefix, mid)
		}
		return loc, owner, nil
	}
	return pname, mid, nil
}

// TranslatePname returns (local, namespace) where namespace is the main
// module name owning pname.
func (sd *SchemaData) TranslatePname(pname string, mid ModuleIdentifier) (QualName, error) {
	local, owner, err := sd.ResolvePname(pname, mid)
	if err != nil {
		return QualName{}, err
	}
	return QualName{Local: local, Namespace: sd.Namespace(owner)}, nil
}

// TranslateNodeID resolves a (possibly prefixed) node identifier against a
// SchemaContext: an unprefixed identifier binds to the context's default
// namespace, not the text module's own namespace.
func (sd *SchemaData) TranslateNodeID(id string, sctx SchemaContext) (QualName, error) {
	i := strings.IndexByte(id, ':')
	if i < 0 {
		return QualName{Local: id, Namespace: sctx.DefaultNamespace}, nil
	}
	prefix, loc := id[:i], id[i+1:]
	mdata, ok := sd.Modules[sctx.TextModule]
	if !ok {
		return QualName{}, NewModuleNotRegisteredError(sctx.TextModule)
	}
	owner, ok := mdata.PrefixMap[prefix]
	if !ok {
		return QualName{}, NewUnknownPrefixError(prefix, sctx.TextModule)
	}
	return QualName{Local: loc, Namespace: sd.Namespace(owner)}, nil
}

// LastRevision returns the most recently registered revision of a module
// name present in the data model.
func (sd *SchemaData) LastRevision(name string) (ModuleIdentifier, error) {
	return sd.lastRevision(name)
}

// GetDefinition finds the statement defining a grouping ("uses") or
// derived type ("type"), following imports across modules as needed, per
// yangson's get_definition.
func (sd *SchemaData) GetDefinition(stmt *statement.Statement, sctx SchemaContext) (*statement.Statement, SchemaContext, error) {
	var kw string
	switch stmt.Keyword {
	case "uses":
		kw = "grouping"
	case "type":
		kw = "typedef"
	default:
		return nil, SchemaContext{}, NewInvalidSchemaPathError(stmt.Keyword)
	}
	loc, did, err := sd.ResolvePname(stmt.Argument, sctx.TextModule)
	if err != nil {
		return nil, SchemaContext{}, err
	}
	if did == sctx.TextModule {
		def := stmt.GetDefinition(loc, kw)
		if def == nil {
			return nil, SchemaContext{}, NewDefinitionNotFoundError(kw, stmt.Argument)
		}
		return def, sctx, nil
	}
	if def := sd.Modules[did].Statement.Find1(kw, "", loc); def != nil {
		return def, SchemaContext{DefaultNamespace: sctx.DefaultNamespace, TextModule: did}, nil
	}
	for _, sid := range sd.Modules[did].Submodules {
		if def := sd.Modules[sid].Statement.Find1(kw, "", loc); def != nil {
			return def, SchemaContext{DefaultNamespace: sctx.DefaultNamespace, TextModule: sid}, nil
		}
	}
	return nil, SchemaContext{}, NewDefinitionNotFoundError(kw, stmt.Argument)
}

// Prefix returns the prefix under which an implemented module imod is
// known in module mid's text.
func (sd *SchemaData) Prefix(imod string, mid ModuleIdentifier) (string, error) {
	rev, ok := sd.Implement[imod]
	if !ok {
		return "", NewModuleNotImplementedError(imod)
	}
	did := ModuleIdentifier{Name: imod, Revision: rev}
	mdata, ok := sd.Modules[mid]
	if !ok {
		return "", NewModuleNotRegisteredError(mid)
	}
	for p, owner := range mdata.PrefixMap {
		if owner == did {
			return p, nil
		}
	}
	return "", NewModuleNotImportedError(imod, mid)
}
