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

// Package datamodel ties library, schema, instance and validate together
// into the single entry point an application constructs once and then
// reads from for the rest of its life: load a YANG library description,
// parse every module it names, assemble the schema tree, and hand back
// something that can decode, encode and validate instance data against
// that tree.
package datamodel

import (
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sdcio/yang-datamodel/instance"
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/validate"
)

// DataModel is a fully built schema together with the library data it was
// built from. Construction is single-threaded and synchronous; once
// FromLibraryData returns, a DataModel's SchemaData and Schema trees are
// never mutated again and may be read from any number of goroutines.
//
// Validate is the one exception: schema.Pattern.EvalWhen attaches its
// evaluation result to shared Conditional/Member state on the schema tree
// itself, so two validations running concurrently against the same
// DataModel could race on that state. mu serializes Validate calls rather
// than pushing per-call evaluation state through the whole Pattern API.
type DataModel struct {
	SchemaData *library.SchemaData
	Schema     *schema.SchemaRoot

	mu sync.Mutex
}

// FromLibraryData loads an RFC 7895 YANG library description, parses every
// module and submodule it names by searching the directories of
// searchPath in order, and
// assembles the resulting schema tree.
func FromLibraryData(libraryJSON []byte, searchPath []string) (*DataModel, error) {
	source := library.NewDirModuleSource(searchPath)
	sd, err := library.FromLibraryData(libraryJSON, source)
	if err != nil {
		return nil, err
	}
	log.Debugf("datamodel: loaded %d modules from yang library", len(sd.Modules))

	root, err := schema.Build(sd)
	if err != nil {
		return nil, err
	}
	log.Debugf("datamodel: schema built, module set id %q", sd.ModuleSetID())

	return &DataModel{SchemaData: sd, Schema: root}, nil
}

// FromRaw converts an already-decoded raw value (as produced by
// encoding/json against an interface{}, or built up by hand) into a cooked
// instance.Value checked against the receiver's schema tree.
func (dm *DataModel) FromRaw(raw interface{}) (instance.Value, error) {
	return instance.FromRaw(raw, dm.Schema)
}

// FromJSON decodes RFC 7951 JSON instance data into a cooked Value.
func (dm *DataModel) FromJSON(data []byte) (instance.Value, error) {
	return instance.DecodeJSON(data, dm.Schema)
}

// FromXML decodes XML instance data into a cooked Value.
func (dm *DataModel) FromXML(r io.Reader) (instance.Value, error) {
	return instance.FromXML(r, dm.Schema)
}

// Root wraps a cooked Value as the root of a zipper positioned against the
// receiver's schema tree, ready for navigation, validation or editing.
func (dm *DataModel) Root(v instance.Value) *instance.RootNode {
	return instance.NewRootNode(v, dm.Schema)
}

// Validate checks the data tree rooted at n, restricted to ctype's subset
// of config/non-config nodes and scope's subset of syntax/semantics
// checks. See the DataModel doc comment for why this takes a lock other
// DataModel methods don't need.
func (dm *DataModel) Validate(n instance.Node, ctype schema.ContentType, scope validate.Scope) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return validate.Validate(n, dm.SchemaData, ctype, scope)
}

// ParseInstanceID parses an RFC 7950 §9.13 instance-identifier value.
func (dm *DataModel) ParseInstanceID(iid string) (instance.InstanceRoute, error) {
	return instance.ParseInstanceID(iid)
}

// ParseResourceID parses an RFC 8040 §3.5.3 RESTCONF resource identifier
// against the receiver's schema tree.
func (dm *DataModel) ParseResourceID(rid string) (instance.InstanceRoute, error) {
	return instance.ParseResourceID(rid, dm.Schema)
}

// ModuleSetID returns the yang-library module-set identifier this
// DataModel was built from, for cache-invalidation keys and diagnostics.
func (dm *DataModel) ModuleSetID() string {
	return dm.SchemaData.ModuleSetID()
}
