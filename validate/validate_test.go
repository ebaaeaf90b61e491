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
	"testing"

	"github.com/sdcio/yang-datamodel/instance"
	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// buildTestSchema assembles, by hand, the same shape schema.Build would
// produce for:
//
//	container top {
//	  leaf name { type string; mandatory true; }
//	  list server {
//	    key "addr";
//	    min-elements 1;
//	    leaf addr { type string; }
//	    leaf port { type uint16; }
//	  }
//	}
func buildTestSchema() *schema.SchemaRoot {
	root := schema.NewSchemaRoot()

	top := schema.NewContainer(library.QualName{Local: "top", Namespace: "test"})
	schema.AddChild(root, top)

	name := schema.NewLeaf(library.QualName{Local: "name", Namespace: "test"},
		ytypes.NewString(nil, nil, nil, false))
	name.Mandatory = true
	schema.AddChild(top, name)

	server := schema.NewList(library.QualName{Local: "server", Namespace: "test"})
	server.Keys = []string{"addr"}
	server.MinElements = 1
	schema.AddChild(top, server)

	addr := schema.NewLeaf(library.QualName{Local: "addr", Namespace: "test"},
		ytypes.NewString(nil, nil, nil, false))
	schema.AddChild(server, addr)
	port := schema.NewLeaf(library.QualName{Local: "port", Namespace: "test"},
		ytypes.NewUinteger("uint16", 16, nil, nil, false))
	schema.AddChild(server, port)

	schema.AssignPatterns(root)
	return root
}

func TestValidateMissingMandatoryAndTooFewElements(t *testing.T) {
	root := buildTestSchema()
	sd := &library.SchemaData{}

	data := instance.NewObjectValue(map[string]instance.Value{
		"top": instance.NewObjectValue(map[string]instance.Value{
			"server": instance.NewArrayValue(nil),
		}),
	})
	r := instance.NewRootNode(data, root)

	err := Validate(r, sd, schema.ContentAll, ScopeAll)
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	errs, ok := err.(Errors)
	if !ok {
		t.Fatalf("got %T, want Errors", err)
	}
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 errors (missing name, too few server), got %d: %v", len(errs), errs)
	}
}

func TestValidateCompleteTreePasses(t *testing.T) {
	root := buildTestSchema()
	sd := &library.SchemaData{}

	data := instance.NewObjectValue(map[string]instance.Value{
		"top": instance.NewObjectValue(map[string]instance.Value{
			"name": "router1",
			"server": instance.NewArrayValue([]instance.Value{
				instance.NewObjectValue(map[string]instance.Value{
					"addr": "10.0.0.1",
					"port": uint64(22),
				}),
			}),
		}),
	})
	r := instance.NewRootNode(data, root)

	if err := Validate(r, sd, schema.ContentAll, ScopeAll); err != nil {
		t.Fatalf("unexpected validation errors: %v", err)
	}
}

func TestValidateDuplicateKeyDetected(t *testing.T) {
	root := buildTestSchema()
	sd := &library.SchemaData{}

	data := instance.NewObjectValue(map[string]instance.Value{
		"top": instance.NewObjectValue(map[string]instance.Value{
			"name": "router1",
			"server": instance.NewArrayValue([]instance.Value{
				instance.NewObjectValue(map[string]instance.Value{
					"addr": "10.0.0.1",
					"port": uint64(22),
				}),
				instance.NewObjectValue(map[string]instance.Value{
					"addr": "10.0.0.1",
					"port": uint64(23),
				}),
			}),
		}),
	})
	r := instance.NewRootNode(data, root)

	err := Validate(r, sd, schema.ContentAll, ScopeAll)
	if err == nil {
		t.Fatal("expected a duplicate-key error, got nil")
	}
}
