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

package datamodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/validate"
)

const testLibraryJSON = `{
  "ietf-yang-library:modules-state": {
    "module-set-id": "test-1",
    "module": [
      {
        "name": "routing",
        "revision": "2024-01-01",
        "namespace": "urn:test:routing",
        "conformance-type": "implement",
        "feature": []
      }
    ]
  }
}`

const routingYang = `module routing {
  namespace "urn:test:routing";
  prefix rt;
  revision 2024-01-01;

  container routing {
    leaf router-id { type string; mandatory true; }
    list server {
      key "addr";
      min-elements 1;
      leaf addr { type string; }
      leaf port { type uint16; }
    }
  }
}
`

func writeTestModules(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "routing@2024-01-01.yang"), []byte(routingYang), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFromLibraryDataBuildsSchema(t *testing.T) {
	dir := writeTestModules(t)
	dm, err := FromLibraryData([]byte(testLibraryJSON), []string{dir})
	if err != nil {
		t.Fatalf("FromLibraryData: %v", err)
	}
	if dm.ModuleSetID() != "test-1" {
		t.Fatalf("ModuleSetID = %q, want test-1", dm.ModuleSetID())
	}
	if schema.FindDataChild(dm.Schema, "routing") == nil {
		t.Fatal("expected a top-level routing container in the built schema")
	}
}

func TestDataModelValidateRoundTrip(t *testing.T) {
	dir := writeTestModules(t)
	dm, err := FromLibraryData([]byte(testLibraryJSON), []string{dir})
	if err != nil {
		t.Fatalf("FromLibraryData: %v", err)
	}

	raw := map[string]interface{}{
		"routing:routing": map[string]interface{}{
			"router-id": "r1",
			"server": []interface{}{
				map[string]interface{}{"addr": "10.0.0.1", "port": float64(22)},
			},
		},
	}
	v, err := dm.FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	root := dm.Root(v)
	if err := dm.Validate(root, schema.ContentAll, validate.ScopeAll); err != nil {
		t.Fatalf("unexpected validation errors: %v", err)
	}
}

func TestDataModelValidateMissingMandatory(t *testing.T) {
	dir := writeTestModules(t)
	dm, err := FromLibraryData([]byte(testLibraryJSON), []string{dir})
	if err != nil {
		t.Fatalf("FromLibraryData: %v", err)
	}

	raw := map[string]interface{}{
		"routing:routing": map[string]interface{}{
			"server": []interface{}{},
		},
	}
	v, err := dm.FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	root := dm.Root(v)
	if err := dm.Validate(root, schema.ContentAll, validate.ScopeAll); err == nil {
		t.Fatal("expected validation errors for missing router-id and too-few server elements")
	}
}
