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

package instance

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sdcio/yang-datamodel/library"
	"github.com/sdcio/yang-datamodel/schema"
	"github.com/sdcio/yang-datamodel/ytypes"
)

// buildTestTree constructs, by hand, the same small schema a YANG module
//
//	container top {
//	  leaf name { type string; }
//	  list server {
//	    key "addr";
//	    leaf addr { type string; }
//	    leaf port { type uint16; }
//	  }
//	}
//
// would produce, without going through the statement/library/build
// pipeline — enough to exercise the zipper and the JSON codec on their
// own.
func buildTestTree() (*schema.SchemaRoot, *schema.Container, *schema.List) {
	root := schema.NewSchemaRoot()

	top := schema.NewContainer(library.QualName{Local: "top", Namespace: "test"})
	schema.AddChild(root, top)

	nameNode := schema.NewLeaf(library.QualName{Local: "name", Namespace: "test"},
		ytypes.NewString(nil, nil, nil, false))
	schema.AddChild(top, nameNode)

	server := schema.NewList(library.QualName{Local: "server", Namespace: "test"})
	server.Keys = []string{"addr"}
	schema.AddChild(top, server)

	addr := schema.NewLeaf(library.QualName{Local: "addr", Namespace: "test"},
		ytypes.NewString(nil, nil, nil, false))
	schema.AddChild(server, addr)
	port := schema.NewLeaf(library.QualName{Local: "port", Namespace: "test"},
		ytypes.NewUinteger("uint16", 16, nil, nil, false))
	schema.AddChild(server, port)

	return root, top, server
}

func TestZipperPutMemberAndUp(t *testing.T) {
	root, top, _ := buildTestTree()
	_ = top

	r := NewRootNode(NewObjectValue(map[string]Value{
		"top": NewObjectValue(map[string]Value{"name": "router1"}),
	}), root)

	topCur, err := r.Member("top")
	if err != nil {
		t.Fatalf("Member(top): %v", err)
	}
	nameCur, err := topCur.PutMember("name", "router2")
	if err != nil {
		t.Fatalf("PutMember(name): %v", err)
	}
	if got := nameCur.Value().(string); got != "router2" {
		t.Fatalf("got %q, want router2", got)
	}

	committed := nameCur.Top()
	topVal := committed.Value().(*ObjectValue)
	innerTop, _ := topVal.Member("top")
	got, _ := innerTop.(*ObjectValue).Member("name")
	if got != "router2" {
		t.Fatalf("after Top(), name = %v, want router2", got)
	}

	// The original cursor must be unaffected: persistence, not mutation.
	origTop, _ := r.Value().(*ObjectValue).Member("top")
	origName, _ := origTop.(*ObjectValue).Member("name")
	if origName != "router1" {
		t.Fatalf("original root mutated: name = %v", origName)
	}
}

func TestArrayEntryNextPreviousDelete(t *testing.T) {
	arr := NewArrayValue([]Value{"a", "b", "c"})
	root := NewRootNode(arr, nil)

	e1, err := root.Entry(1)
	if err != nil {
		t.Fatalf("Entry(1): %v", err)
	}
	if e1.Value().(string) != "b" {
		t.Fatalf("Entry(1) = %v, want b", e1.Value())
	}

	next, err := e1.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next.Value().(string) != "c" {
		t.Fatalf("Next = %v, want c", next.Value())
	}

	prev, err := next.Previous()
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if prev.Value().(string) != "b" {
		t.Fatalf("Previous = %v, want b", prev.Value())
	}

	after, err := e1.Delete()
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := after.Value().(*ArrayValue)
	if got.Len() != 2 || got.Entry(0) != "a" || got.Entry(1) != "c" {
		t.Fatalf("after Delete = %#v", got)
	}
}

func TestFromRawToRawRoundTrip(t *testing.T) {
	root, _, _ := buildTestTree()

	raw := map[string]interface{}{
		"test:top": map[string]interface{}{
			"name": "router1",
			"server": []interface{}{
				map[string]interface{}{"addr": "10.0.0.1", "port": float64(22)},
				map[string]interface{}{"addr": "10.0.0.2", "port": float64(23)},
			},
		},
	}

	v, err := FromRaw(raw, root)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}

	back, err := ToRaw(v, root)
	if err != nil {
		t.Fatalf("ToRaw: %v", err)
	}

	if diff := cmp.Diff(raw, back); diff != "" {
		t.Errorf("ToRaw(FromRaw(raw)) round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInstanceID(t *testing.T) {
	route, err := ParseInstanceID("/test:top/server[addr='10.0.0.1']/port")
	if err != nil {
		t.Fatalf("ParseInstanceID: %v", err)
	}
	if len(route) != 4 {
		t.Fatalf("got %d selectors, want 4: %v", len(route), route)
	}
	if _, ok := route[2].(EntryKeys); !ok {
		t.Fatalf("route[2] = %#v, want EntryKeys", route[2])
	}
}

func TestParseResourceID(t *testing.T) {
	root, _, _ := buildTestTree()
	route, err := ParseResourceID("test:top/server=10.0.0.1/port", root)
	if err != nil {
		t.Fatalf("ParseResourceID: %v", err)
	}
	if len(route) != 4 {
		t.Fatalf("got %d selectors, want 4: %v", len(route), route)
	}
}
