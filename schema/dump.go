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
	"sort"

	"github.com/kylelemons/godebug/pretty"
)

// treeDump is the plain-data shape DumpTree feeds to pretty.Sprint: a
// node's kind, name and children, stripped of the parent pointers and
// compiled Pattern/Type internals that would make a raw struct dump
// unreadable.
type treeDump struct {
	Kind     string
	Name     string
	Config   bool
	Children []treeDump
}

func kindOf(n Node) string {
	switch n.(type) {
	case *SchemaRoot:
		return "root"
	case *Container:
		return "container"
	case *List:
		return "list"
	case *Choice:
		return "choice"
	case *Case:
		return "case"
	case *Leaf:
		return "leaf"
	case *LeafList:
		return "leaf-list"
	case *Anydata:
		return "anydata"
	case *Anyxml:
		return "anyxml"
	case *RpcAction:
		return "rpc"
	case *Input:
		return "input"
	case *Output:
		return "output"
	case *Notification:
		return "notification"
	default:
		return "node"
	}
}

func dumpNode(n Node) treeDump {
	kind := kindOf(n)
	name := n.QName().String()
	if kind == "root" {
		name = ""
	}
	d := treeDump{Kind: kind, Name: name, Config: NodeContentType(n).matches(ContentConfig)}
	in, ok := n.(InternalNode)
	if !ok {
		return d
	}
	children := in.Children()
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d.Children = append(d.Children, dumpNode(children[name]))
	}
	return d
}

// DumpTree renders the schema tree rooted at n as an indented ASCII dump,
// for the "tree" CLI subcommand and for debugging schema-assembly issues
// interactively — the same role openconfig-ygot's and openconfig-goyang's
// pretty.Sprint calls play over their generated Go structs.
func DumpTree(n Node) string {
	return pretty.Sprint(dumpNode(n))
}
