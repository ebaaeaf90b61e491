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
	"fmt"
	"time"

	"github.com/danos/utils/pathutil"
	"github.com/sdcio/yang-datamodel/schema"
)

// Node is a cursor positioned at one point of a persistent data tree: a
// zipper, not a plain pointer. Every edit method returns a new Node
// rather than mutating the receiver's value in place; the original
// cursor, and any other cursor that shares structure with it, keeps
// seeing the old value. Climbing back to the root via Up/Top is what
// actually splices an edit into the surrounding tree.
type Node interface {
	Value() Value
	SchemaNode() schema.Node
	Timestamp() time.Time

	// Path is this node's instance route from the root, as a sequence of
	// string member names and int array indices.
	Path() []interface{}

	// Up ascends one level, splicing this node's current value back into
	// its parent's structure. It fails only at the root.
	Up() (Node, error)

	// Top ascends all the way to the root, committing every pending edit
	// made along the way back down to this node.
	Top() Node

	// Update returns a cursor at the same position as the receiver, but
	// with v as its value and a fresh timestamp. The change is not
	// visible outside this cursor's own lineage until Up/Top is called.
	Update(v Value) Node

	// Member descends into an object member by name.
	Member(name string) (Node, error)

	// Entry descends into an array entry by position.
	Entry(index int) (Node, error)

	// PutMember returns the position Member(name) would reach, creating
	// or replacing that member with v. The member must be permitted by
	// the schema at this position.
	PutMember(name string, v Value) (Node, error)

	// Delete removes the receiver from its parent and returns a cursor
	// positioned at that parent.
	Delete() (Node, error)

	// Next/Previous move to the following/preceding entry of the same
	// array.
	Next() (Node, error)
	Previous() (Node, error)

	// InsertBefore/InsertAfter add a new entry adjacent to the receiver
	// within the same array and return a cursor positioned on it.
	InsertBefore(v Value) (Node, error)
	InsertAfter(v Value) (Node, error)
}

type base struct {
	value      Value
	schemaNode schema.Node
	timestamp  time.Time
}

func (b *base) Value() Value             { return b.value }
func (b *base) SchemaNode() schema.Node  { return b.schemaNode }
func (b *base) Timestamp() time.Time     { return b.timestamp }

// RootNode is the cursor at the top of a data tree: a datastore's
// top-level object, or an rpc/action/notification's own content.
type RootNode struct{ base }

// NewRootNode builds the root cursor over value, described by sn.
func NewRootNode(value Value, sn schema.Node) *RootNode {
	return &RootNode{base{value: value, schemaNode: sn, timestamp: time.Now()}}
}

func (r *RootNode) Path() []interface{} { return nil }
func (r *RootNode) Up() (Node, error)   { return nil, NewNoParentError() }
func (r *RootNode) Top() Node           { return r }

func (r *RootNode) Update(v Value) Node {
	return &RootNode{base{value: v, schemaNode: r.schemaNode, timestamp: time.Now()}}
}

func (r *RootNode) Member(name string) (Node, error)        { return memberOf(r, name) }
func (r *RootNode) Entry(index int) (Node, error)            { return entryOf(r, index) }
func (r *RootNode) PutMember(name string, v Value) (Node, error) { return putMember(r, name, v) }
func (r *RootNode) Delete() (Node, error)                    { return nil, NewNoParentError() }
func (r *RootNode) Next() (Node, error)                      { return nil, NewNoParentError() }
func (r *RootNode) Previous() (Node, error)                  { return nil, NewNoParentError() }
func (r *RootNode) InsertBefore(Value) (Node, error)         { return nil, NewNoParentError() }
func (r *RootNode) InsertAfter(Value) (Node, error)          { return nil, NewNoParentError() }

// RawValue renders the whole tree rooted at r as RFC 7951 JSON-ready
// data.
func (r *RootNode) RawValue() (interface{}, error) { return ToRaw(r.value, r.schemaNode) }

// ObjectMember is a cursor positioned on one named member of a
// surrounding object: a container, a single list/leaf-list entry's
// scalar slot is reached via ArrayEntry instead, and a top-level
// datastore member.
type ObjectMember struct {
	base
	name     string
	siblings map[string]Value // every other member of the parent object
	up       Node             // parent cursor, as it stood before descent
}

func (m *ObjectMember) Name() string { return m.name }

func (m *ObjectMember) Path() []interface{} {
	return append(m.up.Path(), m.name)
}

func (m *ObjectMember) Up() (Node, error) {
	members := make(map[string]Value, len(m.siblings)+1)
	for k, v := range m.siblings {
		members[k] = v
	}
	members[m.name] = m.value
	return m.up.Update(NewObjectValue(members)), nil
}

func (m *ObjectMember) Top() Node { return ascend(m) }

func (m *ObjectMember) Update(v Value) Node {
	return &ObjectMember{
		base:     base{value: v, schemaNode: m.schemaNode, timestamp: time.Now()},
		name:     m.name,
		siblings: m.siblings,
		up:       m.up,
	}
}

func (m *ObjectMember) Member(name string) (Node, error)        { return memberOf(m, name) }
func (m *ObjectMember) Entry(index int) (Node, error)            { return entryOf(m, index) }
func (m *ObjectMember) PutMember(name string, v Value) (Node, error) { return putMember(m, name, v) }

func (m *ObjectMember) Delete() (Node, error) {
	return m.up.Update(NewObjectValue(m.siblings)), nil
}

func (m *ObjectMember) Next() (Node, error)              { return nil, NewNotArrayError(PathString(m)) }
func (m *ObjectMember) Previous() (Node, error)           { return nil, NewNotArrayError(PathString(m)) }
func (m *ObjectMember) InsertBefore(Value) (Node, error)  { return nil, NewNotArrayError(PathString(m)) }
func (m *ObjectMember) InsertAfter(Value) (Node, error)   { return nil, NewNotArrayError(PathString(m)) }

// ArrayEntry is a cursor positioned on one entry of a list or leaf-list,
// holding the entries before and after it so Up can reassemble the
// array and Next/Previous/InsertBefore/InsertAfter can shift the split
// point without touching the rest of the sequence.
type ArrayEntry struct {
	base
	before []Value // preceding entries, in original order
	after  []Value // following entries, in original order
	up     Node    // the cursor at the array's own position (e.g. its ObjectMember)
}

func (e *ArrayEntry) Index() int { return len(e.before) }

func (e *ArrayEntry) Path() []interface{} {
	return append(e.up.Path(), e.Index())
}

func (e *ArrayEntry) reassemble() *ArrayValue {
	vals := make([]Value, 0, len(e.before)+1+len(e.after))
	vals = append(vals, e.before...)
	vals = append(vals, e.value)
	vals = append(vals, e.after...)
	return NewArrayValue(vals)
}

func (e *ArrayEntry) Up() (Node, error) {
	return e.up.Update(e.reassemble()), nil
}

func (e *ArrayEntry) Top() Node { return ascend(e) }

func (e *ArrayEntry) Update(v Value) Node {
	return &ArrayEntry{
		base:   base{value: v, schemaNode: e.schemaNode, timestamp: time.Now()},
		before: e.before,
		after:  e.after,
		up:     e.up,
	}
}

func (e *ArrayEntry) Member(name string) (Node, error) { return memberOf(e, name) }
func (e *ArrayEntry) Entry(index int) (Node, error)     { return entryOf(e, index) }

func (e *ArrayEntry) PutMember(name string, v Value) (Node, error) { return putMember(e, name, v) }

func (e *ArrayEntry) Delete() (Node, error) {
	rest := make([]Value, 0, len(e.before)+len(e.after))
	rest = append(rest, e.before...)
	rest = append(rest, e.after...)
	return e.up.Update(NewArrayValue(rest)), nil
}

func (e *ArrayEntry) Next() (Node, error) {
	if len(e.after) == 0 {
		return nil, NewNoSuchEntryError(e.Index() + 1)
	}
	nv := e.after[0]
	nb := append(append([]Value{}, e.before...), e.value)
	na := e.after[1:]
	return &ArrayEntry{base: base{value: nv, schemaNode: e.schemaNode, timestamp: time.Now()}, before: nb, after: na, up: e.up}, nil
}

func (e *ArrayEntry) Previous() (Node, error) {
	if len(e.before) == 0 {
		return nil, NewNoSuchEntryError(e.Index() - 1)
	}
	pv := e.before[len(e.before)-1]
	pb := e.before[:len(e.before)-1]
	pa := append([]Value{e.value}, e.after...)
	return &ArrayEntry{base: base{value: pv, schemaNode: e.schemaNode, timestamp: time.Now()}, before: pb, after: pa, up: e.up}, nil
}

func (e *ArrayEntry) InsertBefore(v Value) (Node, error) {
	na := append([]Value{e.value}, e.after...)
	return &ArrayEntry{base: base{value: v, schemaNode: e.schemaNode, timestamp: time.Now()}, before: e.before, after: na, up: e.up}, nil
}

func (e *ArrayEntry) InsertAfter(v Value) (Node, error) {
	nb := append(append([]Value{}, e.before...), e.value)
	return &ArrayEntry{base: base{value: v, schemaNode: e.schemaNode, timestamp: time.Now()}, before: nb, after: e.after, up: e.up}, nil
}

// ascend repeatedly calls Up until it reaches the root, committing
// every edit made at or below n.
func ascend(n Node) Node {
	cur := n
	for {
		up, err := cur.Up()
		if err != nil {
			return cur
		}
		cur = up
	}
}

// PathString renders a cursor's Path for use in an error's Path field,
// folding array indices into the preceding member's path element the
// way pathutil.Pathstr expects a configd-style path to look.
func PathString(n Node) string {
	var elems []string
	for _, seg := range n.Path() {
		switch v := seg.(type) {
		case string:
			elems = append(elems, v)
		case int:
			if len(elems) == 0 {
				elems = append(elems, fmt.Sprintf("[%d]", v))
				continue
			}
			elems[len(elems)-1] = fmt.Sprintf("%s[%d]", elems[len(elems)-1], v)
		}
	}
	if len(elems) == 0 {
		return "/"
	}
	return pathutil.Pathstr(elems)
}

func memberOf(n Node, name string) (Node, error) {
	obj, ok := n.Value().(*ObjectValue)
	if !ok {
		return nil, NewNotObjectError(PathString(n))
	}
	v, ok := obj.Member(name)
	if !ok {
		return nil, NewNoSuchMemberError(name)
	}
	sn := n.SchemaNode()
	var childSchema schema.Node = sn
	if in, ok := sn.(schema.InternalNode); ok {
		if found := schema.FindDataChild(in, name); found != nil {
			childSchema = found
		}
	}
	return &ObjectMember{
		base:     base{value: v, schemaNode: childSchema, timestamp: obj.Timestamp()},
		name:     name,
		siblings: obj.withoutAsSiblings(name),
		up:       n,
	}, nil
}

func entryOf(n Node, index int) (Node, error) {
	arr, ok := n.Value().(*ArrayValue)
	if !ok {
		return nil, NewNotArrayError(PathString(n))
	}
	if index < 0 || index >= arr.Len() {
		return nil, NewNoSuchEntryError(index)
	}
	before := append([]Value{}, arr.Entries()[:index]...)
	after := append([]Value{}, arr.Entries()[index+1:]...)
	return &ArrayEntry{
		base:   base{value: arr.Entry(index), schemaNode: n.SchemaNode(), timestamp: arr.Timestamp()},
		before: before,
		after:  after,
		up:     n,
	}, nil
}

// putMember creates or replaces the member named name of n's object
// value with v, provided the schema permits a member of that name here.
func putMember(n Node, name string, v Value) (Node, error) {
	sn := n.SchemaNode()
	in, ok := sn.(schema.InternalNode)
	if !ok || schema.FindDataChild(in, name) == nil {
		return nil, NewMemberNotPermittedError(name)
	}
	var siblings map[string]Value
	if obj, ok := n.Value().(*ObjectValue); ok {
		siblings = obj.withoutAsSiblings(name)
	} else {
		siblings = map[string]Value{}
	}
	return &ObjectMember{
		base:     base{value: v, schemaNode: schema.FindDataChild(in, name), timestamp: time.Now()},
		name:     name,
		siblings: siblings,
		up:       n,
	}, nil
}
