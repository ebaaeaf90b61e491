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
	"sort"
	"strings"
)

// Selector is one step of an InstanceRoute: how to get from a node to
// one of its children.
type Selector interface {
	// apply descends from n according to this selector.
	apply(n Node) (Node, error)
	String() string
}

// InstanceRoute is an absolute path through a data tree as a sequence of
// selectors, independent of any particular tree instance — the same
// route can be replayed against different roots or after edits.
type InstanceRoute []Selector

// Goto replays route from n, descending one selector at a time.
func Goto(n Node, route InstanceRoute) (Node, error) {
	cur := n
	for _, sel := range route {
		next, err := sel.apply(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (r InstanceRoute) String() string {
	var sb strings.Builder
	for _, sel := range r {
		sb.WriteString(sel.String())
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// MemberName selects an object member by its instance name ("local" if
// the member's namespace matches its parent's, "namespace:local"
// otherwise, per RFC 7951 §4).
type MemberName struct {
	Namespace string
	Local     string
}

func (s MemberName) apply(n Node) (Node, error) { return memberOf(n, s.Local) }
func (s MemberName) String() string {
	if s.Namespace != "" {
		return "/" + s.Namespace + ":" + s.Local
	}
	return "/" + s.Local
}

// EntryIndex selects a leaf-list or list entry by its zero-based
// position.
type EntryIndex int

func (s EntryIndex) apply(n Node) (Node, error) { return entryOf(n, int(s)) }
func (s EntryIndex) String() string             { return fmt.Sprintf("[%d]", int(s)) }

// EntryValue selects a leaf-list entry by its cooked scalar value.
type EntryValue struct{ Value Value }

func (s EntryValue) apply(n Node) (Node, error) {
	arr, ok := n.Value().(*ArrayValue)
	if !ok {
		return nil, NewNotArrayError(PathString(n))
	}
	for i := 0; i < arr.Len(); i++ {
		if arr.Entry(i) == s.Value {
			return entryOf(n, i)
		}
	}
	return nil, NewNoSuchKeyError(fmt.Sprintf("%v", s.Value))
}
func (s EntryValue) String() string { return fmt.Sprintf("[.=%v]", s.Value) }

// EntryKeys selects a list entry by its key leaves' cooked values.
type EntryKeys map[string]Value

func (s EntryKeys) apply(n Node) (Node, error) {
	arr, ok := n.Value().(*ArrayValue)
	if !ok {
		return nil, NewNotArrayError(PathString(n))
	}
	for i := 0; i < arr.Len(); i++ {
		obj, ok := arr.Entry(i).(*ObjectValue)
		if !ok {
			continue
		}
		if keysMatch(obj, s) {
			return entryOf(n, i)
		}
	}
	return nil, NewNoSuchKeyError(s.String())
}

func keysMatch(obj *ObjectValue, keys EntryKeys) bool {
	for k, want := range keys {
		got, ok := obj.Member(k)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (s EntryKeys) String() string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%v", k, s[k])
	}
	sb.WriteByte(']')
	return sb.String()
}

// ActionName selects an rpc/action's input or output content at a
// notification or action invocation boundary; it never appears inside a
// configuration datastore's own route.
type ActionName struct{ Local string }

func (s ActionName) apply(n Node) (Node, error) { return memberOf(n, s.Local) }
func (s ActionName) String() string             { return "/" + s.Local + "()" }
