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

// Package instance implements the persistent, timestamped data tree that
// holds configuration and state values, and a zipper-style cursor for
// navigating and editing it without mutating any node still reachable
// from another cursor.
package instance

import "time"

// Value is the content held at one point of the data tree: either a
// structured value (*ObjectValue, *ArrayValue) or a cooked scalar as
// produced by the matching ytypes.Type (string, bool, int64, uint64,
// []byte, or a union/identity/decimal representation).
//
// Every structured value is immutable once built: every "With*"
// constructor returns a new value and leaves its receiver untouched,
// which is what lets many cursors share structure safely.
type Value interface{}

// ObjectValue is a YANG container/list-entry's content: a set of named
// members. Member order is not significant in YANG, so it is not
// preserved: Names returns the members in no particular order, and the
// JSON and XML encoders in this package write them in that order.
type ObjectValue struct {
	members   map[string]Value
	timestamp time.Time
}

// NewObjectValue builds an ObjectValue over members, timestamped now.
// The caller must not mutate members afterward; ownership passes in.
func NewObjectValue(members map[string]Value) *ObjectValue {
	if members == nil {
		members = map[string]Value{}
	}
	return &ObjectValue{members: members, timestamp: time.Now()}
}

func (o *ObjectValue) Member(name string) (Value, bool) {
	v, ok := o.members[name]
	return v, ok
}

func (o *ObjectValue) Len() int { return len(o.members) }

func (o *ObjectValue) Names() []string {
	names := make([]string, 0, len(o.members))
	for n := range o.members {
		names = append(names, n)
	}
	return names
}

func (o *ObjectValue) Timestamp() time.Time { return o.timestamp }

// WithMember returns a new ObjectValue equal to o except that name now
// maps to v.
func (o *ObjectValue) WithMember(name string, v Value) *ObjectValue {
	cp := make(map[string]Value, len(o.members)+1)
	for k, vv := range o.members {
		cp[k] = vv
	}
	cp[name] = v
	return &ObjectValue{members: cp, timestamp: time.Now()}
}

// WithoutMember returns a new ObjectValue equal to o except that name is
// absent.
func (o *ObjectValue) WithoutMember(name string) *ObjectValue {
	cp := make(map[string]Value, len(o.members))
	for k, vv := range o.members {
		if k == name {
			continue
		}
		cp[k] = vv
	}
	return &ObjectValue{members: cp, timestamp: time.Now()}
}

// withoutAsSiblings is a convenience for cursor descent: it returns a
// fresh copy of every member but name, for use as an
// ArrayEntry/ObjectMember's sibling snapshot (the member values are
// shared with o; the map itself is new).
func (o *ObjectValue) withoutAsSiblings(name string) map[string]Value {
	cp := make(map[string]Value, len(o.members))
	for k, vv := range o.members {
		if k == name {
			continue
		}
		cp[k] = vv
	}
	return cp
}

// ArrayValue is a YANG list or leaf-list's content: an ordered sequence
// of entries (objects for a list, scalars for a leaf-list).
type ArrayValue struct {
	entries   []Value
	timestamp time.Time
}

// NewArrayValue builds an ArrayValue over entries, timestamped now. The
// caller must not mutate entries afterward; ownership passes in.
func NewArrayValue(entries []Value) *ArrayValue {
	return &ArrayValue{entries: entries, timestamp: time.Now()}
}

func (a *ArrayValue) Len() int             { return len(a.entries) }
func (a *ArrayValue) Entry(i int) Value    { return a.entries[i] }
func (a *ArrayValue) Entries() []Value     { return a.entries }
func (a *ArrayValue) Timestamp() time.Time { return a.timestamp }
