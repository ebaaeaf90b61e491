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

// buildIdentityGraph walks every registered module's top-level "identity"
// statements and records each one's "base" substatements as immediate
// adjacency edges, in both directions, in both directions. Bases
// named in modules that are registered but not implemented are still
// walked, since a derived identity may live in an implemented module
// while its base lives in an imported-only one.
func (sd *SchemaData) buildIdentityGraph() {
	for mid, mdata := range sd.Modules {
		for _, idstmt := range mdata.Statement.FindAll("identity", "") {
			local, _ := sd.resolvePname(idstmt.Argument, mid)
			qn := QualName{Local: local, Namespace: sd.Namespace(mid)}
			node := sd.identityNode(qn)
			for _, base := range idstmt.FindAll("base", "") {
				blocal, bmid := sd.resolvePname(base.Argument, mid)
				bqn := QualName{Local: blocal, Namespace: sd.Namespace(bmid)}
				bnode := sd.identityNode(bqn)
				node.bases[bqn] = true
				bnode.derivs[qn] = true
			}
		}
	}
}

func (sd *SchemaData) identityNode(qn QualName) *identityAdjacency {
	n, ok := sd.identityAdjs[qn]
	if !ok {
		n = &identityAdjacency{bases: make(map[QualName]bool), derivs: make(map[QualName]bool)}
		sd.identityAdjs[qn] = n
	}
	return n
}

// IsDerivedFrom reports whether identity is base or is (transitively)
// derived from it (reflexive: an
// identity is derived-from-or-self of itself).
func (sd *SchemaData) IsDerivedFrom(identity, base QualName) bool {
	if identity == base {
		return true
	}
	return sd.DerivedFrom(identity, base)
}

// DerivedFrom reports whether identity is strictly, transitively derived
// from base (irreflexive).
func (sd *SchemaData) DerivedFrom(identity, base QualName) bool {
	visited := map[QualName]bool{identity: true}
	var walk func(QualName) bool
	walk = func(qn QualName) bool {
		node, ok := sd.identityAdjs[qn]
		if !ok {
			return false
		}
		for b := range node.bases {
			if b == base {
				return true
			}
			if !visited[b] {
				visited[b] = true
				if walk(b) {
					return true
				}
			}
		}
		return false
	}
	return walk(identity)
}

// DerivedFromAll reports whether identity is derived from every member of
// bases (used for identityref type
// restrictions listing more than one base).
func (sd *SchemaData) DerivedFromAll(identity QualName, bases []QualName) bool {
	for _, b := range bases {
		if !sd.DerivedFrom(identity, b) {
			return false
		}
	}
	return true
}

// DerivedIdentities returns every identity (transitively) derived from
// base, including base itself, useful for enumerating the legal value
// space of an identityref restricted to base.
func (sd *SchemaData) DerivedIdentities(base QualName) []QualName {
	out := []QualName{base}
	visited := map[QualName]bool{base: true}
	var walk func(QualName)
	walk = func(qn QualName) {
		node, ok := sd.identityAdjs[qn]
		if !ok {
			return
		}
		for d := range node.derivs {
			if !visited[d] {
				visited[d] = true
				out = append(out, d)
				walk(d)
			}
		}
	}
	walk(base)
	return out
}
