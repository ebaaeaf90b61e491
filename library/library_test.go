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
	"testing"
)

// memSource serves module text from an in-memory map keyed by "name" or
// "name@revision", so library tests never touch the filesystem.
type memSource struct {
	modules map[string]string
}

func (m *memSource) Load(name, revision string) (string, error) {
	if revision != "" {
		if text, ok := m.modules[name+"@"+revision]; ok {
			return text, nil
		}
	}
	if text, ok := m.modules[name]; ok {
		return text, nil
	}
	return "", NewModuleNotFoundError(name, revision)
}

const testLibraryJSON = `{
  "ietf-yang-library:modules-state": {
    "module-set-id": "test-1",
    "module": [
      {
        "name": "base-types",
        "revision": "2024-01-01",
        "namespace": "urn:test:base-types",
        "conformance-type": "implement",
        "feature": ["ipv6"]
      },
      {
        "name": "main-mod",
        "revision": "2024-01-01",
        "namespace": "urn:test:main-mod",
        "conformance-type": "implement",
        "feature": []
      }
    ]
  }
}`

const baseTypesYang = `module base-types {
  namespace "urn:test:base-types";
  prefix bt;
  revision 2024-01-01;

  feature ipv6;

  identity transport-protocol;
  identity tcp {
    base transport-protocol;
  }
  identity udp {
    base transport-protocol;
  }
}
`

const mainModYang = `module main-mod {
  namespace "urn:test:main-mod";
  prefix mm;
  revision 2024-01-01;

  import base-types {
    prefix bt;
  }

  identity quic {
    base bt:transport-protocol;
  }

  feature gated {
    if-feature "bt:ipv6";
  }

  container top {
    leaf proto {
      type string;
      if-feature "gated";
    }
  }
}
`

func newTestSchemaData(t *testing.T) *SchemaData {
	t.Helper()
	src := &memSource{modules: map[string]string{
		"base-types": baseTypesYang,
		"main-mod":   mainModYang,
	}}
	sd, err := FromLibraryData([]byte(testLibraryJSON), src)
	if err != nil {
		t.Fatalf("FromLibraryData: %v", err)
	}
	return sd
}

func TestFromLibraryDataOrdersByImport(t *testing.T) {
	sd := newTestSchemaData(t)
	order := sd.ImplementedOrder()
	idx := make(map[string]int)
	for i, mid := range order {
		idx[mid.Name] = i
	}
	if idx["base-types"] >= idx["main-mod"] {
		t.Fatalf("expected base-types before main-mod, got order %v", order)
	}
}

func TestResolvePnameUnprefixedAndPrefixed(t *testing.T) {
	sd := newTestSchemaData(t)
	mm := ModuleIdentifier{Name: "main-mod", Revision: "2024-01-01"}

	local, owner, err := sd.ResolvePname("top", mm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != "top" || owner != mm {
		t.Fatalf("got (%s, %s), want (top, %s)", local, owner, mm)
	}

	local, owner, err = sd.ResolvePname("bt:tcp", mm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bt := ModuleIdentifier{Name: "base-types", Revision: "2024-01-01"}
	if local != "tcp" || owner != bt {
		t.Fatalf("got (%s, %s), want (tcp, %s)", local, owner, bt)
	}
}

func TestResolvePnameUnknownPrefix(t *testing.T) {
	sd := newTestSchemaData(t)
	mm := ModuleIdentifier{Name: "main-mod", Revision: "2024-01-01"}
	if _, _, err := sd.ResolvePname("zz:foo", mm); err == nil {
		t.Fatal("expected an error for unknown prefix")
	}
}

func TestIdentityDerivation(t *testing.T) {
	sd := newTestSchemaData(t)
	base := QualName{Local: "transport-protocol", Namespace: "base-types"}
	tcp := QualName{Local: "tcp", Namespace: "base-types"}
	quic := QualName{Local: "quic", Namespace: "main-mod"}
	unrelated := QualName{Local: "udp", Namespace: "base-types"}

	if !sd.IsDerivedFrom(tcp, base) {
		t.Error("tcp should be derived from transport-protocol")
	}
	if !sd.IsDerivedFrom(quic, base) {
		t.Error("quic (in main-mod) should be derived from transport-protocol (in base-types)")
	}
	if sd.DerivedFrom(base, base) {
		t.Error("DerivedFrom should be irreflexive")
	}
	if !sd.IsDerivedFrom(base, base) {
		t.Error("IsDerivedFrom should be reflexive")
	}
	if sd.IsDerivedFrom(unrelated, tcp) {
		t.Error("udp should not be derived from tcp")
	}

	derived := sd.DerivedIdentities(base)
	names := make([]string, len(derived))
	for i, qn := range derived {
		names[i] = qn.String()
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"base-types:transport-protocol", "base-types:tcp", "base-types:udp", "main-mod:quic"} {
		if !strings.Contains(joined, want) {
			t.Errorf("DerivedIdentities(base) = %v, missing %s", names, want)
		}
	}
}

func TestIfFeaturesGatesOnSupportedFeature(t *testing.T) {
	sd := newTestSchemaData(t)
	mm := ModuleIdentifier{Name: "main-mod", Revision: "2024-01-01"}
	leaf := mm
	_ = leaf
	mdata := sd.Modules[mm]
	gatedFeature := mdata.Statement.Find1("feature", "", "gated")
	if gatedFeature == nil {
		t.Fatal("expected feature gated in main-mod")
	}
	ok, err := sd.IfFeatures(gatedFeature, mm)
	if err != nil {
		t.Fatalf("IfFeatures: %v", err)
	}
	if !ok {
		t.Error("gated feature's if-feature bt:ipv6 should hold: base-types declares ipv6 supported")
	}
}

func TestFeatureExprPrecedence(t *testing.T) {
	sd := newTestSchemaData(t)
	mm := ModuleIdentifier{Name: "main-mod", Revision: "2024-01-01"}
	bt := ModuleIdentifier{Name: "base-types", Revision: "2024-01-01"}
	sd.Modules[bt].Features["extra"] = false

	cases := []struct {
		expr string
		want bool
	}{
		{"bt:ipv6", true},
		{"not bt:ipv6", false},
		{"bt:ipv6 and not bt:ipv6", false},
		{"bt:ipv6 or (not bt:ipv6 and not bt:ipv6)", true},
	}
	for _, c := range cases {
		p := &featureExprParser{sd: sd, mid: mm, text: c.expr}
		got, err := p.parse()
		if err != nil {
			t.Fatalf("parse(%q): %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("parse(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}
