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

package statement

import (
	"strings"
	"testing"
)

const sampleModule = `
module example-1 {
  namespace "http://example.com/ns/example-1";
  prefix ex;

  import ietf-yang-types {
    prefix yang;
  }

  // a line comment
  container bag /* trailing block comment */ {
    leaf baz {
      type uint8;
      default 99;
    }
    leaf concatenated {
      type string;
      description "first part "
                 + "second part";
    }
  }
}
`

func TestParseBasicModule(t *testing.T) {
	stmt, err := Parse("example-1.yang", sampleModule)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if stmt.Keyword != "module" || stmt.Argument != "example-1" {
		t.Fatalf("unexpected root statement: %s", stmt)
	}
	ns := stmt.Find1("namespace", "")
	if ns == nil || ns.Argument != "http://example.com/ns/example-1" {
		t.Fatalf("namespace not parsed correctly: %v", ns)
	}
	imp := stmt.Find1("import", "", "ietf-yang-types")
	if imp == nil {
		t.Fatalf("import not found")
	}
	if pfx := imp.Find1("prefix", ""); pfx == nil || pfx.Argument != "yang" {
		t.Fatalf("import prefix not parsed: %v", pfx)
	}

	bag := stmt.Find1("container", "", "bag")
	if bag == nil {
		t.Fatalf("container bag not found")
	}
	baz := bag.Find1("leaf", "", "baz")
	if baz == nil {
		t.Fatalf("leaf baz not found")
	}
	if def := baz.Find1("default", ""); def == nil || def.Argument != "99" {
		t.Fatalf("default not parsed: %v", def)
	}

	concat := bag.Find1("leaf", "", "concatenated")
	if concat == nil {
		t.Fatalf("leaf concatenated not found")
	}
	desc := concat.Find1("description", "")
	if desc == nil || desc.Argument != "first part second part" {
		t.Fatalf("string concatenation not handled: %v", desc)
	}
}

func TestGetDefinitionSearchesAncestors(t *testing.T) {
	src := `
module m {
  namespace "urn:m";
  prefix m;
  grouping g1 {
    leaf x { type string; }
  }
  container top {
    uses g1;
  }
}`
	stmt, err := Parse("m.yang", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	top := stmt.Find1("container", "", "top")
	uses := top.Find1("uses", "", "g1")
	def := uses.GetDefinition("g1", "grouping")
	if def == nil {
		t.Fatalf("expected to find grouping g1 via ancestor search")
	}
	if def.Keyword != "grouping" || def.Argument != "g1" {
		t.Fatalf("unexpected definition: %s", def)
	}
}

func TestInvalidEscapeSequenceIsAnError(t *testing.T) {
	src := `module m { namespace "urn:m"; prefix m; description "bad \x escape"; }`
	_, err := Parse("m.yang", src)
	if err == nil {
		t.Fatalf("expected an error for invalid escape sequence")
	}
}

func TestRoundTripReparsesToEquivalentTree(t *testing.T) {
	stmt, err := Parse("example-1.yang", sampleModule)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	text := pretty(stmt, 0)
	stmt2, err := Parse("example-1.yang", text)
	if err != nil {
		t.Fatalf("reparse failed: %v\n%s", err, text)
	}
	if !structurallyEqual(stmt, stmt2) {
		t.Fatalf("round trip mismatch:\n%s\nvs\n%s", pretty(stmt, 0), pretty(stmt2, 0))
	}
}

func pretty(s *Statement, indent int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(s.QKeyword())
	if s.HasArg {
		b.WriteString(` "`)
		b.WriteString(escapeTable.Replace(s.Argument))
		b.WriteString(`"`)
	}
	if len(s.Sub) == 0 {
		b.WriteString(";\n")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, sub := range s.Sub {
		b.WriteString(pretty(sub, indent+1))
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("}\n")
	return b.String()
}

func structurallyEqual(a, b *Statement) bool {
	if a.Keyword != b.Keyword || a.Prefix != b.Prefix ||
		a.Argument != b.Argument || a.HasArg != b.HasArg ||
		len(a.Sub) != len(b.Sub) {
		return false
	}
	for i := range a.Sub {
		if !structurallyEqual(a.Sub[i], b.Sub[i]) {
			return false
		}
	}
	return true
}
