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
	"strconv"
	"strings"

	"github.com/sdcio/yang-datamodel/schema"
)

// idScanner is a minimal hand-rolled cursor over an instance-identifier
// or resource-identifier string; it does not tokenize ahead of time the
// way the xpath package's compiler does, since both grammars here are
// small and entirely "/"- and "["-delimited.
type idScanner struct {
	s   string
	pos int
}

func (p *idScanner) atEnd() bool { return p.pos >= len(p.s) }
func (p *idScanner) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.s[p.pos]
}

func (p *idScanner) expect(c byte) error {
	if p.peek() != c {
		return NewInvalidRouteError(p.s)
	}
	p.pos++
	return nil
}

// identifier reads a YANG identifier, optionally "prefix:local".
func (p *idScanner) identifier() (local, prefix string) {
	start := p.pos
	for !p.atEnd() && isIDByte(p.s[p.pos]) {
		p.pos++
	}
	tok := p.s[start:p.pos]
	if i := strings.IndexByte(tok, ':'); i >= 0 {
		return tok[i+1:], tok[:i]
	}
	return tok, ""
}

func isIDByte(c byte) bool {
	return c == '-' || c == '_' || c == '.' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// quotedValue reads a '...' or "..." literal.
func (p *idScanner) quotedValue() (string, error) {
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", NewInvalidRouteError(p.s)
	}
	p.pos++
	start := p.pos
	end := strings.IndexByte(p.s[p.pos:], q)
	if end < 0 {
		return "", NewInvalidRouteError(p.s)
	}
	val := p.s[start : start+end]
	p.pos = start + end + 1
	return val, nil
}

// ParseInstanceID parses an RFC 7950 §9.13 instance-identifier value
// into an InstanceRoute. Key and leaf-list predicate values are kept as
// their lexical strings; resolving them against a cooked Value happens
// when the route is replayed with Goto, since only the target schema
// node's type can cook them correctly.
func ParseInstanceID(text string) (InstanceRoute, error) {
	if text == "/" || text == "" {
		return nil, nil
	}
	p := &idScanner{s: text}
	var route InstanceRoute
	for {
		if err := p.expect('/'); err != nil {
			return nil, err
		}
		local, prefix := p.identifier()
		if local == "" {
			return nil, NewInvalidRouteError(text)
		}
		route = append(route, MemberName{Namespace: prefix, Local: local})
		for p.peek() == '[' {
			p.pos++
			for p.peek() == ' ' {
				p.pos++
			}
			switch {
			case p.peek() >= '0' && p.peek() <= '9':
				start := p.pos
				for p.peek() >= '0' && p.peek() <= '9' {
					p.pos++
				}
				n, err := strconv.Atoi(p.s[start:p.pos])
				if err != nil {
					return nil, NewInvalidRouteError(text)
				}
				for p.peek() == ' ' {
					p.pos++
				}
				if err := p.expect(']'); err != nil {
					return nil, err
				}
				route = append(route, EntryIndex(n-1))
			case p.peek() == '.':
				p.pos++
				for p.peek() == ' ' {
					p.pos++
				}
				if err := p.expect('='); err != nil {
					return nil, err
				}
				for p.peek() == ' ' {
					p.pos++
				}
				val, err := p.quotedValue()
				if err != nil {
					return nil, err
				}
				for p.peek() == ' ' {
					p.pos++
				}
				if err := p.expect(']'); err != nil {
					return nil, err
				}
				route = append(route, EntryValue{Value: val})
			default:
				keys := EntryKeys{}
				for {
					kl, _ := p.identifier()
					if kl == "" {
						return nil, NewInvalidRouteError(text)
					}
					for p.peek() == ' ' {
						p.pos++
					}
					if err := p.expect('='); err != nil {
						return nil, err
					}
					for p.peek() == ' ' {
						p.pos++
					}
					val, err := p.quotedValue()
					if err != nil {
						return nil, err
					}
					keys[kl] = val
					for p.peek() == ' ' {
						p.pos++
					}
					if err := p.expect(']'); err != nil {
						return nil, err
					}
					if p.peek() != '[' {
						break
					}
					p.pos++
					for p.peek() == ' ' {
						p.pos++
					}
				}
				route = append(route, keys)
			}
		}
		if p.atEnd() {
			return route, nil
		}
	}
}

// ParseResourceID parses an RFC 8040 §3.5.3 RESTCONF resource
// identifier into an InstanceRoute, resolving each segment's data or
// rpc/action child against sn as it goes (a resource identifier, unlike
// an instance-identifier, is only meaningful relative to a schema, since
// "=" key values are comma-joined positionally rather than named).
func ParseResourceID(text string, sn schema.Node) (InstanceRoute, error) {
	text = strings.TrimPrefix(text, "/")
	if text == "" {
		return nil, nil
	}
	var route InstanceRoute
	cur := sn
	for {
		slash := strings.IndexByte(text, '/')
		eq := strings.IndexByte(text, '=')
		seg := text
		if slash >= 0 && (eq < 0 || slash < eq) {
			seg = text[:slash]
		} else if eq >= 0 {
			seg = text[:eq]
		}
		local, _ := splitPrefixedName(seg)
		in, ok := cur.(schema.InternalNode)
		if !ok {
			return nil, NewNoSuchSchemaChildError(local)
		}
		child := schema.FindDataChild(in, local)
		if child == nil {
			return nil, NewNoSuchSchemaChildError(local)
		}
		route = append(route, MemberName{Local: local})
		rest := text[len(seg):]
		if strings.HasPrefix(rest, "=") {
			rest = rest[1:]
			end := strings.IndexByte(rest, '/')
			var keysPart string
			if end < 0 {
				keysPart, rest = rest, ""
			} else {
				keysPart, rest = rest[:end], rest[end:]
			}
			switch n := child.(type) {
			case *schema.LeafList:
				route = append(route, EntryValue{Value: keysPart})
			case *schema.List:
				parts := strings.Split(keysPart, ",")
				if len(parts) != len(n.Keys) {
					return nil, NewInvalidRouteError(text)
				}
				keys := EntryKeys{}
				for i, kname := range n.Keys {
					keys[kname] = parts[i]
				}
				route = append(route, keys)
			default:
				return nil, NewInvalidRouteError(text)
			}
		}
		rest = strings.TrimPrefix(rest, "/")
		if rest == "" {
			return route, nil
		}
		text, cur = rest, child
	}
}

func splitPrefixedName(seg string) (local, prefix string) {
	if i := strings.IndexByte(seg, ':'); i >= 0 {
		return seg[i+1:], seg[:i]
	}
	return seg, ""
}
