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

import "strings"

type parser struct {
	name string
	lex  *lexer
	tok  item
}

// Parse tokenizes and parses the text of a single YANG module or submodule,
// returning its top-level statement. name identifies the source for error
// messages (typically the file name).
func Parse(name, text string) (*Statement, error) {
	p := &parser{name: name, lex: lex(name, text)}
	p.advance()
	stmt, err := p.parseStatement(nil)
	if err != nil {
		return nil, err
	}
	if p.tok.typ != itemEOF {
		return nil, NewUnexpectedInputError(p.coords(), p.tok.val, "end of input")
	}
	if stmt.Keyword != "module" && stmt.Keyword != "submodule" {
		return nil, NewUnexpectedInputError(p.coords(), stmt.Keyword, `"module" or "submodule"`)
	}
	return stmt, nil
}

func (p *parser) coords() Coordinates {
	return Coordinates{Module: p.name, Line: p.tok.line}
}

func (p *parser) advance() {
	p.tok = p.lex.nextItem()
	if p.tok.typ == itemError {
		if p.lex.lastErr != nil {
			// surface the precise error raised during lexing, e.g. a bad
			// escape sequence, rather than the generic lex failure text.
			panic(parseAbort{p.lex.lastErr})
		}
		panic(parseAbort{NewUnexpectedInputError(p.coords(), p.tok.val, "valid token")})
	}
}

// parseAbort lets deeply nested recursive-descent calls unwind to the
// top-level Parse call without threading an error return through every
// frame, mirroring how the lexer's goroutine reports a fatal condition by
// closing over a single terminal state.
type parseAbort struct{ err error }

func (p *parser) parseStatement(parent *Statement) (stmt *Statement, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(parseAbort); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()
	return p.mustParseStatement(parent), nil
}

func (p *parser) mustParseStatement(parent *Statement) *Statement {
	if p.tok.typ == itemEOF {
		panic(parseAbort{NewEndOfInputError(p.coords())})
	}
	if p.tok.typ != itemWord {
		panic(parseAbort{NewUnexpectedInputError(p.coords(), p.tok.val, "keyword")})
	}
	kwTok := p.tok.val
	line := p.tok.line
	keyword, prefix := splitPrefixed(kwTok)
	p.advance()

	stmt := &Statement{Keyword: keyword, Prefix: prefix, Parent: parent,
		Pos: Coordinates{Module: p.name, Line: line}}

	switch p.tok.typ {
	case itemSemicolon, itemLeftBrace:
		// no argument
	case itemWord:
		stmt.Argument = p.tok.val
		stmt.HasArg = true
		p.advance()
	case itemQuotedArg:
		stmt.Argument = p.parseConcatenatedString()
		stmt.HasArg = true
	default:
		panic(parseAbort{NewUnexpectedInputError(p.coords(), p.tok.val, "argument, ';' or '{'")})
	}

	switch p.tok.typ {
	case itemSemicolon:
		p.advance()
	case itemLeftBrace:
		p.advance()
		for p.tok.typ != itemRightBrace {
			if p.tok.typ == itemEOF {
				panic(parseAbort{NewEndOfInputError(p.coords())})
			}
			stmt.Sub = append(stmt.Sub, p.mustParseStatement(stmt))
		}
		p.advance()
	default:
		panic(parseAbort{NewUnexpectedInputError(p.coords(), p.tok.val, "';' or '{'")})
	}
	return stmt
}

// parseConcatenatedString consumes a quoted string and any following
// `+ "..."` / `+ '...'` continuations, concatenating them. Concatenation
// is only legal between quoted parts.
func (p *parser) parseConcatenatedString() string {
	var b strings.Builder
	b.WriteString(p.tok.val)
	p.advance()
	for p.tok.typ == itemPlus {
		p.advance()
		if p.tok.typ != itemQuotedArg {
			panic(parseAbort{NewUnexpectedInputError(p.coords(), p.tok.val, "quoted string after '+'")})
		}
		b.WriteString(p.tok.val)
		p.advance()
	}
	return b.String()
}

func splitPrefixed(tok string) (keyword, prefix string) {
	if i := strings.IndexByte(tok, ':'); i >= 0 {
		return tok[i+1:], tok[:i]
	}
	return tok, ""
}
