// Package csharp reads the header of a C# source file into a syntax tree.
//
// Only what precedes the first member is recognized: trivia, extern alias
// directives and using directives. The rest of the file is kept verbatim,
// so using directives inside namespace blocks are never seen by rules.
package csharp

import (
	"fmt"
	"strings"

	"github.com/siyuan-infoblox/using-order/pkg/syntax"
)

// SyntaxError reports a malformed header construct
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type scanner struct {
	src string
	pos int
}

// Parse builds a compilation unit from decoded source text. Rendering the
// result with FullString reproduces text exactly.
func Parse(text string) (*syntax.CompilationUnit, error) {
	s := &scanner{src: text}
	var externs []*syntax.ExternAliasDirective
	var usings []*syntax.UsingDirective

	for {
		start := s.pos
		leading, err := s.leadingTrivia()
		if err != nil {
			return nil, err
		}
		if s.eof() {
			return syntax.NewCompilationUnit(externs, usings, syntax.NewMembers(text[start:])), nil
		}

		switch {
		case len(usings) == 0 && s.atExternAlias():
			body, err := s.directiveBody("extern alias")
			if err != nil {
				return nil, err
			}
			externs = append(externs, syntax.NewExternAliasDirective(leading, body, s.trailingTrivia()))
		case s.atUsingDirective():
			body, err := s.directiveBody("using")
			if err != nil {
				return nil, err
			}
			name := usingName(body)
			if name == "" {
				line, col := s.position(s.pos - len(body))
				return nil, &SyntaxError{Line: line, Col: col, Msg: "using directive has no name"}
			}
			usings = append(usings, syntax.NewUsingDirective(leading, body, name, s.trailingTrivia()))
		default:
			return syntax.NewCompilationUnit(externs, usings, syntax.NewMembers(text[start:])), nil
		}
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) rest() string { return s.src[s.pos:] }

// atLineStart reports whether only spaces and tabs precede pos on its line
func (s *scanner) atLineStart() bool {
	for i := s.pos - 1; i >= 0; i-- {
		switch s.src[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

func (s *scanner) leadingTrivia() (syntax.TriviaList, error) {
	var list syntax.TriviaList
	for !s.eof() {
		switch c := s.src[s.pos]; {
		case isSpace(c):
			list = append(list, s.whitespace())
		case c == '\r' || c == '\n':
			list = append(list, s.endOfLine())
		case strings.HasPrefix(s.rest(), "//"):
			list = append(list, s.toLineEnd(syntax.SingleLineCommentTrivia))
		case strings.HasPrefix(s.rest(), "/*"):
			t, err := s.blockComment()
			if err != nil {
				return nil, err
			}
			list = append(list, t)
		case c == '#' && s.atLineStart():
			list = append(list, s.toLineEnd(syntax.DirectiveTrivia))
		default:
			return list, nil
		}
	}
	return list, nil
}

// trailingTrivia consumes trivia up to and including the first line break
func (s *scanner) trailingTrivia() syntax.TriviaList {
	var list syntax.TriviaList
	for !s.eof() {
		switch c := s.src[s.pos]; {
		case isSpace(c):
			list = append(list, s.whitespace())
		case c == '\r' || c == '\n':
			return append(list, s.endOfLine())
		case strings.HasPrefix(s.rest(), "//"):
			list = append(list, s.toLineEnd(syntax.SingleLineCommentTrivia))
		case strings.HasPrefix(s.rest(), "/*"):
			end := strings.Index(s.src[s.pos+2:], "*/")
			if end < 0 {
				// leave it for leadingTrivia to report
				return list
			}
			list = append(list, s.take(syntax.MultiLineCommentTrivia, end+4))
		default:
			return list
		}
	}
	return list
}

func (s *scanner) take(kind syntax.TriviaKind, n int) syntax.Trivia {
	t := syntax.Trivia{Kind: kind, Text: s.src[s.pos : s.pos+n]}
	s.pos += n
	return t
}

func (s *scanner) whitespace() syntax.Trivia {
	n := 0
	for s.pos+n < len(s.src) && isSpace(s.src[s.pos+n]) {
		n++
	}
	return s.take(syntax.WhitespaceTrivia, n)
}

func (s *scanner) endOfLine() syntax.Trivia {
	if strings.HasPrefix(s.rest(), "\r\n") {
		return s.take(syntax.EndOfLineTrivia, 2)
	}
	return s.take(syntax.EndOfLineTrivia, 1)
}

func (s *scanner) toLineEnd(kind syntax.TriviaKind) syntax.Trivia {
	n := strings.IndexAny(s.rest(), "\r\n")
	if n < 0 {
		n = len(s.src) - s.pos
	}
	return s.take(kind, n)
}

func (s *scanner) blockComment() (syntax.Trivia, error) {
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end < 0 {
		line, col := s.position(s.pos)
		return syntax.Trivia{}, &SyntaxError{Line: line, Col: col, Msg: "unterminated block comment"}
	}
	return s.take(syntax.MultiLineCommentTrivia, end+4), nil
}

// keywordAt returns the identifier starting at offset i of the remaining
// input and the offset just past it
func (s *scanner) keywordAt(i int) (string, int) {
	rest := s.rest()
	j := i
	for j < len(rest) && isIdentChar(rest[j]) {
		j++
	}
	return rest[i:j], j
}

// skipSpaceAt skips whitespace, line breaks and comments from offset i
func (s *scanner) skipSpaceAt(i int) int {
	rest := s.rest()
	for i < len(rest) {
		switch {
		case isSpace(rest[i]) || rest[i] == '\r' || rest[i] == '\n':
			i++
		case strings.HasPrefix(rest[i:], "//"):
			n := strings.IndexAny(rest[i:], "\r\n")
			if n < 0 {
				return len(rest)
			}
			i += n
		case strings.HasPrefix(rest[i:], "/*"):
			n := strings.Index(rest[i+2:], "*/")
			if n < 0 {
				return len(rest)
			}
			i += n + 4
		default:
			return i
		}
	}
	return i
}

func (s *scanner) atExternAlias() bool {
	kw, next := s.keywordAt(0)
	if kw != "extern" {
		return false
	}
	kw, _ = s.keywordAt(s.skipSpaceAt(next))
	return kw == "alias"
}

// atUsingDirective distinguishes `[global] using [static] Name;` from using
// statements such as `using (var x = ...)` and `using var x = ...;`
func (s *scanner) atUsingDirective() bool {
	kw, next := s.keywordAt(0)
	if kw == "global" {
		kw, next = s.keywordAt(s.skipSpaceAt(next))
	}
	if kw != "using" {
		return false
	}
	i := s.skipSpaceAt(next)
	rest := s.rest()
	if i >= len(rest) || rest[i] == '(' {
		return false
	}
	word, after := s.keywordAt(i)
	if word == "var" || word == "await" {
		// `using var;` would name a namespace called var
		j := s.skipSpaceAt(after)
		return j < len(rest) && (rest[j] == ';' || rest[j] == '.' || rest[j] == '=')
	}
	return true
}

// directiveBody consumes a directive through its semicolon
func (s *scanner) directiveBody(what string) (string, error) {
	start := s.pos
	rest := s.rest()
	end := strings.IndexAny(rest, ";{}")
	if end < 0 || rest[end] != ';' {
		line, col := s.position(start)
		return "", &SyntaxError{Line: line, Col: col, Msg: what + " directive is missing ';'"}
	}
	s.pos += end + 1
	return s.src[start:s.pos], nil
}

// position converts a byte offset into a 1-based line and column
func (s *scanner) position(offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(s.src); i++ {
		if s.src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// usingName extracts the namespace from a using directive, dropping
// keywords, the alias, comments and whitespace
func usingName(body string) string {
	body = strings.TrimSuffix(stripComments(body), ";")
	fields := strings.Fields(body)
	for len(fields) > 0 && (fields[0] == "global" || fields[0] == "using" || fields[0] == "static") {
		fields = fields[1:]
	}
	name := strings.Join(fields, "")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func stripComments(s string) string {
	var b strings.Builder
	for len(s) > 0 {
		switch {
		case strings.HasPrefix(s, "//"):
			n := strings.IndexAny(s, "\r\n")
			if n < 0 {
				return b.String()
			}
			s = s[n:]
		case strings.HasPrefix(s, "/*"):
			n := strings.Index(s[2:], "*/")
			if n < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			s = s[n+4:]
		default:
			b.WriteByte(s[0])
			s = s[1:]
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '@' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
