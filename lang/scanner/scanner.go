// Some of the scanner package's low-level byte/rune handling is adapted
// from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"go/scanner"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// Value carries the payload of a token that isn't fully described by its
// kind alone: an identifier's representation handle, or a literal's raw
// text and decoded value.
type Value struct {
	Pos  token.Pos
	Raw  string
	Repr uint32 // valid when Token == token.IDENT: the ident.Table handle
	Int  int64
	Flt  float64
}

// TokenAndValue combines the token kind with its value in one struct.
type TokenAndValue struct {
	Token token.Token
	Value Value
}

// ScanFiles tokenizes the given source files against a shared name table,
// returning the tokens grouped by file and any lexical errors. idents must
// already have had Bootstrap and SeedMain called.
func ScanFiles(ctx context.Context, idents *ident.Table, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		fsf := fs.AddFile(file, -1, len(b))
		s.Init(fsf, b, idents, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes one source file for the parser to
// consume. It consults a shared ident.Table so that every identifier
// spelling — including keywords, seeded once via Table.Bootstrap — is
// interned exactly once across the whole compilation (spec.md §4.1).
type Scanner struct {
	// immutable state after Init
	file   *token.File
	src    []byte
	idents *ident.Table
	err    func(pos token.Position, msg string)

	// mutable scanning state
	cur rune // current character
	off int  // byte offset of cur
	roff int // reading offset (byte offset after cur)
}

var bom = [2]byte{0xFE, 0xFF}

// Init initializes the scanner to tokenize a new file.
func (s *Scanner) Init(file *token.File, src []byte, idents *ident.Table, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.idents = idents
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0

	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// keywordToken returns the token kind for a keyword's negative class, per
// the correspondence ident.Table.Bootstrap establishes with token.Keywords
// (class -1 is token.Keywords[0], -2 is token.Keywords[1], and so on).
func keywordToken(class int) token.Token {
	i := -class - 1
	if i < 0 || i >= len(token.Keywords) {
		return token.ILLEGAL
	}
	return token.Keywords[i]
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(val *Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		h := s.idents.Intern(lit)
		tok = token.IDENT
		if b := s.idents.CurrentBinding(h); b.Kind == ident.BindKeyword {
			tok = keywordToken(b.Class)
		}
		*val = Value{Raw: lit, Pos: pos, Repr: uint32(h)}

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peek()))):
		tok = s.number(val, pos)

	default:
		s.advance()
		switch cur {
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMI
		case '~':
			tok = token.TILDE
		case '?':
			tok = token.QUESTION

		case '+':
			tok = token.PLUS
			if s.advanceIf('+') {
				tok = token.INC
			} else if s.advanceIf('=') {
				tok = token.PLUS_EQ
			}
		case '-':
			tok = token.MINUS
			if s.advanceIf('-') {
				tok = token.DEC
			} else if s.advanceIf('=') {
				tok = token.MINUS_EQ
			} else if s.advanceIf('>') {
				tok = token.ARROW
			}
		case '*':
			tok = token.STAR
			if s.advanceIf('=') {
				tok = token.STAR_EQ
			}
		case '/':
			tok = token.SLASH
			if s.advanceIf('=') {
				tok = token.SLASH_EQ
			}
		case '%':
			tok = token.PERCENT
			if s.advanceIf('=') {
				tok = token.PERCENT_EQ
			}
		case '^':
			tok = token.CARET
			if s.advanceIf('=') {
				tok = token.CARET_EQ
			}
		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQL
			}
		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.NEQ
			}
		case '&':
			tok = token.AMP
			if s.advanceIf('&') {
				tok = token.ANDAND
			} else if s.advanceIf('=') {
				tok = token.AMP_EQ
			}
		case '|':
			tok = token.PIPE
			if s.advanceIf('|') {
				tok = token.OROR
			} else if s.advanceIf('=') {
				tok = token.PIPE_EQ
			}
		case '<':
			tok = token.LT
			if s.advanceIf('<') {
				tok = token.SHL
				if s.advanceIf('=') {
					tok = token.SHL_EQ
				}
			} else if s.advanceIf('=') {
				tok = token.LE
			}
		case '>':
			tok = token.GT
			if s.advanceIf('>') {
				tok = token.SHR
				if s.advanceIf('=') {
					tok = token.SHR_EQ
				}
			} else if s.advanceIf('=') {
				tok = token.GE
			}
		case ':':
			tok = token.COLON
		case '.':
			tok = token.DOT

		case '\'':
			tok = token.CHAR
			r := s.charLiteral(start)
			*val = Value{Raw: string(s.src[start:s.off]), Pos: pos, Int: int64(r)}
			return tok
		case '"':
			tok = token.STRING
			lit := s.stringLiteral(start)
			*val = Value{Raw: lit, Pos: pos}
			return tok

		case -1:
			tok = token.EOF

		default:
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
		}
		*val = Value{Raw: string(s.src[start:s.off]), Pos: pos}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		case s.cur == '/' && s.peek() == '*':
			start := s.off
			s.advance()
			s.advance()
			closed := false
			for s.cur != -1 {
				if s.cur == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				s.error(start, "unterminated block comment")
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
