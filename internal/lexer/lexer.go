// Package lexer turns source text into a stream of tokens for the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samdecook/treewalk/internal/token"
)

// Scanner walks source bytes and produces tokens. One Scanner instance is
// single-use: construct with New, call Scan once.
type Scanner struct {
	line     int
	source   []byte
	idx      int
	ch       byte
	hadError bool
	errors   []string
}

// New returns a Scanner ready to tokenize source.
func New(source []byte) *Scanner {
	return &Scanner{line: 1, source: source, idx: -1}
}

// Errors reports lexical errors collected during Scan, one per offending
// character or unterminated literal.
func (s *Scanner) Errors() []string { return s.errors }

// HadError reports whether any lexical error was recorded.
func (s *Scanner) HadError() bool { return s.hadError }

func (s *Scanner) next() bool {
	if s.idx == len(s.source)-1 {
		return false
	}
	s.idx++
	s.ch = s.source[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx == len(s.source)-1 {
		return 0
	}
	return s.source[s.idx+1]
}

func (s *Scanner) peekTwo() byte {
	if s.idx >= len(s.source)-2 {
		return 0
	}
	return s.source[s.idx+2]
}

func (s *Scanner) comment() {
	for {
		if !s.next() || s.ch == '\n' {
			break
		}
	}
}

func (s *Scanner) stringLiteral() (string, bool) {
	start := s.idx
	for {
		if !s.next() {
			s.errorf("Unterminated string.")
			return "", false
		} else if s.ch == '"' {
			break
		} else if s.ch == '\n' {
			s.line++
		}
	}
	return string(s.source[start : s.idx+1]), true
}

func (s *Scanner) numberLiteral() (string, string) {
	start := s.idx

	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekTwo()) {
		s.next()
	}
	for isDigit(s.peek()) {
		s.next()
	}

	lexeme := string(s.source[start : s.idx+1])
	f, _ := strconv.ParseFloat(lexeme, 64)
	literal := fmt.Sprintf("%g", f)
	if !strings.Contains(literal, ".") {
		literal += ".0"
	}
	return lexeme, literal
}

func (s *Scanner) identifier() string {
	start := s.idx
	for isAlphaNumeric(s.peek()) {
		s.next()
	}
	return string(s.source[start : s.idx+1])
}

func (s *Scanner) errorf(format string, args ...any) {
	s.hadError = true
	s.errors = append(s.errors, fmt.Sprintf("[line %d] Error: %s", s.line, fmt.Sprintf(format, args...)))
}

// Scan tokenizes the whole source and returns the token list, always
// terminated by a single EOF token.
func (s *Scanner) Scan() []token.Token {
	toks := make([]token.Token, 0, len(s.source)/4+1)

	add := func(typ token.Type, lexeme string) {
		toks = append(toks, token.Token{Type: typ, Lexeme: lexeme, Line: s.line})
	}

	for s.next() {
		switch s.ch {
		case ' ', '\t', '\r':
		case '\n':
			s.line++
		case '(':
			add(token.LeftParen, "(")
		case ')':
			add(token.RightParen, ")")
		case '{':
			add(token.LeftBrace, "{")
		case '}':
			add(token.RightBrace, "}")
		case '[':
			add(token.LeftBracket, "[")
		case ']':
			add(token.RightBracket, "]")
		case ',':
			add(token.Comma, ",")
		case '.':
			add(token.Dot, ".")
		case '-':
			add(token.Minus, "-")
		case '+':
			add(token.Plus, "+")
		case ';':
			add(token.Semicolon, ";")
		case '*':
			add(token.Star, "*")
		case '/':
			if s.peek() == '/' {
				s.comment()
			} else {
				add(token.Slash, "/")
			}
		case '=':
			if s.peek() == '=' {
				s.next()
				add(token.EqualEqual, "==")
			} else {
				add(token.Equal, "=")
			}
		case '!':
			if s.peek() == '=' {
				s.next()
				add(token.BangEqual, "!=")
			} else {
				add(token.Bang, "!")
			}
		case '<':
			if s.peek() == '=' {
				s.next()
				add(token.LessEqual, "<=")
			} else {
				add(token.Less, "<")
			}
		case '>':
			if s.peek() == '=' {
				s.next()
				add(token.GreaterEqual, ">=")
			} else {
				add(token.Greater, ">")
			}
		case '"':
			str, ok := s.stringLiteral()
			if ok {
				toks = append(toks, token.Token{
					Type:    token.String,
					Lexeme:  str,
					Literal: strings.Trim(str, `"`),
					Line:    s.line,
				})
			}
		default:
			switch {
			case isDigit(s.ch):
				lexeme, literal := s.numberLiteral()
				toks = append(toks, token.Token{Type: token.Number, Lexeme: lexeme, Literal: literal, Line: s.line})
			case isAlpha(s.ch):
				ident := s.identifier()
				if kind, ok := token.Reserved[ident]; ok {
					add(kind, ident)
				} else {
					add(token.Identifier, ident)
				}
			default:
				s.errorf("Unexpected character: %s", string(s.ch))
			}
		}
	}

	toks = append(toks, token.Token{Type: token.EOF, Line: s.line})
	return toks
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
