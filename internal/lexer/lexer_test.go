package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdecook/treewalk/internal/token"
)

func scanTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	s := New([]byte(src))
	toks := s.Scan()
	require.False(t, s.HadError(), "unexpected scan errors: %v", s.Errors())

	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestScanPunctuationAndOperators(t *testing.T) {
	types := scanTypes(t, "(){}[],.-+;*/ == != <= >= = < >")
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen,
		token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash,
		token.EqualEqual, token.BangEqual, token.LessEqual, token.GreaterEqual,
		token.Equal, token.Less, token.Greater,
		token.EOF,
	}, types)
}

func TestScanSkipsLineComments(t *testing.T) {
	types := scanTypes(t, "1 // this is a comment\n2")
	assert.Equal(t, []token.Type{token.Number, token.Number, token.EOF}, types)
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	s := New([]byte("class orbit or organ"))
	toks := s.Scan()
	require.False(t, s.HadError())
	assert.Equal(t, token.Class, toks[0].Type)
	assert.Equal(t, token.Identifier, toks[1].Type, "orbit must not be split at 'or'")
	assert.Equal(t, token.Or, toks[2].Type)
	assert.Equal(t, token.Identifier, toks[3].Type)
}

func TestScanNumberLiteralNormalizesToFloat(t *testing.T) {
	s := New([]byte("42"))
	toks := s.Scan()
	require.False(t, s.HadError())
	require.Len(t, toks, 2)
	assert.Equal(t, "42.0", toks[0].Literal)
}

func TestScanStringLiteralStripsQuotes(t *testing.T) {
	s := New([]byte(`"hello world"`))
	toks := s.Scan()
	require.False(t, s.HadError())
	require.Len(t, toks, 2)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedStringIsAnError(t *testing.T) {
	s := New([]byte(`"unterminated`))
	s.Scan()
	assert.True(t, s.HadError())
	assert.Len(t, s.Errors(), 1)
}

func TestScanUnexpectedCharacterIsAnError(t *testing.T) {
	s := New([]byte("@"))
	s.Scan()
	assert.True(t, s.HadError())
}

func TestIdentifierDoesNotSwallowFollowingBracket(t *testing.T) {
	// Regression: the teacher's isAlphaNumeric used 'A' <= c <= 'z' for the
	// uppercase bound, which wrongly treated '[' (0x5B, between 'Z' and
	// 'a') as part of an identifier, so "a[0]" would scan as one
	// identifier "a[" instead of Identifier, LeftBracket, Number, RightBracket.
	s := New([]byte("a[0]"))
	toks := s.Scan()
	require.False(t, s.HadError())
	require.Len(t, toks, 5)
	assert.Equal(t, token.Identifier, toks[0].Type)
	assert.Equal(t, "a", toks[0].Lexeme)
	assert.Equal(t, token.LeftBracket, toks[1].Type)
	assert.Equal(t, token.Number, toks[2].Type)
	assert.Equal(t, token.RightBracket, toks[3].Type)
}
