package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexer_CharTokens(t *testing.T) {
	lex := NewLexer("(+ - * / %> < == != = &&||)")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{
		LEFT_PAREN, PLUS_OP, MINUS_OP, MUL_OP, DIV_OP, MOD_OP,
		GT_OP, LT_OP, EQ_OP, NEQ_OP, ASSIGN_OP, AND_OP, OR_OP, RIGHT_PAREN,
	}, tokenTypes(tokens))
}

func TestLexer_PowerOperator(t *testing.T) {
	lex := NewLexer("2 ** 3")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{INT_LIT, POW_OP, INT_LIT}, tokenTypes(tokens))
}

func TestLexer_WordTokens(t *testing.T) {
	lex := NewLexer("if else while begin end int float char bool let print println")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{
		IF_KEY, ELSE_KEY, WHILE_KEY, BEGIN_KEY, END_KEY,
		INT_TYPE, FLOAT_TYPE, CHAR_TYPE, BOOL_TYPE, LET_KEY, PRINT_KEY, PRINTLN_KEY,
	}, tokenTypes(tokens))
}

func TestLexer_Literals(t *testing.T) {
	lex := NewLexer("123 1.23 'a' true false")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{INT_LIT, FLOAT_LIT, CHAR_LIT, BOOL_LIT, BOOL_LIT}, tokenTypes(tokens))
	assert.Equal(t, "123", tokens[0].Literal)
	assert.Equal(t, "1.23", tokens[1].Literal)
	assert.Equal(t, "a", tokens[2].Literal)
	assert.Equal(t, "true", tokens[3].Literal)
	assert.Equal(t, "false", tokens[4].Literal)
}

func TestLexer_Symbols(t *testing.T) {
	lex := NewLexer("these are user defined")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{IDENTIFIER_ID, IDENTIFIER_ID, IDENTIFIER_ID, IDENTIFIER_ID}, tokenTypes(tokens))
	assert.Equal(t, "these", tokens[0].Literal)
	assert.Equal(t, "defined", tokens[3].Literal)
}

func TestLexer_StatementBreaks(t *testing.T) {
	lex := NewLexer("a;\nb")
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{IDENTIFIER_ID, SEMI, SEMI, IDENTIFIER_ID}, tokenTypes(tokens))
}

func TestLexer_InvalidCharLiteral(t *testing.T) {
	lex := NewLexer("'ab'")
	_, err := lex.ConsumeTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character literal")
}

func TestLexer_InvalidFloatLiteral(t *testing.T) {
	lex := NewLexer("1.2.3")
	_, err := lex.ConsumeTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid floating point literal")
}

func TestLexer_RoundTrip(t *testing.T) {
	src := "let int x = 42; x + 1;"
	lex := NewLexer(src)
	tokens, err := lex.ConsumeTokens()
	assert.NoError(t, err)
	var rebuilt string
	for i, tok := range tokens {
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += tok.Literal
	}
	assert.Equal(t, "let int x = 42 ; x + 1 ;", rebuilt)
}
