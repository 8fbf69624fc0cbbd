package sexp

import "fmt"

// TokenType represents the type of S-expression token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenHashBracket // #[
	TokenRightBracket
	TokenTrue  // #t
	TokenFalse // #f
	TokenInteger
	TokenString
	TokenSymbol
)

// Token represents a lexical token in the S-expression text form.
// Integer and Symbol tokens carry their source text in Text; String
// tokens carry their decoded payload in Bytes.
type Token struct {
	Type  TokenType
	Text  string
	Bytes []byte
	Line  int
	Col   int
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return fmt.Sprintf("EOF[%d:%d]", t.Line, t.Col)
	case TokenLeftParen:
		return fmt.Sprintf("LeftParen[%d:%d]", t.Line, t.Col)
	case TokenRightParen:
		return fmt.Sprintf("RightParen[%d:%d]", t.Line, t.Col)
	case TokenHashBracket:
		return fmt.Sprintf("HashBracket[%d:%d]", t.Line, t.Col)
	case TokenRightBracket:
		return fmt.Sprintf("RightBracket[%d:%d]", t.Line, t.Col)
	case TokenTrue:
		return fmt.Sprintf("True[%d:%d]", t.Line, t.Col)
	case TokenFalse:
		return fmt.Sprintf("False[%d:%d]", t.Line, t.Col)
	case TokenInteger:
		return fmt.Sprintf("Integer[%d:%d]:%s", t.Line, t.Col, t.Text)
	case TokenString:
		return fmt.Sprintf("String[%d:%d]:%q", t.Line, t.Col, t.Bytes)
	case TokenSymbol:
		return fmt.Sprintf("Symbol[%d:%d]:%s", t.Line, t.Col, t.Text)
	default:
		return fmt.Sprintf("Unknown[%d:%d]:%s", t.Line, t.Col, t.Text)
	}
}
