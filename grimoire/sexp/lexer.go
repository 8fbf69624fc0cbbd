package sexp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wbrown/janus-grimoire/grimoire/codec"
)

var (
	// Characters that may appear in a symbol (tag name)
	symbolChars = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		".*+!-_?$%&=<>/"

	intPattern = regexp.MustCompile(`^-?\d+$`)
)

// Lexer tokenizes S-expression input
type Lexer struct {
	input   string
	pos     int
	line    int
	col     int
	tokens  []Token
	current int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:   input,
		pos:     0,
		line:    1,
		col:     1,
		tokens:  []Token{},
		current: 0,
	}
}

// Lex tokenizes the entire input
func (l *Lexer) Lex() error {
	for l.pos < len(l.input) {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.input) {
			break
		}

		startLine := l.line
		startCol := l.col

		ch := l.peek()
		switch {
		case ch == '(':
			l.advance()
			l.tokens = append(l.tokens, Token{
				Type: TokenLeftParen,
				Line: startLine,
				Col:  startCol,
			})
		case ch == ')':
			l.advance()
			l.tokens = append(l.tokens, Token{
				Type: TokenRightParen,
				Line: startLine,
				Col:  startCol,
			})
		case ch == ']':
			l.advance()
			l.tokens = append(l.tokens, Token{
				Type: TokenRightBracket,
				Line: startLine,
				Col:  startCol,
			})
		case ch == '#':
			typ, err := l.readHash()
			if err != nil {
				return err
			}
			l.tokens = append(l.tokens, Token{
				Type: typ,
				Line: startLine,
				Col:  startCol,
			})
		case ch == '"':
			raw, err := l.readString()
			if err != nil {
				return err
			}
			decoded, err := codec.Decode(raw)
			if err != nil {
				return fmt.Errorf("%w in string at %d:%d", err, startLine, startCol)
			}
			l.tokens = append(l.tokens, Token{
				Type:  TokenString,
				Bytes: decoded,
				Line:  startLine,
				Col:   startCol,
			})
		case isSymbolChar(ch):
			atom := l.readAtom()
			typ := TokenSymbol
			if intPattern.MatchString(atom) {
				typ = TokenInteger
			}
			l.tokens = append(l.tokens, Token{
				Type: typ,
				Text: atom,
				Line: startLine,
				Col:  startCol,
			})
		default:
			return fmt.Errorf("%w: unexpected character %q at %d:%d",
				ErrLex, ch, l.line, l.col)
		}
	}

	// Add EOF token
	l.tokens = append(l.tokens, Token{
		Type: TokenEOF,
		Line: l.line,
		Col:  l.col,
	})

	return nil
}

// Tokens returns all lexed tokens, including the trailing EOF.
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	token := l.tokens[l.current]
	l.current++
	return token
}

// PeekToken returns the next token without advancing
func (l *Lexer) PeekToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	return l.tokens[l.current]
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// advance moves to the next character
func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// skipWhitespaceAndComments skips whitespace and ; comments
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			l.advance()
		} else if ch == ';' {
			// Skip comment until end of line
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		} else {
			break
		}
	}
}

// readHash reads a token starting with '#': the literal-form opener
// '#[' or a boolean shorthand '#t' / '#f'.
func (l *Lexer) readHash() (TokenType, error) {
	l.advance() // skip #
	switch l.peek() {
	case '[':
		l.advance()
		return TokenHashBracket, nil
	case 't':
		l.advance()
		if isSymbolChar(l.peek()) {
			return 0, fmt.Errorf("%w: invalid token starting with '#t' at %d:%d",
				ErrLex, l.line, l.col)
		}
		return TokenTrue, nil
	case 'f':
		l.advance()
		if isSymbolChar(l.peek()) {
			return 0, fmt.Errorf("%w: invalid token starting with '#f' at %d:%d",
				ErrLex, l.line, l.col)
		}
		return TokenFalse, nil
	default:
		return 0, fmt.Errorf("%w: bare '#' at %d:%d", ErrLex, l.line, l.col)
	}
}

// readString reads a string literal and returns its raw content,
// undecoded, without the surrounding quotes.
func (l *Lexer) readString() (string, error) {
	var result strings.Builder
	l.advance() // skip opening quote

	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '"' {
			l.advance() // skip closing quote
			return result.String(), nil
		}
		if ch == '\\' {
			result.WriteByte(ch)
			l.advance()
			if l.pos >= len(l.input) {
				break
			}
			ch = l.peek()
		}
		result.WriteByte(ch)
		l.advance()
	}

	return "", fmt.Errorf("%w: unterminated string at %d:%d", ErrLex, l.line, l.col)
}

// readAtom reads a maximal run of symbol characters
func (l *Lexer) readAtom() string {
	var result strings.Builder
	for l.pos < len(l.input) && isSymbolChar(l.peek()) {
		result.WriteByte(l.peek())
		l.advance()
	}
	return result.String()
}

func isSymbolChar(ch byte) bool {
	return strings.IndexByte(symbolChars, ch) >= 0
}
