package sexp

import (
	"fmt"
	"strconv"

	"github.com/wbrown/janus-grimoire/grimoire"
)

// Parser parses S-expression tokens into datums
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// Parse lexes the input and reads a single datum from it. Trailing
// input after the first datum is left unconsumed; use ParseAll to
// parse an entire source text.
func Parse(input string) (*grimoire.Datum, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}

	parser := NewParser(lexer)
	return parser.Read()
}

// ParseAll lexes the input and reads datums until EOF.
func ParseAll(input string) ([]*grimoire.Datum, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}

	parser := NewParser(lexer)
	var datums []*grimoire.Datum
	for parser.lexer.PeekToken().Type != TokenEOF {
		d, err := parser.Read()
		if err != nil {
			return nil, err
		}
		datums = append(datums, d)
	}
	return datums, nil
}

// Read reads a single datum
func (p *Parser) Read() (*grimoire.Datum, error) {
	token := p.lexer.PeekToken()

	switch token.Type {
	case TokenEOF:
		return nil, fmt.Errorf("%w: unexpected EOF at %d:%d",
			ErrUnexpectedToken, token.Line, token.Col)

	case TokenHashBracket:
		return p.readLiteral()

	case TokenTrue:
		p.lexer.NextToken()
		return grimoire.NewBool(true), nil

	case TokenFalse:
		p.lexer.NextToken()
		return grimoire.NewBool(false), nil

	case TokenInteger:
		return p.readInteger()

	case TokenLeftParen:
		return p.readList()

	default:
		return nil, fmt.Errorf("%w: %s where a datum was expected",
			ErrUnexpectedToken, token)
	}
}

// readInteger reads an integer shorthand and encodes it as an 8-byte
// little-endian two's-complement int datum.
func (p *Parser) readInteger() (*grimoire.Datum, error) {
	token := p.lexer.NextToken()
	n, err := strconv.ParseInt(token.Text, 10, 64)
	if err != nil {
		// The lexer only emits integer tokens for -?\d+, so the only
		// way ParseInt fails is a value outside int64.
		return nil, fmt.Errorf("%w: %s at %d:%d",
			ErrIntegerOutOfRange, token.Text, token.Line, token.Col)
	}
	return grimoire.NewInt(n), nil
}

// readList reads a list shorthand (d1 d2 ... dn) and right-folds it
// into cons cells terminated by nil.
func (p *Parser) readList() (*grimoire.Datum, error) {
	startToken := p.lexer.NextToken() // consume (

	var elements []*grimoire.Datum
	for {
		token := p.lexer.PeekToken()
		if token.Type == TokenRightParen {
			p.lexer.NextToken() // consume )
			break
		}
		if token.Type == TokenEOF {
			return nil, fmt.Errorf("%w: unterminated list starting at %d:%d",
				ErrUnbalancedDelimiter, startToken.Line, startToken.Col)
		}

		d, err := p.Read()
		if err != nil {
			return nil, err
		}
		elements = append(elements, d)
	}

	return grimoire.NewList(elements...), nil
}

// readLiteral reads the literal form #[ tag (elem*) "bytes" ],
// validating the parsed shape against the registry when the tag is a
// registered built-in.
func (p *Parser) readLiteral() (*grimoire.Datum, error) {
	startToken := p.lexer.NextToken() // consume #[

	tagToken := p.lexer.NextToken()
	if tagToken.Type != TokenSymbol {
		return nil, fmt.Errorf("%w: %s where a tag symbol was expected after '#['",
			ErrUnexpectedToken, tagToken)
	}
	tag := grimoire.InternTag(tagToken.Text)

	openToken := p.lexer.NextToken()
	if openToken.Type != TokenLeftParen {
		return nil, fmt.Errorf("%w: %s where '(' was expected in literal form",
			ErrUnexpectedToken, openToken)
	}

	var elements []*grimoire.Datum
	for {
		token := p.lexer.PeekToken()
		if token.Type == TokenRightParen {
			p.lexer.NextToken() // consume )
			break
		}
		if token.Type == TokenEOF {
			return nil, fmt.Errorf("%w: unterminated literal form starting at %d:%d",
				ErrUnbalancedDelimiter, startToken.Line, startToken.Col)
		}

		d, err := p.Read()
		if err != nil {
			return nil, err
		}
		elements = append(elements, d)
	}

	strToken := p.lexer.NextToken()
	if strToken.Type != TokenString {
		return nil, fmt.Errorf("%w: %s where a byte literal was expected in literal form",
			ErrUnexpectedToken, strToken)
	}

	closeToken := p.lexer.NextToken()
	if closeToken.Type == TokenEOF {
		return nil, fmt.Errorf("%w: unterminated literal form starting at %d:%d",
			ErrUnbalancedDelimiter, startToken.Line, startToken.Col)
	}
	if closeToken.Type != TokenRightBracket {
		return nil, fmt.Errorf("%w: %s where ']' was expected in literal form",
			ErrUnexpectedToken, closeToken)
	}

	if err := grimoire.CheckShape(tag, len(elements), len(strToken.Bytes)); err != nil {
		return nil, fmt.Errorf("%w: %v at %d:%d",
			ErrShapeMismatch, err, startToken.Line, startToken.Col)
	}

	return grimoire.NewDatum(tag, elements, strToken.Bytes), nil
}
