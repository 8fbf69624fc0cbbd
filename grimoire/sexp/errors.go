package sexp

import "errors"

// Sentinel errors for the lexer and reader. Every error returned by
// this package wraps one of these (or one of the codec sentinels) and
// carries a line:col position, so callers can classify with errors.Is
// while still getting a readable message.
var (
	// ErrLex indicates input that cannot be tokenized: an unterminated
	// string, a bare '#', or a byte that can start no token.
	ErrLex = errors.New("lexical error")

	// ErrUnexpectedToken indicates a token that does not fit the
	// grammar at its position.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnbalancedDelimiter indicates a missing ')' or ']' at end of
	// input.
	ErrUnbalancedDelimiter = errors.New("unbalanced delimiter")

	// ErrShapeMismatch indicates a literal form whose tag is a
	// registered built-in but whose arity or byte length disagrees with
	// the registered shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIntegerOutOfRange indicates a decimal literal outside the
	// signed 64-bit range.
	ErrIntegerOutOfRange = errors.New("integer out of range")
)
