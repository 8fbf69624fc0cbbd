// Package codec implements the quoted byte-literal encoding shared by
// the sexp reader and writer.
//
// A byte in the printable ASCII range 0x20-0x7E is emitted verbatim,
// except '"' and '\' which are escaped. Every other byte is emitted as
// \xHH with lowercase hex digits. The encoding is exact: for every
// byte sequence b, Decode(Encode(b)) == b.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEscape indicates an unrecognized escape sequence or a
	// raw byte that may not appear unescaped inside a byte literal.
	ErrInvalidEscape = errors.New("invalid escape in byte literal")

	// ErrTruncatedEscape indicates a \x escape with fewer than two hex
	// digits, or a trailing backslash.
	ErrTruncatedEscape = errors.New("truncated escape in byte literal")
)

const hexDigits = "0123456789abcdef"

// Encode converts raw bytes to their quoted textual form, without the
// surrounding quotes. The empty sequence encodes to "".
func Encode(src []byte) string {
	var result strings.Builder
	result.Grow(len(src))

	for _, b := range src {
		switch {
		case b == '"':
			result.WriteString(`\"`)
		case b == '\\':
			result.WriteString(`\\`)
		case b >= 0x20 && b <= 0x7e:
			result.WriteByte(b)
		default:
			result.WriteString(`\x`)
			result.WriteByte(hexDigits[b>>4])
			result.WriteByte(hexDigits[b&0x0f])
		}
	}

	return result.String()
}

// Decode converts the textual content of a byte literal (without the
// surrounding quotes) back to raw bytes. Hex digits in \x escapes are
// accepted in either case.
func Decode(src string) ([]byte, error) {
	result := make([]byte, 0, len(src))

	for i := 0; i < len(src); {
		ch := src[i]
		if ch != '\\' {
			// Raw control bytes must be escaped.
			if ch < 0x20 || ch > 0x7e {
				return nil, fmt.Errorf("%w: unescaped byte 0x%02x at position %d",
					ErrInvalidEscape, ch, i)
			}
			result = append(result, ch)
			i++
			continue
		}

		if i+1 >= len(src) {
			return nil, fmt.Errorf("%w at position %d", ErrTruncatedEscape, i)
		}
		switch src[i+1] {
		case '"':
			result = append(result, '"')
			i += 2
		case '\\':
			result = append(result, '\\')
			i += 2
		case 'x':
			if i+4 > len(src) {
				return nil, fmt.Errorf("%w at position %d", ErrTruncatedEscape, i)
			}
			hi, ok1 := hexValue(src[i+2])
			lo, ok2 := hexValue(src[i+3])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: \\x%c%c at position %d",
					ErrInvalidEscape, src[i+2], src[i+3], i)
			}
			result = append(result, hi<<4|lo)
			i += 4
		default:
			return nil, fmt.Errorf("%w: \\%c at position %d",
				ErrInvalidEscape, src[i+1], i)
		}
	}

	return result, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
