package sexp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-grimoire/grimoire"
)

// roundTripDatums covers every built-in shape, opaque tags, deep
// nesting, and shapes that only render in literal form.
func roundTripDatums() []*grimoire.Datum {
	return []*grimoire.Datum{
		grimoire.NewBool(true),
		grimoire.NewBool(false),
		grimoire.NewInt(0),
		grimoire.NewInt(-1),
		grimoire.NewInt(9223372036854775807),
		grimoire.NewInt(-9223372036854775808),
		grimoire.Nil(),
		grimoire.NewList(grimoire.NewBool(true), grimoire.NewBool(false)),
		grimoire.NewList(
			grimoire.NewInt(1),
			grimoire.NewList(grimoire.NewInt(2), grimoire.Nil()),
			grimoire.NewBool(true),
		),
		grimoire.NewDatum("blob", nil, []byte{0x00, 0x01, 0xfe, 0xff}),
		grimoire.NewDatum("pair",
			[]*grimoire.Datum{grimoire.NewInt(1), grimoire.NewBool(false)},
			[]byte(`quotes " and \ slashes`)),
		grimoire.NewCons(grimoire.NewInt(1), grimoire.NewBool(true)),
		grimoire.NewDatum("bool", nil, []byte{0x02}),
		grimoire.NewList(
			grimoire.NewDatum("node",
				[]*grimoire.Datum{grimoire.NewList(grimoire.NewInt(7))},
				[]byte{0x80}),
		),
	}
}

func TestRoundTrip(t *testing.T) {
	// parse(print(v)) == v for every producible datum.
	for _, d := range roundTripDatums() {
		text := Print(d)
		parsed, err := Parse(text)
		require.NoError(t, err, "reparsing %q", text)
		require.True(t, d.Equal(parsed), "round trip of %q changed the datum", text)
	}
}

func TestInvalidBuiltinShapesDoNotReparse(t *testing.T) {
	// A datum violating a built-in shape can only be constructed
	// directly, never by the reader: it prints in literal form, and
	// re-parsing that form is rejected by the shape check. The
	// round-trip guarantee covers reader-producible datums only.
	invalid := []*grimoire.Datum{
		grimoire.NewDatum("cons", []*grimoire.Datum{grimoire.Nil()}, nil),
		grimoire.NewDatum("int", nil, []byte{0x2a}),
		grimoire.NewDatum("nil", nil, []byte("x")),
	}

	for _, d := range invalid {
		text := Print(d)
		_, err := Parse(text)
		require.ErrorIs(t, err, ErrShapeMismatch, "reparsing %q", text)
	}
}

func TestCanonicalIdempotence(t *testing.T) {
	// print(parse(s)) is a fixed point after one pass.
	sources := []string{
		"#t",
		"  #f ; trailing comment",
		"(#t #f)",
		"( 1 2  3 )",
		"(())",
		`#[ bool () "\x01" ]`,
		`#[ blob (1 (2)) "\xAB" ]`,
		`#[ cons (#t ()) "" ]`,
		"-9223372036854775808",
		`#[ custom () "" ]`,
	}

	for _, src := range sources {
		first, err := Parse(src)
		require.NoError(t, err, "parsing %q", src)

		canonical := Print(first)
		second, err := Parse(canonical)
		require.NoError(t, err, "reparsing canonical %q", canonical)
		require.True(t, first.Equal(second),
			"canonical text %q parses to a different datum", canonical)
		require.Equal(t, canonical, Print(second),
			"printing is not a fixed point for %q", src)
	}
}

func TestShorthandEquivalence(t *testing.T) {
	// Shorthand and literal spellings of the same datum parse to equal
	// values and share one canonical form.
	pairs := []struct {
		shorthand string
		literal   string
	}{
		{"#t", `#[ bool () "\x01" ]`},
		{"#f", `#[ bool () "\x00" ]`},
		{"()", `#[ nil () "" ]`},
		{"0", `#[ int () "\x00\x00\x00\x00\x00\x00\x00\x00" ]`},
		{"(#t)", `#[ cons (#t #[ nil () "" ]) "" ]`},
	}

	for _, p := range pairs {
		a, err := Parse(p.shorthand)
		require.NoError(t, err)
		b, err := Parse(p.literal)
		require.NoError(t, err)

		require.True(t, a.Equal(b), "%q and %q should parse equal", p.shorthand, p.literal)
		require.Equal(t, p.shorthand, Print(a))
		require.Equal(t, p.shorthand, Print(b),
			"literal spelling %q must canonicalize to shorthand", p.literal)
	}
}
