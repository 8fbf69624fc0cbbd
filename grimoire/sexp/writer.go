package sexp

import (
	"strconv"
	"strings"

	"github.com/wbrown/janus-grimoire/grimoire"
	"github.com/wbrown/janus-grimoire/grimoire/codec"
)

// Print renders a datum in canonical text form. Shorthand is chosen
// whenever the datum's tag and shape exactly match a built-in; any
// other datum renders in literal form. The output is a pure function
// of the datum's three parts, so structurally equal datums always
// print identically, and parsing the output reproduces the datum.
func Print(d *grimoire.Datum) string {
	var sb strings.Builder
	printDatum(&sb, d)
	return sb.String()
}

func printDatum(sb *strings.Builder, d *grimoire.Datum) {
	switch d.Tag() {
	case grimoire.TagBool:
		if b, err := d.AsBool(); err == nil {
			if b {
				sb.WriteString("#t")
			} else {
				sb.WriteString("#f")
			}
			return
		}

	case grimoire.TagInt:
		if n, err := d.AsInt(); err == nil {
			sb.WriteString(strconv.FormatInt(n, 10))
			return
		}

	case grimoire.TagNil:
		if d.ElementCount() == 0 && d.ByteLength() == 0 {
			sb.WriteString("()")
			return
		}

	case grimoire.TagCons:
		// A cons chain prints as a list only when the entire chain is
		// well-formed; a chain with a bad tail falls through to nested
		// literal forms, never a partial shorthand.
		if d.IsList() {
			elements, _ := d.ListElements()
			sb.WriteByte('(')
			for i, e := range elements {
				if i > 0 {
					sb.WriteByte(' ')
				}
				printDatum(sb, e)
			}
			sb.WriteByte(')')
			return
		}

	default:
		if spec, ok := grimoire.LookupTag(d.Tag()); ok && spec.Print != nil {
			if s, ok := spec.Print(d); ok {
				sb.WriteString(s)
				return
			}
		}
	}

	printLiteral(sb, d)
}

// printLiteral renders the literal form #[ tag (elem*) "bytes" ],
// exposing all three parts directly. Elements recurse through the
// shorthand-preferring printer.
func printLiteral(sb *strings.Builder, d *grimoire.Datum) {
	sb.WriteString("#[ ")
	sb.WriteString(d.Tag())
	sb.WriteString(" (")
	for i := 0; i < d.ElementCount(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		printDatum(sb, d.Element(i))
	}
	sb.WriteString(") \"")
	sb.WriteString(codec.Encode(d.Bytes()))
	sb.WriteString("\" ]")
}
