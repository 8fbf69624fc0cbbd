package grimoire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Built-in tags. Any other tag is opaque: the core stores it but
// attaches no interpretation to its elements or bytes.
const (
	TagBool = "bool"
	TagInt  = "int"
	TagNil  = "nil"
	TagCons = "cons"
)

// Datum is an immutable unit of data: a tag selecting its
// interpretation, an ordered sequence of references to child data, and
// an opaque byte payload.
//
// Data never change after construction. Children are shared, not
// copied: the same *Datum may appear under many parents, and because
// nothing is ever mutated, concurrent readers need no synchronization.
type Datum struct {
	tag      string
	elements []*Datum
	aux      []byte
}

// NewDatum constructs a datum from its three parts. The element and
// byte slices are copied, so the caller keeps ownership of its
// arguments.
func NewDatum(tag string, elements []*Datum, aux []byte) *Datum {
	d := &Datum{tag: InternTag(tag)}
	if len(elements) > 0 {
		d.elements = make([]*Datum, len(elements))
		copy(d.elements, elements)
	}
	if len(aux) > 0 {
		d.aux = make([]byte, len(aux))
		copy(d.aux, aux)
	}
	return d
}

// NewBool constructs a bool datum: no elements, one byte (0x01 or 0x00).
func NewBool(b bool) *Datum {
	v := byte(0x00)
	if b {
		v = 0x01
	}
	return &Datum{tag: TagBool, aux: []byte{v}}
}

// NewInt constructs an int datum: no elements, 8 bytes little-endian
// two's complement.
func NewInt(i int64) *Datum {
	aux := make([]byte, 8)
	binary.LittleEndian.PutUint64(aux, uint64(i))
	return &Datum{tag: TagInt, aux: aux}
}

// Nil constructs a nil datum, the empty list.
func Nil() *Datum {
	return &Datum{tag: TagNil}
}

// NewCons constructs a cons datum prepending head onto tail. The tail
// need not be list-shaped, but only nil-terminated cons chains print
// in list shorthand.
func NewCons(head, tail *Datum) *Datum {
	return &Datum{tag: TagCons, elements: []*Datum{head, tail}}
}

// NewList right-folds the given data into a nil-terminated cons chain.
func NewList(elements ...*Datum) *Datum {
	list := Nil()
	for i := len(elements) - 1; i >= 0; i-- {
		list = NewCons(elements[i], list)
	}
	return list
}

// Tag returns the datum's tag.
func (d *Datum) Tag() string {
	return d.tag
}

// ElementCount returns the number of child references.
func (d *Datum) ElementCount() int {
	return len(d.elements)
}

// Element returns the i'th child reference.
func (d *Datum) Element(i int) *Datum {
	return d.elements[i]
}

// Elements returns a copy of the child reference slice. The children
// themselves are shared.
func (d *Datum) Elements() []*Datum {
	if len(d.elements) == 0 {
		return nil
	}
	out := make([]*Datum, len(d.elements))
	copy(out, d.elements)
	return out
}

// Bytes returns a copy of the byte payload.
func (d *Datum) Bytes() []byte {
	if len(d.aux) == 0 {
		return nil
	}
	out := make([]byte, len(d.aux))
	copy(out, d.aux)
	return out
}

// ByteLength returns the length of the byte payload.
func (d *Datum) ByteLength() int {
	return len(d.aux)
}

// AsBool returns the boolean a well-shaped bool datum encodes.
func (d *Datum) AsBool() (bool, error) {
	if d.tag != TagBool || len(d.elements) != 0 || len(d.aux) != 1 {
		return false, fmt.Errorf("datum is not a well-shaped bool")
	}
	switch d.aux[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("bool datum has non-canonical byte 0x%02x", d.aux[0])
	}
}

// AsInt returns the integer a well-shaped int datum encodes.
func (d *Datum) AsInt() (int64, error) {
	if d.tag != TagInt || len(d.elements) != 0 || len(d.aux) != 8 {
		return 0, fmt.Errorf("datum is not a well-shaped int")
	}
	return int64(binary.LittleEndian.Uint64(d.aux)), nil
}

// Head returns the first element of a cons datum.
func (d *Datum) Head() (*Datum, error) {
	if d.tag != TagCons || len(d.elements) != 2 {
		return nil, fmt.Errorf("datum is not a well-shaped cons")
	}
	return d.elements[0], nil
}

// Tail returns the second element of a cons datum.
func (d *Datum) Tail() (*Datum, error) {
	if d.tag != TagCons || len(d.elements) != 2 {
		return nil, fmt.Errorf("datum is not a well-shaped cons")
	}
	return d.elements[1], nil
}

// IsList reports whether the datum is a well-formed list: a chain of
// (2 elements, 0 bytes) cons cells terminated by a (0, 0) nil.
func (d *Datum) IsList() bool {
	for {
		switch {
		case d.tag == TagNil && len(d.elements) == 0 && len(d.aux) == 0:
			return true
		case d.tag == TagCons && len(d.elements) == 2 && len(d.aux) == 0:
			d = d.elements[1]
		default:
			return false
		}
	}
}

// ListElements flattens a well-formed list into its elements. It
// returns an error if the datum is not list-shaped.
func (d *Datum) ListElements() ([]*Datum, error) {
	var out []*Datum
	for {
		switch {
		case d.tag == TagNil && len(d.elements) == 0 && len(d.aux) == 0:
			return out, nil
		case d.tag == TagCons && len(d.elements) == 2 && len(d.aux) == 0:
			out = append(out, d.elements[0])
			d = d.elements[1]
		default:
			return nil, fmt.Errorf("datum is not a well-formed list (tag %q)", d.tag)
		}
	}
}

// Equal reports structural equality: same tag, element-wise equal
// children, identical bytes.
func (d *Datum) Equal(other *Datum) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if d.tag != other.tag || len(d.elements) != len(other.elements) {
		return false
	}
	if !bytes.Equal(d.aux, other.aux) {
		return false
	}
	for i := range d.elements {
		if !d.elements[i].Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

// String returns a debug representation. The canonical text form is
// produced by the sexp package.
func (d *Datum) String() string {
	return fmt.Sprintf("datum(%s, %d elements, %d bytes)",
		d.tag, len(d.elements), len(d.aux))
}
