package grimoire

import (
	"bytes"
	"testing"
)

func TestDatumAccessors(t *testing.T) {
	d := NewDatum("pair", []*Datum{NewInt(1), NewBool(true)}, []byte{0xab})

	if d.Tag() != "pair" {
		t.Errorf("Tag = %q, want %q", d.Tag(), "pair")
	}
	if d.ElementCount() != 2 {
		t.Errorf("ElementCount = %d, want 2", d.ElementCount())
	}
	if !bytes.Equal(d.Bytes(), []byte{0xab}) {
		t.Errorf("Bytes = %v, want [ab]", d.Bytes())
	}
	if d.ByteLength() != 1 {
		t.Errorf("ByteLength = %d, want 1", d.ByteLength())
	}
}

func TestDatumImmutable(t *testing.T) {
	elements := []*Datum{NewInt(1)}
	aux := []byte{0x01, 0x02}
	d := NewDatum("blob", elements, aux)

	// Mutating the constructor arguments must not affect the datum.
	elements[0] = NewInt(99)
	aux[0] = 0xff
	if !d.Element(0).Equal(NewInt(1)) {
		t.Error("datum shares its element slice with the caller")
	}
	if d.Bytes()[0] != 0x01 {
		t.Error("datum shares its byte slice with the caller")
	}

	// Mutating accessor results must not affect the datum either.
	got := d.Bytes()
	got[0] = 0xff
	if d.Bytes()[0] != 0x01 {
		t.Error("Bytes returns the internal slice")
	}
	els := d.Elements()
	els[0] = NewBool(false)
	if !d.Element(0).Equal(NewInt(1)) {
		t.Error("Elements returns the internal slice")
	}
}

func TestBoolDatum(t *testing.T) {
	for _, b := range []bool{true, false} {
		d := NewBool(b)
		got, err := d.AsBool()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != b {
			t.Errorf("AsBool = %v, want %v", got, b)
		}
	}

	if _, err := NewDatum("bool", nil, []byte{0x02}).AsBool(); err == nil {
		t.Error("expected error for non-canonical bool byte")
	}
	if _, err := NewInt(1).AsBool(); err == nil {
		t.Error("expected error for wrong tag")
	}
}

func TestIntDatum(t *testing.T) {
	values := []int64{0, 1, -1, 42, -9223372036854775808, 9223372036854775807}
	for _, v := range values {
		d := NewInt(v)
		if d.ByteLength() != 8 {
			t.Fatalf("NewInt(%d) has %d bytes", v, d.ByteLength())
		}
		got, err := d.AsInt()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != v {
			t.Errorf("AsInt = %d, want %d", got, v)
		}
	}

	// Little-endian two's complement layout
	d := NewInt(1)
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(d.Bytes(), want) {
		t.Errorf("NewInt(1) bytes = %x, want %x", d.Bytes(), want)
	}
}

func TestListHelpers(t *testing.T) {
	list := NewList(NewInt(1), NewInt(2), NewInt(3))

	if !list.IsList() {
		t.Error("NewList result should be a list")
	}

	elements, err := list.ListElements()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}
	for i, want := range []int64{1, 2, 3} {
		got, err := elements[i].AsInt()
		if err != nil || got != want {
			t.Errorf("element %d = %v (%v), want %d", i, got, err, want)
		}
	}

	head, err := list.Head()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := head.AsInt(); got != 1 {
		t.Errorf("Head = %d, want 1", got)
	}

	if !Nil().IsList() {
		t.Error("nil datum should be a list")
	}
	if NewBool(true).IsList() {
		t.Error("bool datum should not be a list")
	}

	// A chain ending in a non-nil tail is not a list.
	improper := NewCons(NewInt(1), NewBool(false))
	if improper.IsList() {
		t.Error("chain with bool tail should not be a list")
	}
	if _, err := improper.ListElements(); err == nil {
		t.Error("expected error flattening improper chain")
	}
}

func TestDatumEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Datum
		equal bool
	}{
		{
			name:  "same bool",
			a:     NewBool(true),
			b:     NewBool(true),
			equal: true,
		},
		{
			name:  "different bool",
			a:     NewBool(true),
			b:     NewBool(false),
			equal: false,
		},
		{
			name:  "same structure",
			a:     NewList(NewInt(1), NewBool(true)),
			b:     NewList(NewInt(1), NewBool(true)),
			equal: true,
		},
		{
			name:  "different length",
			a:     NewList(NewInt(1)),
			b:     NewList(NewInt(1), NewInt(2)),
			equal: false,
		},
		{
			name:  "different tag same parts",
			a:     NewDatum("a", nil, []byte{1}),
			b:     NewDatum("b", nil, []byte{1}),
			equal: false,
		},
		{
			name:  "different bytes",
			a:     NewDatum("blob", nil, []byte{1}),
			b:     NewDatum("blob", nil, []byte{2}),
			equal: false,
		},
		{
			name:  "nil equals nil",
			a:     Nil(),
			b:     Nil(),
			equal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal = %v, want %v", got, tt.equal)
			}
			// Equality is symmetric
			if got := tt.b.Equal(tt.a); got != tt.equal {
				t.Errorf("reverse Equal = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestStructuralSharing(t *testing.T) {
	// The same child may sit under many parents without copying.
	shared := NewList(NewInt(1), NewInt(2))
	parent := NewList(shared, shared)

	first, err := parent.Head()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rest, err := parent.Tail()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rest.Head()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != shared || second != shared {
		t.Error("shared child was copied")
	}
}
