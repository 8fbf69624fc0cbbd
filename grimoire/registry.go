package grimoire

import (
	"fmt"
	"sync"
)

// Shape is the fixed form a tag imposes on a datum: how many elements
// it must carry and how long its byte payload must be.
type Shape struct {
	ElementArity int
	ByteLength   int
}

// TagSpec describes a registered tag. Shape, if non-nil, is enforced
// by the reader when the tag appears in literal form. Print, if
// non-nil, is consulted by the writer: it may return a shorthand
// rendering of the datum and true, or false to fall back to literal
// form.
type TagSpec struct {
	Shape *Shape
	Print func(d *Datum) (string, bool)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]TagSpec{
		TagBool: {Shape: &Shape{ElementArity: 0, ByteLength: 1}},
		TagInt:  {Shape: &Shape{ElementArity: 0, ByteLength: 8}},
		TagNil:  {Shape: &Shape{ElementArity: 0, ByteLength: 0}},
		TagCons: {Shape: &Shape{ElementArity: 2, ByteLength: 0}},
	}
)

// ShapeOf returns the registered shape for a tag. The second result is
// false for opaque tags and for registered tags without a shape; such
// tags are never shape-checked.
func ShapeOf(tag string) (Shape, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	spec, ok := registry[tag]
	if !ok || spec.Shape == nil {
		return Shape{}, false
	}
	return *spec.Shape, true
}

// LookupTag returns the full spec for a registered tag.
func LookupTag(tag string) (TagSpec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	spec, ok := registry[tag]
	return spec, ok
}

// RegisterTag registers a host-defined tag with the given spec. The
// four built-in tags cannot be re-registered, and neither can a tag
// that was already registered.
func RegisterTag(tag string, spec TagSpec) error {
	switch tag {
	case TagBool, TagInt, TagNil, TagCons:
		return fmt.Errorf("cannot re-register built-in tag %q", tag)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[tag]; ok {
		return fmt.Errorf("tag %q already registered", tag)
	}
	registry[InternTag(tag)] = spec
	return nil
}

// CheckShape validates a parsed arity and byte length against the
// registered shape for a tag, if any. It reports expected vs. actual
// on mismatch.
func CheckShape(tag string, arity, byteLen int) error {
	shape, ok := ShapeOf(tag)
	if !ok {
		return nil
	}
	if arity != shape.ElementArity {
		return fmt.Errorf("tag %q expects %d elements, got %d",
			tag, shape.ElementArity, arity)
	}
	if byteLen != shape.ByteLength {
		return fmt.Errorf("tag %q expects %d bytes, got %d",
			tag, shape.ByteLength, byteLen)
	}
	return nil
}
