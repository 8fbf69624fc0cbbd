package grimoire

import (
	"sync"
)

// TagIntern provides tag interning to avoid repeated allocations.
// Uses sync.Map for lock-free concurrent reads.
type TagIntern struct {
	cache sync.Map // map[string]string
}

// Global tag intern instance
var tagIntern = &TagIntern{}

// InternTag returns the canonical instance of a tag string. Every
// datum carrying the same tag shares one backing string, so the reader
// can parse the same tag millions of times without re-allocating it.
func InternTag(s string) string {
	// Fast path: load existing (lock-free)
	if val, ok := tagIntern.cache.Load(s); ok {
		return val.(string)
	}

	// Slow path: store and return
	actual, _ := tagIntern.cache.LoadOrStore(s, s)
	return actual.(string)
}

// ClearInterns clears the tag intern cache.
// Useful for testing or when memory needs to be reclaimed.
func ClearInterns() {
	tagIntern = &TagIntern{}
}

func init() {
	// The built-in tags are always interned.
	for _, tag := range []string{TagBool, TagInt, TagNil, TagCons} {
		InternTag(tag)
	}
}
