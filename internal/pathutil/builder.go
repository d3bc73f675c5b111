package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides incremental JSON Pointer construction.
// Segments are stored unescaped; String escapes them.
type PathBuilder struct {
	segments []string
}

// Push adds a segment to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index segment.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int { return len(p.segments) }

// String renders the path as a URI fragment pointer ("#" for the root).
func (p *PathBuilder) String() string {
	return Join("#", p.segments...)
}

// Join appends escaped tokens to base, which is usually "#" or a pointer
// previously produced by Join.
func Join(base string, tokens ...string) string {
	if len(tokens) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}
