package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathBuilder(t *testing.T) {
	p := Get()
	defer Put(p)

	assert.Equal(t, "#", p.String())

	p.Push("properties")
	p.Push("a/b")
	p.PushIndex(3)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "#/properties/a~1b/3", p.String())

	p.Pop()
	assert.Equal(t, "#/properties/a~1b", p.String())

	p.Reset()
	p.Pop()
	assert.Equal(t, 0, p.Len())
}

func TestPool_ResetsBuilders(t *testing.T) {
	p := Get()
	p.Push("stale")
	Put(p)

	q := Get()
	defer Put(q)
	assert.Equal(t, 0, q.Len())
}

func TestPut_DropsOversized(t *testing.T) {
	p := &PathBuilder{}
	for i := 0; i < maxPathCap+1; i++ {
		p.PushIndex(i)
	}
	// must not panic, and nil is ignored
	Put(p)
	Put(nil)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "#", Join("#"))
	assert.Equal(t, "#/definitions/m~0n", Join("#", "definitions", "m~n"))
	assert.Equal(t, "#/a/b", Join(Join("#", "a"), "b"))
}
