package pathutil

import "sync"

const (
	defaultPathCap = 8
	maxPathCap     = 64
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]string, 0, defaultPathCap)}
	},
}

// Get retrieves a reset PathBuilder from the pool.
func Get() *PathBuilder {
	p := pathBuilderPool.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns a PathBuilder to the pool unless it grew too deep.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPathCap {
		return
	}
	pathBuilderPool.Put(p)
}
