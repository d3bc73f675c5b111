package validator

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// maxPatternCacheSize is the upper bound on cached compiled patterns. When
// exceeded, the cache is cleared.
const maxPatternCacheSize = 1000

// PatternCache holds compiled pattern and patternProperties expressions. It
// is safe for concurrent use.
type PatternCache struct {
	// patterns maps the pattern text to *regexp.Regexp
	patterns sync.Map
	count    atomic.Int32
}

// NewPatternCache creates an empty cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{}
}

// Compile returns the compiled form of pattern, compiling it on first use.
func (c *PatternCache) Compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := c.patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	// The count check and clear are not atomic; concurrent clears only cost
	// recompilation.
	if c.count.Add(1) > maxPatternCacheSize {
		c.patterns.Range(func(key, _ any) bool {
			c.patterns.Delete(key)
			return true
		})
		c.count.Store(1)
	}
	c.patterns.Store(pattern, re)
	return re, nil
}

// Len returns the approximate number of cached patterns.
func (c *PatternCache) Len() int {
	return int(c.count.Load())
}
