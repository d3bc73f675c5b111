package mcpserver

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/schemagraph/schema"
)

// docKey identifies one version of a schema source. File inputs use the
// absolute path and modification time; inline content has no path and is
// identified by its SHA-256 digest.
type docKey struct {
	path    string
	version string
}

func (k docKey) String() string {
	if k.path == "" {
		return "content:" + k.version
	}
	return "file:" + k.path + "@" + k.version
}

// keyFor returns the cache key of the input. Files that cannot be
// stat'ed are not cacheable.
func keyFor(s schemaInput) (docKey, bool) {
	if s.File != "" {
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return docKey{}, false
		}
		info, err := os.Stat(abs)
		if err != nil {
			return docKey{}, false
		}
		return docKey{path: abs, version: strconv.FormatInt(info.ModTime().UnixNano(), 10)}, true
	}
	if s.Content == "" {
		return docKey{}, false
	}
	sum := sha256.Sum256([]byte(s.Content))
	return docKey{version: hex.EncodeToString(sum[:])}, true
}

type cachedDoc struct {
	key       docKey
	doc       *schema.Document
	expiresAt time.Time
}

// documentCache holds resolved documents shared between tool calls, so
// they must only be read. It evicts the least recently used document when
// full and keeps at most one version per file: storing a newer version of
// a file drops the older one.
type documentCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	order    *list.List // of *cachedDoc, most recently used first
	entries  map[docKey]*list.Element
	files    map[string]docKey
	sweeping atomic.Bool
}

func newDocumentCache(capacity int, ttl time.Duration) *documentCache {
	return &documentCache{
		capacity: max(capacity, 1),
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		entries:  make(map[docKey]*list.Element),
		files:    make(map[string]docKey),
	}
}

var docCache = newDocumentCache(cfg.CacheMaxSize, cfg.CacheTTL)

func (c *documentCache) lookup(k docKey) (*schema.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cachedDoc)
	if c.expired(entry) {
		c.remove(el)
		return nil, false
	}
	c.order.MoveToFront(el)
	return entry.doc, true
}

func (c *documentCache) store(k docKey, doc *schema.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.entries[k]; ok {
		entry := el.Value.(*cachedDoc)
		entry.doc, entry.expiresAt = doc, expiresAt
		c.order.MoveToFront(el)
		return
	}
	if k.path != "" {
		if stale, ok := c.files[k.path]; ok {
			c.remove(c.entries[stale])
		}
		c.files[k.path] = k
	}
	for c.order.Len() >= c.capacity {
		c.remove(c.order.Back())
	}
	c.entries[k] = c.order.PushFront(&cachedDoc{key: k, doc: doc, expiresAt: expiresAt})
}

func (c *documentCache) expired(entry *cachedDoc) bool {
	return c.ttl > 0 && !c.now().Before(entry.expiresAt)
}

// remove drops el; the caller holds mu.
func (c *documentCache) remove(el *list.Element) {
	if el == nil {
		return
	}
	entry := c.order.Remove(el).(*cachedDoc)
	delete(c.entries, entry.key)
	if c.files[entry.key.path] == entry.key {
		delete(c.files, entry.key.path)
	}
}

// expire removes every expired document.
func (c *documentCache) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*cachedDoc)) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper expires documents every interval until ctx is done. Only
// one sweeper runs per cache.
func (c *documentCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.expire()
			}
		}
	}()
}

func (c *documentCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[docKey]*list.Element)
	c.files = make(map[string]docKey)
}

func (c *documentCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
