// Package cache is an in-process cache of SpecializedAnalysis results
// keyed by file content hash, so the scan and watch commands skip
// re-running the handler dispatch engine on unchanged files. This is a
// performance cache, not a retrieval/embedding index, and carries no
// persisted state across process runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
)

// DefaultCapacity bounds the cache by entry count, not byte weight:
// SpecializedAnalysis values are small structured reports, not raw
// file content, so a flat capacity is simpler than otter's weighted
// eviction (used instead in the teacher's file-content cache,
// internal/graph/searcher.go, where entries vary wildly in size).
const DefaultCapacity = 1000

// Cache is a content-hash-keyed LRU of analysis results.
type Cache struct {
	entries otter.Cache[string, xmlmodel.SpecializedAnalysis]
}

// New builds a Cache with the given entry capacity. capacity <= 0
// uses DefaultCapacity.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := otter.MustBuilder[string, xmlmodel.SpecializedAnalysis](capacity).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// ContentHash returns the cache key for raw file content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached analysis for contentHash, if present.
func (c *Cache) Get(contentHash string) (xmlmodel.SpecializedAnalysis, bool) {
	return c.entries.Get(contentHash)
}

// Set records analysis under contentHash.
func (c *Cache) Set(contentHash string, analysis xmlmodel.SpecializedAnalysis) {
	c.entries.Set(contentHash, analysis)
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.entries.Close()
}

// Stats reports hit/miss counters, surfaced by the scan command's
// summary output.
func (c *Cache) Stats() otter.Stats {
	return c.entries.Stats()
}
