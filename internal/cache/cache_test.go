package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
)

// Test Plan for the analysis cache:
// - ContentHash is deterministic for identical content
// - Get on an empty cache misses
// - Set then Get round-trips the stored analysis
// - Distinct content hashes never collide

func TestContentHash_Deterministic(t *testing.T) {
	t.Parallel()

	a := ContentHash([]byte("<root/>"))
	b := ContentHash([]byte("<root/>"))
	assert.Equal(t, a, b)
}

func TestGet_MissesOnEmptyCache(t *testing.T) {
	t.Parallel()

	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(ContentHash([]byte("<root/>")))
	assert.False(t, ok)
}

func TestSet_RoundTripsAnalysis(t *testing.T) {
	t.Parallel()

	c, err := New(10)
	require.NoError(t, err)
	defer c.Close()

	hash := ContentHash([]byte("<project/>"))
	analysis := xmlmodel.SpecializedAnalysis{
		DocumentTypeInfo: xmlmodel.DocumentTypeInfo{TypeName: "Ant Build", Confidence: 0.9},
	}
	c.Set(hash, analysis)

	got, ok := c.Get(hash)
	require.True(t, ok)
	assert.Equal(t, "Ant Build", got.TypeName)
}

func TestContentHash_DistinctForDifferentContent(t *testing.T) {
	t.Parallel()

	a := ContentHash([]byte("<root/>"))
	b := ContentHash([]byte("<other/>"))
	assert.NotEqual(t, a, b)
}
