package chunking

import (
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// ContentAware partitions the document root's direct children into
// content-type buckets by local name, preserving first-appearance
// order, then greedily packs each bucket's members into
// max_chunk_size-bounded chunks (spec.md §4.5c). Chunks appear in
// bucket order, and document order within a bucket (spec.md §4.5,
// "Ordering guarantee").
func ContentAware(doc *xmlparser.Document, cfg xmlmodel.ChunkingConfig) []xmlmodel.Chunk {
	root := doc.Root

	var order []string
	buckets := map[string][]*xmlparser.Node{}
	for _, c := range root.Children {
		if _, seen := buckets[c.Local]; !seen {
			order = append(order, c.Local)
		}
		buckets[c.Local] = append(buckets[c.Local], c)
	}

	var chunks []xmlmodel.Chunk
	for _, name := range order {
		chunks = append(chunks, packBucket(root, name, buckets[name], cfg)...)
	}
	return chunks
}

// packBucket greedily packs a bucket's members into chunks no larger
// than max_chunk_size tokens.
func packBucket(root *xmlparser.Node, bucketName string, members []*xmlparser.Node, cfg xmlmodel.ChunkingConfig) []xmlmodel.Chunk {
	var chunks []xmlmodel.Chunk
	var current []string
	var includedNames []string
	var currentTokens int
	index := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		content := strings.Join(current, "")
		chunk := xmlmodel.Chunk{
			ChunkID:          chunkID(root.Local+"/"+bucketName, "content-aware", index, content),
			Content:          content,
			ElementPath:      root.Local + "/" + bucketName,
			ElementsIncluded: append([]string{}, includedNames...),
			TokenEstimate:    xmlmodel.EstimateTokens(content),
			Metadata:         map[string]interface{}{"strategy": "content-aware", "content_type": bucketName},
		}
		if cfg.PreserveHierarchy {
			chunk.ParentContext = root.OpeningTag()
		}
		chunks = append(chunks, chunk)
		index++
		current = nil
		includedNames = nil
		currentTokens = 0
	}

	for _, member := range members {
		serialized := SerializeNode(member)
		tokens := xmlmodel.EstimateTokens(serialized)
		if currentTokens > 0 && currentTokens+tokens > cfg.MaxChunkSize {
			flush()
		}
		current = append(current, serialized)
		includedNames = append(includedNames, elementsIncluded(member)...)
		currentTokens += tokens
	}
	flush()

	return chunks
}
