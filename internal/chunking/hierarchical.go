package chunking

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// elementsIncluded walks n and its descendants in document order,
// collecting each element's local name (spec.md §3: "ordered sequence
// of local element names contained in the fragment"). n itself is
// included first.
func elementsIncluded(n *xmlparser.Node) []string {
	names := make([]string, 0, n.Count())
	var walk func(*xmlparser.Node)
	walk = func(cur *xmlparser.Node) {
		names = append(names, cur.Local)
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return names
}

// Hierarchical walks the tree depth-first, cutting at the semantic
// boundary elements for typeName (spec.md §4.5a). If the document
// carries no boundary element anywhere, it falls back to sliding-window
// over the whole document.
func Hierarchical(doc *xmlparser.Document, typeName string, cfg xmlmodel.ChunkingConfig) []xmlmodel.Chunk {
	boundaries := boundaryElementsFor(typeName)

	var chunks []xmlmodel.Chunk
	index := 0
	var walk func(n *xmlparser.Node)
	walk = func(n *xmlparser.Node) {
		if boundaries[n.Local] {
			emitted := emitBoundary(n, boundaries, cfg, &index)
			chunks = append(chunks, emitted...)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc.Root)

	if len(chunks) == 0 {
		return SlidingWindow(doc.Root, cfg)
	}
	return chunks
}

// emitBoundary serializes n as one chunk if it fits max_chunk_size.
// Otherwise it looks for nested elements within n that are themselves
// boundary elements ("finer boundaries") and recurses into those; if
// none exist, it falls back to sliding-window over n's serialized
// subtree (spec.md §4.5a).
func emitBoundary(n *xmlparser.Node, boundaries map[string]bool, cfg xmlmodel.ChunkingConfig, index *int) []xmlmodel.Chunk {
	content := SerializeNode(n)
	tokens := xmlmodel.EstimateTokens(content)

	if tokens <= cfg.MaxChunkSize {
		c := xmlmodel.Chunk{
			ChunkID:          chunkID(n.ElementPath(), "hierarchical", *index, content),
			Content:          content,
			ElementPath:      n.ElementPath(),
			StartLine:        n.StartLine,
			EndLine:          n.EndLine,
			ElementsIncluded: elementsIncluded(n),
			TokenEstimate:    tokens,
			Metadata:         map[string]interface{}{"strategy": "hierarchical", "boundary_element": n.Local},
		}
		if cfg.PreserveHierarchy {
			c.ParentContext = n.AncestorChain()
		}
		*index++
		return []xmlmodel.Chunk{c}
	}

	var finer []*xmlparser.Node
	for _, c := range n.Children {
		if boundaries[c.Local] {
			finer = append(finer, c)
		}
	}
	if len(finer) == 0 {
		if len(n.Children) == 0 {
			// A text-only boundary element with no children and no
			// finer boundary can't be split without cutting
			// mid-text-node; emit it whole (spec.md §4.5, "Tie-breaks
			// and edge cases").
			c := xmlmodel.Chunk{
				ChunkID:          chunkID(n.ElementPath(), "hierarchical", *index, content),
				Content:          content,
				ElementPath:      n.ElementPath(),
				StartLine:        n.StartLine,
				EndLine:          n.EndLine,
				ElementsIncluded: elementsIncluded(n),
				TokenEstimate:    tokens,
				Metadata:         map[string]interface{}{"strategy": "hierarchical", "boundary_element": n.Local, "oversized": true},
			}
			if cfg.PreserveHierarchy {
				c.ParentContext = n.AncestorChain()
			}
			*index++
			return []xmlmodel.Chunk{c}
		}
		return SlidingWindow(n, cfg)
	}

	var out []xmlmodel.Chunk
	for _, c := range finer {
		out = append(out, emitBoundary(c, boundaries, cfg, index)...)
	}
	return out
}
