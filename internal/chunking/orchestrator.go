package chunking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Strategy names accepted by Chunk.
const (
	StrategyHierarchical  = "hierarchical"
	StrategySlidingWindow = "sliding-window"
	StrategyContentAware  = "content-aware"
	StrategyAuto          = "auto"
)

// Chunk runs the Chunking Orchestrator over an already-parsed document
// and its SpecializedAnalysis, returning an ordered chunk sequence
// (spec.md §4.5's public contract). An unknown strategy name returns a
// ChunkingError whatever the document. An empty document yields zero
// chunks and no error; a document estimated smaller than
// cfg.MinChunkSize yields exactly one chunk holding the whole document.
func Chunk(doc *xmlparser.Document, analysis xmlmodel.SpecializedAnalysis, strategy string, cfg xmlmodel.ChunkingConfig) ([]xmlmodel.Chunk, error) {
	switch strategy {
	case StrategyHierarchical, StrategySlidingWindow, StrategyContentAware, StrategyAuto, "":
	default:
		return nil, &xmlmodel.ChunkingError{
			Strategy:      strategy,
			CorrelationID: uuid.NewString(),
			Err:           fmt.Errorf("unknown chunking strategy %q", strategy),
		}
	}

	if doc == nil || doc.Root == nil {
		return nil, nil
	}

	full := SerializeNode(doc.Root)
	if full == "" {
		return nil, nil
	}
	if xmlmodel.EstimateTokens(full) < cfg.MinChunkSize {
		return finalize([]xmlmodel.Chunk{wholeDocumentChunk(doc.Root, full, cfg)}, analysis.TypeName), nil
	}

	switch strategy {
	case StrategyHierarchical:
		return finalize(Hierarchical(doc, analysis.TypeName, cfg), analysis.TypeName), nil
	case StrategySlidingWindow:
		return finalize(SlidingWindow(doc.Root, cfg), analysis.TypeName), nil
	case StrategyContentAware:
		return finalize(ContentAware(doc, cfg), analysis.TypeName), nil
	default:
		// StrategyAuto or "". The recursive call finalizes internally;
		// finalizing again here would be a no-op re-stamp, so pass the
		// result straight through.
		return Chunk(doc, analysis, decideStrategy(doc, analysis.TypeName), cfg)
	}
}

// finalize stamps the cross-cutting chunk-metadata invariants that must
// hold regardless of which strategy produced the chunks (spec.md §3,
// §8): document_type, a dense 0-based chunk_index, and total_chunks.
func finalize(chunks []xmlmodel.Chunk, documentType string) []xmlmodel.Chunk {
	total := len(chunks)
	for i := range chunks {
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = map[string]interface{}{}
		}
		chunks[i].Metadata["document_type"] = documentType
		chunks[i].Metadata["chunk_index"] = i
		chunks[i].Metadata["total_chunks"] = total
	}
	return chunks
}

func wholeDocumentChunk(root *xmlparser.Node, content string, cfg xmlmodel.ChunkingConfig) xmlmodel.Chunk {
	c := xmlmodel.Chunk{
		ChunkID:          chunkID(root.ElementPath(), "whole-document", 0, content),
		Content:          content,
		ElementPath:      root.ElementPath(),
		StartLine:        root.StartLine,
		EndLine:          root.EndLine,
		ElementsIncluded: elementsIncluded(root),
		TokenEstimate:    xmlmodel.EstimateTokens(content),
		Metadata:         map[string]interface{}{"strategy": "whole-document"},
	}
	if cfg.PreserveHierarchy {
		c.ParentContext = root.AncestorChain()
	}
	return c
}
