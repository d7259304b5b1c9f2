package chunking

import (
	"regexp"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// tokenToByteRatio is the inverse of xmlmodel.EstimateTokens's
// ceil(len/4) heuristic, used to translate a token-denominated window
// size back into an approximate byte length for slicing the serialized
// subtree.
const tokenToByteRatio = 4

// startTagRE matches an opening tag in SerializeNode output, which
// escapes text and attribute values, so a raw '<' only starts markup.
var startTagRE = regexp.MustCompile(`<([A-Za-z_][\w.\-]*)[\s/>]`)

// SlidingWindow serializes n's subtree and advances a token-sized
// window with step (max_chunk_size - overlap_size), backtracking to the
// nearest element-closing tag within overlap_size/2 tokens when
// possible (spec.md §4.5b). Overlap never crosses the document
// boundary: the final window is clipped to the content length, not
// extended past it.
func SlidingWindow(n *xmlparser.Node, cfg xmlmodel.ChunkingConfig) []xmlmodel.Chunk {
	content := SerializeNode(n)
	if content == "" {
		return nil
	}

	maxBytes := cfg.MaxChunkSize * tokenToByteRatio
	stepBytes := (cfg.MaxChunkSize - cfg.OverlapSize) * tokenToByteRatio
	if stepBytes <= 0 {
		stepBytes = maxBytes
	}
	backtrackBytes := (cfg.OverlapSize / 2) * tokenToByteRatio

	var chunks []xmlmodel.Chunk
	total := len(content)
	pos := 0
	index := 0

	for pos < total {
		end := pos + maxBytes
		if end >= total {
			end = total
		} else if aligned := alignToClosingTag(content, end, backtrackBytes); aligned > pos {
			end = aligned
		}

		segment := content[pos:end]
		var names []string
		for _, m := range startTagRE.FindAllStringSubmatch(segment, -1) {
			names = append(names, m[1])
		}
		chunk := xmlmodel.Chunk{
			ChunkID:          chunkID(n.ElementPath(), "sliding-window", index, segment),
			Content:          segment,
			ElementPath:      n.ElementPath(),
			StartLine:        n.StartLine,
			EndLine:          n.EndLine,
			ElementsIncluded: names,
			TokenEstimate:    xmlmodel.EstimateTokens(segment),
			Metadata:         map[string]interface{}{"strategy": "sliding-window", "window_index": index},
		}
		if cfg.PreserveHierarchy {
			chunk.ParentContext = n.AncestorChain()
		}
		chunks = append(chunks, chunk)
		index++

		if end >= total {
			break
		}
		pos += stepBytes
		if pos >= total {
			break
		}
	}

	return chunks
}

// alignToClosingTag looks backward from end, within backtrack bytes,
// for the last '>' and returns the position just past it. If none is
// found in that span, end is returned unchanged.
func alignToClosingTag(content string, end, backtrack int) int {
	start := end - backtrack
	if start < 0 {
		start = 0
	}
	idx := strings.LastIndexByte(content[start:end], '>')
	if idx < 0 {
		return end
	}
	return start + idx + 1
}
