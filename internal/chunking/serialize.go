// Package chunking implements the Chunking Orchestrator: given a parsed
// document and its SpecializedAnalysis, it splits the tree into an
// ordered sequence of size-bounded, addressable Chunk values under one
// of four strategies (spec.md §4.5).
package chunking

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// SerializeNode reconstructs a best-effort XML serialization of n and
// its subtree. The parser keeps a structural tree, not the original
// byte ranges per element, so chunk content is synthesized rather than
// sliced from the source file; this keeps chunking independent of the
// parser's internal representation (grounded on the teacher's
// treesitter.go node-to-text rendering, adapted since encoding/xml
// exposes no byte-offset-to-node API).
func SerializeNode(n *xmlparser.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *xmlparser.Node) {
	b.WriteByte('<')
	b.WriteString(n.Local)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Local)
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.Value))
		b.WriteByte('"')
	}
	text := strings.TrimSpace(n.Text)
	if len(n.Children) == 0 && text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if text != "" {
		b.WriteString(escapeXML(n.Text))
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Local)
	b.WriteByte('>')
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
