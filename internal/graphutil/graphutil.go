// Package graphutil builds a directed graph of cross-references for
// handlers whose quality metrics need reference-integrity analysis:
// GraphML's node/edge structure, DocBook's xref/link targets, XLIFF's
// trans-unit/alt-trans links, and Sitemap's loc set. A dangling edge
// (source exists, target does not) drives the reference_integrity
// quality metric (spec.md §4.4.4).
package graphutil

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// Reference is one directed cross-reference a handler discovered:
// element From refers to element (or identifier) To.
type Reference struct {
	From string
	To   string
}

// IntegrityReport summarizes a reference graph's dangling edges.
type IntegrityReport struct {
	TotalReferences int
	DanglingEdges   []Reference
}

// Score returns the fraction of references that resolve, in [0, 1].
// A graph with no references is reported as fully intact (1.0): there
// is nothing to be broken.
func (r IntegrityReport) Score() float64 {
	if r.TotalReferences == 0 {
		return 1.0
	}
	intact := r.TotalReferences - len(r.DanglingEdges)
	return float64(intact) / float64(r.TotalReferences)
}

// CheckIntegrity builds a directed graph over ids (every element or
// identifier a handler considers a valid reference target) and refs
// (the cross-references discovered in the document), then reports
// which refs point at a target outside ids.
func CheckIntegrity(ids []string, refs []Reference) IntegrityReport {
	g := graph.New(func(id string) string { return id }, graph.Directed())
	for _, id := range ids {
		_ = g.AddVertex(id)
	}

	report := IntegrityReport{TotalReferences: len(refs)}
	for _, ref := range refs {
		if _, err := g.Vertex(ref.To); err != nil {
			report.DanglingEdges = append(report.DanglingEdges, ref)
			continue
		}
		// AddEdge is idempotent-enough for this purpose: a duplicate
		// reference (ErrEdgeAlreadyExists) is not a dangling one, so
		// any error here besides a missing vertex is ignored.
		_ = g.AddEdge(ref.From, ref.To)
	}
	return report
}

// FormatDangling renders a dangling-edge list as human-readable
// findings for a handler's key_findings payload.
func FormatDangling(refs []Reference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, fmt.Sprintf("%s -> %s (unresolved)", r.From, r.To))
	}
	return out
}
