package handlers

import (
	"fmt"
	"log"
	"reflect"

	"github.com/google/uuid"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// DefaultConfidenceThreshold is the minimum CanHandle confidence a
// handler must clear to be considered a dispatch candidate (spec.md
// §4.3 step 2).
const DefaultConfidenceThreshold = 0.3

// Registry is an ordered sequence of handlers. Order only matters as a
// tiebreaker; primary selection is by confidence. A Registry is
// immutable once constructed and safe for concurrent use across
// analyses (spec.md §5, "Shared resource policy").
type Registry struct {
	handlers  []Handler
	threshold float64
}

// NewRegistry builds a registry from an ordered handler list. If no
// handler named "generic" is present, the generic fallback is appended
// automatically (spec.md §6, "Handler registry configuration"). A
// threshold <= 0 uses DefaultConfidenceThreshold.
func NewRegistry(threshold float64, order ...Handler) *Registry {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	r := &Registry{threshold: threshold}
	hasGeneric := false
	for _, h := range order {
		r.handlers = append(r.handlers, h)
		if h.Name() == genericHandlerName {
			hasGeneric = true
		}
	}
	if !hasGeneric {
		r.handlers = append(r.handlers, NewGenericHandler())
	}
	return r
}

// DefaultRegistry returns the registry used by pkg/xmlanalysis when the
// caller supplies no override: every specialized handler in this
// package's registration order, followed by the generic fallback.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultConfidenceThreshold, DefaultHandlers()...)
}

// candidate pairs a handler with its CanHandle verdict.
type candidate struct {
	handler    Handler
	confidence float64
}

// Dispatch runs the Handler Dispatch Engine (spec.md §4.3) over an
// already-parsed document: it polls every handler's CanHandle,
// selects the highest-confidence candidate (registry order breaks
// ties), and runs DetectType then Analyze on the winner.
func (r *Registry) Dispatch(doc *xmlparser.Document, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	var candidates []candidate
	var generic *candidate
	for _, h := range r.handlers {
		ok, conf := safeCanHandle(h, doc.Root, doc.Namespaces)
		if !ok {
			continue
		}
		if h.Name() == genericHandlerName {
			c := candidate{handler: h, confidence: conf}
			generic = &c
			continue
		}
		if conf >= r.threshold {
			candidates = append(candidates, candidate{handler: h, confidence: conf})
		}
	}

	winner := selectWinner(candidates)
	if winner == nil {
		// The generic handler is the last-resort fallback: it is
		// selected only when no specialized handler clears the
		// threshold, never competing with them on confidence
		// (spec.md §4.2/§4.3).
		winner = generic
	}
	if winner == nil {
		// Only reachable for a caller-supplied registry that omitted
		// the generic handler and every other handler declined.
		return xmlmodel.SpecializedAnalysis{}, &xmlmodel.AnalysisError{
			Path:          filePath,
			HandlerName:   "<none>",
			CorrelationID: uuid.NewString(),
			Err:           fmt.Errorf("no handler in registry accepted the document"),
		}
	}

	typeInfo := winner.handler.DetectType(doc.Root, doc.Namespaces)

	analysis, err := winner.handler.Analyze(doc.Root, filePath)
	if err != nil {
		return xmlmodel.SpecializedAnalysis{}, &xmlmodel.AnalysisError{
			Path:          filePath,
			HandlerName:   winner.handler.Name(),
			CorrelationID: uuid.NewString(),
			Err:           err,
		}
	}

	// Merge: the winning DocumentTypeInfo always wins over whatever
	// Analyze itself populated (spec.md §4.3 step 5).
	analysis.DocumentTypeInfo = typeInfo
	if analysis.DocumentTypeInfo.Metadata == nil {
		analysis.DocumentTypeInfo.Metadata = map[string]interface{}{}
	}
	analysis.DocumentTypeInfo.Metadata["handler_used"] = handlerClassName(winner.handler)

	if analysis.StructuredData == nil {
		analysis.StructuredData = winner.handler.ExtractKeyData(doc.Root)
	}

	return analysis, nil
}

// handlerClassName is the identity stamped into metadata.handler_used
// (spec.md §4.3 step 5: "the identity of the handler class/name"),
// e.g. "SAMLHandler" for *SAMLHandler. Distinct from Handler.Name(),
// which stays a short slug used for registry lookup and config
// (handlers.NewRegistryFromNames).
func handlerClassName(h Handler) string {
	t := reflect.TypeOf(h)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// selectWinner picks the strictly-highest-confidence candidate,
// registry order breaking ties (the first candidate in registration
// order at the max confidence wins, since we scan in registry order
// and only replace on strictly greater confidence).
func selectWinner(candidates []candidate) *candidate {
	var winner *candidate
	for i := range candidates {
		c := candidates[i]
		if winner == nil || c.confidence > winner.confidence {
			cc := c
			winner = &cc
		}
	}
	return winner
}

// safeCanHandle treats a panicking CanHandle as a (false, 0.0) verdict
// per spec.md §4.3's failure semantics ("exception raised inside
// can_handle: treat as (false, 0.0); log diagnostic, continue").
func safeCanHandle(h Handler, root *xmlparser.Node, namespaces map[string]string) (ok bool, confidence float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("handler %q panicked in CanHandle: %v", h.Name(), r)
			ok, confidence = false, 0.0
		}
	}()
	return h.CanHandle(root, namespaces)
}
