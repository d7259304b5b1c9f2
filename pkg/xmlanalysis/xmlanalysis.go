// Package xmlanalysis is the public façade over the safe parser, the
// handler dispatch engine, and the chunking orchestrator (spec.md §6).
// Its three functions are deliberately thin: each composes the
// internal packages in one fixed order and adds nothing of its own.
package xmlanalysis

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/chunking"
	"github.com/redhat-ai-americas/xml-analyzer/internal/handlers"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Option configures a façade call. Options wrap xmlparser.Option so
// callers never import internal/xmlparser directly.
type Option func(*options)

type options struct {
	sizeLimit xmlparser.SizeLimit
	registry  *handlers.Registry
}

// WithSizeLimit sets the file-size ceiling enforced before parsing.
func WithSizeLimit(limit xmlparser.SizeLimit) Option {
	return func(o *options) { o.sizeLimit = limit }
}

// WithRegistry overrides the default handler registry (spec.md §6,
// "Handler registry configuration").
func WithRegistry(r *handlers.Registry) Option {
	return func(o *options) { o.registry = r }
}

func resolve(opts []Option) options {
	cfg := options{registry: handlers.DefaultRegistry()}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Analyze safe-parses path and dispatches it through the handler
// registry: parse → dispatch → return (spec.md §6's analyze(path)).
func Analyze(path string, opts ...Option) (xmlmodel.SpecializedAnalysis, error) {
	cfg := resolve(opts)

	doc, err := xmlparser.ParseFile(path, xmlparser.WithSizeLimit(cfg.sizeLimit))
	if err != nil {
		return xmlmodel.SpecializedAnalysis{}, err
	}
	return cfg.registry.Dispatch(doc, path)
}

// AnalyzeSchema safe-parses path and reports structural statistics
// only; no handler dispatch runs (spec.md §6's analyze_schema(path)).
func AnalyzeSchema(path string, opts ...Option) (xmlmodel.SchemaSummary, error) {
	cfg := resolve(opts)

	doc, err := xmlparser.ParseFile(path, xmlparser.WithSizeLimit(cfg.sizeLimit))
	if err != nil {
		return xmlmodel.SchemaSummary{}, err
	}
	return xmlmodel.SchemaSummary{
		TotalElements: doc.Root.Count(),
		MaxDepth:      doc.Root.Depth(),
		UniqueTags:    doc.Root.UniqueLocalNames(),
		RootElement:   doc.Root.Local,
	}, nil
}

// Chunk analyzes path, then runs the chunking orchestrator over the
// result (spec.md §6's chunk(path, strategy, config)). strategy
// defaults to chunking.StrategyAuto and config to
// xmlmodel.DefaultChunkingConfig when the zero value is supplied.
func Chunk(path string, strategy string, cfg xmlmodel.ChunkingConfig, opts ...Option) ([]xmlmodel.Chunk, error) {
	facadeCfg := resolve(opts)

	doc, err := xmlparser.ParseFile(path, xmlparser.WithSizeLimit(facadeCfg.sizeLimit))
	if err != nil {
		return nil, err
	}

	analysis, err := facadeCfg.registry.Dispatch(doc, path)
	if err != nil {
		return nil, err
	}

	if strategy == "" {
		strategy = chunking.StrategyAuto
	}
	if cfg == (xmlmodel.ChunkingConfig{}) {
		cfg = xmlmodel.DefaultChunkingConfig()
	}

	return chunking.Chunk(doc, analysis, strategy, cfg)
}
