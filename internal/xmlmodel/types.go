// Package xmlmodel defines the data model shared by the parser, the
// handler registry, and the chunking orchestrator: the classification
// verdict (DocumentTypeInfo), the analysis report (SpecializedAnalysis),
// and the chunk produced by the orchestrator (Chunk).
package xmlmodel

// DocumentTypeInfo is the classification verdict a handler returns from
// DetectType. Confidence is always in [0.0, 1.0].
type DocumentTypeInfo struct {
	TypeName   string                 `json:"type_name" yaml:"type_name"`
	Confidence float64                `json:"confidence" yaml:"confidence"`
	Version    string                 `json:"version,omitempty" yaml:"version,omitempty"`
	SchemaURI  string                 `json:"schema_uri,omitempty" yaml:"schema_uri,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SpecializedAnalysis is the full analysis report produced by the
// dispatch engine. It embeds DocumentTypeInfo by composition rather than
// by the teacher project's flat field-copy, per the REDESIGN FLAGS in
// spec.md §9 ("mutable analysis result field-merging").
type SpecializedAnalysis struct {
	DocumentTypeInfo `yaml:",inline"`

	KeyFindings     map[string]interface{} `json:"key_findings" yaml:"key_findings"`
	Recommendations []string                `json:"recommendations" yaml:"recommendations"`
	DataInventory   map[string]int          `json:"data_inventory" yaml:"data_inventory"`
	AIUseCases      []string                `json:"ai_use_cases" yaml:"ai_use_cases"`
	StructuredData  map[string]interface{}  `json:"structured_data" yaml:"structured_data"`
	QualityMetrics  map[string]float64      `json:"quality_metrics" yaml:"quality_metrics"`
}

// Clamp01 forces a confidence or quality-metric value into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Chunk is an addressable, size-bounded fragment produced by the
// chunking orchestrator.
type Chunk struct {
	ChunkID          string                 `json:"chunk_id" yaml:"chunk_id"`
	Content          string                 `json:"content" yaml:"content"`
	ElementPath      string                 `json:"element_path" yaml:"element_path"`
	StartLine        int                    `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine          int                    `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	ElementsIncluded []string               `json:"elements_included" yaml:"elements_included"`
	TokenEstimate    int                    `json:"token_estimate" yaml:"token_estimate"`
	Metadata         map[string]interface{} `json:"metadata" yaml:"metadata"`
	ParentContext    string                 `json:"parent_context,omitempty" yaml:"parent_context,omitempty"`
}

// ChunkingConfig controls the chunking orchestrator. Zero value is
// invalid; use DefaultChunkingConfig.
type ChunkingConfig struct {
	MaxChunkSize       int  `yaml:"max_chunk_size" mapstructure:"max_chunk_size"`
	MinChunkSize       int  `yaml:"min_chunk_size" mapstructure:"min_chunk_size"`
	OverlapSize        int  `yaml:"overlap_size" mapstructure:"overlap_size"`
	PreserveHierarchy  bool `yaml:"preserve_hierarchy" mapstructure:"preserve_hierarchy"`
}

// DefaultChunkingConfig returns the defaults fixed by spec.md §4.5.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		MaxChunkSize:      2000,
		MinChunkSize:      200,
		OverlapSize:       100,
		PreserveHierarchy: true,
	}
}

// EstimateTokens is the heuristic approximation used throughout:
// ceil(len(content) / 4).
func EstimateTokens(content string) int {
	n := len(content)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// SchemaSummary is analyze_schema's parse-only output (spec.md §6):
// total element count, maximum tree depth, and the set of distinct
// local element names with their occurrence counts. No handler
// dispatch runs to produce this.
type SchemaSummary struct {
	TotalElements int            `json:"total_elements" yaml:"total_elements"`
	MaxDepth      int            `json:"max_depth" yaml:"max_depth"`
	UniqueTags    map[string]int `json:"unique_tags" yaml:"unique_tags"`
	RootElement   string         `json:"root_element" yaml:"root_element"`
}
