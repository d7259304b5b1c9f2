package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Log4jHandler recognizes Log4j 1.x XML configuration documents
// (spec.md §4.4.5), including a Log4Shell (CVE-2021-44228) lookup-pattern
// scan over configured layout patterns.
type Log4jHandler struct{}

func NewLog4jHandler() *Log4jHandler { return &Log4jHandler{} }

func (h *Log4jHandler) Name() string { return "log4j" }

func (h *Log4jHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "configuration" && root.Local != "log4j:configuration" {
		return false, 0.0
	}
	confidence := 0.0
	if root.Descendant("appender") != nil {
		confidence += 0.5
	}
	if root.Descendant("category") != nil || root.Descendant("logger") != nil || root.Descendant("root") != nil {
		confidence += 0.3
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *Log4jHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "Log4j Configuration",
		Confidence: 0.85,
		Metadata:   map[string]interface{}{"category": "logging_configuration"},
	}
}

func (h *Log4jHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	appenders := root.Descendants("appender")
	loggers := append(root.Descendants("category"), root.Descendants("logger")...)

	var vulnerablePatterns []string
	for _, appender := range appenders {
		for _, layout := range appender.ChildrenNamed("layout") {
			for _, param := range layout.ChildrenNamed("param") {
				if name, _ := param.Attr("name"); name == "ConversionPattern" {
					if pattern, ok := param.Attr("value"); ok && hasLog4ShellPattern(pattern) {
						vulnerablePatterns = append(vulnerablePatterns, pattern)
					}
				}
			}
		}
	}

	findings := map[string]interface{}{
		"appender_count":      len(appenders),
		"logger_count":        len(loggers),
		"log4shell_candidates": vulnerablePatterns,
	}

	security := 1.0
	if len(vulnerablePatterns) > 0 {
		security = 0.0
	}

	recommendations := []string{"Upgrade from Log4j 1.x to a maintained logging framework"}
	if len(vulnerablePatterns) > 0 {
		recommendations = append(recommendations, "Remove JNDI lookup patterns from ConversionPattern values (CVE-2021-44228)")
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings:     findings,
		Recommendations: recommendations,
		DataInventory:   map[string]int{"appenders": len(appenders), "loggers": len(loggers)},
		AIUseCases:      []string{"Logging configuration audit", "Known-CVE pattern scanning"},
		StructuredData:  h.ExtractKeyData(root),
		QualityMetrics:  map[string]float64{"security": security},
	}, nil
}

func (h *Log4jHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	var names []string
	for _, a := range root.Descendants("appender") {
		names = append(names, a.AttrOr("name", ""))
	}
	return map[string]interface{}{"appenders": names}
}
