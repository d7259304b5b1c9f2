package handlers

import (
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

const (
	soap11NS = "http://schemas.xmlsoap.org/soap/envelope/"
	soap12NS = "http://www.w3.org/2003/05/soap-envelope"
)

// SOAPHandler recognizes SOAP envelope messages (spec.md §4.4.1).
// Grounded on original_source/src/handlers/soap_envelope_handler.py.
type SOAPHandler struct{}

func NewSOAPHandler() *SOAPHandler { return &SOAPHandler{} }

func (h *SOAPHandler) Name() string { return "soap" }

func (h *SOAPHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	if root.Local != "Envelope" {
		return false, 0.0
	}
	confidence := 0.0
	if root.Namespace == soap11NS || root.Namespace == soap12NS || exactNamespace(namespaces, soap11NS) || exactNamespace(namespaces, soap12NS) {
		confidence += 0.7
	}
	if root.Child("Body") != nil {
		confidence += 0.2
	}
	if root.Child("Header") != nil {
		confidence += 0.1
	}
	if confidence >= 0.5 {
		return true, clamp(confidence)
	}
	return false, 0.0
}

func (h *SOAPHandler) version(root *xmlparser.Node, namespaces map[string]string) string {
	if root.Namespace == soap12NS || exactNamespace(namespaces, soap12NS) {
		return "1.2"
	}
	return "1.1"
}

func (h *SOAPHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	version := h.version(root, namespaces)
	class := "request"
	body := root.Child("Body")
	if body != nil && h.hasFault(body) {
		class = "fault"
	}
	return xmlmodel.DocumentTypeInfo{
		TypeName:   "SOAP " + version + " Envelope",
		Confidence: 0.95,
		Version:    version,
		Metadata: map[string]interface{}{
			"protocol":     "SOAP",
			"category":     "web_service_message",
			"message_class": class,
		},
	}
}

func (h *SOAPHandler) hasFault(body *xmlparser.Node) bool {
	return body.Child("Fault") != nil
}

func (h *SOAPHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	header := root.Child("Header")
	body := root.Child("Body")

	var bodyOperation string
	var faultCode string
	if body != nil {
		for _, c := range body.Children {
			bodyOperation = c.Local
			break
		}
		if fault := body.Child("Fault"); fault != nil {
			faultCode = textOf(fault, "faultcode")
		}
	}

	findings := map[string]interface{}{
		"has_header":     header != nil,
		"has_body":       body != nil,
		"body_operation": bodyOperation,
		"fault_code":     faultCode,
		"has_signature":  hasSignature(root),
		"has_encryption": hasEncryptedData(root),
	}

	security := 0.0
	if hasSignature(root) {
		security += 0.5
	}
	if hasEncryptedData(root) {
		security += 0.3
	}
	if faultCode == "" {
		security += 0.2
	}

	return xmlmodel.SpecializedAnalysis{
		KeyFindings: findings,
		Recommendations: []string{
			"Validate WS-Security headers for signed/encrypted operations",
			"Check for SOAP fault handling consistency",
			"Extract operation names for API surface inventory",
		},
		DataInventory: map[string]int{
			"header_elements": len(childrenOrEmpty(header)),
			"body_elements":   len(childrenOrEmpty(body)),
		},
		AIUseCases: []string{
			"Web service API surface discovery",
			"SOAP security posture assessment",
			"Legacy service migration planning",
		},
		StructuredData: h.ExtractKeyData(root),
		QualityMetrics: map[string]float64{
			"security": clamp(security),
		},
	}, nil
}

func childrenOrEmpty(n *xmlparser.Node) []*xmlparser.Node {
	if n == nil {
		return nil
	}
	return n.Children
}

func (h *SOAPHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	body := root.Child("Body")
	var operation string
	if body != nil && len(body.Children) > 0 {
		operation = body.Children[0].Local
	}
	return map[string]interface{}{
		"operation":      operation,
		"has_signature":  hasSignature(root),
		"has_encryption": hasEncryptedData(root),
	}
}
