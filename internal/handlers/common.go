package handlers

import (
	"regexp"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// hasNamespace reports whether any declared namespace URI contains
// substr (case-sensitive, since namespace URIs are).
func hasNamespace(namespaces map[string]string, substr string) bool {
	for _, uri := range namespaces {
		if strings.Contains(uri, substr) {
			return true
		}
	}
	return false
}

// exactNamespace reports whether any declared namespace URI equals uri
// exactly.
func exactNamespace(namespaces map[string]string, uri string) bool {
	for _, v := range namespaces {
		if v == uri {
			return true
		}
	}
	return false
}

// clamp clamps additive confidence scoring into [0, 1], per spec.md
// §4.3's per-handler confidence rubric.
func clamp(v float64) float64 { return xmlmodel.Clamp01(v) }

// hasSignature reports whether a ds:Signature (or unqualified
// Signature) descendant exists anywhere in the subtree, the shared
// "is this message signed" check used by SAML/SOAP/SCAP.
func hasSignature(root *xmlparser.Node) bool {
	return root.Descendant("Signature") != nil
}

// hasEncryptedData reports whether an EncryptedData/EncryptedAssertion
// descendant exists.
func hasEncryptedData(root *xmlparser.Node) bool {
	return root.Descendant("EncryptedData") != nil || root.Descendant("EncryptedAssertion") != nil
}

var sensitiveKeyRE = regexp.MustCompile(`(?i)(password|secret|token|key)`)

// isSensitiveKey reports whether a property/attribute name looks like
// it names a credential, per spec.md §4.4.5 ("flag sensitive
// properties: keys containing password/secret/token/key").
func isSensitiveKey(name string) bool {
	return sensitiveKeyRE.MatchString(name)
}

var jndiLookupRE = regexp.MustCompile(`(?i)\$\{jndi:`)

// hasLog4ShellPattern reports whether a string contains the
// Log4Shell JNDI-lookup trigger pattern.
func hasLog4ShellPattern(s string) bool {
	return jndiLookupRE.MatchString(s)
}

// countDescendantsWhere counts descendants (inclusive of root) for
// which pred returns true.
func countDescendantsWhere(root *xmlparser.Node, pred func(*xmlparser.Node) bool) int {
	count := 0
	root.Walk(func(n *xmlparser.Node) bool {
		if pred(n) {
			count++
		}
		return true
	})
	return count
}

// textOf returns the trimmed direct text of the first child named
// local, or "" if absent.
func textOf(n *xmlparser.Node, local string) string {
	if c := n.Child(local); c != nil {
		return c.TextTrimmed()
	}
	return ""
}
