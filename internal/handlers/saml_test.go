package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the SAML handler:
// - Recognizes a SAML 2.0 Response with the assertion/protocol namespaces
// - Flags the absence of a digital signature as a security risk
// - Rejects a non-SAML root element outright

func TestSAMLHandler_CanHandle_RecognizesResponse(t *testing.T) {
	t.Parallel()

	h := NewSAMLHandler()
	doc := mustParse(t, `<samlp:Response xmlns:samlp="urn:oasis:names:tc:SAML:2.0:protocol"
  xmlns:saml="urn:oasis:names:tc:SAML:2.0:assertion" ID="r1" Version="2.0" IssueInstant="2026-01-01T00:00:00Z">
  <saml:Issuer>https://idp.example.com</saml:Issuer>
</samlp:Response>`)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.GreaterOrEqual(t, confidence, 0.7)
}

func TestSAMLHandler_CanHandle_RejectsNonSAMLRoot(t *testing.T) {
	t.Parallel()

	h := NewSAMLHandler()
	doc := mustParse(t, `<NotSAML/>`)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
	assert.Equal(t, 0.0, confidence)
}

func TestSAMLHandler_Analyze_FlagsMissingSignature(t *testing.T) {
	t.Parallel()

	h := NewSAMLHandler()
	doc := mustParse(t, `<samlp:Response xmlns:samlp="urn:oasis:names:tc:SAML:2.0:protocol"
  xmlns:saml="urn:oasis:names:tc:SAML:2.0:assertion" ID="r1" Version="2.0" IssueInstant="2026-01-01T00:00:00Z">
  <saml:Issuer>https://idp.example.com</saml:Issuer>
</samlp:Response>`)

	analysis, err := h.Analyze(doc.Root, "response.xml")
	require.NoError(t, err)

	security, ok := analysis.KeyFindings["security"].(map[string]interface{})
	require.True(t, ok)
	risks, ok := security["security_risks"].([]string)
	require.True(t, ok)
	assert.Contains(t, risks, "No digital signature present")
}
