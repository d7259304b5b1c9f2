package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlparser"
)

// Test Plan for the dispatch engine:
// - Generic fallback always accepted when no specialized handler matches
// - Highest-confidence handler wins dispatch
// - A panicking CanHandle is treated as a decline, not a crash
// - NewRegistry auto-appends the generic handler when absent from the order

type panickyHandler struct{}

func (panickyHandler) Name() string { return "panicky" }
func (panickyHandler) CanHandle(root *xmlparser.Node, namespaces map[string]string) (bool, float64) {
	panic("boom")
}
func (panickyHandler) DetectType(root *xmlparser.Node, namespaces map[string]string) xmlmodel.DocumentTypeInfo {
	return xmlmodel.DocumentTypeInfo{TypeName: "unreachable"}
}
func (panickyHandler) Analyze(root *xmlparser.Node, filePath string) (xmlmodel.SpecializedAnalysis, error) {
	return xmlmodel.SpecializedAnalysis{}, nil
}
func (panickyHandler) ExtractKeyData(root *xmlparser.Node) map[string]interface{} {
	return nil
}

func mustParse(t *testing.T, xml string) *xmlparser.Document {
	t.Helper()
	doc, err := xmlparser.ParseBytes("doc.xml", []byte(xml))
	require.NoError(t, err)
	return doc
}

func TestRegistry_GenericFallback(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(DefaultConfidenceThreshold, NewGenericHandler())
	doc := mustParse(t, `<unrelated><child/></unrelated>`)

	analysis, err := reg.Dispatch(doc, "doc.xml")
	require.NoError(t, err)
	assert.Equal(t, "Generic XML", analysis.TypeName)
	assert.Equal(t, "GenericHandler", analysis.Metadata["handler_used"])
}

func TestRegistry_HighestConfidenceWins(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(DefaultConfidenceThreshold, NewMavenPOMHandler(), NewGenericHandler())
	doc := mustParse(t, `<project>
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
</project>`)

	analysis, err := reg.Dispatch(doc, "pom.xml")
	require.NoError(t, err)
	assert.Equal(t, "MavenPOMHandler", analysis.Metadata["handler_used"])
}

func TestRegistry_AutoAppendsGeneric(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(DefaultConfidenceThreshold, NewMavenPOMHandler())
	doc := mustParse(t, `<something-else/>`)

	analysis, err := reg.Dispatch(doc, "doc.xml")
	require.NoError(t, err)
	assert.Equal(t, "GenericHandler", analysis.Metadata["handler_used"])
}

func TestRegistry_PanickingHandlerTreatedAsDecline(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(DefaultConfidenceThreshold, panickyHandler{}, NewGenericHandler())
	doc := mustParse(t, `<root/>`)

	analysis, err := reg.Dispatch(doc, "doc.xml")
	require.NoError(t, err)
	assert.Equal(t, "GenericHandler", analysis.Metadata["handler_used"])
}

func TestRegistry_Dispatch_SAMLAssertionScenario(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(DefaultConfidenceThreshold, NewSAMLHandler(), NewGenericHandler())
	doc := mustParse(t, `<Assertion xmlns="urn:oasis:names:tc:SAML:2.0:assertion" Version="2.0" ID="x" IssueInstant="2020-01-01T00:00:00Z"><Issuer>idp</Issuer><Subject><NameID>user</NameID></Subject></Assertion>`)

	analysis, err := reg.Dispatch(doc, "assertion.xml")
	require.NoError(t, err)
	assert.Equal(t, "SAML 2.0 Assertion", analysis.TypeName)
	assert.GreaterOrEqual(t, analysis.Confidence, 0.9)
	assert.Equal(t, "Assertion", analysis.Metadata["message_type"])
	assert.Equal(t, "SAMLHandler", analysis.Metadata["handler_used"])
}

func TestSelectWinner_TieBreaksToFirstRegistered(t *testing.T) {
	t.Parallel()

	a := candidate{handler: NewGenericHandler(), confidence: 0.5}
	b := candidate{handler: NewRSSHandler(), confidence: 0.5}

	winner := selectWinner([]candidate{a, b})
	require.NotNil(t, winner)
	assert.Equal(t, "generic", winner.handler.Name())
}
