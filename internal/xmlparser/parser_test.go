package xmlparser

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
)

// Test Plan for the Safe Parser:
// - Parses well-formed XML into a Node tree with resolved namespaces
// - Tracks parent/child links and approximate line numbers
// - Rejects malformed XML as ParseError(malformed)
// - Rejects an external-DTD SYSTEM fetch attempt as ParseError(unsafe-entity)
// - Rejects billion-laughs entity expansion as ParseError(xml-bomb)
// - S1000D documents with mixed safe/unsafe graphic entities keep only
//   the safe ones and parse successfully
// - Size ceiling rejects oversize input as SizeError before parsing

func TestParseBytes_WellFormed(t *testing.T) {
	t.Parallel()

	doc, err := ParseBytes("doc.xml", []byte(`<?xml version="1.0"?>
<root xmlns:a="urn:a">
  <a:child id="1">hello</a:child>
  <child id="2"/>
</root>`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	assert.Equal(t, "root", doc.Root.Local)
	assert.Equal(t, "urn:a", doc.Namespaces["a"])
	require.Len(t, doc.Root.Children, 2)

	first := doc.Root.Children[0]
	assert.Equal(t, "child", first.Local)
	assert.Equal(t, "urn:a", first.Namespace)
	assert.Equal(t, "1", first.AttrOr("id", ""))
	assert.Equal(t, "hello", first.TextTrimmed())
	assert.Same(t, doc.Root, first.Parent)
}

func TestParseBytes_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("bad.xml", []byte(`<root><unclosed></root>`))
	require.Error(t, err)

	var perr *xmlmodel.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, xmlmodel.ParseErrorMalformed, perr.Kind)
}

func TestParseBytes_ExternalDTDFetch(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("evil.xml", []byte(`<!DOCTYPE root SYSTEM "http://evil.example/x.dtd">
<root/>`))
	require.Error(t, err)

	var perr *xmlmodel.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, xmlmodel.ParseErrorUnsafeEntity, perr.Kind)
}

func TestParseBytes_BillionLaughs(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("lolz.xml", []byte(`<!DOCTYPE dmodule [
  <!ENTITY lol "lol">
  <!ENTITY lol2 "&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;">
]>
<dmodule>&lol2;</dmodule>`))
	require.Error(t, err)

	var perr *xmlmodel.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, xmlmodel.ParseErrorXMLBomb, perr.Kind)
}

func TestParseBytes_BillionLaughs_NonS1000DRoot(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("lolz.xml", []byte(`<!DOCTYPE lolz [
  <!ENTITY lol "lol">
  <!ENTITY lol2 "&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;&lol;">
]>
<lolz>&lol2;</lolz>`))
	require.Error(t, err)

	var perr *xmlmodel.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, xmlmodel.ParseErrorXMLBomb, perr.Kind)
}

func TestParseBytes_S1000DMixedEntities(t *testing.T) {
	t.Parallel()

	doc, err := ParseBytes("dm.xml", []byte(`<!DOCTYPE dmodule [
  <!ENTITY ICN-001 SYSTEM "graphics/icn-001.png" NDATA png>
  <!ENTITY ICN-002 SYSTEM "../../etc/passwd" NDATA png>
  <!ENTITY ICN-003 SYSTEM "http://example.com/x.exe" NDATA exe>
]>
<dmodule><content>body</content></dmodule>`))
	require.NoError(t, err)

	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "ICN-001", doc.Entities[0].Name)
}

func TestParseFile_SizeCeiling(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/big.xml"
	padding := make([]byte, 2048)
	for i := range padding {
		padding[i] = ' '
	}
	content := append([]byte(`<root><!-- `), append(padding, []byte(` --></root>`)...)...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	doc, err := ParseFile(path, WithSizeLimit(SizeLimitUnbounded))
	require.NoError(t, err)
	assert.Equal(t, "root", doc.Root.Local)

	_, err = ParseFile(path, WithSizeLimit(SizeLimit(0.0001)))
	require.Error(t, err)
	var serr *xmlmodel.SizeError
	require.True(t, errors.As(err, &serr))
}
