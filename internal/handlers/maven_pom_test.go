package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Maven POM handler:
// - Recognizes a project root carrying the Maven namespace
// - Falls back to groupId/artifactId sniffing without the namespace
// - Analyze extracts dependency scopes, plugins, and coordinates
// - Quality scoring rewards a described, versioned POM

const pomXML = `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>widget</artifactId>
  <version>1.0.0</version>
  <description>A widget</description>
  <url>https://example.com/widget</url>
  <properties>
    <java.version>17</java.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13.2</version>
      <scope>test</scope>
    </dependency>
    <dependency>
      <groupId>com.example</groupId>
      <artifactId>core</artifactId>
      <version>1.0.0</version>
    </dependency>
  </dependencies>
  <build>
    <plugins>
      <plugin>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>3.11.0</version>
      </plugin>
    </plugins>
  </build>
</project>`

func TestMavenPOMHandler_CanHandle_RecognizesNamespace(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, pomXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 1.0, confidence)
}

func TestMavenPOMHandler_CanHandle_FallsBackWithoutNamespace(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, `<project><groupId>com.example</groupId><artifactId>widget</artifactId></project>`)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.Equal(t, 0.8, confidence)
}

func TestMavenPOMHandler_CanHandle_RejectsNonProjectRoot(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, `<module/>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestMavenPOMHandler_Analyze_ExtractsDependenciesAndPlugins(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, pomXML)

	analysis, err := h.Analyze(doc.Root, "pom.xml")
	require.NoError(t, err)

	deps, ok := analysis.KeyFindings["dependencies"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2, deps["count"])

	byScope, ok := deps["by_scope"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, byScope["test"])
	assert.Equal(t, 1, byScope["compile"])

	plugins, ok := analysis.KeyFindings["plugins"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, plugins, 1)
	assert.Equal(t, "org.apache.maven.plugins", plugins[0]["groupId"])

	assert.Equal(t, 2, analysis.DataInventory["dependencies"])
}

func TestMavenPOMHandler_ExtractKeyData_ReportsCoordinates(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, pomXML)

	data := h.ExtractKeyData(doc.Root)
	coords, ok := data["coordinates"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "com.example", coords["groupId"])
	assert.Equal(t, "widget", coords["artifactId"])
	assert.Equal(t, "jar", coords["packaging"])
}

func TestMavenPOMHandler_AssessQuality_RewardsDescribedVersionedPOM(t *testing.T) {
	t.Parallel()

	h := NewMavenPOMHandler()
	doc := mustParse(t, pomXML)

	analysis, err := h.Analyze(doc.Root, "pom.xml")
	require.NoError(t, err)

	assert.Equal(t, 1.0, analysis.QualityMetrics["completeness"])
	assert.Equal(t, 1.0, analysis.QualityMetrics["dependency_management"])
}
