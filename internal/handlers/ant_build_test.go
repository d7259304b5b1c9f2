package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Ant build handler:
// - Recognizes a project root with enough Ant-shaped attributes and elements
// - Analyze extracts target dependency chains and computes max dependency depth
// - Quality scoring rewards targets that carry a description

const antBuildXML = `<project name="widget" default="build" basedir=".">
  <property name="src.dir" value="src"/>
  <target name="init"/>
  <target name="compile" depends="init" description="compile sources">
    <javac srcdir="${src.dir}"/>
  </target>
  <target name="build" depends="compile,init">
    <jar/>
  </target>
</project>`

func TestAntBuildHandler_CanHandle_RecognizesAntProject(t *testing.T) {
	t.Parallel()

	h := NewAntBuildHandler()
	doc := mustParse(t, antBuildXML)

	ok, confidence := h.CanHandle(doc.Root, doc.Namespaces)
	require.True(t, ok)
	assert.GreaterOrEqual(t, confidence, 0.5)
}

func TestAntBuildHandler_CanHandle_RejectsSparseProjectRoot(t *testing.T) {
	t.Parallel()

	h := NewAntBuildHandler()
	doc := mustParse(t, `<project/>`)

	ok, _ := h.CanHandle(doc.Root, doc.Namespaces)
	assert.False(t, ok)
}

func TestAntBuildHandler_Analyze_ComputesMaxDependencyDepth(t *testing.T) {
	t.Parallel()

	h := NewAntBuildHandler()
	doc := mustParse(t, antBuildXML)

	analysis, err := h.Analyze(doc.Root, "build.xml")
	require.NoError(t, err)

	targets, ok := analysis.KeyFindings["targets"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, targets, 3)

	metrics, ok := analysis.KeyFindings["build_metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2, metrics["max_dependency_depth"])
}

func TestAntBuildHandler_AssessQuality_RewardsDescribedTargets(t *testing.T) {
	t.Parallel()

	h := NewAntBuildHandler()
	doc := mustParse(t, antBuildXML)

	analysis, err := h.Analyze(doc.Root, "build.xml")
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3.0, analysis.QualityMetrics["completeness"], 0.001)
}

func TestAntBuildHandler_ExtractKeyData_ListsBuildTargetsAndProperties(t *testing.T) {
	t.Parallel()

	h := NewAntBuildHandler()
	doc := mustParse(t, antBuildXML)

	data := h.ExtractKeyData(doc.Root)
	props, ok := data["build_properties"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "src", props["src.dir"])
}
