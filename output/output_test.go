package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/output"
)

func sampleGraph() *model.AnalysisGraph {
	return &model.AnalysisGraph{
		Classes: []model.ClassEntity{
			{Name: "OrderController", Role: model.RoleController},
			{Name: "OrderService", Role: model.RoleService},
		},
		Relationships: []model.Relationship{
			{From: "OrderController", To: "OrderService", Kind: model.Calls, Method: "place"},
			{From: "OrderService", To: "Base", Kind: model.Extends},
		},
	}
}

func TestWriteGraph_JSONAndYAML(t *testing.T) {
	var jsonBuf, yamlBuf bytes.Buffer
	require.NoError(t, output.WriteGraph(&jsonBuf, sampleGraph(), output.FormatJSON))
	require.NoError(t, output.WriteGraph(&yamlBuf, sampleGraph(), output.FormatYAML))

	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))

	assert.Contains(t, fromYAML, "relationships", "YAML 键名与 JSON 一致")
	assert.Len(t, fromJSON["classes"], 2)
	assert.Len(t, fromYAML["classes"], 2)
	assert.Contains(t, yamlBuf.String(), "kind: calls")

	assert.Error(t, output.WriteGraph(&bytes.Buffer{}, sampleGraph(), "xml"))
}

func TestJSONL(t *testing.T) {
	var buf bytes.Buffer
	n, err := output.WriteRelationships(&buf, sampleGraph())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var rel model.Relationship
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rel))
	assert.Equal(t, "place", rel.Method)

	path := filepath.Join(t.TempDir(), "classes.jsonl")
	n, err = output.ExportClasses(path, sampleGraph())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestMermaid(t *testing.T) {
	spec := model.DiagramSpec{
		Nodes: []model.NodeConfig{
			{ID: "OrderService", Label: "OrderService", Content: &model.ClassBlock{
				Stereotype: "service", Header: "OrderService",
				Fields: []string{"repo: Repository<Order>"},
			}},
			{ID: "layer-web", Label: "Web Layer", Members: []string{"OrderController"}},
			{ID: "Base", Label: "Base"},
		},
		Edges: []model.EdgeConfig{
			{ID: "edge-0", Source: "OrderService", Target: "Base", Label: "extends", Style: &model.EdgeStyle{Line: "solid"}},
			{ID: "edge-1", Source: "layer-web", Target: "OrderService", Label: "depends on"},
			{ID: "edge-2", Source: "Base", Target: "OrderService", Style: &model.EdgeStyle{Line: "dashed"}},
		},
	}

	text := output.Mermaid(spec)
	assert.True(t, strings.HasPrefix(text, "graph TD\n"))
	assert.Contains(t, text, `n_OrderService["«service»<br/><b>OrderService</b><br/>repo: Repository#lt;Order#gt;"]`)
	assert.Contains(t, text, `n_layer_web["<b>Web Layer</b><br/>OrderController"]`)
	assert.Contains(t, text, "n_OrderService ==>|extends| n_Base")
	assert.Contains(t, text, "n_layer_web -->|depends on| n_OrderService")
	assert.Contains(t, text, "n_Base -.-> n_OrderService")

	var buf bytes.Buffer
	require.NoError(t, output.ExportMermaidHTML(&buf, "uml <diagram>", spec))
	html := buf.String()
	assert.Contains(t, html, "<title>uml &lt;diagram&gt;</title>")
	assert.Contains(t, html, `<div class="mermaid">`)
	assert.Contains(t, html, "graph TD")
}
