package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/CodMac/go-archview/model"
)

// Format 是结构化输出格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// WriteGraph 写出完整的 AnalysisGraph
func WriteGraph(w io.Writer, graph *model.AnalysisGraph, format Format) error {
	return Write(w, graph, format)
}

// Write 把任意可 JSON 序列化的值 (AnalysisGraph、DiagramSpec、质量报告) 按格式写出。
// YAML 先经过 JSON 转换，键名与 JSON 输出保持一致。
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
