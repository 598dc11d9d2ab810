package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/go-archview/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteClasses 每行写出一个类
func WriteClasses(w io.Writer, graph *model.AnalysisGraph) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0
	for _, c := range graph.Classes {
		if err := writer.Write(c); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WriteRelationships 每行写出一条关系 (包括悬空引用)
func WriteRelationships(w io.Writer, graph *model.AnalysisGraph) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0
	for _, rel := range graph.Relationships {
		if err := writer.Write(rel); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ExportClasses 把类导出到 JSONL 文件
func ExportClasses(path string, graph *model.AnalysisGraph) (int, error) {
	return exportFile(path, graph, WriteClasses)
}

// ExportRelationships 把关系导出到 JSONL 文件
func ExportRelationships(path string, graph *model.AnalysisGraph) (int, error) {
	return exportFile(path, graph, WriteRelationships)
}

func exportFile(path string, graph *model.AnalysisGraph, write func(io.Writer, *model.AnalysisGraph) (int, error)) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := write(f, graph)
	if err != nil {
		return n, err
	}
	return n, f.Close()
}
