package diagram

import (
	"fmt"
	"strings"

	"github.com/CodMac/go-archview/model"
)

const (
	umlColumns     = 4
	umlOriginX     = 50
	umlOriginY     = 50
	umlStepX       = 300
	umlRowGap      = 30
	umlNodeWidth   = 280
	umlMinHeight   = 120
	umlBaseHeight  = 40
	umlLineHeight  = 16
	umlSectionPad  = 10
	umlVisibleRows = 6
	umlRouter      = "orthogonal"
)

// UMLClass 生成全部类的 UML 类图，每行 4 个，行高取所有节点高度的最大值
func UMLClass(graph *model.AnalysisGraph) model.DiagramSpec {
	spec := newSpec()
	classes := graph.UniqueClasses()

	rowHeight := 0
	for _, c := range classes {
		if h := NodeHeight(len(c.Fields), len(c.Methods)); h > rowHeight {
			rowHeight = h
		}
	}

	ids := make(map[string]bool, len(classes))
	for i, c := range classes {
		col, row := i%umlColumns, i/umlColumns
		ids[c.Name] = true
		spec.Nodes = append(spec.Nodes, model.NodeConfig{
			ID:    c.Name,
			Type:  "umlClass",
			Label: c.Name,
			Position: model.Position{
				X: umlOriginX + col*umlStepX,
				Y: umlOriginY + row*(rowHeight+umlRowGap),
			},
			Size:    model.Size{Width: umlNodeWidth, Height: NodeHeight(len(c.Fields), len(c.Methods))},
			Role:    c.Role,
			Content: classBlock(c),
		})
	}

	rels, idx := edgesWithin(graph.Relationships, ids)
	for i, r := range rels {
		spec.Edges = append(spec.Edges, model.EdgeConfig{
			ID:     edgeID(idx[i]),
			Source: r.From,
			Target: r.To,
			Label:  string(r.Kind),
			Router: umlRouter,
			Style:  EdgeStyle(r.Kind),
		})
	}
	return spec
}

// NodeHeight 计算 UML 节点高度：max(40 + 字段区高度 + 方法区高度, 120)
func NodeHeight(fieldCount, methodCount int) int {
	return max(umlBaseHeight+sectionHeight(fieldCount)+sectionHeight(methodCount), umlMinHeight)
}

func sectionHeight(n int) int {
	h := min(n, umlVisibleRows)*umlLineHeight + umlSectionPad
	if n > umlVisibleRows {
		h += umlLineHeight
	}
	return h
}

// EdgeStyle 是关系类型到线型的纯映射
func EdgeStyle(kind model.RelationKind) *model.EdgeStyle {
	switch kind {
	case model.Extends:
		return &model.EdgeStyle{Line: "solid", StrokeWidth: 2}
	case model.Implements:
		return &model.EdgeStyle{Line: "dashed", StrokeWidth: 2, StrokeDasharray: "5,5"}
	case model.Calls:
		return &model.EdgeStyle{Line: "thin", StrokeWidth: 1}
	case model.Uses:
		return &model.EdgeStyle{Line: "dotted", StrokeWidth: 1, StrokeDasharray: "2,2"}
	default:
		return &model.EdgeStyle{Line: "plain", StrokeWidth: 1}
	}
}

func classBlock(c model.ClassEntity) *model.ClassBlock {
	fields := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, fmt.Sprintf("%s: %s", f.Name, f.Type))
	}
	methods := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		methods = append(methods, fmt.Sprintf("%s(%s): %s", m.Name, strings.Join(m.Parameters, ", "), m.ReturnType))
	}
	return &model.ClassBlock{
		Stereotype: string(c.Role),
		Header:     c.Name,
		Fields:     truncate(fields),
		Methods:    truncate(methods),
	}
}

// truncate 只保留前 6 项，超出部分以 "+N more" 标记
func truncate(lines []string) []string {
	if len(lines) <= umlVisibleRows {
		return lines
	}
	out := append([]string{}, lines[:umlVisibleRows]...)
	return append(out, fmt.Sprintf("+%d more", len(lines)-umlVisibleRows))
}
