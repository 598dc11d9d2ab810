// Package diagram 从 AnalysisGraph 派生渲染无关的 DiagramSpec。
//
// 三种图 (流程图、UML 类图、组件图) 都是图的纯函数，可并发、重复调用。
// 节点以类的短名称为 id；端点不在当前节点集合中的关系不会生成边。
package diagram

import (
	"fmt"

	"github.com/CodMac/go-archview/model"
)

// Kind 是图的种类
type Kind string

const (
	KindFlow      Kind = "flow"
	KindUML       Kind = "uml"
	KindComponent Kind = "component"
)

// Kinds 返回支持的全部图种类
func Kinds() []Kind {
	return []Kind{KindFlow, KindUML, KindComponent}
}

// Build 按种类生成图
func Build(kind Kind, graph *model.AnalysisGraph) (model.DiagramSpec, error) {
	switch kind {
	case KindFlow:
		return Flow(graph), nil
	case KindUML:
		return UMLClass(graph), nil
	case KindComponent:
		return Component(graph), nil
	default:
		return model.DiagramSpec{}, fmt.Errorf("unknown diagram kind %q", kind)
	}
}

// edgesWithin 返回两端都在 ids 中的关系及其在 graph.Relationships 中的下标
func edgesWithin(rels []model.Relationship, ids map[string]bool) ([]model.Relationship, []int) {
	var kept []model.Relationship
	var idx []int
	for i, r := range rels {
		if ids[r.From] && ids[r.To] {
			kept = append(kept, r)
			idx = append(idx, i)
		}
	}
	return kept, idx
}

func edgeID(i int) string {
	return fmt.Sprintf("edge-%d", i)
}

func newSpec() model.DiagramSpec {
	return model.DiagramSpec{Nodes: []model.NodeConfig{}, Edges: []model.EdgeConfig{}}
}
