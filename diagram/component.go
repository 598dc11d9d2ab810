package diagram

import (
	"fmt"

	"github.com/CodMac/go-archview/model"
)

const (
	componentX      = 100
	componentStartY = 50
	componentStepY  = 180
	componentWidth  = 400
	componentHeight = 120
	componentLabel  = "depends on"
	componentRouter = "normal"
)

// Layer 是组件图中的固定分层，与角色一一对应
type Layer struct {
	ID    string
	Label string
	Role  model.Role
}

// Layers 按声明顺序返回四个分层
func Layers() []Layer {
	return []Layer{
		{ID: "layer-web", Label: "Web Layer", Role: model.RoleController},
		{ID: "layer-service", Label: "Service Layer", Role: model.RoleService},
		{ID: "layer-data", Label: "Data Access Layer", Role: model.RoleRepository},
		{ID: "layer-domain", Label: "Domain Model", Role: model.RoleEntity},
	}
}

// Component 生成分层组件图。空层不产生节点，也不与相邻层连边 (不会跨过空层连接)。
func Component(graph *model.AnalysisGraph) model.DiagramSpec {
	spec := newSpec()
	layers := Layers()
	nonEmpty := make([]bool, len(layers))

	yOffset := componentStartY
	for i, l := range layers {
		members := graph.ClassesByRole(l.Role)
		if len(members) == 0 {
			continue
		}
		nonEmpty[i] = true

		names := make([]string, 0, len(members))
		for _, c := range members {
			names = append(names, c.Name)
		}
		spec.Nodes = append(spec.Nodes, model.NodeConfig{
			ID:       l.ID,
			Type:     "component",
			Label:    l.Label,
			Position: model.Position{X: componentX, Y: yOffset},
			Size:     model.Size{Width: componentWidth, Height: componentHeight},
			Role:     l.Role,
			Members:  names,
		})
		yOffset += componentStepY
	}

	for i := 0; i+1 < len(layers); i++ {
		if !nonEmpty[i] || !nonEmpty[i+1] {
			continue
		}
		spec.Edges = append(spec.Edges, model.EdgeConfig{
			ID:     fmt.Sprintf("edge-%s-%s", layers[i].ID, layers[i+1].ID),
			Source: layers[i].ID,
			Target: layers[i+1].ID,
			Label:  componentLabel,
			Router: componentRouter,
		})
	}
	return spec
}
