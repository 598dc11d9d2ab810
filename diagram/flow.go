package diagram

import (
	"github.com/CodMac/go-archview/model"
)

const (
	flowNodeWidth  = 200
	flowNodeHeight = 80
	flowOriginX    = 100
	flowStepX      = 250
	flowRouter     = "manhattan"
)

// flowRows 是流程图的三行：controller 在上，service 居中，repository 在下
var flowRows = []struct {
	role model.Role
	y    int
}{
	{model.RoleController, 50},
	{model.RoleService, 200},
	{model.RoleRepository, 350},
}

// Flow 生成请求流程图：controller -> service -> repository 三行布局
func Flow(graph *model.AnalysisGraph) model.DiagramSpec {
	spec := newSpec()
	ids := make(map[string]bool)

	for _, row := range flowRows {
		for i, c := range graph.ClassesByRole(row.role) {
			ids[c.Name] = true
			spec.Nodes = append(spec.Nodes, model.NodeConfig{
				ID:       c.Name,
				Type:     "flowNode",
				Label:    c.Name,
				Position: model.Position{X: flowOriginX + i*flowStepX, Y: row.y},
				Size:     model.Size{Width: flowNodeWidth, Height: flowNodeHeight},
				Role:     c.Role,
			})
		}
	}

	rels, idx := edgesWithin(graph.Relationships, ids)
	for i, r := range rels {
		spec.Edges = append(spec.Edges, model.EdgeConfig{
			ID:     edgeID(idx[i]),
			Source: r.From,
			Target: r.To,
			Label:  string(r.Kind),
			Router: flowRouter,
		})
	}
	return spec
}
