package main_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/diagram"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/pattern"
	"github.com/CodMac/go-archview/processor"
	_ "github.com/CodMac/go-archview/x/annotated"
)

// 控制器 + 服务两个文件的完整链路：抽取、分类、模式、流程图
func TestEndToEnd_ControllerAndService(t *testing.T) {
	units := []model.SourceUnit{
		{Path: "OrderController.java", Text: `@RestController class OrderController { @Autowired OrderService orderService; @GetMapping("/orders") list(){} }`},
		{Path: "OrderService.java", Text: `class OrderService {}`},
	}

	graph, err := processor.NewFileProcessor(model.LangAnnotated, 2).Process(context.Background(), units)
	require.NoError(t, err)

	// 1. 类与角色
	require.Len(t, graph.Classes, 2)
	assert.Equal(t, model.RoleController, graph.Classes[0].Role)
	assert.Equal(t, model.RoleService, graph.Classes[1].Role)

	// 2. 声明层面没有继承/实现
	for _, rel := range graph.Relationships {
		assert.False(t, rel.IsStructural(), "unexpected %v", rel)
	}

	// 3. 模式
	byName := make(map[string]model.Pattern)
	for _, p := range graph.Patterns {
		byName[p.Name] = p
	}
	require.Contains(t, byName, pattern.InjectionName)
	assert.Contains(t, byName[pattern.InjectionName].Classes, "OrderController")
	require.Contains(t, byName, pattern.LayeredName)
	assert.ElementsMatch(t, []string{"OrderController", "OrderService"}, byName[pattern.LayeredName].Classes)

	// 4. 流程图行位置
	positions := make(map[string]model.Position)
	for _, n := range diagram.Flow(graph).Nodes {
		positions[n.ID] = n.Position
	}
	assert.Equal(t, 50, positions["OrderController"].Y)
	assert.Equal(t, 200, positions["OrderService"].Y)
}
