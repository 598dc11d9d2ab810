package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/processor"
)

func TestReduce(t *testing.T) {
	fragments := []*model.Fragment{
		{
			Path:    "a/Order.java",
			Classes: []model.ClassEntity{{Name: "Order", Package: "a", QualifiedName: "a.Order", Role: model.RoleEntity}},
			Relationships: []model.Relationship{
				{From: "Order", To: "Money", Kind: model.Uses},
				{From: "Order", To: "External", Kind: model.Calls, Method: "x"},
				{From: "Order", To: "External", Kind: model.Calls, Method: "y"},
			},
		},
		nil,
		{
			Path:    "b/Order.java",
			Classes: []model.ClassEntity{{Name: "Order", Package: "b", Role: model.RoleOther}},
		},
		{
			Path:    "a/Money.java",
			Classes: []model.ClassEntity{{Name: "Money", Package: "a", QualifiedName: "a.Money"}},
		},
	}

	graph := processor.Reduce(fragments)
	require.Len(t, graph.Classes, 3)
	assert.Equal(t, "b.Order", graph.Classes[1].QualifiedName, "缺失的限定名由包名补齐")
	assert.Len(t, graph.Relationships, 3, "关系原样保留，包括悬空引用")
	assert.Equal(t, []string{"a", "b"}, graph.Structure.Packages)

	require.NotNil(t, graph.Diagnostics)
	assert.Equal(t, []model.DanglingReference{{From: "Order", To: "External", Kind: model.Calls}}, graph.Diagnostics.DanglingReferences)
	assert.Equal(t, []model.NameCollision{{Name: "Order", QualifiedNames: []string{"a.Order", "b.Order"}}}, graph.Diagnostics.NameCollisions)
	assert.Len(t, graph.UniqueClasses(), 2)
}

func TestReduce_Empty(t *testing.T) {
	graph := processor.Reduce(nil)
	assert.Empty(t, graph.Classes)
	assert.Empty(t, graph.Patterns)
	assert.NotNil(t, graph.Relationships)
}
