package narrative_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/narrative"
)

func sampleGraph() *model.AnalysisGraph {
	return &model.AnalysisGraph{
		Classes: []model.ClassEntity{
			{Name: "OrderController", Role: model.RoleController, Annotations: []string{"RestController", "Autowired"}, Methods: []model.Method{{Name: "list"}}},
			{Name: "OrderService", Role: model.RoleService, Annotations: []string{"Service"}},
			{Name: "Order", Role: model.RoleEntity, Annotations: []string{"Entity"}},
		},
		Relationships: []model.Relationship{{From: "OrderController", To: "OrderService", Kind: model.Calls}},
		Patterns:      []model.Pattern{{Name: "Layered Architecture (MVC)"}},
		Entities:      []model.EntityModel{{Name: "Order", TableName: "orders"}},
		Structure:     model.Structure{Packages: []string{"com.shop"}},
	}
}

type narratorFunc func(ctx context.Context, s narrative.Summary) (string, error)

func (f narratorFunc) Narrate(ctx context.Context, s narrative.Summary) (string, error) {
	return f(ctx, s)
}

func TestSummarize(t *testing.T) {
	s := narrative.Summarize(sampleGraph())
	assert.Equal(t, 3, s.TotalClasses)
	assert.Equal(t, 1, s.TotalMethods)
	assert.Equal(t, []string{"OrderController"}, s.ClassesByRole[model.RoleController])
	assert.Equal(t, []string{"Autowired", "Entity", "RestController", "Service"}, s.Annotations)
	assert.Equal(t, []string{"Layered Architecture (MVC)"}, s.Patterns)
	assert.Equal(t, []string{"Order"}, s.Entities)
	assert.Equal(t, 1, s.Relationships)
}

func TestRuleBased(t *testing.T) {
	text, err := narrative.RuleBased{}.Narrate(context.Background(), narrative.Summarize(sampleGraph()))
	require.NoError(t, err)
	assert.Contains(t, text, "3 classes with 1 methods across 1 packages")
	assert.Contains(t, text, "- controller (1): OrderController")
	assert.Contains(t, text, "Detected patterns: Layered Architecture (MVC).")
	assert.Contains(t, text, "Persistent entities: Order.")

	empty, err := narrative.RuleBased{}.Narrate(context.Background(), narrative.Summary{})
	require.NoError(t, err)
	assert.Contains(t, empty, "No architectural patterns were detected.")
}

func TestWithFallback(t *testing.T) {
	summary := narrative.Summarize(sampleGraph())
	ctx := context.Background()

	t.Run("Primary Succeeds", func(t *testing.T) {
		primary := narratorFunc(func(context.Context, narrative.Summary) (string, error) { return "external prose", nil })
		text, err := narrative.WithFallback(primary, nil).Narrate(ctx, summary)
		require.NoError(t, err)
		assert.Equal(t, "external prose", text)
	})

	t.Run("Primary Fails", func(t *testing.T) {
		primary := narratorFunc(func(context.Context, narrative.Summary) (string, error) { return "", errors.New("service unavailable") })
		text, err := narrative.WithFallback(primary, nil).Narrate(ctx, summary)
		require.NoError(t, err)
		assert.Contains(t, text, "3 classes")
	})

	t.Run("No Primary", func(t *testing.T) {
		text, err := narrative.WithFallback(nil, nil).Narrate(ctx, summary)
		require.NoError(t, err)
		assert.Contains(t, text, "Detected patterns")
	})
}
