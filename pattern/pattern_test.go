package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/pattern"
)

func class(name string, role model.Role) model.ClassEntity {
	return model.ClassEntity{Name: name, Role: role}
}

func find(patterns []model.Pattern, name string) (model.Pattern, bool) {
	for _, p := range patterns {
		if p.Name == name {
			return p, true
		}
	}
	return model.Pattern{}, false
}

func TestDetect_Layered(t *testing.T) {
	t.Run("Controllers Without Services", func(t *testing.T) {
		patterns := pattern.Detect([]model.ClassEntity{
			class("AController", model.RoleController),
			class("BController", model.RoleController),
		}, nil)
		_, ok := find(patterns, pattern.LayeredName)
		assert.False(t, ok)
	})

	t.Run("Controller And Service", func(t *testing.T) {
		patterns := pattern.Detect([]model.ClassEntity{
			class("OrderController", model.RoleController),
			class("Order", model.RoleEntity),
			class("OrderService", model.RoleService),
		}, nil)
		p, ok := find(patterns, pattern.LayeredName)
		require.True(t, ok)
		assert.Equal(t, []string{"OrderController", "OrderService"}, p.Classes)
		assert.Equal(t, model.PatternArchitectural, p.Type)
		assert.NotEmpty(t, p.Description)
	})
}

func TestDetect_Repository(t *testing.T) {
	patterns := pattern.Detect([]model.ClassEntity{
		class("OrderRepository", model.RoleRepository),
		class("CustomerDao", model.RoleRepository),
	}, nil)
	require.Len(t, patterns, 1)
	assert.Equal(t, pattern.RepositoryName, patterns[0].Name)
	assert.Equal(t, model.PatternDataAccess, patterns[0].Type)
	assert.Equal(t, []string{"OrderRepository", "CustomerDao"}, patterns[0].Classes)
}

func TestDetect_Injection(t *testing.T) {
	byField := class("OrderController", model.RoleController)
	byField.Fields = []model.Field{{Name: "svc", Type: "OrderService", Annotations: []string{"Autowired"}}}
	byClass := class("Clock", model.RoleComponent)
	byClass.Annotations = []string{"Inject"}
	plain := class("Money", model.RoleOther)
	plain.Fields = []model.Field{{Name: "amount", Type: "long", Annotations: []string{"Column"}}}

	patterns := pattern.Detect([]model.ClassEntity{byField, byClass, plain}, nil)
	p, ok := find(patterns, pattern.InjectionName)
	require.True(t, ok)
	assert.Equal(t, model.PatternDesign, p.Type)
	assert.Equal(t, []string{"OrderController", "Clock"}, p.Classes)
}

func TestDetect_Order(t *testing.T) {
	svc := class("OrderService", model.RoleService)
	svc.Annotations = []string{"Resource"}
	patterns := pattern.Detect([]model.ClassEntity{
		class("OrderController", model.RoleController),
		svc,
		class("OrderRepository", model.RoleRepository),
	}, nil)

	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{pattern.LayeredName, pattern.RepositoryName, pattern.InjectionName}, names)
}

func TestDetect_Empty(t *testing.T) {
	assert.Empty(t, pattern.Detect(nil, nil))
}
