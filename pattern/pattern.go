// Package pattern 在合并后的类/关系集合上识别结构模式。各启发式相互独立，可同时命中。
package pattern

import (
	"github.com/CodMac/go-archview/model"
)

const (
	LayeredName    = "Layered Architecture (MVC)"
	RepositoryName = "Repository Pattern"
	InjectionName  = "Dependency Injection"

	layeredDescription    = "Controllers delegate request handling to a separate service layer, separating web concerns from business logic."
	repositoryDescription = "Data access is encapsulated behind repository classes that mediate between the domain and the persistence store."
	injectionDescription  = "Collaborators are supplied by the container through injection annotations instead of being constructed by the classes that use them."
)

// injectionMarkers 是依赖注入标记注解
var injectionMarkers = []string{"Autowired", "Inject", "Resource"}

// Detect 返回检测到的模式，顺序固定为 分层/MVC、仓库、依赖注入。
// relationships 目前不参与判定。
func Detect(classes []model.ClassEntity, relationships []model.Relationship) []model.Pattern {
	patterns := make([]model.Pattern, 0, 3)
	if p, ok := detectLayered(classes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectRepository(classes); ok {
		patterns = append(patterns, p)
	}
	if p, ok := detectInjection(classes); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

// detectLayered 同时存在 controller 与 service 时成立，参与者为两者的并集
func detectLayered(classes []model.ClassEntity) (model.Pattern, bool) {
	var controllers, services int
	participants := make([]string, 0)
	for _, c := range classes {
		switch c.Role {
		case model.RoleController:
			controllers++
		case model.RoleService:
			services++
		default:
			continue
		}
		participants = appendUnique(participants, c.Name)
	}
	if controllers == 0 || services == 0 {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Name:        LayeredName,
		Type:        model.PatternArchitectural,
		Classes:     participants,
		Description: layeredDescription,
	}, true
}

func detectRepository(classes []model.ClassEntity) (model.Pattern, bool) {
	participants := make([]string, 0)
	for _, c := range classes {
		if c.Role == model.RoleRepository {
			participants = appendUnique(participants, c.Name)
		}
	}
	if len(participants) == 0 {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Name:        RepositoryName,
		Type:        model.PatternDataAccess,
		Classes:     participants,
		Description: repositoryDescription,
	}, true
}

// detectInjection 类本身或其任一字段携带注入标记注解时成立
func detectInjection(classes []model.ClassEntity) (model.Pattern, bool) {
	participants := make([]string, 0)
	for i := range classes {
		if usesInjection(&classes[i]) {
			participants = appendUnique(participants, classes[i].Name)
		}
	}
	if len(participants) == 0 {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Name:        InjectionName,
		Type:        model.PatternDesign,
		Classes:     participants,
		Description: injectionDescription,
	}, true
}

func usesInjection(c *model.ClassEntity) bool {
	if c.HasAnnotation(injectionMarkers...) {
		return true
	}
	for i := range c.Fields {
		if c.Fields[i].HasAnnotation(injectionMarkers...) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, name string) []string {
	for _, n := range list {
		if n == name {
			return list
		}
	}
	return append(list, name)
}
