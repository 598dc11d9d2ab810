// Package classify 为提取出的类分配语义角色。
//
// 规则按优先级顺序匹配，第一个命中的规则生效：
//
//	controller    注解含 controller (含 rest-controller)，或类名含 controller
//	service       注解/类名含 service 或 manager
//	repository    注解/类名含 repository 或 dao，或声明继承 Spring Data 仓库接口
//	entity        注解/类名含 entity、document 或 model
//	component     注解含 component 或 bean
//	configuration 类名含 config
//	other         其余
//
// Classify 是纯函数：相同输入永远得到相同角色，且每个类恰好得到一个角色。
package classify

import (
	"regexp"
	"strings"

	"github.com/CodMac/go-archview/model"
)

type rule struct {
	role            model.Role
	annotationWords []string
	nameWords       []string
	text            *regexp.Regexp
}

// Spring Data 的仓库基接口，出现在声明的 extends 子句中
var springDataRe = regexp.MustCompile(`\bextends\s+(?:[\w.]+\.)?(?:Jpa|Crud|PagingAndSorting|ListCrud|ListPagingAndSorting|Mongo|Reactive(?:Crud|Mongo|Sorting)?|R2dbc|Elasticsearch)Repository\s*<`)

var rules = []rule{
	{role: model.RoleController, annotationWords: []string{"controller"}, nameWords: []string{"controller"}},
	{role: model.RoleService, annotationWords: []string{"service", "manager"}, nameWords: []string{"service", "manager"}},
	{role: model.RoleRepository, annotationWords: []string{"repository", "dao"}, nameWords: []string{"repository", "dao"}, text: springDataRe},
	{role: model.RoleEntity, annotationWords: []string{"entity", "document", "model"}, nameWords: []string{"entity", "document", "model"}},
	{role: model.RoleComponent, annotationWords: []string{"component", "bean"}},
	{role: model.RoleConfiguration, nameWords: []string{"config"}},
}

// Classify 根据类名、注解和源码文本返回角色
func Classify(name string, annotations []string, rawText string) model.Role {
	lowerName := strings.ToLower(name)
	lowerAnnotations := make([]string, len(annotations))
	for i, a := range annotations {
		lowerAnnotations[i] = strings.ToLower(a)
	}

	for _, r := range rules {
		if anyContains(lowerAnnotations, r.annotationWords) || containsAny(lowerName, r.nameWords) {
			return r.role
		}
		if r.text != nil && r.text.MatchString(rawText) {
			return r.role
		}
	}
	return model.RoleOther
}

// ClassifyEntity 是 Classify 作用于 ClassEntity 的便捷形式
func ClassifyEntity(c *model.ClassEntity, rawText string) model.Role {
	return Classify(c.Name, c.Annotations, rawText)
}

func anyContains(values, words []string) bool {
	for _, v := range values {
		if containsAny(v, words) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
