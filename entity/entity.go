// Package entity 为持久化实体类构建 EntityModel (表名、列名、关联关系)。
package entity

import (
	"regexp"
	"strings"

	"github.com/CodMac/go-archview/model"
)

var (
	persistenceMarkers  = []string{"Entity", "Document", "Table"}
	relationAnnotations = map[string]bool{"OneToMany": true, "ManyToOne": true, "OneToOne": true, "ManyToMany": true}

	annotationRe = regexp.MustCompile(`@([A-Za-z_$][\w$]*)\s*(?:\(((?:[^()]|\([^()]*\))*)\))?`)
	bareValueRe  = regexp.MustCompile(`^\s*"([^"]*)"\s*$`)
	classRefRe   = regexp.MustCompile(`\btargetEntity\s*=\s*([\w.]+)\.class`)
	genericArgRe = regexp.MustCompile(`<\s*(?:[\w.]+\s*,\s*)?([\w.]+)\s*>`)
)

// Extract 为 role=entity 且带持久化注解的类生成 EntityModel
func Extract(class *model.ClassEntity, rawText string) (*model.EntityModel, bool) {
	if class.Role != model.RoleEntity || !class.HasAnnotation(persistenceMarkers...) {
		return nil, false
	}

	em := &model.EntityModel{
		Name:   class.Name,
		Fields: make([]model.EntityField, 0, len(class.Fields)),
	}

	for _, a := range annotationsIn(rawText) {
		switch a.name {
		case "Table":
			if v := attr(a.args, "name", false); v != "" {
				em.TableName = v
			}
		case "Document":
			if v := attr(a.args, "collection", true); v != "" && em.TableName == "" {
				em.TableName = v
			}
		}
		if em.TableName != "" {
			break
		}
	}

	for _, f := range class.Fields {
		if f.HasAnnotation("Transient") {
			continue
		}
		ef := model.EntityField{Name: f.Name, Type: f.Type}
		for _, a := range annotationsIn(fieldPreamble(rawText, f)) {
			switch {
			case a.name == "Column" || a.name == "JoinColumn" || a.name == "Field":
				if v := attr(a.args, "name", a.name == "Field"); v != "" {
					ef.ColumnName = v
				}
			case relationAnnotations[a.name]:
				ef.Relationship = a.name
				ef.TargetEntity = targetEntity(a.args, f.Type)
			}
		}
		em.Fields = append(em.Fields, ef)
	}
	return em, true
}

type annotation struct {
	name string
	args string
}

func annotationsIn(text string) []annotation {
	var out []annotation
	for _, m := range annotationRe.FindAllStringSubmatch(text, -1) {
		out = append(out, annotation{name: m[1], args: m[2]})
	}
	return out
}

// attr 读取注解参数 key="value"；allowBare 时也接受 @Ann("value") 形式
func attr(args, key string, allowBare bool) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\s*=\s*"([^"]*)"`)
	if m := re.FindStringSubmatch(args); m != nil {
		return m[1]
	}
	if allowBare {
		if m := bareValueRe.FindStringSubmatch(args); m != nil {
			return m[1]
		}
		if m := regexp.MustCompile(`\bvalue\s*=\s*"([^"]*)"`).FindStringSubmatch(args); m != nil {
			return m[1]
		}
	}
	return ""
}

// targetEntity 优先使用 targetEntity = X.class，否则取集合泛型实参或字段类型本身
func targetEntity(args, fieldType string) string {
	if m := classRefRe.FindStringSubmatch(args); m != nil {
		return lastSegment(m[1])
	}
	if m := genericArgRe.FindStringSubmatch(fieldType); m != nil {
		return lastSegment(m[1])
	}
	if i := strings.IndexByte(fieldType, '<'); i >= 0 {
		fieldType = fieldType[:i]
	}
	return lastSegment(strings.TrimSuffix(fieldType, "[]"))
}

func lastSegment(s string) string {
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}

// fieldPreamble 返回字段声明之前、上一个成员边界之后的文本 (注解所在区域)
func fieldPreamble(rawText string, f model.Field) string {
	base := f.Type
	if i := strings.IndexByte(base, '<'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, "[]")
	declRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(base) + `(?:\s*<[^;=]*?>)?(?:\[\])*\s+` + regexp.QuoteMeta(f.Name) + `\s*[;=,]`)
	loc := declRe.FindStringIndex(rawText)
	if loc == nil {
		return ""
	}

	depth := 0
	for i := loc[0] - 1; i >= 0; i-- {
		switch rawText[i] {
		case ')':
			depth++
		case '(':
			depth--
		case ';', '{', '}':
			if depth == 0 {
				return rawText[i+1 : loc[0]]
			}
		}
	}
	return rawText[:loc[0]]
}
