// Package extractor 从源码文本中推导类之间的有向关系 (calls / extends / implements)。
package extractor

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/noisefilter"
)

// callSiteRe 匹配 Identifier.method( 调用点
var callSiteRe = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\s*\.\s*([A-Za-z_$][\w$]*)\s*\(`)

// Builder 负责为单个类构建关系，只依赖类本身与其源码文本，没有共享的可变状态
type Builder struct {
	noise noisefilter.NoiseFilter
}

// NewBuilder 创建 Builder；noise 为 nil 时不过滤任何标识符
func NewBuilder(noise noisefilter.NoiseFilter) *Builder {
	if noise == nil {
		noise = &noisefilter.DefaultNoiseFilter{}
	}
	return &Builder{noise: noise}
}

// BuildRelationships 返回 class 的全部出边。
// 调用目标按类名记录，不校验其是否存在于图中：悬空引用保留在图里，在出图时过滤。
func (b *Builder) BuildRelationships(class *model.ClassEntity, rawText string) []model.Relationship {
	relations := make([]model.Relationship, 0)

	// 1. CALLS
	clean := stripCommentsAndStrings(rawText)
	for _, m := range callSiteRe.FindAllStringSubmatch(clean, -1) {
		target, method := m[1], m[2]
		if !isTypeReference(target) || b.noise.IsNoise(target) {
			continue
		}
		relations = append(relations, model.Relationship{
			From:   class.Name,
			To:     target,
			Kind:   model.Calls,
			Method: method,
		})
	}

	// 2. EXTENDS
	if class.Extends != "" {
		relations = append(relations, model.Relationship{From: class.Name, To: class.Extends, Kind: model.Extends})
	}

	// 3. IMPLEMENTS
	for _, iface := range class.Implements {
		relations = append(relations, model.Relationship{From: class.Name, To: iface, Kind: model.Implements})
	}

	return relations
}

// isTypeReference 首字母大写才视为类型引用，小写开头的是变量/字段
func isTypeReference(identifier string) bool {
	r, _ := utf8.DecodeRuneInString(identifier)
	return unicode.IsUpper(r)
}
