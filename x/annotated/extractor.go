package annotated

import (
	"regexp"
	"strings"

	"github.com/CodMac/go-archview/model"
)

// DefaultPackage 是未声明 package 时使用的包名
const DefaultPackage = "default"

var (
	packageRe   = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	declRe      = regexp.MustCompile(`\b(class|interface|enum)\s+([A-Za-z_$][\w$]*)`)
	extendsRe   = regexp.MustCompile(`(?s)\bextends\s+(.+?)(?:\bimplements\b|$)`)
	implementRe = regexp.MustCompile(`(?s)\bimplements\s+(.+)$`)
)

// Extractor 是注解驱动类源码的启发式词法提取器。
// 它不是编译器前端：每个文件只取第一个 class/interface/enum 声明。
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Parse 实现了 frontend.Frontend 接口
func (e *Extractor) Parse(path string, source []byte) ([]*model.ClassEntity, error) {
	class, ok := Extract(string(source), path)
	if !ok {
		return []*model.ClassEntity{}, nil
	}
	return []*model.ClassEntity{class}, nil
}

// Extract 从单个文件中提取第一个类声明，没有声明时返回 false。Role 留空，由分类引擎填充。
func Extract(source, path string) (*model.ClassEntity, bool) {
	clean := sanitize(source)

	decl := declRe.FindStringSubmatchIndex(clean)
	if decl == nil {
		return nil, false
	}
	kind := model.ClassKind(clean[decl[2]:decl[3]])
	name := clean[decl[4]:decl[5]]

	pkg := DefaultPackage
	if m := packageRe.FindStringSubmatch(clean); m != nil {
		pkg = m[1]
	}

	class := &model.ClassEntity{
		Name:          name,
		QualifiedName: model.BuildQualifiedName(pkg, name),
		Package:       pkg,
		Kind:          kind,
		Annotations:   collectAnnotations(clean),
		Methods:       make([]model.Method, 0),
		Fields:        make([]model.Field, 0),
		Implements:    make([]string, 0),
	}

	open := strings.IndexByte(clean[decl[1]:], '{')
	if open < 0 {
		class.Extends, class.Implements = parseHeritage(kind, clean[decl[1]:])
		class.Location = &model.Location{FilePath: path, StartLine: lineOf(clean, decl[0]), EndLine: lineOf(clean, len(clean)), EndByte: len(source)}
		return class, true
	}
	open += decl[1]
	class.Extends, class.Implements = parseHeritage(kind, clean[decl[1]:open])

	closeAt := matchClose(clean, open)
	if closeAt < 0 {
		closeAt = len(clean)
	}
	for _, m := range scanMembers(clean[open+1 : closeAt]) {
		if method, ok := parseMethod(m); ok {
			class.Methods = append(class.Methods, method)
			continue
		}
		class.Fields = append(class.Fields, parseFields(m)...)
	}

	// 单类文件：整个文件都归属于该类，关系扫描基于全文
	class.Location = &model.Location{
		FilePath:  path,
		StartLine: lineOf(clean, decl[0]),
		EndLine:   lineOf(clean, closeAt),
		EndByte:   len(source),
	}
	return class, true
}

// parseHeritage 从声明行中解析 extends / implements 子句。
// 接口的 extends 可以有多个父接口：第一个记为 Extends，其余记入 Implements。
func parseHeritage(kind model.ClassKind, tail string) (string, []string) {
	tail = strings.TrimSpace(tail)
	if strings.HasPrefix(tail, "<") {
		if closeAt := matchClose(tail, 0); closeAt >= 0 {
			tail = tail[closeAt+1:]
		}
	}

	var extends string
	implements := make([]string, 0)
	if m := extendsRe.FindStringSubmatch(tail); m != nil {
		supers := typeList(m[1])
		if len(supers) > 0 {
			extends = supers[0]
			if kind == model.KindInterface {
				implements = append(implements, supers[1:]...)
			}
		}
	}
	if m := implementRe.FindStringSubmatch(tail); m != nil {
		implements = append(implements, typeList(m[1])...)
	}
	return extends, implements
}

func typeList(s string) []string {
	var out []string
	for _, t := range splitTopLevel(s, ',') {
		t = stripGenerics(t)
		if t == "" {
			continue
		}
		if dot := strings.LastIndexByte(t, '.'); dot >= 0 {
			t = t[dot+1:]
		}
		out = append(out, t)
	}
	return out
}
