package processor

import (
	"sort"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/pattern"
)

// Reduce 按输入顺序合并各文件的 Fragment (nil 会被忽略)，然后在完整集合上检测模式并生成诊断信息
func Reduce(fragments []*model.Fragment) *model.AnalysisGraph {
	graph := &model.AnalysisGraph{
		Classes:       make([]model.ClassEntity, 0),
		Relationships: make([]model.Relationship, 0),
		Entities:      make([]model.EntityModel, 0),
	}

	packages := make(map[string]bool)
	files := make(map[string]bool)
	for _, frag := range fragments {
		if frag == nil {
			continue
		}
		for _, c := range frag.Classes {
			if c.QualifiedName == "" {
				c.QualifiedName = model.BuildQualifiedName(c.Package, c.Name)
			}
			graph.Classes = append(graph.Classes, c)
			packages[c.Package] = true
			files[frag.Path] = true
		}
		graph.Relationships = append(graph.Relationships, frag.Relationships...)
		graph.Entities = append(graph.Entities, frag.Entities...)
	}

	graph.Structure = model.Structure{Packages: sortedKeys(packages), SourceFiles: sortedKeys(files)}
	graph.Patterns = pattern.Detect(graph.Classes, graph.Relationships)
	graph.Diagnostics = &model.Diagnostics{
		DanglingReferences: danglingReferences(graph),
		NameCollisions:     nameCollisions(graph.Classes),
	}
	return graph
}

// danglingReferences 返回目标不是已知类名的关系 (去重，保持出现顺序)
func danglingReferences(graph *model.AnalysisGraph) []model.DanglingReference {
	names := graph.ClassNames()
	seen := make(map[model.DanglingReference]bool)
	var out []model.DanglingReference
	for _, r := range graph.Relationships {
		if names[r.From] && names[r.To] {
			continue
		}
		d := model.DanglingReference{From: r.From, To: r.To, Kind: r.Kind}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// nameCollisions 找出短名称相同但限定名不同的类
func nameCollisions(classes []model.ClassEntity) []model.NameCollision {
	var order []string
	qns := make(map[string][]string)
	for _, c := range classes {
		if _, ok := qns[c.Name]; !ok {
			order = append(order, c.Name)
		}
		if !contains(qns[c.Name], c.QualifiedName) {
			qns[c.Name] = append(qns[c.Name], c.QualifiedName)
		}
	}

	var out []model.NameCollision
	for _, name := range order {
		if len(qns[name]) > 1 {
			out = append(out, model.NameCollision{Name: name, QualifiedNames: qns[name]})
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
