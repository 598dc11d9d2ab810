package model

// Structure 记录项目的包与源文件清单
type Structure struct {
	Packages    []string `json:"packages"`
	SourceFiles []string `json:"sourceFiles"`
}

// DanglingReference 是端点从未作为类出现的关系 (通常是外部/库类型)
type DanglingReference struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Kind RelationKind `json:"kind"`
}

// NameCollision 记录在不同包中重名的类
type NameCollision struct {
	Name           string   `json:"name"`
	QualifiedNames []string `json:"qualifiedNames"`
}

// Diagnostics 是构图阶段产生的诊断信息，不影响图本身
type Diagnostics struct {
	DanglingReferences []DanglingReference `json:"danglingReferences,omitempty"`
	NameCollisions     []NameCollision     `json:"nameCollisions,omitempty"`
	SkippedFiles       []string            `json:"skippedFiles,omitempty"`
}

// AnalysisGraph 是核心产出的唯一制品，构建后不可变，所有图/指标都是它的纯函数
type AnalysisGraph struct {
	Classes       []ClassEntity  `json:"classes"`
	Relationships []Relationship `json:"relationships"`
	Patterns      []Pattern      `json:"patterns"`
	Entities      []EntityModel  `json:"entities"`
	Structure     Structure      `json:"structure"`
	Diagnostics   *Diagnostics   `json:"diagnostics,omitempty"`
}

// Fragment 是单个文件的不可变提取结果，由 reducer 合并成 AnalysisGraph
type Fragment struct {
	Path          string
	Classes       []ClassEntity
	Relationships []Relationship
	Entities      []EntityModel
}

// ClassNames 返回图中所有类名的集合
func (g *AnalysisGraph) ClassNames() map[string]bool {
	names := make(map[string]bool, len(g.Classes))
	for _, c := range g.Classes {
		names[c.Name] = true
	}
	return names
}

// FindClass 按短名称查找类，重名时返回第一个
func (g *AnalysisGraph) FindClass(name string) (*ClassEntity, bool) {
	for i := range g.Classes {
		if g.Classes[i].Name == name {
			return &g.Classes[i], true
		}
	}
	return nil, false
}

// UniqueClasses 按短名称去重 (先出现者优先)，用于渲染
func (g *AnalysisGraph) UniqueClasses() []ClassEntity {
	seen := make(map[string]bool, len(g.Classes))
	out := make([]ClassEntity, 0, len(g.Classes))
	for _, c := range g.Classes {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}

// ClassesByRole 返回指定角色的类 (保持原始顺序)
func (g *AnalysisGraph) ClassesByRole(role Role) []ClassEntity {
	var out []ClassEntity
	for _, c := range g.UniqueClasses() {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}
