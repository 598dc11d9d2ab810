package model

// --- 类角色 (Class Roles) ---

// Role 是类的语义分类
type Role string

const (
	RoleController    Role = "controller"
	RoleService       Role = "service"
	RoleRepository    Role = "repository"
	RoleEntity        Role = "entity"
	RoleComponent     Role = "component"
	RoleConfiguration Role = "configuration"
	RoleOther         Role = "other"
)

// Roles 按分类优先级顺序返回全部角色
func Roles() []Role {
	return []Role{RoleController, RoleService, RoleRepository, RoleEntity, RoleComponent, RoleConfiguration, RoleOther}
}

// --- 声明类型 (Declaration Kinds) ---

// ClassKind 对应源码中的声明关键字
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindEnum      ClassKind = "enum"
	KindRecord    ClassKind = "record"
)

// SourceUnit 是一次分析的输入单元，提取结束后不再保留
type SourceUnit struct {
	Path string `json:"relativePath"`
	Text string `json:"text"`
}

// Location 描述了类声明在源码中的位置
type Location struct {
	FilePath  string `json:"filePath"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	StartByte int    `json:"-"`
	EndByte   int    `json:"-"`
}

// Method 描述类中的一个方法签名
type Method struct {
	Name        string   `json:"name"`
	Annotations []string `json:"annotations"`
	Parameters  []string `json:"parameters"`
	ReturnType  string   `json:"returnType"`
}

// Field 描述类中的一个字段
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Annotations []string `json:"annotations"`
}

// ClassEntity 是结构模型中的一个类/接口/枚举。
// Name 是图中的身份键；QualifiedName 仅用于诊断同名冲突。
type ClassEntity struct {
	Name          string    `json:"name"`
	QualifiedName string    `json:"qualifiedName"`
	Package       string    `json:"package"`
	Kind          ClassKind `json:"kind"`
	Role          Role      `json:"role"`
	Annotations   []string  `json:"annotations"`
	Methods       []Method  `json:"methods"`
	Fields        []Field   `json:"fields"`
	Extends       string    `json:"extends,omitempty"`
	Implements    []string  `json:"implements"`
	Location      *Location `json:"location,omitempty"`
}

// HasAnnotation 判断类本身是否携带指定注解 (大小写不敏感)
func (c *ClassEntity) HasAnnotation(names ...string) bool {
	return containsFold(c.Annotations, names...)
}

// HasAnnotation 判断方法是否携带指定注解 (大小写不敏感)
func (m *Method) HasAnnotation(names ...string) bool {
	return containsFold(m.Annotations, names...)
}

// HasAnnotation 判断字段是否携带指定注解 (大小写不敏感)
func (f *Field) HasAnnotation(names ...string) bool {
	return containsFold(f.Annotations, names...)
}

// BuildQualifiedName 根据包名和类名构建 QN
func BuildQualifiedName(pkg, name string) string {
	if pkg == "" || pkg == "." {
		return name
	}
	return pkg + "." + name
}
