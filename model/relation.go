package model

// --- 关系类型 (Relationship Kinds) ---

// RelationKind 是表示类间关系的字符串常量
type RelationKind string

const (
	Calls      RelationKind = "calls"      // Calls: Source 类中出现了 Target.method( 调用点
	Extends    RelationKind = "extends"    // Extends: Source 继承 Target
	Implements RelationKind = "implements" // Implements: Source 实现 Target 接口
	Uses       RelationKind = "uses"       // Uses: 通用引用，仅用于图样式映射
)

// Relationship 是类之间的一条有向边。
// From/To 都是类的短名称，To 可能从未作为类出现 (dangling)；重复边保留，数量即调用次数。
type Relationship struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Kind   RelationKind `json:"kind"`
	Method string       `json:"method,omitempty"`
}

// IsStructural 判断是否为声明层面的关系 (继承/实现)
func (r Relationship) IsStructural() bool {
	return r.Kind == Extends || r.Kind == Implements
}
