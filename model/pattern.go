package model

// PatternType 是模式的分类标签
type PatternType string

const (
	PatternArchitectural PatternType = "architectural"
	PatternDataAccess    PatternType = "data-access"
	PatternDesign        PatternType = "design"
)

// Pattern 是跨多个类识别出的结构模式。Classes 为检测时存在的类名子集。
type Pattern struct {
	Name        string      `json:"name"`
	Type        PatternType `json:"type"`
	Classes     []string    `json:"classes"`
	Description string      `json:"description"`
}
