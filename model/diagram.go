package model

// Position 是节点左上角坐标
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size 是节点尺寸
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClassBlock 是 UML 类节点的结构化文本内容
type ClassBlock struct {
	Stereotype string   `json:"stereotype"`
	Header     string   `json:"header"`
	Fields     []string `json:"fields"`
	Methods    []string `json:"methods"`
}

// NodeConfig 是渲染无关的节点描述
type NodeConfig struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Label    string      `json:"label"`
	Position Position    `json:"position"`
	Size     Size        `json:"size"`
	Role     Role        `json:"role,omitempty"`
	Content  *ClassBlock `json:"content,omitempty"`
	Members  []string    `json:"members,omitempty"`
}

// EdgeStyle 是边的线型
type EdgeStyle struct {
	Line            string  `json:"line"` // solid / dashed / thin / dotted / plain
	StrokeWidth     float64 `json:"strokeWidth"`
	StrokeDasharray string  `json:"strokeDasharray,omitempty"`
}

// EdgeConfig 是渲染无关的边描述
type EdgeConfig struct {
	ID     string     `json:"id"`
	Source string     `json:"source"`
	Target string     `json:"target"`
	Label  string     `json:"label,omitempty"`
	Router string     `json:"router"`
	Style  *EdgeStyle `json:"style,omitempty"`
}

// DiagramSpec 是一次图请求的派生结果，不会回写 AnalysisGraph
type DiagramSpec struct {
	Nodes []NodeConfig `json:"nodes"`
	Edges []EdgeConfig `json:"edges"`
}
