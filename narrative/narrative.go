// Package narrative 为分析结果生成文字说明。
// 外部叙述服务只接收只读摘要；它不可用或出错时退化为基于规则的说明。
package narrative

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/CodMac/go-archview/model"
)

// Summary 是交给叙述服务的只读摘要 (计数、名称、注解列表)
type Summary struct {
	TotalClasses  int                     `json:"totalClasses"`
	TotalMethods  int                     `json:"totalMethods"`
	Packages      []string                `json:"packages"`
	ClassesByRole map[model.Role][]string `json:"classesByRole"`
	Patterns      []string                `json:"patterns"`
	Entities      []string                `json:"entities"`
	Annotations   []string                `json:"annotations"`
	Relationships int                     `json:"relationships"`
}

// Narrator 根据摘要生成文字
type Narrator interface {
	Narrate(ctx context.Context, s Summary) (string, error)
}

// Summarize 从图中提取摘要，不修改图
func Summarize(graph *model.AnalysisGraph) Summary {
	s := Summary{
		TotalClasses:  len(graph.Classes),
		Packages:      append([]string{}, graph.Structure.Packages...),
		ClassesByRole: make(map[model.Role][]string),
		Patterns:      make([]string, 0, len(graph.Patterns)),
		Entities:      make([]string, 0, len(graph.Entities)),
		Relationships: len(graph.Relationships),
	}

	annotations := make(map[string]bool)
	for _, c := range graph.UniqueClasses() {
		s.TotalMethods += len(c.Methods)
		s.ClassesByRole[c.Role] = append(s.ClassesByRole[c.Role], c.Name)
		for _, a := range c.Annotations {
			annotations[a] = true
		}
	}
	for _, p := range graph.Patterns {
		s.Patterns = append(s.Patterns, p.Name)
	}
	for _, e := range graph.Entities {
		s.Entities = append(s.Entities, e.Name)
	}

	s.Annotations = make([]string, 0, len(annotations))
	for a := range annotations {
		s.Annotations = append(s.Annotations, a)
	}
	sort.Strings(s.Annotations)
	return s
}

// RuleBased 是不依赖外部服务的叙述实现
type RuleBased struct{}

func (RuleBased) Narrate(_ context.Context, s Summary) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The project contains %d classes with %d methods across %d packages.", s.TotalClasses, s.TotalMethods, len(s.Packages))

	for _, role := range model.Roles() {
		names := s.ClassesByRole[role]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n- %s (%d): %s", role, len(names), strings.Join(names, ", "))
	}

	if len(s.Patterns) > 0 {
		fmt.Fprintf(&sb, "\nDetected patterns: %s.", strings.Join(s.Patterns, ", "))
	} else {
		sb.WriteString("\nNo architectural patterns were detected.")
	}
	if len(s.Entities) > 0 {
		fmt.Fprintf(&sb, "\nPersistent entities: %s.", strings.Join(s.Entities, ", "))
	}
	fmt.Fprintf(&sb, "\n%d relationships were found between classes.", s.Relationships)
	return sb.String(), nil
}

type fallback struct {
	primary Narrator
	logger  *zap.Logger
}

// WithFallback 包装一个可选的外部 Narrator：primary 为 nil、出错或返回空文本时使用 RuleBased
func WithFallback(primary Narrator, logger *zap.Logger) Narrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fallback{primary: primary, logger: logger}
}

func (f *fallback) Narrate(ctx context.Context, s Summary) (string, error) {
	if f.primary != nil {
		text, err := f.primary.Narrate(ctx, s)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		f.logger.Warn("narrator unavailable, using rule-based summary", zap.Error(err))
	}
	return RuleBased{}.Narrate(ctx, s)
}
