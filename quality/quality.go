// Package quality 基于 AnalysisGraph 中已有的计数与少量文本规则给出质量报告，不修改图本身。
package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/CodMac/go-archview/model"
)

// 规则名
const (
	RuleOversizedClass  = "oversized-class"
	RuleMissingSecurity = "missing-security"
	RuleDuplicateName   = "duplicate-name"
)

// Severity 是问题的严重程度
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// securityAnnotations 是端点上被视为访问控制的注解
var securityAnnotations = []string{"PreAuthorize", "Secured", "RolesAllowed", "PermitAll"}

// Options 控制各条规则的阈值
type Options struct {
	MaxMethods        int
	MaxFields         int
	DuplicateDistance int
	MinNameLength     int
}

// DefaultOptions 返回默认阈值
func DefaultOptions() Options {
	return Options{MaxMethods: 20, MaxFields: 15, DuplicateDistance: 2, MinNameLength: 5}
}

// Issue 是一条质量问题
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Class    string   `json:"class"`
	Message  string   `json:"message"`
}

// Metrics 是规模/复杂度指标
type Metrics struct {
	TotalClasses        int                        `json:"totalClasses"`
	TotalMethods        int                        `json:"totalMethods"`
	TotalFields         int                        `json:"totalFields"`
	AvgMethodsPerClass  float64                    `json:"avgMethodsPerClass"`
	PatternCount        int                        `json:"patternCount"`
	PackageCount        int                        `json:"packageCount"`
	ClassesByRole       map[model.Role]int         `json:"classesByRole"`
	RelationshipsByKind map[model.RelationKind]int `json:"relationshipsByKind"`
	DanglingReferences  int                        `json:"danglingReferences"`
}

// Rating 是 0-100 的评分及对应等级 A-E
type Rating struct {
	Maintainability      int    `json:"maintainability"`
	MaintainabilityGrade string `json:"maintainabilityGrade"`
	Reliability          int    `json:"reliability"`
	ReliabilityGrade     string `json:"reliabilityGrade"`
}

// Report 是一次质量分析的结果
type Report struct {
	Metrics Metrics `json:"metrics"`
	Issues  []Issue `json:"issues"`
	Rating  Rating  `json:"rating"`
}

// Count 返回指定规则命中的问题数
func (r *Report) Count(rule string) int {
	n := 0
	for _, i := range r.Issues {
		if i.Rule == rule {
			n++
		}
	}
	return n
}

// Analyze 计算指标、问题列表和评分。opts 中为 0 的阈值使用默认值。
func Analyze(graph *model.AnalysisGraph, opts Options) *Report {
	opts = withDefaults(opts)
	classes := graph.UniqueClasses()

	report := &Report{
		Metrics: collectMetrics(graph),
		Issues:  make([]Issue, 0),
	}
	report.Issues = append(report.Issues, oversized(classes, opts)...)
	report.Issues = append(report.Issues, missingSecurity(classes)...)
	report.Issues = append(report.Issues, duplicateNames(classes, opts)...)
	report.Rating = rate(report)
	return report
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.MaxMethods <= 0 {
		opts.MaxMethods = def.MaxMethods
	}
	if opts.MaxFields <= 0 {
		opts.MaxFields = def.MaxFields
	}
	if opts.DuplicateDistance <= 0 {
		opts.DuplicateDistance = def.DuplicateDistance
	}
	if opts.MinNameLength <= 0 {
		opts.MinNameLength = def.MinNameLength
	}
	return opts
}

func collectMetrics(graph *model.AnalysisGraph) Metrics {
	m := Metrics{
		TotalClasses:        len(graph.Classes),
		PatternCount:        len(graph.Patterns),
		PackageCount:        len(graph.Structure.Packages),
		ClassesByRole:       make(map[model.Role]int),
		RelationshipsByKind: make(map[model.RelationKind]int),
	}
	for _, c := range graph.Classes {
		m.TotalMethods += len(c.Methods)
		m.TotalFields += len(c.Fields)
		m.ClassesByRole[c.Role]++
	}
	if m.TotalClasses > 0 {
		m.AvgMethodsPerClass = float64(m.TotalMethods) / float64(m.TotalClasses)
	}
	for _, r := range graph.Relationships {
		m.RelationshipsByKind[r.Kind]++
	}
	if graph.Diagnostics != nil {
		m.DanglingReferences = len(graph.Diagnostics.DanglingReferences)
	}
	return m
}

func oversized(classes []model.ClassEntity, opts Options) []Issue {
	var issues []Issue
	for _, c := range classes {
		if len(c.Methods) > opts.MaxMethods || len(c.Fields) > opts.MaxFields {
			issues = append(issues, Issue{
				Rule:     RuleOversizedClass,
				Severity: SeverityMajor,
				Class:    c.Name,
				Message:  fmt.Sprintf("%s has %d methods and %d fields (limits %d/%d)", c.Name, len(c.Methods), len(c.Fields), opts.MaxMethods, opts.MaxFields),
			})
		}
	}
	return issues
}

// missingSecurity 检查 controller 中带 *Mapping 注解、但方法和类上都没有访问控制注解的端点
func missingSecurity(classes []model.ClassEntity) []Issue {
	var issues []Issue
	for _, c := range classes {
		if c.Role != model.RoleController || c.HasAnnotation(securityAnnotations...) {
			continue
		}
		for _, m := range c.Methods {
			if !isMapped(m) || m.HasAnnotation(securityAnnotations...) {
				continue
			}
			issues = append(issues, Issue{
				Rule:     RuleMissingSecurity,
				Severity: SeverityCritical,
				Class:    c.Name,
				Message:  fmt.Sprintf("endpoint %s.%s has no security annotation", c.Name, m.Name),
			})
		}
	}
	return issues
}

func isMapped(m model.Method) bool {
	for _, a := range m.Annotations {
		if strings.HasSuffix(a, "Mapping") {
			return true
		}
	}
	return false
}

// duplicateNames 用编辑距离找出疑似重复的类名 (忽略大小写)
func duplicateNames(classes []model.ClassEntity, opts Options) []Issue {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		if len(c.Name) >= opts.MinNameLength {
			names = append(names, c.Name)
		}
	}
	sort.Strings(names)

	var issues []Issue
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			d := edlib.LevenshteinDistance(strings.ToLower(names[i]), strings.ToLower(names[j]))
			if d > opts.DuplicateDistance {
				continue
			}
			issues = append(issues, Issue{
				Rule:     RuleDuplicateName,
				Severity: SeverityMinor,
				Class:    names[i],
				Message:  fmt.Sprintf("%s and %s differ by %d edit(s)", names[i], names[j], d),
			})
		}
	}
	return issues
}

// rate 把问题数和指标折算为分数。
// 可维护性扣分：超大类 10、重名 5、平均方法数超过 10 的部分每个 2；
// 可靠性扣分：缺少访问控制 8、悬空引用每个 1 (最多 20)。
func rate(r *Report) Rating {
	maint := 100 - 10*r.Count(RuleOversizedClass) - 5*r.Count(RuleDuplicateName)
	if avg := r.Metrics.AvgMethodsPerClass; avg > 10 {
		maint -= int((avg - 10) * 2)
	}
	rel := 100 - 8*r.Count(RuleMissingSecurity) - min(r.Metrics.DanglingReferences, 20)

	maint, rel = clamp(maint), clamp(rel)
	return Rating{
		Maintainability:      maint,
		MaintainabilityGrade: Grade(maint),
		Reliability:          rel,
		ReliabilityGrade:     Grade(rel),
	}
}

func clamp(v int) int {
	return max(0, min(v, 100))
}

// Grade 把分数映射为等级：A>=90, B>=75, C>=60, D>=40, 其余 E
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "E"
	}
}
