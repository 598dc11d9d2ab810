package quality_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/quality"
)

func methods(n int) []model.Method {
	out := make([]model.Method, n)
	for i := range out {
		out[i] = model.Method{Name: fmt.Sprintf("m%d", i), ReturnType: "void"}
	}
	return out
}

func TestAnalyze_Metrics(t *testing.T) {
	graph := &model.AnalysisGraph{
		Classes: []model.ClassEntity{
			{Name: "OrderController", Role: model.RoleController, Methods: methods(2)},
			{Name: "OrderService", Role: model.RoleService, Methods: methods(4), Fields: []model.Field{{Name: "repo", Type: "OrderRepository"}}},
		},
		Relationships: []model.Relationship{
			{From: "OrderController", To: "OrderService", Kind: model.Calls},
			{From: "OrderService", To: "Base", Kind: model.Extends},
		},
		Patterns:    []model.Pattern{{Name: "Layered Architecture (MVC)"}},
		Structure:   model.Structure{Packages: []string{"com.shop"}},
		Diagnostics: &model.Diagnostics{DanglingReferences: []model.DanglingReference{{From: "OrderService", To: "Base", Kind: model.Extends}}},
	}

	report := quality.Analyze(graph, quality.Options{})
	m := report.Metrics
	assert.Equal(t, 2, m.TotalClasses)
	assert.Equal(t, 6, m.TotalMethods)
	assert.Equal(t, 1, m.TotalFields)
	assert.InDelta(t, 3.0, m.AvgMethodsPerClass, 0.001)
	assert.Equal(t, 1, m.PatternCount)
	assert.Equal(t, 1, m.PackageCount)
	assert.Equal(t, 1, m.ClassesByRole[model.RoleController])
	assert.Equal(t, 1, m.RelationshipsByKind[model.Extends])
	assert.Equal(t, 1, m.DanglingReferences)

	assert.Empty(t, report.Issues)
	assert.Equal(t, 100, report.Rating.Maintainability)
	assert.Equal(t, "A", report.Rating.MaintainabilityGrade)
	assert.Equal(t, 99, report.Rating.Reliability)
}

func TestAnalyze_Oversized(t *testing.T) {
	fields := make([]model.Field, 16)
	graph := &model.AnalysisGraph{Classes: []model.ClassEntity{
		{Name: "GodObject", Methods: methods(21)},
		{Name: "WideRecord", Fields: fields},
		{Name: "SmallThing", Methods: methods(20)},
	}}

	report := quality.Analyze(graph, quality.DefaultOptions())
	require.Equal(t, 2, report.Count(quality.RuleOversizedClass))
	assert.Equal(t, "GodObject", report.Issues[0].Class)
	assert.Equal(t, quality.SeverityMajor, report.Issues[0].Severity)
	assert.Equal(t, "WideRecord", report.Issues[1].Class)

	custom := quality.Analyze(graph, quality.Options{MaxMethods: 30, MaxFields: 30})
	assert.Zero(t, custom.Count(quality.RuleOversizedClass))
}

func TestAnalyze_MissingSecurity(t *testing.T) {
	graph := &model.AnalysisGraph{Classes: []model.ClassEntity{
		{
			Name: "OrderController",
			Role: model.RoleController,
			Methods: []model.Method{
				{Name: "list", Annotations: []string{"GetMapping"}},
				{Name: "delete", Annotations: []string{"DeleteMapping", "PreAuthorize"}},
				{Name: "helper"},
			},
		},
		{
			Name:        "AdminController",
			Role:        model.RoleController,
			Annotations: []string{"RestController", "Secured"},
			Methods:     []model.Method{{Name: "purge", Annotations: []string{"PostMapping"}}},
		},
		{
			Name:    "OrderService",
			Role:    model.RoleService,
			Methods: []model.Method{{Name: "list", Annotations: []string{"GetMapping"}}},
		},
	}}

	report := quality.Analyze(graph, quality.Options{})
	require.Equal(t, 1, report.Count(quality.RuleMissingSecurity))
	issue := report.Issues[0]
	assert.Equal(t, "OrderController", issue.Class)
	assert.Equal(t, quality.SeverityCritical, issue.Severity)
	assert.Contains(t, issue.Message, "OrderController.list")
	assert.Equal(t, 92, report.Rating.Reliability)
	assert.Equal(t, "A", report.Rating.ReliabilityGrade)
}

func TestAnalyze_DuplicateNames(t *testing.T) {
	graph := &model.AnalysisGraph{Classes: []model.ClassEntity{
		{Name: "OrderService"},
		{Name: "OrdersService"},
		{Name: "orderservice"},
		{Name: "UserDao"},
		{Name: "UserDto"},
		{Name: "Cat"},
		{Name: "Car"},
	}}

	report := quality.Analyze(graph, quality.Options{})
	// OrderService/OrdersService/orderservice 两两相近；UserDao/UserDto 距离为 1；Cat/Car 太短
	assert.Equal(t, 4, report.Count(quality.RuleDuplicateName))
	for _, i := range report.Issues {
		assert.NotEqual(t, "Car", i.Class)
		assert.NotEqual(t, "Cat", i.Class)
	}
	assert.Equal(t, 80, report.Rating.Maintainability)
	assert.Equal(t, "B", report.Rating.MaintainabilityGrade)
}

func TestGrade(t *testing.T) {
	tests := map[int]string{100: "A", 90: "A", 89: "B", 75: "B", 74: "C", 60: "C", 59: "D", 40: "D", 39: "E", 0: "E"}
	for score, want := range tests {
		assert.Equal(t, want, quality.Grade(score), "score %d", score)
	}
}
