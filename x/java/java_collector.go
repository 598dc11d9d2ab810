package java

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/go-archview/model"
)

// DefaultPackage 是没有 package 声明时使用的包名
const DefaultPackage = "default"

// Collector 从 Java 语法树中收集顶层类型声明及其成员
type Collector struct{}

func NewJavaCollector() *Collector {
	return &Collector{}
}

// CollectClasses 返回文件中全部顶层 class/interface/enum/record 声明
func (c *Collector) CollectClasses(root *sitter.Node, filePath string, src []byte) []*model.ClassEntity {
	pkg := DefaultPackage
	classes := make([]*model.ClassEntity, 0)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(uint(i))
		if child == nil {
			continue
		}
		if child.Kind() == "package_declaration" {
			if name := c.packageName(child, src); name != "" {
				pkg = name
			}
			continue
		}
		if kind, ok := declarationKind(child.Kind()); ok {
			if class := c.collectClass(child, kind, pkg, filePath, src); class != nil {
				classes = append(classes, class)
			}
		}
	}
	return classes
}

func declarationKind(nodeKind string) (model.ClassKind, bool) {
	switch nodeKind {
	case "class_declaration":
		return model.KindClass, true
	case "interface_declaration":
		return model.KindInterface, true
	case "enum_declaration":
		return model.KindEnum, true
	case "record_declaration":
		return model.KindRecord, true
	}
	return "", false
}

func (c *Collector) packageName(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		sub := node.NamedChild(uint(i))
		if sub.Kind() == "scoped_identifier" || sub.Kind() == "identifier" {
			return c.getNodeContent(sub, src)
		}
	}
	return ""
}

func (c *Collector) collectClass(node *sitter.Node, kind model.ClassKind, pkg, filePath string, src []byte) *model.ClassEntity {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := c.getNodeContent(nameNode, src)

	class := &model.ClassEntity{
		Name:          name,
		QualifiedName: model.BuildQualifiedName(pkg, name),
		Package:       pkg,
		Kind:          kind,
		Annotations:   c.extractAnnotations(node, src),
		Methods:       make([]model.Method, 0),
		Fields:        make([]model.Field, 0),
		Implements:    make([]string, 0),
		Location:      c.extractLocation(node, filePath),
	}
	c.fillHeritage(node, class, src)

	if kind == model.KindRecord {
		if params := node.ChildByFieldName("parameters"); params != nil {
			class.Fields = append(class.Fields, c.formalParameters(params, src)...)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		c.collectMembers(body, class, src)
	}
	return class
}

// fillHeritage 填充 extends / implements。接口的多个父接口：第一个记为 Extends，其余记入 Implements。
func (c *Collector) fillHeritage(node *sitter.Node, class *model.ClassEntity, src []byte) {
	if scNode := node.ChildByFieldName("superclass"); scNode != nil {
		var supers []string
		c.recursiveCollectTypes(scNode, &supers, src)
		if len(supers) > 0 {
			class.Extends = supers[0]
		}
	}
	if iNode := node.ChildByFieldName("interfaces"); iNode != nil {
		c.recursiveCollectTypes(iNode, &class.Implements, src)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child.Kind() != "extends_interfaces" {
			continue
		}
		var supers []string
		c.recursiveCollectTypes(child, &supers, src)
		if len(supers) > 0 {
			class.Extends = supers[0]
			class.Implements = append(class.Implements, supers[1:]...)
		}
	}
}

// collectMembers 只收集直接成员；嵌套类型的成员不归属外层类
func (c *Collector) collectMembers(body *sitter.Node, class *model.ClassEntity, src []byte) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(uint(i))
		switch member.Kind() {
		case "method_declaration":
			if m, ok := c.extractMethod(member, src); ok {
				class.Methods = append(class.Methods, m)
			}
		case "field_declaration", "constant_declaration":
			class.Fields = append(class.Fields, c.extractFields(member, src)...)
		case "enum_body_declarations":
			c.collectMembers(member, class, src)
		}
	}
}

func (c *Collector) extractMethod(node *sitter.Node, src []byte) (model.Method, bool) {
	nameNode := node.ChildByFieldName("name")
	typeNode := node.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil {
		return model.Method{}, false
	}
	m := model.Method{
		Name:        c.getNodeContent(nameNode, src),
		Annotations: c.extractAnnotations(node, src),
		Parameters:  make([]string, 0),
		ReturnType:  c.getNodeContent(typeNode, src),
	}
	if pNode := node.ChildByFieldName("parameters"); pNode != nil {
		for _, p := range c.formalParameters(pNode, src) {
			m.Parameters = append(m.Parameters, strings.TrimSpace(p.Type+" "+p.Name))
		}
	}
	return m, true
}

// formalParameters 把参数列表解析为 (类型, 名称, 注解)，record 组件也复用此逻辑
func (c *Collector) formalParameters(params *sitter.Node, src []byte) []model.Field {
	out := make([]model.Field, 0)
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(uint(i))
		switch p.Kind() {
		case "formal_parameter":
			out = append(out, model.Field{
				Name:        c.getNodeContent(p.ChildByFieldName("name"), src),
				Type:        c.getNodeContent(p.ChildByFieldName("type"), src),
				Annotations: c.extractAnnotations(p, src),
			})
		case "spread_parameter":
			out = append(out, model.Field{
				Type:        c.getNodeContent(p, src),
				Annotations: make([]string, 0),
			})
		}
	}
	return out
}

func (c *Collector) extractFields(node *sitter.Node, src []byte) []model.Field {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	fieldType := c.getNodeContent(typeNode, src)
	annotations := c.extractAnnotations(node, src)

	var fields []model.Field
	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(uint(i))
		if decl.Kind() != "variable_declarator" {
			continue
		}
		if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
			fields = append(fields, model.Field{
				Name:        c.getNodeContent(nameNode, src),
				Type:        fieldType,
				Annotations: append([]string{}, annotations...),
			})
		}
	}
	return fields
}

// extractAnnotations 返回声明 modifiers 中的注解简单名 (去掉包限定与参数)
func (c *Collector) extractAnnotations(n *sitter.Node, src []byte) []string {
	annos := make([]string, 0)
	var mNode *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(uint(i)).Kind() == "modifiers" {
			mNode = n.Child(uint(i))
			break
		}
	}
	if mNode == nil {
		return annos
	}
	for i := 0; i < int(mNode.NamedChildCount()); i++ {
		child := mNode.NamedChild(uint(i))
		if child.Kind() != "marker_annotation" && child.Kind() != "annotation" {
			continue
		}
		if name := c.getNodeContent(child.ChildByFieldName("name"), src); name != "" {
			annos = append(annos, lastSegment(name))
		}
	}
	return annos
}

// recursiveCollectTypes 收集节点下的类型名，泛型实参和包限定会被去掉
func (c *Collector) recursiveCollectTypes(n *sitter.Node, results *[]string, src []byte) {
	switch n.Kind() {
	case "type_identifier", "scoped_type_identifier":
		*results = append(*results, lastSegment(c.getNodeContent(n, src)))
		return
	case "generic_type":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(uint(i))
			if child.Kind() == "type_identifier" || child.Kind() == "scoped_type_identifier" {
				*results = append(*results, lastSegment(c.getNodeContent(child, src)))
				return
			}
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c.recursiveCollectTypes(n.NamedChild(uint(i)), results, src)
	}
}

func (c *Collector) extractLocation(n *sitter.Node, filePath string) *model.Location {
	return &model.Location{
		FilePath:  filePath,
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
	}
}

func (c *Collector) getNodeContent(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

func lastSegment(s string) string {
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}
