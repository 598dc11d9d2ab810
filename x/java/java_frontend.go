package java

import (
	"fmt"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/parser"
)

// Frontend 基于 tree-sitter 语法树提取 Java 类型声明，注解从声明自身的 modifiers 节点读取。
type Frontend struct {
	collector *Collector
}

func NewFrontend() *Frontend {
	return &Frontend{collector: NewJavaCollector()}
}

// Parse 实现了 frontend.Frontend 接口。sitter.Parser 不是并发安全的，每次调用单独创建。
func (f *Frontend) Parse(path string, source []byte) ([]*model.ClassEntity, error) {
	p, err := parser.NewParser(model.LangJava)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	tree, err := p.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer tree.Close()

	return f.collector.CollectClasses(tree.RootNode(), path, source), nil
}
