package parser

import (
	"fmt"
	"os"

	"github.com/CodMac/go-archview/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// Parse 使用相应的 Tree-sitter 语言库解析源码，返回语法树。调用方负责 Close 语法树。
	Parse(source []byte) (*sitter.Tree, error)
	// ParseFile 读取文件内容并解析
	ParseFile(filePath string) (*sitter.Tree, []byte, error)
	Close()
}

// TreeSitterParser 是 Parser 的具体实现。sitter.Parser 不是并发安全的，每个 goroutine 需要自己的实例。
type TreeSitterParser struct {
	Language model.Language // 当前解析器针对的语言
	tsParser *sitter.Parser
}

// NewParser 创建一个新的 TreeSitterParser 实例
func NewParser(lang model.Language) (*TreeSitterParser, error) {
	tsLang, err := model.GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &TreeSitterParser{
		Language: lang,
		tsParser: tsParser,
	}, nil
}

// Parse 实现了 Parser 接口
func (p *TreeSitterParser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %s source", p.Language)
	}
	return tree, nil
}

// ParseFile 实现了 Parser 接口
func (p *TreeSitterParser) ParseFile(filePath string) (*sitter.Tree, []byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	tree, err := p.Parse(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return tree, content, nil
}

// Close 释放 Tree-sitter 内部资源
func (p *TreeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
