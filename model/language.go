package model

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language 标识支持的源码方言 (frontend dialect)
type Language string

const (
	// LangAnnotated 基于正则/词法扫描的注解驱动类源码方言，每个文件最多产出一个类
	LangAnnotated Language = "annotated"
	// LangJava 基于 Tree-sitter 语法树的 Java 方言，每个文件产出全部顶层类型
	LangJava Language = "java"
)

var (
	langMu  sync.RWMutex
	langMap = make(map[Language]*sitter.Language) // 语言标识到 Tree-sitter 语言对象的映射
)

// RegisterLanguage 用于注册 Tree-sitter 语言库
func RegisterLanguage(lang Language, tsLang *sitter.Language) {
	langMu.Lock()
	defer langMu.Unlock()
	langMap[lang] = tsLang
}

// GetLanguage 获取已注册的 Tree-sitter 语言对象
func GetLanguage(lang Language) (*sitter.Language, error) {
	langMu.RLock()
	defer langMu.RUnlock()

	tsLang, ok := langMap[lang]
	if !ok {
		return nil, fmt.Errorf("language %s not registered", lang)
	}

	return tsLang, nil
}
