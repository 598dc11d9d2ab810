package frontend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/CodMac/go-archview/model"
)

// Frontend 是一种源码方言的解析能力。新方言以新实现接入，而不是在各模块里增加正则分支。
type Frontend interface {
	// Parse 从单个文件中提取类。没有识别到任何声明时返回空切片和 nil，不视为错误。
	Parse(path string, source []byte) ([]*model.ClassEntity, error)
}

// Func 允许普通函数作为 Frontend 使用
type Func func(path string, source []byte) ([]*model.ClassEntity, error)

func (f Func) Parse(path string, source []byte) ([]*model.ClassEntity, error) {
	return f(path, source)
}

var (
	mu          sync.RWMutex
	frontendMap = make(map[model.Language]Frontend)
)

// Register 注册一个方言与其对应的 Frontend，通常在方言包的 init() 中调用
func Register(lang model.Language, f Frontend) {
	mu.Lock()
	defer mu.Unlock()
	frontendMap[lang] = f
}

// Get 根据方言获取对应的 Frontend 实例
func Get(lang model.Language) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := frontendMap[lang]
	if !ok {
		return nil, fmt.Errorf("no frontend registered for language: %s", lang)
	}
	return f, nil
}

// Registered 返回已注册的方言 (排序后)
func Registered() []model.Language {
	mu.RLock()
	defer mu.RUnlock()

	langs := make([]model.Language, 0, len(frontendMap))
	for lang := range frontendMap {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
