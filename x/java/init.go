package java

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/CodMac/go-archview/frontend"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/noisefilter"
)

func init() {
	// 注册 Tree-sitter Java 语言对象
	model.RegisterLanguage(model.LangJava, sitter.NewLanguage(tree_sitter_java.Language()))
	// 注册 Frontend
	frontend.Register(model.LangJava, NewFrontend())
	// 注册 NoiseFilter(噪音过滤)
	noisefilter.RegisterNoiseFilter(model.LangJava, noisefilter.NewJVMNoiseFilter())
}
