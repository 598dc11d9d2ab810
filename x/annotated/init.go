package annotated

import (
	"github.com/CodMac/go-archview/frontend"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/noisefilter"
)

func init() {
	// 注册 Frontend
	frontend.Register(model.LangAnnotated, NewExtractor())
	// 注册 NoiseFilter(噪音过滤)
	noisefilter.RegisterNoiseFilter(model.LangAnnotated, noisefilter.NewJVMNoiseFilter())
}
