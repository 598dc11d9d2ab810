package noisefilter

import (
	"strings"
	"sync"

	"github.com/CodMac/go-archview/model"
)

// NoiseFilter 定义了如何识别调用点中的内建/容器类型 (它们不是项目中的类)
type NoiseFilter interface {
	IsNoise(identifier string) bool
}

var (
	mu             sync.RWMutex
	noiseFilterMap = make(map[model.Language]NoiseFilter)
)

// RegisterNoiseFilter 注册一个方言与其对应的 NoiseFilter
func RegisterNoiseFilter(lang model.Language, noiseFilter NoiseFilter) {
	mu.Lock()
	defer mu.Unlock()
	noiseFilterMap[lang] = noiseFilter
}

// GetNoiseFilter 根据方言获取对应的 NoiseFilter 实例。
// 未注册时返回不过滤任何标识符的默认过滤器。
func GetNoiseFilter(lang model.Language) NoiseFilter {
	mu.RLock()
	defer mu.RUnlock()

	noiseFilter, ok := noiseFilterMap[lang]
	if !ok {
		return &DefaultNoiseFilter{}
	}
	return noiseFilter
}

// DefaultNoiseFilter 默认过滤器：不对任何标识符进行噪音判定
type DefaultNoiseFilter struct{}

func (d *DefaultNoiseFilter) IsNoise(string) bool { return false }

// JVMNoiseFilter 过滤 JDK 中常见的容器、包装与工具类型，以及全大写的常量名
type JVMNoiseFilter struct {
	builtins map[string]bool
}

var jvmBuiltins = []string{
	"String", "StringBuilder", "StringBuffer", "Object", "Class",
	"Integer", "Long", "Short", "Byte", "Double", "Float", "Boolean", "Character", "Number",
	"BigDecimal", "BigInteger", "Math", "System", "Thread", "Runtime",
	"List", "ArrayList", "LinkedList", "Map", "HashMap", "LinkedHashMap", "TreeMap",
	"Set", "HashSet", "LinkedHashSet", "TreeSet", "Collection", "Collections", "Arrays",
	"Optional", "Objects", "Stream", "IntStream", "Collectors", "Iterator",
	"LocalDate", "LocalDateTime", "LocalTime", "Instant", "Duration", "UUID",
	"CompletableFuture", "Executors", "TimeUnit", "Pattern",
}

// NewJVMNoiseFilter 创建 JVM 系方言共用的噪音过滤器
func NewJVMNoiseFilter() *JVMNoiseFilter {
	f := &JVMNoiseFilter{builtins: make(map[string]bool, len(jvmBuiltins))}
	for _, b := range jvmBuiltins {
		f.builtins[b] = true
	}
	return f
}

func (f *JVMNoiseFilter) IsNoise(identifier string) bool {
	if f.builtins[identifier] {
		return true
	}
	// LOGGER.info( / MAX_SIZE 这类常量引用
	return len(identifier) > 1 && strings.ToUpper(identifier) == identifier
}
