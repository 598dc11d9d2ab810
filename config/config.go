// Package config 加载 archview 的 TOML 配置文件并校验。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/quality"
	"github.com/CodMac/go-archview/source"
)

// DefaultFileName 是当前目录下默认查找的配置文件
const DefaultFileName = ".archview.toml"

// Config 是一次运行的全部配置
type Config struct {
	Frontend        string   `toml:"frontend" validate:"required,oneof=annotated java"`
	Workers         int      `toml:"workers" validate:"min=1,max=256"`
	Include         []string `toml:"include" validate:"dive,required"`
	Exclude         []string `toml:"exclude" validate:"dive,required"`
	LogLevel        string   `toml:"log_level" validate:"oneof=debug info warn error"`
	Development     bool     `toml:"development"`
	AnalysisTimeout string   `toml:"analysis_timeout" validate:"duration"`
	Quality         Quality  `toml:"quality"`
}

// Quality 对应 [quality] 表
type Quality struct {
	MaxMethods        int `toml:"max_methods" validate:"min=1"`
	MaxFields         int `toml:"max_fields" validate:"min=1"`
	DuplicateDistance int `toml:"duplicate_distance" validate:"min=1,max=10"`
}

// Default 返回默认配置
func Default() *Config {
	q := quality.DefaultOptions()
	return &Config{
		Frontend:        string(model.LangAnnotated),
		Workers:         4,
		Include:         append([]string{}, source.DefaultInclude...),
		Exclude:         append([]string{}, source.DefaultExclude...),
		LogLevel:        "info",
		AnalysisTimeout: "5m",
		Quality: Quality{
			MaxMethods:        q.MaxMethods,
			MaxFields:         q.MaxFields,
			DuplicateDistance: q.DuplicateDistance,
		},
	}
}

// Load 读取 path 指向的 TOML 文件并覆盖默认值。
// path 为空时尝试当前目录下的 DefaultFileName，不存在则直接使用默认配置。
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse 把 TOML 数据解码到 cfg 上 (未出现的键保留原值) 并校验
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}
	return cfg.Validate()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.ParseDuration(s)
		return err == nil
	})
	return v
}

// Validate 按 struct tag 校验配置
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Language 返回所选前端对应的方言
func (c *Config) Language() model.Language {
	return model.Language(c.Frontend)
}

// Timeout 返回分析超时时间，未配置时为 0 (不启用看门狗)
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.AnalysisTimeout)
	if err != nil {
		return 0
	}
	return d
}

// QualityOptions 转换为 quality.Options
func (c *Config) QualityOptions() quality.Options {
	opts := quality.DefaultOptions()
	opts.MaxMethods = c.Quality.MaxMethods
	opts.MaxFields = c.Quality.MaxFields
	opts.DuplicateDistance = c.Quality.DuplicateDistance
	return opts
}
