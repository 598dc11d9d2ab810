// Package source 把目录树读成分析输入 (model.SourceUnit 列表)。
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"

	"github.com/CodMac/go-archview/model"
)

// DefaultInclude / DefaultExclude 是未配置时使用的 glob
var (
	DefaultInclude = []string{"**/*.java"}
	DefaultExclude = []string{"**/.git/**", "**/target/**", "**/build/**", "**/node_modules/**"}
)

// Batch 是一次加载的结果
type Batch struct {
	Units       []model.SourceUnit
	Fingerprint uint64 // 路径与内容的 xxhash，同样的输入得到同样的值
}

// FingerprintHex 返回十六进制形式的指纹
func (b *Batch) FingerprintHex() string {
	return strconv.FormatUint(b.Fingerprint, 16)
}

// Load 遍历 root，按 include/exclude glob 过滤 (相对 root 的正斜杠路径)，读取匹配的文件。
// 结果按路径排序。
func Load(root string, include, exclude []string) (*Batch, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var units []model.SourceUnit
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && matchAny(exclude, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(exclude, rel) || !matchAny(include, rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		units = append(units, model.SourceUnit{Path: rel, Text: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return &Batch{Units: units, Fingerprint: Fingerprint(units)}, nil
}

// Fingerprint 按顺序对路径和内容做 xxhash
func Fingerprint(units []model.SourceUnit) uint64 {
	h := xxhash.New()
	for _, u := range units {
		_, _ = h.WriteString(u.Path)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(u.Text)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
