package processor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CodMac/go-archview/classify"
	"github.com/CodMac/go-archview/entity"
	"github.com/CodMac/go-archview/extractor"
	"github.com/CodMac/go-archview/frontend"
	"github.com/CodMac/go-archview/model"
	"github.com/CodMac/go-archview/noisefilter"
)

// FileProcessor 负责并发处理一批源码单元，每个文件产出一个不可变 Fragment，最后由 Reduce 合并。
type FileProcessor struct {
	Language model.Language
	Workers  int // 并发协程数量
	Logger   *zap.Logger
}

// Option 配置 FileProcessor
type Option func(*FileProcessor)

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(fp *FileProcessor) {
		if l != nil {
			fp.Logger = l
		}
	}
}

// NewFileProcessor 创建 FileProcessor 实例
func NewFileProcessor(lang model.Language, workers int, opts ...Option) *FileProcessor {
	if workers <= 0 {
		workers = 4 // 默认并发数
	}
	fp := &FileProcessor{
		Language: lang,
		Workers:  workers,
		Logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(fp)
	}
	return fp
}

// Process 提取全部文件并构建 AnalysisGraph。
// 单个文件失败只记录并跳过；整个批次没有识别出任何类时返回 *model.EmptyProjectError。
func (fp *FileProcessor) Process(ctx context.Context, units []model.SourceUnit) (*model.AnalysisGraph, error) {
	fe, err := frontend.Get(fp.Language)
	if err != nil {
		return nil, err
	}
	builder := extractor.NewBuilder(noisefilter.GetNoiseFilter(fp.Language))

	// 每个协程只写自己下标的槽位，无需加锁
	fragments := make([]*model.Fragment, len(units))
	failures := make([]error, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.Workers)
	for i := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fragments[i], failures[i] = processUnit(fe, builder, units[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	var skipped []string
	for i, ferr := range failures {
		if ferr == nil {
			continue
		}
		skipped = append(skipped, units[i].Path)
		if errors.Is(ferr, model.ErrUnrecognizedFile) {
			fp.Logger.Debug("skipping unrecognized file", zap.String("path", units[i].Path))
		} else {
			fp.Logger.Warn("skipping file", zap.String("path", units[i].Path), zap.Error(ferr))
		}
	}

	graph := Reduce(fragments)
	graph.Diagnostics.SkippedFiles = skipped

	if len(graph.Classes) == 0 {
		return nil, &model.EmptyProjectError{Files: len(units), Skipped: len(skipped)}
	}

	fp.Logger.Info("analysis finished",
		zap.String("language", string(fp.Language)),
		zap.Int("files", len(units)),
		zap.Int("skipped", len(skipped)),
		zap.Int("classes", len(graph.Classes)),
		zap.Int("relationships", len(graph.Relationships)),
		zap.Int("patterns", len(graph.Patterns)),
	)
	return graph, nil
}

// processUnit 处理单个文件：解析 -> 分类 -> 关系 -> 实体。panic 会被转换为错误。
func processUnit(fe frontend.Frontend, builder *extractor.Builder, unit model.SourceUnit) (frag *model.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frag, err = nil, fmt.Errorf("panic while processing %s: %v", unit.Path, r)
		}
	}()

	classes, err := fe.Parse(unit.Path, []byte(unit.Text))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", unit.Path, err)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("%s: %w", unit.Path, model.ErrUnrecognizedFile)
	}

	frag = &model.Fragment{Path: unit.Path}
	for _, c := range classes {
		span := classText(unit.Text, c.Location)
		c.Role = classify.ClassifyEntity(c, span)

		frag.Relationships = append(frag.Relationships, builder.BuildRelationships(c, span)...)
		if em, ok := entity.Extract(c, span); ok {
			frag.Entities = append(frag.Entities, *em)
		}
		frag.Classes = append(frag.Classes, *c)
	}
	return frag, nil
}

// classText 返回类声明所覆盖的源码文本，位置无效时退化为整个文件
func classText(text string, loc *model.Location) string {
	if loc == nil || loc.StartByte < 0 || loc.EndByte > len(text) || loc.StartByte >= loc.EndByte {
		return text
	}
	return text[loc.StartByte:loc.EndByte]
}
