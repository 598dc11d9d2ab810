package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CodMac/go-archview/model"
)

// Analyzer 是一次批量分析，processor.FileProcessor 实现了该接口
type Analyzer interface {
	Process(ctx context.Context, units []model.SourceUnit) (*model.AnalysisGraph, error)
}

// Runner 异步执行分析并把结果写入 Store。
// Timeout > 0 时启用看门狗：超时的任务被标记为 failed，迟到的结果会被丢弃。
type Runner struct {
	store    Store
	analyzer Analyzer
	timeout  time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	done map[string]chan struct{}
	wg   sync.WaitGroup
}

func NewRunner(store Store, analyzer Analyzer, timeout time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		store:    store,
		analyzer: analyzer,
		timeout:  timeout,
		logger:   logger,
		done:     make(map[string]chan struct{}),
	}
}

// Submit 创建任务并立即返回任务 id，分析在后台进行。ctx 的取消不会中断已提交的任务。
func (r *Runner) Submit(ctx context.Context, projectID string, units []model.SourceUnit) (string, error) {
	j, err := r.store.Create(projectID)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	done := make(chan struct{})
	r.mu.Lock()
	r.done[j.ID] = done
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)
		r.run(context.WithoutCancel(ctx), j.ID, units)
	}()
	return j.ID, nil
}

type result struct {
	graph *model.AnalysisGraph
	err   error
}

func (r *Runner) run(ctx context.Context, id string, units []model.SourceUnit) {
	log := r.logger.With(zap.String("job", id))
	if err := r.store.MarkRunning(id); err != nil {
		log.Error("failed to mark job running", zap.Error(err))
		return
	}

	cancel := func() {}
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	results := make(chan result, 1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		graph, err := r.analyzer.Process(ctx, units)
		results <- result{graph: graph, err: err}
	}()

	var res result
	select {
	case res = <-results:
	case <-ctx.Done():
	}

	switch {
	case ctx.Err() != nil && (res.graph == nil || res.err != nil):
		log.Warn("analysis timed out", zap.Duration("timeout", r.timeout))
		r.record(log, r.store.Fail(id, fmt.Errorf("analysis timed out after %s: %w", r.timeout, ctx.Err())))
	case res.err != nil:
		if model.IsEmptyProject(res.err) {
			log.Warn("project has no recognizable classes", zap.Error(res.err))
		} else {
			log.Error("analysis failed", zap.Error(res.err))
		}
		r.record(log, r.store.Fail(id, res.err))
	default:
		r.record(log, r.store.Complete(id, res.graph))
	}
}

func (r *Runner) record(log *zap.Logger, err error) {
	if err != nil {
		log.Error("failed to record job status", zap.Error(err))
	}
}

// Wait 阻塞直到任务进入终态或 ctx 结束
func (r *Runner) Wait(ctx context.Context, id string) (*Job, error) {
	r.mu.Lock()
	done, ok := r.done[id]
	r.mu.Unlock()

	if ok {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.store.Get(id)
}

// Close 等待所有后台协程退出
func (r *Runner) Close() {
	r.wg.Wait()
}
