// Package job 负责分析任务的状态记录与异步执行。
package job

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CodMac/go-archview/model"
)

// Status 是任务状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal 判断状态是否为终态
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobFinished = errors.New("job already finished")
)

// Job 是一次项目分析任务的快照
type Job struct {
	ID        string               `json:"id"`
	ProjectID string               `json:"projectId"`
	Status    Status               `json:"status"`
	Error     string               `json:"error,omitempty"`
	Graph     *model.AnalysisGraph `json:"graph,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Store 按任务 id 持久化任务状态与结果
type Store interface {
	Create(projectID string) (*Job, error)
	MarkRunning(id string) error
	Complete(id string, graph *model.AnalysisGraph) error
	Fail(id string, cause error) error
	Get(id string) (*Job, error)
}

// MemoryStore 是进程内的 Store 实现
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job), now: time.Now}
}

func (s *MemoryStore) Create(projectID string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	j := &Job{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Status:    StatusPending,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.jobs[j.ID] = j
	snapshot := *j
	return &snapshot, nil
}

func (s *MemoryStore) MarkRunning(id string) error {
	return s.transition(id, func(j *Job) {
		j.Status = StatusRunning
	})
}

func (s *MemoryStore) Complete(id string, graph *model.AnalysisGraph) error {
	return s.transition(id, func(j *Job) {
		j.Status = StatusCompleted
		j.Graph = graph
	})
}

func (s *MemoryStore) Fail(id string, cause error) error {
	return s.transition(id, func(j *Job) {
		j.Status = StatusFailed
		if cause != nil {
			j.Error = cause.Error()
		}
	})
}

// transition 修改非终态任务；终态任务不可再变更
func (s *MemoryStore) transition(id string, apply func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if j.Status.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrJobFinished, id, j.Status)
	}
	apply(j)
	j.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	snapshot := *j
	return &snapshot, nil
}
