package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one run of a maintenance task.
type Job struct {
	Task     string
	Attempt  int
	Enqueued time.Time
}

// Task performs a job and reports how many items it touched.
type Task func(context.Context) (int, error)

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue dispatches named maintenance tasks to a small goroutine pool. Tasks run on
// demand through Enqueue or periodically through Every.
type Queue struct {
	name  string
	tasks map[string]Task

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a queue with no tasks registered.
func NewQueue(name string, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:       name,
		tasks:      map[string]Task{},
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger.With(zap.String("queue", name)),
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Register binds a task name to its function. Registering after Start is an error.
func (q *Queue) Register(name string, task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return fmt.Errorf("queue %s already started", q.name)
	}
	q.tasks[name] = task
	return nil
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("queue started", zap.Int("workers", q.workers), zap.Int("tasks", len(q.tasks)))
}

// Stop cancels workers and periodic schedules and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Info("queue stopped")
}

// Enqueue schedules one run of the named task.
func (q *Queue) Enqueue(task string) error {
	return q.push(Job{Task: task})
}

// Every enqueues task each interval until the queue stops.
func (q *Queue) Every(interval time.Duration, task string) error {
	if interval <= 0 {
		return fmt.Errorf("queue %s: interval for %s must be positive", q.name, task)
	}
	q.mu.Lock()
	ctx, started := q.ctx, q.started
	_, known := q.tasks[task]
	q.mu.Unlock()
	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if !known {
		return fmt.Errorf("queue %s: unknown task %s", q.name, task)
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := q.Enqueue(task); err != nil {
					q.logger.Warn("periodic enqueue failed", zap.String("task", task), zap.Error(err))
				}
			}
		}
	}()
	return nil
}

func (q *Queue) push(job Job) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	_, known := q.tasks[job.Task]
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if !known {
		return fmt.Errorf("queue %s: unknown task %s", q.name, job.Task)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.run(job)
		}
	}
}

func (q *Queue) run(job Job) {
	q.mu.Lock()
	task := q.tasks[job.Task]
	q.mu.Unlock()

	start := time.Now()
	n, err := task(q.ctx)
	if err != nil {
		q.handleFailure(job, err)
		return
	}
	q.logger.Debug("task finished",
		zap.String("task", job.Task),
		zap.Int("affected", n),
		zap.Duration("latency", time.Since(start)),
	)
}

func (q *Queue) handleFailure(job Job, err error) {
	job.Attempt++
	if job.Attempt > q.maxRetries {
		q.logger.Error("task exceeded retries", zap.String("task", job.Task), zap.Int("attempts", job.Attempt), zap.Error(err))
		return
	}
	q.logger.Warn("task failed, retrying", zap.String("task", job.Task), zap.Int("attempt", job.Attempt), zap.Error(err))

	q.wg.Add(1)
	go func(j Job) {
		defer q.wg.Done()
		timer := time.NewTimer(q.retryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			return
		case <-timer.C:
			if err := q.push(j); err != nil {
				q.logger.Error("failed to requeue task", zap.String("task", j.Task), zap.Error(err))
			}
		}
	}(job)
}
