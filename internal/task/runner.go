package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// RunnerConfig holds configuration for the upload runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	// The pool size is fixed for the runner's lifetime.
	WorkerCount int

	// StopTimeout bounds how long Stop waits for the workers and the
	// dispatcher to observe shutdown and exit.
	StopTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 3,
		StopTimeout: 2 * time.Second,
	}
}

// Runner owns the upload queue, a fixed pool of pipeline workers and the
// result dispatcher. Workers pull tasks in FIFO order and run the two-phase
// pipeline (upload images, create the product record); results are handed
// to a single dispatcher goroutine which invokes the registered completion
// callback serially, so the callback is never concurrent with itself.
//
// Result delivery follows completion order, not submission order: with
// more than one worker a later, faster task can finish first.
type Runner struct {
	uploader AssetUploader
	creator  RecordCreator

	queue   *Queue
	results *fifo[domain.Result]

	ctx    context.Context
	cancel context.CancelFunc

	workerWG     sync.WaitGroup
	dispatcherWG sync.WaitGroup

	// pending tracks tasks that have been submitted but not yet accounted
	// for: a task is done once its Result has been delivered, or once Stop
	// has discarded it from the queue. WaitForCompletion blocks on it.
	pending sync.WaitGroup

	activeWorkers atomic.Int32
	counters      counters

	cbMu     sync.Mutex
	callback func(domain.Result)

	config RunnerConfig
	logger *slog.Logger
}

// NewRunner creates a runner and immediately starts its workers and
// dispatcher. The uploader and creator are the injected capabilities the
// pipeline calls into; neither is retried by the runner.
func NewRunner(uploader AssetUploader, creator RecordCreator, config RunnerConfig, logger *slog.Logger) *Runner {
	// Apply defaults for invalid config values
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.StopTimeout <= 0 {
		config.StopTimeout = DefaultRunnerConfig().StopTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &Runner{
		uploader: uploader,
		creator:  creator,
		queue:    NewQueue(),
		results:  newFIFO[domain.Result](),
		ctx:      ctx,
		cancel:   cancel,
		config:   config,
		logger:   logger,
	}

	for i := 0; i < config.WorkerCount; i++ {
		r.workerWG.Add(1)
		go r.worker(i + 1)
	}

	r.dispatcherWG.Add(1)
	go r.dispatch()

	return r
}

// SetCompletionCallback registers the function invoked with every Result.
// The dispatcher calls it synchronously and one invocation at a time, so
// a single-threaded consumer needs no locking of its own. A nil callback
// restores the default of discarding results.
func (r *Runner) SetCompletionCallback(fn func(domain.Result)) {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	r.callback = fn
}

// Submit validates the task, stamps its submission time and enqueues it.
// It never blocks on the queue and returns the new queue depth.
func (r *Runner) Submit(t *domain.Task) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("invalid task: %w", err)
	}

	select {
	case <-r.ctx.Done():
		return 0, ErrRunnerStopped
	default:
	}

	if t.SubmittedAt.IsZero() {
		t.SubmittedAt = time.Now().UTC()
	}

	r.counters.total.Add(1)
	r.pending.Add(1)
	depth, ok := r.queue.fifo.push(t)
	if !ok {
		// Lost the race with Stop; the task was never queued.
		r.pending.Done()
		return 0, ErrRunnerStopped
	}

	r.logger.Debug("task enqueued",
		"task_id", t.ID,
		"title", t.Title,
		"queue_depth", depth)

	return depth, nil
}

// QueueDepth is a best-effort snapshot of the number of queued tasks.
func (r *Runner) QueueDepth() int {
	return r.queue.Depth()
}

// ActiveWorkers is a best-effort snapshot of the number of live workers.
func (r *Runner) ActiveWorkers() int {
	return int(r.activeWorkers.Load())
}

// Stats returns a snapshot of the submitted/completed/failed counters.
func (r *Runner) Stats() Stats {
	return r.counters.snapshot()
}

// WaitForCompletion blocks until every task submitted so far has run its
// pipeline and had its Result delivered to the completion callback. It
// does not stop the runner; new tasks may be submitted afterwards. After
// Stop it returns once the tasks Stop abandoned have been accounted for
// and any in-flight pipeline has wound down.
func (r *Runner) WaitForCompletion() {
	r.pending.Wait()
}

// Stop shuts the runner down. The workers are signalled and joined with a
// bounded wait; an in-flight pipeline step is not interrupted. Tasks
// still queued are abandoned: they are never processed and no Result is
// delivered for them. Results already produced are flushed to the
// dispatcher and delivered before it exits.
func (r *Runner) Stop() {
	r.cancel()
	r.queue.Close()

	workersJoined := waitTimeout(&r.workerWG, r.config.StopTimeout)

	// Discard whatever the workers left in the queue. Each abandoned task
	// is marked done so WaitForCompletion stays usable after Stop.
	abandoned := 0
	for range r.queue.C() {
		r.pending.Done()
		abandoned++
	}

	r.results.close()
	dispatcherJoined := waitTimeout(&r.dispatcherWG, r.config.StopTimeout)

	r.logger.Info("upload runner stopped",
		"workers_joined", workersJoined,
		"dispatcher_joined", dispatcherJoined,
		"abandoned_tasks", abandoned)
}

// worker pulls tasks off the queue and runs the pipeline for each one.
// It exits when the runner's context is cancelled.
func (r *Runner) worker(id int) {
	defer r.workerWG.Done()

	r.activeWorkers.Add(1)
	defer r.activeWorkers.Add(-1)

	logger := r.logger.With("worker_id", id)
	logger.Debug("starting worker")

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("stopping worker")
			return

		case t, ok := <-r.queue.C():
			if !ok {
				logger.Debug("task queue closed, stopping worker")
				return
			}

			// Cancellation may have raced the receive; a task popped after
			// the stop signal is abandoned, not processed.
			select {
			case <-r.ctx.Done():
				r.pending.Done()
				return
			default:
			}

			result := r.runPipeline(t, logger)

			if result.Success {
				r.counters.completed.Add(1)
			} else {
				r.counters.failed.Add(1)
			}

			if _, ok := r.results.push(result); !ok {
				// The result fifo closed while the pipeline ran; the task
				// still counts as finished.
				r.pending.Done()
			}

			logger.Info("task finished",
				"task_id", t.ID,
				"title", t.Title,
				"success", result.Success)
		}
	}
}

// runPipeline executes the two-phase pipeline for one task. Every failure
// mode, including a panicking capability, becomes a failed Result; nothing
// escapes to kill the worker loop.
func (r *Runner) runPipeline(t *domain.Task, logger *slog.Logger) (result domain.Result) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic while processing task",
				"task_id", t.ID,
				"panic", p,
				"stack", string(debug.Stack()))
			result = domain.Result{Task: t, Err: fmt.Sprintf("panic: %v", p)}
		}
	}()

	logger.Info("processing task",
		"task_id", t.ID,
		"title", t.Title,
		"image_count", len(t.ImagePaths))

	// Capability calls are deliberately decoupled from the runner's stop
	// signal: Stop never interrupts an in-flight upload or create, it only
	// bounds how long it waits for them. The capabilities carry their own
	// request timeouts.
	ctx := context.Background()

	// Phase one: upload images sequentially so the task's image order is
	// preserved for featured-image selection. One failed upload does not
	// sink the task.
	var uploaded []domain.UploadedImage
	for i, path := range t.ImagePaths {
		img, err := r.uploader.Upload(ctx, path)
		if err != nil {
			logger.Error("image upload failed",
				"task_id", t.ID,
				"path", path,
				"error", err)
			continue
		}
		uploaded = append(uploaded, img)
		logger.Debug("image uploaded",
			"task_id", t.ID,
			"media_id", img.ID,
			"uploaded", i+1,
			"declared", len(t.ImagePaths))
	}

	if len(uploaded) == 0 && len(t.ImagePaths) > 0 {
		return domain.Result{Task: t, Err: ErrNoImagesUploaded.Error()}
	}

	// Phase two: create the product record with the first successfully
	// uploaded image as the featured one.
	product, err := r.creator.Create(ctx, t.Payload(uploaded))
	if err != nil {
		return domain.Result{Task: t, Err: err.Error()}
	}

	return domain.Result{Success: true, Task: t, Product: &product}
}

// dispatch drains the result queue and hands each Result to the registered
// completion callback, one at a time. It ignores the stop signal and runs
// until the result fifo closes, so every Result the workers produced is
// delivered, shutdown included.
func (r *Runner) dispatch() {
	defer r.dispatcherWG.Done()

	logger := r.logger.With("component", "dispatcher")
	logger.Debug("starting dispatcher")

	for result := range r.results.c() {
		r.deliver(result, logger)
		r.pending.Done()
	}
	logger.Debug("result queue closed, stopping dispatcher")
}

// deliver invokes the completion callback for one result. A panicking
// callback is logged and swallowed so one bad observer cannot stop result
// delivery.
func (r *Runner) deliver(result domain.Result, logger *slog.Logger) {
	r.cbMu.Lock()
	cb := r.callback
	r.cbMu.Unlock()

	if cb == nil {
		return
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("completion callback panicked",
				"task_id", result.Task.ID,
				"panic", p)
		}
	}()

	cb(result)
}

// waitTimeout waits on wg for at most d. Reports whether the wait group
// finished in time.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
