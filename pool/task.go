package pool

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pathtrace/image"
)

// ErrTaskPanicked wraps a recovered panic from a Task's function. It is
// never returned directly (the pool's Complete callback contract has no
// error return, spec §4.4) but is stored on the Task and reachable through
// TaskHandle.Err for collaborators that want to distinguish a panic from a
// user Cancel.
var ErrTaskPanicked = errors.New("pool: task function panicked")

// TaskState is a Task's lifecycle stage (spec §4.4).
type TaskState int32

const (
	// Pending means the Task has not yet been picked up by the pool.
	Pending TaskState = iota
	// Started means the Start callback has fired and workers may draw Problems.
	Started
	// Completed means every Problem was drained and the Task succeeded.
	Completed
	// Cancelled means the Task was cancelled, or failed, before completion.
	Cancelled
)

// Func is the computation a Task performs on a single Problem: it writes
// into result (row/region addressed by problem) and must observe cancelled
// promptly but is otherwise free to run unbounded CPU work (spec §5).
type Func[P any] func(result *image.Image[P], problem Problem, cancelled *atomic.Bool)

// StartCallback fires exactly once, before the first Problem is dispatched.
type StartCallback[P any] func(result *image.Image[P])

// ProblemCallback fires once per Problem retired, after Func has written
// into result.
type ProblemCallback[P any] func(result *image.Image[P], problem Problem)

// CompleteCallback fires exactly once at the Task's terminal state.
// success is true iff the Task was not cancelled.
type CompleteCallback[P any] func(result *image.Image[P], success bool)

// Task is a bound unit of work: a Func applied across every Problem in a
// ProblemSpace, writing into a single exclusively-owned result Image.
type Task[P any] struct {
	fn    Func[P]
	space ProblemSpace

	result *image.Image[P]

	cancelled atomic.Bool
	startOnce sync.Once
	state     atomic.Int32 // TaskState

	mu   sync.Mutex
	cond *sync.Cond
	err  error

	startCb    StartCallback[P]
	problemCb  ProblemCallback[P]
	completeCb CompleteCallback[P]
}

func newTask[P any](result *image.Image[P], fn Func[P], space ProblemSpace) *Task[P] {
	t := &Task[P]{
		fn:     fn,
		space:  space,
		result: result,
	}
	t.cond = sync.NewCond(&t.mu)
	t.state.Store(int32(Pending))
	return t
}

// Cancel requests cancellation. In-flight Problem executions run to
// completion; no new Problem is dispatched for this Task. The Task
// transitions to Cancelled at retirement (spec §4.4).
func (t *Task[P]) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested (not
// necessarily that the Task has finished retiring).
func (t *Task[P]) Cancelled() bool {
	return t.cancelled.Load()
}

// State returns the Task's current lifecycle stage.
func (t *Task[P]) State() TaskState {
	return TaskState(t.state.Load())
}

// Wait blocks until the Task reaches Completed or Cancelled.
func (t *Task[P]) Wait() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		switch TaskState(t.state.Load()) {
		case Completed, Cancelled:
			return
		}
		t.cond.Wait()
	}
}

// Err returns the error that caused cancellation, if any. A user-initiated
// Cancel yields nil here (spec §7: cancellation is not a failure); a
// function panic yields an error wrapping ErrTaskPanicked.
func (t *Task[P]) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task[P]) setFailure(err error) {
	t.mu.Lock()
	if t.err == nil {
		t.err = err
	}
	t.mu.Unlock()
	t.cancelled.Store(true)
}

func (t *Task[P]) notifyStarted() {
	t.startOnce.Do(func() {
		t.state.Store(int32(Started))
		if t.startCb != nil {
			t.startCb(t.result)
		}
	})
}

func (t *Task[P]) notifyProblem(p Problem) {
	if t.problemCb != nil {
		t.problemCb(t.result, p)
	}
}

func (t *Task[P]) notifyComplete() {
	success := !t.cancelled.Load()

	if t.completeCb != nil {
		t.completeCb(t.result, success)
	}

	t.mu.Lock()
	if success {
		t.state.Store(int32(Completed))
	} else {
		t.state.Store(int32(Cancelled))
	}
	t.cond.Broadcast()
	t.mu.Unlock()
}

// TaskHandle is the caller-facing view of a Task returned by
// ThreadPool.EnqueueTask. Callbacks must be set before the pool can start
// the Task to be observed reliably; setting one after the Task has started
// may race with dispatch and is not guaranteed to fire for already-drained
// Problems.
type TaskHandle[P any] struct {
	task *Task[P]
}

// Wait blocks until the Task completes or is cancelled.
func (h TaskHandle[P]) Wait() { h.task.Wait() }

// Cancel requests cancellation of the Task.
func (h TaskHandle[P]) Cancel() { h.task.Cancel() }

// Completed reports whether the Task has reached a terminal state.
func (h TaskHandle[P]) Completed() bool {
	switch h.task.State() {
	case Completed, Cancelled:
		return true
	}
	return false
}

// Err returns the error behind a non-user cancellation, if any.
func (h TaskHandle[P]) Err() error { return h.task.Err() }

// SetStartCallback registers the Task's Start callback.
func (h TaskHandle[P]) SetStartCallback(cb StartCallback[P]) { h.task.startCb = cb }

// SetProblemCallback registers the Task's per-Problem callback.
func (h TaskHandle[P]) SetProblemCallback(cb ProblemCallback[P]) { h.task.problemCb = cb }

// SetCompleteCallback registers the Task's Complete callback.
func (h TaskHandle[P]) SetCompleteCallback(cb CompleteCallback[P]) { h.task.completeCb = cb }
