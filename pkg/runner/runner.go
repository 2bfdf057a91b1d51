package runner

import (
	"context"
	"errors"
	"time"

	"k8s.io/klog/v2"
)

// ErrTimeout is returned when Runner's Run method fails due to a timeout event.
var ErrTimeout = errors.New("runner received timeout")

// Runnable is the interface that wraps the basic Run method.
//
// Run should be implemented by any task intended to be executed by the Runner.
// The task should return promptly once ctx is done.
type Runnable interface {
	Run(ctx context.Context) error
}

// The RunnableFunc type is an adapter to allow the use of ordinary functions as Runnable tasks.
// If f is a function with the appropriate signature, RunnableFunc(f) is a Runnable that calls f.
type RunnableFunc func(ctx context.Context) error

// Run calls f(ctx)
func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Runner is the interface that wraps the basic Run method.
//
// Run executes submitted Runnable tasks.
type Runner interface {
	Run(ctx context.Context, task Runnable) error
}

// New constructs a new ready-to-use Runner for running a Runnable task.
func New() Runner {
	return &runner{}
}

// NewWithTimeout constructs a new ready-to-use Runner with the specified timeout for running a Runnable task.
// A zero or negative duration means no timeout.
func NewWithTimeout(d time.Duration) Runner {
	return &runner{
		timeoutDuration: d,
	}
}

type runner struct {
	timeoutDuration time.Duration
}

// Run runs the specified task and waits for it to complete, for ctx to be
// done, or for the timeout to elapse, whichever happens first. The context
// passed to the task is cancelled before Run returns.
func (r *runner) Run(ctx context.Context, task Runnable) error {
	var cancel context.CancelFunc
	if r.timeoutDuration > 0 {
		klog.V(3).Infof("Running task with timeout: %v", r.timeoutDuration)
		ctx, cancel = context.WithTimeout(ctx, r.timeoutDuration)
	} else {
		klog.V(3).Info("Running task and waiting for completion")
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Buffered so that the task goroutine never blocks after Run returned.
	complete := make(chan error, 1)
	go func() {
		complete <- task.Run(ctx)
	}()

	select {
	// Signaled when processing is done.
	case err := <-complete:
		if err != nil && ctx.Err() != nil {
			// The task gave up because its context is done.
			return contextErr(ctx)
		}
		klog.V(3).Infof("Stopping runner on task completion with error: %v", err)
		return err
	// Signaled when we run out of time or the caller gives up.
	case <-ctx.Done():
		return contextErr(ctx)
	}
}

func contextErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		klog.V(3).Info("Stopping runner on timeout")
		return ErrTimeout
	}
	klog.V(3).Info("Stopping runner on cancellation")
	return ctx.Err()
}
