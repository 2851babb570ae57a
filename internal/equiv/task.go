package equiv

import (
	"context"
	"fmt"
	"time"
)

type outcome struct {
	equivalent bool
	report     Report
	err        error
}

// runBounded executes fn as a cancellable unit of work with a hard deadline.
// The algebra engine does not yield voluntarily, so the unit runs on its own
// goroutine while the caller waits on the deadline; on expiry the context is
// cancelled, the result is discarded whenever it eventually arrives, and the
// caller gets timedOut=true immediately. Panics inside the unit surface as
// errors rather than taking down the batch.
func runBounded(timeout time.Duration, fn func(ctx context.Context) (bool, Report, error)) (bool, Report, error, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("equivalence check panicked: %v", r)}
			}
		}()
		equivalent, report, err := fn(ctx)
		ch <- outcome{equivalent: equivalent, report: report, err: err}
	}()

	select {
	case out := <-ch:
		if ctx.Err() != nil {
			return false, Report{}, nil, true
		}
		return out.equivalent, out.report, out.err, false
	case <-ctx.Done():
		return false, Report{}, nil, true
	}
}
