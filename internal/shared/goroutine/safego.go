// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"supportdesk/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverAndLog(log, name)
		fn()
	}()
}

// Tracker launches goroutines like SafeGo and remembers how many are still
// running. The launcher never blocks; Wait is for observers only.
type Tracker struct {
	wg sync.WaitGroup
}

func (t *Tracker) Go(log logger.Interface, name string, fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer recoverAndLog(log, name)
		fn()
	}()
}

// Wait blocks until every goroutine started through t has returned.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func recoverAndLog(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
