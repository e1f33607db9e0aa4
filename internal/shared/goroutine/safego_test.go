package goroutine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"supportdesk/internal/shared/logger"
)

type recordingLogger struct {
	logger.Interface
	mu     sync.Mutex
	errors []string
}

func (r *recordingLogger) Errorw(msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func TestTracker_WaitsForAll(t *testing.T) {
	var tr Tracker
	var n atomic.Int32

	for i := 0; i < 5; i++ {
		tr.Go(logger.NewNopLogger(), "count", func() { n.Add(1) })
	}
	tr.Wait()

	assert.Equal(t, int32(5), n.Load())
}

func TestTracker_RecoversPanic(t *testing.T) {
	var tr Tracker
	log := &recordingLogger{Interface: logger.NewNopLogger()}

	tr.Go(log, "boom", func() { panic("contact lookup exploded") })
	tr.Wait()

	assert.Equal(t, []string{"goroutine panicked"}, log.errors)
}

func TestSafeGo_Runs(t *testing.T) {
	done := make(chan struct{})
	SafeGo(logger.NewNopLogger(), "close", func() { close(done) })
	<-done
}
