package usecases

import (
	"context"
	"net/http"
	"sync"

	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/goroutine"
	"supportdesk/internal/shared/logger"
)

type DetailState int

const (
	DetailClosed DetailState = iota
	DetailLoading
	DetailLoaded
	DetailNotFound
	DetailErrored
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not_found"
	case DetailErrored:
		return "errored"
	default:
		return "closed"
	}
}

// DetailSnapshot is what the detail pane shows. Detail is set when Loaded;
// Err when NotFound or Errored. Generation identifies the Open or Close the
// snapshot belongs to.
type DetailSnapshot struct {
	State      DetailState
	TicketID   int64
	Detail     *TicketDetail
	Err        error
	Generation uint64
}

// DetailView drives the ticket detail pane. Only the most recent Open may
// change the state: every Open or Close starts a new generation and cancels
// the load in flight, and a load whose generation is no longer current is
// discarded.
type DetailView struct {
	loader LoadTicketDetailsExecutor
	log    logger.Interface

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snap       DetailSnapshot
	onChange   func(DetailSnapshot)
	tracker    goroutine.Tracker
}

func NewDetailView(loader LoadTicketDetailsExecutor, log logger.Interface) *DetailView {
	return &DetailView{
		loader: loader,
		log:    log.Named("detail_view"),
	}
}

// OnChange sets the callback run after every state change. Open and Close
// must be called from a single goroutine; they run the callback themselves,
// while load results are delivered from the load goroutine. Both happen after
// the lock is released, so a result can arrive after a later Open has already
// reported Loading. Callbacks that apply snapshots asynchronously should drop
// any for which IsCurrent reports false.
func (v *DetailView) OnChange(fn func(DetailSnapshot)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

func (v *DetailView) State() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// IsCurrent reports whether s was produced by the latest Open or Close.
func (v *DetailView) IsCurrent(s DetailSnapshot) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return s.Generation == v.generation
}

// Open moves to Loading(ticketID) and loads the ticket in the background.
func (v *DetailView) Open(ctx context.Context, ticketID int64) {
	loadCtx, cancel := context.WithCancel(ctx)

	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.generation++
	gen := v.generation
	v.cancel = cancel
	v.snap = DetailSnapshot{State: DetailLoading, TicketID: ticketID, Generation: gen}
	snap, fn := v.snap, v.onChange
	v.mu.Unlock()

	// Loading is reported before the load can finish.
	notify(fn, snap)

	v.tracker.Go(v.log, "ticket-detail", func() {
		defer cancel()
		detail, err := v.loader.Execute(loadCtx, ticketID)
		v.finish(gen, ticketID, detail, err)
	})
}

func (v *DetailView) Close() {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.generation++
	v.snap = DetailSnapshot{State: DetailClosed, Generation: v.generation}
	snap, fn := v.snap, v.onChange
	v.mu.Unlock()

	notify(fn, snap)
}

// Wait blocks until every load started so far has returned.
func (v *DetailView) Wait() {
	v.tracker.Wait()
}

func (v *DetailView) finish(gen uint64, ticketID int64, detail *TicketDetail, err error) {
	v.mu.Lock()
	if gen != v.generation || v.snap.TicketID != ticketID {
		v.mu.Unlock()
		v.log.Debugw("discarding stale ticket detail", "ticket_id", ticketID)
		return
	}

	switch {
	case err == nil:
		v.snap = DetailSnapshot{State: DetailLoaded, TicketID: ticketID, Detail: detail, Generation: gen}
	case errors.StatusCode(err) == http.StatusNotFound:
		v.snap = DetailSnapshot{State: DetailNotFound, TicketID: ticketID, Err: err, Generation: gen}
	default:
		v.snap = DetailSnapshot{State: DetailErrored, TicketID: ticketID, Err: err, Generation: gen}
	}
	snap, fn := v.snap, v.onChange
	v.mu.Unlock()

	notify(fn, snap)
}

func notify(fn func(DetailSnapshot), snap DetailSnapshot) {
	if fn != nil {
		fn(snap)
	}
}
