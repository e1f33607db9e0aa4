package usecases

import (
	"context"
	"sync"

	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/shared/goroutine"
	"supportdesk/internal/shared/logger"
)

type BoardEventKind int

const (
	// TicketsPublished means a new list replaced the previous one.
	TicketsPublished BoardEventKind = iota + 1
	// TicketEnriched means one ticket of the current list gained requester data.
	TicketEnriched
)

type BoardEvent struct {
	Kind       BoardEventKind
	Generation uint64
	TicketID   int64
}

// EnrichFunc runs off the publishing goroutine for one ticket and returns the
// change to apply to it. A nil change is ignored.
type EnrichFunc func(ctx context.Context, t helpdesk.Ticket) func(*helpdesk.Ticket)

// TicketBoard is the published ticket list. Each Publish starts a new
// generation; enrichment started for an older generation is dropped when it
// completes. Subscribers are told about every publish and every applied
// enrichment so they can re-render.
type TicketBoard struct {
	log logger.Interface

	mu          sync.RWMutex
	generation  uint64
	tickets     []*helpdesk.Ticket
	tracker     *goroutine.Tracker
	subscribers map[int]func(BoardEvent)
	nextSubID   int
}

func NewTicketBoard(log logger.Interface) *TicketBoard {
	return &TicketBoard{
		log:         log.Named("ticket_board"),
		tracker:     &goroutine.Tracker{},
		subscribers: make(map[int]func(BoardEvent)),
	}
}

// Subscribe registers fn for board events and returns a func that removes it.
// fn is called from whichever goroutine caused the event and must not block
// for long.
func (b *TicketBoard) Subscribe(fn func(BoardEvent)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextSubID
	b.nextSubID++
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

// Publish replaces the list and returns the new generation. When enrich is
// non-nil one job per ticket is started and Publish returns without waiting
// for any of them.
func (b *TicketBoard) Publish(ctx context.Context, tickets []helpdesk.Ticket, enrich EnrichFunc) uint64 {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.tickets = make([]*helpdesk.Ticket, len(tickets))
	for i := range tickets {
		b.tickets[i] = tickets[i].Clone()
	}
	b.tracker = &goroutine.Tracker{}
	tracker := b.tracker

	if enrich != nil {
		for i, t := range tickets {
			idx, job := i, *t.Clone()
			tracker.Go(b.log, "ticket-enrichment", func() {
				change := enrich(ctx, job)
				if change != nil {
					b.apply(gen, idx, change)
				}
			})
		}
	}
	b.mu.Unlock()

	b.log.Debugw("ticket list published", "generation", gen, "count", len(tickets))
	b.emit(BoardEvent{Kind: TicketsPublished, Generation: gen})
	return gen
}

func (b *TicketBoard) apply(gen uint64, idx int, change func(*helpdesk.Ticket)) {
	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		b.log.Debugw("dropping enrichment for superseded list", "generation", gen)
		return
	}
	t := b.tickets[idx]
	change(t)
	id := t.ID
	b.mu.Unlock()

	b.emit(BoardEvent{Kind: TicketEnriched, Generation: gen, TicketID: id})
}

func (b *TicketBoard) emit(ev BoardEvent) {
	b.mu.RLock()
	subs := make([]func(BoardEvent), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Snapshot returns the current generation and a copy of its tickets.
func (b *TicketBoard) Snapshot() (uint64, []helpdesk.Ticket) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]helpdesk.Ticket, len(b.tickets))
	for i, t := range b.tickets {
		out[i] = *t.Clone()
	}
	return b.generation, out
}

func (b *TicketBoard) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

// Wait blocks until enrichment started for the current generation is done.
func (b *TicketBoard) Wait() {
	b.mu.RLock()
	tracker := b.tracker
	b.mu.RUnlock()
	tracker.Wait()
}
