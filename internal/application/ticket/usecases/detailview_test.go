package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

func TestDetailView_OpenLoads(t *testing.T) {
	_, gw := newDetailBackend(t)
	loader := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())
	view := NewDetailView(loader, logger.NewNopLogger())

	var mu sync.Mutex
	var states []DetailState
	view.OnChange(func(s DetailSnapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	view.Open(context.Background(), 42)
	view.Wait()

	snap := view.State()
	assert.Equal(t, DetailLoaded, snap.State)
	assert.Equal(t, int64(42), snap.TicketID)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "Billing question", snap.Detail.Ticket.Subject)
	mu.Lock()
	assert.Equal(t, []DetailState{DetailLoading, DetailLoaded}, states)
	mu.Unlock()
}

func TestDetailView_NotFound(t *testing.T) {
	_, gw := newDetailBackend(t)
	loader := NewLoadTicketDetailsUseCase(gw, &mockNotifier{}, logger.NewNopLogger())
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 999)
	view.Wait()

	snap := view.State()
	assert.Equal(t, DetailNotFound, snap.State)
	assert.Equal(t, int64(999), snap.TicketID)
	assert.Nil(t, snap.Detail)
	assert.Error(t, snap.Err)
}

func TestDetailView_Errored(t *testing.T) {
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			return nil, errors.NewTransportError("connection refused")
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 1)
	view.Wait()

	assert.Equal(t, DetailErrored, view.State().State)
}

func TestDetailView_StaleResponseIsDiscarded(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			if id == 1 {
				close(firstStarted)
				<-releaseFirst
				// Ignores cancellation and answers late anyway.
				return &TicketDetail{Ticket: helpdesk.Ticket{ID: 1, Subject: "first"}}, nil
			}
			return &TicketDetail{Ticket: helpdesk.Ticket{ID: 2, Subject: "second"}}, nil
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 1)
	<-firstStarted
	view.Open(context.Background(), 2)
	close(releaseFirst)
	view.Wait()

	snap := view.State()
	assert.Equal(t, DetailLoaded, snap.State)
	assert.Equal(t, int64(2), snap.TicketID)
	assert.Equal(t, "second", snap.Detail.Ticket.Subject)
}

func TestDetailView_OpenCancelsPreviousLoad(t *testing.T) {
	cancelled := make(chan struct{})
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			if id == 1 {
				<-ctx.Done()
				close(cancelled)
				return nil, ctx.Err()
			}
			return &TicketDetail{Ticket: helpdesk.Ticket{ID: id}}, nil
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 1)
	view.Open(context.Background(), 2)
	<-cancelled
	view.Wait()

	assert.Equal(t, DetailLoaded, view.State().State)
	assert.Equal(t, int64(2), view.State().TicketID)
}

func TestDetailView_CloseWhileLoading(t *testing.T) {
	release := make(chan struct{})
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			<-release
			return &TicketDetail{Ticket: helpdesk.Ticket{ID: id}}, nil
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 7)
	assert.Equal(t, DetailLoading, view.State().State)
	view.Close()
	close(release)
	view.Wait()

	snap := view.State()
	assert.Equal(t, DetailClosed, snap.State)
	assert.Nil(t, snap.Detail)
}

func TestDetailView_ReopenSameTicket(t *testing.T) {
	release := make(chan struct{})
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			<-release
			subject := "fresh"
			if ctx.Err() != nil {
				subject = "stale"
			}
			return &TicketDetail{Ticket: helpdesk.Ticket{ID: id, Subject: subject}}, nil
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())

	view.Open(context.Background(), 3)
	view.Close()
	view.Open(context.Background(), 3)
	close(release)
	view.Wait()

	assert.Equal(t, DetailLoaded, view.State().State)
	assert.Equal(t, "fresh", view.State().Detail.Ticket.Subject)
}

func TestDetailView_ResultOvertakenByLaterOpenIsNotCurrent(t *testing.T) {
	loader := &mockDetailLoader{
		ExecuteFunc: func(ctx context.Context, id int64) (*TicketDetail, error) {
			return &TicketDetail{Ticket: helpdesk.Ticket{ID: id}}, nil
		},
	}
	view := NewDetailView(loader, logger.NewNopLogger())
	delivered := make(chan DetailSnapshot, 8)
	view.OnChange(func(s DetailSnapshot) { delivered <- s })

	view.Open(context.Background(), 1)
	view.Wait()
	require.Equal(t, DetailLoading, (<-delivered).State)
	first := <-delivered
	require.Equal(t, DetailLoaded, first.State)
	assert.True(t, view.IsCurrent(first))

	// The first result is still being applied when the next Open starts.
	view.Open(context.Background(), 2)
	assert.False(t, view.IsCurrent(first))

	view.Wait()
	loading := <-delivered
	second := <-delivered
	assert.Equal(t, DetailLoading, loading.State)
	assert.Equal(t, DetailLoaded, second.State)
	assert.Equal(t, int64(2), second.TicketID)
	assert.Greater(t, second.Generation, first.Generation)
	assert.Equal(t, loading.Generation, second.Generation)
	assert.True(t, view.IsCurrent(second))

	view.Close()
	assert.False(t, view.IsCurrent(second))
	assert.True(t, view.IsCurrent(<-delivered))
}
