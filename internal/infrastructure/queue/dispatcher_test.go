package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

type captureRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	fail   bool
	block  chan struct{}
}

func (r *captureRepo) Insert(_ context.Context, e *domain.AuditEvent) error {
	if r.block != nil {
		<-r.block
	}
	if r.fail {
		return errors.New("insert failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *captureRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_DeliversInOrderPerSubject(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := int64(1); i <= 50; i++ {
		d.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: 42, ResourceID: i})
		d.Record(domain.AuditEvent{Action: domain.AuditLoginFailed, Email: "x@example.com", ResourceID: i})
	}
	d.Close()

	got := repo.snapshot()
	require.Len(t, got, 100)

	var last42, lastX int64
	for _, e := range got {
		switch e.Subject() {
		case "42":
			assert.Greater(t, e.ResourceID, last42)
			last42 = e.ResourceID
		case "x@example.com":
			assert.Greater(t, e.ResourceID, lastX)
			lastX = e.ResourceID
		}
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	repo := &captureRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	// One event is held by the worker, channelBuffer more fill the queue; the
	// rest must be dropped rather than block the caller.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: 1})
	}

	close(repo.block)
	d.Close()
	got := len(repo.snapshot())
	assert.LessOrEqual(t, got, channelBuffer+1)
	assert.GreaterOrEqual(t, got, channelBuffer)
}

func TestDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: 1})
	})
	assert.Empty(t, repo.snapshot())
}

func TestDispatcher_InsertFailureDoesNotStopWorker(t *testing.T) {
	repo := &captureRepo{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: 1})
	d.Record(domain.AuditEvent{Action: domain.AuditLogout, UserID: 1})
	d.Close()

	assert.Empty(t, repo.snapshot())
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &captureRepo{}, zerolog.Nop())
	first := d.shardIndex("42")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}
