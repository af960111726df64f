package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockService implements Service for testing.
type mockService struct {
	block   chan struct{}
	popErr  error
	created Session
}

func (m *mockService) CreateTracker(ctx context.Context, _ int) (Session, error) {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return Session{}, ctx.Err()
		}
	}
	return m.created, nil
}

func (m *mockService) Pop(ctx context.Context, _ uint16, _ Session) error {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.popErr
}

func waitCompletion(t *testing.T, r *Runner) Completion {
	t.Helper()
	select {
	case c := <-r.Completions():
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no completion")
		return Completion{}
	}
}

func TestRunner_CreateCompletes(t *testing.T) {
	svc := &mockService{created: Session{Instance: "x", Password: "y"}}
	r := NewRunner(svc, time.Second, 4)
	defer r.Close()

	r.CreateTracker(3)
	c := waitCompletion(t, r)

	assert.Equal(t, TaskCreate, c.Kind)
	assert.Equal(t, 3, c.ZoneKey)
	assert.Equal(t, uint64(0), c.Generation)
	assert.Equal(t, svc.created, c.Session)
	assert.NoError(t, c.Err)
}

func TestRunner_PopError(t *testing.T) {
	svc := &mockService{popErr: ErrRejected}
	r := NewRunner(svc, time.Second, 4)
	defer r.Close()

	r.Pop(12, Session{Instance: "x", Password: "y"})
	c := waitCompletion(t, r)

	assert.Equal(t, TaskPop, c.Kind)
	assert.Equal(t, uint16(12), c.TrackerID)
	assert.True(t, errors.Is(c.Err, ErrRejected))
}

func TestRunner_CancelDropsInFlight(t *testing.T) {
	svc := &mockService{block: make(chan struct{})}
	r := NewRunner(svc, time.Minute, 4)

	r.Pop(12, Session{Instance: "x", Password: "y"})
	gen := r.Cancel()
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, uint64(1), r.Generation())

	r.Close()
	select {
	case c := <-r.Completions():
		t.Fatalf("unexpected completion %+v", c)
	default:
	}
}

func TestRunner_NewGenerationAfterCancel(t *testing.T) {
	svc := &mockService{}
	r := NewRunner(svc, time.Second, 4)
	defer r.Close()

	r.Cancel()
	r.Pop(1, Session{Instance: "x", Password: "y"})
	c := waitCompletion(t, r)
	require.NoError(t, c.Err)
	assert.Equal(t, uint64(1), c.Generation)
}
