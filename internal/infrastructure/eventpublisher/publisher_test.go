package eventpublisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avelora/fincore/internal/domain"
	"github.com/avelora/fincore/internal/usecase/mocks"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() []*domain.OutboxEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), p.events...)
}

func TestEventPublisher_ProcessEvents(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	publisher := &capturingPublisher{}

	event := &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateType: "transaction",
		AggregateID:   "txn-1",
		EventType:     domain.EventTypeTransactionCompleted,
		Payload:       map[string]any{"transaction_id": "txn-1"},
	}
	if err := outbox.Create(context.Background(), nil, event); err != nil {
		t.Fatalf("seed outbox: %v", err)
	}

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  publisher,
		Logger:     zerolog.Nop(),
	})

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents: %v", err)
	}

	got := publisher.published()
	if len(got) != 1 || got[0].ID != "evt-1" {
		t.Fatalf("expected evt-1 to be published, got %+v", got)
	}

	remaining, err := outbox.GetUnpublished(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetUnpublished: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no unpublished events, got %d", len(remaining))
	}
}

func TestEventPublisher_PublishFailureKeepsEventUnpublished(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	publisher := &capturingPublisher{err: errors.New("broker down")}

	event := &domain.OutboxEvent{ID: "evt-1", EventType: domain.EventTypeTransactionCompleted}
	if err := outbox.Create(context.Background(), nil, event); err != nil {
		t.Fatalf("seed outbox: %v", err)
	}

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  publisher,
		Logger:     zerolog.Nop(),
	})

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents: %v", err)
	}

	remaining, err := outbox.GetUnpublished(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetUnpublished: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected event to stay unpublished, got %d remaining", len(remaining))
	}
}

func TestEventPublisher_RetryWrapsFetch(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()
	var fetches int

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  &capturingPublisher{},
		Retry: func(ctx context.Context, operation func() error) error {
			fetches++
			return operation()
		},
		Logger: zerolog.Nop(),
	})

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected retry hook to wrap the fetch, got %d calls", fetches)
	}
}

func TestEventPublisher_StartStopsOnContextCancel(t *testing.T) {
	outbox := mocks.NewMockOutboxRepository()

	ep := NewEventPublisher(Config{
		OutboxRepo: outbox,
		Publisher:  &capturingPublisher{},
		Logger:     zerolog.Nop(),
		Interval:   10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ep.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after context cancellation")
	}
}
