package usecase

import (
	"context"

	"jobboard/internal/domain/event"
)

// EventEmitter delivers an event to the Notifier, wherever it runs.
type EventEmitter interface {
	Emit(ctx context.Context, ev event.Event) error
}

// InProcessEmitter hands events straight to a Notifier in the same process.
type InProcessEmitter struct {
	notifier Notifier
}

func NewInProcessEmitter(n Notifier) *InProcessEmitter {
	return &InProcessEmitter{notifier: n}
}

func (e *InProcessEmitter) Emit(ctx context.Context, ev event.Event) error {
	return e.notifier.HandleEvent(ctx, ev)
}

// EmitterFunc adapts a plain function to EventEmitter.
type EmitterFunc func(ctx context.Context, ev event.Event) error

func (f EmitterFunc) Emit(ctx context.Context, ev event.Event) error {
	return f(ctx, ev)
}
