package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// invoker delivers a typed event to a registered handler.
type invoker func(ctx context.Context, event interface{})

// Registry maps event names to handlers and runs them.
//
// Each event name has at most one handler; registering a second handler
// for the same name replaces the first. Handlers are invoked on their own
// goroutines, and a panicking handler never affects the caller.
type Registry struct {
	logger twelf.Logger
	tracer opentracing.Tracer

	mutex    sync.RWMutex
	handlers map[string]invoker
	hook     guilded.ErrorHandler

	wg sync.WaitGroup
}

// NewRegistry returns an empty handler registry.
func NewRegistry(logger twelf.Logger, tracer opentracing.Tracer) *Registry {
	return &Registry{
		logger:   logger,
		tracer:   tracer,
		handlers: map[string]invoker{},
	}
}

// Register installs handler for the named event, replacing any existing
// handler. It returns a guilded.ConfigurationError if handler is not the
// handler type matching the event name.
func (r *Registry) Register(event string, handler interface{}) error {
	name, inv := normalize(handler)

	if inv == nil {
		return guilded.ConfigurationError{
			Message: fmt.Sprintf("handler for '%s' event has unsupported type %T", event, handler),
		}
	}

	if name != event {
		return guilded.ConfigurationError{
			Message: fmt.Sprintf("handler for '%s' event has the signature of a '%s' handler", event, name),
		}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.handlers[event] = inv
	return nil
}

// SetErrorHook installs the hook invoked when a handler panics. Without a
// hook, panics are only logged.
func (r *Registry) SetErrorHook(hook guilded.ErrorHandler) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.hook = hook
}

// Dispatch delivers event to the handler registered for name, if there is
// one. The handler runs on its own goroutine; Dispatch never blocks on it.
func (r *Registry) Dispatch(ctx context.Context, name string, event interface{}) {
	r.mutex.RLock()
	inv := r.handlers[name]
	hook := r.hook
	r.mutex.RUnlock()

	if inv == nil {
		return
	}

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		span := r.tracer.StartSpan("event.dispatch")
		span.SetTag("event", name)
		defer span.Finish()

		defer func() {
			if reason := recover(); reason != nil {
				ext.Error.Set(span, true)

				err := guilded.HandlerError{Event: name, Reason: reason}
				logHandlerPanic(r.logger, err)

				if hook != nil {
					invokeHook(r.logger, hook, name, err)
				}
			}
		}()

		inv(ctx, event)
	}()
}

// Wait blocks until every in-flight handler has returned, or the grace
// period has elapsed.
func (r *Registry) Wait(grace time.Duration) {
	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		logHandlersAbandoned(r.logger, grace)
	}
}

// invokeHook calls the error hook, discarding any panic it raises. The
// hook is user code and must not be able to stop dispatch.
func invokeHook(logger twelf.Logger, hook guilded.ErrorHandler, event string, err error) {
	defer func() {
		if reason := recover(); reason != nil {
			logHookPanic(logger, reason)
		}
	}()

	hook(event, err)
}
