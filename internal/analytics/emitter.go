// Package analytics is the fire-and-forget event side-channel. Emitting
// an event never blocks or fails the interaction that produced it: if
// the sink cannot keep up, events are dropped and counted.
package analytics

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/showcasehub/gallery/internal/logger"
)

// Event names emitted by the gallery.
const (
	EventCardClick    = "card_click"
	EventDeepLinkOpen = "deep_link_open"
)

// Event is a named analytics event with a structured payload.
type Event struct {
	Name   string
	Fields map[string]string
}

// Emitter accepts events without blocking the caller.
type Emitter interface {
	Emit(ev Event)
}

// LogEmitter drains a buffered channel into the structured logger from
// a single goroutine, so a burst of card clicks never touches request
// latency.
type LogEmitter struct {
	log     logger.Logger
	ch      chan Event
	done    chan struct{}
	dropped int64
	mu      sync.Mutex
	closed  bool
}

const defaultBuffer = 256

// NewLogEmitter starts the drain goroutine. bufferSize <= 0 selects the
// default.
func NewLogEmitter(log logger.Logger, bufferSize int) *LogEmitter {
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	e := &LogEmitter{
		log:  log,
		ch:   make(chan Event, bufferSize),
		done: make(chan struct{}),
	}
	go e.drain()
	return e
}

// Emit enqueues the event, dropping it when the buffer is full.
func (e *LogEmitter) Emit(ev Event) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	select {
	case e.ch <- ev:
	default:
		e.dropped++
	}
	e.mu.Unlock()
}

// Close stops accepting events and flushes the buffer.
func (e *LogEmitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	dropped := e.dropped
	close(e.ch)
	e.mu.Unlock()

	<-e.done
	if dropped > 0 {
		e.log.Warn("analytics events dropped",
			logger.Int64("count", dropped))
	}
}

func (e *LogEmitter) drain() {
	defer close(e.done)
	for ev := range e.ch {
		fields := make([]zap.Field, 0, len(ev.Fields)+1)
		fields = append(fields, logger.String("event", ev.Name))
		keys := make([]string, 0, len(ev.Fields))
		for k := range ev.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, logger.String(k, ev.Fields[k]))
		}
		e.log.Info("analytics_event", fields...)
	}
}
