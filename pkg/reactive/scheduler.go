package reactive

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxFlushJobs bounds a single flush. A flush that keeps scheduling new work
// past this limit is an update storm (effects re-triggering each other
// forever) and panics instead of hanging.
const maxFlushJobs = 10000

// scheduler batches deferred effects. Triggering the same effect more than
// once before a flush collapses into a single queue entry; a flush runs each
// entry once, reading state current at flush time. Triggering an effect
// again after its queue entry ran re-queues it, even within the same flush.
type scheduler struct {
	engine *Engine

	// queue holds pending effects in enqueue order.
	queue []*Effect

	// queued deduplicates enqueues between flush points.
	queued map[uint64]bool
}

func newScheduler(e *Engine) *scheduler {
	return &scheduler{
		engine: e,
		queued: make(map[uint64]bool),
	}
}

// enqueue adds an effect to the pending queue unless it is already pending.
// Callers must hold the engine lock.
func (s *scheduler) enqueue(eff *Effect) {
	if s.queued[eff.id] {
		return
	}
	s.queued[eff.id] = true
	s.queue = append(s.queue, eff)
}

// pending reports the number of queued jobs.
func (s *scheduler) pending() int {
	return len(s.queue)
}

// flush runs every pending job in enqueue order, including jobs enqueued
// while the flush is running. A panicking effect body does not stop the
// flush: remaining jobs still run, then the first panic is re-raised to the
// caller. Callers must hold the engine lock.
func (s *scheduler) flush() {
	s.engine.metrics.countFlush()
	start := time.Now()

	var firstPanic any
	jobs := 0
	for len(s.queue) > 0 {
		eff := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.queued, eff.id)

		jobs++
		if jobs > maxFlushJobs {
			panic("weft: flush did not settle after 10000 jobs; effects are re-triggering each other")
		}

		func() {
			defer func() {
				if r := recover(); r != nil && firstPanic == nil {
					firstPanic = r
				}
			}()
			eff.run()
		}()
	}

	s.engine.metrics.observeFlushDuration(time.Since(start))

	if firstPanic != nil {
		panic(firstPanic)
	}
}

// flushTraced wraps flush in an OpenTelemetry span.
func (s *scheduler) flushTraced(tracer trace.Tracer) {
	_, span := tracer.Start(context.Background(), "weft.flush",
		trace.WithAttributes(attribute.Int("weft.pending_jobs", s.pending())))
	defer span.End()
	s.flush()
}
