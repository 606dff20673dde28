package scoring

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ReporterOptions configure a Reporter.
type ReporterOptions struct {
	QueueSize int           // Pending reports kept before the oldest is dropped
	Timeout   time.Duration // Per-report delivery deadline
	Logger    *log.Logger
}

// DefaultReporterOptions returns the options used when nothing was configured.
func DefaultReporterOptions() ReporterOptions {
	return ReporterOptions{
		QueueSize: 32,
		Timeout:   2 * time.Second,
	}
}

// Reporter delivers reports to a Sink from a single background goroutine.
// Report never blocks the caller.
type Reporter struct {
	sink    Sink
	timeout time.Duration
	size    int
	logger  *log.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Report
	closed bool

	done    chan struct{}
	dropped atomic.Uint64
}

// NewReporter starts a reporter delivering to sink.
func NewReporter(sink Sink, opts ReporterOptions) *Reporter {
	def := DefaultReporterOptions()
	if opts.QueueSize <= 0 {
		opts.QueueSize = def.QueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if sink == nil {
		sink = Discard
	}

	r := &Reporter{
		sink:    sink,
		timeout: opts.Timeout,
		size:    opts.QueueSize,
		logger:  opts.Logger.WithPrefix("scoring"),
		done:    make(chan struct{}),
	}
	r.cond = sync.NewCond(&r.mu)

	go r.run()
	return r
}

// Report queues rep for delivery. A pending report for the same session and
// game is replaced, since only the latest best matters. When the queue is
// full the oldest pending report is dropped. Report returns false once the
// reporter is closed.
func (r *Reporter) Report(rep Report) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	for i := range r.queue {
		if r.queue[i].SessionID == rep.SessionID && r.queue[i].GameID == rep.GameID {
			r.queue[i] = rep
			return true
		}
	}

	if len(r.queue) >= r.size {
		old := r.queue[0]
		r.queue = r.queue[1:]
		r.dropped.Add(1)
		r.logger.Warn("score queue full, dropping report",
			"user", old.UserID, "game", old.GameID, "score", old.Score)
	}
	r.queue = append(r.queue, rep)
	r.cond.Signal()
	return true
}

// Dropped returns how many reports were discarded because the queue was full.
func (r *Reporter) Dropped() uint64 {
	return r.dropped.Load()
}

// Close stops accepting reports, delivers everything still queued and waits
// for the worker to exit.
func (r *Reporter) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return nil
	}
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()

	<-r.done
	return nil
}

func (r *Reporter) run() {
	defer close(r.done)

	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.closed {
			r.cond.Wait()
		}
		if len(r.queue) == 0 {
			r.mu.Unlock()
			return
		}
		rep := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		r.deliver(rep)
	}
}

func (r *Reporter) deliver(rep Report) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.sink.ReportScore(ctx, rep); err != nil {
		r.logger.Error("could not save score",
			"user", rep.UserID, "game", rep.GameID, "score", rep.Score, "error", err)
		return
	}
	r.logger.Debug("score saved", "user", rep.UserID, "game", rep.GameID, "score", rep.Score)
}
