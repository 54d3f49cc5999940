package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chessmind/gamestate"
)

var (
	// ErrSearchInFlight is returned by Submit while a previous request has
	// not had its response received yet.
	ErrSearchInFlight = errors.New("engine: search already in flight")
	// ErrWorkerClosed is returned by Submit after Close.
	ErrWorkerClosed = errors.New("engine: worker closed")
)

// Request asks the worker for the best move in a position. State must be a
// private copy (see gamestate.State.Copy); the worker mutates it during the
// search. Moves is the legal move set for that position. Seq is an opaque
// tag echoed back in the Response so the consumer can discard results that
// arrive after the position has moved on.
type Request struct {
	Seq   uint64
	State *gamestate.State
	Moves []gamestate.Move
	Depth int
}

// Response carries the selected move, or the search error, for the request
// with the matching Seq.
type Response struct {
	Seq  uint64
	Move gamestate.Move
	Err  error
}

// Worker runs searches on a single background goroutine. At most one
// request is in flight at a time, where in flight spans from a successful
// Submit until the matching Response is received from Responses; Submit
// refuses a second request anywhere in that window. The caller owns the
// authoritative game state; the worker only ever sees copies.
type Worker struct {
	search *Search
	log    zerolog.Logger

	requests  chan Request
	responses chan Response
	quit      chan struct{}
	done      chan struct{}

	mu     sync.Mutex
	busy   bool
	closed bool
}

// NewWorker starts the search goroutine. Depth <= 0 selects DefaultDepth.
func NewWorker(depth int, log zerolog.Logger) *Worker {
	w := &Worker{
		search:    NewSearch(depth),
		log:       log,
		requests:  make(chan Request),
		responses: make(chan Response),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

// Seed pins the tie-break randomness of the underlying search. Call before
// the first Submit.
func (w *Worker) Seed(seed int64) { w.search.Seed(seed) }

// Responses delivers one Response per accepted Submit, in order. The
// channel is unbuffered: a response stays pending, and the worker stays in
// flight, until the consumer receives it.
func (w *Worker) Responses() <-chan Response { return w.responses }

// Submit hands a request to the worker. It returns ErrSearchInFlight while
// the previous request's response has not been received, and
// ErrWorkerClosed after Close.
func (w *Worker) Submit(req Request) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWorkerClosed
	}
	if w.busy {
		w.mu.Unlock()
		return ErrSearchInFlight
	}
	w.busy = true
	w.mu.Unlock()

	select {
	case w.requests <- req:
		return nil
	case <-w.quit:
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
		return ErrWorkerClosed
	}
}

// Close shuts the worker down and waits for the goroutine to exit. A
// search in flight is finished first; its response is discarded if nobody
// has received it. Close always returns, even with a response pending.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	// The request channel is never closed; the goroutine and any blocked
	// Submit observe quit instead, so there is no send-on-closed race.
	close(w.quit)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for {
		var req Request
		select {
		case req = <-w.requests:
		case <-w.quit:
			return
		}

		depth := req.Depth
		if depth <= 0 {
			depth = w.search.Depth
		}
		w.search.Depth = depth

		start := time.Now()
		move, err := w.search.FindBestMove(req.State, req.Moves)
		elapsed := time.Since(start)

		if err != nil {
			w.log.Debug().Uint64("seq", req.Seq).Err(err).Msg("search failed")
		} else {
			w.log.Debug().
				Uint64("seq", req.Seq).
				Int("depth", depth).
				Uint64("nodes", w.search.Nodes()).
				Dur("elapsed", elapsed).
				Str("move", move.String()).
				Msg("search finished")
		}

		select {
		case w.responses <- Response{Seq: req.Seq, Move: move, Err: err}:
		case <-w.quit:
			return
		}
		// The in-flight flag clears only after the consumer has taken the
		// response, so Submit's refusal window is not a matter of search
		// timing.
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}
}
