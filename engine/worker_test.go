package engine_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chessmind/engine"
	"chessmind/gamestate"
)

func submitPosition(t *testing.T, w *engine.Worker, seq uint64, s *gamestate.State, depth int) {
	t.Helper()
	err := w.Submit(engine.Request{
		Seq:   seq,
		State: s.Copy(),
		Moves: s.LegalMoves(),
		Depth: depth,
	})
	if err != nil {
		t.Fatalf("Submit(seq=%d): %v", seq, err)
	}
}

// submitEventually retries while the worker is still clearing its in-flight
// flag, which happens just after the previous response is handed over.
func submitEventually(t *testing.T, w *engine.Worker, seq uint64, s *gamestate.State, depth int) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		err := w.Submit(engine.Request{
			Seq:   seq,
			State: s.Copy(),
			Moves: s.LegalMoves(),
			Depth: depth,
		})
		if err == nil {
			return
		}
		if !errors.Is(err, engine.ErrSearchInFlight) || time.Now().After(deadline) {
			t.Fatalf("Submit(seq=%d): %v", seq, err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWorkerDeliversMove(t *testing.T) {
	s := gamestate.NewState()
	legal := s.LegalMoves()

	w := engine.NewWorker(2, zerolog.Nop())
	defer w.Close()
	w.Seed(1)

	submitPosition(t, w, 7, s, 2)

	select {
	case resp := <-w.Responses():
		if resp.Seq != 7 {
			t.Fatalf("response seq = %d, want 7", resp.Seq)
		}
		if resp.Err != nil {
			t.Fatalf("response err: %v", resp.Err)
		}
		found := false
		for _, m := range legal {
			if m.Equal(resp.Move) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("worker chose %s, not in the legal set", resp.Move)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for the worker")
	}
}

func TestWorkerRefusesSecondInFlight(t *testing.T) {
	s := gamestate.NewState()

	w := engine.NewWorker(1, zerolog.Nop())
	defer w.Close()

	submitPosition(t, w, 1, s, 1)

	// The request stays in flight until its response is received, whether
	// or not the search itself has finished, so the refusal does not depend
	// on search timing.
	err := w.Submit(engine.Request{Seq: 2, State: s.Copy(), Moves: s.LegalMoves(), Depth: 1})
	if !errors.Is(err, engine.ErrSearchInFlight) {
		t.Fatalf("second submit err = %v, want ErrSearchInFlight", err)
	}

	// Give the depth-1 search ample time to finish; the refusal must hold
	// as long as the response sits undelivered.
	time.Sleep(50 * time.Millisecond)
	err = w.Submit(engine.Request{Seq: 2, State: s.Copy(), Moves: s.LegalMoves(), Depth: 1})
	if !errors.Is(err, engine.ErrSearchInFlight) {
		t.Fatalf("submit with finished search err = %v, want ErrSearchInFlight", err)
	}

	// Once the response is out, the worker accepts again.
	resp := <-w.Responses()
	if resp.Seq != 1 {
		t.Fatalf("response seq = %d, want 1", resp.Seq)
	}
	submitEventually(t, w, 2, s, 1)
	resp = <-w.Responses()
	if resp.Seq != 2 {
		t.Fatalf("response seq = %d, want 2", resp.Seq)
	}
}

func TestWorkerCloseWithUndeliveredResponse(t *testing.T) {
	s := gamestate.NewState()

	w := engine.NewWorker(1, zerolog.Nop())
	submitPosition(t, w, 1, s, 1)

	// Nobody reads Responses; Close must still complete once the search is
	// done, discarding the pending response.
	closed := make(chan struct{})
	go func() {
		w.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(30 * time.Second):
		t.Fatal("Close hung with an undelivered response pending")
	}

	err := w.Submit(engine.Request{Seq: 2, State: s.Copy(), Moves: s.LegalMoves()})
	if !errors.Is(err, engine.ErrWorkerClosed) {
		t.Fatalf("submit after close err = %v, want ErrWorkerClosed", err)
	}
}

func TestWorkerConcurrentSubmitAndClose(t *testing.T) {
	s := gamestate.NewState()
	legal := s.LegalMoves()

	for i := 0; i < 25; i++ {
		w := engine.NewWorker(1, zerolog.Nop())
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(seq uint64) {
				defer wg.Done()
				err := w.Submit(engine.Request{Seq: seq, State: s.Copy(), Moves: legal, Depth: 1})
				if err != nil &&
					!errors.Is(err, engine.ErrSearchInFlight) &&
					!errors.Is(err, engine.ErrWorkerClosed) {
					t.Errorf("submit(seq=%d): %v", seq, err)
				}
			}(uint64(g))
		}
		w.Close()
		w.Close() // second close is a no-op
		wg.Wait()
	}
}

func TestWorkerReportsNoMoves(t *testing.T) {
	s, err := gamestate.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	w := engine.NewWorker(2, zerolog.Nop())
	defer w.Close()

	submitPosition(t, w, 1, s, 2)
	resp := <-w.Responses()
	if !errors.Is(resp.Err, engine.ErrNoMoves) {
		t.Fatalf("response err = %v, want ErrNoMoves", resp.Err)
	}
}

func TestWorkerClosed(t *testing.T) {
	s := gamestate.NewState()

	w := engine.NewWorker(2, zerolog.Nop())
	w.Close()

	err := w.Submit(engine.Request{Seq: 1, State: s.Copy(), Moves: s.LegalMoves()})
	if !errors.Is(err, engine.ErrWorkerClosed) {
		t.Fatalf("submit after close err = %v, want ErrWorkerClosed", err)
	}
}

func TestWorkerStaleResponseDiscardedByConsumer(t *testing.T) {
	// The consumer contract: track the seq of the most recent submit and
	// drop any response tagged with an older one.
	s := gamestate.NewState()

	w := engine.NewWorker(1, zerolog.Nop())
	defer w.Close()

	submitPosition(t, w, 1, s, 1)
	resp := <-w.Responses()

	// The position has moved on; the consumer's current seq is now 2.
	var current uint64 = 2
	if resp.Seq == current {
		t.Fatal("response for seq 1 must not match the advanced seq")
	}

	submitEventually(t, w, 2, s, 1)
	resp = <-w.Responses()
	if resp.Seq != current {
		t.Fatalf("response seq = %d, want %d", resp.Seq, current)
	}
}
