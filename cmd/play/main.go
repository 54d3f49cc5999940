package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chessmind/engine"
	"chessmind/gamestate"
	"chessmind/internal/logx"
)

func main() {
	fen := flag.String("fen", gamestate.FENStartPos, "starting position in FEN")
	depth := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	white := flag.Bool("white", true, "human plays White (false: human plays Black)")
	seed := flag.Int64("seed", 0, "tie-break seed (0: time-seeded)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logx.New(*verbose)

	state, err := gamestate.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad FEN")
	}

	humanSide := gamestate.White
	if !*white {
		humanSide = gamestate.Black
	}

	worker := engine.NewWorker(*depth, log)
	defer worker.Close()
	if *seed != 0 {
		worker.Seed(*seed)
	}

	in := bufio.NewScanner(os.Stdin)
	var seq uint64

	for {
		legal := state.LegalMoves()
		fmt.Println(state)

		if state.InCheckmate() {
			fmt.Printf("checkmate, %s wins\n", state.SideToMove().Other())
			return
		}
		if state.InStalemate() {
			fmt.Println("stalemate")
			return
		}

		if state.SideToMove() == humanSide {
			m, quit := humanMove(in, state, legal)
			if quit {
				return
			}
			state.MakeMove(m)
			continue
		}

		seq++
		req := engine.Request{
			Seq:   seq,
			State: state.Copy(),
			Moves: append([]gamestate.Move(nil), legal...),
			Depth: *depth,
		}
		for {
			err := worker.Submit(req)
			if err == nil {
				break
			}
			if errors.Is(err, engine.ErrSearchInFlight) {
				// The worker clears its in-flight flag just after the
				// previous response is handed over; yield and retry.
				time.Sleep(time.Millisecond)
				continue
			}
			log.Fatal().Err(err).Msg("submit failed")
		}

		// This loop submits one request per engine turn and waits for it,
		// so the next response always matches the seq just issued; a
		// mismatch means the one-in-flight contract was broken.
		resp := <-worker.Responses()
		if resp.Seq != seq {
			log.Fatal().Uint64("got", resp.Seq).Uint64("want", seq).Msg("response out of sequence")
		}
		if resp.Err != nil {
			log.Fatal().Err(resp.Err).Msg("search failed")
		}

		m := resp.Move
		if !containsMove(legal, m) {
			// The search ran on a copy; if its answer no longer applies
			// here, fall back to the first legal move rather than corrupt
			// the game.
			log.Warn().Str("move", m.String()).Msg("search move not legal here, substituting")
			m = legal[0]
		}
		fmt.Printf("engine plays %s\n", m.Notation())
		state.MakeMove(m)
	}
}

func containsMove(moves []gamestate.Move, m gamestate.Move) bool {
	for _, lm := range moves {
		if lm.Equal(m) {
			return true
		}
	}
	return false
}

// humanMove prompts until it gets a legal move in coordinate form (e2e4),
// or a command. "undo" takes back the last full move pair; "moves" lists
// the legal moves; "quit" ends the game.
func humanMove(in *bufio.Scanner, state *gamestate.State, legal []gamestate.Move) (gamestate.Move, bool) {
	for {
		fmt.Printf("%s> ", state.SideToMove())
		if !in.Scan() {
			return gamestate.Move{}, true
		}
		line := strings.TrimSpace(strings.ToLower(in.Text()))
		switch line {
		case "":
			continue
		case "quit", "exit":
			return gamestate.Move{}, true
		case "undo":
			// Take back the engine reply and the human move before it.
			state.UndoMove()
			state.UndoMove()
			fmt.Println(state)
			legal = state.LegalMoves()
			continue
		case "moves":
			for _, m := range legal {
				fmt.Printf("%s ", m.String())
			}
			fmt.Println()
			continue
		case "fen":
			fmt.Println(state.ToFEN())
			continue
		}

		if len(line) < 4 {
			fmt.Println("enter a move like e2e4, or: moves, undo, fen, quit")
			continue
		}
		from, err1 := gamestate.ParseSquare(line[:2])
		to, err2 := gamestate.ParseSquare(line[2:4])
		if err1 != nil || err2 != nil {
			fmt.Println("enter a move like e2e4, or: moves, undo, fen, quit")
			continue
		}

		found := false
		var chosen gamestate.Move
		for _, m := range legal {
			if m.From == from && m.To == to {
				chosen, found = m, true
				break
			}
		}
		if !found {
			fmt.Printf("%s is not legal here\n", line[:4])
			continue
		}
		return chosen, false
	}
}
