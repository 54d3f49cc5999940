package gamestate_test

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	gs "chessmind/gamestate"
)

// The bitboard engine serves as an independent oracle for move generation.
// Positions are chosen so that no promotion occurs within the compared
// depth: promotions always queen here, while the oracle emits all four
// promotion choices.

var crosscheckFENs = []string{
	gs.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"8/8/8/2Pp4/8/8/8/4K2k w - d6 0 1",
	"8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1",
	"4k3/8/5N2/8/8/8/8/4RK2 b - - 0 1",
	"4k3/8/8/2Pp4/4K3/8/8/8 w - d6 0 1",
	"rnbqkbnr/pppp1ppp/8/4p2Q/4P3/8/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
}

func moveStrings(moves []gs.Move) []string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	sort.Strings(strs)
	return strs
}

func oracleMoveStrings(moves []dragontoothmg.Move) []string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	sort.Strings(strs)
	return strs
}

func TestMoveSetMatchesOracle(t *testing.T) {
	for _, fen := range crosscheckFENs {
		s := mustParse(t, fen)
		board := dragontoothmg.ParseFen(fen)

		got := moveStrings(s.LegalMoves())
		want := oracleMoveStrings(board.GenerateLegalMoves())
		if len(got) != len(want) {
			t.Errorf("%q: %d moves, oracle has %d\n got: %v\nwant: %v", fen, len(got), len(want), got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%q: move %q differs from oracle %q", fen, got[i], want[i])
			}
		}
	}
}

func oraclePerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth <= 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += oraclePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerftMatchesOracle(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
	}{
		{gs.FENStartPos, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 3},
	}
	for _, c := range cases {
		s := mustParse(t, c.fen)
		board := dragontoothmg.ParseFen(c.fen)
		got := gs.Perft(s, c.depth)
		want := oraclePerft(&board, c.depth)
		if got != want {
			t.Errorf("%q depth %d: got %d nodes, oracle has %d", c.fen, c.depth, got, want)
		}
	}
}
