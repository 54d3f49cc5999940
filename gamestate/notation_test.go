package gamestate_test

import (
	"testing"

	gs "chessmind/gamestate"
)

func TestSquareNames(t *testing.T) {
	cases := []struct {
		row, col int
		name     string
	}{
		{7, 0, "a1"},
		{7, 7, "h1"},
		{0, 0, "a8"},
		{0, 7, "h8"},
		{4, 4, "e4"},
		{6, 4, "e2"},
	}
	for _, c := range cases {
		sq := gs.MakeSquare(c.row, c.col)
		if got := sq.String(); got != c.name {
			t.Errorf("square (%d,%d) = %q, want %q", c.row, c.col, got, c.name)
		}
		parsed, err := gs.ParseSquare(c.name)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", c.name, err)
		} else if parsed != sq {
			t.Errorf("ParseSquare(%q) = %v, want %v", c.name, parsed, sq)
		}
	}
	if _, err := gs.ParseSquare("i1"); err == nil {
		t.Error("ParseSquare accepted file i")
	}
	if _, err := gs.ParseSquare("a9"); err == nil {
		t.Error("ParseSquare accepted rank 9")
	}
}

func TestMoveNotation(t *testing.T) {
	cases := []struct {
		fen  string
		move string
		want string
	}{
		{gs.FENStartPos, "e2e4", "e4"},
		{gs.FENStartPos, "g1f3", "Nf3"},
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5", "exd5"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"8/8/8/2Pp4/8/8/8/4K2k w - d6 0 1", "c5d6", "cxd6 e.p."},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8Q"},
		{"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", "e1e2", "Kxe2"},
		{"4k3/8/8/8/8/8/8/4KR2 w - - 0 1", "f1f8", "Rf8"},
	}
	for _, c := range cases {
		s := mustParse(t, c.fen)
		m, ok := findMove(s.LegalMoves(), c.move)
		if !ok {
			t.Errorf("%s missing from %q", c.move, c.fen)
			continue
		}
		if got := m.Notation(); got != c.want {
			t.Errorf("notation of %s = %q, want %q", c.move, got, c.want)
		}
	}
}

func TestMoveEqualIgnoresPayload(t *testing.T) {
	s := gs.NewState()
	moves := s.LegalMoves()
	a, _ := findMove(moves, "e2e4")
	b, _ := findMove(moves, "e2e4")
	if !a.Equal(b) {
		t.Fatal("identical moves compare unequal")
	}
	c, _ := findMove(moves, "d2d4")
	if a.Equal(c) {
		t.Fatal("distinct moves compare equal")
	}
}
