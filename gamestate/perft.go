package gamestate

// Perft counts the leaf nodes of the legal move tree to the given depth,
// exercising the full MakeMove/UndoMove round trip at every interior node.
func Perft(s *State, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := s.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		s.MakeMove(m)
		nodes += Perft(s, depth-1)
		s.UndoMove()
	}
	return nodes
}

// PerftDivide returns the per-root-move node counts, keyed by the move's
// coordinate string, for debugging divergences against a reference engine.
func PerftDivide(s *State, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	for _, m := range s.LegalMoves() {
		s.MakeMove(m)
		div[m.String()] = Perft(s, depth-1)
		s.UndoMove()
	}
	return div
}
