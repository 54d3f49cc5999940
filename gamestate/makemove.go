package gamestate

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MakeMove applies a move produced by LegalMoves for this exact position.
// It clears the start square, places the moved (or promoted) piece, carries
// out the en-passant and castling side effects, updates the king cache, the
// en-passant target and the castling rights, pushes one entry on each
// history stack, and flips the side to move. Applying a move that did not
// come from the immediately preceding LegalMoves call is undefined.
func (s *State) MakeMove(m Move) {
	// The three history pushes happen together, before any board mutation,
	// so UndoMove always finds matched entries.
	s.moveLog = append(s.moveLog, m)
	s.epLog = append(s.epLog, s.epTarget)
	s.castleLog = append(s.castleLog, s.castling)

	s.board[m.From] = NoPiece
	s.board[m.To] = m.Moved
	if m.Promotion {
		s.board[m.To] = PieceFromType(m.Moved.Color(), PieceTypeQueen)
	}
	if m.EnPassant {
		// The captured pawn sits beside the capturing pawn, not on the
		// landing square.
		s.board[MakeSquare(m.From.Row(), m.To.Col())] = NoPiece
	}
	if m.Castle {
		row := m.To.Row()
		if m.To.Col()-m.From.Col() == 2 { // king side: rook h-file -> f-file
			s.board[MakeSquare(row, m.To.Col()-1)] = s.board[MakeSquare(row, m.To.Col()+1)]
			s.board[MakeSquare(row, m.To.Col()+1)] = NoPiece
		} else { // queen side: rook a-file -> d-file
			s.board[MakeSquare(row, m.To.Col()+1)] = s.board[MakeSquare(row, m.To.Col()-2)]
			s.board[MakeSquare(row, m.To.Col()-2)] = NoPiece
		}
	}
	if m.Moved.Type() == PieceTypeKing {
		s.kingSquare[m.Moved.Color()] = m.To
	}

	// A two-square pawn advance sets the en-passant target to the square
	// passed over; any other move clears it.
	if m.Moved.Type() == PieceTypePawn && abs(m.From.Row()-m.To.Row()) == 2 {
		s.epTarget = MakeSquare((m.From.Row()+m.To.Row())/2, m.From.Col())
	} else {
		s.epTarget = NoSquare
	}

	s.updateCastlingRights(m)
	s.sideToMove = s.sideToMove.Other()
	s.checkmate = false
	s.stalemate = false
}

// updateCastlingRights revokes rights after a king move, a rook move from
// its home square, or a capture on a rook home square.
func (s *State) updateCastlingRights(m Move) {
	switch m.Moved {
	case WhiteKing:
		s.castling &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		s.castling &^= CastlingBlackK | CastlingBlackQ
	case WhiteRook:
		if m.From == MakeSquare(7, 0) {
			s.castling &^= CastlingWhiteQ
		} else if m.From == MakeSquare(7, 7) {
			s.castling &^= CastlingWhiteK
		}
	case BlackRook:
		if m.From == MakeSquare(0, 0) {
			s.castling &^= CastlingBlackQ
		} else if m.From == MakeSquare(0, 7) {
			s.castling &^= CastlingBlackK
		}
	}

	switch m.Captured {
	case WhiteRook:
		if m.To == MakeSquare(7, 0) {
			s.castling &^= CastlingWhiteQ
		} else if m.To == MakeSquare(7, 7) {
			s.castling &^= CastlingWhiteK
		}
	case BlackRook:
		if m.To == MakeSquare(0, 0) {
			s.castling &^= CastlingBlackQ
		} else if m.To == MakeSquare(0, 7) {
			s.castling &^= CastlingBlackK
		}
	}
}

// UndoMove reverses the most recent MakeMove, restoring board, side to
// move, king cache, castling rights and en-passant target to their exact
// pre-move values. It pops exactly one entry from each history stack. On an
// empty history it is a safe no-op. The checkmate/stalemate flags are
// cleared, not restored; call LegalMoves to re-derive them.
func (s *State) UndoMove() {
	n := len(s.moveLog)
	if n == 0 {
		return
	}
	m := s.moveLog[n-1]
	s.moveLog = s.moveLog[:n-1]
	s.epTarget = s.epLog[n-1]
	s.epLog = s.epLog[:n-1]
	s.castling = s.castleLog[n-1]
	s.castleLog = s.castleLog[:n-1]

	s.board[m.From] = m.Moved
	s.board[m.To] = m.Captured
	if m.EnPassant {
		s.board[m.To] = NoPiece
		s.board[MakeSquare(m.From.Row(), m.To.Col())] = m.Captured
	}
	if m.Castle {
		row := m.To.Row()
		if m.To.Col()-m.From.Col() == 2 { // king side: rook f-file -> h-file
			s.board[MakeSquare(row, m.To.Col()+1)] = s.board[MakeSquare(row, m.To.Col()-1)]
			s.board[MakeSquare(row, m.To.Col()-1)] = NoPiece
		} else { // queen side: rook d-file -> a-file
			s.board[MakeSquare(row, m.To.Col()-2)] = s.board[MakeSquare(row, m.To.Col()+1)]
			s.board[MakeSquare(row, m.To.Col()+1)] = NoPiece
		}
	}
	if m.Moved.Type() == PieceTypeKing {
		s.kingSquare[m.Moved.Color()] = m.From
	}

	s.sideToMove = s.sideToMove.Other()
	s.checkmate = false
	s.stalemate = false
}
