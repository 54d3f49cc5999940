package gamestate

// Move describes one move: source and destination squares, the piece moved,
// the piece captured (for en passant this is the passed pawn, not the
// occupant of the landing square), and the special-move flags. Moves are
// immutable once constructed; ID is a derived integer identity used for
// equality and set membership.
type Move struct {
	From      Square
	To        Square
	Moved     Piece
	Captured  Piece
	Promotion bool
	EnPassant bool
	Castle    bool
	ID        int
}

// newMove builds an ordinary move from the current board. Promotion is
// derived from the mover reaching its promotion rank.
func (s *State) newMove(from, to Square) Move {
	m := Move{
		From:     from,
		To:       to,
		Moved:    s.board[from],
		Captured: s.board[to],
	}
	if m.Moved == WhitePawn && to.Row() == 0 || m.Moved == BlackPawn && to.Row() == 7 {
		m.Promotion = true
	}
	m.ID = moveID(from, to)
	return m
}

// newEnPassantMove builds an en-passant capture; the captured pawn sits on
// the capturing pawn's rank, not on the landing square.
func (s *State) newEnPassantMove(from, to Square) Move {
	m := Move{
		From:      from,
		To:        to,
		Moved:     s.board[from],
		EnPassant: true,
		ID:        moveID(from, to),
	}
	if m.Moved == WhitePawn {
		m.Captured = BlackPawn
	} else {
		m.Captured = WhitePawn
	}
	return m
}

// newCastleMove builds a castling move; From/To describe the king's two-square hop.
func (s *State) newCastleMove(from, to Square) Move {
	return Move{
		From:   from,
		To:     to,
		Moved:  s.board[from],
		Castle: true,
		ID:     moveID(from, to),
	}
}

func moveID(from, to Square) int {
	return from.Row()*1000 + from.Col()*100 + to.Row()*10 + to.Col()
}

// IsCapture reports whether the move takes a piece (including en passant).
func (m Move) IsCapture() bool { return m.Captured != NoPiece }

// Equal reports move identity by the derived ID.
func (m Move) Equal(o Move) bool { return m.ID == o.ID }

// String returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	str := m.From.String() + m.To.String()
	if m.Promotion {
		str += "q"
	}
	return str
}

// Notation returns a compact algebraic form: piece letter plus destination,
// "x" for captures with the file letter for pawn captures, "O-O"/"O-O-O"
// for castling, a trailing promotion letter, and an " e.p." suffix for en
// passant. Same-destination disambiguation is deliberately not performed.
func (m Move) Notation() string {
	if m.Castle {
		if m.To.Col() == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	dest := m.To.String()
	if m.Moved.Type() == PieceTypePawn {
		var str string
		if m.IsCapture() {
			str = string([]byte{'a' + byte(m.From.Col()), 'x'}) + dest
		} else {
			str = dest
		}
		if m.Promotion {
			str += "Q"
		}
		if m.EnPassant {
			str += " e.p."
		}
		return str
	}

	str := string(pieceLetter(m.Moved.Type()))
	if m.IsCapture() {
		str += "x"
	}
	return str + dest
}
