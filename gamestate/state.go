package gamestate

import "strings"

// State is the authoritative position: piece placement, side to move, king
// square cache, castling rights, en-passant target, and the parallel history
// stacks that make every move reversible. One State exists per game and is
// mutated in place by MakeMove/UndoMove; hand a Copy to anything that
// explores moves concurrently.
type State struct {
	board      [64]Piece
	sideToMove Color
	kingSquare [2]Square
	castling   CastlingRights
	epTarget   Square

	// Parallel history stacks. Their lengths always equal the number of
	// moves applied; UndoMove pops exactly one entry from each.
	moveLog   []Move
	epLog     []Square
	castleLog []CastlingRights

	// Terminal flags, valid only until the next MakeMove/UndoMove. Set by
	// LegalMoves when it produces an empty move set.
	checkmate bool
	stalemate bool

	// Transient pin/check lists, recomputed at the start of LegalMoves and
	// read by the per-piece generators.
	pins   []ray
	checks []ray
}

// ray records a piece found on a line from the king: its square and the
// direction (row delta, col delta) leading from the king toward it.
type ray struct {
	sq     Square
	dr, dc int
}

// NewState returns the standard starting position.
func NewState() *State {
	s := &State{
		sideToMove: White,
		castling:   CastlingAll,
		epTarget:   NoSquare,
	}
	back := [8]PieceType{
		PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
		PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
	}
	for col := 0; col < 8; col++ {
		s.board[MakeSquare(0, col)] = PieceFromType(Black, back[col])
		s.board[MakeSquare(1, col)] = BlackPawn
		s.board[MakeSquare(6, col)] = WhitePawn
		s.board[MakeSquare(7, col)] = PieceFromType(White, back[col])
	}
	s.kingSquare[White] = MakeSquare(7, 4)
	s.kingSquare[Black] = MakeSquare(0, 4)
	return s
}

// Copy returns a deep copy safe to mutate independently, for handing to a
// search worker. The transient pin/check lists are not carried over.
func (s *State) Copy() *State {
	c := *s
	c.moveLog = append([]Move(nil), s.moveLog...)
	c.epLog = append([]Square(nil), s.epLog...)
	c.castleLog = append([]CastlingRights(nil), s.castleLog...)
	c.pins = nil
	c.checks = nil
	return &c
}

// PieceAt returns the piece on a square.
func (s *State) PieceAt(sq Square) Piece { return s.board[sq] }

// SideToMove reports which side is to play.
func (s *State) SideToMove() Color { return s.sideToMove }

// KingSquare returns the cached location of the given side's king.
func (s *State) KingSquare(c Color) Square { return s.kingSquare[c] }

// CastlingRights returns the current castling availability flags.
func (s *State) CastlingRights() CastlingRights { return s.castling }

// EnPassantTarget returns the en-passant target square or NoSquare.
func (s *State) EnPassantTarget() Square { return s.epTarget }

// MoveCount returns the number of moves applied and not yet undone.
func (s *State) MoveCount() int { return len(s.moveLog) }

// LastMove returns the most recently applied move, if any.
func (s *State) LastMove() (Move, bool) {
	if len(s.moveLog) == 0 {
		return Move{}, false
	}
	return s.moveLog[len(s.moveLog)-1], true
}

// MoveLog returns a copy of the applied-move history.
func (s *State) MoveLog() []Move {
	return append([]Move(nil), s.moveLog...)
}

// InCheckmate reports whether the last LegalMoves call found the side to
// move checkmated. Valid only until the next MakeMove/UndoMove.
func (s *State) InCheckmate() bool { return s.checkmate }

// InStalemate reports whether the last LegalMoves call found the side to
// move stalemated. Valid only until the next MakeMove/UndoMove.
func (s *State) InStalemate() bool { return s.stalemate }

// String renders the board as eight ranks of FEN piece characters, rank 8
// first, for logs and the CLI.
func (s *State) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte('8' - byte(row))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(pieceChar(s.board[MakeSquare(row, col)]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h")
	return sb.String()
}
