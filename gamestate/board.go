package gamestate

import "fmt"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// CastlingRights is a bitmask of the four castling availability flags.
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingAll = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Square represents a board position encoded as row*8+col, where row 0 is
// rank 8 (Black's home rank) and col 0 is the a-file. NoSquare marks the
// absence of a square, e.g. no en-passant target.
type Square int

const NoSquare Square = -1

// MakeSquare builds a square from a row and column index.
func MakeSquare(row, col int) Square { return Square(row*8 + col) }

// Row returns the row index (0 = rank 8 .. 7 = rank 1).
func (s Square) Row() int { return int(s) / 8 }

// Col returns the column index (0 = a-file .. 7 = h-file).
func (s Square) Col() int { return int(s) % 8 }

// OnBoard reports whether the square lies within the 8x8 grid.
func (s Square) OnBoard() bool { return s >= 0 && s < 64 }

// String returns the algebraic name of the square ("a1".."h8").
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{'a' + byte(s.Col()), '1' + byte(7-s.Row())})
}

// ParseSquare converts an algebraic square name ("e4") to a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", name)
	}
	col := int(name[0] - 'a')
	row := 7 - int(name[1]-'1')
	return MakeSquare(row, col), nil
}

// pieceChar returns the FEN character for a piece (uppercase white, lowercase black).
func pieceChar(p Piece) byte {
	const white = " PNBRQK"
	const black = " pnbrqk"
	if p == NoPiece {
		return '.'
	}
	if p.Color() == White {
		return white[p.Type()]
	}
	return black[p.Type()]
}

// pieceLetter returns the uppercase piece letter used in move notation.
func pieceLetter(pt PieceType) byte {
	const letters = " PNBRQK"
	return letters[pt]
}
