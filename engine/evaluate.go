package engine

import "chessmind/gamestate"

// Score constants, in centipawns from White's perspective.
const (
	MateScore      = 100000
	StalemateScore = 0
)

// Material values indexed by PieceType. The king is worth 0: it can never
// be captured, so its material cannot change an evaluation.
var pieceValue = [7]int{0, 100, 300, 300, 500, 900, 0}

// Piece-square tables for the white orientation, indexed [row*8+col] with
// row 0 = rank 8. The black tables are the row-reversed mirror; see
// positionValue. Kings have no positional table.

// Knights are strongest in the center and poor on the rim.
var knightTable = [64]int{
	0, 10, 20, 20, 20, 20, 10, 0,
	10, 30, 50, 50, 50, 50, 30, 10,
	20, 50, 60, 65, 65, 60, 50, 20,
	20, 55, 65, 70, 70, 65, 55, 20,
	20, 50, 65, 70, 70, 65, 50, 20,
	20, 55, 60, 65, 65, 60, 55, 20,
	10, 30, 50, 55, 55, 50, 30, 10,
	0, 10, 20, 20, 20, 20, 10, 0,
}

// Bishops prefer long diagonals and open positions.
var bishopTable = [64]int{
	0, 20, 20, 20, 20, 20, 20, 0,
	20, 40, 40, 40, 40, 40, 40, 20,
	20, 40, 50, 60, 60, 50, 40, 20,
	20, 50, 50, 60, 60, 50, 50, 20,
	20, 40, 60, 60, 60, 60, 40, 20,
	20, 60, 60, 60, 60, 60, 60, 20,
	20, 50, 40, 40, 40, 40, 50, 20,
	0, 20, 20, 20, 20, 20, 20, 0,
}

// Rooks prefer open files and the seventh rank.
var rookTable = [64]int{
	25, 25, 25, 25, 25, 25, 25, 25,
	50, 75, 75, 75, 75, 75, 75, 50,
	0, 25, 25, 25, 25, 25, 25, 0,
	0, 25, 25, 25, 25, 25, 25, 0,
	0, 25, 25, 25, 25, 25, 25, 0,
	0, 25, 25, 25, 25, 25, 25, 0,
	0, 25, 25, 25, 25, 25, 25, 0,
	25, 25, 25, 50, 50, 25, 25, 25,
}

// Queens favor central activity without early development.
var queenTable = [64]int{
	0, 20, 20, 30, 30, 20, 20, 0,
	20, 40, 40, 40, 40, 40, 40, 20,
	20, 40, 50, 50, 50, 50, 40, 20,
	30, 40, 50, 50, 50, 50, 40, 30,
	40, 40, 50, 50, 50, 50, 40, 30,
	20, 50, 50, 50, 50, 50, 40, 20,
	20, 40, 50, 40, 40, 40, 40, 20,
	0, 20, 20, 30, 30, 20, 20, 0,
}

// Pawns gain value as they advance and for central control.
var pawnTable = [64]int{
	80, 80, 80, 80, 80, 80, 80, 80,
	70, 70, 70, 70, 70, 70, 70, 70,
	30, 30, 40, 50, 50, 40, 30, 30,
	25, 25, 30, 45, 45, 30, 25, 25,
	20, 20, 20, 40, 40, 20, 20, 20,
	25, 15, 10, 20, 20, 10, 15, 25,
	25, 30, 30, 0, 0, 30, 30, 25,
	20, 20, 20, 20, 20, 20, 20, 20,
}

// positionValue returns the piece-square bonus for a piece on a square.
// Black reads the mirrored table: strategic value is board-symmetric, so
// the black table is the white one with the rows reversed.
func positionValue(p gamestate.Piece, sq gamestate.Square) int {
	var table *[64]int
	switch p.Type() {
	case gamestate.PieceTypePawn:
		table = &pawnTable
	case gamestate.PieceTypeKnight:
		table = &knightTable
	case gamestate.PieceTypeBishop:
		table = &bishopTable
	case gamestate.PieceTypeRook:
		table = &rookTable
	case gamestate.PieceTypeQueen:
		table = &queenTable
	default:
		return 0
	}
	row, col := sq.Row(), sq.Col()
	if p.Color() == gamestate.Black {
		row = 7 - row
	}
	return table[row*8+col]
}

// Evaluate scores the position from White's perspective: positive favors
// White. Terminal positions score +-MateScore (sign favoring the mating
// side) or StalemateScore; the terminal flags must be current, i.e. set by
// the LegalMoves call that found the position terminal. Otherwise the
// score is the sum of material and piece-square values over all occupied
// squares.
func Evaluate(s *gamestate.State) int {
	if s.InCheckmate() {
		if s.SideToMove() == gamestate.White {
			return -MateScore
		}
		return MateScore
	}
	if s.InStalemate() {
		return StalemateScore
	}

	score := 0
	for sq := gamestate.Square(0); sq < 64; sq++ {
		p := s.PieceAt(sq)
		if p == gamestate.NoPiece {
			continue
		}
		v := pieceValue[p.Type()] + positionValue(p, sq)
		if p.Color() == gamestate.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
