package gamestate

// Direction tables. pinsAndChecks and attackedBy rely on the ordering of
// rayDirections: indices 0-3 are the rook lines, 4-5 point toward rank 8
// (up), 6-7 toward rank 1 (down).
var rayDirections = [8][2]int{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// attacksAlongRay reports whether a piece of the given type and color
// attacks along ray direction j (an index into rayDirections) at distance i,
// looking outward from the attacked square. Pawns and kings only reach
// distance 1; pawns additionally only on the color-correct diagonals.
func attacksAlongRay(pt PieceType, color Color, j, i int) bool {
	switch pt {
	case PieceTypeRook:
		return j <= 3
	case PieceTypeBishop:
		return j >= 4
	case PieceTypeQueen:
		return true
	case PieceTypePawn:
		if i != 1 {
			return false
		}
		// White pawns attack toward rank 8, so they sit on the downward
		// diagonals from the attacked square; black pawns the reverse.
		if color == White {
			return j == 6 || j == 7
		}
		return j == 4 || j == 5
	case PieceTypeKing:
		return i == 1
	}
	return false
}

// pinsAndChecks ray-casts in all eight directions from the side-to-move
// king. The first allied piece on a ray is a pin candidate; the first enemy
// piece whose kind attacks along that ray gives check if no candidate
// blocks, and otherwise confirms the candidate as pinned. Knight checks are
// tested by offset adjacency since knights cannot pin or be blocked.
func (s *State) pinsAndChecks() (inCheck bool, pins, checks []ray) {
	us := s.sideToMove
	them := us.Other()
	king := s.kingSquare[us]
	kr, kc := king.Row(), king.Col()

	for j, d := range rayDirections {
		possiblePin := ray{sq: NoSquare, dr: d[0], dc: d[1]}
		for i := 1; i < 8; i++ {
			r, c := kr+d[0]*i, kc+d[1]*i
			if r < 0 || r > 7 || c < 0 || c > 7 {
				break
			}
			sq := MakeSquare(r, c)
			p := s.board[sq]
			if p == NoPiece {
				continue
			}
			if p.Color() == us {
				// The king itself may sit on the ray while kingMoves probes
				// a tentative relocation; treat it as transparent.
				if p.Type() == PieceTypeKing {
					continue
				}
				if possiblePin.sq == NoSquare {
					possiblePin.sq = sq
					continue
				}
				break // second allied piece, no pin or check on this ray
			}
			if attacksAlongRay(p.Type(), them, j, i) {
				if possiblePin.sq == NoSquare {
					inCheck = true
					checks = append(checks, ray{sq: sq, dr: d[0], dc: d[1]})
				} else {
					pins = append(pins, possiblePin)
				}
			}
			break
		}
	}

	for _, o := range knightOffsets {
		r, c := kr+o[0], kc+o[1]
		if r < 0 || r > 7 || c < 0 || c > 7 {
			continue
		}
		sq := MakeSquare(r, c)
		if p := s.board[sq]; p.Type() == PieceTypeKnight && p.Color() == them {
			inCheck = true
			checks = append(checks, ray{sq: sq, dr: o[0], dc: o[1]})
		}
	}
	return inCheck, pins, checks
}

// attackedBy reports whether any piece of the given color attacks the
// target square. It is a direct reverse scan: rays for sliders, pawn
// diagonals and king adjacency at distance 1, knight offsets separately.
func (s *State) attackedBy(target Square, by Color) bool {
	tr, tc := target.Row(), target.Col()
	for j, d := range rayDirections {
		for i := 1; i < 8; i++ {
			r, c := tr+d[0]*i, tc+d[1]*i
			if r < 0 || r > 7 || c < 0 || c > 7 {
				break
			}
			p := s.board[MakeSquare(r, c)]
			if p == NoPiece {
				continue
			}
			if p.Color() == by && attacksAlongRay(p.Type(), by, j, i) {
				return true
			}
			break
		}
	}
	for _, o := range knightOffsets {
		r, c := tr+o[0], tc+o[1]
		if r < 0 || r > 7 || c < 0 || c > 7 {
			continue
		}
		if p := s.board[MakeSquare(r, c)]; p.Type() == PieceTypeKnight && p.Color() == by {
			return true
		}
	}
	return false
}

// SquareUnderAttack reports whether the opponent of the side to move
// attacks the given square.
func (s *State) SquareUnderAttack(sq Square) bool {
	return s.attackedBy(sq, s.sideToMove.Other())
}

// InCheck reports whether the side to move's king is attacked.
func (s *State) InCheck() bool {
	return s.attackedBy(s.kingSquare[s.sideToMove], s.sideToMove.Other())
}

// LegalMoves returns every strictly legal move for the side to move and
// refreshes the checkmate/stalemate flags. The returned moves are the only
// valid arguments to MakeMove for this exact position.
func (s *State) LegalMoves() []Move {
	inCheck, pins, checks := s.pinsAndChecks()
	s.pins, s.checks = pins, checks

	us := s.sideToMove
	king := s.kingSquare[us]

	var moves []Move
	switch {
	case inCheck && len(checks) == 1:
		moves = s.pseudoMoves()
		check := checks[0]
		checker := s.board[check.sq]

		// Squares that capture the checker or block a sliding check. A
		// knight check cannot be blocked.
		var valid []Square
		if checker.Type() == PieceTypeKnight {
			valid = []Square{check.sq}
		} else {
			for i := 1; i < 8; i++ {
				sq := MakeSquare(king.Row()+check.dr*i, king.Col()+check.dc*i)
				valid = append(valid, sq)
				if sq == check.sq {
					break
				}
			}
		}

		kept := moves[:0]
		for _, m := range moves {
			if m.Moved.Type() == PieceTypeKing {
				kept = append(kept, m)
				continue
			}
			// An en-passant capture removes the checking pawn without
			// landing on its square.
			if m.EnPassant && MakeSquare(m.From.Row(), m.To.Col()) == check.sq {
				kept = append(kept, m)
				continue
			}
			for _, sq := range valid {
				if m.To == sq {
					kept = append(kept, m)
					break
				}
			}
		}
		moves = kept
	case inCheck:
		// Double check: only the king can move.
		moves = make([]Move, 0, 8)
		s.kingMoves(king, &moves)
	default:
		moves = s.pseudoMoves()
	}
	s.castleMoves(king, &moves)

	if len(moves) == 0 {
		s.checkmate = inCheck
		s.stalemate = !inCheck
	} else {
		s.checkmate = false
		s.stalemate = false
	}
	return moves
}

// pseudoMoves generates moves for every side-to-move piece, honoring pins
// but not check resolution; LegalMoves filters the result when in check.
func (s *State) pseudoMoves() []Move {
	moves := make([]Move, 0, 48)
	for sq := Square(0); sq < 64; sq++ {
		p := s.board[sq]
		if p == NoPiece || p.Color() != s.sideToMove {
			continue
		}
		switch p.Type() {
		case PieceTypePawn:
			s.pawnMoves(sq, &moves)
		case PieceTypeKnight:
			s.knightMoves(sq, &moves)
		case PieceTypeBishop:
			s.slidingMoves(sq, rayDirections[4:], &moves)
		case PieceTypeRook:
			s.slidingMoves(sq, rayDirections[:4], &moves)
		case PieceTypeQueen:
			s.slidingMoves(sq, rayDirections[:], &moves)
		case PieceTypeKing:
			s.kingMoves(sq, &moves)
		}
	}
	return moves
}

// pinnedDirection looks up the pin constraint for a square in the transient
// pin list. The direction points from the king toward the pinned piece.
func (s *State) pinnedDirection(sq Square) (dr, dc int, pinned bool) {
	for _, p := range s.pins {
		if p.sq == sq {
			return p.dr, p.dc, true
		}
	}
	return 0, 0, false
}

func (s *State) pawnMoves(from Square, moves *[]Move) {
	dr, dc, pinned := s.pinnedDirection(from)
	us := s.sideToMove
	them := us.Other()

	dir, startRow := 1, 1
	if us == White {
		dir, startRow = -1, 6
	}
	fr, fc := from.Row(), from.Col()
	r := fr + dir
	if r < 0 || r > 7 {
		return
	}

	// Pushes stay on the file, so a pin only allows them when it runs along
	// the file.
	if s.board[MakeSquare(r, fc)] == NoPiece && (!pinned || dc == 0) {
		*moves = append(*moves, s.newMove(from, MakeSquare(r, fc)))
		if fr == startRow && s.board[MakeSquare(fr+2*dir, fc)] == NoPiece {
			*moves = append(*moves, s.newMove(from, MakeSquare(fr+2*dir, fc)))
		}
	}

	for _, side := range [2]int{-1, 1} {
		c := fc + side
		if c < 0 || c > 7 {
			continue
		}
		// A capture leaves the pin line unless the pin runs along this
		// exact diagonal.
		if pinned && !(dr == dir && dc == side) {
			continue
		}
		to := MakeSquare(r, c)
		if p := s.board[to]; p != NoPiece && p.Color() == them {
			*moves = append(*moves, s.newMove(from, to))
		}
		if to == s.epTarget && s.epCaptureSafe(from, to) {
			*moves = append(*moves, s.newEnPassantMove(from, to))
		}
	}
}

// epCaptureSafe guards the one case the pin scan cannot see: an en-passant
// capture removes both the capturing and the captured pawn from the same
// rank, which can expose the king to a rook or queen even though neither
// pawn is individually pinned. Scan outward from the king along the rank,
// treating the two vacated squares as empty; the capture is unsafe iff the
// first piece beyond them is an enemy rook or queen.
func (s *State) epCaptureSafe(from, to Square) bool {
	us := s.sideToMove
	king := s.kingSquare[us]
	row := from.Row()
	if king.Row() != row {
		return true
	}
	capCol := to.Col() // the captured pawn sits on from's rank, to's file
	dir := 1
	if king.Col() > from.Col() {
		dir = -1
	}
	for c := king.Col() + dir; c >= 0 && c <= 7; c += dir {
		if c == from.Col() || c == capCol {
			continue
		}
		p := s.board[MakeSquare(row, c)]
		if p == NoPiece {
			continue
		}
		if p.Color() != us && (p.Type() == PieceTypeRook || p.Type() == PieceTypeQueen) {
			return false
		}
		return true
	}
	return true
}

func (s *State) knightMoves(from Square, moves *[]Move) {
	// A pinned knight can never stay on the pin line.
	if _, _, pinned := s.pinnedDirection(from); pinned {
		return
	}
	us := s.sideToMove
	fr, fc := from.Row(), from.Col()
	for _, o := range knightOffsets {
		r, c := fr+o[0], fc+o[1]
		if r < 0 || r > 7 || c < 0 || c > 7 {
			continue
		}
		to := MakeSquare(r, c)
		if p := s.board[to]; p == NoPiece || p.Color() != us {
			*moves = append(*moves, s.newMove(from, to))
		}
	}
}

func (s *State) slidingMoves(from Square, dirs [][2]int, moves *[]Move) {
	dr, dc, pinned := s.pinnedDirection(from)
	them := s.sideToMove.Other()
	fr, fc := from.Row(), from.Col()
	for _, d := range dirs {
		// A pinned slider may only move along the pin line, either way.
		if pinned && !(d[0] == dr && d[1] == dc) && !(d[0] == -dr && d[1] == -dc) {
			continue
		}
		for i := 1; i < 8; i++ {
			r, c := fr+d[0]*i, fc+d[1]*i
			if r < 0 || r > 7 || c < 0 || c > 7 {
				break
			}
			to := MakeSquare(r, c)
			p := s.board[to]
			if p == NoPiece {
				*moves = append(*moves, s.newMove(from, to))
				continue
			}
			if p.Color() == them {
				*moves = append(*moves, s.newMove(from, to))
			}
			break
		}
	}
}

func (s *State) kingMoves(from Square, moves *[]Move) {
	us := s.sideToMove
	fr, fc := from.Row(), from.Col()
	for _, o := range kingOffsets {
		r, c := fr+o[0], fc+o[1]
		if r < 0 || r > 7 || c < 0 || c > 7 {
			continue
		}
		to := MakeSquare(r, c)
		if p := s.board[to]; p != NoPiece && p.Color() == us {
			continue
		}
		// Tentatively relocate the king cache and re-run the check scan.
		// The board is untouched; pinsAndChecks treats the vacated king
		// square as transparent, so moves along a checking ray are caught.
		s.kingSquare[us] = to
		inCheck, _, _ := s.pinsAndChecks()
		s.kingSquare[us] = from
		if !inCheck {
			*moves = append(*moves, s.newMove(from, to))
		}
	}
}

// castleMoves appends castling candidates: the king must not be in check,
// the rights flag must be set, the squares between king and rook must be
// empty, and both squares the king transits must be unattacked.
func (s *State) castleMoves(from Square, moves *[]Move) {
	us := s.sideToMove
	them := us.Other()
	if s.attackedBy(from, them) {
		return
	}
	kside, qside := CastlingWhiteK, CastlingWhiteQ
	if us == Black {
		kside, qside = CastlingBlackK, CastlingBlackQ
	}
	row, col := from.Row(), from.Col()

	if s.castling&kside != 0 && col+2 <= 7 {
		f, g := MakeSquare(row, col+1), MakeSquare(row, col+2)
		if s.board[f] == NoPiece && s.board[g] == NoPiece &&
			!s.attackedBy(f, them) && !s.attackedBy(g, them) {
			*moves = append(*moves, s.newCastleMove(from, g))
		}
	}
	if s.castling&qside != 0 && col-3 >= 0 {
		d, c, b := MakeSquare(row, col-1), MakeSquare(row, col-2), MakeSquare(row, col-3)
		if s.board[d] == NoPiece && s.board[c] == NoPiece && s.board[b] == NoPiece &&
			!s.attackedBy(d, them) && !s.attackedBy(c, them) {
			*moves = append(*moves, s.newCastleMove(from, c))
		}
	}
}
