package gamestate

import (
	"errors"
	"fmt"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// ParseFEN parses a FEN string and returns a new State set up to that
// position with empty move history. The halfmove clock and fullmove number
// fields are accepted but ignored.
func ParseFEN(fen string) (*State, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.New("invalid FEN: not enough fields")
	}

	s := &State{epTarget: NoSquare}
	s.kingSquare[White] = NoSquare
	s.kingSquare[Black] = NoSquare

	// 1. Piece placement; FEN lists rank 8 first, which is row 0 here.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.New("invalid FEN: incorrect number of ranks")
	}
	for row, rankStr := range ranks {
		col := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("invalid FEN: unrecognized piece character %q", ch)
			}
			if col >= 8 {
				return nil, errors.New("invalid FEN: too many squares in rank")
			}
			sq := MakeSquare(row, col)
			s.board[sq] = p
			if p.Type() == PieceTypeKing {
				s.kingSquare[p.Color()] = sq
			}
			col++
		}
		if col != 8 {
			return nil, errors.New("invalid FEN: incomplete rank")
		}
	}
	if s.kingSquare[White] == NoSquare || s.kingSquare[Black] == NoSquare {
		return nil, errors.New("invalid FEN: missing king")
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		s.sideToMove = White
	case "b":
		s.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN: bad side to move %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				s.castling |= CastlingWhiteK
			case 'Q':
				s.castling |= CastlingWhiteQ
			case 'k':
				s.castling |= CastlingBlackK
			case 'q':
				s.castling |= CastlingBlackQ
			default:
				return nil, fmt.Errorf("invalid FEN: bad castling flag %q", ch)
			}
		}
	}

	// 4. En passant target
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: %v", err)
		}
		s.epTarget = sq
	}

	return s, nil
}

// ToFEN serializes the position. The halfmove clock is emitted as 0; the
// fullmove number is derived from the move history.
func (s *State) ToFEN() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := s.board[MakeSquare(row, col)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	if s.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if s.castling == 0 {
		sb.WriteByte('-')
	} else {
		if s.castling&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if s.castling&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if s.castling&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if s.castling&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(s.epTarget.String())
	fmt.Fprintf(&sb, " 0 %d", len(s.moveLog)/2+1)
	return sb.String()
}
