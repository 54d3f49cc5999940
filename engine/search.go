package engine

import (
	"errors"
	"math/rand"
	"time"

	"golang.org/x/exp/slices"

	"chessmind/gamestate"
)

// DefaultDepth is the fixed search depth in plies.
const DefaultDepth = 3

// ErrNoMoves is returned when a move is requested for an empty legal-move
// set. Callers must test for checkmate/stalemate before asking for a move.
var ErrNoMoves = errors.New("engine: no legal moves supplied")

// Search selects moves by fixed-depth negamax with alpha-beta pruning.
// Pruning never changes the selected move or score versus an unpruned
// search of the same tree, only the number of nodes visited. The root move
// order is shuffled so that ties between equal-scoring moves break
// randomly; disable Shuffle for deterministic selection.
type Search struct {
	Depth   int
	Shuffle bool

	rng      *rand.Rand
	nodes    uint64
	best     gamestate.Move
	haveBest bool
}

// NewSearch returns a Search at the given depth in plies. Depth <= 0
// selects DefaultDepth.
func NewSearch(depth int) *Search {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Search{
		Depth:   depth,
		Shuffle: true,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed pins the tie-break randomness, for reproducible games and tests.
func (e *Search) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Nodes reports how many nodes the last FindBestMove visited.
func (e *Search) Nodes() uint64 { return e.nodes }

// FindBestMove runs the negamax search over the supplied legal moves and
// returns the best one. The state is driven through MakeMove/UndoMove and
// is back at its entry position on return; hand in a private copy when the
// authoritative state must stay untouched. An empty move set returns
// ErrNoMoves. If the search fails to settle on a usable move, a uniformly
// random member of the legal set is substituted.
func (e *Search) FindBestMove(s *gamestate.State, legal []gamestate.Move) (gamestate.Move, error) {
	if len(legal) == 0 {
		return gamestate.Move{}, ErrNoMoves
	}

	e.best = gamestate.Move{}
	e.haveBest = false
	e.nodes = 0

	moves := append([]gamestate.Move(nil), legal...)
	if e.Shuffle {
		e.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}

	multiplier := 1
	if s.SideToMove() == gamestate.Black {
		multiplier = -1
	}
	e.negamax(s, moves, e.Depth, -MateScore, MateScore, multiplier)

	if !e.haveBest || !slices.ContainsFunc(legal, e.best.Equal) {
		return e.FindRandomMove(legal)
	}
	return e.best, nil
}

// negamax returns the best achievable score for the side to move, from
// that side's perspective. Each level negates the child's score and swaps
// the window bounds so one routine serves both sides; the cutoff fires
// once alpha reaches beta, when the opponent already has a refutation that
// makes this branch irrelevant.
func (e *Search) negamax(s *gamestate.State, moves []gamestate.Move, depth, alpha, beta, multiplier int) int {
	e.nodes++
	if depth == 0 || len(moves) == 0 {
		// A checkmated or stalemated node evaluates terminally; the flags
		// were set by the LegalMoves call that produced the empty set.
		return multiplier * Evaluate(s)
	}

	maxScore := -MateScore
	for _, m := range moves {
		s.MakeMove(m)
		next := s.LegalMoves()
		score := -e.negamax(s, next, depth-1, -beta, -alpha, -multiplier)
		s.UndoMove()

		if score > maxScore {
			maxScore = score
			if depth == e.Depth {
				e.best = m
				e.haveBest = true
			}
		}
		if maxScore > alpha {
			alpha = maxScore
		}
		if alpha >= beta {
			break
		}
	}
	return maxScore
}

// FindRandomMove returns a uniformly random member of the legal set, or
// ErrNoMoves for an empty set.
func (e *Search) FindRandomMove(legal []gamestate.Move) (gamestate.Move, error) {
	if len(legal) == 0 {
		return gamestate.Move{}, ErrNoMoves
	}
	return legal[e.rng.Intn(len(legal))], nil
}
