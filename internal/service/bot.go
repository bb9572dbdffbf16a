package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidSide      = errors.New("bot side must be X or O")
)

// strategicCells - center first, then corners, then edges.
var strategicCells = [][]int{{4}, {0, 2, 6, 8}, {1, 3, 5, 7}}

type BotService interface {
	ChooseMove(state entity.GameState, difficulty entity.Difficulty, side entity.Mark) (entity.Move, error)
}

type randSource interface {
	Intn(n int) int
}

type botService struct {
	rnd randSource
}

// NewBotService - rnd breaks ties; pass a seeded *rand.Rand for reproducible choices.
func NewBotService(rnd randSource) BotService {
	return &botService{rnd: rnd}
}

func (that *botService) ChooseMove(state entity.GameState, difficulty entity.Difficulty, side entity.Mark) (entity.Move, error) {
	if !side.IsPlayer() {
		return entity.Move{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	moves := tictactoe.LegalMoves(state)
	if len(moves) == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return that.randomMove(moves), nil
	case entity.DifficultyMedium:
		return that.mediumMove(state, moves, side), nil
	case entity.DifficultyHard:
		return that.hardMove(state, moves, side), nil
	default:
		return entity.Move{}, fmt.Errorf("%w: %s", entity.ErrUnknownDifficulty, difficulty)
	}
}

func (that *botService) mediumMove(state entity.GameState, moves []entity.Move, side entity.Mark) entity.Move {
	if move, ok := findSubBoardWin(state, moves, side); ok {
		return move
	}

	if move, ok := findSubBoardWin(state, moves, side.Opponent()); ok {
		return move
	}

	return that.randomMove(moves)
}

func (that *botService) hardMove(state entity.GameState, moves []entity.Move, side entity.Mark) entity.Move {
	opponent := side.Opponent()

	if move, ok := findMegaWin(state, moves, side); ok {
		return move
	}

	// only sub-boards the opponent can take on this very cell are considered
	if move, ok := findMegaWin(state, moves, opponent); ok {
		return move
	}

	if move, ok := findSubBoardWin(state, moves, side); ok {
		return move
	}

	if move, ok := findSubBoardWin(state, moves, opponent); ok {
		return move
	}

	if move, ok := that.strategicMove(moves); ok {
		return move
	}

	return that.randomMove(moves)
}

// findSubBoardWin - the first move on which mark would complete a line of its sub-board.
func findSubBoardWin(state entity.GameState, moves []entity.Move, mark entity.Mark) (entity.Move, bool) {
	for _, move := range moves {
		if winsSubBoard(state, move, mark) {
			return move, true
		}
	}

	return entity.Move{}, false
}

// findMegaWin - the first move on which mark would win the sub-board and, with it, a mega-board line.
func findMegaWin(state entity.GameState, moves []entity.Move, mark entity.Mark) (entity.Move, bool) {
	for _, move := range moves {
		if tictactoe.SimulateOutcome(state.Board, move.SubBoard, mark) != mark {
			continue
		}

		if winsSubBoard(state, move, mark) {
			return move, true
		}
	}

	return entity.Move{}, false
}

func winsSubBoard(state entity.GameState, move entity.Move, mark entity.Mark) bool {
	return tictactoe.SimulateCell(state.Board.SubBoards[move.SubBoard], move.Cell, mark) == mark
}

func (that *botService) strategicMove(moves []entity.Move) (entity.Move, bool) {
	for _, group := range strategicCells {
		candidates := make([]entity.Move, 0, len(moves))
		for _, move := range moves {
			for _, cell := range group {
				if move.Cell == cell {
					candidates = append(candidates, move)
				}
			}
		}

		if len(candidates) > 0 {
			return that.randomMove(candidates), true
		}
	}

	return entity.Move{}, false
}

func (that *botService) randomMove(moves []entity.Move) entity.Move {
	return moves[that.rnd.Intn(len(moves))]
}
