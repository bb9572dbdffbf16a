package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

// NewGame - returns the initial state: empty board, X to move, free choice.
func NewGame() entity.GameState {
	return entity.GameState{
		Turn:           entity.PlayerX,
		ActiveSubBoard: entity.FreeChoice,
		Phase:          entity.PhasePlaying,
		Winner:         entity.EmptyCell,
		IsFirstMove:    true,
	}
}

// WinningLine - returns the mark owning one of the 8 lines of a 3x3 grid, or EmptyCell.
// It serves both the cells of a sub-board and the outcomes of the mega-board.
func WinningLine(cells [entity.BoardSize]entity.Mark) entity.Mark {
	for _, combo := range entity.WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if a.IsPlayer() && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

func CheckSubBoardWinner(board entity.SubBoard) entity.Mark {
	return WinningLine(board.Cells)
}

func CheckMegaBoardWinner(board entity.MegaBoard) entity.Mark {
	return WinningLine(board.Outcomes)
}

// SimulateCell - the line winner of the sub-board if mark were placed on cell.
func SimulateCell(board entity.SubBoard, cell int, mark entity.Mark) entity.Mark {
	board.Cells[cell] = mark

	return WinningLine(board.Cells)
}

// SimulateOutcome - the mega-board winner if sub-board index were owned by mark.
func SimulateOutcome(board entity.MegaBoard, index int, mark entity.Mark) entity.Mark {
	board.Outcomes[index] = mark

	return WinningLine(board.Outcomes)
}

func IsLegalMove(state entity.GameState, move entity.Move) bool {
	return checkMove(state, move) == nil
}

// ValidateMove - checks everything ApplyMove requires, in the order it reports failures.
func ValidateMove(state entity.GameState, move entity.Move, player entity.Mark) error {
	if !move.InRange() {
		return fmt.Errorf("%w: sub-board %d, cell %d", apperror.ErrOutOfRange, move.SubBoard, move.Cell)
	}

	if !state.IsPlaying() {
		return apperror.ErrGameOver
	}

	if state.Turn != player {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrNotYourTurn)
	}

	if err := checkMove(state, move); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	return nil
}

// checkMove - board-level legality, ignoring whose turn it is.
func checkMove(state entity.GameState, move entity.Move) error {
	if !move.InRange() {
		return apperror.ErrOutOfRange
	}

	if !state.IsPlaying() {
		return apperror.ErrGameOver
	}

	board := state.Board.SubBoards[move.SubBoard]

	if board.Cells[move.Cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	if board.IsDecided() {
		return apperror.ErrSubBoardDecided
	}

	if state.ActiveSubBoard != entity.FreeChoice && state.ActiveSubBoard != move.SubBoard {
		return apperror.ErrWrongSubBoard
	}

	return nil
}

// ApplyMove - plays move for player and returns the resulting state. The given state is not modified.
func ApplyMove(state entity.GameState, move entity.Move, player entity.Mark) (entity.GameState, entity.MoveResult, error) {
	if err := ValidateMove(state, move, player); err != nil {
		return state, entity.MoveResult{}, err
	}

	next := state
	next.Board.SubBoards[move.SubBoard].Cells[move.Cell] = player
	next.IsFirstMove = false
	next.Version++

	result := entity.MoveResult{Kind: entity.ResultContinue, SubBoard: entity.FreeChoice}

	board := &next.Board.SubBoards[move.SubBoard]
	switch winner := CheckSubBoardWinner(*board); {
	case winner.IsPlayer():
		board.Winner = winner
		next.Board.Outcomes[move.SubBoard] = winner
		result = entity.MoveResult{Kind: entity.ResultSubBoardWon, SubBoard: move.SubBoard, Winner: winner}

		if megaWinner := CheckMegaBoardWinner(next.Board); megaWinner.IsPlayer() {
			finish(&next, entity.PhaseWon, megaWinner)

			return next, entity.MoveResult{Kind: entity.ResultGameWon, SubBoard: move.SubBoard, Winner: megaWinner}, nil
		}
	case !board.HasEmptyCell():
		board.Winner = entity.PlayerTie
		next.Board.Outcomes[move.SubBoard] = entity.PlayerTie
	}

	if IsGameDrawn(next) {
		finish(&next, entity.PhaseDrawn, entity.EmptyCell)

		return next, entity.MoveResult{Kind: entity.ResultGameDrawn, SubBoard: entity.FreeChoice}, nil
	}

	next.Turn = player.Opponent()
	next.ActiveSubBoard = ComputeActiveSubBoard(next, move.Cell)

	return next, result, nil
}

func finish(state *entity.GameState, phase entity.Phase, winner entity.Mark) {
	state.Phase = phase
	state.Winner = winner
	state.Turn = entity.EmptyCell
	state.ActiveSubBoard = entity.FreeChoice
}

// IsGameDrawn - true when no sub-board can take another move. A full sub-board without a line stays closed.
func IsGameDrawn(state entity.GameState) bool {
	for _, board := range state.Board.SubBoards {
		if board.IsOpen() {
			return false
		}
	}

	return true
}

// ComputeActiveSubBoard - the sub-board the next player is sent to, or FreeChoice when it is closed.
func ComputeActiveSubBoard(state entity.GameState, lastCell int) int {
	if lastCell < 0 || lastCell >= entity.BoardSize {
		return entity.FreeChoice
	}

	if state.Board.SubBoards[lastCell].IsOpen() {
		return lastCell
	}

	return entity.FreeChoice
}

// LegalMoves - every legal move, sub-board by sub-board, cell by cell.
func LegalMoves(state entity.GameState) []entity.Move {
	if !state.IsPlaying() {
		return nil
	}

	moves := make([]entity.Move, 0, entity.BoardSize)
	for boardIndex := range entity.BoardSize {
		for cellIndex := range entity.BoardSize {
			move := entity.Move{SubBoard: boardIndex, Cell: cellIndex}
			if IsLegalMove(state, move) {
				moves = append(moves, move)
			}
		}
	}

	return moves
}
