package fixture

import (
	"fmt"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

// SubBoard - builds a sub-board from a 9 character row-major layout of 'X', 'O' and '.'.
// The winner is derived from the cells.
func SubBoard(layout string) entity.SubBoard {
	if len(layout) != entity.BoardSize {
		panic(fmt.Sprintf("fixture: layout %q must have %d cells", layout, entity.BoardSize))
	}

	var board entity.SubBoard
	for i, ch := range layout {
		switch ch {
		case 'X':
			board.Cells[i] = entity.PlayerX
		case 'O':
			board.Cells[i] = entity.PlayerO
		case '.':
			board.Cells[i] = entity.EmptyCell
		default:
			panic(fmt.Sprintf("fixture: unexpected cell %q", ch))
		}
	}

	switch winner := tictactoe.CheckSubBoardWinner(board); {
	case winner.IsPlayer():
		board.Winner = winner
	case !board.HasEmptyCell():
		board.Winner = entity.PlayerTie
	}

	return board
}

// State - a playing state with the given sub-boards laid out, turn and active sub-board.
func State(turn entity.Mark, active int, boards map[int]string) entity.GameState {
	state := tictactoe.NewGame()
	state.Turn = turn
	state.ActiveSubBoard = active

	for index, layout := range boards {
		board := SubBoard(layout)
		state.Board.SubBoards[index] = board
		state.Board.Outcomes[index] = board.Winner
		state.IsFirstMove = false
	}

	return state
}
