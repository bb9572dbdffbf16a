package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errBadCoordinate  = errors.New("board and cell must be numbers from 1 to 9")
)

const separator = "-------+-------+-------"

// parseMove - ok is true when the line starts with a number, err reports a malformed move.
func parseMove(fields []string) (entity.Move, bool, error) {
	if len(fields) == 0 {
		return entity.Move{}, false, nil
	}

	board, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, false, nil
	}

	if len(fields) != 2 {
		return entity.Move{}, true, fmt.Errorf("%w: %s", errBadCoordinate, strings.Join(fields, " "))
	}

	cell, cellErr := strconv.Atoi(fields[1])
	if cellErr != nil || board < 1 || board > entity.BoardSize || cell < 1 || cell > entity.BoardSize {
		return entity.Move{}, true, fmt.Errorf("%w: %s %s", errBadCoordinate, fields[0], fields[1])
	}

	return entity.Move{SubBoard: board - 1, Cell: cell - 1}, true, nil
}

func (that *Server) render() {
	state := that.uGame.State()

	var builder strings.Builder
	for row := range entity.BoardSize {
		if row > 0 && row%3 == 0 {
			builder.WriteString(separator + "\n")
		}

		for col := range 3 {
			if col > 0 {
				builder.WriteString(" |")
			}

			board := row/3*3 + col
			for cell := row%3*3; cell < row%3*3+3; cell++ {
				builder.WriteString(" " + that.styleCell(state, board, cell))
			}
		}
		builder.WriteString("\n")
	}

	that.printf("\n%s%s\n", builder.String(), that.summary(state))
	that.printf("%s\n", statusLine(state, that.uGame.Settings(), false))
}

func (that *Server) styleCell(state entity.GameState, board, cell int) string {
	subBoard := state.Board.SubBoards[board]

	text := that.output.String(".")
	if mark := subBoard.Cells[cell]; mark != entity.EmptyCell {
		text = that.output.String(that.styleMark(mark))
	}

	switch {
	case subBoard.IsDecided():
		text = text.Faint()
	case state.IsPlaying() && isPlayable(state, board):
		text = text.Underline()
	}

	return text.String()
}

func (that *Server) styleMark(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.output.String(string(mark)).Foreground(that.output.Color("1")).Bold().String()
	case entity.PlayerO:
		return that.output.String(string(mark)).Foreground(that.output.Color("4")).Bold().String()
	default:
		return string(mark)
	}
}

// summary - one line listing decided sub-boards, e.g. "Boards: 1=X 5=draw".
func (that *Server) summary(state entity.GameState) string {
	parts := make([]string, 0, entity.BoardSize)
	for index, outcome := range state.Board.Outcomes {
		switch {
		case outcome.IsPlayer():
			parts = append(parts, fmt.Sprintf("%d=%s", index+1, that.styleMark(outcome)))
		case outcome == entity.PlayerTie:
			parts = append(parts, fmt.Sprintf("%d=draw", index+1))
		}
	}

	if len(parts) == 0 {
		return ""
	}

	return "Boards: " + strings.Join(parts, " ") + "\n"
}

func isPlayable(state entity.GameState, board int) bool {
	if state.ActiveSubBoard != entity.FreeChoice {
		return state.ActiveSubBoard == board
	}

	return state.Board.SubBoards[board].IsOpen()
}

func statusLine(state entity.GameState, settings entity.Settings, thinking bool) string {
	withBot := settings.IsWithBot()

	switch state.Phase {
	case entity.PhaseWon:
		switch {
		case !withBot:
			return fmt.Sprintf("Player %s wins the game!", state.Winner)
		case state.Winner == settings.HumanMark:
			return "You win! Amazing!"
		default:
			return "Computer wins! Better luck next time!"
		}
	case entity.PhaseDrawn:
		return "Game ended in a draw! Well played!"
	}

	if thinking {
		return "Computer is thinking..."
	}

	who := fmt.Sprintf("Player %s's turn", state.Turn)
	if withBot {
		who = "Your turn"
		if state.Turn == settings.BotMark {
			who = "Computer's turn"
		}
	}

	switch {
	case state.IsFirstMove:
		return who + " - choose any cell to start"
	case state.ActiveSubBoard != entity.FreeChoice:
		return fmt.Sprintf("%s - play in board %d", who, state.ActiveSubBoard+1)
	default:
		return who + " - free choice!"
	}
}
