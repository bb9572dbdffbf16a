package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

var errQuit = errors.New("quit")

type uGame interface {
	State() entity.GameState
	Settings() entity.Settings
	SessionID() string
	NewGame() entity.GameState
	SetMode(mode entity.Mode) entity.GameState
	SetDifficulty(difficulty entity.Difficulty)
	IsBotTurn() bool

	MakeTurn(ctx context.Context, sessionID string, version int, move entity.Move) (entity.GameState, entity.MoveResult, error)
	BotTurn(ctx context.Context) (entity.GameState, entity.MoveResult, error)

	Stats(ctx context.Context) (*entity.Stats, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	output *termenv.Output

	handlers map[string]func(ctx context.Context, args []string) error
}

// New - a line oriented front end writing to out. Pass termenv.WithProfile to force a color profile.
func New(logger *slog.Logger, uGame uGame, out io.Writer, opts ...termenv.OutputOption) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		output: termenv.NewOutput(out, opts...),

		handlers: make(map[string]func(context.Context, []string) error),
	}

	server.handlers["new"] = server.handleNewGame
	server.handlers["mode"] = server.handleMode
	server.handlers["difficulty"] = server.handleDifficulty
	server.handlers["stats"] = server.handleStats
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Start - reads commands from in until it is exhausted, "quit" is entered or ctx is done.
func (that *Server) Start(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Start")

	that.printf("Ultimate Tic-Tac-Toe. Type \"help\" for commands.\n")
	that.render()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		err := that.handleLine(ctx, scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			log.Debug("command failed", "error", err)
			that.printf("%s\n", that.output.String(err.Error()).Foreground(that.output.Color("3")))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	if move, ok, err := parseMove(fields); ok {
		if err != nil {
			return err
		}

		return that.handleMove(ctx, move)
	}

	handler, ok := that.handlers[fields[0]]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, fields[0])
	}

	return handler(ctx, fields[1:])
}

func (that *Server) handleMove(ctx context.Context, move entity.Move) error {
	state := that.uGame.State()

	_, result, err := that.uGame.MakeTurn(ctx, that.uGame.SessionID(), state.Version, move)
	that.reportResult(result)
	if err != nil && !result.IsTerminal() {
		return err
	}

	that.render()

	if !that.uGame.IsBotTurn() {
		return nil
	}

	that.printf("%s\n", statusLine(that.uGame.State(), that.uGame.Settings(), true))

	before := that.uGame.State()
	next, result, err := that.uGame.BotTurn(ctx)
	if err != nil && !result.IsTerminal() {
		return fmt.Errorf("computer could not move: %w", err)
	}

	if last, ok := lastMove(before, next); ok {
		that.printf("Computer played board %d, cell %d\n", last.SubBoard+1, last.Cell+1)
	}
	that.reportResult(result)
	that.render()

	return nil
}

func (that *Server) handleNewGame(_ context.Context, _ []string) error {
	that.uGame.NewGame()
	that.render()

	return nil
}

func (that *Server) handleMode(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: mode human|bot", errUsage)
	}

	mode, err := entity.ParseMode(args[0])
	if err != nil {
		return err
	}

	that.uGame.SetMode(mode)
	that.render()

	return nil
}

func (that *Server) handleDifficulty(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: difficulty easy|medium|hard", errUsage)
	}

	difficulty, err := entity.ParseDifficulty(args[0])
	if err != nil {
		return err
	}

	that.uGame.SetDifficulty(difficulty)
	that.printf("Difficulty set to %s\n", difficulty)

	return nil
}

func (that *Server) handleStats(ctx context.Context, _ []string) error {
	stats, err := that.uGame.Stats(ctx)
	if err != nil {
		return err
	}

	that.printf("Games played: %d\nX wins: %d\nO wins: %d\nDraws: %d\n",
		stats.GamesPlayed, stats.WinsX, stats.WinsO, stats.Draws)

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf(`Commands:
  <board> <cell>     play a move, both 1-9 counted left to right, top to bottom
  new                start a new game
  mode human|bot     play against a friend or the computer (starts a new game)
  difficulty LEVEL   easy, medium or hard
  stats              show finished game counters
  quit               leave
`)

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

func (that *Server) reportResult(result entity.MoveResult) {
	switch result.Kind {
	case entity.ResultSubBoardWon:
		that.printf("%s takes board %d\n", that.styleMark(result.Winner), result.SubBoard+1)
	case entity.ResultGameWon, entity.ResultGameDrawn:
		that.printf("%s\n", that.output.String(statusLine(that.uGame.State(), that.uGame.Settings(), false)).Bold())
	}
}

func (that *Server) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.output, format, args...)
}

// lastMove - the cell that differs between two consecutive states.
func lastMove(before, after entity.GameState) (entity.Move, bool) {
	for b := range entity.BoardSize {
		for c := range entity.BoardSize {
			if before.Board.SubBoards[b].Cells[c] != after.Board.SubBoards[b].Cells[c] {
				return entity.Move{SubBoard: b, Cell: c}, true
			}
		}
	}

	return entity.Move{}, false
}
