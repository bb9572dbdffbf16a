package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	mockedUseCase "github.com/rocketscienceinc/ultimate-tictactoe/mocks/usecase"
	"github.com/rocketscienceinc/ultimate-tictactoe/testing/fixture"
)

var errRedisDown = errors.New("redis down")

func newTestManager(t *testing.T, mode entity.Mode, delay ThinkDelay) (*GameManager, *mockedUseCase.MockstatsRepo, *mockedUseCase.Mockbot) {
	t.Helper()

	mockStatsRepo := mockedUseCase.NewMockstatsRepo(t)
	mockBot := mockedUseCase.NewMockbot(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewGameManager(logger, mockStatsRepo, mockBot, entity.NewSettings(mode, entity.DifficultyHard), delay)

	return manager, mockStatsRepo, mockBot
}

// nearlyWon - X to move in sub-board 8 with the 0-4-8 diagonal one cell away.
func nearlyWon() entity.GameState {
	state := fixture.State(entity.PlayerX, 8, map[int]string{
		0: "XXX.O..O.",
		4: "X..OX.O.X",
		8: "XX..O....",
	})
	state.Version = 12

	return state
}

// nearlyLost - O to move in sub-board 8 with the 0-4-8 diagonal one cell away.
func nearlyLost() entity.GameState {
	state := fixture.State(entity.PlayerO, 8, map[int]string{
		0: "OOO.X..X.",
		4: "O..XO.X.O",
		8: "OO..X....",
	})
	state.Version = 13

	return state
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a human move", func(t *testing.T) {
		// Given: a fresh human vs human game
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})

		// When: X plays the center of sub-board 0
		state, result, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})

		// Then: O is sent to sub-board 4
		require.NoError(t, err)
		assert.Equal(t, entity.ResultContinue, result.Kind)
		assert.Equal(t, 4, state.ActiveSubBoard)
		assert.Equal(t, entity.PlayerO, state.Turn)
		assert.Equal(t, state, manager.State())
	})

	t.Run("Both humans take turns", func(t *testing.T) {
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})

		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		state, _, err := manager.MakeTurn(ctx, manager.SessionID(), 1, entity.Move{SubBoard: 4, Cell: 0})
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, state.Board.SubBoards[4].Cells[0])
		assert.Equal(t, entity.PlayerX, state.Turn)
	})

	t.Run("Rejects a move made against an outdated state", func(t *testing.T) {
		// Given: a game where one move was already played
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)
		before := manager.State()

		// When: a caller replays a move computed for version 0
		_, _, err = manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 4, Cell: 4})

		// Then: ErrStaleState is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrStaleState)
		assert.Equal(t, before, manager.State())
	})

	t.Run("Rejects a move made for a previous game", func(t *testing.T) {
		// Given: a caller rendered a fresh game, then a new game was started
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		oldSession := manager.SessionID()
		manager.NewGame()

		// When: the caller plays against the old session at the same version
		_, _, err := manager.MakeTurn(ctx, oldSession, 0, entity.Move{SubBoard: 0, Cell: 4})

		// Then: ErrStaleState is returned and the new game is untouched
		require.ErrorIs(t, err, apperror.ErrStaleState)
		assert.True(t, manager.State().IsFirstMove)
		assert.Zero(t, manager.State().Version)
	})

	t.Run("Rejects a human move on the computer's turn", func(t *testing.T) {
		// Given: a bot game after the human's first move
		manager, _, _ := newTestManager(t, entity.ModeBot, ThinkDelay{})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)
		require.True(t, manager.IsBotTurn())

		// When: the human tries to move again
		_, _, err = manager.MakeTurn(ctx, manager.SessionID(), 1, entity.Move{SubBoard: 4, Cell: 4})

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Wraps illegal moves", func(t *testing.T) {
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		_, _, err = manager.MakeTurn(ctx, manager.SessionID(), 1, entity.Move{SubBoard: 0, Cell: 0})

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrWrongSubBoard)
	})

	t.Run("Records a win for side A", func(t *testing.T) {
		// Given: X is one move from completing the diagonal
		manager, mockStatsRepo, _ := newTestManager(t, entity.ModeBot, ThinkDelay{})
		manager.state = nearlyWon()

		mockStatsRepo.EXPECT().
			Increment(mock.Anything, entity.StatGamesPlayed, entity.StatWinsX).
			Return(nil).
			Once()

		// When: X plays the winning cell
		state, result, err := manager.MakeTurn(ctx, manager.SessionID(), 12, entity.Move{SubBoard: 8, Cell: 2})

		// Then: the game is won and the counters are bumped
		require.NoError(t, err)
		assert.Equal(t, entity.ResultGameWon, result.Kind)
		assert.Equal(t, entity.PhaseWon, state.Phase)
		assert.False(t, manager.IsBotTurn())
	})

	t.Run("Counter failures do not roll back the move", func(t *testing.T) {
		manager, mockStatsRepo, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		manager.state = nearlyWon()

		mockStatsRepo.EXPECT().
			Increment(mock.Anything, entity.StatGamesPlayed, entity.StatWinsX).
			Return(errRedisDown).
			Once()

		state, result, err := manager.MakeTurn(ctx, manager.SessionID(), 12, entity.Move{SubBoard: 8, Cell: 2})

		require.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, entity.ResultGameWon, result.Kind)
		assert.Equal(t, entity.PhaseWon, state.Phase)
		assert.Equal(t, state, manager.State())
	})

	t.Run("Rejects moves after the game is over", func(t *testing.T) {
		manager, mockStatsRepo, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		manager.state = nearlyWon()
		mockStatsRepo.EXPECT().Increment(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		state, _, err := manager.MakeTurn(ctx, manager.SessionID(), 12, entity.Move{SubBoard: 8, Cell: 2})
		require.NoError(t, err)

		_, _, err = manager.MakeTurn(ctx, manager.SessionID(), state.Version, entity.Move{SubBoard: 1, Cell: 1})
		require.ErrorIs(t, err, apperror.ErrGameOver)
	})
}

func TestGameManager_BotTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the advisor's move", func(t *testing.T) {
		// Given: a bot game after the human's first move
		manager, _, mockBot := newTestManager(t, entity.ModeBot, ThinkDelay{})
		afterHuman, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		mockBot.EXPECT().
			ChooseMove(afterHuman, entity.DifficultyHard, entity.PlayerO).
			Return(entity.Move{SubBoard: 4, Cell: 0}, nil).
			Once()

		// When: the computer takes its turn
		state, result, err := manager.BotTurn(ctx)

		// Then: O's move is applied and it is X's turn in sub-board 0
		require.NoError(t, err)
		assert.Equal(t, entity.ResultContinue, result.Kind)
		assert.Equal(t, entity.PlayerO, state.Board.SubBoards[4].Cells[0])
		assert.Equal(t, entity.PlayerX, state.Turn)
		assert.Equal(t, 0, state.ActiveSubBoard)
		assert.False(t, manager.IsBotTurn())
	})

	t.Run("Records a win for side B", func(t *testing.T) {
		manager, mockStatsRepo, mockBot := newTestManager(t, entity.ModeBot, ThinkDelay{})
		manager.state = nearlyLost()

		mockBot.EXPECT().
			ChooseMove(mock.Anything, entity.DifficultyHard, entity.PlayerO).
			Return(entity.Move{SubBoard: 8, Cell: 2}, nil).
			Once()
		mockStatsRepo.EXPECT().
			Increment(mock.Anything, entity.StatGamesPlayed, entity.StatWinsO).
			Return(nil).
			Once()

		state, result, err := manager.BotTurn(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.ResultGameWon, result.Kind)
		assert.Equal(t, entity.PlayerO, state.Winner)
	})

	t.Run("Refuses to move on the human's turn", func(t *testing.T) {
		manager, _, _ := newTestManager(t, entity.ModeBot, ThinkDelay{})

		_, _, err := manager.BotTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Refuses to move in a human game", func(t *testing.T) {
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		_, _, err = manager.BotTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Discards the move when the game was reset meanwhile", func(t *testing.T) {
		// Given: a bot game where a reset happens while the computer is thinking
		manager, _, mockBot := newTestManager(t, entity.ModeBot, ThinkDelay{})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		mockBot.EXPECT().
			ChooseMove(mock.Anything, entity.DifficultyHard, entity.PlayerO).
			Run(func(entity.GameState, entity.Difficulty, entity.Mark) {
				manager.NewGame()
			}).
			Return(entity.Move{SubBoard: 4, Cell: 0}, nil).
			Once()

		// When: the computer finishes thinking
		state, _, err := manager.BotTurn(ctx)

		// Then: the move is rejected and the new game is untouched
		require.ErrorIs(t, err, apperror.ErrStaleState)
		assert.True(t, state.IsFirstMove)
		assert.Equal(t, entity.EmptyCell, manager.State().Board.SubBoards[4].Cells[0])
	})

	t.Run("Stops waiting when the context is cancelled", func(t *testing.T) {
		manager, _, mockBot := newTestManager(t, entity.ModeBot, ThinkDelay{Min: time.Hour})
		_, _, err := manager.MakeTurn(ctx, manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		mockBot.EXPECT().
			ChooseMove(mock.Anything, mock.Anything, mock.Anything).
			Return(entity.Move{SubBoard: 4, Cell: 0}, nil).
			Once()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err = manager.BotTurn(cancelled)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, manager.State().Version)
	})
}

func TestGameManager_Settings(t *testing.T) {
	t.Run("Switching mode starts a new game", func(t *testing.T) {
		// Given: a human game with one move played
		manager, _, _ := newTestManager(t, entity.ModeHuman, ThinkDelay{})
		_, _, err := manager.MakeTurn(context.Background(), manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)
		previousSession := manager.SessionID()

		// When: switching to bot mode
		state := manager.SetMode(entity.ModeBot)

		// Then: the board is fresh and a new session begins
		assert.True(t, state.IsFirstMove)
		assert.Equal(t, entity.ModeBot, manager.Settings().Mode)
		assert.NotEqual(t, previousSession, manager.SessionID())
	})

	t.Run("Changing difficulty keeps the game", func(t *testing.T) {
		manager, _, _ := newTestManager(t, entity.ModeBot, ThinkDelay{})
		_, _, err := manager.MakeTurn(context.Background(), manager.SessionID(), 0, entity.Move{SubBoard: 0, Cell: 4})
		require.NoError(t, err)

		manager.SetDifficulty(entity.DifficultyEasy)

		assert.Equal(t, entity.DifficultyEasy, manager.Settings().Difficulty)
		assert.Equal(t, 1, manager.State().Version)
	})
}

func TestGameManager_Stats(t *testing.T) {
	manager, mockStatsRepo, _ := newTestManager(t, entity.ModeBot, ThinkDelay{})

	mockStatsRepo.EXPECT().
		Get(mock.Anything).
		Return(&entity.Stats{GamesPlayed: 3, WinsX: 1, Draws: 2}, nil).
		Once()

	stats, err := manager.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.GamesPlayed)

	mockStatsRepo.EXPECT().Get(mock.Anything).Return(nil, errRedisDown).Once()

	_, err = manager.Stats(context.Background())
	require.ErrorIs(t, err, errRedisDown)
}
