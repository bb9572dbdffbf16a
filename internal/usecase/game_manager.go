package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe/internal/tictactoe"
)

type statsRepo interface {
	Increment(ctx context.Context, names ...string) error
	Get(ctx context.Context) (*entity.Stats, error)
}

type bot interface {
	ChooseMove(state entity.GameState, difficulty entity.Difficulty, side entity.Mark) (entity.Move, error)
}

// ThinkDelay - the pause before a computer move is applied: Min plus a random share of Jitter.
type ThinkDelay struct {
	Min    time.Duration
	Jitter time.Duration
}

func (that ThinkDelay) wait(ctx context.Context) error {
	delay := that.Min
	if that.Jitter > 0 {
		delay += rand.N(that.Jitter) //nolint: gosec // cosmetic delay
	}

	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GameManager - holds the authoritative state of one local session.
type GameManager struct {
	logger    *slog.Logger
	statsRepo statsRepo
	bot       bot
	delay     ThinkDelay

	mu        sync.Mutex
	sessionID string
	settings  entity.Settings
	state     entity.GameState
}

func NewGameManager(logger *slog.Logger, statsRepo statsRepo, bot bot, settings entity.Settings, delay ThinkDelay) *GameManager {
	manager := &GameManager{
		logger:    logger.With("component", "game_manager"),
		statsRepo: statsRepo,
		bot:       bot,
		delay:     delay,
		settings:  settings,
	}
	manager.reset()

	return manager
}

func (that *GameManager) State() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *GameManager) Settings() entity.Settings {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.settings
}

func (that *GameManager) SessionID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.sessionID
}

// NewGame - discards the current game and starts a fresh one.
func (that *GameManager) NewGame() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.reset()

	return that.state
}

// SetMode - switching modes always starts a new game.
func (that *GameManager) SetMode(mode entity.Mode) entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.settings.Mode = mode
	that.reset()

	return that.state
}

func (that *GameManager) SetDifficulty(difficulty entity.Difficulty) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.settings.Difficulty = difficulty
	that.logger.Info("difficulty changed", "session", that.sessionID, "difficulty", difficulty)
}

func (that *GameManager) IsBotTurn() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.isBotTurn()
}

// MakeTurn - applies a human move against the session and state version the caller rendered.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, version int, move entity.Move) (entity.GameState, entity.MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sessionID != that.sessionID || version != that.state.Version {
		return that.state, entity.MoveResult{}, apperror.ErrStaleState
	}

	if that.isBotTurn() {
		return that.state, entity.MoveResult{}, apperror.ErrNotYourTurn
	}

	return that.apply(ctx, move, that.state.Turn)
}

// BotTurn - picks the computer's move, waits the think delay and applies it
// unless the game changed in the meantime.
func (that *GameManager) BotTurn(ctx context.Context) (entity.GameState, entity.MoveResult, error) {
	log := that.logger.With("method", "BotTurn")

	that.mu.Lock()
	if !that.isBotTurn() {
		state := that.state
		that.mu.Unlock()

		return state, entity.MoveResult{}, apperror.ErrNotYourTurn
	}
	snapshot, sessionID, settings := that.state, that.sessionID, that.settings
	that.mu.Unlock()

	move, err := that.bot.ChooseMove(snapshot, settings.Difficulty, settings.BotMark)
	if err != nil {
		return snapshot, entity.MoveResult{}, fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = that.delay.wait(ctx); err != nil {
		return snapshot, entity.MoveResult{}, fmt.Errorf("bot turn interrupted: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sessionID != sessionID || that.state.Version != snapshot.Version {
		log.Info("discarding bot move computed for an outdated state", "session", sessionID, "version", snapshot.Version)

		return that.state, entity.MoveResult{}, apperror.ErrStaleState
	}

	return that.apply(ctx, move, settings.BotMark)
}

func (that *GameManager) Stats(ctx context.Context) (*entity.Stats, error) {
	stats, err := that.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// apply - must be called with mu held.
func (that *GameManager) apply(ctx context.Context, move entity.Move, player entity.Mark) (entity.GameState, entity.MoveResult, error) {
	log := that.logger.With("method", "apply", "session", that.sessionID)

	next, result, err := tictactoe.ApplyMove(that.state, move, player)
	if err != nil {
		return that.state, result, fmt.Errorf("failed to make turn: %w", err)
	}

	that.state = next
	log.Debug("move applied", "player", player, "sub_board", move.SubBoard, "cell", move.Cell, "result", result.Kind)

	if !result.IsTerminal() {
		return next, result, nil
	}

	log.Info("game finished", "result", result.Kind, "winner", result.Winner)

	if err = that.statsRepo.Increment(ctx, entity.StatIncrements(result)...); err != nil {
		log.Error("could not record game result", "error", err)

		return next, result, fmt.Errorf("failed to record result: %w", err)
	}

	return next, result, nil
}

func (that *GameManager) isBotTurn() bool {
	return that.settings.IsWithBot() && that.state.IsPlaying() && that.state.Turn == that.settings.BotMark
}

func (that *GameManager) reset() {
	that.sessionID = uuid.NewString()
	that.state = tictactoe.NewGame()

	that.logger.Info("new game", "session", that.sessionID, "mode", that.settings.Mode, "difficulty", that.settings.Difficulty)
}
