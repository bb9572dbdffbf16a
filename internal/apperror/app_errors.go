package apperror

import "errors"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is already over")
	ErrOutOfRange      = errors.New("index out of range")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrSubBoardDecided = errors.New("sub-board is already decided")
	ErrWrongSubBoard   = errors.New("move must be played in the active sub-board")
	ErrStaleState      = errors.New("game state has changed")
)
