package entity

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"
)

// IsPlayer reports whether the mark belongs to one of the two sides.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent - returns the other side, or EmptyCell for non-player marks.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

type Phase string

const (
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
	PhaseDrawn   Phase = "draw"
)

const (
	BoardSize = 9

	// FreeChoice means the side to move may pick any open sub-board.
	FreeChoice = -1
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type SubBoard struct {
	Cells  [BoardSize]Mark `json:"cells"`
	Winner Mark            `json:"winner"`
}

// IsDecided - a sub-board is decided once it has a winner or ended drawn.
func (that SubBoard) IsDecided() bool {
	return that.Winner != EmptyCell
}

func (that SubBoard) HasEmptyCell() bool {
	for _, cell := range that.Cells {
		if cell == EmptyCell {
			return true
		}
	}

	return false
}

// IsOpen reports whether the sub-board can still receive moves.
func (that SubBoard) IsOpen() bool {
	return !that.IsDecided() && that.HasEmptyCell()
}

type MegaBoard struct {
	SubBoards [BoardSize]SubBoard `json:"sub_boards"`
	Outcomes  [BoardSize]Mark     `json:"outcomes"`
}

type GameState struct {
	Board          MegaBoard `json:"board"`
	Turn           Mark      `json:"player_turn"`
	ActiveSubBoard int       `json:"active_sub_board"`
	Phase          Phase     `json:"phase"`
	Winner         Mark      `json:"winner"`
	IsFirstMove    bool      `json:"is_first_move"`
	Version        int       `json:"version"`
}

func (that GameState) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that GameState) IsFinished() bool {
	return that.Phase == PhaseWon || that.Phase == PhaseDrawn
}

type Move struct {
	SubBoard int `json:"sub_board"`
	Cell     int `json:"cell"`
}

func (that Move) InRange() bool {
	return that.SubBoard >= 0 && that.SubBoard < BoardSize && that.Cell >= 0 && that.Cell < BoardSize
}

type ResultKind string

const (
	ResultContinue    ResultKind = "continue"
	ResultSubBoardWon ResultKind = "sub-board-won"
	ResultGameWon     ResultKind = "game-won"
	ResultGameDrawn   ResultKind = "game-drawn"
)

// MoveResult - the outcome of an applied move. SubBoard and Winner are set for
// ResultSubBoardWon, Winner alone for ResultGameWon.
type MoveResult struct {
	Kind     ResultKind `json:"kind"`
	SubBoard int        `json:"sub_board"`
	Winner   Mark       `json:"winner"`
}

func (that MoveResult) IsTerminal() bool {
	return that.Kind == ResultGameWon || that.Kind == ResultGameDrawn
}
