package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Mark is a symbol placed on the board. Empty is the only non-player value.
type Mark string

const (
	Empty Mark = ""

	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// DefaultMarks - the marks a game starts with when nothing else is configured.
func DefaultMarks() []Mark {
	return []Mark{PlayerX, PlayerO}
}

// Coord is a zero-based board position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("%d,%d", that.Row, that.Col)
}

// Move is an accepted placement of a player's mark.
type Move struct {
	Player Player `json:"player"`
	Coord  Coord  `json:"coord"`
}

// Game is a read-only snapshot of one session, handed to renderers and events.
type Game struct {
	ID          string   `json:"id"`
	Board       [][]Mark `json:"board"`
	Status      Status   `json:"status"`
	Turn        *Player  `json:"player_turn,omitempty"`
	Winner      *Player  `json:"winner,omitempty"`
	WinningLine []Coord  `json:"winning_line,omitempty"`
	Players     []Player `json:"players,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: unknown game status %q", apperror.ErrNoCurrentPlayer, that.Status)
	}
}
