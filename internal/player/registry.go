package player

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Registry keeps players in turn order and tracks whose turn it is.
// Marks are expected to be distinct; the caller guarantees it.
type Registry struct {
	players []entity.Player
	current int
}

func NewRegistry() *Registry {
	return &Registry{current: -1}
}

// Reset - forgets every player and the current pointer.
func (that *Registry) Reset() {
	that.players = nil
	that.current = -1
}

// Add - appends a player with the next sequential index.
func (that *Registry) Add(mark entity.Mark) entity.Player {
	p := entity.Player{
		Index: len(that.players),
		Mark:  mark,
	}
	that.players = append(that.players, p)

	return p
}

func (that *Registry) Current() (entity.Player, error) {
	if that.current < 0 || that.current >= len(that.players) {
		return entity.Player{}, apperror.ErrNoCurrentPlayer
	}

	return that.players[that.current], nil
}

func (that *Registry) SetCurrent(p entity.Player) error {
	if p.Index < 0 || p.Index >= len(that.players) || that.players[p.Index] != p {
		return fmt.Errorf("%w: %s (%s)", apperror.ErrUnknownPlayer, p.Name(), p.Mark)
	}

	that.current = p.Index

	return nil
}

// Next - returns the player after the current one, wrapping around.
func (that *Registry) Next() (entity.Player, error) {
	if len(that.players) == 0 {
		return entity.Player{}, apperror.ErrEmptyRegistry
	}

	current, err := that.Current()
	if err != nil {
		return entity.Player{}, err
	}

	return that.players[(current.Index+1)%len(that.players)], nil
}

func (that *Registry) Players() []entity.Player {
	return append([]entity.Player(nil), that.players...)
}

func (that *Registry) Len() int {
	return len(that.players)
}

func (that *Registry) ByMark(mark entity.Mark) (entity.Player, bool) {
	for _, p := range that.players {
		if p.Mark == mark {
			return p, true
		}
	}

	return entity.Player{}, false
}
