package entity

import "fmt"

// Player is identified by its position in the turn order.
type Player struct {
	Index int  `json:"index"`
	Mark  Mark `json:"mark"`
}

func (that Player) Name() string {
	return fmt.Sprintf("Player %d", that.Index+1)
}
