package entity

const (
	ActionGameNew  = "game:new"
	ActionGameTurn = "game:turn"
	ActionGameOver = "game:over"
)

// Event notifies external renderers about a change in a session.
type Event struct {
	Action string  `json:"action"`
	GameID string  `json:"game_id"`
	Move   *Move   `json:"move,omitempty"`
	Status Status  `json:"status"`
	Winner *Player `json:"winner,omitempty"`
}
