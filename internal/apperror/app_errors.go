package apperror

import "errors"

var (
	ErrInvalidSize     = errors.New("invalid board size")
	ErrOutOfBounds     = errors.New("coordinate is out of bounds")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrInvalidMarks    = errors.New("game needs two distinct non-empty marks")
	ErrMalformedInput  = errors.New("malformed move input")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNoCurrentPlayer = errors.New("no current player")
	ErrEmptyRegistry   = errors.New("no players registered")
	ErrUnknownPlayer   = errors.New("player is not registered")
	ErrGameFinished    = errors.New("game is already finished")
)

// Kind classifies an error by how a caller should react to it.
type Kind int

const (
	KindNone Kind = iota
	// KindMalformedInput - the text could not be read as a coordinate, re-prompt.
	KindMalformedInput
	// KindIllegalMove - out of bounds or occupied, re-prompt.
	KindIllegalMove
	// KindGameFinished - the game reached a terminal state, start a new one.
	KindGameFinished
	// KindFatal - configuration or sequencing fault.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedInput:
		return "malformed_input"
	case KindIllegalMove:
		return "illegal_move"
	case KindGameFinished:
		return "game_finished"
	default:
		return "fatal"
	}
}

// KindOf maps err onto its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrIllegalMove), errors.Is(err, ErrOutOfBounds), errors.Is(err, ErrCellOccupied):
		return KindIllegalMove
	case errors.Is(err, ErrGameFinished):
		return KindGameFinished
	default:
		return KindFatal
	}
}
