package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/input"
	"github.com/rocketscienceinc/tictactoe-engine/internal/outcome"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
)

// MinBoardSize is the smallest board a game can be played on.
const MinBoardSize = 3

// Listener is notified synchronously from inside SubmitMove.
type Listener interface {
	// OnMove - a mark was written to the board.
	OnMove(move entity.Move)
	// OnGameOver - the game reached a win or a draw. winner is nil on a draw.
	OnGameOver(result outcome.Outcome, winner *entity.Player)
}

// MoveResult reports what happened to one submitted move.
// Rejected moves carry the reason in Kind and Err; the turn is not consumed.
type MoveResult struct {
	Accepted bool
	Kind     apperror.Kind
	Err      error
	Move     *entity.Move
	Status   entity.Status
}

// GameController runs one game at a time: it owns the board and the players
// and is the only place where turns advance.
type GameController struct {
	size      int
	parser    input.Parser
	listeners []Listener

	board   *board.Board
	players *player.Registry
	marks   []entity.Mark
	status  entity.Status
	result  outcome.Outcome
	winner  *entity.Player
	moves   []entity.Move
}

func NewGameController(size int, parser input.Parser, listeners ...Listener) (*GameController, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d, minimum is %d", apperror.ErrInvalidSize, size, MinBoardSize)
	}

	return &GameController{
		size:      size,
		parser:    parser,
		listeners: listeners,
		players:   player.NewRegistry(),
	}, nil
}

// StartGame - discards any previous game and starts a new one with one player per mark.
// The first mark moves first.
func (that *GameController) StartGame(marks []entity.Mark) error {
	if err := validateMarks(marks); err != nil {
		return err
	}

	b, err := board.New(that.size)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	that.players.Reset()
	for _, mark := range marks {
		that.players.Add(mark)
	}

	if err = that.players.SetCurrent(that.players.Players()[0]); err != nil {
		return fmt.Errorf("failed to set first player: %w", err)
	}

	that.board = b
	that.marks = append([]entity.Mark(nil), marks...)
	that.status = entity.StatusInProgress
	that.result = outcome.Outcome{Status: entity.StatusInProgress}
	that.winner = nil
	that.moves = nil

	return nil
}

// SubmitMove - plays raw "row,col" text for the current player.
// Recoverable problems are reported in the result; an error means StartGame was never called.
func (that *GameController) SubmitMove(raw string) (MoveResult, error) {
	if that.board == nil {
		return MoveResult{}, fmt.Errorf("submit move: %w", apperror.ErrNoCurrentPlayer)
	}

	if that.status != entity.StatusInProgress {
		return that.reject(apperror.ErrGameFinished), nil
	}

	coord, err := that.parser.Parse(raw)
	if err != nil {
		return that.reject(err), nil
	}

	current, err := that.players.Current()
	if err != nil {
		return MoveResult{}, fmt.Errorf("submit move: %w", err)
	}

	if err = that.board.Place(coord, current.Mark); err != nil {
		return that.reject(fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)), nil
	}

	move := entity.Move{Player: current, Coord: coord}
	that.moves = append(that.moves, move)
	for _, listener := range that.listeners {
		listener.OnMove(move)
	}

	if err = that.updateGameStatus(); err != nil {
		return MoveResult{}, fmt.Errorf("submit move: %w", err)
	}

	return MoveResult{
		Accepted: true,
		Kind:     apperror.KindNone,
		Move:     &move,
		Status:   that.status,
	}, nil
}

// updateGameStatus - ends the game on a win or draw, otherwise passes the turn on.
func (that *GameController) updateGameStatus() error {
	result := outcome.Evaluate(that.board, that.marks)

	if result.IsFinished() {
		that.status = result.Status
		that.result = result

		if winner, ok := that.players.ByMark(result.Mark); ok && result.Status == entity.StatusWon {
			that.winner = &winner
		}

		for _, listener := range that.listeners {
			listener.OnGameOver(result, that.winner)
		}

		return nil
	}

	next, err := that.players.Next()
	if err != nil {
		return err
	}

	return that.players.SetCurrent(next)
}

func (that *GameController) reject(err error) MoveResult {
	return MoveResult{
		Accepted: false,
		Kind:     apperror.KindOf(err),
		Err:      err,
		Status:   that.status,
	}
}

func (that *GameController) Status() entity.Status {
	return that.status
}

// Winner - the player who completed a line; false while in progress or on a draw.
func (that *GameController) Winner() (entity.Player, bool) {
	if that.winner == nil {
		return entity.Player{}, false
	}

	return *that.winner, true
}

// WinningLine - the line that ended the game, nil unless the game was won.
func (that *GameController) WinningLine() *outcome.Line {
	return that.result.Line
}

func (that *GameController) CurrentPlayer() (entity.Player, error) {
	return that.players.Current()
}

// BoardSnapshot - copy of the board rows, nil before the first StartGame.
func (that *GameController) BoardSnapshot() [][]entity.Mark {
	if that.board == nil {
		return nil
	}

	return that.board.Rows()
}

// BoardText - the board rendered as text, empty before the first StartGame.
func (that *GameController) BoardText() string {
	if that.board == nil {
		return ""
	}

	return that.board.String()
}

// Moves - accepted moves in the order they were played.
func (that *GameController) Moves() []entity.Move {
	return append([]entity.Move(nil), that.moves...)
}

// Snapshot - the current game as a value detached from the controller.
func (that *GameController) Snapshot(id string) *entity.Game {
	game := &entity.Game{
		ID:      id,
		Board:   that.BoardSnapshot(),
		Status:  that.status,
		Players: that.players.Players(),
	}

	if that.status == entity.StatusInProgress {
		if current, err := that.players.Current(); err == nil {
			game.Turn = &current
		}
	}

	if that.winner != nil {
		winner := *that.winner
		game.Winner = &winner
	}

	if line := that.result.Line; line != nil {
		game.WinningLine = append([]entity.Coord(nil), line.Cells...)
	}

	return game
}

func validateMarks(marks []entity.Mark) error {
	if len(marks) != 2 {
		return fmt.Errorf("%w: got %d marks", apperror.ErrInvalidMarks, len(marks))
	}

	if marks[0] == entity.Empty || marks[1] == entity.Empty || marks[0] == marks[1] {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMarks, marks)
	}

	return nil
}
