package tictactoe

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/input"
	"github.com/rocketscienceinc/tictactoe-engine/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.Empty
)

type recordingListener struct {
	moves   []entity.Move
	results []outcome.Outcome
	winners []*entity.Player
}

func (that *recordingListener) OnMove(move entity.Move) {
	that.moves = append(that.moves, move)
}

func (that *recordingListener) OnGameOver(result outcome.Outcome, winner *entity.Player) {
	that.results = append(that.results, result)
	that.winners = append(that.winners, winner)
}

func newStartedGame(t *testing.T, listeners ...Listener) *GameController {
	t.Helper()

	game, err := NewGameController(3, input.NewParser(0), listeners...)
	require.NoError(t, err)
	require.NoError(t, game.StartGame(entity.DefaultMarks()))

	return game
}

func play(t *testing.T, game *GameController, moves ...string) {
	t.Helper()

	for _, raw := range moves {
		result, err := game.SubmitMove(raw)
		require.NoError(t, err, raw)
		require.True(t, result.Accepted, "move %s rejected: %v", raw, result.Err)
	}
}

func TestNewGameController(t *testing.T) {
	t.Run("Rejects boards smaller than 3x3", func(t *testing.T) {
		for _, size := range []int{-1, 0, 1, 2} {
			_, err := NewGameController(size, input.NewParser(0))
			require.ErrorIs(t, err, apperror.ErrInvalidSize)
		}
	})

	t.Run("Not started until StartGame", func(t *testing.T) {
		// Given: a fresh controller
		game, err := NewGameController(3, input.NewParser(0))
		require.NoError(t, err)

		// When: a move is submitted before StartGame
		_, err = game.SubmitMove("0,0")

		// Then: a sequencing error is returned
		require.ErrorIs(t, err, apperror.ErrNoCurrentPlayer)
		assert.Nil(t, game.BoardSnapshot())
		assert.Equal(t, "", game.BoardText())

		_, err = game.CurrentPlayer()
		require.ErrorIs(t, err, apperror.ErrNoCurrentPlayer)
	})
}

func TestGameController_StartGame(t *testing.T) {
	t.Run("Initial state", func(t *testing.T) {
		// When: a game is started
		game := newStartedGame(t)

		// Then: the board is empty, X moves first and nobody has won
		expectedBoard := [][]entity.Mark{
			{e, e, e},
			{e, e, e},
			{e, e, e},
		}
		assert.Equal(t, expectedBoard, game.BoardSnapshot())
		assert.Equal(t, entity.StatusInProgress, game.Status())

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, entity.Player{Index: 0, Mark: x}, current)

		_, won := game.Winner()
		assert.False(t, won)
		assert.Nil(t, game.WinningLine())
	})

	t.Run("Rejects invalid marks", func(t *testing.T) {
		game, err := NewGameController(3, input.NewParser(0))
		require.NoError(t, err)

		for _, marks := range [][]entity.Mark{
			nil,
			{x},
			{x, x},
			{x, e},
			{x, o, "Z"},
		} {
			err = game.StartGame(marks)
			require.ErrorIs(t, err, apperror.ErrInvalidMarks, "marks %q", marks)
		}
	})

	t.Run("Restart discards the previous game", func(t *testing.T) {
		// Given: a finished game
		game := newStartedGame(t)
		play(t, game, "0,0", "1,1", "0,1", "1,0", "0,2")
		require.Equal(t, entity.StatusWon, game.Status())

		// When: a new game is started with swapped marks
		require.NoError(t, game.StartGame([]entity.Mark{o, x}))

		// Then: everything is fresh and O moves first
		assert.Equal(t, entity.StatusInProgress, game.Status())
		assert.Empty(t, game.Moves())
		_, won := game.Winner()
		assert.False(t, won)

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, o, current.Mark)

		for _, row := range game.BoardSnapshot() {
			for _, cell := range row {
				assert.Equal(t, e, cell)
			}
		}
	})
}

func TestGameController_SubmitMove(t *testing.T) {
	t.Run("Accepted move places the mark and passes the turn", func(t *testing.T) {
		// Given: a new game
		game := newStartedGame(t)

		// When: X plays the center
		result, err := game.SubmitMove("1,1")
		require.NoError(t, err)

		// Then: the move is accepted and O is up
		assert.True(t, result.Accepted)
		assert.Equal(t, apperror.KindNone, result.Kind)
		require.NotNil(t, result.Move)
		assert.Equal(t, entity.Move{Player: entity.Player{Index: 0, Mark: x}, Coord: entity.Coord{Row: 1, Col: 1}}, *result.Move)
		assert.Equal(t, entity.StatusInProgress, result.Status)

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, o, current.Mark)
	})

	t.Run("Error on malformed input", func(t *testing.T) {
		// Given: a game with one move played
		game := newStartedGame(t)
		play(t, game, "0,0")
		before := game.BoardSnapshot()

		// When: O submits text that is not a coordinate
		result, err := game.SubmitMove("a,b")
		require.NoError(t, err)

		// Then: the move is rejected and O is still up
		assert.False(t, result.Accepted)
		assert.Equal(t, apperror.KindMalformedInput, result.Kind)
		require.ErrorIs(t, result.Err, apperror.ErrMalformedInput)
		assert.Equal(t, before, game.BoardSnapshot())

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, o, current.Mark)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds the center
		game := newStartedGame(t)
		play(t, game, "1,1")
		before := game.BoardSnapshot()

		// When: O plays the center too
		result, err := game.SubmitMove("1,1")
		require.NoError(t, err)

		// Then: the move is rejected, the board is unchanged and it's still O's turn
		assert.False(t, result.Accepted)
		assert.Equal(t, apperror.KindIllegalMove, result.Kind)
		require.ErrorIs(t, result.Err, apperror.ErrIllegalMove)
		require.ErrorIs(t, result.Err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.BoardSnapshot())
		assert.Len(t, game.Moves(), 1)

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, o, current.Mark)
	})

	t.Run("Error on out of bounds", func(t *testing.T) {
		game := newStartedGame(t)

		result, err := game.SubmitMove("3,0")
		require.NoError(t, err)

		assert.False(t, result.Accepted)
		assert.Equal(t, apperror.KindIllegalMove, result.Kind)
		require.ErrorIs(t, result.Err, apperror.ErrOutOfBounds)

		current, err := game.CurrentPlayer()
		require.NoError(t, err)
		assert.Equal(t, x, current.Mark)
	})

	t.Run("X wins on row 0", func(t *testing.T) {
		// Given: a listener and a new game
		listener := &recordingListener{}
		game := newStartedGame(t, listener)

		// When: X completes the top row
		play(t, game, "0,0", "1,1", "0,1", "1,0", "0,2")

		// Then: the game is won by X on row 0
		assert.Equal(t, entity.StatusWon, game.Status())

		winner, won := game.Winner()
		require.True(t, won)
		assert.Equal(t, entity.Player{Index: 0, Mark: x}, winner)

		line := game.WinningLine()
		require.NotNil(t, line)
		assert.Equal(t, outcome.LineRow, line.Kind)
		assert.Equal(t, 0, line.Index)

		// Then: listeners saw every move and exactly one game over
		assert.Len(t, listener.moves, 5)
		require.Len(t, listener.results, 1)
		assert.Equal(t, entity.StatusWon, listener.results[0].Status)
		require.NotNil(t, listener.winners[0])
		assert.Equal(t, x, listener.winners[0].Mark)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a listener and a new game
		listener := &recordingListener{}
		game := newStartedGame(t, listener)

		// When: the board fills up as X O X / X O O / O X X
		play(t, game, "0,0", "0,1", "0,2", "1,1", "1,0", "1,2", "2,1", "2,0", "2,2")

		// Then: the game is a draw with no winner
		expectedBoard := [][]entity.Mark{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}
		assert.Equal(t, expectedBoard, game.BoardSnapshot())
		assert.Equal(t, entity.StatusDraw, game.Status())

		_, won := game.Winner()
		assert.False(t, won)

		require.Len(t, listener.results, 1)
		assert.Equal(t, entity.StatusDraw, listener.results[0].Status)
		assert.Nil(t, listener.winners[0])
	})

	t.Run("Win on the last cell is not a draw", func(t *testing.T) {
		// Given: eight moves that leave (2,0) open with X to play
		game := newStartedGame(t)
		play(t, game, "0,0", "0,1", "1,0", "1,1", "0,2", "1,2", "2,1", "2,2")

		// When: X fills the last cell completing column 0
		result, err := game.SubmitMove("2,0")
		require.NoError(t, err)

		// Then: X wins although the board is full
		assert.True(t, result.Accepted)
		assert.Equal(t, entity.StatusWon, result.Status)

		winner, won := game.Winner()
		require.True(t, won)
		assert.Equal(t, x, winner.Mark)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game that X has already won
		game := newStartedGame(t)
		play(t, game, "0,0", "1,1", "0,1", "1,0", "0,2")
		before := game.BoardSnapshot()

		// When: O tries to keep playing
		result, err := game.SubmitMove("2,2")
		require.NoError(t, err)

		// Then: the move is rejected and nothing changes
		assert.False(t, result.Accepted)
		assert.Equal(t, apperror.KindGameFinished, result.Kind)
		require.ErrorIs(t, result.Err, apperror.ErrGameFinished)
		assert.Equal(t, before, game.BoardSnapshot())
		assert.Equal(t, entity.StatusWon, game.Status())
	})
}

func TestGameController_TurnOrder(t *testing.T) {
	// Given: a new game
	game := newStartedGame(t)

	// When: moves are played with rejected ones mixed in
	var turns []entity.Mark
	for _, raw := range []string{"0,0", "0,0", "bad", "1,1", "2,2", "9,9", "0,2"} {
		current, err := game.CurrentPlayer()
		require.NoError(t, err)

		result, err := game.SubmitMove(raw)
		require.NoError(t, err)

		if result.Accepted {
			turns = append(turns, current.Mark)
		}
	}

	// Then: accepted moves strictly alternate X, O, X, O
	assert.Equal(t, []entity.Mark{x, o, x, o}, turns)
}

func TestGameController_ReplayReproducesBoard(t *testing.T) {
	// Given: a played-out game
	game := newStartedGame(t)
	play(t, game, "1,1", "0,0", "2,2", "0,2", "0,1", "2,1", "1,0")

	// When: the accepted moves are replayed onto an empty board
	replayed, err := board.New(3)
	require.NoError(t, err)

	for _, move := range game.Moves() {
		require.NoError(t, replayed.Place(move.Coord, move.Player.Mark))
	}

	// Then: the boards are identical
	assert.Equal(t, game.BoardSnapshot(), replayed.Rows())
}

func TestGameController_OneBasedInput(t *testing.T) {
	game, err := NewGameController(3, input.NewParser(1))
	require.NoError(t, err)
	require.NoError(t, game.StartGame(entity.DefaultMarks()))

	result, err := game.SubmitMove("1,1")
	require.NoError(t, err)
	require.True(t, result.Accepted)
	assert.Equal(t, entity.Coord{Row: 0, Col: 0}, result.Move.Coord)

	result, err = game.SubmitMove("0,1")
	require.NoError(t, err)
	assert.Equal(t, apperror.KindIllegalMove, result.Kind)
}

func TestGameController_LargerBoard(t *testing.T) {
	// Given: a 4x4 game
	game, err := NewGameController(4, input.NewParser(0))
	require.NoError(t, err)
	require.NoError(t, game.StartGame(entity.DefaultMarks()))

	// When: X fills the main diagonal while O plays row 0
	for i := 0; i < 4; i++ {
		play(t, game, fmt.Sprintf("%d,%d", i, i))
		if i < 3 {
			play(t, game, fmt.Sprintf("0,%d", i+1))
		}
	}

	// Then: X wins on the main diagonal
	assert.Equal(t, entity.StatusWon, game.Status())
	line := game.WinningLine()
	require.NotNil(t, line)
	assert.Equal(t, outcome.LineDiagonal, line.Kind)
	assert.Len(t, line.Cells, 4)
}

func TestGameController_Snapshot(t *testing.T) {
	t.Run("In progress", func(t *testing.T) {
		game := newStartedGame(t)
		play(t, game, "0,0")

		snapshot := game.Snapshot("game-1")

		assert.Equal(t, "game-1", snapshot.ID)
		assert.Equal(t, entity.StatusInProgress, snapshot.Status)
		require.NotNil(t, snapshot.Turn)
		assert.Equal(t, o, snapshot.Turn.Mark)
		assert.Nil(t, snapshot.Winner)
		assert.Len(t, snapshot.Players, 2)
		assert.Equal(t, x, snapshot.Board[0][0])
	})

	t.Run("Won", func(t *testing.T) {
		game := newStartedGame(t)
		play(t, game, "0,0", "1,1", "0,1", "1,0", "0,2")

		snapshot := game.Snapshot("game-2")

		assert.True(t, snapshot.IsWon())
		assert.Nil(t, snapshot.Turn)
		require.NotNil(t, snapshot.Winner)
		assert.Equal(t, x, snapshot.Winner.Mark)
		assert.Equal(t, []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, snapshot.WinningLine)
	})
}
