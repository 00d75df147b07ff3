package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	commandNew  = "new"
	commandHelp = "help"
	commandQuit = "quit"
	commandExit = "exit"
)

const (
	msgInvalidInput = "Invalid input format, please try again..."
	msgInvalidSlot  = "Already taken / Invalid board slot, please try again..."
	msgGameOver     = "The game is over. Type 'new' to play again or 'quit' to exit."
	msgDraw         = "No one won..."
	msgHelp         = "Enter a move as row,col (for example 1,2). Commands: new, help, quit."
)

var errQuit = errors.New("quit requested")

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID, raw string) (*entity.Game, tictactoe.MoveResult, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	BoardText(ctx context.Context, gameID string) (string, error)
	EndGame(ctx context.Context, gameID string) error
}

// Server plays one game session over a line-oriented reader and writer.
type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	in       io.Reader
	out      io.Writer
	handlers map[string]func(ctx context.Context, gameID string) error
}

func New(logger *slog.Logger, games gameUseCase, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		games:    games,
		in:       in,
		out:      out,
		handlers: make(map[string]func(context.Context, string) error),
	}

	server.handlers[commandNew] = server.handleNewGame
	server.handlers[commandHelp] = server.handleHelp
	server.handlers[commandQuit] = server.handleQuit
	server.handlers[commandExit] = server.handleQuit

	return server
}

// Run - reads moves until EOF, quit or ctx is canceled.
func (that *Server) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	game, err := that.games.CreateGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	defer func() {
		if endErr := that.games.EndGame(context.WithoutCancel(ctx), game.ID); endErr != nil {
			log.Error("failed to end game", "gameID", game.ID, "error", endErr)
		}
	}()

	log.Info("game has begun", "gameID", game.ID)

	if err = that.render(ctx, game); err != nil {
		return err
	}

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		handler, ok := that.handlers[strings.ToLower(line)]
		if !ok {
			handler = func(ctx context.Context, gameID string) error {
				return that.handleMove(ctx, gameID, line)
			}
		}

		if err = handler(ctx, game.ID); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, gameID, raw string) error {
	game, result, err := that.games.MakeTurn(ctx, gameID, raw)
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	switch result.Kind {
	case apperror.KindNone:
		return that.render(ctx, game)
	case apperror.KindMalformedInput:
		return that.write(msgInvalidInput)
	case apperror.KindIllegalMove:
		return that.write(msgInvalidSlot)
	case apperror.KindGameFinished:
		return that.write(msgGameOver)
	default:
		return fmt.Errorf("unexpected move result: %w", result.Err)
	}
}

func (that *Server) handleNewGame(ctx context.Context, gameID string) error {
	game, err := that.games.RestartGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return that.render(ctx, game)
}

func (that *Server) handleHelp(_ context.Context, _ string) error {
	return that.write(msgHelp)
}

func (that *Server) handleQuit(_ context.Context, _ string) error {
	return errQuit
}

// render - prints the board followed by whose turn it is or how the game ended.
func (that *Server) render(ctx context.Context, game *entity.Game) error {
	board, err := that.games.BoardText(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	switch {
	case game.IsWon() && game.Winner != nil:
		return that.write(board, fmt.Sprintf("%s won!", game.Winner.Mark), msgGameOver)
	case game.IsDraw():
		return that.write(board, msgDraw, msgGameOver)
	case game.Turn != nil:
		return that.write(board, fmt.Sprintf("%s's turn", game.Turn.Mark))
	default:
		return that.write(board)
	}
}

func (that *Server) write(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(that.out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}
