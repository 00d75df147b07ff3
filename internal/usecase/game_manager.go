package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/input"
	"github.com/rocketscienceinc/tictactoe-engine/internal/outcome"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrGameNotFound = errors.New("game not found")

type eventPublisher interface {
	Publish(ctx context.Context, event *entity.Event) error
}

// Settings describe every game the manager creates.
type Settings struct {
	BoardSize      int
	CoordinateBase int
	Marks          []entity.Mark
}

// GameManager keeps independent game sessions keyed by id.
// Sessions never share state; each one is driven by a single caller at a time.
type GameManager struct {
	logger    *slog.Logger
	publisher eventPublisher
	settings  Settings

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu         sync.Mutex
	controller *tictactoe.GameController
	events     *eventBuffer
}

// NewGameManager - publisher may be nil when nobody listens for events.
func NewGameManager(logger *slog.Logger, publisher eventPublisher, settings Settings) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		publisher: publisher,
		settings:  settings,
		sessions:  make(map[string]*session),
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	gameID := uuid.NewString()
	events := &eventBuffer{gameID: gameID}

	controller, err := tictactoe.NewGameController(that.settings.BoardSize, input.NewParser(that.settings.CoordinateBase), events)
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	if err = controller.StartGame(that.settings.Marks); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	that.mu.Lock()
	that.sessions[gameID] = &session{controller: controller, events: events}
	that.mu.Unlock()

	game := controller.Snapshot(gameID)
	that.publish(ctx, newGameEvent(game))

	that.logger.Info("game created", "gameID", gameID, "size", that.settings.BoardSize)

	return game, nil
}

// MakeTurn - submits raw move text to the game. Rejected moves are not errors:
// they come back in the MoveResult with the game unchanged.
func (that *GameManager) MakeTurn(ctx context.Context, gameID, raw string) (*entity.Game, tictactoe.MoveResult, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	s, err := that.getSession(gameID)
	if err != nil {
		return nil, tictactoe.MoveResult{}, err
	}

	s.mu.Lock()
	result, err := s.controller.SubmitMove(raw)
	events := s.events.drain()
	game := s.controller.Snapshot(gameID)
	s.mu.Unlock()

	if err != nil {
		return nil, result, fmt.Errorf("failed to make turn: %w", err)
	}

	if !result.Accepted {
		log.Debug("move rejected", "input", raw, "kind", result.Kind.String(), "error", result.Err)
		return game, result, nil
	}

	for _, event := range events {
		that.publish(ctx, event)
	}

	log.Debug("move accepted", "player", result.Move.Player.Mark, "coord", result.Move.Coord.String(), "status", result.Status)

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status, "winner", winnerMark(game))
	}

	return game, result, nil
}

// RestartGame - starts a fresh game in the same session.
func (that *GameManager) RestartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	s, err := that.getSession(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = s.controller.StartGame(that.settings.Marks)
	s.events.drain()
	game := s.controller.Snapshot(gameID)
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.publish(ctx, newGameEvent(game))

	that.logger.Info("game restarted", "gameID", gameID)

	return game, nil
}

func (that *GameManager) GetGame(_ context.Context, gameID string) (*entity.Game, error) {
	s, err := that.getSession(gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.controller.Snapshot(gameID), nil
}

// BoardText - the game board rendered for a console.
func (that *GameManager) BoardText(_ context.Context, gameID string) (string, error) {
	s, err := that.getSession(gameID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.controller.BoardText(), nil
}

func (that *GameManager) EndGame(_ context.Context, gameID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	delete(that.sessions, gameID)

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) ActiveGames() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}

func (that *GameManager) getSession(gameID string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	s, ok := that.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return s, nil
}

// publish - event delivery is best effort, a failure never undoes a move.
func (that *GameManager) publish(ctx context.Context, event *entity.Event) {
	if that.publisher == nil {
		return
	}

	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish event", "action", event.Action, "gameID", event.GameID, "error", err)
	}
}

func newGameEvent(game *entity.Game) *entity.Event {
	return &entity.Event{
		Action: entity.ActionGameNew,
		GameID: game.ID,
		Status: game.Status,
	}
}

func winnerMark(game *entity.Game) string {
	if game.Winner == nil {
		return ""
	}

	return string(game.Winner.Mark)
}

// eventBuffer collects controller notifications until the manager publishes them.
type eventBuffer struct {
	gameID string
	events []*entity.Event
}

func (that *eventBuffer) OnMove(move entity.Move) {
	that.events = append(that.events, &entity.Event{
		Action: entity.ActionGameTurn,
		GameID: that.gameID,
		Move:   &move,
		Status: entity.StatusInProgress,
	})
}

func (that *eventBuffer) OnGameOver(result outcome.Outcome, winner *entity.Player) {
	event := &entity.Event{
		Action: entity.ActionGameOver,
		GameID: that.gameID,
		Status: result.Status,
	}

	if winner != nil {
		w := *winner
		event.Winner = &w
	}

	that.events = append(that.events, event)
}

func (that *eventBuffer) drain() []*entity.Event {
	events := that.events
	that.events = nil

	return events
}
