package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Publisher fans game events out over Redis pub/sub. Nothing is stored:
// subscribers that are not listening when an event is published miss it.
type Publisher struct {
	client *redis.Client
	prefix string
}

// Connect - opens a client and checks the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewPublisher(client *redis.Client, prefix string) *Publisher {
	return &Publisher{
		client: client,
		prefix: prefix,
	}
}

// Channel - the channel events of one game are published on.
func (that *Publisher) Channel(gameID string) string {
	return that.prefix + ":" + gameID
}

func (that *Publisher) Publish(ctx context.Context, event *entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(event.GameID), eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Action, err)
	}

	return nil
}

func (that *Publisher) Close() error {
	return that.client.Close()
}
