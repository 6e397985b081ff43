package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

const DefaultChannel = "onboarding:changes"

// Notifier publishes change notifications on a pub/sub channel.
type Notifier struct {
	client  *redis.Client
	channel string
}

func NewNotifier(client *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{client: client, channel: channel}
}

func (n *Notifier) Publish(ctx context.Context, note domain.ChangeNotification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Channel is the pub/sub channel notifications are published on.
func (n *Notifier) Channel() string {
	return n.channel
}
