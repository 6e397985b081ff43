package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// Subscriber listens on the change channel and feeds the dispatcher.
type Subscriber struct {
	client     *redis.Client
	channel    string
	dispatcher *Dispatcher
	log        zerolog.Logger
}

func NewSubscriber(client *redis.Client, channel string, dispatcher *Dispatcher, log zerolog.Logger) *Subscriber {
	return &Subscriber{client: client, channel: channel, dispatcher: dispatcher, log: log}
}

// Run subscribes and blocks until ctx is cancelled or the subscription closes.
// Malformed payloads are logged and skipped.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}
	s.log.Info().Str("channel", s.channel).Msg("realtime subscriber started")

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var n domain.ChangeNotification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil || n.Collection == "" {
				s.log.Warn().Err(err).Str("payload", msg.Payload).Msg("dropping malformed notification")
				continue
			}
			s.dispatcher.Enqueue(n)
		}
	}
}
