package push

import (
	"context"
	"strconv"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/repository"
)

// Notifier is the fire-and-forget contract message flows use. Failures
// are logged, never returned; the badge/notification path is advisory.
type Notifier interface {
	NotifyMessage(ctx context.Context, toUID, fromName, body string, conversationID uint64)
}

type Sender struct {
	client *messaging.Client
	tokens repository.PushTokenRepository
	log    zerolog.Logger
}

func NewSender(client *messaging.Client, tokens repository.PushTokenRepository, log zerolog.Logger) *Sender {
	return &Sender{client: client, tokens: tokens, log: log}
}

func (s *Sender) NotifyMessage(ctx context.Context, toUID, fromName, body string, conversationID uint64) {
	if s.client == nil || toUID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tokens, err := s.tokens.FindByUID(ctx, toUID)
	if err != nil {
		s.log.Error().Err(err).Str("uid", toUID).Msg("push token lookup failed")
		return
	}
	if len(tokens) == 0 {
		return
	}

	regs := make([]string, 0, len(tokens))
	for _, t := range tokens {
		regs = append(regs, t.Token)
	}
	msg := &messaging.MulticastMessage{
		Tokens: regs,
		Notification: &messaging.Notification{
			Title: fromName,
			Body:  body,
		},
		Data: map[string]string{
			"type":           "bazaar_message",
			"conversationId": strconv.FormatUint(conversationID, 10),
		},
	}
	resp, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Str("uid", toUID).Msg("push send failed")
		return
	}
	if resp.FailureCount > 0 {
		s.log.Warn().
			Str("uid", toUID).
			Int("failures", resp.FailureCount).
			Int("successes", resp.SuccessCount).
			Msg("push send partially failed")
	}
}

// NopNotifier is used when FCM is not configured.
type NopNotifier struct{}

func (NopNotifier) NotifyMessage(context.Context, string, string, string, uint64) {}
