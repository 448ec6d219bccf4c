package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	// LoginTopic carries successful authentications.
	LoginTopic = "auth.login"

	// NonceRevokedTopic carries explicit challenge revocations.
	NonceRevokedTopic = "auth.nonce_revoked"
)

// LoginEvent is published after a wallet completes the challenge.
type LoginEvent struct {
	Address string `json:"address"`
}

// NonceRevokedEvent is published when a pending challenge is revoked.
type NonceRevokedEvent struct {
	Address string `json:"address"`
}

// WatermillPublisher implements the EventPublisher interface on a Watermill
// publisher. The concrete transport (redis streams in production, gochannel
// in tests) is the caller's choice.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill-backed event publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a login event for the address.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, address string) error {
	return p.publish(LoginTopic, LoginEvent{Address: address})
}

// PublishNonceRevoked publishes a revocation event for the address.
func (p *WatermillPublisher) PublishNonceRevoked(ctx context.Context, address string) error {
	return p.publish(NonceRevokedTopic, NonceRevokedEvent{Address: address})
}

func (p *WatermillPublisher) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
