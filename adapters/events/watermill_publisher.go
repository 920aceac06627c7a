package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/luckyroll/walletgate/ports"
)

const (
	// TopicLogin carries successful wallet verifications.
	TopicLogin = "walletgate.login"

	// TopicLogout carries logout acknowledgements. Logout does not revoke
	// the session server-side; consumers use these events for audit only.
	TopicLogout = "walletgate.logout"
)

// AuthEvent is the payload published on both topics.
type AuthEvent struct {
	PublicKey string `json:"public_key"`
	SessionID string `json:"session_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// PublishLogin publishes a login event.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, publicKey string, sessionID string) error {
	return p.publish(TopicLogin, publicKey, sessionID)
}

// PublishLogout publishes a logout event.
func (p *WatermillPublisher) PublishLogout(ctx context.Context, publicKey string, sessionID string) error {
	return p.publish(TopicLogout, publicKey, sessionID)
}

func (p *WatermillPublisher) publish(topic, publicKey, sessionID string) error {
	payload, err := json.Marshal(AuthEvent{
		PublicKey: publicKey,
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(sessionID, payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
