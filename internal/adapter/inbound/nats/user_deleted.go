package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

const defaultHandleTimeout = 10 * time.Second

// UserDeletedHandler tears down plugin data for a deleted account.
type UserDeletedHandler interface {
	FireDeleteUser(ctx context.Context, accountID types.ID) error
}

// userDeletedMessage is the payload the host publishes when an account is deleted.
type userDeletedMessage struct {
	AccountID string `json:"account_id"`
}

// Subscriber consumes account-deleted notifications from the host.
type Subscriber struct {
	conn          *nats.Conn
	subject       string
	queue         string
	handler       UserDeletedHandler
	handleTimeout time.Duration
	logger        logging.Logger

	sub *nats.Subscription
}

// SubscriberConfig holds configuration for the account-deleted subscriber.
type SubscriberConfig struct {
	Subject       string
	Queue         string
	HandleTimeout time.Duration
}

// NewSubscriber creates a new Subscriber.
func NewSubscriber(conn *nats.Conn, cfg SubscriberConfig, handler UserDeletedHandler, logger logging.Logger) *Subscriber {
	timeout := cfg.HandleTimeout
	if timeout <= 0 {
		timeout = defaultHandleTimeout
	}
	return &Subscriber{
		conn:          conn,
		subject:       cfg.Subject,
		queue:         cfg.Queue,
		handler:       handler,
		handleTimeout: timeout,
		logger:        logger,
	}
}

// Start subscribes. Messages are handled on the connection's dispatch goroutine.
func (s *Subscriber) Start() error {
	var (
		sub *nats.Subscription
		err error
	)
	if s.queue != "" {
		sub, err = s.conn.QueueSubscribe(s.subject, s.queue, s.handle)
	} else {
		sub, err = s.conn.Subscribe(s.subject, s.handle)
	}
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.subject, err)
	}
	s.sub = sub

	s.logger.Info("subscribed to account deletions", "subject", s.subject, "queue", s.queue)
	return nil
}

// Stop drains the subscription.
func (s *Subscriber) Stop() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Drain()
}

func (s *Subscriber) handle(msg *nats.Msg) {
	var payload userDeletedMessage
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		s.logger.Warn("dropping malformed account deletion message",
			"subject", msg.Subject,
			"error", err,
		)
		return
	}

	accountID := types.ID(payload.AccountID)
	if accountID.IsEmpty() {
		s.logger.Warn("dropping account deletion message without account id", "subject", msg.Subject)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.handleTimeout)
	defer cancel()

	if err := s.handler.FireDeleteUser(ctx, accountID); err != nil {
		s.logger.Error("account data teardown failed",
			"account_id", accountID.String(),
			"error", err,
		)
		return
	}

	s.logger.Info("account data removed", "account_id", accountID.String())
}
