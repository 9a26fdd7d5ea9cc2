package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/civictrack/issue-reporter/internal/config"
	"github.com/civictrack/issue-reporter/pkg/logger/sl"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the JSON body published for every notification.
type Message struct {
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes notifications to a queue through the default exchange.
type RabbitMQNotifier struct {
	conn    *amqp.Connection
	channel publisher
	closer  func() error
	queue   string
	timeout time.Duration
	log     *slog.Logger
}

func NewRabbitMQNotifier(cfg config.RabbitMQ, log *slog.Logger) (*RabbitMQNotifier, error) {
	const op = "internal.notify.NewRabbitMQNotifier"

	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("%s: rabbitmq url is required", op)
	}

	if strings.TrimSpace(cfg.Queue) == "" {
		return nil, fmt.Errorf("%s: rabbitmq queue is required", op)
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to dial rabbitmq: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: failed to open channel: %w", op, err)
	}

	if _, err := ch.QueueDeclare(cfg.Queue, cfg.QueueDurable, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: failed to declare queue: %w", op, err)
	}

	log.Info("rabbitmq notifier is ready", slog.String("queue", cfg.Queue))

	return &RabbitMQNotifier{
		conn:    conn,
		channel: ch,
		closer:  ch.Close,
		queue:   cfg.Queue,
		timeout: cfg.PublishTimeout,
		log:     log,
	}, nil
}

// Notify publishes the message. A failed publish is logged and dropped.
func (n *RabbitMQNotifier) Notify(ctx context.Context, userID int64, message string) {
	const op = "internal.notify.RabbitMQNotifier.Notify"
	log := n.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	if err := n.publish(ctx, userID, message); err != nil {
		log.Error("failed to publish notification", sl.Err(err))
		notificationsTotal.WithLabelValues("rabbitmq", "failed").Inc()

		return
	}

	notificationsTotal.WithLabelValues("rabbitmq", "sent").Inc()

	log.Debug("notification published", slog.String("queue", n.queue))
}

func (n *RabbitMQNotifier) publish(ctx context.Context, userID int64, message string) error {
	body, err := json.Marshal(Message{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// The request context may already be done once the response is written,
	// so the publish gets its own deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	return n.channel.PublishWithContext(pubCtx, "", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close closes the underlying channel and connection.
func (n *RabbitMQNotifier) Close() error {
	var errs []error

	if n.closer != nil {
		errs = append(errs, n.closer())
	}

	if n.conn != nil {
		errs = append(errs, n.conn.Close())
	}

	return errors.Join(errs...)
}
