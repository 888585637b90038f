// Package kafka consumes payment confirmations from the payment collaborator.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/retry"

	"github.com/segmentio/kafka-go"
)

// PaymentConfirmedMessage is the payload of the payment-confirmed topic.
type PaymentConfirmedMessage struct {
	OrderID    string `json:"orderId"`
	PaymentRef string `json:"paymentRef"`
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type paymentConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (commands.ConfirmPaymentResult, error)
}

// PaymentConsumer turns payment-confirmed messages into ConfirmPayment commands.
//
// Offsets are committed manually: after success, and after failures that a redelivery
// cannot fix (malformed payload, unknown order, conflicting reference, canceled order).
// Any other failure is retried with the policy and then stops the consumer without
// committing, so the message is redelivered after restart.
type PaymentConsumer struct {
	reader  MessageReader
	handler paymentConfirmer
	policy  retry.Policy
	logger  *slog.Logger
}

// NewKafkaReader builds a consumer-group reader with auto-commit disabled.
func NewKafkaReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: 0,
	})
}

func NewPaymentConsumer(
	reader MessageReader,
	handler paymentConfirmer,
	policy retry.Policy,
	logger *slog.Logger,
) *PaymentConsumer {
	return &PaymentConsumer{
		reader:  reader,
		handler: handler,
		policy:  policy,
		logger:  logger.With("component", "payment_consumer"),
	}
}

// Run consumes until ctx is done. It closes the reader on return.
func (c *PaymentConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("Failed to close kafka reader", "error", err)
		}
	}()

	c.logger.InfoContext(ctx, "Payment consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Payment consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch payment message: %w", err)
		}

		if err = c.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit payment message at offset %d: %w", msg.Offset, err)
		}
	}
}

// process returns an error only when the message must be redelivered.
func (c *PaymentConsumer) process(ctx context.Context, msg kafka.Message) error {
	log := c.logger.With("partition", msg.Partition, "offset", msg.Offset)

	cmd, err := decodePaymentConfirmed(msg.Value)
	if err != nil {
		log.ErrorContext(ctx, "Dropping malformed payment message", "error", err)
		return nil
	}
	log = log.With("order_id", cmd.OrderID().String())

	attempts, err := c.policy.Do(ctx, func(ctx context.Context) error {
		_, err := c.handler.Handle(ctx, cmd)
		if err != nil && isPermanent(err) {
			return retry.Permanent(err)
		}
		return err
	}, func(err error, attempt int, wait time.Duration) {
		log.WarnContext(ctx, "Payment confirmation failed, retrying",
			"attempt", attempt, "wait", wait, "error", err)
	})

	switch {
	case err == nil:
		return nil
	case isPermanent(err):
		log.ErrorContext(ctx, "Payment confirmation rejected", "error", err)
		return nil
	default:
		return fmt.Errorf("confirm payment for order %s after %d attempt(s): %w", cmd.OrderID(), attempts, err)
	}
}

func decodePaymentConfirmed(value []byte) (commands.ConfirmPaymentCommand, error) {
	var payload PaymentConfirmedMessage
	if err := json.Unmarshal(value, &payload); err != nil {
		return commands.ConfirmPaymentCommand{}, fmt.Errorf("decode payload: %w", err)
	}
	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		return commands.ConfirmPaymentCommand{}, err
	}
	return commands.NewConfirmPaymentCommand(orderID, payload.PaymentRef)
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, order.ErrExternalRefConflict)
}
