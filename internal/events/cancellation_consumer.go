package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BookingCanceller applies an external cancellation to a booking.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, bookingID, canceledBy int64) error
}

// CancellationConsumer listens to the cancellation topic and moves the
// referenced bookings to CANCELED. It is the only producer of that status
// inside this service.
type CancellationConsumer struct {
	consumer *Consumer
	service  BookingCanceller
	logger   *zap.Logger
}

// NewCancellationConsumer creates a CancellationConsumer.
func NewCancellationConsumer(brokers []string, groupID string, service BookingCanceller, logger *zap.Logger) *CancellationConsumer {
	consumer := NewConsumer(brokers, groupID, TopicCancellations, logger)
	return &CancellationConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming cancellation events. Blocks until the context is
// cancelled.
func (c *CancellationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CancellationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CancellationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from cancellation topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	if cloudEvent.Type != CancellationRequested {
		c.logger.Debug("ignoring unhandled cancellation event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	var evt CancellationRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse CancellationRequestedEvent data", zap.Error(err))
		return nil
	}

	c.logger.Info("processing cancellation request",
		zap.Int64("booking_id", evt.BookingID),
		zap.Int64("canceled_by", evt.CanceledBy),
	)

	if err := c.service.CancelBooking(ctx, evt.BookingID, evt.CanceledBy); err != nil {
		// A cancellation that is no longer applicable (already started,
		// already terminal, unknown booking) is final for this message.
		c.logger.Warn("cancellation request not applied",
			zap.Int64("booking_id", evt.BookingID),
			zap.Error(err),
		)
		return nil
	}
	return nil
}
