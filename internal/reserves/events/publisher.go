package events

import (
	"context"

	"fablab/pkg/kafka"
	kafka_config "fablab/pkg/kafka/config"
	"fablab/pkg/logger"
	"fablab/pkg/model"
)

const (
	Topic = "fablab.reserves.events"

	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"

	source = "reserves-service"
)

// Publisher emits reservation lifecycle events to Kafka, keyed by the
// service name so all events for one machine land on the same partition.
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewPublisher(cfg *kafka_config.Config, log *logger.Logger) (*Publisher, error) {
	producer, err := kafka.NewProducer(cfg, Topic)
	if err != nil {
		return nil, err
	}

	log.Info("Reservation event publisher initialized", "topic", Topic)
	return &Publisher{producer: producer, log: log}, nil
}

func (p *Publisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) error {
	return p.publish(ctx, EventReservationCreated, reservation)
}

func (p *Publisher) ReservationCancelled(ctx context.Context, reservation *model.Reservation) error {
	return p.publish(ctx, EventReservationCancelled, reservation)
}

func (p *Publisher) publish(ctx context.Context, eventType string, reservation *model.Reservation) error {
	msg := kafka.NewMessage().
		WithKey(reservation.Service).
		WithValue(reservation).
		WithEventID("").
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Published reservation event",
		"event_type", eventType,
		"id", reservation.ID,
		"servei", reservation.Service,
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
