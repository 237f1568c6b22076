package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects de los eventos del catálogo y de moderación
const (
	ProductCreated      = "product.created"
	ProductUpdated      = "product.updated"
	ProductDeleted      = "product.deleted"
	ProductDuplicated   = "product.duplicated"
	ProductPublished    = "product.published"
	ReviewSubmitted     = "review.submitted"
	ReviewStatusChanged = "review.status_changed"
)

// Event es el cuerpo JSON que se publica
type Event struct {
	Type      string                 `json:"eventType"`
	EntityID  string                 `json:"entityId"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// NewEvent crea un evento con la hora actual
func NewEvent(subject, entityID string, data map[string]interface{}) Event {
	return Event{
		Type:      subject,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher publica eventos de cambios. Un fallo al publicar nunca revierte la escritura.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NATSPublisher publica sobre NATS core, un subject por tipo de evento
type NATSPublisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewNATSPublisher conecta a NATS con reconexión ilimitada
func NewNATSPublisher(url string, log logrus.FieldLogger) (*NATSPublisher, error) {
	entry := log.WithField("component", "events.publisher")

	nc, err := nats.Connect(url,
		nats.Name("laptop-storefront"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			entry.WithField("url", nc.ConnectedUrl()).Info("reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			entry.WithError(err).Warn("disconnected from NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			entry.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: nc, logger: entry}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.conn.Publish(event.Type, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject":   event.Type,
		"entity_id": event.EntityID,
	}).Debug("event published")
	return nil
}

// Close vacía el buffer y cierra la conexión
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher se usa cuando NATS_URL no está configurado
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
