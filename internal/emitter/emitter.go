package emitter

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/adapter"
	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/logger"
)

// Publisher publishes custody events for settled operations
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	PublishCustodyEvent(ctx context.Context, event *domain.CustodyEvent) error
	Close()
}

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher creates a new NATS JetStream custody event publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// PublishCustodyEvent publishes a custody event to NATS JetStream
func (p *publisher) PublishCustodyEvent(ctx context.Context, event *domain.CustodyEvent) error {
	logger.Debug("Publishing custody event", zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Format: custody.{kind}, e.g. custody.deposited, custody.transfer_executed
	subject := fmt.Sprintf("custody.%s", event.Kind)

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}

// NoopPublisher discards custody events, used when NATS is not configured
type NoopPublisher struct{}

func (NoopPublisher) PublishCustodyEvent(_ context.Context, _ *domain.CustodyEvent) error {
	return nil
}

func (NoopPublisher) Close() {}
