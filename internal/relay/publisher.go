package relay

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher sends a payload to a subject on the message bus.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close() error
}

// natsConnectFunc allows test injection
var natsConnectFunc = nats.Connect

type natsConn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

type natsPublisher struct {
	conn natsConn
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string, opts ...nats.Option) (Publisher, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	opts = append([]nats.Option{nats.Name("notes-relay"), nats.MaxReconnects(-1)}, opts...)
	nc, err := natsConnectFunc(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return &natsPublisher{conn: nc}, nil
}

// Publish hands data to the connection and waits for the server to acknowledge the flush.
func (p *natsPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.conn.Publish(subject, data); err != nil {
		return err
	}
	return p.conn.FlushWithContext(ctx)
}

func (p *natsPublisher) Close() error {
	p.conn.Close()
	return nil
}
