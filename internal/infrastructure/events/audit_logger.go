package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// LogAuditLogger writes audit events to the process log as JSON
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates an audit logger over l, or the standard logger when l is nil
func NewLogAuditLogger(l *log.Logger) *LogAuditLogger {
	if l == nil {
		l = log.Default()
	}
	return &LogAuditLogger{logger: l}
}

// LogEvent implements domain.AuditLogger
func (a *LogAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	a.logger.Printf("audit: %s", data)
	return nil
}

// Publisher is the subset of *nats.Conn used for audit delivery
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSAuditLogger publishes audit events on <prefix>.<event_type>
type NATSAuditLogger struct {
	pub    Publisher
	prefix string
}

// NewNATSAuditLogger creates a NATS-backed audit logger
func NewNATSAuditLogger(pub Publisher, prefix string) *NATSAuditLogger {
	return &NATSAuditLogger{pub: pub, prefix: prefix}
}

// Subject returns the subject an event type is published on
func (n *NATSAuditLogger) Subject(t domain.AuditEventType) string {
	if n.prefix == "" {
		return string(t)
	}
	return n.prefix + "." + string(t)
}

// LogEvent implements domain.AuditLogger
func (n *NATSAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	if err := n.pub.Publish(n.Subject(event.EventType), data); err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}
	return nil
}

// MultiAuditLogger fans an event out to every logger and joins their errors
type MultiAuditLogger []domain.AuditLogger

// LogEvent implements domain.AuditLogger
func (m MultiAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	var errs []error
	for _, l := range m {
		if err := l.LogEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConnectNATS dials the NATS server at url with reconnects enabled
func ConnectNATS(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("fittrack-audit"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("nats reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}
