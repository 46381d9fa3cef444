package jobs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
)

type SQLTransportConfig struct {
	// ConsumerGroup is shared by every process running workers, so each job is handled once.
	ConsumerGroup string
	PollInterval  time.Duration
}

// NewSQLTransport stores jobs in Postgres tables created on first use, one per job type.
func NewSQLTransport(db *sql.DB, cfg SQLTransportConfig) (message.Publisher, message.Subscriber, error) {
	logger := NewLogrusAdapter(logrus.StandardLogger())
	var beginner watermillsql.Beginner = db

	pub, err := watermillsql.NewPublisher(
		beginner,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create job publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(
		beginner,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    cfg.ConsumerGroup,
			PollInterval:     cfg.PollInterval,
		},
		logger,
	)
	if err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("failed to create job subscriber: %w", err)
	}
	return pub, sub, nil
}

// LogrusAdapter routes watermill logs through logrus.
type LogrusAdapter struct {
	entry *logrus.Entry
}

func NewLogrusAdapter(logger *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{entry: logrus.NewEntry(logger).WithField("component", "watermill")}
}

func (a *LogrusAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)
}

func (a *LogrusAdapter) Info(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

func (a *LogrusAdapter) Debug(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (a *LogrusAdapter) Trace(msg string, fields watermill.LogFields) {
	a.entry.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (a *LogrusAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &LogrusAdapter{entry: a.entry.WithFields(logrus.Fields(fields))}
}
