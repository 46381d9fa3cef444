package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"parcels/internal/domain"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Type string

const (
	TypeRegisterParcel Type = "parcel.register"
	TypeRefreshRate    Type = "rate.refresh"
)

const metadataEnqueuedAt = "enqueued_at"

var (
	ErrUnavailable = errors.New("job queue unavailable")
	ErrQueueClosed = errors.New("job queue is closed")
	ErrUnknownType = errors.New("unknown job type")
)

// Job is one unit of work. ID stays the same across retries and redeliveries.
type Job struct {
	ID         uuid.UUID
	Type       Type
	Payload    json.RawMessage
	Attempt    int
	EnqueuedAt time.Time
}

type Handler func(ctx context.Context, job Job) error

type Config struct {
	// Workers is the number of subscriptions per job type.
	Workers     int
	MaxAttempts int
	// Timeout bounds a single handler invocation.
	Timeout time.Duration
	Backoff BackoffConfig
}

// Queue runs typed jobs over a watermill transport. A message is acked only once its job
// succeeded, failed permanently or ran out of attempts; anything else is redelivered.
type Queue struct {
	cfg        Config
	publisher  message.Publisher
	subscriber message.Subscriber
	metrics    *Metrics

	mu       sync.RWMutex
	handlers map[Type]Handler
	closed   bool
}

// Register binds a handler to a job type. It must be called before Run.
func (q *Queue) Register(jobType Type, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = h
}

// Enqueue returns once the job is stored by the transport.
func (q *Queue) Enqueue(ctx context.Context, jobType Type, payload any) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode %s payload: %w", jobType, err)
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return uuid.Nil, ErrQueueClosed
	}
	if _, ok := q.handlers[jobType]; !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrUnknownType, jobType)
	}

	id := uuid.New()
	msg := message.NewMessage(id.String(), raw)
	msg.Metadata.Set(metadataEnqueuedAt, time.Now().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)

	if err = q.publisher.Publish(topic(jobType), msg); err != nil {
		return uuid.Nil, fmt.Errorf("%w: publish %s: %v", ErrUnavailable, jobType, err)
	}
	q.metrics.enqueued(jobType)
	return id, nil
}

// Run subscribes to every registered job type and blocks until ctx is canceled and
// in-flight jobs are finished. Jobs not acked by then stay with the transport. Run is called once.
func (q *Queue) Run(ctx context.Context) error {
	q.mu.RLock()
	types := make([]Type, 0, len(q.handlers))
	for t := range q.handlers {
		types = append(types, t)
	}
	q.mu.RUnlock()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, jobType := range types {
		for i := 0; i < q.cfg.Workers; i++ {
			messages, err := q.subscriber.Subscribe(subCtx, topic(jobType))
			if err != nil {
				cancel()
				wg.Wait()
				return fmt.Errorf("failed to subscribe to %s: %w", jobType, err)
			}
			wg.Add(1)
			go func(workerID int) {
				defer wg.Done()
				for msg := range messages {
					if subCtx.Err() != nil {
						// delivered after shutdown began; the transport keeps it for the next run
						msg.Nack()
						return
					}
					q.process(subCtx, workerID, jobType, msg)
				}
			}(i)
		}
	}
	logrus.Infof("✅ Job workers started: %d per type, %d types", q.cfg.Workers, len(types))

	<-ctx.Done()
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	wg.Wait()
	logrus.Info("Job workers stopped")
	return nil
}

// Close releases the transport. Call it after Run has returned.
func (q *Queue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	return errors.Join(q.subscriber.Close(), q.publisher.Close())
}

func (q *Queue) process(ctx context.Context, workerID int, jobType Type, msg *message.Message) {
	log := logrus.WithFields(logrus.Fields{
		"job_id":   msg.UUID,
		"job_type": jobType,
		"worker":   workerID,
	})

	q.mu.RLock()
	h, ok := q.handlers[jobType]
	q.mu.RUnlock()

	id, err := uuid.Parse(msg.UUID)
	if !ok || err != nil {
		log.WithError(err).Error("Undeliverable job message, dropped")
		q.metrics.outcome(jobType, outcomeDropped)
		msg.Ack()
		return
	}

	job := Job{ID: id, Type: jobType, Payload: json.RawMessage(msg.Payload), EnqueuedAt: enqueuedAt(msg)}
	for job.Attempt = 1; ; job.Attempt++ {
		log = log.WithField("attempt", job.Attempt)
		err = q.invokeWithTimeout(ctx, h, job)

		switch {
		case err == nil:
			log.Debug("Job succeeded")
			q.metrics.outcome(jobType, outcomeSucceeded)
			msg.Ack()
			return
		case domain.IsPermanent(err):
			log.WithError(err).Warn("Job failed permanently, not retrying")
			q.metrics.outcome(jobType, outcomeDropped)
			msg.Ack()
			return
		case job.Attempt >= q.cfg.MaxAttempts:
			log.WithError(err).Error("Job failed, retries exhausted")
			q.metrics.outcome(jobType, outcomeFailed)
			msg.Ack()
			return
		}

		delay := q.cfg.Backoff.Delay(job.Attempt)
		log.WithError(err).Warnf("Job failed, retrying in %s", delay)
		q.metrics.outcome(jobType, outcomeRetried)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			log.Info("Shutting down, job left for redelivery")
			msg.Nack()
			return
		}
	}
}

func (q *Queue) invokeWithTimeout(ctx context.Context, h Handler, job Job) error {
	// shutdown must not interrupt a job that already started
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.cfg.Timeout)
	defer cancel()

	started := time.Now()
	err := invoke(jobCtx, h, job)
	q.metrics.observe(job.Type, time.Since(started))
	return err
}

func invoke(ctx context.Context, h Handler, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job handler panicked: %v", rec)
		}
	}()
	return h(ctx, job)
}

func enqueuedAt(msg *message.Message) time.Time {
	t, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(metadataEnqueuedAt))
	if err != nil {
		return time.Time{}
	}
	return t
}

// topic names the transport topic of a job type; SQL transports turn it into a table name.
func topic(t Type) string {
	return "jobs_" + strings.ReplaceAll(string(t), ".", "_")
}

// Decode unmarshals the job payload. A malformed payload will never decode, so the error is permanent.
func Decode[T any](job Job) (T, error) {
	var v T
	if err := json.Unmarshal(job.Payload, &v); err != nil {
		return v, domain.Permanent(fmt.Errorf("failed to decode %s payload: %w", job.Type, err))
	}
	return v, nil
}

func NewQueue(cfg Config, publisher message.Publisher, subscriber message.Subscriber, metrics *Metrics) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Queue{
		cfg:        cfg,
		publisher:  publisher,
		subscriber: subscriber,
		metrics:    metrics,
		handlers:   make(map[Type]Handler),
	}
}
