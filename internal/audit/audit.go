// Package audit persists the loan event stream into an append-only log,
// off the request path.
package audit

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/pkg/kafka"
)

type Recorder struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRecorder(db *sqlx.DB, log *zap.Logger) *Recorder {
	return &Recorder{
		db:  db,
		log: log.Named("audit"),
	}
}

// Record inserts one loan event. Replayed events are recognized by their
// event id and skipped, so redelivery after a rebalance is harmless.
func (r *Recorder) Record(ctx context.Context, event kafka.LoanEvent) error {
	q := `insert into loan_events (event_id, event_type, loan_id, book_item_id, reader_id, event_date, fine)
	values ($1, $2, $3, $4, $5, $6, $7)
	on conflict (event_id) do nothing`
	_, err := r.db.ExecContext(ctx, q,
		event.EventID, event.Type, event.LoanID, event.BookItemID, event.ReaderID, event.Date, event.Fine)
	return err
}

type record func(ctx context.Context, event kafka.LoanEvent) error

type Consumer struct {
	recordHandler record
	log           *zap.Logger
}

func NewConsumer(record record, log *zap.Logger) *Consumer {
	return &Consumer{
		recordHandler: record,
		log:           log.Named("consumer"),
	}
}

// Setup runs at the start of every session, including each rebalance, so
// it must be safe to call repeatedly.
func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.LoanEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("unmarshal loan event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.recordHandler(context.Background(), event); err != nil {
				consumer.log.Error("record loan event", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
