package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/google/uuid"
)

const AuditConsumerGroup = "loan-audit"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
	Topic string   `envconfig:"KAFKA_LOAN_TOPIC" default:"loan-events"`
}

type LoanEventType string

const (
	LoanCheckout LoanEventType = "CHECKOUT"
	LoanReturn   LoanEventType = "RETURN"
	LoanTransfer LoanEventType = "TRANSFER"
)

// LoanEvent is published on every checkout, return and copy transfer.
type LoanEvent struct {
	EventID    uuid.UUID     `json:"eventID"`
	Type       LoanEventType `json:"type"`
	LoanID     int           `json:"loanID"`
	BookItemID int           `json:"bookItemID"`
	ReaderID   int           `json:"readerID"`
	Date       model.Date    `json:"date"`
	Fine       int           `json:"fine"`
}

func NewLoanEvent(typ LoanEventType, loan model.HistoryItem, date model.Date) LoanEvent {
	return LoanEvent{
		EventID:    uuid.New(),
		Type:       typ,
		LoanID:     loan.ID,
		BookItemID: loan.BookItemID,
		ReaderID:   loan.ReaderID,
		Date:       date,
		Fine:       loan.Fine,
	}
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Return.Errors = true

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer group session loop until ctx is canceled.
// Consume must be re-entered after every rebalance, hence the loop.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic string) error {
	for {
		if err := group.Consume(ctx, []string{topic}, handler); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
