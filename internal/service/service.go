package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/internal/repository"
)

type Service struct {
	log  *zap.Logger
	repo repository.Repository

	// now is the wall clock; tests pin it so "today" is deterministic.
	now func() time.Time

	enq       Enqueuer
	loanTopic string

	jwtSecret []byte
	tokenTTL  time.Duration
}

type Option func(*Service)

// WithClock overrides the wall clock used for fine calculation and
// availability derivation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithEnqueuer enables loan event publication.
func WithEnqueuer(enq Enqueuer, topic string) Option {
	return func(s *Service) {
		s.enq = enq
		s.loanTopic = topic
	}
}

func WithAuth(jwtSecret string, tokenTTL time.Duration) Option {
	return func(s *Service) {
		s.jwtSecret = []byte(jwtSecret)
		s.tokenTTL = tokenTTL
	}
}

func NewService(repo repository.Repository, log *zap.Logger, ops ...Option) *Service {
	s := &Service{
		log:      log,
		repo:     repo,
		now:      time.Now,
		tokenTTL: time.Hour * 24,
	}
	for _, op := range ops {
		op(s)
	}
	return s
}

func (s *Service) today() model.Date {
	return model.DateOf(s.now())
}

func (s *Service) publish(event any) {
	if s.enq == nil {
		return
	}
	if err := s.enq.Enqueue(s.loanTopic, event); err != nil {
		s.log.Error("publish loan event", zap.Error(err))
	}
}
