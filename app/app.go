package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fabiopiovam/dj-la-library-system/config"
	"github.com/fabiopiovam/dj-la-library-system/internal/audit"
	"github.com/fabiopiovam/dj-la-library-system/internal/handler"
	"github.com/fabiopiovam/dj-la-library-system/internal/repository"
	"github.com/fabiopiovam/dj-la-library-system/internal/server"
	"github.com/fabiopiovam/dj-la-library-system/internal/service"
	"github.com/fabiopiovam/dj-la-library-system/migrations"
	"github.com/fabiopiovam/dj-la-library-system/pkg/kafka"
	"github.com/fabiopiovam/dj-la-library-system/pkg/logger"
	"github.com/fabiopiovam/dj-la-library-system/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}

	ops := []service.Option{
		service.WithAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	gg, ctx := errgroup.WithContext(runCtx)
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer producer.Close()
		ops = append(ops, service.WithEnqueuer(service.NewEnqueuer(producer), cfg.Kafka.Topic))

		group, err := kafka.NewConsumer(cfg.Kafka, kafka.AuditConsumerGroup)
		if err != nil {
			return fmt.Errorf("kafka consumer %v", err)
		}
		defer group.Close()
		recorder := audit.NewRecorder(db, log)
		gg.Go(func() error {
			if err := kafka.Consume(ctx, group, audit.NewConsumer(recorder.Record, log), cfg.Kafka.Topic); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("kafka consume %v", err)
			}
			return nil
		})
	}
	svc := service.NewService(repo, log, ops...)

	h := handler.New(handler.Services{
		Catalog:   svc,
		Inventory: svc,
		Loan:      svc,
		Reader:    svc,
		Auth:      svc,
	}, []byte(cfg.Auth.JWTSecret), log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	gg.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server run %v", err)
		}
		return nil
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case <-ctx.Done():
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	stop()
	err = gg.Wait()
	db.Close()
	log.Info("Graceful shutdown finished")
	return err
}
