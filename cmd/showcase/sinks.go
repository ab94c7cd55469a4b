package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ProductShowcase/internal/config"
	"ProductShowcase/internal/notify"
	"ProductShowcase/internal/showcase"
)

// backends holds the optional completion sinks and what it takes to check
// and release them.
type backends struct {
	sinks   []notify.Sink
	ready   map[string]showcase.Pinger
	closers []func() error
}

func openBackends(ctx context.Context, cfg config.Config, log *zap.Logger) (*backends, error) {
	b := &backends{ready: make(map[string]showcase.Pinger)}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		b.closers = append(b.closers, client.Close)

		sink := notify.NewRedisSink(client, cfg.Redis.Channel)
		if err := sink.Ping(ctx); err != nil {
			log.Warn("redis not reachable yet", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		b.sinks = append(b.sinks, sink)
		b.ready["redis"] = sink
		log.Info("redis sink enabled", zap.String("addr", cfg.Redis.Addr), zap.String("channel", cfg.Redis.Channel))
	}

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("open postgres: %w", err), b.Close())
		}
		b.closers = append(b.closers, db.Close)

		sink := notify.NewPostgresSink(db)
		if err := sink.EnsureSchema(ctx); err != nil {
			return nil, errors.Join(err, b.Close())
		}
		b.sinks = append(b.sinks, sink)
		b.ready["postgres"] = sink
		log.Info("postgres sink enabled")
	}

	return b, nil
}

func (b *backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}
