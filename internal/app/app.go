// Package app assembles the storage and change notification pieces shared
// by the server and the CLI from a loaded configuration.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/budgetwise/internal/config"
	"github.com/mmynk/budgetwise/internal/events"
	"github.com/mmynk/budgetwise/internal/storage"
	"github.com/mmynk/budgetwise/internal/storage/memory"
	"github.com/mmynk/budgetwise/internal/storage/sqlite"
)

// OpenStore opens the configured storage backend.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		slog.Info("Storage initialized", "backend", config.BackendMemory)
		return memory.New(), nil
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", config.BackendSQLite, "database", cfg.DBPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewPublisher fans changes out to local and, when AMQP_URL is set, to the
// broker. The returned close function releases the broker connection.
func NewPublisher(cfg *config.Config, local ...events.Publisher) (events.Publisher, func() error, error) {
	fanout := events.Fanout(local)
	if cfg.AMQPURL == "" {
		return fanout, func() error { return nil }, nil
	}

	amqp, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, errors.Join(errors.New("failed to connect to AMQP broker"), err)
	}
	slog.Info("Publishing changes", "exchange", cfg.AMQPExchange)
	return append(fanout, amqp), amqp.Close, nil
}
