package backend

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	publisher, closeAMQP := f.connectAMQP(config)
	svc := services.NewTransactionService(repo, publisher, closeAMQP, repo.Close)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &BackendResult{
		Backend: svc,
		Cleanup: svc.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	publisher, closeAMQP := f.connectAMQP(config)
	svc := services.NewTransactionService(memory.New(), publisher, closeAMQP)

	f.logger.Info("Initialized memory backend", "amqp_enabled", publisher != nil)

	return &BackendResult{
		Backend: svc,
		Cleanup: svc.Close,
	}, nil
}

// connectAMQP dials the broker when configured. Notifications are optional,
// so a failed dial is logged and the backend runs without them.
func (f *DefaultFactory) connectAMQP(config Config) (services.EventPublisher, func() error) {
	if config.AMQPURL == "" {
		return nil, nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without notifications",
			applog.FieldError, err)
		return nil, nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"routing_key", config.AMQPRoutingKey)
	return client, client.Close
}
