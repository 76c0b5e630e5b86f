package cmd

import (
	"context"
	"fmt"
	"log/slog"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderapi/internal/adapters/out/memory"
	"orderapi/internal/adapters/out/postgres/orderrepo"
	"orderapi/internal/adapters/out/redis/ledgerrepo"
	"orderapi/internal/core/application/usecases/commands"
	"orderapi/internal/core/application/usecases/queries"
	"orderapi/internal/core/ports"
	"orderapi/internal/jobs"
	"orderapi/internal/pkg/keylock"
)

// CompositionRoot wires storage backends, keyed mutexes, and handlers.
// Backend selection follows the config: postgres when DBHost is set,
// redis for the ledger when RedisHost is set, process memory otherwise.
type CompositionRoot struct {
	orders ports.OrderRepository
	ledger ports.IdempotencyLedger

	createKeys *keylock.KeyedMutex
	statusKeys *keylock.KeyedMutex

	jobManager *jobs.JobManager
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		createKeys: keylock.New(),
		statusKeys: keylock.New(),
		logger:     logger,
	}

	if config.DBHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

		db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}

		root.orders = orderrepo.NewGormOrderRepository(db)
		logger.Info("Order storage: postgres", "host", config.DBHost)
	} else {
		root.orders = memory.NewOrderRepository()
		logger.Info("Order storage: in-memory")
	}

	if config.RedisHost != "" {
		root.ledger = ledgerrepo.NewRedisIdempotencyLedger(config.RedisHost, config.IdempotencyTTL)
		logger.Info("Idempotency ledger: redis", "addr", config.RedisHost)
	} else {
		root.ledger = memory.NewIdempotencyLedger()
		logger.Info("Idempotency ledger: in-memory")
		// Cron-based expiry only makes sense for the in-memory ledger;
		// the redis backend expires keys natively.
		root.jobManager = jobs.NewJobManager(root.ledger, config.IdempotencyTTL, logger)
	}

	return root, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders, c.ledger, c.createKeys)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orders, c.statusKeys)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.orders)
}

// StartJobs starts the background jobs, if any are configured.
func (c *CompositionRoot) StartJobs() error {
	if c.jobManager == nil {
		return nil
	}
	return c.jobManager.StartAll()
}

// StopJobs stops the background jobs, if any are configured.
func (c *CompositionRoot) StopJobs() {
	if c.jobManager != nil {
		c.jobManager.StopAll()
	}
}

// SeedSampleData creates a handful of demonstration orders through the
// create handler, so seeded data passes the same validation as API input.
// Fixed idempotency keys make repeated seeding a no-op.
func (c *CompositionRoot) SeedSampleData(ctx context.Context) error {
	handler := c.CreateCreateOrderCommandHandler()

	samples := []struct {
		key        string
		customerID string
		items      []commands.ItemInput
	}{
		{
			key:        "seed-0001",
			customerID: "customer-alpha",
			items: []commands.ItemInput{
				{ProductID: "sku-keyboard", Quantity: 1, UnitPrice: 49.90},
				{ProductID: "sku-mouse", Quantity: 2, UnitPrice: 19.95},
			},
		},
		{
			key:        "seed-0002",
			customerID: "customer-alpha",
			items: []commands.ItemInput{
				{ProductID: "sku-monitor", Quantity: 1, UnitPrice: 229.00},
			},
		},
		{
			key:        "seed-0003",
			customerID: "customer-beta",
			items: []commands.ItemInput{
				{ProductID: "sku-dock", Quantity: 1, UnitPrice: 120.50},
				{ProductID: "sku-cable", Quantity: 3, UnitPrice: 7.25},
			},
		},
	}

	for _, sample := range samples {
		cmd, err := commands.NewCreateOrderCommand(sample.customerID, sample.items, sample.key)
		if err != nil {
			return err
		}

		if _, isNew, err := handler.Handle(ctx, cmd); err != nil {
			return err
		} else if isNew {
			c.logger.Info("Seeded sample order", "customer", sample.customerID)
		}
	}

	return nil
}
