package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	"fulfillment/internal/adapters/in/zonefile"
	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/adapters/out/events"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/pos"
	"fulfillment/internal/adapters/out/postgres"
	redisadapter "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	orders     queries.OrderReader
	zones      queries.ZoneReader

	publisher ports.EventPublisher
	cache     ports.TrackingCache
	notifier  *commands.ChangeNotifier
	pos       ports.POSClient
	courier   ports.CourierClient

	closers []func() error
}

// NewCompositionRoot wires the adapters selected by cfg. gormDB is required for
// the postgres store driver and ignored for the memory one.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	switch cfg.StoreDriver {
	case StoreDriverMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.orders = store.OrderRepository()
		c.zones = store.ZoneRepository()
	default:
		if gormDB == nil {
			return nil, errors.New("postgres store driver requires a database connection")
		}
		factory := postgres.NewGormUnitOfWorkFactory(gormDB)
		c.uowFactory = factory
		// A unit of work that is never begun reads through the plain connection.
		readers := factory.Create()
		c.orders = readers.OrderRepository()
		c.zones = readers.ZoneRepository()
	}

	if err := c.initPublisher(); err != nil {
		return nil, err
	}
	if cfg.RedisAddr != "" {
		client := redisadapter.NewClient(cfg.RedisAddr)
		c.cache = redisadapter.NewTrackingCache(client, "fulfillment", cfg.TrackingCacheTTL)
		c.closers = append(c.closers, client.Close)
	}
	c.notifier = commands.NewChangeNotifier(c.publisher, c.cache, logger)

	posClient, err := pos.NewClient(cfg.POS)
	if err != nil {
		return nil, fmt.Errorf("pos client: %w", err)
	}
	c.pos = posClient

	courierClient, err := courier.NewClient(cfg.Courier)
	if err != nil {
		return nil, fmt.Errorf("courier client: %w", err)
	}
	c.courier = courierClient

	return c, nil
}

func (c *CompositionRoot) initPublisher() error {
	switch c.cfg.EventsBroker {
	case EventsBrokerKafka:
		publisher := events.NewKafkaPublisher(events.NewKafkaWriter(c.cfg.KafkaBrokers, c.cfg.KafkaOrderChangedTopic))
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
	case EventsBrokerRabbitMQ:
		publisher, err := events.DialRabbitMQ(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("rabbitmq publisher: %w", err)
		}
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
	default:
		c.publisher = events.NewLogPublisher(c.logger)
	}
	return nil
}

// SeedZones loads ZONES_FILE into the zone store, if configured.
func (c *CompositionRoot) SeedZones(ctx context.Context) error {
	if c.cfg.ZonesFile == "" {
		return nil
	}
	tenants, err := zonefile.Load(c.cfg.ZonesFile)
	if err != nil {
		return err
	}
	return zonefile.Seed(ctx, c.uowFactory, tenants, c.logger)
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var problems []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		problems = append(problems, c.closers[i]())
	}
	return errors.Join(problems...)
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uows(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWs(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSyncOrderToPOSCommandHandler() commands.SyncOrderToPOSCommandHandler {
	return commands.NewSyncOrderToPOSCommandHandler(c.orderUoWs(), c.pos, c.cfg.Sync, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.uows(), c.courier, c.cfg.Sync, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	rule := commands.DefaultStatusMappingRule()
	if !c.cfg.CourierAutoAdvance {
		rule = nil
	}
	return commands.NewUpdateDeliveryStatusCommandHandler(
		c.orderUoWs(), c.CreateAdvanceOrderStatusCommandHandler(), rule, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.orderUoWs(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.orders, c.cache, c.logger)
}

func (c *CompositionRoot) CreateResolveDeliveryZoneQueryHandler() queries.ResolveDeliveryZoneQueryHandler {
	return queries.NewResolveDeliveryZoneQueryHandler(c.zones)
}

func (c *CompositionRoot) CreateValidateMinOrderQueryHandler() queries.ValidateMinOrderQueryHandler {
	return queries.NewValidateMinOrderQueryHandler(c.zones)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		AdvanceOrderStatus:   c.CreateAdvanceOrderStatusCommandHandler(),
		ConfirmPayment:       c.CreateConfirmPaymentCommandHandler(),
		SyncOrderToPOS:       c.CreateSyncOrderToPOSCommandHandler(),
		CreateDelivery:       c.CreateCreateDeliveryCommandHandler(),
		UpdateDeliveryStatus: c.CreateUpdateDeliveryStatusCommandHandler(),
		ReconcileOrders:      c.CreateReconcileOrdersCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetOrderTracking:     c.CreateGetOrderTrackingQueryHandler(),
		ResolveDeliveryZone:  c.CreateResolveDeliveryZoneQueryHandler(),
		ValidateMinOrder:     c.CreateValidateMinOrderQueryHandler(),
	}, httpadapter.ReconcileDefaults{
		StaleAfter: c.cfg.ReconcileStaleAfter,
		Limit:      c.cfg.ReconcileLimit,
	}, c.logger)
}

// CreatePaymentConsumer returns nil when no payment topic is configured.
func (c *CompositionRoot) CreatePaymentConsumer() *kafkain.PaymentConsumer {
	if c.cfg.KafkaPaymentConfirmedTopic == "" {
		return nil
	}
	reader := kafkain.NewKafkaReader(c.cfg.KafkaBrokers, c.cfg.KafkaConsumerGroup, c.cfg.KafkaPaymentConfirmedTopic)
	return kafkain.NewPaymentConsumer(reader, c.CreateConfirmPaymentCommandHandler(), c.cfg.Sync, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileOrdersCommandHandler(), jobs.ReconciliationSettings{
		Schedule:   c.cfg.ReconcileSchedule,
		StaleAfter: c.cfg.ReconcileStaleAfter,
		Limit:      c.cfg.ReconcileLimit,
	}, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
