package cmd

import (
	"log/slog"

	"pharmacy/internal/adapters/out/kafka"
	"pharmacy/internal/adapters/out/memory"
	"pharmacy/internal/adapters/out/notify"
	"pharmacy/internal/adapters/out/postgres"
	"pharmacy/internal/adapters/out/postgres/cartrepo"
	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/services"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/jobs"
	"pharmacy/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	cartRepository ports.CartRepository
	publisher      ports.OrderEventPublisher
	notifier       ports.Notifier
	planner        services.CapacityPlanner

	registry      *prometheus.Registry
	engineMetrics *metrics.EngineMetrics
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()

	// Guest carts live in process memory; customer carts go to postgres.
	// The router picks the backend from the owner reference.
	cartRepository := memory.NewOwnerRoutedCartRepository(
		cartrepo.NewGormCartRepository(gormDB),
		memory.NewInMemoryCartRepository(),
	)

	return CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		cartRepository: cartRepository,
		publisher:      kafka.NewOrderEventPublisher(config.KafkaHost, config.KafkaOrderChangedTopic),
		notifier:       notify.NewLogNotifier(logger),
		planner:        services.NewCapacityPlanner(config.MaxOrdersPerSlot),
		registry:       registry,
		engineMetrics:  metrics.NewEngineMetrics(registry),
		logger:         logger,
	}
}

// Registry exposes the metrics registry for the /metrics endpoint.
func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

// Publisher exposes the event publisher so main can close it on shutdown.
func (c *CompositionRoot) Publisher() ports.OrderEventPublisher {
	return c.publisher
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	uow := c.uowFactory.Create()
	return commands.NewAddCartItemCommandHandler(c.cartRepository, uow.StockItemRepository())
}

func (c *CompositionRoot) CreateUpdateCartQuantityCommandHandler() commands.UpdateCartQuantityCommandHandler {
	return commands.NewUpdateCartQuantityCommandHandler(c.cartRepository)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartRepository)
}

func (c *CompositionRoot) CreateMergeGuestCartCommandHandler() commands.MergeGuestCartCommandHandler {
	return commands.NewMergeGuestCartCommandHandler(c.cartRepository)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.cartRepository, c.publisher, c.engineMetrics, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.engineMetrics, c.logger)
}

func (c *CompositionRoot) CreateUploadPrescriptionCommandHandler() commands.UploadPrescriptionCommandHandler {
	return commands.NewUploadPrescriptionCommandHandler(c.prescriptionUoWFactory())
}

func (c *CompositionRoot) CreateApprovePrescriptionCommandHandler() commands.ApprovePrescriptionCommandHandler {
	return commands.NewApprovePrescriptionCommandHandler(
		c.prescriptionUoWFactory(), c.notifier, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectPrescriptionCommandHandler() commands.RejectPrescriptionCommandHandler {
	return commands.NewRejectPrescriptionCommandHandler(c.prescriptionUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReuploadPrescriptionCommandHandler() commands.ReuploadPrescriptionCommandHandler {
	return commands.NewReuploadPrescriptionCommandHandler(c.prescriptionUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.config.MaxDriverLoad, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.deliveryProgressUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(
		c.deliveryProgressUoWFactory(), c.notifier, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(
		c.deliveryProgressUoWFactory(), c.notifier, c.publisher, c.engineMetrics, c.logger)
}

func (c *CompositionRoot) CreateAddDriverCommandHandler() commands.AddDriverCommandHandler {
	return commands.NewAddDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateAddStockItemCommandHandler() commands.AddStockItemCommandHandler {
	var f commands.CatalogUoWFactory = FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddStockItemCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCapacityQueryHandler() queries.GetCapacityQueryHandler {
	return queries.NewGetCapacityQueryHandler(c.gormDB, c.planner)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingPrescriptionsQueryHandler() queries.GetPendingPrescriptionsQueryHandler {
	return queries.NewGetPendingPrescriptionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetPendingPrescriptionsQueryHandler(),
		c.CreateGetCapacityQueryHandler(),
		c.config.PrescriptionReminderMaxAge,
		c.engineMetrics,
		c.logger,
	)
}

func (c *CompositionRoot) prescriptionUoWFactory() commands.PrescriptionUoWFactory {
	return FuncPrescriptionUoWFactory(func() commands.PrescriptionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryProgressUoWFactory() commands.DeliveryProgressUoWFactory {
	return FuncDeliveryProgressUoWFactory(func() commands.DeliveryProgressUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPrescriptionUoWFactory func() commands.PrescriptionUoW

func (f FuncPrescriptionUoWFactory) Create() commands.PrescriptionUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

type FuncDeliveryProgressUoWFactory func() commands.DeliveryProgressUoW

func (f FuncDeliveryProgressUoWFactory) Create() commands.DeliveryProgressUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}
