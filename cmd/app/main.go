package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"pharmacy/cmd"
	httpin "pharmacy/internal/adapters/in/http"
	"pharmacy/internal/adapters/out/postgres/cartrepo"
	"pharmacy/internal/adapters/out/postgres/deliveryrepo"
	"pharmacy/internal/adapters/out/postgres/driverrepo"
	"pharmacy/internal/adapters/out/postgres/itemrepo"
	"pharmacy/internal/adapters/out/postgres/ledger"
	"pharmacy/internal/adapters/out/postgres/orderrepo"
	"pharmacy/internal/adapters/out/postgres/prescriptionrepo"
	"pharmacy/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := app.Publisher().Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                  goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic:     goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		JWTSecret:                  goDotEnvVariable("JWT_SECRET"),
		MaxOrdersPerSlot:           intEnvVariable("MAX_ORDERS_PER_SLOT", 5),
		MaxDriverLoad:              intEnvVariable("MAX_DRIVER_LOAD", 3),
		PrescriptionReminderMaxAge: durationEnvVariable("PRESCRIPTION_REMINDER_MAX_AGE", 4*time.Hour),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&itemrepo.StockItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&ledger.ReservationDTO{},
		&ledger.ReservationLineDTO{},
		&cartrepo.CartLineDTO{},
		&prescriptionrepo.PrescriptionDTO{},
		&deliveryrepo.DeliveryDTO{},
		&driverrepo.DriverDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpin.NewServer(httpin.Handlers{
		AddCartItem:           app.CreateAddCartItemCommandHandler(),
		UpdateCartQuantity:    app.CreateUpdateCartQuantityCommandHandler(),
		RemoveCartItem:        app.CreateRemoveCartItemCommandHandler(),
		MergeGuestCart:        app.CreateMergeGuestCartCommandHandler(),
		Checkout:              app.CreateCheckoutCommandHandler(),
		CancelOrder:           app.CreateCancelOrderCommandHandler(),
		UploadPrescription:    app.CreateUploadPrescriptionCommandHandler(),
		ApprovePrescription:   app.CreateApprovePrescriptionCommandHandler(),
		RejectPrescription:    app.CreateRejectPrescriptionCommandHandler(),
		ReuploadPrescription:  app.CreateReuploadPrescriptionCommandHandler(),
		AssignDriver:          app.CreateAssignDriverCommandHandler(),
		StartDelivery:         app.CreateStartDeliveryCommandHandler(),
		MarkDelivered:         app.CreateMarkDeliveredCommandHandler(),
		ReportIssue:           app.CreateReportIssueCommandHandler(),
		AddDriver:             app.CreateAddDriverCommandHandler(),
		SetDriverAvailability: app.CreateSetDriverAvailabilityCommandHandler(),
		AddStockItem:          app.CreateAddStockItemCommandHandler(),

		GetCapacity:             app.CreateGetCapacityQueryHandler(),
		GetActiveDeliveries:     app.CreateGetActiveDeliveriesQueryHandler(),
		GetPendingPrescriptions: app.CreateGetPendingPrescriptionsQueryHandler(),
	})

	server.RegisterRoutes(e, httpin.AuthMiddleware([]byte(configs.JWTSecret)))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(app.Registry())))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
