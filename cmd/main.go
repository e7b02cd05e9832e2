package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	customerapp "github.com/rendyfeb/logistics/application/customer"
	invoiceapp "github.com/rendyfeb/logistics/application/invoice"
	orderapp "github.com/rendyfeb/logistics/application/order"
	productapp "github.com/rendyfeb/logistics/application/product"
	shipmentapp "github.com/rendyfeb/logistics/application/shipment"
	stockapp "github.com/rendyfeb/logistics/application/stock"
	warehouseapp "github.com/rendyfeb/logistics/application/warehouse"
	"github.com/rendyfeb/logistics/cmd/config"
	redisclient "github.com/rendyfeb/logistics/cmd/redis"
	customerRepo "github.com/rendyfeb/logistics/repository/customer"
	invoiceRepo "github.com/rendyfeb/logistics/repository/invoice"
	"github.com/rendyfeb/logistics/repository/memory"
	orderRepo "github.com/rendyfeb/logistics/repository/order"
	productRepo "github.com/rendyfeb/logistics/repository/product"
	shipmentRepo "github.com/rendyfeb/logistics/repository/shipment"
	stockRepo "github.com/rendyfeb/logistics/repository/stock"
	warehouseRepo "github.com/rendyfeb/logistics/repository/warehouse"
	"github.com/rendyfeb/logistics/thirdparty/rabbitmq"
	"github.com/rendyfeb/logistics/transport"
	"github.com/rendyfeb/logistics/utils/logger"
	"go.uber.org/zap"
)

type repositories struct {
	customers  customerRepo.CustomerRepository
	products   productRepo.ProductRepository
	warehouses warehouseRepo.WarehouseRepository
	stock      stockRepo.StockRepository
	orders     orderRepo.OrderRepository
	shipments  shipmentRepo.ShipmentRepository
	invoices   invoiceRepo.InvoiceRepository
}

func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Store.Backend == "memory" {
		store, err := memory.Open(cfg.Store.File)
		if err != nil {
			return nil, err
		}
		logger.Info("using file-backed store", zap.String("file", cfg.Store.File))
		return &repositories{
			customers:  store.Customers(),
			products:   store.Products(),
			warehouses: store.Warehouses(),
			stock:      store.StockLedger(),
			orders:     store.Orders(),
			shipments:  store.Shipments(),
			invoices:   store.Invoices(),
		}, nil
	}

	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return &repositories{
		customers:  customerRepo.NewCustomerRepository(db),
		products:   productRepo.NewProductRepository(db),
		warehouses: warehouseRepo.NewWarehouseRepository(db),
		stock:      stockRepo.NewStockRepository(db),
		orders:     orderRepo.NewOrderRepository(db),
		shipments:  shipmentRepo.NewShipmentRepository(db),
		invoices:   invoiceRepo.NewInvoiceRepository(db),
	}, nil
}

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("backend", cfg.Store.Backend))

	repos, err := buildRepositories(cfg)
	if err != nil {
		logger.Fatal("err connect store", zap.Error(err))
	}

	// Redis is optional; the product cache degrades to repository reads.
	if cfg.Redis.Enabled {
		if err := redisclient.New(cfg); err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		}
		defer func() {
			_ = redisclient.Close()
		}()
	}

	// RabbitMQ is optional; a nil publisher drops events.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Warn("rabbitmq unavailable, continuing without events", zap.Error(err))
		} else {
			defer publisher.Close()
		}
	}

	// Initialize application layers
	CustomerApp := customerapp.NewCustomerApp(repos.customers, repos.orders)
	ProductApp := productapp.NewProductApp(repos.products, repos.stock, redisclient.Get())
	WarehouseApp := warehouseapp.NewWarehouseApp(repos.warehouses, repos.stock)
	StockApp := stockapp.NewStockApp(repos.stock, repos.warehouses, repos.products)
	OrderApp := orderapp.NewOrderApp(repos.orders, repos.stock, repos.customers, repos.products, repos.warehouses, publisher)
	ShipmentApp := shipmentapp.NewShipmentApp(repos.shipments, OrderApp, publisher)
	InvoiceApp := invoiceapp.NewInvoiceApp(repos.invoices, OrderApp)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		CustomerApp:  CustomerApp,
		ProductApp:   ProductApp,
		WarehouseApp: WarehouseApp,
		StockApp:     StockApp,
		OrderApp:     OrderApp,
		ShipmentApp:  ShipmentApp,
		InvoiceApp:   InvoiceApp,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
