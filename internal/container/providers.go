package container

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/smallbiz/backoffice/internal/application/port"
	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/export"
	"github.com/smallbiz/backoffice/internal/infrastructure/persistence/repository"
	"github.com/smallbiz/backoffice/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/smallbiz/backoffice/internal/interfaces/http"
	"github.com/smallbiz/backoffice/pkg/database"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.DB
}

// ExportBundle holds the document writers.
type ExportBundle struct {
	Excel *export.ExcelWriter
	PDF   *export.PDFWriter
}

// ProvideDatabase creates database connection and transaction manager.
// Returns DatabaseBundle containing the connection wrapper and
// TransactionManager. Also runs any pending database migrations
// automatically.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	// Run database migrations if migrations directory is configured
	if cfg.MigrationsDir != "" {
		migrator := database.NewMigrator(db, logger)

		if err := migrator.RunMigrations(cfg.MigrationsDir); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewDB(db.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories from a database connection.
// Returns RepositoryBundle containing all repository implementations.
func ProvideRepositories(sqlDB *sql.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Contact: repository.NewContactRepository(sqlDB, logger),
		Address: repository.NewAddressRepository(sqlDB, logger),
		Item:    repository.NewItemRepository(sqlDB, logger),
		Invoice: repository.NewInvoiceRepository(sqlDB, logger),
		Payment: repository.NewPaymentRepository(sqlDB, logger),
		Archive: repository.NewArchiveRepository(sqlDB, logger),
	}, nil
}

// ServiceDeps holds dependencies required to build the service bundle.
type ServiceDeps struct {
	Repos     *RepositoryBundle
	TxManager port.TransactionManager
	Logger    *zap.Logger
}

// ProvideServices creates all application services.
// Returns ServiceBundle containing all service implementations.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	return &ServiceBundle{
		Contact: service.NewContactService(
			deps.Repos.Contact, deps.Repos.Address, deps.Repos.Invoice,
			deps.Repos.Payment, deps.TxManager, serviceLogger),
		Item: service.NewItemService(deps.Repos.Item, serviceLogger),
		Invoice: service.NewInvoiceService(
			deps.Repos.Invoice, deps.Repos.Contact, deps.Repos.Payment,
			deps.TxManager, serviceLogger),
		Payment: service.NewPaymentService(
			deps.Repos.Payment, deps.Repos.Contact, deps.Repos.Invoice,
			serviceLogger),
		Archive: service.NewArchiveService(deps.Repos.Archive, serviceLogger),
	}, nil
}

// ProvideExporters creates the Excel and PDF writers.
func ProvideExporters(cfg *CompanyConfig, logger *zap.Logger) (*ExportBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("company config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &ExportBundle{
		Excel: export.NewExcelWriter(logger),
		PDF:   export.NewPDFWriter(cfg.Name, logger),
	}, nil
}

// ProvideHTTPServer creates the HTTP server wired to all services.
func ProvideHTTPServer(cfg *ServerConfig, services *ServiceBundle, exporters *ExportBundle, logger *zap.Logger) (*httpserver.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	if exporters == nil {
		return nil, fmt.Errorf("exporters are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serverCfg := httpserver.ServerConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		TemplateGlob: cfg.TemplateGlob,
	}

	return httpserver.NewServer(
		serverCfg,
		services.Contact, services.Item, services.Invoice,
		services.Payment, services.Archive,
		exporters.Excel, exporters.PDF,
		&zapLoggerAdapter{logger: logger},
	), nil
}
