package container

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/dispatcher"
	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/application/service"
	"github.com/facultyops/renewal-workflow/internal/config"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/persistence/sqlite"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	config *config.Config
	logger *zap.Logger

	// Infrastructure
	sqlDB       *sql.DB
	db          *sqlite.DB
	fileStorage port.FileStorage
	summarizer  port.DocumentSummarizer
	renderer    port.ContractRenderer

	// Application
	dispatcher   dispatcher.Dispatcher
	repositories *RepositoryBundle
	services     *ServiceBundle
}

// RepositoryBundle groups all repository implementations
type RepositoryBundle struct {
	Faculty      port.FacultyRepository
	User         port.UserRepository
	Renewal      port.RenewalRepository
	Termination  port.TerminationRepository
	Step         port.StepRepository
	Notification port.NotificationRepository
}

// ServiceBundle groups all application services
type ServiceBundle struct {
	Decision     service.DecisionService
	Renewal      service.RenewalService
	Termination  service.TerminationService
	Notification service.NotificationService
	Contract     service.ContractService
	Faculty      service.FacultyService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *zap.Logger) *Container {
	return &Container{
		config: cfg,
		logger: logger,
	}
}

// Start initializes all dependencies in order
func (c *Container) Start(ctx context.Context) error {
	c.logger.Info("Starting container")

	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := c.initInfrastructure(); err != nil {
		return fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	c.initRepositories()
	c.initDispatcher()
	c.initServices()
	c.registerEventHandlers()

	c.logger.Info("Container started successfully")
	return nil
}

// Close shuts down all dependencies in reverse order
func (c *Container) Close() error {
	c.logger.Info("Closing container")

	var errs []error

	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close dispatcher: %w", err))
		}
	}

	if c.sqlDB != nil {
		if err := c.sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Health checks the health of container components
func (c *Container) Health(ctx context.Context) map[string]string {
	health := make(map[string]string)

	if c.sqlDB != nil {
		if err := c.sqlDB.PingContext(ctx); err != nil {
			health["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			health["database"] = "healthy"
		}
	} else {
		health["database"] = "not initialized"
	}

	if c.dispatcher != nil {
		health["dispatcher"] = "healthy"
	} else {
		health["dispatcher"] = "not initialized"
	}

	if c.services != nil {
		health["services"] = "healthy"
	} else {
		health["services"] = "not initialized"
	}

	return health
}

// Services returns the service bundle
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Repositories returns the repository bundle
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Dispatcher returns the event dispatcher
func (c *Container) Dispatcher() dispatcher.Dispatcher {
	return c.dispatcher
}

// FileStorage returns the document storage
func (c *Container) FileStorage() port.FileStorage {
	return c.fileStorage
}

// Logger returns the logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}
