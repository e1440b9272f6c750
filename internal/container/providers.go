package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/dispatcher"
	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/application/service"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/external/openai"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/persistence/repository"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/persistence/sqlite"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/render"
	"github.com/facultyops/renewal-workflow/internal/infrastructure/storage"
	"github.com/facultyops/renewal-workflow/pkg/database"
)

// initDatabase opens the SQLite connection and runs pending migrations
func (c *Container) initDatabase() error {
	db, err := database.New(database.Config{
		Path:            c.config.Database.Path,
		MaxOpenConns:    c.config.Database.MaxOpenConns,
		MaxIdleConns:    c.config.Database.MaxIdleConns,
		ConnMaxLifetime: c.config.Database.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return err
	}

	migrator := database.NewMigrator(db, c.logger)
	if err := migrator.RunMigrations(c.config.Database.MigrationsDir); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.sqlDB = db.DB
	c.db = sqlite.NewDB(db.DB, c.logger)
	return nil
}

// initInfrastructure wires document storage, summarization and rendering
func (c *Container) initInfrastructure() error {
	c.fileStorage = storage.NewLocalFileStorage(c.config.Storage.UploadDir, c.logger)

	summarizer := openai.NewSummarizer(
		c.config.OpenAI.APIKey,
		c.config.OpenAI.Model,
		c.config.OpenAI.Temperature,
		c.config.OpenAI.MaxPages,
		c.logger,
	)
	// Events carry storage-relative paths; the summarizer reads from disk.
	c.summarizer = &storedDocumentSummarizer{
		inner:   summarizer,
		storage: c.fileStorage,
	}

	c.renderer = render.NewContractRenderer(c.config.Contract.InstitutionName, c.logger)
	return nil
}

// initRepositories creates all repository implementations
func (c *Container) initRepositories() {
	c.repositories = &RepositoryBundle{
		Faculty:      repository.NewFacultyRepository(c.sqlDB, c.logger),
		User:         repository.NewUserRepository(c.sqlDB, c.logger),
		Renewal:      repository.NewRenewalRepository(c.sqlDB, c.logger),
		Termination:  repository.NewTerminationRepository(c.sqlDB, c.logger),
		Step:         repository.NewStepRepository(c.sqlDB, c.logger),
		Notification: repository.NewNotificationRepository(c.sqlDB, c.logger),
	}
}

// initDispatcher creates the event dispatcher
func (c *Container) initDispatcher() {
	c.dispatcher = dispatcher.NewDispatcher(
		dispatcher.WithLogger(&dispatcherLoggerAdapter{logger: c.logger}),
	)
}

// initServices creates all application services
func (c *Container) initServices() {
	logger := &zapLoggerAdapter{logger: c.logger}
	selector := service.NewRoleSelector(c.repositories.User)

	c.services = &ServiceBundle{
		Decision: service.NewDecisionService(
			c.repositories.Renewal,
			c.repositories.Termination,
			c.repositories.Step,
			c.repositories.Faculty,
			c.repositories.User,
			c.repositories.Notification,
			selector,
			c.db,
			c.dispatcher,
			logger,
		),
		Renewal: service.NewRenewalService(
			c.repositories.Renewal,
			c.repositories.Faculty,
			c.repositories.User,
			c.repositories.Step,
			c.repositories.Notification,
			selector,
			c.db,
			c.dispatcher,
			logger,
		),
		Termination: service.NewTerminationService(
			c.repositories.Termination,
			c.repositories.Faculty,
			c.repositories.User,
			c.repositories.Step,
			selector,
			c.db,
			c.dispatcher,
			logger,
		),
		Notification: service.NewNotificationService(c.repositories.Notification, logger),
		Contract: service.NewContractService(
			c.repositories.Renewal,
			c.repositories.Faculty,
			c.repositories.Step,
			c.renderer,
			logger,
		),
		Faculty: service.NewFacultyService(c.repositories.Faculty, logger),
	}
}

// registerEventHandlers subscribes event handlers on the dispatcher
func (c *Container) registerEventHandlers() {
	logger := &zapLoggerAdapter{logger: c.logger}

	c.dispatcher.SubscribeNamed(
		event.TypeDossierUploaded,
		"dossier_summarizer",
		service.NewDossierSummaryHandler(
			c.repositories.Renewal,
			c.repositories.Termination,
			c.summarizer,
			c.dispatcher,
			logger,
		),
	)
}

// storedDocumentSummarizer resolves storage-relative paths before
// handing the document to the underlying summarizer.
type storedDocumentSummarizer struct {
	inner   port.DocumentSummarizer
	storage port.FileStorage
}

func (s *storedDocumentSummarizer) Summarize(ctx context.Context, path string) (string, error) {
	if !s.storage.Exists(ctx, path) {
		return "", fmt.Errorf("document %s not found in storage", path)
	}
	return s.inner.Summarize(ctx, s.storage.GetFullPath(path))
}

var _ port.DocumentSummarizer = (*storedDocumentSummarizer)(nil)

// zapLoggerAdapter adapts zap to the service.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues)...)
}

// dispatcherLoggerAdapter adapts zap to the dispatcher.Logger interface
type dispatcherLoggerAdapter struct {
	logger *zap.Logger
}

func (a *dispatcherLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues)...)
}

func (a *dispatcherLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues)...)
}

// convertToZapFields converts key-value pairs to zap fields
func convertToZapFields(keysAndValues []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

var _ service.Logger = (*zapLoggerAdapter)(nil)
var _ dispatcher.Logger = (*dispatcherLoggerAdapter)(nil)
