package wire

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/repstack/repstack/internal/api"
	"github.com/repstack/repstack/internal/config"
	chrepo "github.com/repstack/repstack/internal/repository/clickhouse"
)

// ProviderSet is the main provider set that includes all application dependencies.
var ProviderSet = wire.NewSet(
	DatabaseSet,
	RepositorySet,
	ServiceSet,
	HandlerSet,
	ProvideLogger,
	ProvideRouter,
	ProvideApplication,
)

// Application holds all the dependencies needed to run the server.
type Application struct {
	Config         *config.Config
	Logger         *zap.Logger
	PostgresPool   *pgxpool.Pool
	ClickHouseConn clickhouse.Conn
	Router         *gin.Engine
	Handlers       *api.Handlers
	BatchWriter    *BatchWriterResult
	StatsRepo      *chrepo.StatsRepository

	postgresWrapper   *PostgresDB
	clickhouseWrapper *ClickHouseDB
}

// Start starts background services and prepares the analytics schema.
func (a *Application) Start(ctx context.Context) error {
	if a.StatsRepo != nil {
		if err := a.StatsRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare analytics schema: %w", err)
		}
	}
	if a.BatchWriter != nil {
		a.BatchWriter.Start()
	}
	return nil
}

// Stop drains the batch writer; Cleanup still closes connections afterwards.
func (a *Application) Stop(ctx context.Context) {
	if a.BatchWriter != nil && a.BatchWriter.Writer != nil {
		if err := a.BatchWriter.Writer.Stop(ctx); err != nil {
			a.Logger.Warn("set batch writer drain failed", zap.Error(err))
		}
	}
}

// Cleanup releases all resources.
func (a *Application) Cleanup() {
	if a.clickhouseWrapper != nil && a.clickhouseWrapper.Cleanup != nil {
		a.clickhouseWrapper.Cleanup()
	}
	if a.postgresWrapper != nil && a.postgresWrapper.Cleanup != nil {
		a.postgresWrapper.Cleanup()
	}
}

// ProvideLogger creates a configured zap logger.
func ProvideLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config
	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

// ProvideRouter creates the Gin router with all routes configured.
func ProvideRouter(
	h *api.Handlers,
	cfg *config.Config,
	logger *zap.Logger,
) *gin.Engine {
	return api.SetupRouter(h, cfg, logger)
}

// ProvideApplication creates the main Application struct with all dependencies.
func ProvideApplication(
	cfg *config.Config,
	logger *zap.Logger,
	pgWrapper *PostgresDB,
	chWrapper *ClickHouseDB,
	router *gin.Engine,
	handlers *api.Handlers,
	batchWriter *BatchWriterResult,
	statsRepo *chrepo.StatsRepository,
) *Application {
	return &Application{
		Config:            cfg,
		Logger:            logger,
		PostgresPool:      pgWrapper.Pool,
		ClickHouseConn:    chWrapper.Conn,
		Router:            router,
		Handlers:          handlers,
		BatchWriter:       batchWriter,
		StatsRepo:         statsRepo,
		postgresWrapper:   pgWrapper,
		clickhouseWrapper: chWrapper,
	}
}
