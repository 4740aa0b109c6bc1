// Package app wires TaskMaster's repositories, handlers and infrastructure.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akaash02/TaskMaster/internal/calendar/infrastructure/caldav"
	scheduleCommands "github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	scheduleQueries "github.com/akaash02/TaskMaster/internal/scheduling/application/queries"
	schedulerServices "github.com/akaash02/TaskMaster/internal/scheduling/application/services"
	scheduleSubs "github.com/akaash02/TaskMaster/internal/scheduling/application/subscribers"
	schedulingDomain "github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/scheduling/infrastructure/cache"
	schedulePersistence "github.com/akaash02/TaskMaster/internal/scheduling/infrastructure/persistence"
	sharedApplication "github.com/akaash02/TaskMaster/internal/shared/application"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
	_ "github.com/akaash02/TaskMaster/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/akaash02/TaskMaster/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/migrations"
	"github.com/akaash02/TaskMaster/pkg/config"
	"github.com/akaash02/TaskMaster/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DBConn         database.Connection
	RedisClient    *redis.Client
	EventPublisher eventbus.Publisher
	LocalBus       *eventbus.InProcessEventBus // set when no broker is configured
	UnitOfWork     sharedApplication.UnitOfWork
	Metrics        *observability.SchedulerMetrics

	// Repositories
	TaskRepo  schedulingDomain.TaskRepository
	SlotRepo  schedulingDomain.SlotRepository
	EventRepo schedulingDomain.EventRepository

	// Scheduling
	SchedulerEngine       *schedulerServices.SchedulerEngine
	RunScheduleHandler    *scheduleCommands.RunScheduleHandler
	CreateTaskHandler     *scheduleCommands.CreateTaskHandler
	UpdateTaskHandler     *scheduleCommands.UpdateTaskHandler
	RemoveTaskHandler     *scheduleCommands.RemoveTaskHandler
	AddSlotHandler        *scheduleCommands.AddSlotHandler
	RemoveSlotHandler     *scheduleCommands.RemoveSlotHandler
	AddEventHandler       *scheduleCommands.AddEventHandler
	RemoveEventHandler    *scheduleCommands.RemoveEventHandler
	GetScheduleHandler    *scheduleQueries.GetScheduleHandler
	ListSlotsHandler      *scheduleQueries.ListSlotsHandler
	TaskChangedSubscriber *scheduleSubs.TaskChangedSubscriber
}

// NewContainer connects to the configured stores and builds every handler.
// Without DATABASE_URL the local SQLite store is used; without RABBITMQ_URL
// events are dispatched in process, so creating a task schedules it
// immediately.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewSchedulerMetrics(),
	}

	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DatabaseMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("connected to database", "driver", conn.Driver())

	if err := c.connectRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.connectPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	c.wire()
	return c, nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, slot cache disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, slot cache disabled", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) connectPublisher() error {
	if c.Config.RabbitMQURL == "" {
		c.LocalBus = eventbus.NewInProcessEventBus(c.Logger)
		c.EventPublisher = c.LocalBus
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, dispatching events in process", "error", err)
		c.LocalBus = eventbus.NewInProcessEventBus(c.Logger)
		c.EventPublisher = c.LocalBus
		return nil
	}

	c.EventPublisher = publisher
	return nil
}

func (c *Container) wire() {
	cfg := c.Config

	c.UnitOfWork = database.NewUnitOfWork(c.DBConn)
	c.TaskRepo = schedulePersistence.NewTaskRepository(c.DBConn, cfg.Location)
	c.EventRepo = schedulePersistence.NewEventRepository(c.DBConn, cfg.Location)

	var slotRepo schedulingDomain.SlotRepository = schedulePersistence.NewSlotRepository(c.DBConn, cfg.Location)
	if c.RedisClient != nil {
		slotRepo = cache.NewSlotCache(slotRepo, c.RedisClient, cfg.SlotCacheTTL, c.Logger)
	}
	c.SlotRepo = slotRepo

	c.SchedulerEngine = schedulerServices.NewSchedulerEngine(schedulerServices.SchedulerConfig{
		SlotPolicy:           schedulingDomain.SlotPolicy(cfg.SlotPolicy),
		PreventDoubleBooking: cfg.PreventDoubleBooking,
	}, c.Logger)

	c.RunScheduleHandler = scheduleCommands.NewRunScheduleHandler(
		c.TaskRepo, c.SlotRepo, c.EventRepo,
		c.SchedulerEngine, c.EventPublisher, c.Metrics, c.Logger,
	)
	c.CreateTaskHandler = scheduleCommands.NewCreateTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.UpdateTaskHandler = scheduleCommands.NewUpdateTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.RemoveTaskHandler = scheduleCommands.NewRemoveTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.AddSlotHandler = scheduleCommands.NewAddSlotHandler(c.SlotRepo, c.UnitOfWork)
	c.RemoveSlotHandler = scheduleCommands.NewRemoveSlotHandler(c.SlotRepo)
	c.AddEventHandler = scheduleCommands.NewAddEventHandler(c.EventRepo)
	c.RemoveEventHandler = scheduleCommands.NewRemoveEventHandler(c.EventRepo)

	c.GetScheduleHandler = scheduleQueries.NewGetScheduleHandler(c.TaskRepo, c.EventRepo)
	c.ListSlotsHandler = scheduleQueries.NewListSlotsHandler(c.SlotRepo)

	c.TaskChangedSubscriber = scheduleSubs.NewTaskChangedSubscriber(c.RunScheduleHandler, c.Logger)
	if c.LocalBus != nil {
		c.LocalBus.RegisterConsumer(c.TaskChangedSubscriber)
	}
}

// ImportEventsHandler builds an import handler reading from source.
func (c *Container) ImportEventsHandler(source scheduleCommands.EventSource) *scheduleCommands.ImportEventsHandler {
	return scheduleCommands.NewImportEventsHandler(source, c.EventRepo, c.UnitOfWork, c.Logger)
}

// CalDAVSource builds the configured CalDAV event source.
func (c *Container) CalDAVSource() (*caldav.Source, error) {
	if !c.Config.CalDAVEnabled() {
		return nil, fmt.Errorf("CALDAV_URL is not set")
	}
	return caldav.NewSource(caldav.Config{
		BaseURL:      c.Config.CalDAVURL,
		Username:     c.Config.CalDAVUsername,
		Password:     c.Config.CalDAVPassword,
		CalendarPath: c.Config.CalDAVCalendarPath,
		Timeout:      c.Config.CalDAVTimeout,
		MaxFailures:  c.Config.BreakerMaxFailures,
		OpenTimeout:  c.Config.BreakerOpenTimeout,
	}, c.Config.Location, c.Logger)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBConn.Driver())
		}
	}
}
