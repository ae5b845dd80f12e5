package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gotodo/internal/config"
	"gotodo/internal/model"
	rabbitmqClient "gotodo/internal/platform/rabbitmq"
	redisClient "gotodo/internal/platform/redis"
	sqliteClient "gotodo/internal/platform/sqlite"
	"gotodo/internal/repository"
	"gotodo/internal/worker"
)

type App struct {
	Config         *config.Config
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityPub    *rabbitmqClient.ActivityPublisher
	ActivityWorker *worker.ActivityWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := sqliteClient.New(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Todo{}, &model.ActivityRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		StartedAt: time.Now(),
	}

	// Redis and RabbitMQ are optional collaborators: without them the
	// service still runs, just without rate limiting or the activity log.
	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
	}

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		app.MQConn = mqConn
		app.ActivityPub = rabbitmqClient.NewActivityPublisher(mqConn, cfg.RabbitMQ.ActivityQueue)

		activityRepo := repository.NewActivityRepository(db)
		app.ActivityWorker = worker.NewActivityWorker(mqConn, activityRepo, cfg.RabbitMQ.ActivityQueue)
		if err := app.ActivityWorker.Start(ctx); err != nil {
			return nil, fmt.Errorf("start activity worker failed: %w", err)
		}
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
