package bootstrap

import (
	"crypto/tls"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rehablink-io/Rehablink/internal/config"
	"github.com/rehablink-io/Rehablink/internal/infra/cache"
	"github.com/rehablink-io/Rehablink/internal/infra/db"
	"github.com/rehablink-io/Rehablink/internal/infra/httpclient"
	"github.com/rehablink-io/Rehablink/internal/infra/logger"
	mq "github.com/rehablink-io/Rehablink/internal/infra/queue"
	"github.com/rehablink-io/Rehablink/internal/modules/handler"
	"github.com/rehablink-io/Rehablink/internal/modules/model"
	"github.com/rehablink-io/Rehablink/internal/modules/repo"
	"github.com/rehablink-io/Rehablink/internal/modules/service"
	"github.com/rehablink-io/Rehablink/internal/push"
	"github.com/rehablink-io/Rehablink/internal/ws"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			_ = d.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

			_ = d.AutoMigrate(
				&model.User{},
				&model.Exercise{},
				&model.Relationship{},
				&model.Session{},
				&model.PoseFrame{},
				&model.RepRecord{},
				&model.Notification{},
				&model.Activity{},
			)

			// At most one live relationship row per patient; the lock in the
			// request path cannot cover rows that do not exist yet.
			_ = d.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_relationships_patient_live " +
				"ON relationships (patient_id) WHERE status IN ('pending', 'active')")
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)

		dialFn := func() (*amqp.Connection, error) {
			useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")
			if useTLS {
				tlsConfig := &tls.Config{
					MinVersion: tls.VersionTLS12,
				}
				url := cfg.RabbitMQ.URL
				if strings.HasPrefix(url, "amqp://") {
					url = strings.Replace(url, "amqp://", "amqps://", 1)
				}
				return amqp.DialTLS(url, tlsConfig)
			}
			return amqp.Dial(cfg.RabbitMQ.URL)
		}
		return dialFn, nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return dialFn()
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return mq.NewPublisher(conn, log, cfg, dialFn)
	})

	// Pose HTTP client
	do.Provide(inj, func(i *do.Injector) (*httpclient.PoseClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return httpclient.NewPoseClient(cfg, log), nil
	})

	// Push channel (redis pub/sub so every instance sees every publish)
	do.Provide(inj, func(i *do.Injector) (push.Channel, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		log := do.MustInvoke[*zap.Logger](i)
		return push.NewRedisChannel(rdb, log), nil
	})

	// Presence store
	do.Provide(inj, func(i *do.Injector) (service.PresenceStore, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		return service.NewRedisPresenceStore(rdb), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ExerciseRepo, error) {
		return repo.NewExerciseRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.RelationshipRepo, error) {
		return repo.NewRelationshipRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SessionRepo, error) {
		return repo.NewSessionRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ActivityRepo, error) {
		return repo.NewActivityRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[repo.RelationshipRepo](i),
			do.MustInvoke[push.Channel](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ActivityService, error) {
		return service.NewActivityService(
			do.MustInvoke[repo.ActivityRepo](i),
			do.MustInvoke[repo.RelationshipRepo](i),
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.RelationshipService, error) {
		return service.NewRelationshipService(
			do.MustInvoke[repo.RelationshipRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[service.ActivityService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SessionService, error) {
		return service.NewSessionService(
			do.MustInvoke[repo.SessionRepo](i),
			do.MustInvoke[repo.ExerciseRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[service.RelationshipService](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[service.ActivityService](i),
			do.MustInvoke[*httpclient.PoseClient](i),
			do.MustInvoke[push.Channel](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PresenceService, error) {
		return service.NewPresenceService(
			do.MustInvoke[service.PresenceStore](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[service.RelationshipService](i),
			do.MustInvoke[push.Channel](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.RelationshipHandler, error) {
		return handler.NewRelationshipHandler(do.MustInvoke[service.RelationshipService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SessionHandler, error) {
		return handler.NewSessionHandler(do.MustInvoke[service.SessionService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ActivityHandler, error) {
		return handler.NewActivityHandler(do.MustInvoke[service.ActivityService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PresenceHandler, error) {
		return handler.NewPresenceHandler(do.MustInvoke[service.PresenceService](i)), nil
	})

	// WebSocket gateway
	do.Provide(inj, func(i *do.Injector) (*ws.Gateway, error) {
		return ws.NewGateway(
			do.MustInvoke[service.PresenceService](i),
			do.MustInvoke[push.Channel](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	return inj
}
