package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"mentorbook/config"
	"mentorbook/database"
	availabilityRepo "mentorbook/database/repository/availability"
	sessionRepo "mentorbook/database/repository/sessionrequest"
	"mentorbook/utils"
)

// stores is everything the services need from the storage layer.
type stores struct {
	// Availability is authoritative; admission reads it directly.
	Availability availabilityRepo.AvailabilityRepository
	// Schedules may be cached and serves schedule reads and publishes.
	Schedules availabilityRepo.AvailabilityRepository
	Sessions  sessionRepo.SessionRequestRepository
	Locker    utils.Locker
	Checks    map[string]utils.HealthCheck

	closers []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*stores, error) {
	s := &stores{Checks: make(map[string]utils.HealthCheck)}

	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Disconnect(context.Background()) })

		db := client.Database(cfg.DatabaseName)
		if err := availabilityRepo.EnsureIndexes(ctx, db); err != nil {
			s.Close()
			return nil, err
		}
		if err := sessionRepo.EnsureIndexes(ctx, db); err != nil {
			s.Close()
			return nil, err
		}
		s.Availability = availabilityRepo.NewMongoAvailabilityRepo(db)
		s.Sessions = sessionRepo.NewMongoSessionRepo(db)
		s.Checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	case config.StoragePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)

		migrator, err := database.NewMigrator(pool)
		if err != nil {
			s.Close()
			return nil, err
		}
		err = migrator.Run(ctx)
		_ = migrator.Close()
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Availability = availabilityRepo.NewPostgresAvailabilityRepo(pool)
		s.Sessions = sessionRepo.NewPostgresSessionRepo(pool)
		s.Checks["postgres"] = pool.Ping

	default:
		logger.Warn("Using in-memory storage; data is lost on restart")
		s.Availability = availabilityRepo.NewMemoryAvailabilityRepo()
		s.Sessions = sessionRepo.NewMemorySessionRepo()
	}

	s.Schedules = s.Availability
	s.Locker = utils.NewKeyedMutex()

	if cfg.RedisAddr == "" {
		return s, nil
	}

	cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, func() { _ = cacheClient.Close() })

	lockClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisLockDB)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, func() { _ = lockClient.Close() })

	s.Schedules = availabilityRepo.NewCachedAvailabilityRepo(s.Availability, cacheClient, cfg.ScheduleCacheTTL, logger)
	s.Locker = utils.NewRedisLocker(lockClient, cfg.SlotLockTTL)
	s.Checks["redis"] = redisCheck(cacheClient)

	logger.Info("Redis enabled for schedule cache and slot locks",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("cacheDB", cfg.RedisCacheDB),
		zap.Int("lockDB", cfg.RedisLockDB))
	return s, nil
}

func redisCheck(client *redis.Client) utils.HealthCheck {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		return nil
	}
}
