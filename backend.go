package main

import (
	"context"
	"fmt"

	"github.com/gogotex/modelgate/handlers"
	"github.com/gogotex/modelgate/internal/config"
	"github.com/gogotex/modelgate/internal/database"
	"github.com/gogotex/modelgate/internal/resource"
	"github.com/gogotex/modelgate/internal/resource/repository"
	"github.com/gogotex/modelgate/internal/resource/service"
	"github.com/gogotex/modelgate/internal/storage"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const mongoConnectAttempts = 5

// backend holds the repositories for the configured STORAGE_BACKEND.
type backend struct {
	assets  repository.Repository[resource.Asset]
	configs repository.Repository[resource.Config]
	checks  []handlers.NamedCheck
	close   func(ctx context.Context)
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB.Database)
		assets, err := repository.NewMongoRepo[resource.Asset](ctx, db.Collection(resource.KindAsset.Collection()), cfg.MongoDB.UniqueModelID)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		configs, err := repository.NewMongoRepo[resource.Config](ctx, db.Collection(resource.KindConfig.Collection()), cfg.MongoDB.UniqueModelID)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Infof("storage: mongodb database=%s unique_model_id=%v", cfg.MongoDB.Database, cfg.MongoDB.UniqueModelID)
		return &backend{
			assets:  assets,
			configs: configs,
			checks: []handlers.NamedCheck{{Name: "mongodb", Check: func(ctx context.Context) error {
				return database.Ping(ctx, client)
			}}},
			close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	case config.BackendMinIO:
		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Infof("storage: minio endpoint=%s bucket=%s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
		return &backend{
			assets:  repository.NewObjectRepo[resource.Asset](store, resource.KindAsset.Collection()),
			configs: repository.NewObjectRepo[resource.Config](store, resource.KindConfig.Collection()),
			checks:  []handlers.NamedCheck{{Name: "minio", Check: store.Ping}},
			close:   func(context.Context) {},
		}, nil

	case config.BackendMemory:
		logger.Warn("storage: in-memory backend, documents are lost on restart")
		return &backend{
			assets:  repository.NewMemoryRepo[resource.Asset](),
			configs: repository.NewMemoryRepo[resource.Config](),
			close:   func(context.Context) {},
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

// withCache puts a Redis read-through cache in front of both repositories.
func (b *backend) withCache(rdb *redis.Client, cfg *config.Config) {
	if rdb == nil || cfg.Storage.CacheTTL <= 0 {
		return
	}
	b.assets = repository.NewCachedRepo[resource.Asset](b.assets, rdb, "cache:"+resource.KindAsset.Collection()+":", cfg.Storage.CacheTTL)
	b.configs = repository.NewCachedRepo[resource.Config](b.configs, rdb, "cache:"+resource.KindConfig.Collection()+":", cfg.Storage.CacheTTL)
	logger.Infof("storage: redis cache ttl=%s", cfg.Storage.CacheTTL)
}

func (b *backend) services(cfg *config.Config) (service.Service[resource.Asset], service.Service[resource.Config]) {
	timeout := service.WithTimeout(cfg.Storage.Timeout)
	return service.New[resource.Asset](b.assets, timeout), service.New[resource.Config](b.configs, timeout)
}

// openRedis returns nil when Redis is not configured.
func openRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("redis %s not reachable yet: %v", addr, err)
	} else {
		logger.Infof("connected to redis %s", addr)
	}
	return rdb
}
