// Package bootstrap 按配置为每个集合选择存储后端并组合为一个 store.Router。
package bootstrap

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"college-admin/backend/config"
	"college-admin/backend/internal/store"
	"college-admin/backend/internal/store/local"
	"college-admin/backend/internal/store/memory"
	"college-admin/backend/internal/store/mongodb"
	"college-admin/backend/internal/store/postgres"
	"college-admin/backend/pkg/database"
	pkgmongo "college-admin/backend/pkg/mongo"
	"college-admin/backend/pkg/redis"
)

// Open 连接配置中用到的后端并返回路由存储
// 任一后端初始化失败时关闭已打开的后端并返回错误
func Open(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	backends := make(map[string]store.Store)
	var closers []io.Closer

	fail := func(err error) (store.Store, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
		return nil, err
	}

	for _, name := range config.Collections {
		driver := cfg.Store.DriverFor(name)
		if _, ok := backends[driver]; ok {
			continue
		}

		var (
			s   store.Store
			err error
		)
		switch driver {
		case config.DriverMemory:
			s = memory.New()
		case config.DriverPostgres:
			s, err = openPostgres(cfg, logger)
		case config.DriverMongo:
			s, err = openMongo(cfg, logger)
		case config.DriverLocal:
			s, err = openLocal(cfg, logger)
		default:
			err = fmt.Errorf("未知存储驱动 %q", driver)
		}
		if err != nil {
			return fail(err)
		}
		backends[driver] = s
		closers = append(closers, s)
	}

	collections := make(map[string]store.Collection, len(config.Collections))
	for _, name := range config.Collections {
		driver := cfg.Store.DriverFor(name)
		collections[name] = backends[driver].Collection(name)
		logger.Info("集合存储已就绪", zap.String("collection", name), zap.String("driver", driver))
	}

	return store.NewRouter(collections, closers...), nil
}

func openPostgres(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}
	s := postgres.New(db)

	sqlDB, err := db.DB()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openMongo(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	client, err := pkgmongo.NewClient(&cfg.Mongo, logger)
	if err != nil {
		return nil, err
	}
	return mongodb.New(client.Database(), client.Timeout(), client.Close), nil
}

func openLocal(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Local.Backend {
	case config.LocalBackendRedis:
		rdb, err := redis.NewClient(&cfg.Redis, cfg.Store.Local.KeyPrefix, logger)
		if err != nil {
			return nil, err
		}
		return local.New(rdb), nil
	case config.LocalBackendMemory:
		return local.New(local.NewMemoryBlob()), nil
	default:
		blob, err := local.OpenBolt(cfg.Store.Local.BoltPath)
		if err != nil {
			return nil, err
		}
		logger.Info("本地存储文件已打开", zap.String("path", cfg.Store.Local.BoltPath))
		return local.New(blob), nil
	}
}
