package database

import (
	"context"
	"fmt"
	"time"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/model"
	pkgDatabase "terminal-terrace/conduit/packages/database"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const serviceName = "conduit"

// InitDatabase 按 driver 打开数据库并迁移表结构
// postgres 用于部署，sqlite 用于本地开发（database 字段为文件路径）
func InitDatabase(conf config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch conf.Driver {
	case "", "postgres":
		db, err = pkgDatabase.InitPostgres(&pkgDatabase.PostgresConfig{
			ServiceName:     serviceName,
			Username:        conf.Username,
			Password:        conf.Password,
			Host:            conf.Host,
			Port:            conf.Port,
			Database:        conf.Database,
			SSLMode:         conf.SSLMode,
			LogLevel:        conf.LogLevel,
			MaxIdleConns:    conf.MaxIdleConns,
			MaxOpenConns:    conf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(conf.MaxLifetime) * time.Second,
		})
	case "sqlite":
		db, err = openSQLite(conf)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", conf.Driver)
	}
	if err != nil {
		return nil, err
	}

	// 初始化数据库表
	if err := model.InitTable(db); err != nil {
		return nil, err
	}
	return db, nil
}

func openSQLite(conf config.DatabaseConfig) (*gorm.DB, error) {
	path := conf.Database
	if path == "" {
		path = "conduit.db"
	}
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), pkgDatabase.NewGormConfig(conf.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("打开 sqlite 失败: %w", err)
	}

	// sqlite 只允许一个写连接
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info().Str("service", serviceName).Str("path", path).Msg("sqlite 打开成功")
	return db, nil
}

// InitRedis redis.enabled 为 false 时返回 nil
func InitRedis(ctx context.Context, conf config.RedisConfig) (*pkgDatabase.RedisClient, error) {
	if !conf.Enabled {
		return nil, nil
	}
	return pkgDatabase.InitRedis(ctx, &pkgDatabase.RedisConfig{
		ServiceName: serviceName,
		Host:        conf.Host,
		Port:        conf.Port,
		Password:    conf.Password,
		DB:          conf.DB,
		PoolSize:    conf.PoolSize,
	})
}
