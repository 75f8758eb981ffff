package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	c := &PostgresConfig{}
	setDefaults(c)

	assert.Equal(t, "unknown-service", c.ServiceName)
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 5432, c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10, c.MaxIdleConns)
	assert.Equal(t, 100, c.MaxOpenConns)
	assert.Equal(t, time.Hour, c.ConnMaxLifetime)
}

func TestBuildDSN(t *testing.T) {
	c := &PostgresConfig{
		Username: "conduit",
		Password: "secret",
		Host:     "db",
		Port:     5433,
		Database: "conduit",
		SSLMode:  true,
	}

	assert.Equal(t,
		"host=db user=conduit password=secret dbname=conduit port=5433 sslmode=require TimeZone=UTC",
		buildDSN(c))

	c.SSLMode = false
	assert.Contains(t, buildDSN(c), "sslmode=disable")
}

func TestSetRedisDefaults(t *testing.T) {
	c := &RedisConfig{Port: 6380}
	setRedisDefaults(c)

	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 6380, c.Port)
	assert.Equal(t, 10, c.PoolSize)
	assert.Equal(t, 5, c.MinIdleConns)
}

func TestNewGormConfig(t *testing.T) {
	conf := NewGormConfig("silent")
	assert.True(t, conf.TranslateError)
	assert.NotNil(t, conf.Logger)
}
