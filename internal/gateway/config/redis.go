package config

import (
	"time"

	dbredis "retireplan/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша записей пользователей.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"RETIREMENT_REDIS_ENABLED" env-default:"true"`
	Host            string        `yaml:"host" env:"RETIREMENT_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"RETIREMENT_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"RETIREMENT_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"RETIREMENT_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"RETIREMENT_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"RETIREMENT_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"RETIREMENT_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"RETIREMENT_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"RETIREMENT_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"RETIREMENT_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"RETIREMENT_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"RETIREMENT_REDIS_DEFAULT_TTL" env-default:"15m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return c.ClientConfig().Address()
}

// ClientConfig возвращает настройки подключения клиента Redis.
func (c *RedisConfig) ClientConfig() dbredis.Config {
	return dbredis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdle,
		DialTimeout:     c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
		ConnMaxLifetime: c.MaxConnLifetime,
	}
}
