package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"RETIREMENT_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"RETIREMENT_HTTP_PORT" env-default:"8080" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"RETIREMENT_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"RETIREMENT_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
