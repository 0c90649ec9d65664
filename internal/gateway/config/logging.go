package config

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"RETIREMENT_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"RETIREMENT_LOGGER_MODE" env-default:"production" validate:"oneof=development production"`
}
