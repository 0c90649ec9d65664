package config

// CORSConfig задает разрешенные источники для браузерных клиентов.
type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins" env:"RETIREMENT_CORS_ALLOW_ORIGINS" env-default:"http://localhost,http://localhost:8080,http://localhost:3000"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"RETIREMENT_CORS_ALLOW_CREDENTIALS" env-default:"true"`
}
