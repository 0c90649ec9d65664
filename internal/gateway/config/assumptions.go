package config

// AssumptionsConfig задает постоянные ставки модели.
type AssumptionsConfig struct {
	InflationRate      float64 `yaml:"inflation_rate" env:"RETIREMENT_INFLATION_RATE" env-default:"0.03" validate:"ne=0,gt=-1"`
	SalaryIncreaseRate float64 `yaml:"salary_increase_rate" env:"RETIREMENT_SALARY_INCREASE_RATE" env-default:"0.02" validate:"gt=-1"`
}
