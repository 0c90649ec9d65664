package retirement

// Фиксированные допущения модели.
const (
	// InflationRate - годовая инфляция, она же ставка дисконтирования пенсионного аннуитета.
	InflationRate = 0.03
	// SalaryIncreaseRate - ежегодный рост дохода и, соответственно, взносов.
	SalaryIncreaseRate = 0.02
)

// Assumptions содержит постоянные ставки, не зависящие от пользователя.
type Assumptions struct {
	InflationRate      float64
	SalaryIncreaseRate float64
}

// DefaultAssumptions возвращает допущения по умолчанию.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InflationRate:      InflationRate,
		SalaryIncreaseRate: SalaryIncreaseRate,
	}
}
