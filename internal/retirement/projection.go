package retirement

import (
	"fmt"
	"iter"
	"time"
)

// Inputs содержит демографические и финансовые параметры одного расчета.
// Доли задаются в диапазоне [0, 1].
type Inputs struct {
	DateOfBirth                time.Time
	HouseholdIncome            float64
	CurrentSavingsRate         float64
	CurrentRetirementSavings   float64
	PreRetirementIncomePercent float64
	LifeExpectancy             int
	ExpectedRateOfReturn       float64
	RetirementAge              int
}

// Horizon описывает временные горизонты расчета.
type Horizon struct {
	CurrentAge           int
	YearsUntilRetirement int
	YearsInRetirement    int
}

// NewHorizon вычисляет возраст и горизонты на момент now.
func NewHorizon(in Inputs, now time.Time) Horizon {
	age := CurrentAge(in.DateOfBirth, now)
	return Horizon{
		CurrentAge:           age,
		YearsUntilRetirement: in.RetirementAge - age,
		YearsInRetirement:    in.LifeExpectancy - in.RetirementAge,
	}
}

// Projection - результат расчета. Суммы не округляются.
type Projection struct {
	Horizon

	AdjustedAnnualExpenses     float64
	AmountNeededToRetire       float64
	FutureValueOfSavings       float64
	FutureValueOfContributions float64
	ExpectedTotalSavings       float64
}

// Shortfall возвращает разницу между необходимой и ожидаемой суммой.
// Отрицательное значение означает профицит.
func (p Projection) Shortfall() float64 {
	return p.AmountNeededToRetire - p.ExpectedTotalSavings
}

// Contribution - ежегодный взнос и его стоимость на дату выхода на пенсию.
type Contribution struct {
	Year        int
	Amount      float64
	Periods     int
	FutureValue float64
}

// Contributions перечисляет взносы за years лет. Взнос года k капитализируется
// years-k периодов, после чего сумма взноса растет на growth.
// При years <= 0 последовательность пуста.
func Contributions(annualSavings, rate, growth float64, years int) iter.Seq[Contribution] {
	return func(yield func(Contribution) bool) {
		amount := annualSavings
		for year := range years {
			periods := years - year
			if !yield(Contribution{
				Year:        year,
				Amount:      amount,
				Periods:     periods,
				FutureValue: compound(amount, rate, float64(periods)),
			}) {
				return
			}
			amount *= 1 + growth
		}
	}
}

// ComputeProjection рассчитывает необходимую для пенсии сумму и ожидаемые накопления
// на момент now при допущениях a. Входные данные не проверяются.
func ComputeProjection(in Inputs, now time.Time, a Assumptions) (Projection, error) {
	horizon := NewHorizon(in, now)
	yearsUntil := float64(horizon.YearsUntilRetirement)

	annualExpenses := in.HouseholdIncome * in.PreRetirementIncomePercent
	adjustedExpenses, err := FutureValueLumpSum(annualExpenses, a.InflationRate, yearsUntil)
	if err != nil {
		return Projection{}, fmt.Errorf("adjusting expenses for inflation: %w", err)
	}

	amountNeeded, err := PresentValueAnnuity(adjustedExpenses, a.InflationRate, float64(horizon.YearsInRetirement))
	if err != nil {
		return Projection{}, fmt.Errorf("amount needed to retire: %w", err)
	}

	savingsValue, err := FutureValueLumpSum(in.CurrentRetirementSavings, in.ExpectedRateOfReturn, yearsUntil)
	if err != nil {
		return Projection{}, fmt.Errorf("future value of current savings: %w", err)
	}

	annualSavings := in.HouseholdIncome * in.CurrentSavingsRate
	var contributionsValue float64
	for c := range Contributions(annualSavings, in.ExpectedRateOfReturn, a.SalaryIncreaseRate, horizon.YearsUntilRetirement) {
		contributionsValue += c.FutureValue
	}
	if !isFinite(contributionsValue) {
		return Projection{}, fmt.Errorf("future value of contributions: %w", ErrArithmeticDomain)
	}

	return Projection{
		Horizon:                    horizon,
		AdjustedAnnualExpenses:     adjustedExpenses,
		AmountNeededToRetire:       amountNeeded,
		FutureValueOfSavings:       savingsValue,
		FutureValueOfContributions: contributionsValue,
		ExpectedTotalSavings:       savingsValue + contributionsValue,
	}, nil
}

// Calculator выполняет расчет с фиксированными допущениями и источником времени.
type Calculator struct {
	assumptions Assumptions
	now         func() time.Time
}

// Option настраивает Calculator.
type Option func(*Calculator)

// WithClock задает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator создает калькулятор с указанными допущениями.
func NewCalculator(assumptions Assumptions, opts ...Option) *Calculator {
	c := &Calculator{
		assumptions: assumptions,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Assumptions возвращает допущения калькулятора.
func (c *Calculator) Assumptions() Assumptions {
	return c.assumptions
}

// Horizon вычисляет горизонты на текущий момент.
func (c *Calculator) Horizon(in Inputs) Horizon {
	return NewHorizon(in, c.now())
}

// Compute рассчитывает проекцию на текущий момент.
func (c *Calculator) Compute(in Inputs) (Projection, error) {
	return ComputeProjection(in, c.now(), c.assumptions)
}

// Schedule возвращает ежегодные взносы до выхода на пенсию на текущий момент.
func (c *Calculator) Schedule(in Inputs) []Contribution {
	return c.schedule(in, c.Horizon(in))
}

// Plan - проекция и график взносов, рассчитанные на один момент времени.
type Plan struct {
	Projection
	Schedule []Contribution
}

// Evaluate читает время один раз: проверяет горизонты через CheckHorizon,
// рассчитывает проекцию и, если withSchedule, график взносов для того же горизонта.
func (c *Calculator) Evaluate(in Inputs, withSchedule bool) (Plan, error) {
	now := c.now()

	if err := CheckHorizon(NewHorizon(in, now)); err != nil {
		return Plan{}, err
	}

	projection, err := ComputeProjection(in, now, c.assumptions)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Projection: projection}
	if withSchedule {
		plan.Schedule = c.schedule(in, projection.Horizon)
	}
	return plan, nil
}

func (c *Calculator) schedule(in Inputs, horizon Horizon) []Contribution {
	var schedule []Contribution
	for contribution := range Contributions(
		in.HouseholdIncome*in.CurrentSavingsRate,
		in.ExpectedRateOfReturn,
		c.assumptions.SalaryIncreaseRate,
		horizon.YearsUntilRetirement,
	) {
		schedule = append(schedule, contribution)
	}
	return schedule
}
