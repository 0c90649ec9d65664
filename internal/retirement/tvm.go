// Package retirement содержит расчет пенсионных накоплений: примитивы
// временной стоимости денег и проекцию суммы, необходимой для выхода на пенсию.
package retirement

import (
	"errors"
	"fmt"
	"math"
)

// Ошибки арифметической области определения.
var (
	// ErrArithmeticDomain возвращается, когда формула не дает конечного результата.
	ErrArithmeticDomain = errors.New("arithmetic domain error")
	// ErrZeroRate возвращается при нулевой ставке дисконтирования аннуитета.
	ErrZeroRate = fmt.Errorf("%w: rate must not be zero", ErrArithmeticDomain)
)

// PresentValueAnnuity возвращает приведенную стоимость обычного аннуитета:
// payment * (1 - (1+rate)^(-periods)) / rate.
func PresentValueAnnuity(payment, rate, periods float64) (float64, error) {
	if rate == 0 {
		return 0, ErrZeroRate
	}

	value := payment * (1 - math.Pow(1+rate, -periods)) / rate
	if !isFinite(value) {
		return 0, fmt.Errorf("%w: present value of annuity (rate=%g, periods=%g)", ErrArithmeticDomain, rate, periods)
	}

	return value, nil
}

// FutureValueLumpSum возвращает будущую стоимость разовой суммы: principal * (1+rate)^periods.
// Дробные и отрицательные periods допустимы, пока результат конечен.
func FutureValueLumpSum(principal, rate, periods float64) (float64, error) {
	value := compound(principal, rate, periods)
	if !isFinite(value) {
		return 0, fmt.Errorf("%w: future value of lump sum (rate=%g, periods=%g)", ErrArithmeticDomain, rate, periods)
	}

	return value, nil
}

func compound(principal, rate, periods float64) float64 {
	return principal * math.Pow(1+rate, periods)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
