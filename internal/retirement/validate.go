package retirement

import (
	"errors"
	"fmt"
)

// Ошибки правдоподобия входных данных.
var (
	ErrImplausibleInputs = errors.New("implausible retirement inputs")

	ErrRetirementAgeReached = fmt.Errorf("%w: retirement age must be greater than current age", ErrImplausibleInputs)

	ErrLifeExpectancyNotAfterRetirement = fmt.Errorf("%w: life expectancy must be greater than retirement age", ErrImplausibleInputs)
)

// CheckHorizon отклоняет нулевые и отрицательные горизонты.
// ComputeProjection сам их не проверяет; проверка выполняется на границе сервиса.
func CheckHorizon(h Horizon) error {
	if h.YearsUntilRetirement <= 0 {
		return fmt.Errorf("%w (current age %d)", ErrRetirementAgeReached, h.CurrentAge)
	}
	if h.YearsInRetirement <= 0 {
		return ErrLifeExpectancyNotAfterRetirement
	}
	return nil
}
