// Package dto содержит структуры обмена данными HTTP-слоя и поставщика данных.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"retireplan/internal/retirement"
)

// DateLayout - формат даты рождения в записи пользователя.
const DateLayout = "2006-01-02"

// ErrInvalidPercent возвращается, если процент не является числом.
var ErrInvalidPercent = errors.New("percent must be a number")

// Percent - целый процент 0..100. Принимает JSON-число (дробная часть
// отбрасывается) или строку с целым числом.
type Percent int

// UnmarshalJSON разбирает процент из числа или строки.
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPercent, data)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPercent, raw)
		}
		*p = Percent(value)
		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s", ErrInvalidPercent, data)
	}
	*p = Percent(math.Trunc(value))
	return nil
}

// Fraction возвращает процент в виде доли.
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// UserInfo - демографические и финансовые данные пользователя.
type UserInfo struct {
	DateOfBirth              string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	HouseholdIncome          float64 `json:"household_income" validate:"gt=0"`
	CurrentSavingsRate       Percent `json:"current_savings_rate" validate:"min=0,max=100"`
	CurrentRetirementSavings float64 `json:"current_retirement_savings" validate:"gte=0"`
}

// PlanAssumptions - допущения пенсионного плана пользователя.
type PlanAssumptions struct {
	PreRetirementIncomePercent Percent `json:"pre_retirement_income_percent" validate:"min=0,max=100"`
	LifeExpectancy             int     `json:"life_expectancy" validate:"gt=0,lte=130"`
	ExpectedRateOfReturn       Percent `json:"expected_rate_of_return" validate:"min=-100,max=100"`
	RetirementAge              int     `json:"retirement_age" validate:"gt=0,lte=130"`
}

// UserRecord - запись поставщика данных; этой же формы тело POST-запроса расчета.
type UserRecord struct {
	UserInfo    UserInfo        `json:"user_info"`
	Assumptions PlanAssumptions `json:"assumptions"`
}

// ToInputs переводит запись во входные данные калькулятора: разбирает дату
// и делит проценты на 100.
func (r *UserRecord) ToInputs() (retirement.Inputs, error) {
	dob, err := time.Parse(DateLayout, r.UserInfo.DateOfBirth)
	if err != nil {
		return retirement.Inputs{}, fmt.Errorf("date_of_birth: %w", err)
	}

	return retirement.Inputs{
		DateOfBirth:                dob,
		HouseholdIncome:            r.UserInfo.HouseholdIncome,
		CurrentSavingsRate:         r.UserInfo.CurrentSavingsRate.Fraction(),
		CurrentRetirementSavings:   r.UserInfo.CurrentRetirementSavings,
		PreRetirementIncomePercent: r.Assumptions.PreRetirementIncomePercent.Fraction(),
		LifeExpectancy:             r.Assumptions.LifeExpectancy,
		ExpectedRateOfReturn:       r.Assumptions.ExpectedRateOfReturn.Fraction(),
		RetirementAge:              r.Assumptions.RetirementAge,
	}, nil
}

// MarshalBinary кодирует запись для кэша.
func (r *UserRecord) MarshalBinary() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalBinary декодирует запись из кэша.
func (r *UserRecord) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, r)
}
