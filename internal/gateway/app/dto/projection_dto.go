package dto

import (
	"retireplan/internal/report"
	"retireplan/internal/retirement"
)

// ContributionResponse - ежегодный взнос в графике накоплений.
type ContributionResponse struct {
	Year        int     `json:"year"`
	Age         int     `json:"age"`
	Amount      float64 `json:"amount"`
	FutureValue float64 `json:"future_value"`
}

// ProjectionResponse - результат расчета для JSON API.
type ProjectionResponse struct {
	RetirementAge        int     `json:"retirement_age"`
	CurrentAge           int     `json:"current_age"`
	YearsUntilRetirement int     `json:"years_until_retirement"`
	YearsInRetirement    int     `json:"years_in_retirement"`
	AmountNeededToRetire float64 `json:"amount_needed_to_retire"`
	ExpectedTotalSavings float64 `json:"expected_total_savings"`
	Shortfall            float64 `json:"shortfall"`
	OnTrack              bool    `json:"on_track"`
	Message              string  `json:"message"`

	Schedule []ContributionResponse `json:"schedule,omitempty"`
}

// NewProjectionResponse собирает ответ из результата расчета.
func NewProjectionResponse(retirementAge int, p retirement.Projection) *ProjectionResponse {
	return &ProjectionResponse{
		RetirementAge:        retirementAge,
		CurrentAge:           p.CurrentAge,
		YearsUntilRetirement: p.YearsUntilRetirement,
		YearsInRetirement:    p.YearsInRetirement,
		AmountNeededToRetire: p.AmountNeededToRetire,
		ExpectedTotalSavings: p.ExpectedTotalSavings,
		Shortfall:            p.Shortfall(),
		OnTrack:              p.Shortfall() <= 0,
		Message:              report.Message(retirementAge, p),
	}
}

// WithSchedule добавляет график взносов.
func (r *ProjectionResponse) WithSchedule(schedule []retirement.Contribution) *ProjectionResponse {
	r.Schedule = make([]ContributionResponse, 0, len(schedule))
	for _, c := range schedule {
		r.Schedule = append(r.Schedule, ContributionResponse{
			Year:        c.Year,
			Age:         r.CurrentAge + c.Year,
			Amount:      c.Amount,
			FutureValue: c.FutureValue,
		})
	}
	return r
}
