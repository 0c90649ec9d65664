package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/retirement"
)

const providerPayload = `{
	"user_info": {
		"date_of_birth": "1990-01-01",
		"household_income": 100000,
		"current_savings_rate": 10,
		"current_retirement_savings": 50000
	},
	"assumptions": {
		"pre_retirement_income_percent": "80",
		"life_expectancy": 90,
		"expected_rate_of_return": 7.9,
		"retirement_age": 65
	}
}`

func TestUserRecord_Decode(t *testing.T) {
	var record dto.UserRecord
	require.NoError(t, json.Unmarshal([]byte(providerPayload), &record))

	assert.Equal(t, dto.Percent(10), record.UserInfo.CurrentSavingsRate)
	assert.Equal(t, dto.Percent(80), record.Assumptions.PreRetirementIncomePercent)
	assert.Equal(t, dto.Percent(7), record.Assumptions.ExpectedRateOfReturn, "fractional percent is truncated")
}

func TestUserRecord_RejectsNonNumericPercent(t *testing.T) {
	var record dto.UserRecord
	err := json.Unmarshal([]byte(`{"user_info":{"current_savings_rate":"ten"}}`), &record)
	require.Error(t, err)
	assert.ErrorIs(t, err, dto.ErrInvalidPercent)
}

func TestPercent_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected dto.Percent
		wantErr  bool
	}{
		{name: "number", input: `10`, expected: 10},
		{name: "fractional number is truncated", input: `7.9`, expected: 7},
		{name: "negative fractional number", input: `-2.5`, expected: -2},
		{name: "integer string", input: `"80"`, expected: 80},
		{name: "padded integer string", input: `" 80 "`, expected: 80},
		{name: "fractional string", input: `"7.9"`, wantErr: true},
		{name: "empty string", input: `""`, wantErr: true},
		{name: "unbalanced leading quote", input: `"10`, wantErr: true},
		{name: "unbalanced trailing quote", input: `10"`, wantErr: true},
		{name: "word", input: `"ten"`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p dto.Percent
			err := p.UnmarshalJSON([]byte(tc.input))
			if tc.wantErr {
				assert.ErrorIs(t, err, dto.ErrInvalidPercent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestUserRecord_RejectsFractionalPercentString(t *testing.T) {
	var record dto.UserRecord
	err := json.Unmarshal([]byte(`{"assumptions":{"expected_rate_of_return":"7.9"}}`), &record)
	assert.ErrorIs(t, err, dto.ErrInvalidPercent)
}

func TestUserRecord_ToInputs(t *testing.T) {
	var record dto.UserRecord
	require.NoError(t, json.Unmarshal([]byte(providerPayload), &record))

	in, err := record.ToInputs()
	require.NoError(t, err)

	assert.Equal(t, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), in.DateOfBirth)
	assert.InDelta(t, 0.10, in.CurrentSavingsRate, 1e-12)
	assert.InDelta(t, 0.80, in.PreRetirementIncomePercent, 1e-12)
	assert.InDelta(t, 0.07, in.ExpectedRateOfReturn, 1e-12)
	assert.Equal(t, 90, in.LifeExpectancy)
	assert.Equal(t, 65, in.RetirementAge)
	assert.Equal(t, 100000.0, in.HouseholdIncome)
	assert.Equal(t, 50000.0, in.CurrentRetirementSavings)
}

func TestUserRecord_ToInputsMalformedDate(t *testing.T) {
	record := dto.UserRecord{UserInfo: dto.UserInfo{DateOfBirth: "01/01/1990"}}

	_, err := record.ToInputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_of_birth")
}

func TestUserRecord_BinaryRoundTrip(t *testing.T) {
	var record dto.UserRecord
	require.NoError(t, json.Unmarshal([]byte(providerPayload), &record))

	data, err := record.MarshalBinary()
	require.NoError(t, err)

	var decoded dto.UserRecord
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, record, decoded)
}

func TestNewProjectionResponse(t *testing.T) {
	p := retirement.Projection{
		Horizon:              retirement.Horizon{CurrentAge: 35, YearsUntilRetirement: 30, YearsInRetirement: 25},
		AmountNeededToRetire: 3000000,
		ExpectedTotalSavings: 3500000,
	}

	resp := dto.NewProjectionResponse(65, p).WithSchedule([]retirement.Contribution{
		{Year: 0, Amount: 10000, Periods: 30, FutureValue: 76122.55},
		{Year: 1, Amount: 10200, Periods: 29, FutureValue: 72565.56},
	})

	assert.Equal(t, 65, resp.RetirementAge)
	assert.Equal(t, -500000.0, resp.Shortfall)
	assert.True(t, resp.OnTrack)
	assert.Equal(t, "To retire at age 65:\nYou will need $3,000,000\nYou will have saved $3,500,000", resp.Message)
	require.Len(t, resp.Schedule, 2)
	assert.Equal(t, 36, resp.Schedule[1].Age)
}
