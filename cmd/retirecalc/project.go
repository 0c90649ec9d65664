package main

import (
	"github.com/spf13/cobra"

	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/resilience"
)

func newProjectCmd(c *cli) *cobra.Command {
	var (
		record   dto.UserRecord
		schedule bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Compute a projection from inputs given on the command line",
		Example: "  retirecalc project --dob 1990-01-01 --income 100000 --savings-rate 10 \\\n" +
			"    --current-savings 50000 --income-percent 80 --life-expectancy 90 \\\n" +
			"    --return-rate 7 --retirement-age 65",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service(nil, resilience.NewServiceResilience(providerServiceName))
			if err != nil {
				return err
			}

			resp, err := svc.Project(c.context(), &record, schedule)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&record.UserInfo.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	flags.Float64Var(&record.UserInfo.HouseholdIncome, "income", 0, "Annual household income")
	flags.IntVar((*int)(&record.UserInfo.CurrentSavingsRate), "savings-rate", 0, "Share of income saved each year, percent")
	flags.Float64Var(&record.UserInfo.CurrentRetirementSavings, "current-savings", 0, "Retirement savings accumulated so far")
	flags.IntVar((*int)(&record.Assumptions.PreRetirementIncomePercent), "income-percent", 80, "Share of pre-retirement income needed in retirement, percent")
	flags.IntVar(&record.Assumptions.LifeExpectancy, "life-expectancy", 90, "Expected age at death")
	flags.IntVar((*int)(&record.Assumptions.ExpectedRateOfReturn), "return-rate", 7, "Expected annual rate of return, percent")
	flags.IntVar(&record.Assumptions.RetirementAge, "retirement-age", 65, "Target retirement age")
	flags.BoolVar(&schedule, "schedule", false, "Include the yearly contribution schedule")

	_ = cmd.MarkFlagRequired("dob")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}
