package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"retireplan/internal/gateway/adapters/cache"
	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/app/services"
	"retireplan/internal/gateway/ports/provider"
	portservices "retireplan/internal/gateway/ports/services"
	"retireplan/internal/gateway/resilience"
	"retireplan/internal/report"
	"retireplan/internal/retirement"
	"retireplan/pkg/logger"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

var errZeroInflation = errors.New("inflation rate must not be zero")

// cli хранит общие для подкоманд флаги и зависимости.
type cli struct {
	out io.Writer
	now func() time.Time

	logLevel           string
	inflationRate      float64
	salaryIncreaseRate float64
	asJSON             bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRootCmdWithClock(out, time.Now)
}

func newRootCmdWithClock(out io.Writer, now func() time.Time) *cobra.Command {
	c := &cli{out: out, now: now}

	rootCmd := &cobra.Command{
		Use:           "retirecalc",
		Short:         "Retirement savings projection calculator",
		Long:          "Estimate the amount needed to retire and the savings projected at retirement age.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			log, err := logger.NewLogger(logger.Production, c.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.SetGlobalLogger(log)
			return nil
		},
	}
	rootCmd.SetOut(out)

	defaults := retirement.DefaultAssumptions()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	flags.Float64Var(&c.inflationRate, "inflation-rate", defaults.InflationRate, "Annual inflation rate as a fraction")
	flags.Float64Var(&c.salaryIncreaseRate, "salary-increase-rate", defaults.SalaryIncreaseRate, "Annual salary increase rate as a fraction")
	flags.BoolVar(&c.asJSON, "json", false, "Print the projection as JSON")

	rootCmd.AddCommand(newProjectCmd(c), newUserCmd(c))

	return rootCmd
}

// service собирает сервис расчета; без поставщика доступен только Project.
func (c *cli) service(userProvider provider.UserDataProvider, res *resilience.ServiceResilience) (portservices.RetirementService, error) {
	if c.inflationRate == 0 {
		return nil, errZeroInflation
	}

	calculator := retirement.NewCalculator(retirement.Assumptions{
		InflationRate:      c.inflationRate,
		SalaryIncreaseRate: c.salaryIncreaseRate,
	}, retirement.WithClock(c.now))

	return services.NewRetirementService(userProvider, cache.NoopCache{}, res, calculator), nil
}

func (c *cli) context() context.Context {
	return logger.NewRequestIDContext(context.Background(), "")
}

// print выводит результат текстом или JSON.
func (c *cli) print(resp *dto.ProjectionResponse) error {
	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if _, err := fmt.Fprintln(c.out, resp.Message); err != nil {
		return err
	}

	status := "on track"
	if !resp.OnTrack {
		status = "short by $" + report.Dollars(resp.Shortfall)
	}
	if _, err := fmt.Fprintf(c.out, "Status: %s\n", status); err != nil {
		return err
	}

	if len(resp.Schedule) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(resp.Schedule))
	for _, row := range resp.Schedule {
		rows = append(rows, []string{
			strconv.Itoa(row.Year + 1),
			strconv.Itoa(row.Age),
			"$" + report.WholeDollars(row.Amount),
			"$" + report.WholeDollars(row.FutureValue),
		})
	}

	schedule := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("YEAR", "AGE", "CONTRIBUTION", "VALUE AT RETIREMENT").
		Rows(rows...).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		})

	_, err := fmt.Fprintln(c.out, schedule.String())
	return err
}
