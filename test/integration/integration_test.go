package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/internal/report"
	"github.com/iwvelando/homeowner-forecast/pkg/events"
	"github.com/iwvelando/homeowner-forecast/pkg/output"
	"github.com/iwvelando/homeowner-forecast/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const renterYAML = `
parameters:
  homeowner: false
  preTaxIncome: 90000
  startingRent: 2000
  rentInflation: 0
  simulationDuration: 1
  startDate: "2025-01"
`

func loadTestConfig(t *testing.T) *config.Configuration {
	t.Helper()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	require.NoError(t, err, "LoadConfiguration()")
	require.NoError(t, conf.Normalize(time.Now()))
	return conf
}

// TestRenterBaseline runs a config-driven renter year end to end with every month employed.
func TestRenterBaseline(t *testing.T) {
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(renterYAML))
	require.NoError(t, err)
	require.NoError(t, conf.Normalize(time.Now()))
	assert.Empty(t, conf.ValidateConfiguration())

	engine := forecast.NewEngine(zap.NewNop(), testutil.AlwaysEmployed(), forecast.NoDecisions{}, conf.Simulation.Options)
	rep := report.Generate(engine.Run(conf.Parameters))

	assert.Equal(t, forecast.StateCompleted, rep.Summary.State)
	assert.Equal(t, 12, rep.Summary.MonthsSimulated)
	assert.InDelta(t, 66000.0, rep.Summary.FinalBank, 0.005)
	assert.InDelta(t, 66000.0, rep.Summary.NetWorth, 0.005)
	assert.Zero(t, rep.Summary.FinalMortgage)

	var buf bytes.Buffer
	require.NoError(t, output.CsvFormat(&buf, rep))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-12", records[1][1])
	assert.Equal(t, "66000.00", records[1][2])
}

// TestSeededForecastReproducible checks that the configured seed fully determines a run.
func TestSeededForecastReproducible(t *testing.T) {
	conf := loadTestConfig(t)
	require.NotZero(t, conf.Simulation.Seed)

	run := func() forecast.Result {
		engine := forecast.NewEngine(zap.NewNop(), events.NewSeededSource(conf.Simulation.Seed),
			forecast.PolicyFromConfig(conf.Simulation.Decisions), conf.Simulation.Options)
		return engine.Run(conf.Parameters)
	}

	first, second := run(), run()
	assert.Equal(t, first.State, second.State)
	assert.Equal(t, first.MonthsSimulated, second.MonthsSimulated)
	assert.Equal(t, first.Person, second.Person)
	assert.Len(t, first.Months, first.MonthsSimulated)
}

// TestForecastInvariants checks the homeowner and renter invariants on every recorded month.
func TestForecastInvariants(t *testing.T) {
	conf := loadTestConfig(t)

	for _, homeowner := range []bool{true, false} {
		params := conf.Parameters
		params.Homeowner = homeowner
		for seed := int64(1); seed <= 10; seed++ {
			engine := forecast.NewEngine(zap.NewNop(), events.NewSeededSource(seed),
				forecast.PolicyFromConfig(conf.Simulation.Decisions), conf.Simulation.Options)
			result := engine.Run(params)

			assert.LessOrEqual(t, result.MonthsSimulated, forecast.TotalMonths(params.SimulationDuration))
			if result.State == forecast.StateBankrupt {
				assert.Less(t, result.Person.BankBalance, 0.0)
				assert.False(t, result.Person.Employed)
			}
			if !homeowner {
				assert.Zero(t, result.Person.MortgageBalance)
				assert.Zero(t, result.Person.TotalEquity)
				continue
			}
			if !result.Person.HomeSold {
				assert.InDelta(t, result.Person.HomeValue-result.Person.MortgageBalance, result.Person.TotalEquity, 1e-6)
			}
			for _, m := range result.Months {
				assert.False(t, math.IsNaN(m.NetWorth), "seed %d month %d", seed, m.Month)
			}
		}
	}
}

// TestOutputFormats renders the configured forecast in every supported format.
func TestOutputFormats(t *testing.T) {
	conf := loadTestConfig(t)
	engine := forecast.NewEngine(zap.NewNop(), events.NewSeededSource(conf.Simulation.Seed),
		forecast.PolicyFromConfig(conf.Simulation.Decisions), conf.Simulation.Options)
	rep := report.Generate(engine.Run(conf.Parameters))

	tests := []struct {
		format string
		want   string
	}{
		{format: "pretty", want: "Homeowner forecast"},
		{format: "csv", want: "year,through,bank"},
		{format: "json", want: "\"summary\""},
		{format: "yaml", want: "summary:"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.Render(&buf, tt.format, rep, false))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

// TestBatchFromConfig runs the configured batch and checks the summary is consistent.
func TestBatchFromConfig(t *testing.T) {
	conf := loadTestConfig(t)
	sim := conf.Simulation

	batch, err := forecast.RunBatch(zap.NewNop(), conf.Parameters, sim.Options, forecast.BatchConfig{
		Runs:        sim.Runs,
		Seed:        sim.Seed,
		Concurrency: sim.Concurrency,
		Policy:      forecast.PolicyFromConfig(sim.Decisions),
	})
	require.NoError(t, err)

	summary := report.GenerateBatch(batch, true)
	assert.Equal(t, sim.Runs, summary.Runs)
	assert.Len(t, summary.Outcomes, sim.Runs)
	assert.LessOrEqual(t, summary.NetWorthP10, summary.NetWorthP50)
	assert.LessOrEqual(t, summary.NetWorthP50, summary.NetWorthP90)

	var buf bytes.Buffer
	require.NoError(t, output.RenderBatch(&buf, "csv", summary))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, sim.Runs+1)
}
