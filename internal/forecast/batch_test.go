package forecast

import (
	"testing"

	"github.com/iwvelando/homeowner-forecast/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunBatchReproducible(t *testing.T) {
	params := testutil.HomeownerParameters()
	params.SimulationDuration = 5
	cfg := BatchConfig{Runs: 25, Seed: 42, Concurrency: 4, Policy: Policy{InvestFraction: 0.1, CoverShortfall: true}}

	first, err := RunBatch(zap.NewNop(), params, Options{ProRateMortgageInterest: true}, cfg)
	require.NoError(t, err)
	second, err := RunBatch(zap.NewNop(), params, Options{ProRateMortgageInterest: true}, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Outcomes, second.Outcomes)
	assert.Equal(t, 25, first.Runs)
	require.Len(t, first.Outcomes, 25)
	for i, o := range first.Outcomes {
		assert.Equal(t, i+1, o.Run)
		assert.Equal(t, int64(42+i), o.Seed)
	}
}

func TestRunBatchSummary(t *testing.T) {
	params := testutil.RenterParameters()
	params.SimulationDuration = 3
	result, err := RunBatch(nil, params, Options{}, BatchConfig{Runs: 40, Seed: 7})
	require.NoError(t, err)

	bankrupt := 0
	for _, o := range result.Outcomes {
		if o.State == StateBankrupt {
			bankrupt++
		}
	}
	assert.Equal(t, bankrupt, result.Bankruptcies)
	assert.InDelta(t, float64(bankrupt)/40, result.BankruptcyRate, 1e-12)
	assert.Zero(t, result.HomeSales)
	assert.LessOrEqual(t, result.NetWorth.P10, result.NetWorth.P50)
	assert.LessOrEqual(t, result.NetWorth.P50, result.NetWorth.P90)
}

func TestRunBatchNoRuns(t *testing.T) {
	_, err := RunBatch(zap.NewNop(), testutil.RenterParameters(), Options{}, BatchConfig{Runs: 0})
	assert.Error(t, err)
}

func TestPercentiles(t *testing.T) {
	values := []float64{9, 1, 8, 2, 7, 3, 6, 4, 5, 0}
	p := percentiles(values)
	assert.Equal(t, 1.0, p.P10)
	assert.Equal(t, 5.0, p.P50)
	assert.Equal(t, 9.0, p.P90)
	assert.Equal(t, 9.0, values[0], "input must not be reordered")
}
