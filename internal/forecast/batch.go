package forecast

import (
	"fmt"
	"sort"
	"sync"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/events"
	"go.uber.org/zap"
)

// BatchConfig controls a set of independent simulations of the same parameters.
type BatchConfig struct {
	Runs        int
	Seed        int64
	Concurrency int
	Policy      Policy
}

// RunOutcome is the condensed result of one run in a batch.
type RunOutcome struct {
	Run             int     `json:"run" yaml:"run"`
	Seed            int64   `json:"seed" yaml:"seed"`
	State           State   `json:"state" yaml:"state"`
	MonthsSimulated int     `json:"monthsSimulated" yaml:"monthsSimulated"`
	NetWorth        float64 `json:"netWorth" yaml:"netWorth"`
	HomeSold        bool    `json:"homeSold" yaml:"homeSold"`
}

// Percentiles of final net worth across a batch.
type Percentiles struct {
	P10 float64 `json:"p10" yaml:"p10"`
	P50 float64 `json:"p50" yaml:"p50"`
	P90 float64 `json:"p90" yaml:"p90"`
}

// BatchResult aggregates a batch.
type BatchResult struct {
	Parameters     config.Parameters `json:"parameters" yaml:"parameters"`
	Outcomes       []RunOutcome      `json:"outcomes" yaml:"outcomes"`
	Runs           int               `json:"runs" yaml:"runs"`
	Bankruptcies   int               `json:"bankruptcies" yaml:"bankruptcies"`
	BankruptcyRate float64           `json:"bankruptcyRate" yaml:"bankruptcyRate"`
	HomeSales      int               `json:"homeSales" yaml:"homeSales"`
	NetWorth       Percentiles       `json:"netWorth" yaml:"netWorth"`
}

// RunBatch runs cfg.Runs simulations concurrently. Run i draws from its own
// generator seeded with cfg.Seed+i, so a non-zero seed makes the batch reproducible.
func RunBatch(logger *zap.Logger, params config.Parameters, opts Options, cfg BatchConfig) (*BatchResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("batch needs at least one run, got %d", cfg.Runs)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = constants.DefaultBatchConcurrency
	}
	if cfg.Seed == 0 {
		cfg.Seed = events.NewSeed()
	}

	outcomes := make([]RunOutcome, cfg.Runs)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, cfg.Concurrency)

	for i := 0; i < cfg.Runs; i++ {
		wg.Add(1)
		go func(run int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			seed := cfg.Seed + int64(run)
			engine := NewEngine(logger, events.NewSeededSource(seed), cfg.Policy, opts)
			result := engine.Run(params)
			outcomes[run] = RunOutcome{
				Run:             run + 1,
				Seed:            seed,
				State:           result.State,
				MonthsSimulated: result.MonthsSimulated,
				NetWorth:        result.Person.NetWorth(),
				HomeSold:        result.Person.HomeSold,
			}
		}(i)
	}
	wg.Wait()

	batch := &BatchResult{Parameters: params, Outcomes: outcomes, Runs: cfg.Runs}
	worths := make([]float64, len(outcomes))
	for i, o := range outcomes {
		if o.State == StateBankrupt {
			batch.Bankruptcies++
		}
		if o.HomeSold {
			batch.HomeSales++
		}
		worths[i] = o.NetWorth
	}
	batch.BankruptcyRate = float64(batch.Bankruptcies) / float64(batch.Runs)
	batch.NetWorth = percentiles(worths)

	logger.Info(fmt.Sprintf("batch of %d runs finished", cfg.Runs),
		zap.String("op", "forecast.RunBatch"),
		zap.Int64("seed", cfg.Seed),
		zap.Int("bankruptcies", batch.Bankruptcies),
	)
	return batch, nil
}

func percentiles(values []float64) Percentiles {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	return Percentiles{
		P10: sorted[n/10],
		P50: sorted[n/2],
		P90: sorted[9*n/10],
	}
}
