// Package constants provides shared constants for the homeowner-forecast application.
package constants

// DateTimeLayout is the format used for month labels in config files and output.
const DateTimeLayout = "2006-01"

// Calendar and precision constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerMonth is the number of job-search attempts made in one month
	WeeksPerMonth = 4

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Simulation constants
const (
	// AnnualRaiseRate is the raise applied to pre-tax income at every year boundary
	AnnualRaiseRate = 0.05

	// CapitalGainsExclusion is the gain below which a home sale is untaxed
	CapitalGainsExclusion = 250000.0

	// CapitalGainsRate is the flat rate applied to the whole gain above the exclusion
	CapitalGainsRate = 0.09

	// ETFSaleFeeRate is the transaction fee deducted from ETF sale proceeds
	ETFSaleFeeRate = 0.005

	// UnemploymentProbability is the monthly chance of losing a job
	UnemploymentProbability = 0.10

	// WeeklyJobSearchProbability is the chance a single weekly job search succeeds (3 of 6 die faces)
	WeeklyJobSearchProbability = 3.0 / 6.0

	// HomeSaleProbability is the chance an opportunistic home sale goes through (4 of 6 die faces)
	HomeSaleProbability = 4.0 / 6.0

	// ETFFluctuation bounds the uniform swing applied to the annual ETF return
	ETFFluctuation = 0.02

	// HomeValueFluctuation bounds the uniform swing applied to the monthly home value multiplier
	HomeValueFluctuation = 0.02
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "HOMEFORECAST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Batch defaults
const (
	// DefaultBatchConcurrency limits concurrently running simulations in batch mode
	DefaultBatchConcurrency = 10
)
