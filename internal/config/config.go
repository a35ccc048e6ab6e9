// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/datetime"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for homeowner-forecast.
type Configuration struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging,omitempty" json:"logging"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output,omitempty" json:"output"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation" json:"simulation"`
	Parameters Parameters       `mapstructure:"parameters" yaml:"parameters" json:"parameters"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" json:"level,omitempty"`                // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`             // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json, yaml
}

// SimulationConfig controls how the engine is run rather than what it models.
type SimulationConfig struct {
	Seed        int64          `mapstructure:"seed" yaml:"seed" json:"seed"`
	Runs        int            `mapstructure:"runs" yaml:"runs" json:"runs"`
	Concurrency int            `mapstructure:"concurrency" yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	Decisions   DecisionConfig `mapstructure:"decisions" yaml:"decisions" json:"decisions"`
	Options     EngineOptions  `mapstructure:"options" yaml:"options" json:"options"`
}

// DecisionConfig is a non-interactive policy for the invest and sell decisions.
type DecisionConfig struct {
	// InvestFraction is the share of a positive bank balance moved into the ETF each month.
	InvestFraction float64 `mapstructure:"investFraction" yaml:"investFraction" json:"investFraction"`
	// CoverShortfall sells just enough ETF to bring a negative bank balance back to zero.
	CoverShortfall bool `mapstructure:"coverShortfall" yaml:"coverShortfall" json:"coverShortfall"`
}

// EngineOptions toggle behaviors of the monthly step whose intent is unclear. The
// zero value is the default monthly step.
type EngineOptions struct {
	// ChargeRentTwice deducts rent both when it accrues and again in the housing step.
	ChargeRentTwice bool `mapstructure:"chargeRentTwice" yaml:"chargeRentTwice" json:"chargeRentTwice"`
	// ProRateMortgageInterest charges rate/12 monthly instead of the full annual rate.
	ProRateMortgageInterest bool `mapstructure:"proRateMortgageInterest" yaml:"proRateMortgageInterest" json:"proRateMortgageInterest"`
	// SkipUnemployedHousingCost stops charging housing costs a second time while unemployed.
	SkipUnemployedHousingCost bool `mapstructure:"skipUnemployedHousingCost" yaml:"skipUnemployedHousingCost" json:"skipUnemployedHousingCost"`
	// ClearHomeownerOnSale turns the person into a renter after the home is sold.
	ClearHomeownerOnSale bool `mapstructure:"clearHomeownerOnSale" yaml:"clearHomeownerOnSale" json:"clearHomeownerOnSale"`
}

// newViper returns a viper instance with defaults and environment overrides bound.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.runs", 1)
	v.SetDefault("simulation.concurrency", constants.DefaultBatchConcurrency)
	v.SetDefault("simulation.decisions.investFraction", 0.0)
	v.SetDefault("simulation.decisions.coverShortfall", true)
	v.SetDefault("simulation.options.chargeRentTwice", false)
	v.SetDefault("simulation.options.proRateMortgageInterest", false)
	v.SetDefault("simulation.options.skipUnemployedHousingCost", false)
	v.SetDefault("simulation.options.clearHomeownerOnSale", false)

	defaults := DefaultParameters()
	for key, value := range defaults.asMap() {
		v.SetDefault("parameters."+key, value)
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Normalize fills derived defaults: the start month and sane run counts.
func (c *Configuration) Normalize(now time.Time) error {
	if c.Parameters.StartDate == "" {
		c.Parameters.StartDate = datetime.CurrentMonth(now)
	} else if _, err := time.Parse(DateTimeLayout, c.Parameters.StartDate); err != nil {
		return fmt.Errorf("invalid start date %q, expected YYYY-MM: %w", c.Parameters.StartDate, err)
	}
	if c.Simulation.Runs < 1 {
		c.Simulation.Runs = 1
	}
	if c.Simulation.Concurrency < 1 {
		c.Simulation.Concurrency = constants.DefaultBatchConcurrency
	}
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	return nil
}
