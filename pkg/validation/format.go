// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
)

// OutputFormats lists the supported output formats in display order.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s", strings.Join(OutputFormats, ", "), format)
}

// ValidateLogLevel checks a zap level name.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}

// IsFloat reports whether s parses as a finite decimal number.
func IsFloat(s string) bool {
	_, err := ParseFloat(s)
	return err == nil
}

// ParseFloat parses s as a finite decimal number, ignoring surrounding spaces.
func ParseFloat(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("value is empty")
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return value, nil
}
