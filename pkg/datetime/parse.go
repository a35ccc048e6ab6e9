// Package datetime provides month-label helpers for simulation output.
package datetime

import (
	"time"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// CurrentMonth returns the month containing now, formatted with DateTimeLayout.
func CurrentMonth(now time.Time) string {
	return now.Format(DateTimeLayout)
}

// MonthLabels returns count consecutive month labels beginning at start.
func MonthLabels(start string, count int) ([]string, error) {
	t, err := time.Parse(DateTimeLayout, start)
	if err != nil {
		return nil, err
	}
	labels := make([]string, count)
	for i := range labels {
		labels[i] = t.AddDate(0, i, 0).Format(DateTimeLayout)
	}
	return labels, nil
}
