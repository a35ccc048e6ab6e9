package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/format"
	"github.com/iwvelando/homeowner-forecast/pkg/loans"
)

// RenderSchedule writes an amortization schedule in the named format.
func RenderSchedule(w io.Writer, outputFormat string, schedule []loans.Payment) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyScheduleFormat(w, schedule)
	case constants.OutputFormatCSV:
		return ScheduleCsvFormat(w, schedule)
	case constants.OutputFormatJSON:
		return JSONFormat(w, schedule)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, schedule)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyScheduleFormat prints the schedule as a table followed by the totals.
func PrettyScheduleFormat(w io.Writer, schedule []loans.Payment) error {
	rows := make([][]string, 0, len(schedule))
	for _, p := range schedule {
		rows = append(rows, []string{
			strconv.Itoa(p.Month),
			p.Date,
			format.Currency(p.Payment),
			format.Currency(p.Principal),
			format.Currency(p.Interest),
			format.Currency(p.RemainingPrincipal),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTitle("Mortgage schedule"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(Table{
		Headers: []string{"Month", "Date", "Payment", "Principal", "Interest", "Remaining"},
		Rows:    rows,
	}))
	if len(schedule) > 0 {
		fmt.Fprintf(&b, "\nMonthly payment %s, total interest %s over %d payments.\n",
			format.Currency(schedule[0].Payment), format.Currency(loans.TotalInterest(schedule)), len(schedule))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ScheduleCsvFormat outputs one row per scheduled payment.
func ScheduleCsvFormat(w io.Writer, schedule []loans.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "date", "payment", "principal", "interest", "remaining"}); err != nil {
		return err
	}
	for _, p := range schedule {
		record := []string{
			strconv.Itoa(p.Month),
			p.Date,
			fixed(p.Payment),
			fixed(p.Principal),
			fixed(p.Interest),
			fixed(p.RemainingPrincipal),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
