// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/homeowner-forecast/internal/forecast"
	"github.com/iwvelando/homeowner-forecast/internal/report"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/format"
	"github.com/iwvelando/homeowner-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Render writes a single-run report in the named format. Monthly records are
// included in pretty and csv output only when monthly is set.
func Render(w io.Writer, outputFormat string, rep report.Report, monthly bool) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, rep, monthly)
	case constants.OutputFormatCSV:
		if monthly {
			return MonthlyCsvFormat(w, rep.Months)
		}
		return CsvFormat(w, rep)
	case constants.OutputFormatJSON:
		return JSONFormat(w, rep)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, rep)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// RenderBatch writes a batch summary in the named format.
func RenderBatch(w io.Writer, outputFormat string, summary report.BatchSummary) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyBatchFormat(w, summary)
	case constants.OutputFormatCSV:
		return BatchCsvFormat(w, summary)
	case constants.OutputFormatJSON:
		return JSONFormat(w, summary)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, summary)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, rep report.Report, monthly bool) error {
	title := "Renter forecast"
	if rep.Parameters.Homeowner {
		title = "Homeowner forecast"
	}

	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n\n")

	years := Table{
		Title:   "Year by year",
		Headers: []string{"Year", "Bank", "ETF", "Home value", "Equity", "Paid on mortgage", "Pre-tax income", "Income", "Net worth"},
	}
	for _, y := range rep.Years {
		label := strconv.Itoa(y.Year)
		if y.Through != "" {
			label = fmt.Sprintf("%d (%s)", y.Year, y.Through)
		}
		years.Rows = append(years.Rows, []string{
			label,
			format.Currency(y.BankBalance),
			format.Currency(y.ETFBalance),
			format.Currency(y.HomeValue),
			format.Currency(y.TotalEquity),
			format.Currency(y.TotalPaidOnMortgage),
			format.Currency(y.PreTaxIncome),
			format.Currency(y.IncomeDelta),
			format.Currency(y.NetWorth),
		})
	}
	b.WriteString(RenderTable(years))
	b.WriteString("\n")

	if monthly {
		b.WriteString(RenderTable(monthlyTable(rep.Months)))
		b.WriteString("\n")
	}

	s := rep.Summary
	summary := Table{
		Title: "Summary",
		Rows: [][]string{
			{"Bank balance", format.Currency(s.FinalBank)},
			{"ETF balance", format.Currency(s.FinalETF)},
			{"Home value", format.Currency(s.FinalHomeValue)},
			{"Mortgage balance", format.Currency(s.FinalMortgage)},
			{"Home equity", format.Currency(s.FinalEquity)},
			{"Net worth", format.Currency(s.NetWorth)},
			{"Cumulative income", format.Currency(s.CumulativeIncome)},
			{"Elapsed", format.Years(s.ElapsedYears)},
		},
	}
	if s.HomeSold {
		summary.Rows = append(summary.Rows, []string{"Capital gains tax", format.Currency(s.CapitalGainsTax)})
	}
	b.WriteString(RenderTable(summary))

	if s.State == forecast.StateBankrupt {
		b.WriteString(alertStyle.Render(fmt.Sprintf("Bankrupt after %d months.", s.MonthsSimulated)))
	} else {
		b.WriteString(valueStyle.Render(fmt.Sprintf("Completed %d months.", s.MonthsSimulated)))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func monthlyTable(months []forecast.MonthRecord) Table {
	t := Table{
		Title:   "Month by month",
		Headers: []string{"Month", "Income", "Invested", "ETF sold", "Bank", "ETF", "Home value", "Mortgage", "Net worth", "Notes"},
	}
	for _, m := range months {
		label := strconv.Itoa(m.Month)
		if m.Date != "" {
			label = m.Date
		}
		t.Rows = append(t.Rows, []string{
			label,
			format.Currency(m.NetIncome),
			format.Currency(m.Invested),
			format.Currency(m.ETFSold),
			format.Currency(m.BankBalance),
			format.Currency(m.ETFBalance),
			format.Currency(m.HomeValue),
			format.Currency(m.MortgageBalance),
			format.Currency(m.NetWorth),
			strings.Join(m.Notes, ", "),
		})
	}
	return t
}

// CsvFormat outputs the yearly rows in comma-separated value format.
func CsvFormat(w io.Writer, rep report.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"year", "through", "bank", "etf", "home value", "equity", "paid on mortgage", "pre-tax income", "income", "net worth", "employed"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, y := range rep.Years {
		record := []string{
			strconv.Itoa(y.Year),
			y.Through,
			fixed(y.BankBalance),
			fixed(y.ETFBalance),
			fixed(y.HomeValue),
			fixed(y.TotalEquity),
			fixed(y.TotalPaidOnMortgage),
			fixed(y.PreTaxIncome),
			fixed(y.IncomeDelta),
			fixed(y.NetWorth),
			strconv.FormatBool(y.Employed),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MonthlyCsvFormat outputs one row per simulated month.
func MonthlyCsvFormat(w io.Writer, months []forecast.MonthRecord) error {
	cw := csv.NewWriter(w)
	header := []string{"month", "date", "year", "etf change", "invested", "etf sold", "sale proceeds", "income", "rent", "housing", "interest", "principal", "bank", "etf", "home value", "mortgage", "net worth", "employed", "notes"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range months {
		record := []string{
			strconv.Itoa(m.Month),
			m.Date,
			strconv.Itoa(m.Year + 1),
			fixed(m.ETFDelta),
			fixed(m.Invested),
			fixed(m.ETFSold),
			fixed(m.SaleProceeds),
			fixed(m.NetIncome),
			fixed(m.RentPaid),
			fixed(m.HousingPaid),
			fixed(m.InterestCharged),
			fixed(m.PrincipalPaid),
			fixed(m.BankBalance),
			fixed(m.ETFBalance),
			fixed(m.HomeValue),
			fixed(m.MortgageBalance),
			fixed(m.NetWorth),
			strconv.FormatBool(m.Employed),
			strings.Join(m.Notes, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyBatchFormat outputs a human-readable batch summary.
func PrettyBatchFormat(w io.Writer, s report.BatchSummary) error {
	var b strings.Builder
	b.WriteString(RenderTitle(fmt.Sprintf("Batch of %d runs", s.Runs)))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(Table{
		Title: "Outcomes",
		Rows: [][]string{
			{"Bankruptcies", fmt.Sprintf("%d (%s)", s.Bankruptcies, format.Percent(s.BankruptcyPercent))},
			{"Home sales", strconv.Itoa(s.HomeSales)},
			{"Net worth P10", format.Currency(s.NetWorthP10)},
			{"Net worth P50", format.Currency(s.NetWorthP50)},
			{"Net worth P90", format.Currency(s.NetWorthP90)},
		},
	}))
	_, err := io.WriteString(w, b.String())
	return err
}

// BatchCsvFormat outputs one row per run, or the aggregate when runs were dropped.
func BatchCsvFormat(w io.Writer, s report.BatchSummary) error {
	cw := csv.NewWriter(w)
	if len(s.Outcomes) == 0 {
		records := [][]string{
			{"runs", "bankruptcies", "bankruptcy percent", "home sales", "net worth p10", "net worth p50", "net worth p90"},
			{strconv.Itoa(s.Runs), strconv.Itoa(s.Bankruptcies), fixed(s.BankruptcyPercent), strconv.Itoa(s.HomeSales),
				fixed(s.NetWorthP10), fixed(s.NetWorthP50), fixed(s.NetWorthP90)},
		}
		return cw.WriteAll(records)
	}

	if err := cw.Write([]string{"run", "seed", "state", "months", "net worth", "home sold"}); err != nil {
		return err
	}
	for _, o := range s.Outcomes {
		record := []string{
			strconv.Itoa(o.Run),
			strconv.FormatInt(o.Seed, 10),
			string(o.State),
			strconv.Itoa(o.MonthsSimulated),
			fixed(o.NetWorth),
			strconv.FormatBool(o.HomeSold),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs v as indented JSON.
func JSONFormat(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLFormat outputs v as YAML.
func YAMLFormat(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// fixed renders an amount with exactly two decimals and no grouping.
func fixed(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}
