package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/homeowner-forecast/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSchedule(t *testing.T) []loans.Payment {
	t.Helper()
	schedule, err := loans.NewScheduleGenerator(zap.NewNop()).Generate(loans.LoanConfig{
		Name:         "test",
		StartDate:    "2025-01",
		Principal:    1200,
		InterestRate: 12,
		TermYears:    1,
	})
	require.NoError(t, err)
	return schedule
}

func TestScheduleCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScheduleCsvFormat(&buf, testSchedule(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 13)
	assert.Equal(t, []string{"month", "date", "payment", "principal", "interest", "remaining"}, records[0])
	assert.Equal(t, []string{"1", "2025-01", "106.62", "94.62", "12.00"}, records[1][:5])
	assert.Equal(t, "0.00", records[12][5])
}

func TestRenderSchedule(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "pretty", want: "Mortgage schedule"},
		{format: "csv", want: "month,date,payment"},
		{format: "json", want: "\"remainingPrincipal\""},
		{format: "yaml", want: "remainingPrincipal:"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderSchedule(&buf, tt.format, testSchedule(t)))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	err := RenderSchedule(&bytes.Buffer{}, "xml", nil)
	assert.Error(t, err)
}

func TestPrettyScheduleFormatTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrettyScheduleFormat(&buf, testSchedule(t)))
	out := buf.String()
	assert.True(t, strings.Contains(out, "Monthly payment $106.62"), out)
	assert.Contains(t, out, "over 12 payments")
}
