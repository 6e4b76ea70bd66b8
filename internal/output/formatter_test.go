package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsim/mg1/internal/experiment"
	"github.com/qsim/mg1/internal/stats"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Points: []experiment.PointSummary{
			{B: 0.1, Summary: stats.Summary{Mean: 0.0523, Low: 0.0489, High: 0.0561}},
			{B: 0.4222, Summary: stats.Summary{Mean: 0.2131, Low: 0.2005, High: 0.2298}},
		},
	}
}

func TestConsoleFormatterLayout(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	want := "b\tmean\tlow\thigh\n" +
		"0.1\t0.0523\t0.0489\t0.0561\n" +
		"0.4\t0.2131\t0.2005\t0.2298\n"
	assert.Equal(t, want, string(data))
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "b,mean,low,high", lines[0])
	assert.Equal(t, "0.1,0.0523,0.0489,0.0561", lines[1])
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	var decoded experiment.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Points, 2)
	assert.Equal(t, 0.1, decoded.Points[0].B)
	assert.Equal(t, 0.0523, decoded.Points[0].Mean)
}

func TestGenerateReportDispatch(t *testing.T) {
	for _, format := range []string{"console", "csv", "json", " Console "} {
		buf := &bytes.Buffer{}
		err := GenerateReport(sampleResult(), format, buf)
		require.NoError(t, err, "format %q", format)
		assert.NotZero(t, buf.Len())
	}
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	err := GenerateReport(sampleResult(), "xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console")
}
