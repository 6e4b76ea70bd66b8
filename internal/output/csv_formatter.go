package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/qsim/mg1/internal/experiment"
)

// CSVFormatter renders the sweep table as CSV (one row per sweep value).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(res *experiment.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"b", "mean", "low", "high"}); err != nil {
		return nil, err
	}
	for _, pt := range res.Points {
		row := []string{
			strconv.FormatFloat(pt.B, 'f', 1, 64),
			strconv.FormatFloat(pt.Mean, 'f', 4, 64),
			strconv.FormatFloat(pt.Low, 'f', 4, 64),
			strconv.FormatFloat(pt.High, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
