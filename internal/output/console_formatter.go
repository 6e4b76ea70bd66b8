package output

import (
	"bytes"
	"fmt"

	"github.com/qsim/mg1/internal/experiment"
)

// ConsoleFormatter renders the tab-separated sweep table: one row per sweep
// value with the parameter at one decimal place and the statistics at four.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(res *experiment.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	fmt.Fprint(buf, "b\tmean\tlow\thigh\n")
	for _, pt := range res.Points {
		fmt.Fprintf(buf, "%.1f\t%.4f\t%.4f\t%.4f\n", pt.B, pt.Mean, pt.Low, pt.High)
	}
	return buf.Bytes(), nil
}
