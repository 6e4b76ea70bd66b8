package output

import (
	"encoding/json"

	"github.com/qsim/mg1/internal/experiment"
)

// JSONFormatter serializes the sweep result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(res *experiment.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}
