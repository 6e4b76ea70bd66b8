// Package output renders completed sweep results. Formatters follow the same
// pluggable shape for every format; GenerateReport is the only entry point
// callers need.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/qsim/mg1/internal/experiment"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(res *experiment.Result) ([]byte, error)
	// Name returns a short identifier for lookup and error messages.
	Name() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil if the name is
// unknown.
func GetFormatterByName(name string) Formatter {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// FormatNames lists the registered formatter names.
func FormatNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	return names
}

// GenerateReport formats the result and writes it to w.
func GenerateReport(res *experiment.Result, format string, w io.Writer) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(FormatNames(), ", "))
	}
	data, err := f.Format(res)
	if err != nil {
		return fmt.Errorf("%s formatting failed: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s report: %w", f.Name(), err)
	}
	return nil
}
