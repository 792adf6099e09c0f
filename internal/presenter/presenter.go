// Package presenter renders forecasts and failures as colored terminal text.
package presenter

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/gookit/color"
)

// Presenter writes forecasts to out and failures to errOut.
type Presenter struct {
	out        io.Writer
	errOut     io.Writer
	unitSymbol string
}

// New creates a Presenter. unitSymbol follows "degrees" on every line, e.g. "F".
func New(out, errOut io.Writer, unitSymbol string) *Presenter {
	return &Presenter{out: out, errOut: errOut, unitSymbol: unitSymbol}
}

// Forecast prints a header for loc and one line per entry, in order.
// It stops at the first malformed entry, reports it, and returns the error.
func (p *Presenter) Forecast(loc models.Location, fc *models.Forecast) error {
	fmt.Fprintln(p.out, color.Cyan.Sprintf("Current weather forecast for %s:", loc))

	for _, entry := range fc.List {
		line, err := p.entryLine(entry)
		if err != nil {
			p.Failure(err)
			return err
		}
		fmt.Fprintln(p.out, line)
	}

	return nil
}

func (p *Presenter) entryLine(entry models.ForecastEntry) (string, error) {
	ts, err := entry.Time()
	if err != nil {
		return "", err
	}
	temp, err := entry.TemperatureString()
	if err != nil {
		return "", err
	}
	desc, err := entry.Description()
	if err != nil {
		return "", err
	}

	degrees := "degrees"
	if p.unitSymbol != "" {
		degrees += " " + p.unitSymbol
	}

	return fmt.Sprintf("\t%s: %s %s, %s",
		color.Yellow.Sprint(ts),
		color.Green.Sprint(temp),
		degrees,
		color.Blue.Sprint(desc),
	), nil
}

// Failure prints a red "Error: " prefix followed by the raw error text.
func (p *Presenter) Failure(err error) {
	fmt.Fprintln(p.errOut, color.Red.Sprint("Error: ")+err.Error())
}

// Errorf prints the whole formatted message in red, prefixed with "Error: ".
func (p *Presenter) Errorf(format string, args ...any) {
	fmt.Fprintln(p.errOut, color.Red.Sprintf("Error: "+format, args...))
}

// Usage prints msg in red followed by an invocation example in yellow.
func (p *Presenter) Usage(msg, example string) {
	fmt.Fprintln(p.errOut, color.Red.Sprint("Error: "+msg+" Example: ")+color.Yellow.Sprint(example))
}
