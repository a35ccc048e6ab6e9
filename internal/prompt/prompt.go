// Package prompt collects simulation parameters and investment decisions from a
// person at the terminal.
package prompt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/pkg/validation"
)

// ErrAborted is returned when the person cancels a form.
var ErrAborted = huh.ErrUserAborted

// validateFloat accepts any finite decimal number.
func validateFloat(s string) error {
	if !validation.IsFloat(s) {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

// fieldValues renders every numeric parameter as editable text keyed by label.
func fieldValues(p config.Parameters) ([]string, map[string]*string) {
	fields := p.NumericFields()
	labels := make([]string, len(fields))
	values := make(map[string]*string, len(fields))
	for i, f := range fields {
		labels[i] = f.Name
		s := strconv.FormatFloat(f.Value, 'f', -1, 64)
		values[f.Name] = &s
	}
	return labels, values
}

// applyValues parses the edited text back into a copy of p.
func applyValues(p config.Parameters, values map[string]*string) (config.Parameters, error) {
	for label, text := range values {
		v, err := validation.ParseFloat(*text)
		if err != nil {
			return p, fmt.Errorf("%s: %w", label, err)
		}
		if err := p.Set(label, v); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Parameters asks for every simulation parameter, offering defaults as the
// starting values.
func Parameters(defaults config.Parameters) (config.Parameters, error) {
	labels, values := fieldValues(defaults)
	homeowner := defaults.Homeowner

	inputs := make([]huh.Field, 0, len(labels))
	for _, label := range labels {
		inputs = append(inputs, huh.NewInput().
			Title(label).
			Value(values[label]).
			Validate(validateFloat))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you buying a home?").
				Affirmative("Buy").
				Negative("Rent").
				Value(&homeowner),
		),
		huh.NewGroup(inputs...),
	)
	if err := form.Run(); err != nil {
		return defaults, err
	}

	params, err := applyValues(defaults, values)
	if err != nil {
		return defaults, err
	}
	params.Homeowner = homeowner
	return params, nil
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	answer := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&answer),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return answer, err
}
