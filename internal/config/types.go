// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PagerAuto uses the full-screen pager on a terminal and plain output otherwise.
	PagerAuto PagerMode = "auto"
	// PagerTUI always uses the full-screen pager.
	PagerTUI PagerMode = "tui"
	// PagerPlain writes pages straight to standard output.
	PagerPlain PagerMode = "plain"

	// DefaultRenderTitle is the title template of documentation pages.
	DefaultRenderTitle = "GPI Documentation: %s"
	// DefaultIndexTitle is the first line of the index.
	DefaultIndexTitle = "GPI Index"
	// DefaultIndexWidth is the wrap width of index summaries.
	DefaultIndexWidth = 80
	// DefaultMaxInlineString is the default cutoff for quoted string values.
	DefaultMaxInlineString = 255
	// DefaultMaxOtherValue is the default cutoff for other inline values.
	DefaultMaxOtherValue = 70
	// DefaultGlamourStyle selects the glamour style from the terminal background.
	DefaultGlamourStyle = "auto"

	titleVerb = "%s"
)

var (
	// ErrInvalidPagerMode is the sentinel error wrapped by InvalidPagerModeError.
	ErrInvalidPagerMode = errors.New("invalid pager mode")
	// ErrInvalidLimit is the sentinel error wrapped by InvalidLimitError.
	ErrInvalidLimit = errors.New("invalid render limit")
	// ErrInvalidTitle is the sentinel error wrapped by InvalidTitleError.
	ErrInvalidTitle = errors.New("invalid title")
	// ErrInvalidRenderConfig is the sentinel error wrapped by InvalidRenderConfigError.
	ErrInvalidRenderConfig = errors.New("invalid render config")
	// ErrInvalidIndexConfig is the sentinel error wrapped by InvalidIndexConfigError.
	ErrInvalidIndexConfig = errors.New("invalid index config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// PagerMode selects how documentation pages are displayed.
	PagerMode string

	// InvalidPagerModeError is returned when a PagerMode value is not recognized.
	// It wraps ErrInvalidPagerMode for errors.Is() compatibility.
	InvalidPagerModeError struct {
		Value PagerMode
	}

	// InvalidLimitError is returned when a render limit is not positive.
	// It wraps ErrInvalidLimit for errors.Is() compatibility.
	InvalidLimitError struct {
		Field string
		Value int
	}

	// InvalidTitleError is returned when a title is empty or, for page titles,
	// lacks the %s verb the description is substituted into.
	// It wraps ErrInvalidTitle for errors.Is() compatibility.
	InvalidTitleError struct {
		Field string
		Value string
	}

	// InvalidRenderConfigError is returned when RenderConfig has invalid fields.
	// It wraps ErrInvalidRenderConfig for errors.Is() compatibility.
	InvalidRenderConfigError struct {
		FieldErrors []error
	}

	// InvalidIndexConfigError is returned when IndexConfig has invalid fields.
	// It wraps ErrInvalidIndexConfig for errors.Is() compatibility.
	InvalidIndexConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Pager selects how pages are displayed.
		Pager PagerMode `json:"pager" mapstructure:"pager"`
		// Render configures documentation pages.
		Render RenderConfig `json:"render" mapstructure:"render"`
		// Index configures the public name index.
		Index IndexConfig `json:"index" mapstructure:"index"`
		// UI configures user interface options.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// RenderConfig configures documentation pages.
	RenderConfig struct {
		// MaxInlineString is the maximum length of a quoted string value.
		MaxInlineString int `json:"max_inline_string" mapstructure:"max_inline_string"`
		// MaxOtherValue is the maximum length of any other inline value.
		MaxOtherValue int `json:"max_other_value" mapstructure:"max_other_value"`
		// Title is the page title template; %s is replaced by the description.
		Title string `json:"title" mapstructure:"title"`
	}

	// IndexConfig configures the public name index.
	IndexConfig struct {
		// Title is the first line of the index.
		Title string `json:"title" mapstructure:"title"`
		// Width is the wrap width of summaries (0 disables wrapping).
		Width int `json:"width" mapstructure:"width"`
	}

	// UIConfig configures user interface options.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// GlamourStyle is the glamour style of markdown screens ("auto", "dark", "light", "notty" or a file path).
		GlamourStyle string `json:"glamour_style" mapstructure:"glamour_style"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Pager: PagerAuto,
		Render: RenderConfig{
			MaxInlineString: DefaultMaxInlineString,
			MaxOtherValue:   DefaultMaxOtherValue,
			Title:           DefaultRenderTitle,
		},
		Index: IndexConfig{
			Title: DefaultIndexTitle,
			Width: DefaultIndexWidth,
		},
		UI: UIConfig{
			Verbose:      false,
			GlamourStyle: DefaultGlamourStyle,
		},
	}
}

// String returns the string representation of the PagerMode.
func (m PagerMode) String() string { return string(m) }

// IsValid returns whether the PagerMode is one of the defined modes.
func (m PagerMode) IsValid() (bool, []error) {
	switch m {
	case PagerAuto, PagerTUI, PagerPlain:
		return true, nil
	default:
		return false, []error{&InvalidPagerModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidPagerModeError.
func (e *InvalidPagerModeError) Error() string {
	return fmt.Sprintf("invalid pager mode %q (valid: auto, tui, plain)", e.Value)
}

// Unwrap returns ErrInvalidPagerMode for errors.Is() compatibility.
func (e *InvalidPagerModeError) Unwrap() error { return ErrInvalidPagerMode }

// Error implements the error interface for InvalidLimitError.
func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be >= 1", e.Field, e.Value)
}

// Unwrap returns ErrInvalidLimit for errors.Is() compatibility.
func (e *InvalidLimitError) Unwrap() error { return ErrInvalidLimit }

// Error implements the error interface for InvalidTitleError.
func (e *InvalidTitleError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// Unwrap returns ErrInvalidTitle for errors.Is() compatibility.
func (e *InvalidTitleError) Unwrap() error { return ErrInvalidTitle }

// IsValid returns whether the RenderConfig has valid fields. Limits must be
// positive and the title must contain exactly one %s verb and no other verbs.
func (c RenderConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxInlineString < 1 {
		errs = append(errs, &InvalidLimitError{Field: "render.max_inline_string", Value: c.MaxInlineString})
	}
	if c.MaxOtherValue < 1 {
		errs = append(errs, &InvalidLimitError{Field: "render.max_other_value", Value: c.MaxOtherValue})
	}
	if !isTitleTemplate(c.Title) {
		errs = append(errs, &InvalidTitleError{Field: "render.title", Value: c.Title})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRenderConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRenderConfigError.
func (e *InvalidRenderConfigError) Error() string {
	return fmt.Sprintf("invalid render config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRenderConfig for errors.Is() compatibility.
func (e *InvalidRenderConfigError) Unwrap() error { return ErrInvalidRenderConfig }

// IsValid returns whether the IndexConfig has valid fields.
func (c IndexConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, &InvalidTitleError{Field: "index.title", Value: c.Title})
	}
	if c.Width < 0 {
		errs = append(errs, &InvalidLimitError{Field: "index.width", Value: c.Width})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidIndexConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidIndexConfigError.
func (e *InvalidIndexConfigError) Error() string {
	return fmt.Sprintf("invalid index config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidIndexConfig for errors.Is() compatibility.
func (e *InvalidIndexConfigError) Unwrap() error { return ErrInvalidIndexConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Pager.IsValid(), Render.IsValid() and Index.IsValid().
// UI has free-form fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Pager.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Render.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Index.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// isTitleTemplate reports whether title contains exactly one %s and no other
// formatting verb.
func isTitleTemplate(title string) bool {
	if strings.Count(title, titleVerb) != 1 {
		return false
	}
	rest := strings.ReplaceAll(strings.Replace(title, titleVerb, "", 1), "%%", "")
	return !strings.Contains(rest, "%")
}
