// Package tui offers a terminal candidate picker for admin tooling that edits
// relation values outside the browser (seed scripts, support consoles).
package tui

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal implementation so picker logic can be
// tested without a real terminal.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

// ErrInterrupted is returned when the user cancels a prompt.
var ErrInterrupted = errors.New("tui: prompt interrupted")

type surveyDriver struct{}

// NewSurveyDriver returns the survey-backed prompt driver.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, ErrInterrupted
		}
		return 0, err
	}
	return index, nil
}
