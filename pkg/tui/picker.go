package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-relationfield/pkg/options"
)

// ErrNoCandidates is returned when there is nothing to pick from.
var ErrNoCandidates = errors.New("tui: no candidates to pick from")

// Pick prompts for one candidate and returns it. Candidate order is preserved
// in the prompt; blank labels display as their identifier so every row stays
// selectable.
func Pick(ctx context.Context, driver PromptDriver, message string, candidates []options.Candidate) (options.Candidate, error) {
	if driver == nil {
		return options.Candidate{}, errors.New("tui: prompt driver is required")
	}
	if len(candidates) == 0 {
		return options.Candidate{}, ErrNoCandidates
	}

	labels := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		label := candidate.Label
		if label == "" {
			label = fmt.Sprint(candidate.ID)
		}
		labels = append(labels, label)
	}

	index, err := driver.Select(ctx, SelectConfig{
		Message: message,
		Options: labels,
	})
	if err != nil {
		return options.Candidate{}, err
	}
	if index < 0 || index >= len(candidates) {
		return options.Candidate{}, fmt.Errorf("tui: selection %d out of range", index)
	}
	return candidates[index], nil
}
