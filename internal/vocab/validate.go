package vocab

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordpath/internal/errs"
)

// validateSets performs all structural checks on the given set definitions.
// Returns one error describing every problem found, or nil if valid.
func validateSets(sets []Set) error {
	var problems []string

	ids := make(map[string]bool, len(sets))
	for i, s := range sets {
		if s.ID == "" {
			problems = append(problems, fmt.Sprintf("set #%d has an empty id", i))
		} else if ids[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate set id: %q", s.ID))
		}
		ids[s.ID] = true

		if s.Level.Rank() < 0 {
			problems = append(problems, fmt.Sprintf("set %q has unknown level %q", s.ID, s.Level))
		}

		if s.AgeRange.Min < 0 || s.AgeRange.Max < 0 {
			problems = append(problems, fmt.Sprintf("set %q has a negative age bound", s.ID))
		}
		if s.AgeRange.Min > s.AgeRange.Max {
			problems = append(problems, fmt.Sprintf("set %q age range min %d > max %d", s.ID, s.AgeRange.Min, s.AgeRange.Max))
		}

		seen := make(map[string]bool, len(s.Symbols))
		for j, sym := range s.Symbols {
			if sym == "" {
				problems = append(problems, fmt.Sprintf("set %q symbol #%d is empty", s.ID, j))
				continue
			}
			if seen[sym] {
				problems = append(problems, fmt.Sprintf("set %q lists symbol %q more than once", s.ID, sym))
			}
			seen[sym] = true
		}
	}

	if len(problems) > 0 {
		return &errs.ValidationError{
			Field:  "vocabulary sets",
			Reason: "\n  " + strings.Join(problems, "\n  "),
		}
	}
	return nil
}
