package hunting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoneOwned         = errors.New("no traps of this kind owned")
	ErrInvalidKind       = errors.New("invalid kind")
	ErrInvalidZone       = errors.New("invalid zone")
	ErrSessionOver       = errors.New("session is over")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnknownProcess    = errors.New("unknown process")
)

// InvalidKindError reports a kind id missing from the catalog. Suggestion is
// the closest known id, if any is near enough to be a plausible typo.
type InvalidKindError struct {
	Category   string
	ID         string
	Suggestion string
}

func (e *InvalidKindError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s kind %q (did you mean %q?)", e.Category, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s kind %q", e.Category, e.ID)
}

func (e *InvalidKindError) Unwrap() error {
	return ErrInvalidKind
}

func newInvalidKindError(category, id string, known []string) error {
	return &InvalidKindError{Category: category, ID: id, Suggestion: closestID(id, known)}
}

func closestID(id string, known []string) string {
	needle := strings.ToLower(strings.TrimSpace(id))
	if needle == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range known {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 3:
		return 1
	case length <= 7:
		return 2
	default:
		return 3
	}
}
