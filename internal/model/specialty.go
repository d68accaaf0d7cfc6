package model

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// Specialty is an immutable value pairing a specialty name with the weekdays
// it is offered. Day order is kept as given, not sorted into calendar order.
type Specialty struct {
	name string
	days []string
}

// NewSpecialty validates the name and day list. Days are normalized to the
// canonical lowercase tokens; duplicates (after normalization) are rejected.
func NewSpecialty(name string, days []string) (*Specialty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidData("specialty name must not be empty")
	}
	if len(days) == 0 {
		return nil, errors.InvalidData("specialty must be offered on at least one day")
	}

	normalized := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		norm, err := NormalizeWeekday(day)
		if err != nil {
			return nil, err
		}
		if seen[norm] {
			return nil, errors.InvalidDataf("day %s is listed more than once", norm)
		}
		seen[norm] = true
		normalized = append(normalized, norm)
	}

	return &Specialty{name: name, days: normalized}, nil
}

// Name returns the specialty name.
func (s *Specialty) Name() string {
	return s.name
}

// Days returns a copy of the offered days in the order they were given.
func (s *Specialty) Days() []string {
	out := make([]string, len(s.days))
	copy(out, s.days)
	return out
}

// OffersOn reports whether the specialty is offered on the given day. The
// comparison ignores case and surrounding whitespace.
func (s *Specialty) OffersOn(day string) bool {
	norm := strings.ToLower(strings.TrimSpace(day))
	for _, d := range s.days {
		if d == norm {
			return true
		}
	}
	return false
}

func (s *Specialty) String() string {
	return fmt.Sprintf("%s (days: %s)", s.name, strings.Join(s.days, ", "))
}
