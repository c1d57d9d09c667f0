package models

import (
	"fmt"
	"strings"
)

// Sex enumerates the sex categories used by allocations, pricing entries and
// order selections.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexAny    Sex = "any"
)

// ParseSex normalizes the free-form sex labels found in imported data
// ("Mâle", "Femelle", "Tous", ...) into the closed enumeration. This is the
// single normalization point; everything past the input boundary compares
// Sex values only.
func ParseSex(raw string) (Sex, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "male", "m", "mâle", "males":
		return SexMale, nil
	case "female", "f", "femelle", "females":
		return SexFemale, nil
	case "any", "all", "tous", "both", "":
		return SexAny, nil
	default:
		return "", fmt.Errorf("unrecognized sex label %q", raw)
	}
}

// Valid reports whether s is one of the three known categories.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexAny
}
