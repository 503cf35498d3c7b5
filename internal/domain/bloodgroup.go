package domain

import (
	"fmt"
	"strings"

	"bloodlink/pkg/e"
)

// BloodGroup is one of the 8 canonical ABO/Rh groups, always uppercase.
type BloodGroup string

const (
	APositive  BloodGroup = "A+"
	ANegative  BloodGroup = "A-"
	BPositive  BloodGroup = "B+"
	BNegative  BloodGroup = "B-"
	ABPositive BloodGroup = "AB+"
	ABNegative BloodGroup = "AB-"
	OPositive  BloodGroup = "O+"
	ONegative  BloodGroup = "O-"
)

var bloodGroups = map[BloodGroup]struct{}{
	APositive: {}, ANegative: {},
	BPositive: {}, BNegative: {},
	ABPositive: {}, ABNegative: {},
	OPositive: {}, ONegative: {},
}

// ParseBloodGroup canonicalizes the input (case-insensitive, trimmed) and
// rejects anything outside the 8 ABO/Rh groups.
func ParseBloodGroup(raw string) (BloodGroup, error) {
	bg := BloodGroup(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := bloodGroups[bg]; !ok {
		return "", fmt.Errorf("blood group %q: %w", raw, e.ErrInvalidBloodGroup)
	}
	return bg, nil
}
