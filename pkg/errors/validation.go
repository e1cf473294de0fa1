package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/familytower/pkg/family"
)

// maxIDLength bounds person, marriage and family identifiers.
const maxIDLength = 256

// ValidateID validates a record identifier for safety.
// what names the kind of record for the error message ("root id", "person id").
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateID(what, id string) error {
	if id == "" {
		return New(ErrCodeInvalidArgument, "%s is required", what)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidArgument, "%s too long (max %d characters)", what, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "%s contains invalid control characters", what)
		}
	}
	return nil
}

// ValidateFamilyID validates a stored family identifier. In addition to the
// generic id rules it rejects path separators, since file-backed stores use
// the id as a file name.
func ValidateFamilyID(id string) error {
	if err := ValidateID("family id", id); err != nil {
		return err
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidArgument, "family id contains invalid characters: %q", id)
	}
	return nil
}

// ValidateMarriage checks the shape of a marriage record: a known variant,
// and exactly two spouse slots for monogamous marriages.
func ValidateMarriage(m family.Marriage) error {
	switch m.Type {
	case family.Monogamous:
		if len(m.Spouses) != 2 {
			return New(ErrCodeInvalidArgument, "marriage %s: monogamous marriage needs exactly 2 spouse slots, got %d", m.ID, len(m.Spouses))
		}
	case family.Polygamous:
	default:
		return New(ErrCodeInvalidArgument, "marriage %s: unknown marriage type %q", m.ID, m.Type)
	}
	return nil
}

// ValidateFamily validates every person id and every marriage of f.
func ValidateFamily(f family.Family) error {
	for _, p := range f.People {
		if err := ValidateID("person id", p.ID); err != nil {
			return err
		}
	}
	for _, m := range f.Marriages {
		if err := ValidateID("marriage id", m.ID); err != nil {
			return err
		}
		if err := ValidateMarriage(m); err != nil {
			return err
		}
	}
	return nil
}
