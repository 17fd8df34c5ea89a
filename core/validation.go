package core

import "strings"

// ValidateRecord checks that a record can enter the extraction pipeline.
// A record needs an ISBN and at least one non-empty text field.
func ValidateRecord(r *Record) error {
	if strings.TrimSpace(r.ISBN) == "" {
		return ErrMissingISBN
	}
	if strings.TrimSpace(r.Title) != "" {
		return nil
	}
	for _, field := range r.AuxiliaryFields() {
		for _, value := range field {
			if strings.TrimSpace(value) != "" {
				return nil
			}
		}
	}
	return ErrEmptyRecord
}
