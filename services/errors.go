package services

import (
	"errors"
	"fmt"
)

// ErrMissingData is matched by every MissingDataError via errors.Is.
var ErrMissingData = errors.New("missing data")

// MissingDataError reports that there is nothing to aggregate: the BOM or
// project itself is absent. Malformed fields never produce it.
type MissingDataError struct {
	Entity string // "bom" or "project"
	ID     string
}

func (e *MissingDataError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("no %s available for %s", e.Entity, e.ID)
	}
	return fmt.Sprintf("no %s available", e.Entity)
}

func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}
