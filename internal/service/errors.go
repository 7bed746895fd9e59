package service

import (
	"errors"
	"fmt"

	"go-warehouse-api/pkg/validator"
)

// Error classes handlers translate into HTTP categories. Wrapping one of
// these carries the class through fmt.Errorf without losing the detail text.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

func validationErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func notFoundErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func conflictErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// checkStruct runs the struct validator and reports the first failing field.
func checkStruct(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		first := errs[0]
		return validationErrf("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return nil
}
