package core

import (
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"featurestore/internal/types"
)

// TypedIdentity converts identity text to the Go type matching the declared
// type of field: int64 for integer fields, float64 for other numeric fields
// and the text itself otherwise, including when the field is unknown.
func TypedIdentity(metadata types.ServiceMetadata, field string, raw string) (any, error) {
	declared, ok := metadata.Field(field)
	if !ok || !declared.Type.IsNumeric() {
		return raw, nil
	}
	if declared.Type.IsInteger() {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, identityTypeError(field, declared.Type, raw, err)
		}
		return value, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, identityTypeError(field, declared.Type, raw, err)
	}
	return value, nil
}

func identityTypeError(field string, fieldType types.FieldType, raw string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("identity value " + strconv.Quote(raw) + " does not match " + string(fieldType) + " field " + field).
		WithCause(cause)
}
