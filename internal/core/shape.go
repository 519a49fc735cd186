package core

import (
	"featurestore/internal/types"
)

// Flatten promotes the attributes container to the top level. Attribute
// values win over top-level keys of the same name; every other key is kept.
// A record without attributes is returned as an equivalent copy.
func Flatten(record types.Record) types.Record {
	if record == nil {
		return nil
	}
	out := make(types.Record, len(record))
	for key, value := range record {
		out[key] = value
	}
	attrs, ok := types.AttributesOf(record)
	if !ok {
		return out
	}
	delete(out, types.AttributesKey)
	for key, value := range attrs {
		out[key] = value
	}
	return out
}

// Unflatten moves every top-level key that names a field into the
// attributes container. The field set is projection, or known when the
// projection is the all-fields sentinel. Keys outside the field set stay at
// the top level and existing attributes are merged, not replaced. A record
// whose attributes value is not a map is returned as an unchanged copy, as
// Flatten does.
func Unflatten(record types.Record, projection []string, known []string) types.Record {
	if record == nil {
		return nil
	}
	if _, exists := record[types.AttributesKey]; exists {
		if _, ok := types.AttributesOf(record); !ok {
			return record.Clone()
		}
	}
	fields := projection
	if types.IsAllFields(projection) {
		fields = known
	}
	fieldSet := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		fieldSet[name] = struct{}{}
	}

	out := make(types.Record, len(record))
	var attrs map[string]any
	if existing, ok := types.AttributesOf(record); ok {
		attrs = make(map[string]any, len(existing))
		for key, value := range existing {
			attrs[key] = value
		}
	}
	for key, value := range record {
		if key == types.AttributesKey {
			continue
		}
		if _, isField := fieldSet[key]; !isField {
			out[key] = value
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any)
		}
		attrs[key] = value
	}
	if attrs != nil {
		out[types.AttributesKey] = attrs
	}
	return out
}

// IdentityOf reads identityField from the top level of a flat record or
// from the attributes container of a wire record. The boolean is false
// when the value is absent.
func IdentityOf(record types.Record, identityField string, flat bool) (any, bool) {
	if record == nil {
		return nil, false
	}
	if flat {
		value, ok := record[identityField]
		return value, ok
	}
	attrs, ok := types.AttributesOf(record)
	if !ok {
		return nil, false
	}
	value, ok := attrs[identityField]
	return value, ok
}
