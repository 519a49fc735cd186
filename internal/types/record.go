package types

// AttributesKey is the top-level key holding attribute fields in the wire
// shape of a record.
const AttributesKey = "attributes"

// GeometryKey is the top-level key holding a record's geometry.
const GeometryKey = "geometry"

// Record is one feature as an untyped key/value mapping. Whether it is in
// the wire shape (fields nested under "attributes") or the flat shape
// (fields promoted to the top level) is a property of the value, not of
// the type.
type Record map[string]any

// Clone returns a shallow copy of the record. A nested attributes map is
// copied as well so callers can edit either copy's attributes freely.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	if attrs, ok := AttributesOf(r); ok {
		copied := make(map[string]any, len(attrs))
		for key, value := range attrs {
			copied[key] = value
		}
		out[AttributesKey] = copied
	}
	return out
}

// AttributesOf returns the nested attributes container when present and a
// mapping.
func AttributesOf(r Record) (map[string]any, bool) {
	raw, ok := r[AttributesKey]
	if !ok {
		return nil, false
	}
	switch typed := raw.(type) {
	case map[string]any:
		return typed, true
	case Record:
		return typed, true
	}
	return nil, false
}

// FeatureSet is the body returned by the query endpoint.
type FeatureSet struct {
	ObjectIDFieldName string   `json:"objectIdFieldName,omitempty" yaml:"objectIdFieldName,omitempty"`
	GeometryType      string   `json:"geometryType,omitempty" yaml:"geometryType,omitempty"`
	Features          []Record `json:"features" yaml:"features"`
}
