package types

// AllFields is the projection sentinel requesting every field.
const AllFields = "*"

// DefaultIDProperty is the identity field assumed until metadata says
// otherwise.
const DefaultIDProperty = "OBJECTID"

// StoreOptions is the construction-time configuration supplied by callers.
// Nil booleans and a nil OutFields take their defaults; an explicitly empty
// OutFields is kept and resolves to all fields.
type StoreOptions struct {
	URL            string   `json:"url" yaml:"url" mapstructure:"url"`
	IDProperty     string   `json:"idProperty,omitempty" yaml:"id_property,omitempty" mapstructure:"id_property"`
	Flatten        *bool    `json:"flatten,omitempty" yaml:"flatten,omitempty" mapstructure:"flatten"`
	ReturnGeometry *bool    `json:"returnGeometry,omitempty" yaml:"return_geometry,omitempty" mapstructure:"return_geometry"`
	OutFields      []string `json:"outFields,omitempty" yaml:"out_fields,omitempty" mapstructure:"out_fields"`
}

// DefaultStoreOptions returns the documented defaults with no URL.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{}.WithDefaults()
}

// WithDefaults fills unset options. The receiver is not modified.
func (o StoreOptions) WithDefaults() StoreOptions {
	out := o
	if out.IDProperty == "" {
		out.IDProperty = DefaultIDProperty
	}
	if out.Flatten == nil {
		out.Flatten = Bool(true)
	}
	if out.ReturnGeometry == nil {
		out.ReturnGeometry = Bool(true)
	}
	if out.OutFields == nil {
		out.OutFields = []string{AllFields}
	} else {
		out.OutFields = append([]string{}, o.OutFields...)
	}
	return out
}

// FlattenEnabled reports the effective flatten setting.
func (o StoreOptions) FlattenEnabled() bool {
	return o.Flatten == nil || *o.Flatten
}

// ReturnGeometryEnabled reports the effective returnGeometry setting.
func (o StoreOptions) ReturnGeometryEnabled() bool {
	return o.ReturnGeometry == nil || *o.ReturnGeometry
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// StoreConfig is the store configuration after schema resolution. It is
// written once when the store becomes ready and is read-only afterwards.
type StoreConfig struct {
	URL            string
	IdentityField  string
	Projection     []string
	Flatten        bool
	ReturnGeometry bool
	Capabilities   CapabilitySet
}

// ProjectsAllFields reports whether the projection is the all-fields
// sentinel.
func (c StoreConfig) ProjectsAllFields() bool {
	return IsAllFields(c.Projection)
}

// IsAllFields reports whether a projection list means "every field": it is
// empty or starts with the sentinel.
func IsAllFields(projection []string) bool {
	return len(projection) == 0 || projection[0] == AllFields
}

// StoreSettings bundles store options with transport knobs, as read from a
// config file.
type StoreSettings struct {
	Options          StoreOptions
	Fixture          string
	Token            string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}
