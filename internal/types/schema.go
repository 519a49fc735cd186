package types

// Field is one entry of the service's field list.
type Field struct {
	Name  string    `json:"name" yaml:"name"`
	Type  FieldType `json:"type" yaml:"type"`
	Alias string    `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Template is a feature template advertised by editable layers. Only its
// presence matters to the store: a layer with templates gates reads on the
// Query capability instead of Data.
type Template struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Prototype   map[string]any `json:"prototype,omitempty" yaml:"prototype,omitempty"`
}

// ServiceMetadata is the layer description returned by `{url}?f=json`.
// It is fetched once per store and never modified afterwards.
type ServiceMetadata struct {
	Name           string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type           string     `json:"type,omitempty" yaml:"type,omitempty"`
	GeometryType   string     `json:"geometryType,omitempty" yaml:"geometryType,omitempty"`
	DisplayField   string     `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	CurrentVersion float64    `json:"currentVersion,omitempty" yaml:"currentVersion,omitempty"`
	Fields         []Field    `json:"fields" yaml:"fields"`
	ObjectIDField  string     `json:"objectIdField,omitempty" yaml:"objectIdField,omitempty"`
	Capabilities   string     `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Templates      []Template `json:"templates,omitempty" yaml:"templates,omitempty"`
}

// HasField reports whether name matches a field exactly (case-sensitive).
func (m ServiceMetadata) HasField(name string) bool {
	for _, field := range m.Fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Field returns the field called name.
func (m ServiceMetadata) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (m ServiceMetadata) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// HasTemplates reports whether the layer advertises feature templates.
func (m ServiceMetadata) HasTemplates() bool {
	return m.Templates != nil
}
