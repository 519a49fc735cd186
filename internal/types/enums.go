package types

// FieldType is the declared type of a service field, as reported by the
// service metadata endpoint.
type FieldType string

const (
	FieldTypeOID          FieldType = "esriFieldTypeOID"
	FieldTypeString       FieldType = "esriFieldTypeString"
	FieldTypeInteger      FieldType = "esriFieldTypeInteger"
	FieldTypeSmallInteger FieldType = "esriFieldTypeSmallInteger"
	FieldTypeDouble       FieldType = "esriFieldTypeDouble"
	FieldTypeSingle       FieldType = "esriFieldTypeSingle"
	FieldTypeDate         FieldType = "esriFieldTypeDate"
	FieldTypeGeometry     FieldType = "esriFieldTypeGeometry"
	FieldTypeGlobalID     FieldType = "esriFieldTypeGlobalID"
	FieldTypeGUID         FieldType = "esriFieldTypeGUID"
	FieldTypeBlob         FieldType = "esriFieldTypeBlob"
	FieldTypeRaster       FieldType = "esriFieldTypeRaster"
	FieldTypeXML          FieldType = "esriFieldTypeXML"
)

// IsInteger reports whether values of the field are whole numbers.
func (t FieldType) IsInteger() bool {
	switch t {
	case FieldTypeOID, FieldTypeInteger, FieldTypeSmallInteger:
		return true
	}
	return false
}

// IsNumeric reports whether values of the field are compared as numbers.
func (t FieldType) IsNumeric() bool {
	return t.IsInteger() || t == FieldTypeDouble || t == FieldTypeSingle
}

// Lifecycle is the initialization state of a store instance.
type Lifecycle string

const (
	LifecycleUnresolved Lifecycle = "unresolved"
	LifecycleResolving  Lifecycle = "resolving"
	LifecycleReady      Lifecycle = "ready"
	LifecycleFailed     Lifecycle = "failed"
)

// IdentitySource records which rule picked the resolved identity field.
type IdentitySource string

const (
	IdentitySourceRequested     IdentitySource = "requested"
	IdentitySourceObjectIDField IdentitySource = "objectIdField"
	IdentitySourceOIDScan       IdentitySource = "oidScan"
	IdentitySourceUnresolved    IdentitySource = "unresolved"
)
