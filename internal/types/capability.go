package types

import "strings"

// Capability is one of the operation flags a service may advertise.
type Capability string

const (
	CapabilityData    Capability = "Data"
	CapabilityQuery   Capability = "Query"
	CapabilityCreate  Capability = "Create"
	CapabilityDelete  Capability = "Delete"
	CapabilityUpdate  Capability = "Update"
	CapabilityEditing Capability = "Editing"
)

// AllCapabilities lists every known capability in canonical order.
var AllCapabilities = []Capability{
	CapabilityData,
	CapabilityQuery,
	CapabilityCreate,
	CapabilityDelete,
	CapabilityUpdate,
	CapabilityEditing,
}

var capabilityByName = map[string]Capability{
	string(CapabilityData):    CapabilityData,
	string(CapabilityQuery):   CapabilityQuery,
	string(CapabilityCreate):  CapabilityCreate,
	string(CapabilityDelete):  CapabilityDelete,
	string(CapabilityUpdate):  CapabilityUpdate,
	string(CapabilityEditing): CapabilityEditing,
}

// LookupCapability maps a capability token to its enum value. Matching is
// exact; unknown tokens return false.
func LookupCapability(token string) (Capability, bool) {
	capability, ok := capabilityByName[token]
	return capability, ok
}

// CapabilitySet holds one flag per known capability. The zero value has
// every flag off.
type CapabilitySet struct {
	Data    bool
	Query   bool
	Create  bool
	Delete  bool
	Update  bool
	Editing bool
}

// Has reports whether the capability flag is set.
func (s CapabilitySet) Has(c Capability) bool {
	switch c {
	case CapabilityData:
		return s.Data
	case CapabilityQuery:
		return s.Query
	case CapabilityCreate:
		return s.Create
	case CapabilityDelete:
		return s.Delete
	case CapabilityUpdate:
		return s.Update
	case CapabilityEditing:
		return s.Editing
	}
	return false
}

// With returns a copy of the set with c switched on.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	switch c {
	case CapabilityData:
		s.Data = true
	case CapabilityQuery:
		s.Query = true
	case CapabilityCreate:
		s.Create = true
	case CapabilityDelete:
		s.Delete = true
	case CapabilityUpdate:
		s.Update = true
	case CapabilityEditing:
		s.Editing = true
	}
	return s
}

// List returns the enabled capabilities in canonical order.
func (s CapabilitySet) List() []Capability {
	var out []Capability
	for _, c := range AllCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CapabilitySet) String() string {
	list := s.List()
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, string(c))
	}
	return strings.Join(names, ",")
}
