package core

import (
	"strings"

	"featurestore/internal/types"
)

// ResolvedSchema is the outcome of reconciling requested options against a
// layer's metadata.
type ResolvedSchema struct {
	IdentityField  string
	IdentitySource types.IdentitySource
	Projection     []string
	DroppedFields  []string
	Capabilities   types.CapabilitySet
}

// ResolveSchema validates the requested identity field and projection
// against metadata and derives the capability flags. It never fails: an
// unknown identity field is kept as requested and a projection with no
// known fields degrades to all fields.
func ResolveSchema(metadata types.ServiceMetadata, requested types.StoreOptions) ResolvedSchema {
	identity, source := resolveIdentityField(metadata, requested.IDProperty)
	projection, dropped := resolveProjection(metadata, requested.OutFields, identity)
	return ResolvedSchema{
		IdentityField:  identity,
		IdentitySource: source,
		Projection:     projection,
		DroppedFields:  dropped,
		Capabilities:   ParseCapabilities(metadata.Capabilities),
	}
}

func resolveIdentityField(metadata types.ServiceMetadata, requested string) (string, types.IdentitySource) {
	if requested != "" && metadata.HasField(requested) {
		return requested, types.IdentitySourceRequested
	}
	if metadata.ObjectIDField != "" {
		return metadata.ObjectIDField, types.IdentitySourceObjectIDField
	}
	// Every OID field is visited; when several exist the last one is used.
	identity, source := requested, types.IdentitySourceUnresolved
	for _, field := range metadata.Fields {
		if field.Type == types.FieldTypeOID {
			identity, source = field.Name, types.IdentitySourceOIDScan
		}
	}
	return identity, source
}

func resolveProjection(metadata types.ServiceMetadata, requested []string, identity string) ([]string, []string) {
	if types.IsAllFields(requested) {
		return []string{types.AllFields}, nil
	}
	projection := make([]string, 0, len(requested)+1)
	var dropped []string
	for _, name := range requested {
		if metadata.HasField(name) {
			projection = append(projection, name)
			continue
		}
		dropped = append(dropped, name)
	}
	if len(projection) == 0 {
		return []string{types.AllFields}, dropped
	}
	if !containsString(projection, identity) {
		projection = append(projection, identity)
	}
	return projection, dropped
}

// ParseCapabilities splits a comma-separated capability string and sets the
// flag of every exactly matching token. Unknown tokens are ignored.
func ParseCapabilities(raw string) types.CapabilitySet {
	set := types.CapabilitySet{}
	if raw == "" {
		return set
	}
	for _, token := range strings.Split(raw, ",") {
		if capability, ok := types.LookupCapability(token); ok {
			set = set.With(capability)
		}
	}
	return set
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
