package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featurestore/internal/types"
)

func TestTypedIdentity(t *testing.T) {
	metadata := types.ServiceMetadata{Fields: []types.Field{
		{Name: "ESRI_OID", Type: types.FieldTypeOID},
		{Name: "CODE", Type: types.FieldTypeString},
		{Name: "RANK", Type: types.FieldTypeSmallInteger},
		{Name: "SCORE", Type: types.FieldTypeDouble},
	}}
	tests := []struct {
		name  string
		field string
		raw   string
		want  any
	}{
		{name: "oid", field: "ESRI_OID", raw: "4", want: int64(4)},
		{name: "small integer", field: "RANK", raw: "-2", want: int64(-2)},
		{name: "double", field: "SCORE", raw: "4.5", want: 4.5},
		{name: "string keeps leading zeros", field: "CODE", raw: "007", want: "007"},
		{name: "string keeps decimals", field: "CODE", raw: "4.5", want: "4.5"},
		{name: "unknown field", field: "MISSING", raw: "12", want: "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypedIdentity(metadata, tt.field, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypedIdentityRejectsNonNumericText(t *testing.T) {
	metadata := types.ServiceMetadata{Fields: []types.Field{
		{Name: "ESRI_OID", Type: types.FieldTypeOID},
		{Name: "SCORE", Type: types.FieldTypeSingle},
	}}
	for _, tc := range []struct{ field, raw string }{{"ESRI_OID", "abc"}, {"ESRI_OID", "4.5"}, {"SCORE", "high"}} {
		_, err := TypedIdentity(metadata, tc.field, tc.raw)
		require.Error(t, err, "%s=%s", tc.field, tc.raw)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestTypedIdentityFeedsEqualityWhere(t *testing.T) {
	metadata := types.ServiceMetadata{Fields: []types.Field{{Name: "CODE", Type: types.FieldTypeString}}}
	id, err := TypedIdentity(metadata, "CODE", "007")
	require.NoError(t, err)
	assert.Equal(t, "CODE = '007'", EqualityWhere("CODE", id))
}
