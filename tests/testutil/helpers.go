// Package testutil provides a mock ArcGIS REST server shared by the
// integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const (
	MapServicePath     = "/arcgis/rest/services/Mock/MapServer/0"
	FeatureServicePath = "/arcgis/rest/services/Mock/FeatureServer/0"
)

var mockFields = []map[string]any{
	{"name": "ESRI_OID", "type": "esriFieldTypeOID", "alias": "ESRI_OID"},
	{"name": "NAME", "type": "esriFieldTypeString", "alias": "Name"},
	{"name": "CATEGORY", "type": "esriFieldTypeString", "alias": "Category"},
	{"name": "DETAILS", "type": "esriFieldTypeString", "alias": "Details"},
}

// MockLayerServer serves a map service layer and a feature service layer
// sharing one fixture record, and records every request it receives.
type MockLayerServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

var identityPredicate = regexp.MustCompile(`^\s*ESRI_OID\s*=\s*(\d+)\s*$`)

// NewMockLayerServer starts the mock and closes it when the test ends.
func NewMockLayerServer(t *testing.T) *MockLayerServer {
	t.Helper()
	mock := &MockLayerServer{}
	mux := http.NewServeMux()
	mux.HandleFunc(MapServicePath, mock.metadataHandler(map[string]any{
		"name":         "Mock Map",
		"type":         "Feature Layer",
		"geometryType": "esriGeometryPoint",
		"fields":       mockFields,
		"capabilities": "Query",
	}))
	mux.HandleFunc(FeatureServicePath, mock.metadataHandler(map[string]any{
		"name":          "Mock Features",
		"type":          "Feature Layer",
		"geometryType":  "esriGeometryPoint",
		"objectIdField": "ESRI_OID",
		"fields":        mockFields,
		"capabilities":  "Query,Create,Delete,Update,Editing",
		"templates":     []map[string]any{{"name": "Mock", "prototype": map[string]any{"attributes": map[string]any{}}}},
	}))
	mux.HandleFunc(MapServicePath+"/query", mock.queryHandler)
	mux.HandleFunc(FeatureServicePath+"/query", mock.queryHandler)
	mock.Server = httptest.NewServer(mux)
	t.Cleanup(mock.Close)
	return mock
}

// Requests returns the requests received so far.
func (m *MockLayerServer) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// QueryCount returns the number of query requests received so far.
func (m *MockLayerServer) QueryCount() int {
	count := 0
	for _, req := range m.Requests() {
		if strings.HasSuffix(req.URL.Path, "/query") {
			count++
		}
	}
	return count
}

func (m *MockLayerServer) record(r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, r.Clone(r.Context()))
}

func (m *MockLayerServer) metadataHandler(metadata map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.record(r)
		writeJSON(w, metadata)
	}
}

func (m *MockLayerServer) queryHandler(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	m.record(r)
	features := []map[string]any{}
	match := identityPredicate.FindStringSubmatch(r.Form.Get("where"))
	if match != nil {
		if id, err := strconv.Atoi(match[1]); err == nil && id == 4 {
			feature := map[string]any{
				"attributes": projectAttributes(r.Form.Get("outFields")),
			}
			if r.Form.Get("returnGeometry") != "false" {
				feature["geometry"] = map[string]any{"x": 4, "y": 14}
			}
			features = append(features, feature)
		}
	}
	writeJSON(w, map[string]any{
		"objectIdFieldName": "ESRI_OID",
		"geometryType":      "esriGeometryPoint",
		"features":          features,
	})
}

func projectAttributes(outFields string) map[string]any {
	all := map[string]any{
		"ESRI_OID": 4,
		"NAME":     "Test Name",
		"CATEGORY": "Test Category",
		"DETAILS":  "Test Details",
	}
	if outFields == "" || outFields == "*" {
		return all
	}
	projected := map[string]any{}
	for _, name := range strings.Split(outFields, ",") {
		if value, ok := all[name]; ok {
			projected[name] = value
		}
	}
	return projected
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
