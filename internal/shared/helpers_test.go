package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusErrorWithBody(t *testing.T) {
	err := HTTPStatusErrorWithBody(500, "http://localhost/x", "boom")
	assert.EqualError(t, err, "status=500 url=http://localhost/x response=boom")
}

func TestJoinEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		segment  string
		expected string
	}{
		{name: "plain", endpoint: "http://host/arcgis/rest/services/Mock/MapServer/0", segment: "query", expected: "http://host/arcgis/rest/services/Mock/MapServer/0/query"},
		{name: "trailing slash", endpoint: " http://host/layer/0/ ", segment: "/query", expected: "http://host/layer/0/query"},
		{name: "token query kept last", endpoint: "http://host/layer/0?token=abc", segment: "query", expected: "http://host/layer/0/query?token=abc"},
		{name: "relative", endpoint: "svc", segment: "query", expected: "svc/query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinEndpoint(tt.endpoint, tt.segment))
		})
	}
}
