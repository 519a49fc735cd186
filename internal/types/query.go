package types

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryRequest is the parameter set sent to the query endpoint.
type QueryRequest struct {
	Where          string
	OutFields      []string
	ReturnGeometry bool
}

// Values encodes the request as query-string parameters, including f=json.
func (q QueryRequest) Values() url.Values {
	values := url.Values{}
	where := strings.TrimSpace(q.Where)
	if where == "" {
		where = "1=1"
	}
	values.Set("where", where)
	values.Set("outFields", q.OutFieldsParam())
	values.Set("returnGeometry", strconv.FormatBool(q.ReturnGeometry))
	values.Set("f", "json")
	return values
}

// OutFieldsParam comma-joins the projection, or returns "*" for all fields.
func (q QueryRequest) OutFieldsParam() string {
	if IsAllFields(q.OutFields) {
		return AllFields
	}
	return strings.Join(q.OutFields, ",")
}
