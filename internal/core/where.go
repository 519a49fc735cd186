package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EqualityWhere builds the `field = value` predicate used to fetch a
// record by identity. Strings are quoted as SQL literals; numbers are
// written bare.
func EqualityWhere(field string, id any) string {
	return field + " = " + literal(id)
}

func literal(value any) string {
	switch typed := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(typed, "'", "''") + "'"
	case json.Number:
		return typed.String()
	case int:
		return strconv.Itoa(typed)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
