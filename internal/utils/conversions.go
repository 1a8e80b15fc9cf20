package utils

import (
	"fmt"
	"strconv"
)

// ToString renders a decoded JSON value as a string. Missing and null values become "",
// whole numbers lose their trailing ".0".
func ToString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
