package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var sqlConstantPattern = regexp.MustCompile(`(?i)^(CURRENT_TIMESTAMP|CURRENT_DATE|CURRENT_TIME|NULL)$`)

// WrapValue renders value as an SQL literal.
//
// SQL constants, function calls, "*" and "->" paths and numeric strings are
// emitted verbatim; other strings are single-quoted with embedded quotes doubled.
// Compiled queries never use this path for bindings; it backs Interpolate.
func (g *Grammar) WrapValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []byte:
		return quoteLiteral(string(v))
	case time.Time:
		return quoteLiteral(v.Format("2006-01-02 15:04:05.999999999"))
	case string:
		return wrapString(v)
	case fmt.Stringer:
		return quoteLiteral(v.String())
	default:
		return quoteLiteral(fmt.Sprint(v))
	}
}

func wrapString(value string) string {
	if IsSQLConstant(value) || IsSQLFunction(value) {
		return value
	}
	if strings.Contains(value, "*") || strings.Contains(value, "->") {
		return value
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return value
	}
	return quoteLiteral(value)
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// IsSQLConstant reports whether value names a SQL constant such as CURRENT_TIMESTAMP.
func IsSQLConstant(value string) bool {
	return sqlConstantPattern.MatchString(value)
}

// IsSQLFunction reports whether value looks like a function call.
func IsSQLFunction(value string) bool {
	open := strings.Index(value, "(")
	return open > 0 && strings.LastIndex(value, ")") > open
}
