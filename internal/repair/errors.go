package repair

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Client-facing validation messages.
const (
	msgMissingReportFields = "缺少必要的報修資料（如報修人、地點或描述）。"
	msgInvalidStatusUpdate = "無效的請求資料：缺少列號或新狀態。"
)

// ValidationError is a request the service refused before touching the
// datastore.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// isMissing reports whether a required text field is absent.
func isMissing(v *string) bool {
	return v == nil || *v == MissingValue || strings.TrimSpace(*v) == ""
}

// ParseRowIndex coerces a decoded JSON value to a row position.
func ParseRowIndex(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
