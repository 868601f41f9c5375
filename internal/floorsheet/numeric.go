package floorsheet

import (
	"math"
	"strconv"
	"strings"
)

// CleanNumber converts a raw floor-sheet cell to a float. Exports quote
// large numbers with comma thousands separators ("86,020"), so commas are
// stripped before parsing. Absent, empty or unparseable values map to zero;
// this is intentional lossy behavior, not an error path — invalid rows are
// caught later by the validity predicate, not here.
func CleanNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if cleaned == "" {
			return 0
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(n) {
			return 0
		}
		return n
	default:
		return 0
	}
}
