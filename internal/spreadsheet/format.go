package spreadsheet

import (
	"fmt"
	"time"
)

// DateLayout is how time values are rendered in text output.
const DateLayout = "2006-01-02"

// formatFloat formats a float with exactly 2 decimal places so 13.4 renders as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatValue renders a cell value as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return formatInt(int64(val))
	case int32:
		return formatInt(int64(val))
	case int64:
		return formatInt(val)
	case uint:
		return fmt.Sprintf("%d", val)
	case uint64:
		return fmt.Sprintf("%d", val)
	case bool:
		return formatBool(val)
	case time.Time:
		return val.Format(DateLayout)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
