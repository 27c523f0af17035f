package util

// Truncate shortens s to at most max bytes, appending an ellipsis when it
// was cut. Used to keep raw model responses readable in logs.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
