package batch

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxHash of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens url to at most maxLen bytes for display, keeping
// the end, which tells pages of one site apart.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-(maxLen-3):]
}

// FormatBytes formats n bytes in human-readable form.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return strconv.Itoa(n) + " B"
	}
	value := float64(n) / unit
	for _, suffix := range []string{"KB", "MB"} {
		if value < unit || suffix == "MB" {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
		value /= unit
	}
	return ""
}
